package browse

import (
	"sort"
	"strings"

	"ccfiles/internal/scan"
)

// classificationOrder fixes the order groups render in, most specific
// configuration first.
var classificationOrder = []scan.Classification{
	scan.ClassProjectConfig,
	scan.ClassLocalOverride,
	scan.ClassGlobalConfig,
	scan.ClassCommand,
	scan.ClassSettings,
	scan.ClassSettingsLocal,
	scan.ClassUnknown,
}

// Group is one classification bucket of records. Groups are rebuilt
// wholesale whenever the record set changes; only the Expanded flag
// survives a rebuild, carried over by classification key.
type Group struct {
	Classification scan.Classification
	Records        []scan.Record
	Expanded       bool
}

// BuildGroups buckets records by classification in the fixed precedence
// order, keeping only classifications that are present. Records within
// a group are sorted by case-insensitive name with the path as a
// tiebreaker. prevExpanded maps classification to the flag from the
// previous generation; classifications it does not mention default to
// expanded.
func BuildGroups(records []scan.Record, prevExpanded map[scan.Classification]bool) []Group {
	buckets := make(map[scan.Classification][]scan.Record)
	for _, rec := range records {
		buckets[rec.Classification] = append(buckets[rec.Classification], rec)
	}
	groups := make([]Group, 0, len(buckets))
	for _, class := range classificationOrder {
		recs, ok := buckets[class]
		if !ok {
			continue
		}
		sort.SliceStable(recs, func(i, j int) bool {
			a, b := strings.ToLower(recs[i].Name()), strings.ToLower(recs[j].Name())
			if a != b {
				return a < b
			}
			return recs[i].Path < recs[j].Path
		})
		expanded := true
		if prev, seen := prevExpanded[class]; seen {
			expanded = prev
		}
		groups = append(groups, Group{Classification: class, Records: recs, Expanded: expanded})
	}
	return groups
}

// ExpandedFlags snapshots the Expanded flag per classification, the
// carry-over input for the next BuildGroups call.
func ExpandedFlags(groups []Group) map[scan.Classification]bool {
	out := make(map[scan.Classification]bool, len(groups))
	for _, g := range groups {
		out[g.Classification] = g.Expanded
	}
	return out
}
