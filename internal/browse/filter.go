package browse

import (
	"strings"

	"ccfiles/internal/scan"
)

// Filter derives the visible view of groups for a query. An empty query
// is the identity. Otherwise a group keeps the records whose file name
// or full path contains the query case-insensitively, and groups left
// empty are dropped. Pure function; the input is never mutated.
func Filter(groups []Group, query string) []Group {
	if query == "" {
		return groups
	}
	q := strings.ToLower(query)
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var kept []scan.Record
		for _, rec := range g.Records {
			if strings.Contains(strings.ToLower(rec.Name()), q) ||
				strings.Contains(strings.ToLower(rec.Path), q) {
				kept = append(kept, rec)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, Group{
			Classification: g.Classification,
			Records:        kept,
			Expanded:       g.Expanded,
		})
	}
	return out
}
