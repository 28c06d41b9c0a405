package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccfiles/internal/scan"
)

func TestBuildGroupsOrderAndDefaults(t *testing.T) {
	groups := BuildGroups([]scan.Record{
		{Path: "/w/.claude/settings.json", Classification: scan.ClassSettings},
		{Path: "/w/.claude/commands/b.md", Classification: scan.ClassCommand},
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
		{Path: "/w/.claude/commands/A.md", Classification: scan.ClassCommand},
	}, nil)

	require.Len(t, groups, 3)
	assert.Equal(t, scan.ClassProjectConfig, groups[0].Classification)
	assert.Equal(t, scan.ClassCommand, groups[1].Classification)
	assert.Equal(t, scan.ClassSettings, groups[2].Classification)
	for _, g := range groups {
		assert.True(t, g.Expanded, "new classifications default to expanded")
	}

	// Case-insensitive name order within a group.
	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, "A.md", groups[1].Records[0].Name())
	assert.Equal(t, "b.md", groups[1].Records[1].Name())
}

func TestBuildGroupsSkipsAbsentClassifications(t *testing.T) {
	groups := BuildGroups([]scan.Record{
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
	}, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, scan.ClassProjectConfig, groups[0].Classification)
}

func TestBuildGroupsCarriesExpansion(t *testing.T) {
	records := []scan.Record{
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
		{Path: "/w/.claude/commands/a.md", Classification: scan.ClassCommand},
	}
	prev := map[scan.Classification]bool{scan.ClassCommand: false}

	groups := BuildGroups(records, prev)
	require.Len(t, groups, 2)
	assert.True(t, groups[0].Expanded, "unmentioned classification defaults to expanded")
	assert.False(t, groups[1].Expanded, "carried flag wins")
}

func TestExpandedFlagsRoundTrip(t *testing.T) {
	groups := BuildGroups([]scan.Record{
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
		{Path: "/w/.claude/commands/a.md", Classification: scan.ClassCommand},
	}, nil)
	groups[1].Expanded = false

	rebuilt := BuildGroups([]scan.Record{
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
		{Path: "/w/.claude/commands/a.md", Classification: scan.ClassCommand},
		{Path: "/w/.claude/settings.json", Classification: scan.ClassSettings},
	}, ExpandedFlags(groups))

	require.Len(t, rebuilt, 3)
	assert.True(t, rebuilt[0].Expanded)
	assert.False(t, rebuilt[1].Expanded, "collapse survives the rebuild")
	assert.True(t, rebuilt[2].Expanded, "newly appearing classification expands")
}
