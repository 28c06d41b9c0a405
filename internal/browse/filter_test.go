package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccfiles/internal/scan"
)

func testGroups() []Group {
	return BuildGroups([]scan.Record{
		{Path: "/w/CLAUDE.md", Classification: scan.ClassProjectConfig},
		{Path: "/w/CLAUDE.local.md", Classification: scan.ClassLocalOverride},
		{Path: "/w/.claude/commands/deploy.md", Classification: scan.ClassCommand},
		{Path: "/w/.claude/commands/git/commit.md", Classification: scan.ClassCommand},
	}, nil)
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	groups := testGroups()
	got := Filter(groups, "")
	assert.Equal(t, groups, got)
	// Identity means the same slice, not a copy.
	assert.Same(t, &groups[0], &got[0])
}

func TestFilterIsIdempotent(t *testing.T) {
	groups := testGroups()
	once := Filter(groups, "commit")
	twice := Filter(once, "commit")
	assert.Equal(t, once, twice)
}

func TestFilterMatchesNameOrPath(t *testing.T) {
	groups := testGroups()

	t.Run("by name, case-insensitive", func(t *testing.T) {
		got := Filter(groups, "LOCAL")
		require.Len(t, got, 1)
		assert.Equal(t, scan.ClassLocalOverride, got[0].Classification)
	})

	t.Run("by path segment", func(t *testing.T) {
		got := Filter(groups, "commands/git")
		require.Len(t, got, 1)
		require.Len(t, got[0].Records, 1)
		assert.Equal(t, "commit.md", got[0].Records[0].Name())
	})

	t.Run("empty groups dropped", func(t *testing.T) {
		got := Filter(groups, "deploy")
		require.Len(t, got, 1)
		assert.Equal(t, scan.ClassCommand, got[0].Classification)
		assert.Len(t, got[0].Records, 1)
	})

	t.Run("no matches at all", func(t *testing.T) {
		assert.Empty(t, Filter(groups, "zzz-no-such-file"))
	})
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	groups := testGroups()
	before := len(groups[0].Records)
	_ = Filter(groups, "commit")
	assert.Len(t, groups[0].Records, before)
}
