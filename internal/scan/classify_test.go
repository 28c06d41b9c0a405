package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	home := "/home/dev"
	tests := []struct {
		name string
		path string
		want Classification
	}{
		{"project memory", "/work/proj/CLAUDE.md", ClassProjectConfig},
		{"local override", "/work/proj/CLAUDE.local.md", ClassLocalOverride},
		{"nested project memory", "/work/proj/sub/CLAUDE.md", ClassProjectConfig},
		{"project settings", "/work/proj/.claude/settings.json", ClassSettings},
		{"project local settings", "/work/proj/.claude/settings.local.json", ClassSettingsLocal},
		{"project command", "/work/proj/.claude/commands/deploy.md", ClassCommand},
		{"namespaced command", "/work/proj/.claude/commands/git/commit.md", ClassCommand},
		{"user command beats global catch-all", "/home/dev/.claude/commands/git/commit.md", ClassCommand},
		{"home memory is global config", "/home/dev/.claude/CLAUDE.md", ClassGlobalConfig},
		{"home settings stay settings", "/home/dev/.claude/settings.json", ClassSettings},
		{"stray file under home claude", "/home/dev/.claude/notes.txt", ClassGlobalConfig},
		{"settings outside a claude dir", "/work/proj/settings.json", ClassUnknown},
		{"editor settings", "/work/proj/.vscode/settings.json", ClassUnknown},
		{"ordinary markdown", "/work/proj/README.md", ClassUnknown},
		{"bare commands dir is not a command", "/work/proj/commands/run.md", ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path, home))
		})
	}
}

func TestClassifyIsStable(t *testing.T) {
	path := "/home/dev/.claude/commands/review.md"
	first := Classify(path, "/home/dev")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(path, "/home/dev"))
	}
}

func TestClassifyEmptyHome(t *testing.T) {
	// Without a home directory the global catch-all never fires; the
	// name rules still do.
	assert.Equal(t, ClassProjectConfig, Classify("/work/proj/CLAUDE.md", ""))
	assert.Equal(t, ClassUnknown, Classify("/work/proj/notes.txt", ""))
}

func TestScopeOf(t *testing.T) {
	home := "/home/dev"
	assert.Equal(t, ScopeUser, scopeOf("/home/dev/.claude/commands/a.md", home))
	assert.Equal(t, ScopeUser, scopeOf("/home/dev/.claude/CLAUDE.md", home))
	assert.Equal(t, ScopeProject, scopeOf("/home/dev/work/proj/CLAUDE.md", home))
	assert.Equal(t, ScopeProject, scopeOf("/srv/proj/.claude/commands/a.md", home))
}
