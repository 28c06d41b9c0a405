package scan

import (
	"path/filepath"
	"strings"
)

// Reserved names recognized by Claude Code. Matches are exact and case
// sensitive.
const (
	memoryFileName        = "CLAUDE.md"
	localMemoryFileName   = "CLAUDE.local.md"
	settingsFileName      = "settings.json"
	localSettingsFileName = "settings.local.json"
	claudeDirName         = ".claude"
	commandsDirName       = "commands"
	commandExt            = ".md"
)

// Classify maps one absolute path to its classification. It is a pure
// function of the path string and the home directory; it never touches
// the filesystem or the environment. The cases are checked in order:
// settings names win over the command rule, the command rule wins over
// the home catch-all, and the home catch-all wins over the memory file
// names, so ~/.claude/commands/git/commit.md is a command definition and
// ~/.claude/CLAUDE.md is global config rather than project config.
func Classify(path, home string) Classification {
	base := filepath.Base(path)
	parent := filepath.Base(filepath.Dir(path))

	switch {
	case base == settingsFileName && parent == claudeDirName:
		return ClassSettings
	case base == localSettingsFileName && parent == claudeDirName:
		return ClassSettingsLocal
	case strings.HasSuffix(base, commandExt) && underClaudeCommands(path):
		return ClassCommand
	case underHomeClaude(path, home):
		return ClassGlobalConfig
	case base == memoryFileName:
		return ClassProjectConfig
	case base == localMemoryFileName:
		return ClassLocalOverride
	default:
		return ClassUnknown
	}
}

// scopeOf distinguishes files under the user's home configuration from
// files in a project tree.
func scopeOf(path, home string) Scope {
	if underHomeClaude(path, home) {
		return ScopeUser
	}
	return ScopeProject
}

// underClaudeCommands reports whether path sits below a .claude/commands
// directory pair. A bare commands directory does not count.
func underClaudeCommands(path string) bool {
	segs := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for i := 1; i < len(segs); i++ {
		if segs[i] == commandsDirName && segs[i-1] == claudeDirName {
			return true
		}
	}
	return false
}

func underHomeClaude(path, home string) bool {
	if home == "" {
		return false
	}
	root := filepath.Join(home, claudeDirName)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
