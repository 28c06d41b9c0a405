package scan

import (
	"path/filepath"
	"time"
)

// Classification names the role a discovered file plays in a Claude
// Code setup. The set is closed; anything unrecognized is ClassUnknown.
type Classification string

const (
	ClassProjectConfig Classification = "project-config"
	ClassLocalOverride Classification = "local-override"
	ClassGlobalConfig  Classification = "global-config"
	ClassCommand       Classification = "command-definition"
	ClassSettings      Classification = "settings"
	ClassSettingsLocal Classification = "settings-local"
	ClassUnknown       Classification = "unknown"
)

// Label returns the heading used for this classification's group.
func (c Classification) Label() string {
	switch c {
	case ClassProjectConfig:
		return "Project Memory"
	case ClassLocalOverride:
		return "Local Overrides"
	case ClassGlobalConfig:
		return "Global Config"
	case ClassCommand:
		return "Slash Commands"
	case ClassSettings:
		return "Settings"
	case ClassSettingsLocal:
		return "Local Settings"
	default:
		return "Other"
	}
}

// Scope says whether a file belongs to the current project tree or to
// the user's home configuration.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeUser    Scope = "user"
)

// CommandMeta is the extracted metadata of one slash-command file.
type CommandMeta struct {
	Name         string `json:"name"`
	Namespace    string `json:"namespace,omitempty"`
	Scope        Scope  `json:"scope"`
	Description  string `json:"description,omitempty"`
	HasArguments bool   `json:"has_arguments"`
}

// Record is one discovered configuration file. Records are immutable
// once built; a re-scan replaces the whole set.
type Record struct {
	Path           string         `json:"path"`
	Classification Classification `json:"classification"`
	SizeBytes      int64          `json:"size_bytes"`
	LastModified   time.Time      `json:"last_modified"`
	Command        *CommandMeta   `json:"command,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
}

// Name returns the file's base name, the string filtering matches on.
func (r Record) Name() string {
	return filepath.Base(r.Path)
}

// DisplayName prefers the slash-command form for command definitions.
func (r Record) DisplayName() string {
	if r.Command != nil && r.Command.Name != "" {
		return "/" + r.Command.Name
	}
	return r.Name()
}
