package docs

import _ "embed"

// userGuide holds the Markdown manual rendered by the guide command.
//
//go:embed user-guide.md
var userGuide string

// UserGuide returns the embedded user manual.
func UserGuide() string {
	return userGuide
}
