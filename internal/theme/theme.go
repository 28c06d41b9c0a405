// Package theme holds the color palettes and icon sets for the UI.
// Themes are immutable values picked by mode; "auto" probes the
// terminal background and NO_COLOR always degrades to plain output.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects a palette family.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
	ModeASCII Mode = "ascii"
)

// ParseMode validates a user-supplied theme name. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeAuto, nil
	case ModeAuto:
		return ModeAuto, nil
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	case ModeASCII:
		return ModeASCII, nil
	}
	return "", fmt.Errorf("unknown theme %q (want auto, dark, light or ascii)", s)
}

type Palette struct {
	BG        string
	FG        string
	Muted     string
	Accent    string
	Success   string
	Warning   string
	Danger    string
	Selection string
}

type Borders struct {
	Style string
	Color string
}

type StyleSpec struct {
	FG     string
	BG     string
	Bold   bool
	Italic bool
	Faint  bool
}

type ComponentStyles struct {
	AppHeader   StyleSpec
	GroupHeader StyleSpec
	GroupInfo   StyleSpec
	ListBody    StyleSpec
	ListCursor  StyleSpec
	ListInfo    StyleSpec

	PreviewHeader StyleSpec
	PreviewBody   StyleSpec

	Separator   StyleSpec
	StatusBar   StyleSpec
	StatusLabel StyleSpec
	StatusValue StyleSpec
	PromptLabel StyleSpec
	PromptValue StyleSpec

	MenuHeader   StyleSpec
	MenuItem     StyleSpec
	MenuCursor   StyleSpec
	MenuShortcut StyleSpec

	ErrorBanner StyleSpec
	WarningText StyleSpec
}

type Icons struct {
	Mode      string
	Expanded  string
	Collapsed string
	Memory    string
	Command   string
	Settings  string
	File      string
	Warning   string
	Selection string
}

type IconSet struct {
	Expanded  string
	Collapsed string
	Memory    string
	Command   string
	Settings  string
	File      string
	Warning   string
	Selection string
}

type Theme struct {
	Name       string
	Palette    Palette
	Borders    Borders
	Icons      Icons
	Components ComponentStyles
}

// Resolve picks the theme for a mode. NO_COLOR and colorless terminals
// win over any configured mode.
func Resolve(mode Mode) Theme {
	if termenv.EnvNoColor() || termenv.ColorProfile() == termenv.Ascii {
		return ASCII()
	}
	return themeFor(mode, lipgloss.HasDarkBackground())
}

func themeFor(mode Mode, darkBackground bool) Theme {
	switch mode {
	case ModeDark:
		return Dark()
	case ModeLight:
		return Light()
	case ModeASCII:
		return ASCII()
	default:
		if darkBackground {
			return Dark()
		}
		return Light()
	}
}

func Dark() Theme {
	return Theme{
		Name: "dark",
		Palette: Palette{
			BG:        "#1e1e2e",
			FG:        "#cdd6f4",
			Muted:     "#7f8ca3",
			Accent:    "#cba6f7",
			Success:   "#a6e3a1",
			Warning:   "#f9e2af",
			Danger:    "#f38ba8",
			Selection: "#89dceb",
		},
		Borders: Borders{Style: "rounded", Color: "#585b70"},
		Icons:   Icons{Mode: "unicode"},
		Components: ComponentStyles{
			AppHeader:   StyleSpec{FG: "#f5e0dc", BG: "#1e1e2e", Bold: true},
			GroupHeader: StyleSpec{FG: "#a6e3a1", Bold: true},
			GroupInfo:   StyleSpec{FG: "#7f8ca3", Italic: true},
			ListBody:    StyleSpec{FG: "#cdd6f4"},
			ListCursor:  StyleSpec{FG: "#1e1e2e", BG: "#f9e2af", Bold: true},
			ListInfo:    StyleSpec{FG: "#7f8ca3"},

			PreviewHeader: StyleSpec{FG: "#cba6f7", Bold: true},
			PreviewBody:   StyleSpec{FG: "#cdd6f4"},

			Separator:   StyleSpec{FG: "#585b70"},
			StatusBar:   StyleSpec{FG: "#cdd6f4", BG: "#11111b"},
			StatusLabel: StyleSpec{FG: "#94e2d5", Bold: true},
			StatusValue: StyleSpec{FG: "#f9e2af"},
			PromptLabel: StyleSpec{FG: "#1e1e2e", BG: "#cba6f7", Bold: true},
			PromptValue: StyleSpec{FG: "#f5e0dc"},

			MenuHeader:   StyleSpec{FG: "#f5e0dc", BG: "#312244", Bold: true},
			MenuItem:     StyleSpec{FG: "#cdd6f4"},
			MenuCursor:   StyleSpec{FG: "#1e1e2e", BG: "#cba6f7", Bold: true},
			MenuShortcut: StyleSpec{FG: "#94e2d5", Bold: true},

			ErrorBanner: StyleSpec{FG: "#1e1e2e", BG: "#f38ba8", Bold: true},
			WarningText: StyleSpec{FG: "#f9e2af", Italic: true},
		},
	}
}

func Light() Theme {
	return Theme{
		Name: "light",
		Palette: Palette{
			BG:        "#eff1f5",
			FG:        "#4c4f69",
			Muted:     "#8c8fa1",
			Accent:    "#8839ef",
			Success:   "#40a02b",
			Warning:   "#df8e1d",
			Danger:    "#d20f39",
			Selection: "#209fb5",
		},
		Borders: Borders{Style: "rounded", Color: "#9ca0b0"},
		Icons:   Icons{Mode: "unicode"},
		Components: ComponentStyles{
			AppHeader:   StyleSpec{FG: "#4c4f69", BG: "#eff1f5", Bold: true},
			GroupHeader: StyleSpec{FG: "#40a02b", Bold: true},
			GroupInfo:   StyleSpec{FG: "#8c8fa1", Italic: true},
			ListBody:    StyleSpec{FG: "#4c4f69"},
			ListCursor:  StyleSpec{FG: "#eff1f5", BG: "#df8e1d", Bold: true},
			ListInfo:    StyleSpec{FG: "#8c8fa1"},

			PreviewHeader: StyleSpec{FG: "#8839ef", Bold: true},
			PreviewBody:   StyleSpec{FG: "#4c4f69"},

			Separator:   StyleSpec{FG: "#9ca0b0"},
			StatusBar:   StyleSpec{FG: "#4c4f69", BG: "#e6e9ef"},
			StatusLabel: StyleSpec{FG: "#179299", Bold: true},
			StatusValue: StyleSpec{FG: "#df8e1d"},
			PromptLabel: StyleSpec{FG: "#eff1f5", BG: "#8839ef", Bold: true},
			PromptValue: StyleSpec{FG: "#4c4f69"},

			MenuHeader:   StyleSpec{FG: "#4c4f69", BG: "#dce0e8", Bold: true},
			MenuItem:     StyleSpec{FG: "#4c4f69"},
			MenuCursor:   StyleSpec{FG: "#eff1f5", BG: "#8839ef", Bold: true},
			MenuShortcut: StyleSpec{FG: "#179299", Bold: true},

			ErrorBanner: StyleSpec{FG: "#eff1f5", BG: "#d20f39", Bold: true},
			WarningText: StyleSpec{FG: "#df8e1d", Italic: true},
		},
	}
}

// ASCII is the colorless theme. Emphasis survives as bold where the
// terminal supports it; icons fall back to plain characters.
func ASCII() Theme {
	return Theme{
		Name:    "ascii",
		Borders: Borders{Style: "ascii"},
		Icons:   Icons{Mode: "ascii"},
		Components: ComponentStyles{
			AppHeader:   StyleSpec{Bold: true},
			GroupHeader: StyleSpec{Bold: true},
			ListCursor:  StyleSpec{Bold: true},

			PreviewHeader: StyleSpec{Bold: true},

			StatusLabel: StyleSpec{Bold: true},
			PromptLabel: StyleSpec{Bold: true},

			MenuHeader:   StyleSpec{Bold: true},
			MenuCursor:   StyleSpec{Bold: true},
			MenuShortcut: StyleSpec{Bold: true},

			ErrorBanner: StyleSpec{Bold: true},
		},
	}
}

// Style converts a spec into a lipgloss style. Empty colors stay unset
// so the terminal default shows through.
func (s StyleSpec) Style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.FG != "" {
		st = st.Foreground(lipgloss.Color(s.FG))
	}
	if s.BG != "" {
		st = st.Background(lipgloss.Color(s.BG))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Faint {
		st = st.Faint(true)
	}
	return st
}

var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// Border returns the lipgloss border for the theme's border style.
func (t Theme) Border() lipgloss.Border {
	switch t.Borders.Style {
	case "ascii":
		return asciiBorder
	case "normal":
		return lipgloss.NormalBorder()
	case "none":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func (t Theme) IconSet() IconSet {
	mode := strings.ToLower(strings.TrimSpace(t.Icons.Mode))
	var base IconSet
	switch mode {
	case "ascii":
		base = IconSet{
			Expanded:  "v",
			Collapsed: ">",
			Memory:    "[M]",
			Command:   "[C]",
			Settings:  "[S]",
			File:      "-",
			Warning:   "!",
			Selection: "|",
		}
	case "off":
		base = IconSet{}
	default:
		// unicode default
		base = IconSet{
			Expanded:  "▾",
			Collapsed: "▸",
			Memory:    "▣",
			Command:   "»",
			Settings:  "⚙",
			File:      "•",
			Warning:   "⚠",
			Selection: "▌",
		}
	}
	if t.Icons.Expanded != "" {
		base.Expanded = t.Icons.Expanded
	}
	if t.Icons.Collapsed != "" {
		base.Collapsed = t.Icons.Collapsed
	}
	if t.Icons.Memory != "" {
		base.Memory = t.Icons.Memory
	}
	if t.Icons.Command != "" {
		base.Command = t.Icons.Command
	}
	if t.Icons.Settings != "" {
		base.Settings = t.Icons.Settings
	}
	if t.Icons.File != "" {
		base.File = t.Icons.File
	}
	if t.Icons.Warning != "" {
		base.Warning = t.Icons.Warning
	}
	if t.Icons.Selection != "" {
		base.Selection = t.Icons.Selection
	}
	return base
}

// ClassIcon maps a record classification label to its icon.
func (s IconSet) ClassIcon(class string) string {
	switch class {
	case "command-definition":
		return s.Command
	case "settings", "settings-local":
		return s.Settings
	case "unknown":
		return s.File
	default:
		return s.Memory
	}
}
