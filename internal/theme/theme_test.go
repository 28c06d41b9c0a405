package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"dark", ModeDark},
		{"Light", ModeLight},
		{" ASCII ", ModeASCII},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseMode("solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solarized")
}

func TestThemeForSelection(t *testing.T) {
	assert.Equal(t, "dark", themeFor(ModeDark, false).Name)
	assert.Equal(t, "light", themeFor(ModeLight, true).Name)
	assert.Equal(t, "ascii", themeFor(ModeASCII, true).Name)
	assert.Equal(t, "dark", themeFor(ModeAuto, true).Name)
	assert.Equal(t, "light", themeFor(ModeAuto, false).Name)
}

func TestResolveHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	th := Resolve(ModeDark)
	assert.Equal(t, "ascii", th.Name)
	assert.Empty(t, th.Palette.Accent)
}

func TestIconSetModes(t *testing.T) {
	t.Run("unicode is the default", func(t *testing.T) {
		icons := Dark().IconSet()
		assert.Equal(t, "▾", icons.Expanded)
		assert.Equal(t, "»", icons.Command)
	})

	t.Run("ascii degrades every glyph", func(t *testing.T) {
		icons := ASCII().IconSet()
		assert.Equal(t, "v", icons.Expanded)
		assert.Equal(t, ">", icons.Collapsed)
		assert.Equal(t, "[C]", icons.Command)
		for _, glyph := range []string{
			icons.Expanded, icons.Collapsed, icons.Memory, icons.Command,
			icons.Settings, icons.File, icons.Warning, icons.Selection,
		} {
			for _, r := range glyph {
				assert.Less(t, r, rune(128), "glyph %q is not plain ascii", glyph)
			}
		}
	})

	t.Run("off blanks everything", func(t *testing.T) {
		th := Dark()
		th.Icons = Icons{Mode: "off"}
		assert.Equal(t, IconSet{}, th.IconSet())
	})

	t.Run("overrides beat the mode set", func(t *testing.T) {
		th := Dark()
		th.Icons.Command = "$"
		icons := th.IconSet()
		assert.Equal(t, "$", icons.Command)
		assert.Equal(t, "▾", icons.Expanded, "untouched fields keep the mode default")
	})
}

func TestClassIcon(t *testing.T) {
	icons := Dark().IconSet()
	assert.Equal(t, icons.Command, icons.ClassIcon("command-definition"))
	assert.Equal(t, icons.Settings, icons.ClassIcon("settings"))
	assert.Equal(t, icons.Settings, icons.ClassIcon("settings-local"))
	assert.Equal(t, icons.File, icons.ClassIcon("unknown"))
	assert.Equal(t, icons.Memory, icons.ClassIcon("project-config"))
}

func TestStyleSpecStyle(t *testing.T) {
	st := StyleSpec{FG: "#ff0000", BG: "#000000", Bold: true, Italic: true}.Style()
	assert.Equal(t, lipgloss.Color("#ff0000"), st.GetForeground())
	assert.Equal(t, lipgloss.Color("#000000"), st.GetBackground())
	assert.True(t, st.GetBold())
	assert.True(t, st.GetItalic())
	assert.False(t, st.GetFaint())

	empty := StyleSpec{}.Style()
	assert.Equal(t, lipgloss.NoColor{}, empty.GetForeground())
	assert.False(t, empty.GetBold())
}

func TestBorderStyles(t *testing.T) {
	assert.Equal(t, lipgloss.RoundedBorder(), Dark().Border())
	assert.Equal(t, "+", ASCII().Border().TopLeft)

	th := Dark()
	th.Borders.Style = "normal"
	assert.Equal(t, lipgloss.NormalBorder(), th.Border())
}
