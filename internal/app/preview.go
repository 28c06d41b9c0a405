package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

// rebuildRenderer recreates the markdown renderer at the current preview
// width. A nil renderer falls back to raw text.
func (m *Model) rebuildRenderer() {
	_, previewWidth := m.panelWidths(m.frameWidth())

	style := "notty"
	switch m.theme.Name {
	case "dark":
		style = "dark"
	case "light":
		style = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(previewWidth-2),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

func (m *Model) resizePreview() {
	_, previewWidth := m.panelWidths(m.frameWidth())
	m.preview.Width = previewWidth
	h := m.viewportHeight - 2 // title and info rows sit above the text
	if h < 1 {
		h = 1
	}
	m.preview.Height = h
}

// frameWidth is the window width with the pre-WindowSizeMsg fallback
// View also uses.
func (m Model) frameWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// updatePreview loads the selected file into the preview viewport. The
// path short-circuit keeps plain navigation cheap when the selection
// did not change.
func (m *Model) updatePreview() {
	rec, ok := m.session.Selected()
	if !ok {
		m.previewPath = ""
		m.preview.SetContent("")
		return
	}
	if rec.Path == m.previewPath {
		return
	}
	m.previewPath = rec.Path

	content, err := m.collab.ReadFileContent(rec.Path)
	if err != nil {
		m.preview.SetContent(" " + err.Error())
		m.preview.GotoTop()
		return
	}

	if strings.HasSuffix(rec.Path, ".md") && m.renderer != nil {
		if out, rerr := m.renderer.Render(content); rerr == nil {
			content = out
		}
	} else {
		// The renderer wraps markdown itself; plain text is clipped to
		// the panel. Styled output must never pass through clipLines.
		content = clipLines(content, m.preview.Width)
	}

	m.preview.SetContent(content)
	m.preview.GotoTop()
}

// refreshPreview rereads the selection even when the path is unchanged,
// as after a re-scan or a resize.
func (m *Model) refreshPreview() {
	m.previewPath = ""
	m.updatePreview()
}

func clipLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if runewidth.StringWidth(l) > width {
			lines[i] = runewidth.Truncate(l, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
