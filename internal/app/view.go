package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"ccfiles/internal/menu"
	"ccfiles/internal/scan"
)

// pad or truncate a string to exactly width columns. Width math runs on
// plain text; callers style the padded result, so ANSI sequences never
// enter the column count.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w > width {
		s = runewidth.Truncate(s, width, "")
		w = runewidth.StringWidth(s)
	}
	return s + strings.Repeat(" ", width-w)
}

// fit or pad lines to a given height.
func fitLines(lines []string, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func (m Model) View() string {
	var b strings.Builder
	st := m.theme.Components
	width := m.frameWidth()

	// Header (full width)
	b.WriteString(st.AppHeader.Style().Render(padRight(" ccfiles  "+rootsLabel(m.roots), width)))
	b.WriteString("\n")

	// Banner line: a scan error stays up until the next scan replaces it.
	if m.banner != "" {
		b.WriteString(st.ErrorBanner.Style().Render(padRight(" Scan error: "+m.banner, width)))
	}
	b.WriteString("\n")

	listWidth, previewWidth := m.panelWidths(width)
	height := m.viewportHeight

	listLines := m.renderListPanel(listWidth, height)
	var rightLines []string
	if m.menu.IsOpen() {
		rightLines = m.renderMenuPanel(previewWidth, height)
	} else {
		rightLines = m.renderPreviewPanel(previewWidth, height)
	}

	// The list lines come back already padded to listWidth; the right
	// panel is last on the row and needs no padding.
	sep := st.Separator.Style().Render(" │ ")
	for i := 0; i < height; i++ {
		ll := ""
		if i < len(listLines) {
			ll = listLines[i]
		}
		rl := ""
		if i < len(rightLines) {
			rl = rightLines[i]
		}
		b.WriteString(ll)
		b.WriteString(sep)
		b.WriteString(rl)
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine(width))

	return b.String()
}

// panelWidths splits the window between the list and the right panel.
func (m Model) panelWidths(total int) (int, int) {
	const separatorWidth = 3 // " │ "
	listWidth := int(float64(total) * 0.55)
	if listWidth < 30 {
		listWidth = 30
	}
	previewWidth := total - listWidth - separatorWidth
	if previewWidth < 20 {
		previewWidth = 20
	}
	return listWidth, previewWidth
}

// listRows renders every visible row in order; renderListPanel windows
// them. Row order must stay in step with cursorRow and rowCursor.
func (m Model) listRows(width int) []string {
	st := m.theme.Components
	cur := m.session.Cursor()

	var rows []string
	for gi, g := range m.session.Visible() {
		marker := m.icons.Expanded
		if !g.Expanded {
			marker = m.icons.Collapsed
		}
		header := fmt.Sprintf("%s %s (%d)", marker, g.Classification.Label(), len(g.Records))
		if cur.OnGroup && cur.Group == gi {
			rows = append(rows, st.ListCursor.Style().Render(padRight(m.icons.Selection+header, width)))
		} else {
			rows = append(rows, st.GroupHeader.Style().Render(padRight(" "+header, width)))
		}
		if !g.Expanded {
			continue
		}
		for fi, rec := range g.Records {
			icon := m.icons.ClassIcon(string(rec.Classification))
			name := fmt.Sprintf("%s %s", icon, rec.DisplayName())
			info := fileInfo(rec)

			if !cur.OnGroup && cur.Group == gi && cur.File == fi {
				line := m.icons.Selection + "  " + name
				if info != "" {
					line += "  " + info
				}
				rows = append(rows, st.ListCursor.Style().Render(padRight(line, width)))
				continue
			}

			// Two tones on one row: the name span keeps its exact width
			// and the dimmed tail is padded to fill the rest.
			left := "   " + name + "  "
			lw := runewidth.StringWidth(left)
			if lw >= width {
				rows = append(rows, st.ListBody.Style().Render(padRight(left, width)))
				continue
			}
			rows = append(rows,
				st.ListBody.Style().Render(left)+
					st.ListInfo.Style().Render(padRight(info, width-lw)))
		}
	}
	return rows
}

func (m Model) renderListPanel(width, height int) []string {
	blank := strings.Repeat(" ", width)
	rows := m.listRows(width)

	if len(rows) == 0 {
		msg := " (no files found)"
		if m.scanning {
			msg = " scanning..."
		} else if m.session.Query() != "" {
			msg = " (no matches)"
		}
		rows = []string{blank, m.theme.Components.ListInfo.Style().Render(padRight(msg, width))}
	} else {
		end := m.viewportStart + height
		if end > len(rows) {
			end = len(rows)
		}
		start := m.viewportStart
		if start > end {
			start = end
		}
		rows = rows[start:end]
	}

	for len(rows) < height {
		rows = append(rows, blank)
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func (m Model) renderPreviewPanel(width, height int) []string {
	st := m.theme.Components

	rec, ok := m.session.Selected()
	if !ok {
		lines := []string{"", st.ListInfo.Style().Render(" No selection")}
		return fitLines(lines, height)
	}

	icon := m.icons.ClassIcon(string(rec.Classification))
	title := fmt.Sprintf(" %s %s", icon, rec.DisplayName())
	lines := []string{st.PreviewHeader.Style().Render(padRight(title, width))}

	info := fmt.Sprintf(" %s  %s",
		humanize.IBytes(uint64(rec.SizeBytes)),
		rec.LastModified.Format("2006-01-02 15:04"))
	if rec.Command != nil {
		info += "  " + string(rec.Command.Scope)
	}
	lines = append(lines, st.GroupInfo.Style().Render(info))

	lines = append(lines, strings.Split(m.preview.View(), "\n")...)
	return fitLines(lines, height)
}

func (m Model) renderMenuPanel(width, height int) []string {
	st := m.theme.Components
	rec := m.menu.Record()

	lines := []string{
		st.MenuHeader.Style().Render(padRight(" "+rec.DisplayName(), width)),
		"",
	}

	switch m.menu.Phase() {
	case menu.PhaseConfirming:
		// The prompt sits in a box drawn with the theme border. The menu
		// panel ends the row, so the box needs no column padding.
		box := lipgloss.NewStyle().
			Border(m.theme.Border()).
			Padding(0, 1).
			Width(width - 2)
		if c := m.theme.Borders.Color; c != "" {
			box = box.BorderForeground(lipgloss.Color(c))
		}
		body := st.WarningText.Style().Render(m.menu.Prompt()) +
			"\n\n" +
			st.GroupInfo.Style().Render("[y] confirm  [n] cancel")
		lines = append(lines, strings.Split(box.Render(body), "\n")...)

	case menu.PhaseExecuting:
		lines = append(lines, " "+m.spinner.View()+" working...")

	default:
		for i, a := range m.menu.Actions() {
			if i == m.menu.Selected() {
				lines = append(lines, st.MenuCursor.Style().Render(
					fmt.Sprintf("%s %c  %s", m.icons.Selection, a.Key, a.Label)))
				continue
			}
			lines = append(lines, "  "+
				st.MenuShortcut.Style().Render(string(a.Key))+"  "+
				st.MenuItem.Style().Render(a.Label))
		}
		lines = append(lines, "",
			st.GroupInfo.Style().Render(" [enter] run  [esc] close"))
	}

	return fitLines(lines, height)
}

func (m Model) renderHelpLine() string {
	st := m.theme.Components

	if q := m.session.Query(); q != "" {
		cursor := "█"
		if m.theme.Name == "ascii" {
			cursor = "_"
		}
		return st.PromptLabel.Style().Render(" Filter ") +
			st.PromptValue.Style().Render(" "+q+cursor)
	}

	return " " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) renderStatusLine(width int) string {
	st := m.theme.Components

	text, isErr := m.menu.Message()
	style := st.StatusValue
	if text != "" && isErr {
		style = st.ErrorBanner
	}
	if text == "" {
		text = m.statusMessage(time.Now())
	}

	counts := fmt.Sprintf("%d/%d files", m.session.VisibleCount(), m.session.TotalCount())
	if n := len(m.warnings); n > 0 {
		counts = fmt.Sprintf("%s  %d warning(s)", counts, n)
	}

	// The spinner frame arrives pre-styled, so it is counted by hand as
	// one column plus a space instead of going through padRight.
	prefix := ""
	prefixWidth := 0
	if m.scanning {
		prefix = m.spinner.View() + " "
		prefixWidth = 2
	}

	left := " " + text
	right := counts + " "
	gap := width - prefixWidth - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return prefix + style.Style().Render(padRight(left, width-prefixWidth))
	}

	line := prefix + style.Style().Render(left) + strings.Repeat(" ", gap)
	if len(m.warnings) > 0 {
		return line + st.WarningText.Style().Render(right)
	}
	return line + st.StatusLabel.Style().Render(right)
}

// fileInfo is the dimmed tail of a list row.
func fileInfo(rec scan.Record) string {
	if rec.Command != nil && rec.Command.Description != "" {
		return rec.Command.Description
	}
	return humanize.IBytes(uint64(rec.SizeBytes))
}
