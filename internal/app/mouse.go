package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ccfiles/internal/browse"
)

// handleMouse implements basic mouse interactions:
// - Scroll wheel: move the list cursor.
// - Left click: place the cursor; double-click opens the action menu.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The raised menu is keyboard-only.
	if m.menu.IsOpen() {
		return m, nil
	}
	switch msg.Type {
	case tea.MouseWheelUp:
		return m.scrollMouse(-1), nil
	case tea.MouseWheelDown:
		return m.scrollMouse(1), nil
	case tea.MouseLeft:
		return m.clickMouse(msg), nil
	default:
		return m, nil
	}
}

func (m Model) scrollMouse(delta int) Model {
	kind := browse.EventMoveUp
	if delta > 0 {
		kind = browse.EventMoveDown
	}
	m.session.Apply(browse.Event{Kind: kind})
	m.afterNavigation()
	return m
}

func (m Model) clickMouse(msg tea.MouseMsg) Model {
	localY, ok := m.clickInListPanel(msg)
	if !ok {
		return m
	}
	row := m.viewportStart + localY
	cur, ok := m.rowCursor(row)
	if !ok {
		return m
	}
	m.session.SetCursor(cur)
	m.afterNavigation()

	now := time.Now()
	if row == m.lastClickRow && now.Sub(m.lastClickAt) < 500*time.Millisecond {
		// double-click: same as enter
		if m.session.Apply(browse.Event{Kind: browse.EventSelect}) == browse.EffectOpenMenu {
			if rec, ok := m.session.Selected(); ok {
				m.menu.Open(rec)
			}
		}
		m.afterNavigation()
		m.lastClickRow = -1
		m.lastClickAt = time.Time{}
		return m
	}
	m.lastClickRow = row
	m.lastClickAt = now
	return m
}

// clickInListPanel returns the local Y (relative to the list area) and
// ok when the click lands inside the list panel.
func (m Model) clickInListPanel(msg tea.MouseMsg) (int, bool) {
	if m.width <= 0 || m.viewportHeight <= 0 {
		return 0, false
	}

	listWidth, _ := m.panelWidths(m.frameWidth())
	if msg.X < 0 || msg.X >= listWidth {
		return 0, false
	}

	// Vertical hit test: the header and banner rows sit above the panels.
	const headerLines = 2
	listStartY := headerLines
	listEndY := listStartY + m.viewportHeight
	if msg.Y < listStartY || msg.Y >= listEndY {
		return 0, false
	}
	return msg.Y - listStartY, true
}
