package app

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ccfiles/internal/browse"
	"ccfiles/internal/menu"
	"ccfiles/internal/scan"
)

type scanFinishedMsg struct {
	batch scan.Batch
	err   error
}

type actionFinishedMsg struct {
	result menu.Result
}

type clearMenuMessageMsg struct {
	seq int
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewportHeight = msg.Height - chromeRows
		if m.viewportHeight < 1 {
			m.viewportHeight = 1
		}
		m.rebuildRenderer()
		m.resizePreview()
		m.refreshPreview()
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		if !m.scanning && m.menu.Phase() != menu.PhaseExecuting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanFinishedMsg:
		m.scanning = false
		// A scan that failed outright keeps the previous records on
		// screen; a partial result still replaces them.
		if msg.err == nil || len(msg.batch.Records) > 0 {
			m.warnings = msg.batch.Warnings
			m.session.SetRecords(msg.batch.Records)
		}
		m.afterNavigation()
		if msg.err != nil {
			m.banner = msg.err.Error()
			m.setStatus("Scan failed: " + msg.err.Error())
		} else {
			m.banner = ""
			m.setStatus(fmt.Sprintf("Scanned %d file(s), %d warning(s)",
				len(msg.batch.Records), len(msg.batch.Warnings)))
		}
		m.log.V(1).Info("scan applied",
			"records", len(msg.batch.Records),
			"warnings", len(msg.batch.Warnings))
		return m, nil

	case actionFinishedMsg:
		m.menu.Finish(msg.result)
		if msg.result.Err != nil {
			m.log.Error(msg.result.Err, "action failed", "action", msg.result.Action.Label)
		}
		return m, m.scheduleMenuClear()

	case clearMenuMessageMsg:
		m.menu.ClearMessage(msg.seq)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		// ===========================
		//  ACTION MENU MODE
		// ===========================
		if m.menu.IsOpen() {
			return m.updateMenu(msg)
		}

		// ===========================
		//  BROWSE MODE
		// ===========================
		switch key {

		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.session.Apply(browse.Event{Kind: browse.EventEscape}) == browse.EffectQuit {
				return m, tea.Quit
			}
			m.afterNavigation()
			m.setStatus("Filter cleared")

		case "up":
			m.session.Apply(browse.Event{Kind: browse.EventMoveUp})
			m.afterNavigation()

		case "down":
			m.session.Apply(browse.Event{Kind: browse.EventMoveDown})
			m.afterNavigation()

		case "left":
			m.session.Apply(browse.Event{Kind: browse.EventCollapse})
			m.afterNavigation()

		case "right":
			m.session.Apply(browse.Event{Kind: browse.EventExpand})
			m.afterNavigation()

		case "enter", " ":
			if m.session.Apply(browse.Event{Kind: browse.EventSelect}) == browse.EffectOpenMenu {
				if rec, ok := m.session.Selected(); ok {
					m.menu.Open(rec)
				}
			}
			m.afterNavigation()

		case "backspace":
			m.session.Apply(browse.Event{Kind: browse.EventBackspace})
			m.afterNavigation()

		case "ctrl+u":
			m.session.Apply(browse.Event{Kind: browse.EventClearQuery})
			m.afterNavigation()

		case "ctrl+r":
			return m.startRescan()

		case "pgup":
			m.preview.HalfViewUp()

		case "pgdown":
			m.preview.HalfViewDown()

		default:
			if r, ok := printableRune(msg); ok {
				m.session.Apply(browse.Event{Kind: browse.EventRune, Rune: r})
				m.afterNavigation()
			}
		}
		return m, nil
	}

	return m, nil
}

// updateMenu owns every key while the menu is raised. A running action
// discards input until it settles.
func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.menu.Phase() {

	case menu.PhaseExecuting:
		return m, nil

	case menu.PhaseConfirming:
		switch key {
		case "y", "Y", "enter":
			if action, ok := m.menu.Answer(true); ok {
				return m, m.actionCmd(action, true)
			}
		case "n", "N", "esc":
			m.menu.Answer(false)
			return m, m.scheduleMenuClear()
		}
		return m, nil

	default:
		switch key {
		case "up", "k":
			m.menu.MoveUp()
		case "down", "j":
			m.menu.MoveDown()
		case "enter":
			if action, ok := m.menu.StartSelected(); ok {
				return m, m.actionCmd(action, false)
			}
		case "esc":
			m.menu.Escape()
		default:
			if r, ok := printableRune(msg); ok {
				if action, ok := m.menu.StartShortcut(r); ok {
					return m, m.actionCmd(action, false)
				}
			}
		}
		return m, nil
	}
}

func (m Model) actionCmd(action menu.Action, confirmed bool) tea.Cmd {
	collab := m.collab
	rec := m.menu.Record()
	exec := func() tea.Msg {
		return actionFinishedMsg{result: menu.Execute(collab, action, rec, confirmed)}
	}
	return tea.Batch(m.spinner.Tick, exec)
}

func (m Model) scheduleMenuClear() tea.Cmd {
	message, _ := m.menu.Message()
	if message == "" {
		return nil
	}
	seq := m.menu.Seq()
	return tea.Tick(m.menu.MessageTTL(), func(time.Time) tea.Msg {
		return clearMenuMessageMsg{seq: seq}
	})
}

func (m Model) scanCmd() tea.Cmd {
	scanner := m.scanner
	roots := m.roots
	return func() tea.Msg {
		batch, err := scanner.Scan(context.Background(), roots)
		return scanFinishedMsg{batch: batch, err: err}
	}
}

func (m Model) startRescan() (tea.Model, tea.Cmd) {
	if m.scanning {
		m.setStatus("Scan already running")
		return m, nil
	}
	m.scanning = true
	m.setPersistentStatus("Rescanning...")
	return m, tea.Batch(m.spinner.Tick, m.scanCmd())
}

func printableRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
