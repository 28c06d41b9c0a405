package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/go-logr/logr"

	"ccfiles/internal/browse"
	"ccfiles/internal/menu"
	"ccfiles/internal/scan"
	"ccfiles/internal/theme"
)

const statusMessageTTL = 4 * time.Second

// chromeRows is the fixed vertical space around the panels: header,
// banner line, help line and status line.
const chromeRows = 4

// Options carries everything the model needs. A nil Collaborators
// falls back to the real system calls.
type Options struct {
	Scanner       *scan.Scanner
	Roots         []scan.Root
	Theme         theme.Theme
	Log           logr.Logger
	Collaborators menu.Collaborators
}

type Model struct {
	session *browse.Session
	menu    menu.State

	scanner *scan.Scanner
	roots   []scan.Root
	collab  menu.Collaborators
	log     logr.Logger

	theme theme.Theme
	icons theme.IconSet

	keys keyMap
	help help.Model

	scanning bool
	spinner  spinner.Model
	banner   string
	warnings []string

	status   string
	statusAt time.Time
	sticky   bool

	width          int
	height         int
	viewportStart  int
	viewportHeight int

	preview     viewport.Model
	previewPath string
	renderer    *glamour.TermRenderer

	lastClickRow int
	lastClickAt  time.Time
}

func NewModel(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Theme.Components.StatusLabel.Style()

	hp := help.New()
	hp.ShortSeparator = "  "
	hp.Styles.ShortKey = opts.Theme.Components.MenuShortcut.Style()
	hp.Styles.ShortDesc = opts.Theme.Components.GroupInfo.Style()
	hp.Styles.ShortSeparator = opts.Theme.Components.GroupInfo.Style()

	collab := opts.Collaborators
	if collab == nil {
		collab = systemCollaborators{}
	}

	m := Model{
		session:        browse.NewSession(nil),
		scanner:        opts.Scanner,
		roots:          opts.Roots,
		collab:         collab,
		log:            opts.Log,
		theme:          opts.Theme,
		icons:          opts.Theme.IconSet(),
		keys:           defaultKeyMap(),
		help:           hp,
		spinner:        sp,
		viewportHeight: 20,
		preview:        viewport.New(0, 0),
		lastClickRow:   -1,
	}
	m.scanning = true
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scanCmd())
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusAt = time.Now()
	m.sticky = false
}

func (m *Model) setPersistentStatus(msg string) {
	m.status = msg
	m.statusAt = time.Now()
	m.sticky = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusAt = time.Time{}
	m.sticky = false
}

func (m Model) statusMessage(now time.Time) string {
	if m.status == "" {
		return ""
	}
	if m.sticky || m.statusAt.IsZero() {
		return m.status
	}
	if now.Sub(m.statusAt) > statusMessageTTL {
		return ""
	}
	return m.status
}

// cursorRow maps the session cursor onto its flat row index in the
// rendered list, counting group headers and visible files.
func (m Model) cursorRow() int {
	cur := m.session.Cursor()
	row := 0
	for gi, g := range m.session.Visible() {
		if cur.OnGroup && cur.Group == gi {
			return row
		}
		row++
		if !g.Expanded {
			continue
		}
		for fi := range g.Records {
			if !cur.OnGroup && cur.Group == gi && cur.File == fi {
				return row
			}
			row++
		}
	}
	return 0
}

func (m Model) totalRows() int {
	rows := 0
	for _, g := range m.session.Visible() {
		rows++
		if g.Expanded {
			rows += len(g.Records)
		}
	}
	return rows
}

// rowCursor inverts cursorRow for mouse hit testing.
func (m Model) rowCursor(row int) (browse.Cursor, bool) {
	i := 0
	for gi, g := range m.session.Visible() {
		if i == row {
			return browse.Cursor{Group: gi, OnGroup: true}, true
		}
		i++
		if !g.Expanded {
			continue
		}
		for fi := range g.Records {
			if i == row {
				return browse.Cursor{Group: gi, File: fi}, true
			}
			i++
		}
	}
	return browse.Cursor{}, false
}

func (m *Model) ensureCursorVisible() {
	row := m.cursorRow()
	if row < m.viewportStart {
		m.viewportStart = row
	}
	if row >= m.viewportStart+m.viewportHeight {
		m.viewportStart = row - m.viewportHeight + 1
	}
	if m.viewportStart < 0 {
		m.viewportStart = 0
	}
}

// afterNavigation keeps the viewport and preview in step with the
// cursor after any session change.
func (m *Model) afterNavigation() {
	m.ensureCursorVisible()
	m.updatePreview()
}

func rootsLabel(roots []scan.Root) string {
	parts := make([]string, 0, len(roots))
	for _, r := range roots {
		label := r.Path
		if !r.Recursive {
			label += " (bounded)"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}
