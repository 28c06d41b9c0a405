package browse

import "ccfiles/internal/scan"

// EventKind classifies one navigation input.
type EventKind int

const (
	EventMoveUp EventKind = iota
	EventMoveDown
	EventSelect     // enter or space
	EventEscape     // clear the query, or quit when it is empty
	EventBackspace  // drop the last query rune
	EventClearQuery // wipe the whole query
	EventCollapse   // left arrow
	EventExpand     // right arrow
	EventRune       // printable character appended to the query
)

// Event is one input to the automaton. Rune is only read for EventRune.
type Event struct {
	Kind EventKind
	Rune rune
}

// Effect is what the caller must do after a transition. Everything else
// is internal state change.
type Effect int

const (
	EffectNone Effect = iota
	EffectOpenMenu // open the action menu for the selected record
	EffectQuit     // terminate the session
)

// Cursor addresses one position in the visible group list: either a
// group header (OnGroup) or a file within a group.
type Cursor struct {
	Group   int
	File    int
	OnGroup bool
}

// Session is the navigation automaton over the filtered group
// hierarchy. Transitions are synchronous and pure with respect to the
// terminal: Apply never performs I/O.
type Session struct {
	groups  []Group // unfiltered; owns the Expanded flags
	visible []Group
	query   string
	cursor  Cursor
}

func NewSession(records []scan.Record) *Session {
	s := &Session{}
	s.SetRecords(records)
	return s
}

// SetRecords replaces the record set, as after a re-scan. Expansion
// flags carry over by classification and the cursor is clamped, not
// reset: this is a structural change, not a query change.
func (s *Session) SetRecords(records []scan.Record) {
	s.groups = BuildGroups(records, ExpandedFlags(s.groups))
	s.refilter()
	s.clamp()
}

// Apply runs one transition and reports the effect the caller must
// carry out.
func (s *Session) Apply(ev Event) Effect {
	switch ev.Kind {
	case EventMoveDown:
		s.moveDown()
	case EventMoveUp:
		s.moveUp()
	case EventSelect:
		return s.selectCurrent()
	case EventEscape:
		if s.query != "" {
			s.setQuery("")
			return EffectNone
		}
		return EffectQuit
	case EventBackspace:
		if s.query != "" {
			runes := []rune(s.query)
			s.setQuery(string(runes[:len(runes)-1]))
		}
	case EventClearQuery:
		if s.query != "" {
			s.setQuery("")
		}
	case EventRune:
		if ev.Rune != 0 {
			s.setQuery(s.query + string(ev.Rune))
		}
	case EventCollapse:
		s.collapse()
	case EventExpand:
		s.expand()
	}
	return EffectNone
}

func (s *Session) Visible() []Group { return s.visible }
func (s *Session) Query() string    { return s.query }
func (s *Session) Cursor() Cursor   { return s.cursor }
func (s *Session) Empty() bool      { return len(s.visible) == 0 }

// SetCursor places the cursor explicitly, normalized the same way
// structural changes are. Mouse hit testing lands here.
func (s *Session) SetCursor(c Cursor) {
	s.cursor = c
	s.clamp()
}

// Selected returns the record under a file-level cursor. No record is
// selected while the cursor sits on a group header or the view is
// empty.
func (s *Session) Selected() (scan.Record, bool) {
	if s.cursor.OnGroup || s.cursor.Group >= len(s.visible) {
		return scan.Record{}, false
	}
	g := s.visible[s.cursor.Group]
	if s.cursor.File >= len(g.Records) {
		return scan.Record{}, false
	}
	return g.Records[s.cursor.File], true
}

// VisibleCount is the number of records in the filtered view.
func (s *Session) VisibleCount() int {
	n := 0
	for _, g := range s.visible {
		n += len(g.Records)
	}
	return n
}

// TotalCount is the number of records before filtering.
func (s *Session) TotalCount() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Records)
	}
	return n
}

// setQuery is the single entry point for query changes. Every change
// refilters and resets the cursor to the first file position, even when
// the old selection would have survived the new filter. The clamp only
// moves the cursor onto the header when the first group is collapsed.
func (s *Session) setQuery(q string) {
	s.query = q
	s.refilter()
	s.cursor = Cursor{}
	s.clamp()
}

func (s *Session) refilter() {
	s.visible = Filter(s.groups, s.query)
}

// clamp pulls the cursor back into range after structural changes
// (expand/collapse, re-scan). A file cursor inside a collapsed group
// falls back to the group header.
func (s *Session) clamp() {
	if len(s.visible) == 0 {
		s.cursor = Cursor{}
		return
	}
	if s.cursor.Group >= len(s.visible) {
		s.cursor = Cursor{Group: len(s.visible) - 1, OnGroup: true}
		return
	}
	g := s.visible[s.cursor.Group]
	if s.cursor.OnGroup {
		s.cursor.File = 0
		return
	}
	if !g.Expanded {
		s.cursor = Cursor{Group: s.cursor.Group, OnGroup: true}
		return
	}
	if s.cursor.File >= len(g.Records) {
		s.cursor.File = len(g.Records) - 1
	}
}

func (s *Session) moveDown() {
	if len(s.visible) == 0 {
		return
	}
	cur := s.cursor
	g := s.visible[cur.Group]
	if cur.OnGroup || !g.Expanded {
		if cur.OnGroup && g.Expanded && len(g.Records) > 0 {
			s.cursor = Cursor{Group: cur.Group, File: 0}
			return
		}
		if cur.Group < len(s.visible)-1 {
			s.cursor = Cursor{Group: cur.Group + 1, OnGroup: true}
		}
		return
	}
	if cur.File < len(g.Records)-1 {
		s.cursor.File++
		return
	}
	if cur.Group < len(s.visible)-1 {
		s.cursor = Cursor{Group: cur.Group + 1, OnGroup: true}
	}
}

func (s *Session) moveUp() {
	if len(s.visible) == 0 {
		return
	}
	cur := s.cursor
	if cur.OnGroup {
		if cur.Group == 0 {
			return
		}
		prev := s.visible[cur.Group-1]
		if prev.Expanded && len(prev.Records) > 0 {
			s.cursor = Cursor{Group: cur.Group - 1, File: len(prev.Records) - 1}
			return
		}
		s.cursor = Cursor{Group: cur.Group - 1, OnGroup: true}
		return
	}
	g := s.visible[cur.Group]
	if !g.Expanded || cur.File == 0 {
		s.cursor = Cursor{Group: cur.Group, OnGroup: true}
		return
	}
	s.cursor.File--
}

// selectCurrent toggles a group under a header cursor and asks for the
// action menu under a file cursor.
func (s *Session) selectCurrent() Effect {
	if len(s.visible) == 0 {
		return EffectNone
	}
	g := s.visible[s.cursor.Group]
	if s.cursor.OnGroup || !g.Expanded {
		s.toggleGroup(g.Classification)
		return EffectNone
	}
	if _, ok := s.Selected(); !ok {
		return EffectNone
	}
	return EffectOpenMenu
}

func (s *Session) collapse() {
	if len(s.visible) == 0 {
		return
	}
	class := s.visible[s.cursor.Group].Classification
	s.cursor = Cursor{Group: s.cursor.Group, OnGroup: true}
	s.setExpanded(class, false)
}

func (s *Session) expand() {
	if len(s.visible) == 0 {
		return
	}
	s.setExpanded(s.visible[s.cursor.Group].Classification, true)
}

// setExpanded flips the flag on the underlying group; the visible view
// only ever holds copies when a filter is active.
func (s *Session) setExpanded(class scan.Classification, expanded bool) {
	for i := range s.groups {
		if s.groups[i].Classification == class {
			s.groups[i].Expanded = expanded
			break
		}
	}
	s.refilter()
	s.clamp()
}

func (s *Session) toggleGroup(class scan.Classification) {
	for _, g := range s.groups {
		if g.Classification == class {
			s.setExpanded(class, !g.Expanded)
			return
		}
	}
}
