// Package menu holds the action menu state machine. Transitions are
// pure; the I/O behind each action lives in Execute so the app can run
// it off the update loop.
package menu

import (
	"time"

	"ccfiles/internal/scan"
)

// Phase is the menu lifecycle position.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseExecuting
	PhaseConfirming
)

// Message TTLs. Errors stay visible longer than confirmations.
const (
	SuccessMessageTTL = 2 * time.Second
	ErrorMessageTTL   = 6 * time.Second
)

// State is the menu automaton. Exactly one action runs at a time: once
// a phase reaches PhaseExecuting, input is discarded until Finish.
type State struct {
	phase    Phase
	record   scan.Record
	actions  []Action
	selected int
	pending  Action
	prompt   string
	message  string
	isError  bool
	seq      int
}

// Open raises the menu over a record and resets the selection.
func (s *State) Open(rec scan.Record) {
	s.phase = PhaseOpen
	s.record = rec
	s.actions = ActionsFor(rec.Classification)
	s.selected = 0
	s.message = ""
	s.isError = false
}

// Phase reports the current lifecycle position.
func (s *State) Phase() Phase { return s.phase }

// IsOpen reports whether the menu owns keyboard input.
func (s *State) IsOpen() bool { return s.phase != PhaseClosed }

// Record returns the file the menu is acting on.
func (s *State) Record() scan.Record { return s.record }

// Actions returns the entries on display.
func (s *State) Actions() []Action { return s.actions }

// Selected returns the highlighted entry index.
func (s *State) Selected() int { return s.selected }

// Prompt returns the confirmation question while PhaseConfirming.
func (s *State) Prompt() string { return s.prompt }

// Message returns the last outcome text and whether it is an error.
func (s *State) Message() (string, bool) { return s.message, s.isError }

// Seq numbers outcome messages so delayed clears can tell whether the
// message they were scheduled for is still on screen.
func (s *State) Seq() int { return s.seq }

// MoveDown advances the selection. No wrap.
func (s *State) MoveDown() {
	if s.phase != PhaseOpen {
		return
	}
	if s.selected < len(s.actions)-1 {
		s.selected++
	}
}

// MoveUp retreats the selection. No wrap.
func (s *State) MoveUp() {
	if s.phase != PhaseOpen {
		return
	}
	if s.selected > 0 {
		s.selected--
	}
}

// StartSelected begins executing the highlighted action. The returned
// flag is false when the menu is not open.
func (s *State) StartSelected() (Action, bool) {
	if s.phase != PhaseOpen || len(s.actions) == 0 {
		return Action{}, false
	}
	s.phase = PhaseExecuting
	return s.actions[s.selected], true
}

// StartShortcut begins executing the action bound to r, if any.
func (s *State) StartShortcut(r rune) (Action, bool) {
	if s.phase != PhaseOpen {
		return Action{}, false
	}
	for i, a := range s.actions {
		if a.Key == r {
			s.selected = i
			s.phase = PhaseExecuting
			return a, true
		}
	}
	return Action{}, false
}

// Finish settles an execution. Success and failure both close the menu
// and leave an outcome message; a confirmation request parks the action
// and waits for Answer.
func (s *State) Finish(res Result) {
	if s.phase != PhaseExecuting {
		return
	}
	if res.NeedsConfirm {
		s.phase = PhaseConfirming
		s.pending = res.Action
		s.prompt = res.Prompt
		return
	}
	s.phase = PhaseClosed
	s.seq++
	if res.Err != nil {
		s.message = res.Err.Error()
		s.isError = true
		return
	}
	s.message = res.Message
	s.isError = false
}

// Answer resolves a confirmation prompt. Yes re-runs the pending action
// with the size gate lifted; no closes the menu quietly.
func (s *State) Answer(yes bool) (Action, bool) {
	if s.phase != PhaseConfirming {
		return Action{}, false
	}
	s.prompt = ""
	if yes {
		s.phase = PhaseExecuting
		return s.pending, true
	}
	s.phase = PhaseClosed
	s.seq++
	s.message = "Cancelled"
	s.isError = false
	return Action{}, false
}

// Escape dismisses the menu. It reports whether the key was consumed;
// a running action cannot be cancelled, so PhaseExecuting refuses it.
func (s *State) Escape() bool {
	switch s.phase {
	case PhaseOpen:
		s.phase = PhaseClosed
		return true
	case PhaseConfirming:
		s.prompt = ""
		s.phase = PhaseClosed
		s.seq++
		s.message = "Cancelled"
		s.isError = false
		return true
	}
	return false
}

// ClearMessage wipes the outcome message if seq still names it. Stale
// clears from earlier messages are ignored.
func (s *State) ClearMessage(seq int) bool {
	if seq != s.seq || s.message == "" {
		return false
	}
	s.message = ""
	s.isError = false
	return true
}

// MessageTTL picks the display duration for the current message.
func (s *State) MessageTTL() time.Duration {
	if s.isError {
		return ErrorMessageTTL
	}
	return SuccessMessageTTL
}
