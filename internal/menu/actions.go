package menu

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"

	"ccfiles/internal/scan"
)

// ActionKind identifies one menu action.
type ActionKind int

const (
	ActionCopyContent ActionKind = iota
	ActionCopyPath
	ActionCopyInvocation
	ActionOpen
)

// Action is one menu entry with its fixed single-letter shortcut.
type Action struct {
	Kind  ActionKind
	Key   rune
	Label string
}

// ConfirmThresholdBytes gates content-reading actions behind a yes/no
// prompt for large files.
const ConfirmThresholdBytes = 256 << 10

var baseActions = []Action{
	{Kind: ActionCopyContent, Key: 'c', Label: "Copy content"},
	{Kind: ActionCopyPath, Key: 'p', Label: "Copy path"},
	{Kind: ActionOpen, Key: 'o', Label: "Open in default app"},
}

// ActionsFor returns the fixed action table for a classification.
// Command definitions additionally offer their slash invocation.
func ActionsFor(class scan.Classification) []Action {
	if class == scan.ClassCommand {
		out := make([]Action, 0, len(baseActions)+1)
		out = append(out, Action{Kind: ActionCopyInvocation, Key: 'i', Label: "Copy invocation"})
		return append(out, baseActions...)
	}
	return append([]Action{}, baseActions...)
}

// Collaborators are the system calls the menu depends on. The app wires
// the real ones; tests inject fakes.
type Collaborators interface {
	ReadFileContent(path string) (string, error)
	WriteToClipboard(text string) error
	OpenWithDefaultHandler(path string) error
}

// Result is the outcome of one action execution, fed back into the
// state machine by Finish.
type Result struct {
	Action       Action
	Message      string
	Err          error
	NeedsConfirm bool
	Prompt       string
}

// Execute runs one action against the record. It performs I/O and is
// meant to run inside a tea.Cmd, never in the update loop itself.
// confirmed skips the size gate after the user approved the prompt.
func Execute(c Collaborators, action Action, rec scan.Record, confirmed bool) Result {
	switch action.Kind {
	case ActionCopyPath:
		if err := c.WriteToClipboard(rec.Path); err != nil {
			return Result{Action: action, Err: fmt.Errorf("copy path: %w", err)}
		}
		return Result{Action: action, Message: "Path copied"}

	case ActionCopyInvocation:
		if rec.Command == nil {
			return Result{Action: action, Err: fmt.Errorf("%s is not a command file", rec.Name())}
		}
		if err := c.WriteToClipboard("/" + rec.Command.Name); err != nil {
			return Result{Action: action, Err: fmt.Errorf("copy invocation: %w", err)}
		}
		return Result{Action: action, Message: fmt.Sprintf("Copied /%s", rec.Command.Name)}

	case ActionCopyContent:
		if !confirmed && rec.SizeBytes > ConfirmThresholdBytes {
			return Result{
				Action:       action,
				NeedsConfirm: true,
				Prompt:       fmt.Sprintf("Copy %s of content?", humanize.IBytes(uint64(rec.SizeBytes))),
			}
		}
		content, err := c.ReadFileContent(rec.Path)
		if err != nil {
			return Result{Action: action, Err: fmt.Errorf("read content: %w", err)}
		}
		if err := c.WriteToClipboard(content); err != nil {
			return Result{Action: action, Err: fmt.Errorf("copy content: %w", err)}
		}
		return Result{Action: action, Message: fmt.Sprintf("Copied %s", humanize.IBytes(uint64(len(content))))}

	case ActionOpen:
		if err := c.OpenWithDefaultHandler(rec.Path); err != nil {
			return Result{Action: action, Err: fmt.Errorf("open %s: %w", rec.Name(), err)}
		}
		return Result{Action: action, Message: "Opened " + rec.Name()}
	}
	return Result{Action: action, Err: fmt.Errorf("unknown action %d", action.Kind)}
}
