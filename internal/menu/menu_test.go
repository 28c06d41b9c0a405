package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccfiles/internal/scan"
)

type fakeCollab struct {
	content string
	readErr error
	clipErr error
	openErr error

	reads   []string
	clipped []string
	opened  []string
}

func (f *fakeCollab) ReadFileContent(path string) (string, error) {
	f.reads = append(f.reads, path)
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.content, nil
}

func (f *fakeCollab) WriteToClipboard(text string) error {
	if f.clipErr != nil {
		return f.clipErr
	}
	f.clipped = append(f.clipped, text)
	return nil
}

func (f *fakeCollab) OpenWithDefaultHandler(path string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, path)
	return nil
}

func commandRecord() scan.Record {
	return scan.Record{
		Path:           "/home/dev/.claude/commands/git/commit.md",
		Classification: scan.ClassCommand,
		SizeBytes:      120,
		Command: &scan.CommandMeta{
			Name:      "git:commit",
			Namespace: "git",
			Scope:     scan.ScopeUser,
		},
	}
}

func memoryRecord() scan.Record {
	return scan.Record{
		Path:           "/work/proj/CLAUDE.md",
		Classification: scan.ClassProjectConfig,
		SizeBytes:      512,
	}
}

func TestActionsFor(t *testing.T) {
	t.Run("commands offer their invocation", func(t *testing.T) {
		actions := ActionsFor(scan.ClassCommand)
		require.Len(t, actions, 4)
		assert.Equal(t, ActionCopyInvocation, actions[0].Kind)
	})

	t.Run("other classifications do not", func(t *testing.T) {
		for _, class := range []scan.Classification{
			scan.ClassProjectConfig,
			scan.ClassLocalOverride,
			scan.ClassGlobalConfig,
			scan.ClassSettings,
			scan.ClassSettingsLocal,
		} {
			actions := ActionsFor(class)
			require.Len(t, actions, 3, "class %s", class)
			for _, a := range actions {
				assert.NotEqual(t, ActionCopyInvocation, a.Kind)
			}
		}
	})

	t.Run("shortcuts are unique", func(t *testing.T) {
		seen := map[rune]bool{}
		for _, a := range ActionsFor(scan.ClassCommand) {
			assert.False(t, seen[a.Key], "duplicate shortcut %q", a.Key)
			seen[a.Key] = true
		}
	})
}

func TestMenuOpenAndSelection(t *testing.T) {
	var s State
	assert.False(t, s.IsOpen())

	s.Open(memoryRecord())
	require.Equal(t, PhaseOpen, s.Phase())
	assert.Equal(t, 0, s.Selected())

	s.MoveUp()
	assert.Equal(t, 0, s.Selected(), "no wrap at the top")

	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Selected())
	s.MoveDown()
	assert.Equal(t, 2, s.Selected(), "no wrap at the bottom")

	s.MoveUp()
	assert.Equal(t, 1, s.Selected())
}

func TestMenuStartSelectedAndShortcut(t *testing.T) {
	t.Run("enter runs the highlighted action", func(t *testing.T) {
		var s State
		s.Open(memoryRecord())
		s.MoveDown()

		action, ok := s.StartSelected()
		require.True(t, ok)
		assert.Equal(t, ActionCopyPath, action.Kind)
		assert.Equal(t, PhaseExecuting, s.Phase())
	})

	t.Run("shortcut jumps and runs", func(t *testing.T) {
		var s State
		s.Open(commandRecord())

		action, ok := s.StartShortcut('i')
		require.True(t, ok)
		assert.Equal(t, ActionCopyInvocation, action.Kind)
		assert.Equal(t, PhaseExecuting, s.Phase())
	})

	t.Run("unknown shortcut is ignored", func(t *testing.T) {
		var s State
		s.Open(memoryRecord())

		_, ok := s.StartShortcut('z')
		assert.False(t, ok)
		assert.Equal(t, PhaseOpen, s.Phase())
	})

	t.Run("closed menu refuses to start", func(t *testing.T) {
		var s State
		_, ok := s.StartSelected()
		assert.False(t, ok)
	})
}

func TestMenuExecutingDiscardsInput(t *testing.T) {
	var s State
	s.Open(memoryRecord())
	_, ok := s.StartSelected()
	require.True(t, ok)

	s.MoveDown()
	assert.Equal(t, 0, s.Selected())

	_, ok = s.StartSelected()
	assert.False(t, ok)
	_, ok = s.StartShortcut('p')
	assert.False(t, ok)

	assert.False(t, s.Escape(), "a running action cannot be cancelled")
	assert.Equal(t, PhaseExecuting, s.Phase())
}

func TestExecuteCopyPath(t *testing.T) {
	collab := &fakeCollab{}
	rec := memoryRecord()

	res := Execute(collab, Action{Kind: ActionCopyPath}, rec, false)
	require.NoError(t, res.Err)
	assert.Equal(t, "Path copied", res.Message)
	assert.Equal(t, []string{rec.Path}, collab.clipped)
}

func TestExecuteCopyInvocation(t *testing.T) {
	collab := &fakeCollab{}

	res := Execute(collab, Action{Kind: ActionCopyInvocation}, commandRecord(), false)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"/git:commit"}, collab.clipped)
	assert.Contains(t, res.Message, "/git:commit")

	res = Execute(collab, Action{Kind: ActionCopyInvocation}, memoryRecord(), false)
	require.Error(t, res.Err)
}

func TestExecuteCopyContent(t *testing.T) {
	t.Run("small files copy straight through", func(t *testing.T) {
		collab := &fakeCollab{content: "# Notes\n"}
		rec := memoryRecord()

		res := Execute(collab, Action{Kind: ActionCopyContent}, rec, false)
		require.NoError(t, res.Err)
		assert.False(t, res.NeedsConfirm)
		assert.Equal(t, []string{rec.Path}, collab.reads)
		assert.Equal(t, []string{"# Notes\n"}, collab.clipped)
		assert.Contains(t, res.Message, "Copied")
	})

	t.Run("large files ask first without reading", func(t *testing.T) {
		collab := &fakeCollab{content: "big"}
		rec := memoryRecord()
		rec.SizeBytes = ConfirmThresholdBytes + 1

		res := Execute(collab, Action{Kind: ActionCopyContent}, rec, false)
		require.NoError(t, res.Err)
		assert.True(t, res.NeedsConfirm)
		assert.NotEmpty(t, res.Prompt)
		assert.Empty(t, collab.reads, "content must not be read before the user agrees")
		assert.Empty(t, collab.clipped)
	})

	t.Run("confirmed run lifts the gate", func(t *testing.T) {
		collab := &fakeCollab{content: "big"}
		rec := memoryRecord()
		rec.SizeBytes = ConfirmThresholdBytes + 1

		res := Execute(collab, Action{Kind: ActionCopyContent}, rec, true)
		require.NoError(t, res.Err)
		assert.False(t, res.NeedsConfirm)
		assert.Equal(t, []string{"big"}, collab.clipped)
	})

	t.Run("read failure surfaces", func(t *testing.T) {
		collab := &fakeCollab{readErr: errors.New("permission denied")}

		res := Execute(collab, Action{Kind: ActionCopyContent}, memoryRecord(), false)
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "permission denied")
	})
}

func TestExecuteOpen(t *testing.T) {
	collab := &fakeCollab{}
	rec := memoryRecord()

	res := Execute(collab, Action{Kind: ActionOpen}, rec, false)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{rec.Path}, collab.opened)
	assert.Contains(t, res.Message, "CLAUDE.md")
}

func TestMenuConfirmFlow(t *testing.T) {
	rec := memoryRecord()
	rec.SizeBytes = ConfirmThresholdBytes + 1

	t.Run("yes re-runs with the gate lifted", func(t *testing.T) {
		collab := &fakeCollab{content: "big"}
		var s State
		s.Open(rec)

		action, ok := s.StartSelected()
		require.True(t, ok)
		s.Finish(Execute(collab, action, rec, false))
		require.Equal(t, PhaseConfirming, s.Phase())
		assert.NotEmpty(t, s.Prompt())

		pending, ok := s.Answer(true)
		require.True(t, ok)
		assert.Equal(t, PhaseExecuting, s.Phase())

		s.Finish(Execute(collab, pending, rec, true))
		assert.Equal(t, PhaseClosed, s.Phase())
		msg, isErr := s.Message()
		assert.False(t, isErr)
		assert.Contains(t, msg, "Copied")
		assert.Equal(t, []string{"big"}, collab.clipped)
	})

	t.Run("no cancels quietly", func(t *testing.T) {
		collab := &fakeCollab{content: "big"}
		var s State
		s.Open(rec)

		action, _ := s.StartSelected()
		s.Finish(Execute(collab, action, rec, false))
		require.Equal(t, PhaseConfirming, s.Phase())

		_, ok := s.Answer(false)
		assert.False(t, ok)
		assert.Equal(t, PhaseClosed, s.Phase())
		msg, isErr := s.Message()
		assert.Equal(t, "Cancelled", msg)
		assert.False(t, isErr)
		assert.Empty(t, collab.reads)
	})

	t.Run("escape during the prompt cancels too", func(t *testing.T) {
		collab := &fakeCollab{content: "big"}
		var s State
		s.Open(rec)

		action, _ := s.StartSelected()
		s.Finish(Execute(collab, action, rec, false))

		assert.True(t, s.Escape())
		assert.Equal(t, PhaseClosed, s.Phase())
		assert.Empty(t, s.Prompt())
	})
}

func TestMenuFailureClosesWithError(t *testing.T) {
	collab := &fakeCollab{clipErr: errors.New("clipboard unavailable")}
	var s State
	s.Open(memoryRecord())

	action, ok := s.StartShortcut('p')
	require.True(t, ok)
	s.Finish(Execute(collab, action, memoryRecord(), false))

	assert.Equal(t, PhaseClosed, s.Phase())
	msg, isErr := s.Message()
	assert.True(t, isErr)
	assert.Contains(t, msg, "clipboard unavailable")
	assert.Equal(t, ErrorMessageTTL, s.MessageTTL())
}

func TestMenuMessageClearIsSeqGuarded(t *testing.T) {
	collab := &fakeCollab{}
	var s State
	rec := memoryRecord()

	s.Open(rec)
	action, _ := s.StartShortcut('p')
	s.Finish(Execute(collab, action, rec, false))
	first := s.Seq()

	s.Open(rec)
	action, _ = s.StartShortcut('p')
	s.Finish(Execute(collab, action, rec, false))
	require.NotEqual(t, first, s.Seq())

	assert.False(t, s.ClearMessage(first), "a clear scheduled for an older message is stale")
	msg, _ := s.Message()
	assert.NotEmpty(t, msg)

	assert.True(t, s.ClearMessage(s.Seq()))
	msg, _ = s.Message()
	assert.Empty(t, msg)
}

func TestMenuEscapeFromOpen(t *testing.T) {
	var s State
	s.Open(memoryRecord())

	assert.True(t, s.Escape())
	assert.Equal(t, PhaseClosed, s.Phase())
	assert.False(t, s.Escape(), "closed menu does not consume escape")
}
