package playground

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vikey/internal/config"
	"github.com/zjrosen/vikey/vikey"
)

// newTestModel builds a playground Model with no register bank, no tracer,
// and no config watcher -- the same bare-minimum wiring New's doc comment
// says degrades gracefully.
func newTestModel() Model {
	return New(config.Config{}, "", nil, nil, nil)
}

func TestModel_TypingIEntersInsertAndInsertsRunes(t *testing.T) {
	m := newTestModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 10))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Quit()
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Equal(t, vikey.ModeNormal, final.parser.Mode.Kind)
	require.Equal(t, []string{"hi"}, final.doc.Lines)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 10))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.True(t, final.quitting)
}

func TestModel_HelpToggleShowsAndHidesHelp(t *testing.T) {
	m := newTestModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 10))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	tm.Quit()
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.False(t, final.showHelp)
}

func TestModel_WindowResizeSizesViewport(t *testing.T) {
	m := newTestModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Quit()
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Equal(t, 80, final.viewport.Width)
}
