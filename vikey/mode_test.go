package vikey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chars(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Char(r))
	}
	return keys
}

// stripRedraw drops every Redraw event, flattening per-key event slices into
// one sequence for comparison against spec-style scenario listings.
func stripRedraw(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind != EventRedraw {
			out = append(out, e)
		}
	}
	return out
}

func TestScenarioInsertHelloEscape(t *testing.T) {
	p := NewParser()
	keys := append(chars("iHello"), Named(KeyEscape))

	var all []Event
	for _, k := range keys {
		p.Parse(k, false, func(e Event) { all = append(all, e) })
	}

	require.Equal(t, []Event{
		ev(EventChangeStart),
		evInsert('H'),
		evInsert('e'),
		evInsert('l'),
		evInsert('l'),
		evInsert('o'),
		evMotion(M(MotionLeftInLine)),
		ev(EventChangeFinish),
		ev(EventEscape),
	}, stripRedraw(all))
	require.Equal(t, ViMode{Kind: ModeNormal}, p.Mode)
}

func TestScenarioCountedWordMotion(t *testing.T) {
	p := NewParser()
	var got []Event
	for _, k := range chars("10w") {
		got = nil
		p.Parse(k, false, func(e Event) { got = append(got, e) })
	}

	want := make([]Event, 0, 11)
	for i := 0; i < 10; i++ {
		want = append(want, evMotion(MWord(MotionNextWordStart, WordLower)))
	}
	want = append(want, ev(EventRedraw))
	require.Equal(t, want, got)
}

func TestScenarioChangeWord(t *testing.T) {
	p := NewParser()
	var got []Event
	for _, k := range chars("cw") {
		got = nil
		p.Parse(k, false, func(e Event) { got = append(got, e) })
	}

	require.Equal(t, []Event{
		ev(EventChangeStart),
		ev(EventSelectStart),
		evMotion(MWord(MotionNextWordStart, WordLower)),
		evYank(DefaultRegister),
		ev(EventDelete),
		ev(EventSelectClear),
		ev(EventRedraw),
	}, got)
	require.Equal(t, ViMode{Kind: ModeInsert}, p.Mode)
}

func TestScenarioDeleteInnerWord(t *testing.T) {
	p := NewParser()
	var got []Event
	for _, k := range chars("diw") {
		got = nil
		p.Parse(k, false, func(e Event) { got = append(got, e) })
	}

	require.Equal(t, []Event{
		ev(EventChangeStart),
		evSelectTextObject(TOWord(WordLower), false),
		evYank(DefaultRegister),
		ev(EventDelete),
		ev(EventSelectClear),
		ev(EventChangeFinish),
		ev(EventRedraw),
	}, got)
	require.Equal(t, ViMode{Kind: ModeNormal}, p.Mode)
}

func TestScenarioDeleteAParagraph(t *testing.T) {
	p := NewParser()
	var got []Event
	for _, k := range chars("dap") {
		got = nil
		p.Parse(k, false, func(e Event) { got = append(got, e) })
	}

	require.Equal(t, []Event{
		ev(EventChangeStart),
		evSelectTextObject(TO(TextObjectParagraph), true),
		evYank(DefaultRegister),
		ev(EventDelete),
		ev(EventSelectClear),
		ev(EventChangeFinish),
		ev(EventRedraw),
	}, got)
}

func TestScenarioFindAndRepeat(t *testing.T) {
	p := NewParser()

	var onF []Event
	p.Parse(Char('f'), false, func(e Event) { onF = append(onF, e) })
	require.Equal(t, []Event{ev(EventRedraw)}, onF)
	require.Equal(t, ModeExtra, p.Mode.Kind)

	var onX []Event
	p.Parse(Char('x'), false, func(e Event) { onX = append(onX, e) })
	require.Equal(t, []Event{evMotion(MChar(MotionNextChar, 'x')), ev(EventRedraw)}, onX)
	require.Equal(t, ModeNormal, p.Mode.Kind)

	var onSemi []Event
	p.Parse(Char(';'), false, func(e Event) { onSemi = append(onSemi, e) })
	require.Equal(t, []Event{evMotion(MChar(MotionNextChar, 'x')), ev(EventRedraw)}, onSemi)

	var onComma []Event
	p.Parse(Char(','), false, func(e Event) { onComma = append(onComma, e) })
	require.Equal(t, []Event{evMotion(MChar(MotionPreviousChar, 'x')), ev(EventRedraw)}, onComma)
}

func TestDoubledOperatorCollapsesToLineScope(t *testing.T) {
	p := NewParser()
	p.Parse(Char('d'), false, func(Event) {})

	var got []Event
	p.Parse(Char('d'), false, func(e Event) { got = append(got, e) })

	require.Equal(t, []Event{
		ev(EventChangeStart),
		ev(EventSelectLineStart),
		evYank(DefaultRegister),
		ev(EventDelete),
		ev(EventSelectClear),
		ev(EventChangeFinish),
		ev(EventRedraw),
	}, got)
}

func TestDotRepeatReplaysLastChange(t *testing.T) {
	p := NewParser()
	for _, k := range append(chars("iHi"), Named(KeyEscape)) {
		p.Parse(k, false, func(Event) {})
	}
	require.True(t, p.HasLastChange)
	recorded := append([]Event{}, p.LastChange...)

	var got []Event
	p.Parse(Char('.'), false, func(e Event) { got = append(got, e) })

	want := append([]Event{ev(EventChangeStart)}, recorded...)
	want = append(want, ev(EventChangeFinish), ev(EventRedraw))
	require.Equal(t, want, got)
}

func TestRedrawIsAlwaysTheLastEventOfEveryCall(t *testing.T) {
	p := NewParser()
	for _, k := range append(chars("ixyz"), Named(KeyEscape), Char('d'), Char('w')) {
		var got []Event
		p.Parse(k, false, func(e Event) { got = append(got, e) })
		require.NotEmpty(t, got)
		require.Equal(t, EventRedraw, got[len(got)-1].Kind)

		count := 0
		for _, e := range got {
			if e.Kind == EventRedraw {
				count++
			}
		}
		require.Equal(t, 1, count)
	}
}

func TestAccumulatorResetsAfterRunningACommand(t *testing.T) {
	p := NewParser()
	p.Parse(Char('3'), false, func(Event) {})
	p.Parse(Char('w'), false, func(Event) {})

	require.Equal(t, ViCmd{}, p.Cmd)
}

func TestExtraModeAlwaysLeavesExtraAfterOneKey(t *testing.T) {
	p := NewParser()
	p.Parse(Char('f'), false, func(Event) {})
	require.Equal(t, ModeExtra, p.Mode.Kind)

	p.Parse(Char('x'), false, func(Event) {})
	require.NotEqual(t, ModeExtra, p.Mode.Kind)
}

func TestCountDigitsSaturateInsteadOfOverflowing(t *testing.T) {
	cmd := &ViCmd{}
	for i := 0; i < 40; i++ {
		cmd.AddCountDigit(9)
	}
	n, ok := cmd.TakeCount()
	require.True(t, ok)
	require.Greater(t, n, 0)
}

func TestSelectionFlagDoesNotPersistBetweenCalls(t *testing.T) {
	p := NewParser()

	var withSelection []Event
	p.Parse(Char('d'), true, func(e Event) { withSelection = append(withSelection, e) })
	require.Equal(t, []Event{
		ev(EventChangeStart),
		evYank(DefaultRegister),
		ev(EventDelete),
		ev(EventSelectClear),
		ev(EventChangeFinish),
		ev(EventRedraw),
	}, withSelection)

	// the selection flag from the previous call must not leak forward: a
	// bare 'd' with no selection now just sets a pending operator.
	var withoutSelection []Event
	p.Parse(Char('d'), false, func(e Event) { withoutSelection = append(withoutSelection, e) })
	require.Equal(t, []Event{ev(EventRedraw)}, withoutSelection)
	require.True(t, p.Cmd.HasOperator())
}

func TestPutUsesNamedRegister(t *testing.T) {
	p := NewParser()
	p.Parse(Char('"'), false, func(Event) {})
	p.Parse(Char('a'), false, func(Event) {})

	var got []Event
	p.Parse(Char('p'), false, func(e Event) { got = append(got, e) })
	require.Equal(t, []Event{evPut('a', true), ev(EventRedraw)}, got)
}

func TestEscapeResetsModeAndAccumulator(t *testing.T) {
	p := NewParser()
	p.Parse(Char('3'), false, func(Event) {})
	p.Parse(Char('d'), false, func(Event) {})

	var got []Event
	p.Parse(Named(KeyEscape), false, func(e Event) { got = append(got, e) })

	require.Equal(t, []Event{ev(EventEscape), ev(EventRedraw)}, got)
	require.Equal(t, ViMode{Kind: ModeNormal}, p.Mode)
	require.Equal(t, ViCmd{}, p.Cmd)
}
