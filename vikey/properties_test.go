package vikey

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genKey draws from a representative slice of keys rather than the full rune
// space: the interesting behaviour lives in the vi command alphabet and the
// named control keys, not in arbitrary Unicode.
func genKey(t *rapid.T) Key {
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789\"'.,;:/?<>[](){}~$^ -+=")
	named := []KeyKind{
		KeyEscape, KeyEnter, KeyBackspace, KeyDelete, KeyTab, KeyBacktab,
		KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
	}

	if rapid.IntRange(0, 4).Draw(t, "namedOrChar") == 0 {
		return Named(rapid.SampledFrom(named).Draw(t, "namedKey"))
	}
	return Char(rapid.SampledFrom(alphabet).Draw(t, "charKey"))
}

func genKeys(t *rapid.T) []Key {
	n := rapid.IntRange(0, 40).Draw(t, "keyCount")
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = genKey(t)
	}
	return keys
}

// TestPropertyParseNeverPanics drives the state machine with arbitrary key
// sequences and selection flags; Parse must never panic regardless of mode
// or accumulator state.
func TestPropertyParseNeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewParser()
		for _, k := range genKeys(t) {
			selection := rapid.Bool().Draw(t, "selection")
			require.NotPanics(t, func() {
				p.Parse(k, selection, func(Event) {})
			})
		}
	})
}

// TestPropertyRedrawIsExactlyOncePerCall checks the invariant that every
// single Parse call emits Redraw exactly once, as its final event.
func TestPropertyRedrawIsExactlyOncePerCall(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewParser()
		for _, k := range genKeys(t) {
			var got []Event
			p.Parse(k, rapid.Bool().Draw(t, "selection"), func(e Event) { got = append(got, e) })

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
	})
}

// TestPropertyChangeStartIsNeverOutnumberedByChangeFinish verifies every
// prefix of emitted events has at least as many ChangeStart as ChangeFinish:
// a change can be left open across calls (e.g. mid-insert) but can never
// finish one that never started.
func TestPropertyChangeStartIsNeverOutnumberedByChangeFinish(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewParser()
		starts, finishes := 0, 0
		for _, k := range genKeys(t) {
			p.Parse(k, rapid.Bool().Draw(t, "selection"), func(e Event) {
				switch e.Kind {
				case EventChangeStart:
					starts++
				case EventChangeFinish:
					finishes++
				}
				require.GreaterOrEqual(t, starts, finishes)
			})
		}
	})
}

// TestPropertyCountNeverPanicsOrGoesNegative fuzzes digit accumulation in
// isolation: AddCountDigit must saturate rather than wrap into a negative
// count no matter how many digits are folded in.
func TestPropertyCountNeverPanicsOrGoesNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cmd := &ViCmd{}
		digits := rapid.IntRange(0, 200).Draw(t, "digitCount")
		for i := 0; i < digits; i++ {
			d := rapid.IntRange(0, 9).Draw(t, "digit")
			require.NotPanics(t, func() { cmd.AddCountDigit(d) })
		}
		if digits > 0 {
			n, ok := cmd.TakeCount()
			require.True(t, ok)
			require.GreaterOrEqual(t, n, 0)
		}
	})
}

// TestPropertyResetAlwaysReturnsToBaseModeAndEmptyCmd checks that Reset,
// called after any sequence of keys in any state, always yields Normal mode
// and a zero-value accumulator. LastChange is deliberately excluded, since
// Reset does not touch it.
func TestPropertyResetAlwaysReturnsToBaseModeAndEmptyCmd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewParser()
		for _, k := range genKeys(t) {
			p.Parse(k, rapid.Bool().Draw(t, "selection"), func(Event) {})
		}

		p.Reset()
		require.Equal(t, ViMode{Kind: ModeNormal}, p.Mode)
		require.Equal(t, ViCmd{}, p.Cmd)
	})
}
