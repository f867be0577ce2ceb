package playground

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vikey/vikey"
)

func TestApplyMotionLeftRightStayOnLine(t *testing.T) {
	d := newTestDocument(t, "abc")
	d.Cursor.Col = 1

	d.applyMotion(vikey.M(vikey.MotionRight))
	require.Equal(t, 2, d.Cursor.Col)

	d.applyMotion(vikey.M(vikey.MotionLeft))
	d.applyMotion(vikey.M(vikey.MotionLeft))
	require.Equal(t, 0, d.Cursor.Col)
}

func TestApplyMotionLeftWrapsToPreviousLine(t *testing.T) {
	d := newTestDocument(t, "ab", "cd")
	d.Cursor = Cursor{Line: 1, Col: 0}

	d.applyMotion(vikey.M(vikey.MotionLeft))
	require.Equal(t, Cursor{Line: 0, Col: 2}, d.Cursor)
}

func TestApplyMotionLeftInLineDoesNotWrap(t *testing.T) {
	d := newTestDocument(t, "ab", "cd")
	d.Cursor = Cursor{Line: 1, Col: 0}

	d.applyMotion(vikey.M(vikey.MotionLeftInLine))
	require.Equal(t, Cursor{Line: 1, Col: 0}, d.Cursor)
}

func TestApplyMotionHomeAndEnd(t *testing.T) {
	d := newTestDocument(t, "hello")
	d.Cursor.Col = 3

	d.applyMotion(vikey.M(vikey.MotionEnd))
	require.Equal(t, 5, d.Cursor.Col)

	d.applyMotion(vikey.M(vikey.MotionHome))
	require.Equal(t, 0, d.Cursor.Col)
}

func TestApplyMotionSoftHomeSkipsLeadingWhitespace(t *testing.T) {
	d := newTestDocument(t, "   hi")
	d.Cursor.Col = 4

	d.applyMotion(vikey.M(vikey.MotionSoftHome))
	require.Equal(t, 3, d.Cursor.Col)
}

func TestApplyMotionGotoLineAndGotoEof(t *testing.T) {
	d := newTestDocument(t, "a", "b", "c")

	d.applyMotion(vikey.MGotoLine(2))
	require.Equal(t, 1, d.Cursor.Line)

	d.applyMotion(vikey.M(vikey.MotionGotoEof))
	require.Equal(t, 2, d.Cursor.Line)
}

func TestApplyMotionNextWordStartSkipsToNextWord(t *testing.T) {
	d := newTestDocument(t, "foo bar baz")

	d.applyMotion(vikey.MWord(vikey.MotionNextWordStart, vikey.WordLower))
	require.Equal(t, 4, d.Cursor.Col)
}

func TestApplyMotionPreviousWordStartMovesBack(t *testing.T) {
	d := newTestDocument(t, "foo bar baz")
	d.Cursor.Col = 8

	d.applyMotion(vikey.MWord(vikey.MotionPreviousWordStart, vikey.WordLower))
	require.Equal(t, 4, d.Cursor.Col)
}

func TestApplyMotionNextCharFindsTarget(t *testing.T) {
	d := newTestDocument(t, "a,b,c")

	d.applyMotion(vikey.MChar(vikey.MotionNextChar, ','))
	require.Equal(t, 1, d.Cursor.Col)
}

func TestApplyMotionNextCharTillStopsBeforeTarget(t *testing.T) {
	d := newTestDocument(t, "a,b,c")

	d.applyMotion(vikey.MChar(vikey.MotionNextCharTill, ','))
	require.Equal(t, 0, d.Cursor.Col)
}

func TestApplyMotionUnsupportedKindIsNoop(t *testing.T) {
	d := newTestDocument(t, "abc")
	d.Cursor.Col = 1

	require.NotPanics(t, func() {
		d.applyMotion(vikey.M(vikey.MotionScreenMiddle))
	})
	require.Equal(t, 1, d.Cursor.Col)
}

func TestSelectWordObjectExpandsSelectionToWordBounds(t *testing.T) {
	d := newTestDocument(t, "foo bar baz")
	d.Cursor.Col = 5

	d.selectTextObject(vikey.TOWord(vikey.WordLower), false)

	require.True(t, d.Selection.Active)
	start, end := d.selectionBounds()
	require.Equal(t, 4, start.Col)
	require.Equal(t, 6, end.Col)
}

func TestSelectParagraphObjectCoversBlankLineDelimitedBlock(t *testing.T) {
	d := newTestDocument(t, "a", "b", "", "c")
	d.Cursor.Line = 1

	d.selectTextObject(vikey.TO(vikey.TextObjectParagraph), false)

	require.True(t, d.Selection.Linewise)
	start, end := d.selectionBounds()
	require.Equal(t, 0, start.Line)
	require.Equal(t, 1, end.Line)
}
