package vikey

// MotionKind enumerates every cursor move the accumulator can compile:
// directional and screen-relative motions, word scanning, find-char
// targets, search, and the four markers (Line, Selection, Around, Inside)
// that tell ViCmd.Run how to build its selection prelude instead of naming
// an actual cursor move.
type MotionKind int

const (
	MotionAround MotionKind = iota
	MotionDown
	MotionEnd
	MotionGotoEof
	MotionGotoLine
	MotionHome
	MotionInside
	MotionLeft
	MotionLeftInLine
	MotionLine
	MotionNextChar
	MotionNextCharTill
	MotionNextSearch
	MotionNextWordEnd
	MotionNextWordStart
	MotionPageDown
	MotionPageUp
	MotionPreviousChar
	MotionPreviousCharTill
	MotionPreviousSearch
	MotionPreviousWordEnd
	MotionPreviousWordStart
	MotionRight
	MotionRightInLine
	MotionScreenHigh
	MotionScreenLow
	MotionScreenMiddle
	MotionSelection
	MotionSoftHome
	MotionUp
)

// Motion is a single compiled motion value: a kind plus whichever payload
// that kind carries (a target rune for find-char motions, a word flavour
// for word motions, a line number for GotoLine).
type Motion struct {
	Kind MotionKind
	Char rune
	Word Word
	Line int
}

// M builds a plain Motion carrying no payload.
func M(kind MotionKind) Motion {
	return Motion{Kind: kind}
}

// MChar builds a find-char motion (NextChar, PreviousChar, NextCharTill,
// PreviousCharTill) targeting r.
func MChar(kind MotionKind, r rune) Motion {
	return Motion{Kind: kind, Char: r}
}

// MWord builds a word-scanning motion (NextWordStart, PreviousWordStart,
// NextWordEnd, PreviousWordEnd) with the given flavour.
func MWord(kind MotionKind, w Word) Motion {
	return Motion{Kind: kind, Word: w}
}

// MGotoLine builds a GotoLine motion targeting the given 1-based line.
func MGotoLine(line int) Motion {
	return Motion{Kind: MotionGotoLine, Line: line}
}

// needsTextObject reports whether this motion is a marker that requires an
// accompanying text object before ViCmd.Run will fire (Around or Inside).
func (m Motion) needsTextObject() bool {
	return m.Kind == MotionAround || m.Kind == MotionInside
}

// reverse returns the opposite find-char motion for ',' replay, or ok=false
// for motions with no defined reverse (everything but NextChar/PreviousChar
// and NextCharTill/PreviousCharTill).
func (m Motion) reverse() (Motion, bool) {
	switch m.Kind {
	case MotionNextChar:
		return MChar(MotionPreviousChar, m.Char), true
	case MotionPreviousChar:
		return MChar(MotionNextChar, m.Char), true
	case MotionNextCharTill:
		return MChar(MotionPreviousCharTill, m.Char), true
	case MotionPreviousCharTill:
		return MChar(MotionNextCharTill, m.Char), true
	default:
		return Motion{}, false
	}
}

func (m Motion) String() string {
	switch m.Kind {
	case MotionAround:
		return "Around"
	case MotionDown:
		return "Down"
	case MotionEnd:
		return "End"
	case MotionGotoEof:
		return "GotoEof"
	case MotionGotoLine:
		return "GotoLine"
	case MotionHome:
		return "Home"
	case MotionInside:
		return "Inside"
	case MotionLeft:
		return "Left"
	case MotionLeftInLine:
		return "LeftInLine"
	case MotionLine:
		return "Line"
	case MotionNextChar:
		return "NextChar(" + string(m.Char) + ")"
	case MotionNextCharTill:
		return "NextCharTill(" + string(m.Char) + ")"
	case MotionNextSearch:
		return "NextSearch"
	case MotionNextWordEnd:
		return "NextWordEnd(" + m.Word.String() + ")"
	case MotionNextWordStart:
		return "NextWordStart(" + m.Word.String() + ")"
	case MotionPageDown:
		return "PageDown"
	case MotionPageUp:
		return "PageUp"
	case MotionPreviousChar:
		return "PreviousChar(" + string(m.Char) + ")"
	case MotionPreviousCharTill:
		return "PreviousCharTill(" + string(m.Char) + ")"
	case MotionPreviousSearch:
		return "PreviousSearch"
	case MotionPreviousWordEnd:
		return "PreviousWordEnd(" + m.Word.String() + ")"
	case MotionPreviousWordStart:
		return "PreviousWordStart(" + m.Word.String() + ")"
	case MotionRight:
		return "Right"
	case MotionRightInLine:
		return "RightInLine"
	case MotionScreenHigh:
		return "ScreenHigh"
	case MotionScreenLow:
		return "ScreenLow"
	case MotionScreenMiddle:
		return "ScreenMiddle"
	case MotionSelection:
		return "Selection"
	case MotionSoftHome:
		return "SoftHome"
	case MotionUp:
		return "Up"
	default:
		return "Motion(?)"
	}
}
