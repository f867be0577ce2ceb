package playground

import "github.com/zjrosen/vikey/vikey"

// applyMotion moves the cursor according to m. Motions with no buffer
// meaning (Line, Selection, Around, Inside — the compiler's selection-scope
// markers) and motions this reference host does not implement (screen-high/
// middle/low, search) are silently ignored, matching the termion.rs example
// host's own "TODO" fallback for motions it never wired up.
func (d *Document) applyMotion(m vikey.Motion) {
	switch m.Kind {
	case vikey.MotionLeft, vikey.MotionLeftInLine:
		d.moveLeft(m.Kind == vikey.MotionLeft)
	case vikey.MotionRight, vikey.MotionRightInLine:
		d.moveRight(m.Kind == vikey.MotionRight)
	case vikey.MotionUp:
		d.Cursor.Line--
	case vikey.MotionDown:
		d.Cursor.Line++
	case vikey.MotionHome:
		d.Cursor.Col = 0
	case vikey.MotionEnd:
		d.Cursor.Col = len([]rune(d.line(d.Cursor.Line)))
	case vikey.MotionSoftHome:
		d.Cursor.Col = firstNonBlank(d.line(d.Cursor.Line))
	case vikey.MotionGotoLine:
		if m.Line > 0 {
			d.Cursor.Line = m.Line - 1
		} else {
			d.Cursor.Line = 0
		}
		d.Cursor.Col = firstNonBlank(d.line(d.Cursor.Line))
	case vikey.MotionGotoEof:
		d.Cursor.Line = len(d.Lines) - 1
		d.Cursor.Col = firstNonBlank(d.line(d.Cursor.Line))
	case vikey.MotionPageDown:
		d.Cursor.Line += 10
	case vikey.MotionPageUp:
		d.Cursor.Line -= 10
	case vikey.MotionNextWordStart:
		d.Cursor = nextWordStart(d.Lines, d.Cursor, m.Word)
	case vikey.MotionPreviousWordStart:
		d.Cursor = previousWordStart(d.Lines, d.Cursor, m.Word)
	case vikey.MotionNextWordEnd:
		d.Cursor = nextWordStart(d.Lines, d.Cursor, m.Word) // approximation; see DESIGN.md
	case vikey.MotionPreviousWordEnd:
		d.Cursor = previousWordStart(d.Lines, d.Cursor, m.Word) // approximation; see DESIGN.md
	case vikey.MotionNextChar:
		d.findCharForward(m.Char, false)
	case vikey.MotionNextCharTill:
		d.findCharForward(m.Char, true)
	case vikey.MotionPreviousChar:
		d.findCharBackward(m.Char, false)
	case vikey.MotionPreviousCharTill:
		d.findCharBackward(m.Char, true)
	default:
		// Line/Selection/Around/Inside carry no cursor movement of their
		// own; ScreenHigh/ScreenLow/ScreenMiddle/NextSearch/PreviousSearch
		// need viewport/search state this host does not keep.
	}
	d.clampCursor()
}

func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return 0
}

func (d *Document) moveLeft(wrap bool) {
	if d.Cursor.Col > 0 {
		d.Cursor.Col--
		return
	}
	if wrap && d.Cursor.Line > 0 {
		d.Cursor.Line--
		d.Cursor.Col = len([]rune(d.line(d.Cursor.Line)))
	}
}

func (d *Document) moveRight(wrap bool) {
	lineLen := len([]rune(d.line(d.Cursor.Line)))
	if d.Cursor.Col < lineLen {
		d.Cursor.Col++
		return
	}
	if wrap && d.Cursor.Line < len(d.Lines)-1 {
		d.Cursor.Line++
		d.Cursor.Col = 0
	}
}

func (d *Document) findCharForward(target rune, till bool) {
	line := []rune(d.line(d.Cursor.Line))
	for i := d.Cursor.Col + 1; i < len(line); i++ {
		if line[i] == target {
			if till {
				d.Cursor.Col = i - 1
			} else {
				d.Cursor.Col = i
			}
			return
		}
	}
}

func (d *Document) findCharBackward(target rune, till bool) {
	line := []rune(d.line(d.Cursor.Line))
	for i := d.Cursor.Col - 1; i >= 0; i-- {
		if line[i] == target {
			if till {
				d.Cursor.Col = i + 1
			} else {
				d.Cursor.Col = i
			}
			return
		}
	}
}

func nextWordStart(lines []string, cur Cursor, w vikey.Word) Cursor {
	line := lines[cur.Line]
	byteOffset := runeToByteOffset(line, cur.Col)
	it := vikey.NewWordIter(line, w)
	for {
		start, slice, ok := it.Next()
		if !ok {
			break
		}
		if start > byteOffset {
			return Cursor{Line: cur.Line, Col: byteToRuneOffset(line, start)}
		}
		_ = slice
	}
	if cur.Line < len(lines)-1 {
		return Cursor{Line: cur.Line + 1, Col: 0}
	}
	return Cursor{Line: cur.Line, Col: len([]rune(line))}
}

func previousWordStart(lines []string, cur Cursor, w vikey.Word) Cursor {
	line := lines[cur.Line]
	byteOffset := runeToByteOffset(line, cur.Col)
	it := vikey.NewWordIter(line, w)
	best := -1
	for {
		start, _, ok := it.Next()
		if !ok {
			break
		}
		if start >= byteOffset {
			break
		}
		best = start
	}
	if best >= 0 {
		return Cursor{Line: cur.Line, Col: byteToRuneOffset(line, best)}
	}
	if cur.Line > 0 {
		return Cursor{Line: cur.Line - 1, Col: 0}
	}
	return Cursor{Line: cur.Line, Col: 0}
}

func runeToByteOffset(s string, runeIdx int) int {
	i := 0
	for byteIdx := range s {
		if i == runeIdx {
			return byteIdx
		}
		i++
	}
	return len(s)
}

func byteToRuneOffset(s string, byteIdx int) int {
	i := 0
	for b := range s {
		if b >= byteIdx {
			return i
		}
		i++
	}
	return i
}
