// Package playground hosts a real multi-line text buffer driven by a
// vikey.Parser, serving as the reference consumer that exercises the parser
// end-to-end the way the vi.rs/word.rs/termion.rs examples exercise the
// crate this module was built from.
package playground

import (
	"strings"

	"github.com/zjrosen/vikey/internal/log"
	"github.com/zjrosen/vikey/internal/registers"
	"github.com/zjrosen/vikey/vikey"
)

// Cursor addresses a rune position within Document.Lines. Col is a rune
// index, not a byte offset: the buffer only ever mutates through Document's
// own methods, which keep Col and the underlying string in agreement.
type Cursor struct {
	Line int
	Col  int
}

// Selection marks an anchor-to-cursor range used for Visual-mode rendering
// and as the source range for operator-without-motion commands. Linewise
// selections (from SelectLineStart) operate on whole lines regardless of
// Anchor/Col.
type Selection struct {
	Active   bool
	Linewise bool
	Anchor   Cursor
}

// Document is an in-memory buffer that applies the events emitted by a
// vikey.Parser. It owns the cursor, a simple one-level undo snapshot, and a
// connection to the register bank backing Yank/Put.
type Document struct {
	Lines     []string
	Cursor    Cursor
	Selection Selection

	bank *registers.Bank

	undoSnapshot []string
	undoCursor   Cursor
	hasUndo      bool
}

// NewDocument returns a Document seeded with the given lines (at least one
// empty line if none are given) and backed by bank for register storage.
func NewDocument(lines []string, bank *registers.Bank) *Document {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Document{Lines: append([]string(nil), lines...), bank: bank}
}

func (d *Document) line(n int) string {
	if n < 0 || n >= len(d.Lines) {
		return ""
	}
	return d.Lines[n]
}

func (d *Document) clampCursor() {
	if d.Cursor.Line < 0 {
		d.Cursor.Line = 0
	}
	if d.Cursor.Line >= len(d.Lines) {
		d.Cursor.Line = len(d.Lines) - 1
	}
	maxCol := len([]rune(d.line(d.Cursor.Line)))
	if d.Cursor.Col > maxCol {
		d.Cursor.Col = maxCol
	}
	if d.Cursor.Col < 0 {
		d.Cursor.Col = 0
	}
}

// Apply applies one emitted event to the buffer. It is safe to call with
// any event including Redraw, which is a no-op here (the caller re-renders
// on its own schedule).
func (d *Document) Apply(e vikey.Event) {
	switch e.Kind {
	case vikey.EventInsert:
		d.insertRune(e.Char)
	case vikey.EventNewLine:
		d.insertRune('\n')
	case vikey.EventBackspace:
		d.backspace()
	case vikey.EventDelete:
		d.deleteRange()
	case vikey.EventMotion:
		d.applyMotion(e.Motion)
	case vikey.EventSelectStart:
		d.Selection = Selection{Active: true, Anchor: d.Cursor}
	case vikey.EventSelectLineStart:
		d.Selection = Selection{Active: true, Linewise: true, Anchor: d.Cursor}
	case vikey.EventSelectClear:
		d.Selection = Selection{}
	case vikey.EventSelectTextObject:
		d.selectTextObject(e.TextObject, e.Around)
	case vikey.EventYank:
		d.yank(e.Register)
	case vikey.EventPut:
		d.put(e.Register, e.After)
	case vikey.EventChangeStart:
		d.snapshot()
	case vikey.EventUndo:
		d.undo()
	case vikey.EventShiftLeft:
		d.shiftLine(-1)
	case vikey.EventShiftRight:
		d.shiftLine(1)
	case vikey.EventSwapCase:
		d.swapCaseSelection()
	case vikey.EventAutoIndent, vikey.EventChangeFinish, vikey.EventEscape,
		vikey.EventCopy, vikey.EventPaste, vikey.EventSetSearch, vikey.EventRedraw:
		// No buffer effect: AutoIndent/Copy/Paste/SetSearch are left to a
		// fuller host, Escape/ChangeFinish/Redraw are bookkeeping only.
	default:
		log.Debug(log.CatUI, "unhandled event", "event", e.String())
	}
}

func (d *Document) snapshot() {
	d.undoSnapshot = append([]string(nil), d.Lines...)
	d.undoCursor = d.Cursor
	d.hasUndo = true
}

func (d *Document) undo() {
	if !d.hasUndo {
		return
	}
	d.Lines = d.undoSnapshot
	d.Cursor = d.undoCursor
	d.hasUndo = false
	d.clampCursor()
}

func (d *Document) insertRune(r rune) {
	line := []rune(d.line(d.Cursor.Line))
	if r == '\n' {
		before := string(line[:d.Cursor.Col])
		after := string(line[d.Cursor.Col:])
		d.Lines[d.Cursor.Line] = before
		tail := append([]string{after}, d.Lines[d.Cursor.Line+1:]...)
		d.Lines = append(d.Lines[:d.Cursor.Line+1], tail...)
		d.Cursor.Line++
		d.Cursor.Col = 0
		return
	}
	line = append(line[:d.Cursor.Col], append([]rune{r}, line[d.Cursor.Col:]...)...)
	d.Lines[d.Cursor.Line] = string(line)
	d.Cursor.Col++
}

func (d *Document) backspace() {
	if d.Cursor.Col == 0 {
		if d.Cursor.Line == 0 {
			return
		}
		prevLen := len([]rune(d.Lines[d.Cursor.Line-1]))
		d.Lines[d.Cursor.Line-1] += d.Lines[d.Cursor.Line]
		d.Lines = append(d.Lines[:d.Cursor.Line], d.Lines[d.Cursor.Line+1:]...)
		d.Cursor.Line--
		d.Cursor.Col = prevLen
		return
	}
	line := []rune(d.line(d.Cursor.Line))
	line = append(line[:d.Cursor.Col-1], line[d.Cursor.Col:]...)
	d.Lines[d.Cursor.Line] = string(line)
	d.Cursor.Col--
}

// deleteRange removes the active selection, or a single character at the
// cursor when there is none (the plain 'x' case, where the parser emits a
// bare Delete event with no selection active).
func (d *Document) deleteRange() {
	if !d.Selection.Active {
		line := []rune(d.line(d.Cursor.Line))
		if d.Cursor.Col >= len(line) {
			return
		}
		line = append(line[:d.Cursor.Col], line[d.Cursor.Col+1:]...)
		d.Lines[d.Cursor.Line] = string(line)
		return
	}

	start, end := d.selectionBounds()
	if d.Selection.Linewise {
		d.Lines = append(d.Lines[:start.Line], d.Lines[end.Line+1:]...)
		if len(d.Lines) == 0 {
			d.Lines = []string{""}
		}
		d.Cursor = Cursor{Line: min(start.Line, len(d.Lines)-1)}
	} else if start.Line == end.Line {
		line := []rune(d.line(start.Line))
		end.Col = min(end.Col, len(line))
		line = append(line[:start.Col], line[end.Col:]...)
		d.Lines[start.Line] = string(line)
		d.Cursor = start
	} else {
		startLine := []rune(d.line(start.Line))
		endLine := []rune(d.line(end.Line))
		end.Col = min(end.Col, len(endLine))
		merged := string(startLine[:start.Col]) + string(endLine[end.Col:])
		d.Lines[start.Line] = merged
		d.Lines = append(d.Lines[:start.Line+1], d.Lines[end.Line+1:]...)
		d.Cursor = start
	}
	d.Selection = Selection{}
	d.clampCursor()
}

func (d *Document) selectionBounds() (start, end Cursor) {
	a, c := d.Selection.Anchor, d.Cursor
	if a.Line > c.Line || (a.Line == c.Line && a.Col > c.Col) {
		return c, a
	}
	return a, c
}

func (d *Document) selectionText() string {
	if !d.Selection.Active {
		return ""
	}
	start, end := d.selectionBounds()
	if d.Selection.Linewise {
		return strings.Join(d.Lines[start.Line:min(end.Line+1, len(d.Lines))], "\n")
	}
	if start.Line == end.Line {
		line := []rune(d.line(start.Line))
		end.Col = min(end.Col, len(line))
		return string(line[start.Col:end.Col])
	}
	var b strings.Builder
	startLine := []rune(d.line(start.Line))
	b.WriteString(string(startLine[start.Col:]))
	for l := start.Line + 1; l < end.Line; l++ {
		b.WriteByte('\n')
		b.WriteString(d.line(l))
	}
	endLine := []rune(d.line(end.Line))
	end.Col = min(end.Col, len(endLine))
	b.WriteByte('\n')
	b.WriteString(string(endLine[:end.Col]))
	return b.String()
}

func (d *Document) yank(register rune) {
	if d.bank == nil {
		return
	}
	text := d.selectionText()
	if err := d.bank.Set(byte(register), text, d.Selection.Linewise); err != nil {
		log.ErrorErr(log.CatRegisters, "failed to write register", err, "register", string(register))
	}
}

func (d *Document) put(register rune, after bool) {
	if d.bank == nil {
		return
	}
	text, linewise, ok, err := d.bank.Get(byte(register))
	if err != nil {
		log.ErrorErr(log.CatRegisters, "failed to read register", err, "register", string(register))
		return
	}
	if !ok || text == "" {
		return
	}

	if linewise {
		newLines := strings.Split(text, "\n")
		at := d.Cursor.Line
		if after {
			at++
		}
		tail := append([]string{}, d.Lines[at:]...)
		d.Lines = append(d.Lines[:at], append(newLines, tail...)...)
		d.Cursor = Cursor{Line: at}
		return
	}

	if after {
		d.Cursor.Col++
		d.clampCursor()
	}
	for _, r := range text {
		d.insertRune(r)
	}
}

func (d *Document) shiftLine(dir int) {
	const width = 4
	n := d.Cursor.Line
	if n < 0 || n >= len(d.Lines) {
		return
	}
	if dir > 0 {
		d.Lines[n] = strings.Repeat(" ", width) + d.Lines[n]
		return
	}
	trimmed := strings.TrimPrefix(d.Lines[n], strings.Repeat(" ", width))
	d.Lines[n] = trimmed
}

// selectTextObject expands d.Selection to cover the text object found
// around the cursor. Word and Paragraph are the two text objects this
// reference host resolves; the bracket/quote/tag/sentence/search kinds need
// matched-pair or search state this host doesn't keep and are left as a
// no-op, mirroring spec.md's own framing of marks/matched-pairs as out of
// scope for the parser itself.
func (d *Document) selectTextObject(t vikey.TextObject, around bool) {
	switch t.Kind {
	case vikey.TextObjectWord:
		d.selectWordObject(t.Word, around)
	case vikey.TextObjectParagraph:
		d.selectParagraphObject()
	default:
		log.Debug(log.CatUI, "unhandled text object", "object", t.String())
	}
}

func (d *Document) selectWordObject(w vikey.Word, around bool) {
	line := d.line(d.Cursor.Line)
	byteOffset := runeToByteOffset(line, d.Cursor.Col)

	it := vikey.NewWordIter(line, w)
	start, end := -1, -1
	for {
		s, slice, ok := it.Next()
		if !ok {
			break
		}
		e := s + len(slice)
		if byteOffset >= s && byteOffset < e {
			start, end = s, e
			break
		}
	}
	if start < 0 {
		return
	}

	if around {
		for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
			end++
		}
	}

	d.Cursor = Cursor{Line: d.Cursor.Line, Col: byteToRuneOffset(line, start)}
	d.Selection = Selection{
		Active: true,
		Anchor: Cursor{Line: d.Cursor.Line, Col: byteToRuneOffset(line, end) - 1},
	}
}

func (d *Document) selectParagraphObject() {
	start := d.Cursor.Line
	for start > 0 && strings.TrimSpace(d.Lines[start-1]) != "" {
		start--
	}
	end := d.Cursor.Line
	for end < len(d.Lines)-1 && strings.TrimSpace(d.Lines[end+1]) != "" {
		end++
	}
	d.Cursor = Cursor{Line: start}
	d.Selection = Selection{Active: true, Linewise: true, Anchor: Cursor{Line: end}}
}

func (d *Document) swapCaseSelection() {
	if !d.Selection.Active {
		return
	}
	start, end := d.selectionBounds()
	if start.Line != end.Line {
		return
	}
	line := []rune(d.line(start.Line))
	end.Col = min(end.Col, len(line))
	for i := start.Col; i < end.Col; i++ {
		line[i] = swapRuneCase(line[i])
	}
	d.Lines[start.Line] = string(line)
}

func swapRuneCase(r rune) rune {
	switch {
	case 'a' <= r && r <= 'z':
		return r - ('a' - 'A')
	case 'A' <= r && r <= 'Z':
		return r + ('a' - 'A')
	default:
		return r
	}
}
