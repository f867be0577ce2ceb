package vikey

// ModeKind enumerates the parser's top-level modes.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeVisual
	ModeVisualLine
	ModeExtra
	ModeInsert
	ModeReplace
	ModeCommand
	ModeSearch
)

// ViMode is the parser's current mode plus whatever data that mode carries:
// the pending character for Extra, the typed buffer for Command and
// Search, and the search direction.
type ViMode struct {
	Kind     ModeKind
	Extra    rune   // ModeExtra
	Value    string // ModeCommand, ModeSearch
	Forwards bool   // ModeSearch
}

func (m ViMode) String() string {
	switch m.Kind {
	case ModeNormal:
		return "Normal"
	case ModeVisual:
		return "Visual"
	case ModeVisualLine:
		return "VisualLine"
	case ModeExtra:
		return "Extra(" + string(m.Extra) + ")"
	case ModeInsert:
		return "Insert"
	case ModeReplace:
		return "Replace"
	case ModeCommand:
		return "Command(" + m.Value + ")"
	case ModeSearch:
		return "Search(" + m.Value + ")"
	default:
		return "Mode(?)"
	}
}

// Context is the per-call scratch state threaded through dispatch: the
// callback, the host's selection flag, the change-recording buffer (teed
// into by e whenever a change is open), and any mode change requested by
// ViCmd.Run.
type Context struct {
	callback func(Event)
	selection bool

	hasPendingChange bool
	pendingChange    []Event

	hasChange bool
	change    []Event

	setMode *ViMode
}

func (ctx *Context) startChange() {
	if !ctx.hasPendingChange {
		ctx.hasPendingChange = true
		ctx.pendingChange = nil
	}
	ctx.callback(ev(EventChangeStart))
}

func (ctx *Context) finishChange() {
	ctx.change = ctx.pendingChange
	ctx.hasChange = ctx.hasPendingChange
	ctx.pendingChange = nil
	ctx.hasPendingChange = false
	ctx.callback(ev(EventChangeFinish))
}

// e forwards event to the callback, teeing it into the open change buffer
// (if any) first.
func (ctx *Context) e(event Event) {
	if ctx.hasPendingChange {
		ctx.pendingChange = append(ctx.pendingChange, event)
	}
	ctx.callback(event)
}

// Parser is the modal keystroke state machine. The zero value starts in
// Normal mode with an empty accumulator, the same state NewParser returns.
type Parser struct {
	Mode ViMode
	Cmd  ViCmd

	registerMode ViMode

	hasSemicolonMotion bool
	semicolonMotion    Motion

	hasPendingChange bool
	pendingChange    []Event

	HasLastChange bool
	LastChange    []Event
}

// NewParser returns a parser in Normal mode with an empty accumulator.
func NewParser() *Parser {
	return &Parser{
		Mode:         ViMode{Kind: ModeNormal},
		registerMode: ViMode{Kind: ModeNormal},
	}
}

// Reset returns mode and the in-progress accumulator to their initial
// values. semicolonMotion, pendingChange and LastChange are untouched.
func (p *Parser) Reset() {
	p.Mode = ViMode{Kind: ModeNormal}
	p.Cmd = ViCmd{}
}

// Parse advances the state machine by one key, invoking callback for every
// semantic event produced. selection reports whether the host currently has
// an active selection; it is not retained between calls. The final event of
// every call is Redraw.
func (p *Parser) Parse(key Key, selection bool, callback func(Event)) {
	key = Normalize(key)

	ctx := &Context{
		callback:         callback,
		selection:        selection,
		hasPendingChange: p.hasPendingChange,
		pendingChange:    p.pendingChange,
	}
	p.pendingChange = nil
	p.hasPendingChange = false

	switch p.Mode.Kind {
	case ModeNormal, ModeVisual, ModeVisualLine:
		p.parseNormal(key, ctx)
	case ModeExtra:
		p.parseExtra(key, ctx)
	case ModeInsert, ModeReplace:
		p.parseInsertReplace(key, ctx)
	case ModeCommand:
		p.parseCommand(key, ctx)
	case ModeSearch:
		p.parseSearch(key, ctx)
	}

	if ctx.setMode != nil {
		p.Mode = *ctx.setMode
	}
	p.pendingChange = ctx.pendingChange
	p.hasPendingChange = ctx.hasPendingChange
	if ctx.hasChange {
		p.LastChange = ctx.change
		p.HasLastChange = true
	}

	ctx.e(ev(EventRedraw))
}

func (p *Parser) parseNormal(key Key, ctx *Context) {
	cmd := &p.Cmd

	switch key.Kind {
	case KeyBackspace:
		cmd.SetMotion(M(MotionLeft), ctx)
		return
	case KeyBacktab:
		return
	case KeyDelete:
		cmd.Repeat(func(int) { ctx.e(ev(EventDelete)) })
		return
	case KeyDown:
		cmd.SetMotion(M(MotionDown), ctx)
		return
	case KeyEnd:
		cmd.SetMotion(M(MotionEnd), ctx)
		return
	case KeyEnter:
		cmd.SetMotion(M(MotionDown), ctx)
		cmd.SetMotion(M(MotionSoftHome), ctx)
		return
	case KeyEscape:
		p.Reset()
		ctx.e(ev(EventEscape))
		return
	case KeyHome:
		cmd.SetMotion(M(MotionHome), ctx)
		return
	case KeyLeft:
		cmd.SetMotion(M(MotionLeftInLine), ctx)
		return
	case KeyPageDown:
		cmd.SetMotion(M(MotionPageDown), ctx)
		return
	case KeyPageUp:
		cmd.SetMotion(M(MotionPageUp), ctx)
		return
	case KeyRight:
		cmd.SetMotion(M(MotionRightInLine), ctx)
		return
	case KeyTab:
		return
	case KeyUp:
		cmd.SetMotion(M(MotionUp), ctx)
		return
	}

	// key.Kind == KeyChar from here on.
	c := key.Rune
	switch c {
	case 'a':
		if cmd.HasOperator() || p.Mode.Kind != ModeNormal {
			cmd.SetMotion(M(MotionAround), ctx)
		} else {
			ctx.startChange()
			(&ViCmd{}).SetMotion(M(MotionRight), ctx)
			p.Mode = ViMode{Kind: ModeInsert}
		}
	case 'A':
		ctx.startChange()
		(&ViCmd{}).SetMotion(M(MotionEnd), ctx)
		p.Mode = ViMode{Kind: ModeInsert}
	case 'b':
		if !cmd.SetTextObject(TO(TextObjectBlock), ctx) {
			cmd.SetMotion(MWord(MotionPreviousWordStart, WordLower), ctx)
		}
	case 'B':
		if !cmd.SetTextObject(TO(TextObjectBlock), ctx) {
			cmd.SetMotion(MWord(MotionPreviousWordStart, WordUpper), ctx)
		}
	case 'c':
		cmd.SetOperator(OpChange, ctx)
	case 'C':
		cmd.SetOperator(OpChange, ctx)
		cmd.SetMotion(M(MotionEnd), ctx)
	case 'd':
		cmd.SetOperator(OpDelete, ctx)
	case 'D':
		cmd.SetOperator(OpDelete, ctx)
		cmd.SetMotion(M(MotionEnd), ctx)
	case 'e':
		cmd.SetMotion(MWord(MotionNextWordEnd, WordLower), ctx)
	case 'E':
		cmd.SetMotion(MWord(MotionNextWordEnd, WordUpper), ctx)
	case 'f', 'F':
		p.Mode = ViMode{Kind: ModeExtra, Extra: c}
	case 'g':
		p.Mode = ViMode{Kind: ModeExtra, Extra: c}
	case 'G':
		if line, ok := cmd.TakeCount(); ok {
			cmd.SetMotion(MGotoLine(line), ctx)
		} else {
			cmd.SetMotion(M(MotionGotoEof), ctx)
		}
	case 'h':
		cmd.SetMotion(M(MotionLeftInLine), ctx)
	case 'H':
		cmd.SetMotion(M(MotionScreenHigh), ctx)
	case 'i':
		if cmd.HasOperator() || p.Mode.Kind != ModeNormal {
			cmd.SetMotion(M(MotionInside), ctx)
		} else {
			ctx.startChange()
			p.Mode = ViMode{Kind: ModeInsert}
		}
	case 'I':
		ctx.startChange()
		(&ViCmd{}).SetMotion(M(MotionSoftHome), ctx)
		p.Mode = ViMode{Kind: ModeInsert}
	case 'j':
		cmd.SetMotion(M(MotionDown), ctx)
	case 'J':
		// join lines: not modeled by this event vocabulary.
	case 'k':
		cmd.SetMotion(M(MotionUp), ctx)
	case 'K':
		// keyword lookup: no corresponding event.
	case 'l':
		cmd.SetMotion(M(MotionRightInLine), ctx)
	case 'L':
		cmd.SetMotion(M(MotionScreenLow), ctx)
	case 'm':
		// mark: no corresponding event.
	case 'M':
		cmd.SetMotion(M(MotionScreenMiddle), ctx)
	case 'n':
		cmd.SetMotion(M(MotionNextSearch), ctx)
	case 'N':
		cmd.SetMotion(M(MotionPreviousSearch), ctx)
	case 'o':
		ctx.startChange()
		(&ViCmd{}).SetMotion(M(MotionEnd), ctx)
		ctx.e(ev(EventNewLine))
		p.Mode = ViMode{Kind: ModeInsert}
	case 'O':
		ctx.startChange()
		(&ViCmd{}).SetMotion(M(MotionHome), ctx)
		ctx.e(ev(EventNewLine))
		(&ViCmd{}).SetMotion(M(MotionUp), ctx)
		p.Mode = ViMode{Kind: ModeInsert}
	case 'p':
		if !cmd.SetTextObject(TO(TextObjectParagraph), ctx) {
			register := DefaultRegister
			if r, ok := cmd.Register(); ok {
				register = r
			}
			ctx.e(evPut(register, true))
		}
	case 'P':
		register := DefaultRegister
		if r, ok := cmd.Register(); ok {
			register = r
		}
		ctx.e(evPut(register, false))
	case 'r':
		p.Mode = ViMode{Kind: ModeExtra, Extra: c}
	case 'R':
		ctx.startChange()
		p.Mode = ViMode{Kind: ModeReplace}
	case 's':
		if !cmd.SetTextObject(TO(TextObjectSentence), ctx) {
			ctx.startChange()
			cmd.Repeat(func(int) { ctx.e(ev(EventDelete)) })
			p.Mode = ViMode{Kind: ModeInsert}
		}
	case 'S':
		cmd.SetOperator(OpChange, ctx)
		cmd.SetMotion(M(MotionLine), ctx)
	case 't':
		if !cmd.SetTextObject(TO(TextObjectTag), ctx) {
			p.Mode = ViMode{Kind: ModeExtra, Extra: c}
		}
	case 'T':
		p.Mode = ViMode{Kind: ModeExtra, Extra: c}
	case 'u':
		ctx.e(ev(EventUndo))
	case 'v':
		if p.Mode.Kind == ModeVisual {
			ctx.e(ev(EventSelectClear))
			p.Mode = ViMode{Kind: ModeNormal}
		} else {
			ctx.e(ev(EventSelectStart))
			p.Mode = ViMode{Kind: ModeVisual}
		}
	case 'V':
		if p.Mode.Kind == ModeVisualLine {
			ctx.e(ev(EventSelectClear))
			p.Mode = ViMode{Kind: ModeNormal}
		} else {
			ctx.e(ev(EventSelectLineStart))
			p.Mode = ViMode{Kind: ModeVisualLine}
		}
	case 'w':
		if !cmd.SetTextObject(TOWord(WordLower), ctx) {
			cmd.SetMotion(MWord(MotionNextWordStart, WordLower), ctx)
		}
	case 'W':
		if !cmd.SetTextObject(TOWord(WordUpper), ctx) {
			cmd.SetMotion(MWord(MotionNextWordStart, WordUpper), ctx)
		}
	case 'x':
		cmd.Repeat(func(int) { ctx.e(ev(EventDelete)) })
	case 'X':
		cmd.Repeat(func(int) { ctx.e(ev(EventBackspace)) })
	case 'y':
		cmd.SetOperator(OpYank, ctx)
	case 'Y':
		cmd.SetOperator(OpYank, ctx)
		cmd.SetMotion(M(MotionLine), ctx)
	case 'z', 'Z':
		p.Mode = ViMode{Kind: ModeExtra, Extra: c}
	case '0':
		if cmd.HasCount() {
			cmd.MultiplyCount()
		} else {
			cmd.SetMotion(M(MotionHome), ctx)
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		cmd.AddCountDigit(int(c - '0'))
	case '`':
		cmd.SetTextObject(TO(TextObjectTicks), ctx)
	case '~':
		cmd.SetOperator(OpSwapCase, ctx)
	case '$':
		cmd.SetMotion(M(MotionEnd), ctx)
	case '^':
		cmd.SetMotion(M(MotionSoftHome), ctx)
	case '(', ')':
		cmd.SetTextObject(TO(TextObjectParentheses), ctx)
	case '-':
		cmd.SetMotion(M(MotionUp), ctx)
		cmd.SetMotion(M(MotionSoftHome), ctx)
	case '+':
		cmd.SetMotion(M(MotionDown), ctx)
		cmd.SetMotion(M(MotionSoftHome), ctx)
	case '=':
		cmd.SetOperator(OpAutoIndent, ctx)
	case '[', ']':
		cmd.SetTextObject(TO(TextObjectSquareBrackets), ctx)
	case '{', '}':
		cmd.SetTextObject(TO(TextObjectCurlyBrackets), ctx)
	case ';':
		if p.hasSemicolonMotion {
			cmd.SetMotion(p.semicolonMotion, ctx)
		}
	case ':':
		p.Mode = ViMode{Kind: ModeCommand}
	case '\'':
		cmd.SetTextObject(TO(TextObjectSingleQuotes), ctx)
	case '"':
		if !cmd.SetTextObject(TO(TextObjectDoubleQuotes), ctx) {
			p.registerMode = p.Mode
			p.Mode = ViMode{Kind: ModeExtra, Extra: c}
		}
	case ',':
		if p.hasSemicolonMotion {
			if reversed, ok := p.semicolonMotion.reverse(); ok {
				cmd.SetMotion(reversed, ctx)
			}
		}
	case '<':
		if !cmd.SetTextObject(TO(TextObjectAngleBrackets), ctx) {
			cmd.SetOperator(OpShiftLeft, ctx)
		}
	case '>':
		if !cmd.SetTextObject(TO(TextObjectAngleBrackets), ctx) {
			cmd.SetOperator(OpShiftRight, ctx)
		}
	case '.':
		if p.HasLastChange {
			ctx.startChange()
			for _, event := range p.LastChange {
				ctx.e(event)
			}
			ctx.finishChange()
		}
	case '/':
		p.Mode = ViMode{Kind: ModeSearch, Forwards: true}
	case '?':
		p.Mode = ViMode{Kind: ModeSearch, Forwards: false}
	case ' ':
		cmd.SetMotion(M(MotionRight), ctx)
	default:
		// unbound in Normal/Visual/VisualLine: silent no-op.
	}
}

func (p *Parser) parseExtra(key Key, ctx *Context) {
	extra := p.Mode.Extra
	cmd := &p.Cmd

	switch extra {
	case 'f', 'F', 't', 'T':
		if key.Kind == KeyChar {
			var kind MotionKind
			switch extra {
			case 'f':
				kind = MotionNextChar
			case 'F':
				kind = MotionPreviousChar
			case 't':
				kind = MotionNextCharTill
			case 'T':
				kind = MotionPreviousCharTill
			}
			motion := MChar(kind, key.Rune)
			cmd.SetMotion(motion, ctx)
			p.semicolonMotion = motion
			p.hasSemicolonMotion = true
		}
		p.Reset()
	case 'g':
		if key.Kind == KeyChar {
			switch key.Rune {
			case 'e':
				cmd.SetMotion(MWord(MotionPreviousWordEnd, WordLower), ctx)
			case 'E':
				cmd.SetMotion(MWord(MotionPreviousWordEnd, WordUpper), ctx)
			case 'g':
				if line, ok := cmd.TakeCount(); ok {
					cmd.SetMotion(MGotoLine(line), ctx)
				} else {
					cmd.SetMotion(MGotoLine(1), ctx)
				}
			case 'n':
				cmd.SetMotion(M(MotionInside), ctx)
				cmd.SetTextObject(TOSearch(true), ctx)
			case 'N':
				cmd.SetMotion(M(MotionInside), ctx)
				cmd.SetTextObject(TOSearch(false), ctx)
			}
		}
		p.Reset()
	case 'r':
		if key.Kind == KeyChar {
			ctx.startChange()
			ctx.e(ev(EventDelete))
			ctx.e(evInsert(key.Rune))
			(&ViCmd{}).SetMotion(M(MotionLeftInLine), ctx)
			ctx.finishChange()
		}
		p.Reset()
	case '"':
		if key.Kind == KeyChar {
			cmd.SetRegister(key.Rune)
		}
		p.Mode = p.registerMode
		p.registerMode = ViMode{Kind: ModeNormal}
	default:
		p.Reset()
	}
}

func (p *Parser) parseInsertReplace(key Key, ctx *Context) {
	switch key.Kind {
	case KeyBackspace:
		ctx.e(ev(EventBackspace))
	case KeyBacktab:
		ctx.e(ev(EventShiftLeft))
	case KeyChar:
		if p.Mode.Kind == ModeReplace {
			ctx.e(ev(EventDelete))
		}
		ctx.e(evInsert(key.Rune))
	case KeyDown:
		(&ViCmd{}).SetMotion(M(MotionDown), ctx)
	case KeyDelete:
		ctx.e(ev(EventDelete))
	case KeyEnd:
		(&ViCmd{}).SetMotion(M(MotionEnd), ctx)
	case KeyEnter:
		ctx.e(ev(EventNewLine))
	case KeyEscape:
		(&ViCmd{}).SetMotion(M(MotionLeftInLine), ctx)
		ctx.finishChange()
		ctx.e(ev(EventEscape))
		p.Reset()
	case KeyHome:
		(&ViCmd{}).SetMotion(M(MotionHome), ctx)
	case KeyLeft:
		(&ViCmd{}).SetMotion(M(MotionLeftInLine), ctx)
	case KeyPageDown:
		(&ViCmd{}).SetMotion(M(MotionPageDown), ctx)
	case KeyPageUp:
		(&ViCmd{}).SetMotion(M(MotionPageUp), ctx)
	case KeyRight:
		(&ViCmd{}).SetMotion(M(MotionRightInLine), ctx)
	case KeyTab:
		ctx.e(ev(EventShiftRight))
	case KeyUp:
		(&ViCmd{}).SetMotion(M(MotionUp), ctx)
	}
}

func (p *Parser) parseCommand(key Key, ctx *Context) {
	switch key.Kind {
	case KeyEscape:
		p.Reset()
	case KeyEnter:
		// ex-command execution is out of scope; discard the buffer.
		p.Reset()
	case KeyBackspace:
		value := p.Mode.Value
		if value == "" {
			p.Reset()
			return
		}
		r := []rune(value)
		p.Mode.Value = string(r[:len(r)-1])
	case KeyChar:
		p.Mode.Value += string(key.Rune)
	}
}

func (p *Parser) parseSearch(key Key, ctx *Context) {
	switch key.Kind {
	case KeyEscape:
		p.Reset()
	case KeyEnter:
		value := p.Mode.Value
		forwards := p.Mode.Forwards
		ctx.e(evSetSearch(value, forwards))
		p.Reset()
		(&ViCmd{}).SetMotion(M(MotionNextSearch), ctx)
	case KeyBackspace:
		value := p.Mode.Value
		if value == "" {
			p.Reset()
			return
		}
		r := []rune(value)
		p.Mode.Value = string(r[:len(r)-1])
	case KeyChar:
		p.Mode.Value += string(key.Rune)
	}
}
