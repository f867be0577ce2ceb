package vikey

import "strconv"

// DefaultRegister is the register used when a command does not name one.
const DefaultRegister = '"'

// ViCmd accumulates the fragments of an in-progress command: register,
// count, operator, motion, text object. Each has a paired hasX flag rather
// than a pointer, since the fields are small values and ViCmd is copied
// freely (the default command used by a/A/I/o/O is a plain zero value).
type ViCmd struct {
	register     rune
	hasRegister  bool
	count        int
	hasCount     bool
	operator     Operator
	hasOperator  bool
	motion       Motion
	hasMotion    bool
	textObject   TextObject
	hasTextObj   bool
}

// SetRegister records the register a subsequent operator or put should use.
func (c *ViCmd) SetRegister(r rune) {
	c.register = r
	c.hasRegister = true
}

// Register returns the register fragment without consuming it; 'p' and 'P'
// read it this way since they never call Run.
func (c *ViCmd) Register() (rune, bool) {
	return c.register, c.hasRegister
}

// HasOperator reports whether an operator is currently pending.
func (c *ViCmd) HasOperator() bool {
	return c.hasOperator
}

// AddCountDigit folds a decimal digit into the accumulating count, with
// saturating (non-overflowing) multiply-add.
func (c *ViCmd) AddCountDigit(digit int) {
	if !c.hasCount {
		c.count = digit
		c.hasCount = true
		return
	}
	c.count = saturatingMulAdd(c.count, 10, digit)
}

// MultiplyCount multiplies an already-present count by 10 (the '0' key when
// a count has already started accumulating). If no count is present yet,
// the caller should treat '0' as the Home motion instead.
func (c *ViCmd) MultiplyCount() {
	if c.hasCount {
		c.count = saturatingMul(c.count, 10)
	}
}

// HasCount reports whether a count has started accumulating.
func (c *ViCmd) HasCount() bool {
	return c.hasCount
}

// TakeCount removes and returns any accumulated count, defaulting to 0 with
// ok=false when absent (callers choose their own default).
func (c *ViCmd) TakeCount() (int, bool) {
	if !c.hasCount {
		return 0, false
	}
	n := c.count
	c.hasCount = false
	c.count = 0
	return n, true
}

func saturatingMulAdd(a, mul, add int) int {
	const maxInt = int(^uint(0) >> 1)
	if a != 0 && mul != 0 && a > (maxInt-add)/mul {
		return maxInt
	}
	return a*mul + add
}

func saturatingMul(a, mul int) int {
	const maxInt = int(^uint(0) >> 1)
	if a != 0 && a > maxInt/mul {
		return maxInt
	}
	return a * mul
}

// Repeat invokes f(i) for i in [0, count), consuming and resetting count.
func (c *ViCmd) Repeat(f func(i int)) {
	n := 1
	if v, ok := c.TakeCount(); ok {
		n = v
	}
	for i := 0; i < n; i++ {
		f(i)
	}
}

// SetMotion records the motion fragment and attempts to run the command.
func (c *ViCmd) SetMotion(m Motion, ctx *Context) bool {
	c.motion = m
	c.hasMotion = true
	return c.Run(ctx)
}

// SetOperator records the operator fragment. A doubled operator (the same
// operator set twice within one command, e.g. the second 'd' of "dd")
// collapses into Motion::Line instead of being stored again.
func (c *ViCmd) SetOperator(op Operator, ctx *Context) bool {
	if c.hasOperator && c.operator == op {
		c.motion = M(MotionLine)
		c.hasMotion = true
	} else {
		c.operator = op
		c.hasOperator = true
	}
	return c.Run(ctx)
}

// SetTextObject stores the text object fragment if the current motion
// requires one (Around or Inside) and attempts to run. It reports whether
// the text object was consumed; callers fall back to other handling when it
// returns false.
func (c *ViCmd) SetTextObject(t TextObject, ctx *Context) bool {
	if !c.hasMotion || !c.motion.needsTextObject() {
		return false
	}
	c.textObject = t
	c.hasTextObj = true
	c.Run(ctx)
	return true
}

// Run executes the accumulated command if its preconditions hold: either a
// motion is set (and, if it is Around/Inside, a text object is present), or
// no motion is set but ctx has an active selection. On success every
// fragment is reset to its zero value; on failure the accumulator is
// untouched and Run returns false.
func (c *ViCmd) Run(ctx *Context) bool {
	if c.hasMotion {
		if c.motion.needsTextObject() && !c.hasTextObj {
			return false
		}
	} else if !ctx.selection {
		return false
	}

	register := DefaultRegister
	if c.hasRegister {
		register = c.register
	}
	count := 1
	if c.hasCount {
		count = c.count
	}
	motion := M(MotionSelection)
	if c.hasMotion {
		motion = c.motion
	}
	textObject := c.textObject

	operator := c.operator
	hasOperator := c.hasOperator

	*c = ViCmd{}

	if hasOperator {
		ctx.startChange()

		switch motion.Kind {
		case MotionAround:
			ctx.e(evSelectTextObject(textObject, true))
		case MotionInside:
			ctx.e(evSelectTextObject(textObject, false))
		case MotionLine:
			ctx.e(ev(EventSelectLineStart))
		case MotionSelection:
			// an existing selection is used as-is
		default:
			ctx.e(ev(EventSelectStart))
			for i := 0; i < count; i++ {
				ctx.e(evMotion(motion))
			}
		}

		enterInsertMode := false
		switch operator {
		case OpAutoIndent:
			ctx.e(ev(EventAutoIndent))
		case OpChange:
			ctx.e(evYank(register))
			ctx.e(ev(EventDelete))
			enterInsertMode = true
		case OpDelete:
			ctx.e(evYank(register))
			ctx.e(ev(EventDelete))
		case OpShiftLeft:
			ctx.e(ev(EventShiftLeft))
		case OpShiftRight:
			ctx.e(ev(EventShiftRight))
		case OpSwapCase:
			ctx.e(ev(EventSwapCase))
		case OpYank:
			ctx.e(evYank(register))
		}

		ctx.e(ev(EventSelectClear))
		if enterInsertMode {
			ctx.setMode = &ViMode{Kind: ModeInsert}
		} else {
			ctx.finishChange()
			ctx.setMode = &ViMode{Kind: ModeNormal}
		}
		return true
	}

	switch motion.Kind {
	case MotionAround:
		ctx.e(evSelectTextObject(textObject, true))
	case MotionInside:
		ctx.e(evSelectTextObject(textObject, false))
	default:
		for i := 0; i < count; i++ {
			ctx.e(evMotion(motion))
		}
	}
	return true
}

// String renders a human-readable partial-command prefix: the register (if
// any, quote-prefixed), count, operator name, motion name, text-object
// name, in that order. Empty when no fragment is present.
func (c ViCmd) String() string {
	s := ""
	if c.hasRegister {
		s += "\"" + string(c.register)
	}
	if c.hasCount {
		s += strconv.Itoa(c.count)
	}
	if c.hasOperator {
		s += c.operator.String()
	}
	if c.hasMotion {
		s += c.motion.String()
	}
	if c.hasTextObj {
		s += c.textObject.String()
	}
	return s
}
