package vikey

// KeyKind distinguishes a named key from a literal character.
type KeyKind int

const (
	KeyBackspace KeyKind = iota
	KeyBacktab
	KeyChar
	KeyDelete
	KeyDown
	KeyEnd
	KeyEnter
	KeyEscape
	KeyHome
	KeyLeft
	KeyPageDown
	KeyPageUp
	KeyRight
	KeyTab
	KeyUp
)

// Key is one input event: a named key, or Char carrying a rune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char builds a Key for a literal rune.
func Char(r rune) Key {
	return Key{Kind: KeyChar, Rune: r}
}

// Named builds a Key for a named key (anything but KeyChar).
func Named(kind KeyKind) Key {
	return Key{Kind: kind}
}

// Normalize folds control-character Chars into their named equivalents, per
// the rule that downstream dispatch only ever sees normalized keys.
func Normalize(k Key) Key {
	if k.Kind != KeyChar {
		return k
	}
	switch k.Rune {
	case '\x08':
		return Named(KeyBackspace)
	case '\x7F':
		return Named(KeyDelete)
	case '\n', '\r':
		return Named(KeyEnter)
	case '\x1B':
		return Named(KeyEscape)
	case '\t':
		return Named(KeyTab)
	default:
		return k
	}
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		return string(k.Rune)
	case KeyBackspace:
		return "Backspace"
	case KeyBacktab:
		return "Backtab"
	case KeyDelete:
		return "Delete"
	case KeyDown:
		return "Down"
	case KeyEnd:
		return "End"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyHome:
		return "Home"
	case KeyLeft:
		return "Left"
	case KeyPageDown:
		return "PageDown"
	case KeyPageUp:
		return "PageUp"
	case KeyRight:
		return "Right"
	case KeyTab:
		return "Tab"
	case KeyUp:
		return "Up"
	default:
		return "Key(?)"
	}
}
