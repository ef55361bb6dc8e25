// Package input decodes raw terminal bytes into logical key events.
//
// The byte source is expected to behave like a raw-mode terminal read:
// return one byte when input is available, or zero bytes after a bounded
// delay when it is not. That timeout behavior is what lets a bare Escape
// be told apart from the start of an escape sequence.
package input

import "fmt"

// Key identifies a logical key.
type Key uint8

const (
	// KeyChar is a plain byte; the value is in Event.Ch. Control bytes
	// (including Enter, Tab, and Backspace) are delivered as KeyChar.
	KeyChar Key = iota

	// KeyEscape is a bare Escape press.
	KeyEscape

	// Arrow keys.
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys.
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// KeyDelete is the forward-delete key.
	KeyDelete
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyChar:
		return "Char"
	case KeyEscape:
		return "Escape"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// Event is one decoded key press.
type Event struct {
	Key Key
	Ch  byte // valid only when Key == KeyChar
}

// Ctrl returns the control byte for a letter, e.g. Ctrl('q') == 0x11.
func Ctrl(b byte) byte {
	return b & 0x1f
}

// IsCtrl reports whether b is a control byte other than NUL.
func IsCtrl(b byte) bool {
	return b < 0x20 || b == 0x7f
}
