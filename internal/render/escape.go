package render

// VT100 escape sequences emitted by the renderer. These exact byte
// sequences are part of the terminal compatibility contract.
const (
	escClearScreen  = "\x1b[2J"
	escCursorHome   = "\x1b[H"
	escClearLine    = "\x1b[K"
	escHideCursor   = "\x1b[?25l"
	escShowCursor   = "\x1b[?25h"
	escInvertVideo  = "\x1b[7m"
	escResetAttrs   = "\x1b[m"
	escDefaultColor = "\x1b[39m"
)

// ClearScreen is the sequence that clears the display and homes the
// cursor, used when leaving the editor or dying on a fatal error.
const ClearScreen = escClearScreen + escCursorHome
