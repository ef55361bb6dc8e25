// Package term configures the controlling terminal for the editor: raw
// mode with a bounded read timeout, and window geometry. It is the
// external collaborator boundary; the editor core only sees byte
// streams.
package term

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the input descriptor is not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// State remembers the terminal settings in effect before raw mode, so
// they can be restored on exit.
type State struct {
	fd   int
	prev unix.Termios
}

// EnableRawMode switches the terminal on fd into raw mode: no echo, no
// canonical buffering, no signal keys, no output post-processing. Reads
// return after at most a tenth of a second with zero bytes when no input
// is pending, which is what the input decoder relies on to distinguish a
// bare Escape from an escape sequence.
func EnableRawMode(fd int) (*State, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	s := &State{fd: fd, prev: *tio}

	raw := *tio
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	return s, nil
}

// Restore puts the terminal back into its pre-raw state.
func (s *State) Restore() error {
	if err := unix.IoctlSetTermios(s.fd, ioctlWriteTermios, &s.prev); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}

// WindowSize returns the terminal geometry for fd. When the kernel does
// not report a size it falls back to positioning the cursor at the
// bottom-right corner and querying its location over in/out.
func WindowSize(fd int, in io.Reader, out io.Writer) (rows, cols int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err == nil && rows > 0 && cols > 0 {
		return rows, cols, nil
	}
	return cursorPositionFallback(in, out)
}

// cursorPositionFallback measures the screen by moving the cursor as far
// down-right as the terminal allows and asking where it ended up.
func cursorPositionFallback(in io.Reader, out io.Writer) (rows, cols int, err error) {
	if _, err = io.WriteString(out, "\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, fmt.Errorf("querying window size: %w", err)
	}
	if _, err = io.WriteString(out, "\x1b[6n"); err != nil {
		return 0, 0, fmt.Errorf("querying window size: %w", err)
	}

	var reply []byte
	buf := make([]byte, 1)
	for len(reply) < 32 {
		n, rerr := in.Read(buf)
		if n == 0 || rerr != nil {
			break
		}
		if buf[0] == 'R' {
			break
		}
		reply = append(reply, buf[0])
	}
	return parseCursorReport(reply)
}

// parseCursorReport extracts rows and cols from a cursor position report
// of the form ESC [ rows ; cols (the trailing 'R' already consumed).
func parseCursorReport(reply []byte) (rows, cols int, err error) {
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return 0, 0, errors.New("malformed cursor position report")
	}
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("malformed cursor position report: %w", err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, errors.New("malformed cursor position report")
	}
	return rows, cols, nil
}
