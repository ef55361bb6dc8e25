package editor

import (
	"errors"

	"github.com/kiln-editor/kiln/internal/document"
	"github.com/kiln-editor/kiln/internal/input"
	"github.com/kiln-editor/kiln/internal/viewport"
)

const backspace = 0x7f

// ProcessKey reads one key event and dispatches it. It returns ErrQuit
// when the user confirms quitting, or the underlying read/write error.
func (e *Editor) ProcessKey() error {
	ev, err := e.dec.ReadEvent()
	if err != nil {
		return err
	}
	return e.dispatch(ev)
}

// dispatch routes one decoded key to the matching operation.
func (e *Editor) dispatch(ev input.Event) error {
	switch ev.Key {
	case input.KeyUp:
		e.view.Move(viewport.Up, e.doc)
	case input.KeyDown:
		e.view.Move(viewport.Down, e.doc)
	case input.KeyLeft:
		e.view.Move(viewport.Left, e.doc)
	case input.KeyRight:
		e.view.Move(viewport.Right, e.doc)
	case input.KeyHome:
		e.view.Home()
	case input.KeyEnd:
		e.view.End(e.doc)
	case input.KeyPageUp:
		e.view.Page(viewport.Up, e.doc)
	case input.KeyPageDown:
		e.view.Page(viewport.Down, e.doc)
	case input.KeyDelete:
		e.view.Move(viewport.Right, e.doc)
		e.deleteChar()
	case input.KeyEscape:
		// Ignored.
	case input.KeyChar:
		return e.dispatchChar(ev.Ch)
	}
	e.quitTimes = quitConfirmations
	return nil
}

// dispatchChar handles plain bytes: editor commands on control bytes,
// insertion for everything else.
func (e *Editor) dispatchChar(ch byte) error {
	switch ch {
	case input.Ctrl('q'):
		return e.quit(false)
	case input.Ctrl('s'):
		if err := e.save(); err != nil {
			return err
		}
	case input.Ctrl('f'):
		if err := e.find(); err != nil {
			return err
		}
	case '\r':
		e.insertNewline()
	case backspace, input.Ctrl('h'):
		e.deleteChar()
	case input.Ctrl('l'):
		// Ignored.
	default:
		e.insertChar(ch)
	}
	e.quitTimes = quitConfirmations
	return nil
}

// quit applies the destructive-action guard: with unsaved changes the
// quit command must be issued quitConfirmations times consecutively.
// Any other key resets the counter.
func (e *Editor) quit(force bool) error {
	if force || !e.doc.Dirty() {
		return ErrQuit
	}
	e.quitTimes--
	if e.quitTimes > 0 {
		e.SetStatusMessage("WARNING!!! File has unsaved changes. "+
			"Press Ctrl-Q %d more times to quit.", e.quitTimes)
		return nil
	}
	return ErrQuit
}

// Quit requests exiting the session. With force set, unsaved changes are
// discarded without confirmation.
func (e *Editor) Quit(force bool) error {
	return e.quit(force)
}

// insertChar inserts one byte at the cursor, with optional bracket
// auto-closing, and advances the cursor.
func (e *Editor) insertChar(ch byte) {
	e.doc.InsertChar(e.view.Cy, e.view.Cx, ch)
	e.view.Cx++
	if e.cfg.AutoClosePairs {
		switch ch {
		case '{':
			e.doc.InsertChar(e.view.Cy, e.view.Cx, '}')
		case '(':
			e.doc.InsertChar(e.view.Cy, e.view.Cx, ')')
		}
	}
}

// insertNewline breaks the current row at the cursor and moves the
// cursor to column 0 of the row below.
func (e *Editor) insertNewline() {
	e.doc.InsertNewline(e.view.Cy, e.view.Cx)
	e.view.Cy++
	e.view.Cx = 0
}

// deleteChar deletes the character before the cursor, merging rows at
// column 0, and repositions the cursor.
func (e *Editor) deleteChar() {
	e.view.Cy, e.view.Cx = e.doc.DeleteChar(e.view.Cy, e.view.Cx)
}

// save writes the document to disk, prompting for a filename first when
// the document is unnamed. User cancellation and I/O failures are
// reported in the message bar and leave the document untouched.
func (e *Editor) save() error {
	if e.doc.Filename() == "" {
		name, ok, err := e.prompt("Save as: %s (ESC to cancel)", nil)
		if err != nil {
			return err
		}
		if !ok || name == "" {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.doc.SetFilename(name)
	}
	n, err := e.doc.Save()
	if err != nil {
		if errors.Is(err, document.ErrNoFilename) {
			e.SetStatusMessage("Save aborted")
			return nil
		}
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return nil
	}
	e.SetStatusMessage("%d bytes written to disk", n)
	return nil
}

// Save saves the document, prompting for a filename if needed.
func (e *Editor) Save() error {
	return e.save()
}
