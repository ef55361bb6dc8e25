// Package editor wires the document, viewport, renderer, and input
// decoder into an interactive editing session. All state lives on the
// Editor value; there are no package-level globals, so multiple
// independent editors can run in one process (which is how the tests
// drive it).
package editor

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kiln-editor/kiln/internal/config"
	"github.com/kiln-editor/kiln/internal/document"
	"github.com/kiln-editor/kiln/internal/input"
	"github.com/kiln-editor/kiln/internal/render"
	"github.com/kiln-editor/kiln/internal/syntax"
	"github.com/kiln-editor/kiln/internal/viewport"
)

// ErrQuit signals a clean user-requested exit from the run loop.
var ErrQuit = errors.New("quit")

// quitConfirmations is how many consecutive quit presses are needed to
// discard unsaved changes.
const quitConfirmations = 3

// barRows is the screen space reserved below the text area for the
// status bar and the message bar.
const barRows = 2

// Options configures a new editor session.
type Options struct {
	// Rows and Cols are the full terminal size. Two rows are reserved
	// for the status and message bars.
	Rows, Cols int

	// In is the raw byte source. It must return zero bytes after a
	// bounded delay when no input is pending.
	In io.Reader

	// Out receives one full frame per write.
	Out io.Writer

	// Config is optional; nil means defaults.
	Config *config.Config

	// Registry is optional; nil means the built-in language registry.
	Registry *syntax.Registry
}

// Editor is one interactive editing session.
type Editor struct {
	doc      *document.Document
	view     *viewport.Viewport
	renderer *render.Renderer
	dec      *input.Decoder
	out      io.Writer

	status    render.Status
	quitTimes int
	cfg       *config.Config
}

// New creates an editor for the given terminal size and byte streams.
func New(opts Options) *Editor {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = syntax.NewRegistry()
	}
	cfg.Apply(registry)

	textRows := opts.Rows - barRows
	if textRows < 1 {
		textRows = 1
	}

	return &Editor{
		doc:       document.New(registry),
		view:      viewport.New(textRows, opts.Cols),
		renderer:  render.New(),
		dec:       input.NewDecoder(opts.In),
		out:       opts.Out,
		quitTimes: quitConfirmations,
		cfg:       cfg,
	}
}

// Document exposes the session's document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Viewport exposes the session's cursor and scroll state.
func (e *Editor) Viewport() *viewport.Viewport {
	return e.view
}

// StatusMessage returns the current message bar text.
func (e *Editor) StatusMessage() string {
	return e.status.Message
}

// Open loads the file at path into the session.
func (e *Editor) Open(path string) error {
	return e.doc.Open(path)
}

// SetStatusMessage formats and displays a message in the message bar.
// The message expires five seconds after it is set.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.status = render.Status{
		Message: fmt.Sprintf(format, args...),
		Time:    time.Now(),
	}
}

// RefreshScreen recomputes scroll state, composes a frame, and writes it
// with a single write call.
func (e *Editor) RefreshScreen() error {
	e.view.Scroll(e.doc)
	frame := e.renderer.Frame(e.doc, e.view, e.status)
	if _, err := e.out.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Run drives the session: one refresh and one key per iteration until
// the user quits or an I/O error occurs. A clean quit returns ErrQuit.
func (e *Editor) Run() error {
	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")
	for {
		if err := e.RefreshScreen(); err != nil {
			return err
		}
		if err := e.ProcessKey(); err != nil {
			return err
		}
	}
}
