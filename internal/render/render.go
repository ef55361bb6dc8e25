// Package render composes a complete terminal frame into a single byte
// buffer. The caller writes the buffer with one write call, which keeps
// redraws flicker-free over slow links: partial writes would expose
// intermediate screen states.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/kiln-editor/kiln/internal/document"
	"github.com/kiln-editor/kiln/internal/syntax"
	"github.com/kiln-editor/kiln/internal/viewport"
)

// Version is shown in the welcome banner.
const Version = "0.1.0"

// messageTimeout is how long a status message stays visible.
const messageTimeout = 5 * time.Second

// Status carries the transient per-frame display state that lives
// outside the document: the message bar contents and its timestamp.
type Status struct {
	Message string
	Time    time.Time
}

// Fresh reports whether the message should still be displayed at the
// given wall-clock instant.
func (s Status) Fresh(now time.Time) bool {
	return s.Message != "" && now.Sub(s.Time) < messageTimeout
}

// Renderer builds frames for a fixed-size text area. The text area
// excludes the status and message bars, which take two extra rows.
type Renderer struct {
	buf bytes.Buffer
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{}
}

// Frame composes one full screen refresh: hidden cursor, text rows,
// status bar, message bar, and final cursor placement. The returned
// slice is valid until the next Frame call.
func (r *Renderer) Frame(d *document.Document, v *viewport.Viewport, st Status) []byte {
	r.buf.Reset()
	r.buf.WriteString(escHideCursor)
	r.buf.WriteString(escCursorHome)

	r.drawRows(d, v)
	r.drawStatusBar(d, v)
	r.drawMessageBar(v, st)

	fmt.Fprintf(&r.buf, "\x1b[%d;%dH", v.Cy-v.RowOff+1, v.Rx-v.ColOff+1)
	r.buf.WriteString(escShowCursor)
	return r.buf.Bytes()
}

// drawRows emits the visible text rows, a welcome banner for an empty
// document, and '~' markers past end of document.
func (r *Renderer) drawRows(d *document.Document, v *viewport.Viewport) {
	for y := 0; y < v.Rows; y++ {
		fileRow := y + v.RowOff
		if fileRow >= d.NumRows() {
			if d.NumRows() == 0 && y == v.Rows/3 {
				r.drawWelcome(v.Cols)
			} else {
				r.buf.WriteByte('~')
			}
		} else {
			r.drawTextRow(d.Row(fileRow).Render, d.Row(fileRow).HL, v)
		}
		r.buf.WriteString(escClearLine)
		r.buf.WriteString("\r\n")
	}
}

// drawWelcome emits the centered banner row.
func (r *Renderer) drawWelcome(cols int) {
	welcome := fmt.Sprintf("Kiln editor -- version %s", Version)
	if len(welcome) > cols {
		welcome = welcome[:cols]
	}
	padding := (cols - len(welcome)) / 2
	if padding > 0 {
		r.buf.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		r.buf.WriteByte(' ')
	}
	r.buf.WriteString(welcome)
}

// drawTextRow emits the visible window of one rendered row, switching
// colors only when the highlight class changes. The color is force-reset
// at end of row regardless of trailing state.
func (r *Renderer) drawTextRow(render []byte, hl []syntax.Class, v *viewport.Viewport) {
	start := v.ColOff
	if start > len(render) {
		start = len(render)
	}
	end := start + v.Cols
	if end > len(render) {
		end = len(render)
	}

	currentColor := -1
	for j := start; j < end; j++ {
		if hl[j] == syntax.ClassNormal {
			if currentColor != -1 {
				r.buf.WriteString(escDefaultColor)
				currentColor = -1
			}
			r.buf.WriteByte(render[j])
			continue
		}
		color := hl[j].Color()
		if color != currentColor {
			fmt.Fprintf(&r.buf, "\x1b[%dm", color)
			currentColor = color
		}
		r.buf.WriteByte(render[j])
	}
	r.buf.WriteString(escDefaultColor)
}

// drawStatusBar emits the inverted-video status line: filename, line
// count, and modified marker on the left; language and cursor position
// flush right.
func (r *Renderer) drawStatusBar(d *document.Document, v *viewport.Viewport) {
	r.buf.WriteString(escInvertVideo)

	name := d.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	modified := ""
	if d.Dirty() {
		modified = "(modified)"
	}
	status := fmt.Sprintf("%s - %d lines %s", name, d.NumRows(), modified)
	if len(status) > v.Cols {
		status = status[:v.Cols]
	}

	lang := "no ft"
	if p := d.Profile(); p != nil {
		lang = p.Name
	}
	rstatus := fmt.Sprintf("%s | %d/%d", lang, v.Cy+1, d.NumRows())

	r.buf.WriteString(status)
	for n := len(status); n < v.Cols; {
		if v.Cols-n == len(rstatus) {
			r.buf.WriteString(rstatus)
			break
		}
		r.buf.WriteByte(' ')
		n++
	}

	r.buf.WriteString(escResetAttrs)
	r.buf.WriteString("\r\n")
}

// drawMessageBar emits the message line, blank once the message expires.
func (r *Renderer) drawMessageBar(v *viewport.Viewport, st Status) {
	r.buf.WriteString(escClearLine)
	if !st.Fresh(time.Now()) {
		return
	}
	msg := st.Message
	if len(msg) > v.Cols {
		msg = msg[:v.Cols]
	}
	r.buf.WriteString(msg)
}
