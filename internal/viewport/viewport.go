// Package viewport tracks the cursor and the visible window over a
// document, and maps document coordinates to render-space coordinates.
package viewport

import (
	"github.com/kiln-editor/kiln/internal/document"
)

// Direction is a single-step cursor movement.
type Direction uint8

const (
	// Up moves the cursor one row up.
	Up Direction = iota
	// Down moves the cursor one row down.
	Down
	// Left moves the cursor one column left, wrapping to the end of the
	// previous row at column 0.
	Left
	// Right moves the cursor one column right, wrapping to column 0 of
	// the next row at end of line.
	Right
)

// Viewport holds the cursor position in document space, its derived
// render column, and the scroll offsets that keep the cursor visible.
// Cy may equal the row count: that is the virtual row past end of
// document.
type Viewport struct {
	Cx, Cy int // cursor in document space (Cx indexes Chars)
	Rx     int // cursor column in render space, derived by Scroll

	RowOff, ColOff int // first visible row / render column

	Rows, Cols int // text area size in cells
}

// New creates a viewport with the given text area size.
func New(rows, cols int) *Viewport {
	return &Viewport{Rows: rows, Cols: cols}
}

// Move applies one cursor movement with the editor's edge semantics and
// clamps the column to the destination row's length.
func (v *Viewport) Move(dir Direction, d *document.Document) {
	switch dir {
	case Left:
		if v.Cx > 0 {
			v.Cx--
		} else if v.Cy > 0 {
			v.Cy--
			v.Cx = d.RowLen(v.Cy)
		}
	case Right:
		if v.Cy < d.NumRows() {
			if v.Cx < d.RowLen(v.Cy) {
				v.Cx++
			} else {
				v.Cy++
				v.Cx = 0
			}
		}
	case Up:
		if v.Cy > 0 {
			v.Cy--
		}
	case Down:
		if v.Cy < d.NumRows() {
			v.Cy++
		}
	}
	if v.Cx > d.RowLen(v.Cy) {
		v.Cx = d.RowLen(v.Cy)
	}
}

// Home moves the cursor to column 0.
func (v *Viewport) Home() {
	v.Cx = 0
}

// End moves the cursor to the end of the current row.
func (v *Viewport) End(d *document.Document) {
	v.Cx = d.RowLen(v.Cy)
}

// Page moves the cursor to the top or bottom of the visible window, then
// repeats a single-row move once per visible row. This pages relative to
// the viewport rather than jumping offsets directly.
func (v *Viewport) Page(dir Direction, d *document.Document) {
	switch dir {
	case Up:
		v.Cy = v.RowOff
	case Down:
		v.Cy = v.RowOff + v.Rows - 1
		if v.Cy > d.NumRows() {
			v.Cy = d.NumRows()
		}
	default:
		return
	}
	for i := 0; i < v.Rows; i++ {
		v.Move(dir, d)
	}
}

// Scroll recomputes Rx from the cursor position and shifts the offsets by
// the minimum amount needed to bring the cursor back inside the window.
// It runs once per frame, before rendering.
func (v *Viewport) Scroll(d *document.Document) {
	v.Rx = 0
	if r := d.Row(v.Cy); r != nil {
		v.Rx = r.CxToRx(v.Cx)
	}

	if v.Cy < v.RowOff {
		v.RowOff = v.Cy
	}
	if v.Cy >= v.RowOff+v.Rows {
		v.RowOff = v.Cy - v.Rows + 1
	}
	if v.Rx < v.ColOff {
		v.ColOff = v.Rx
	}
	if v.Rx >= v.ColOff+v.Cols {
		v.ColOff = v.Rx - v.Cols + 1
	}
}
