// Package row implements the single-line data model: raw text plus its
// derived render form and highlight classes.
package row

import (
	"github.com/kiln-editor/kiln/internal/syntax"
)

// TabStop is the fixed tab width. A tab expands to between 1 and TabStop
// spaces so the next character lands on a multiple of TabStop.
const TabStop = 8

// Row is one line of a document. Chars holds the raw text; Render and HL
// are derived from it and must be refreshed via Update after any mutation
// of Chars before the row is next drawn.
type Row struct {
	Chars  []byte
	Render []byte
	HL     []syntax.Class
}

// New creates a row with the given text. The caller is expected to call
// Update before rendering.
func New(chars []byte) *Row {
	return &Row{Chars: chars}
}

// Update re-derives the render form and highlight classes from Chars
// using the given language profile (nil for no highlighting).
func (r *Row) Update(p *syntax.Profile) {
	r.Render = ExpandTabs(r.Chars)
	r.HL = syntax.Classify(r.Render, p)
}

// ExpandTabs returns chars with every tab replaced by spaces up to the
// next multiple of TabStop. Pure function of the input and TabStop.
func ExpandTabs(chars []byte) []byte {
	tabs := 0
	for _, c := range chars {
		if c == '\t' {
			tabs++
		}
	}
	out := make([]byte, 0, len(chars)+tabs*(TabStop-1))
	for _, c := range chars {
		if c == '\t' {
			out = append(out, ' ')
			for len(out)%TabStop != 0 {
				out = append(out, ' ')
			}
		} else {
			out = append(out, c)
		}
	}
	return out
}

// CxToRx converts a column in Chars to the corresponding column in the
// render form, accounting for tab expansion before cx.
func (r *Row) CxToRx(cx int) int {
	rx := 0
	for i := 0; i < cx && i < len(r.Chars); i++ {
		if r.Chars[i] == '\t' {
			rx += (TabStop - 1) - (rx % TabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a render-form column back to a column in Chars. A
// render column inside a tab expansion maps to the tab itself.
func (r *Row) RxToCx(rx int) int {
	cur := 0
	for cx := 0; cx < len(r.Chars); cx++ {
		if r.Chars[cx] == '\t' {
			cur += (TabStop - 1) - (cur % TabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.Chars)
}

// InsertChar inserts c into Chars at position at, clamped to the row
// length. The render form is stale until Update runs.
func (r *Row) InsertChar(at int, c byte) {
	if at < 0 || at > len(r.Chars) {
		at = len(r.Chars)
	}
	r.Chars = append(r.Chars, 0)
	copy(r.Chars[at+1:], r.Chars[at:])
	r.Chars[at] = c
}

// DeleteChar removes the byte at position at. Out-of-range positions are
// ignored.
func (r *Row) DeleteChar(at int) {
	if at < 0 || at >= len(r.Chars) {
		return
	}
	r.Chars = append(r.Chars[:at], r.Chars[at+1:]...)
}

// AppendChars appends b to the end of Chars, used when merging a deleted
// row into its predecessor.
func (r *Row) AppendChars(b []byte) {
	r.Chars = append(r.Chars, b...)
}

// Split truncates the row at position at and returns the removed tail.
func (r *Row) Split(at int) []byte {
	if at < 0 {
		at = 0
	}
	if at > len(r.Chars) {
		at = len(r.Chars)
	}
	tail := make([]byte, len(r.Chars)-at)
	copy(tail, r.Chars[at:])
	r.Chars = r.Chars[:at]
	return tail
}
