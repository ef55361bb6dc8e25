package editor

import (
	"bytes"

	"github.com/kiln-editor/kiln/internal/input"
	"github.com/kiln-editor/kiln/internal/syntax"
)

// searchState lives for the duration of one interactive search prompt.
// It remembers where the last match was, which way the search is
// heading, and the highlight snapshot that must be restored when the
// match overlay moves or the search ends.
type searchState struct {
	lastMatch  int // row index of the last match, -1 before the first
	direction  int // +1 forward, -1 backward
	savedHlRow int // row whose highlight is currently overlaid, -1 if none
	savedHl    []syntax.Class
}

// find runs the incremental search prompt. On cancellation the cursor
// and viewport saved at entry are restored exactly.
func (e *Editor) find() error {
	savedCx, savedCy := e.view.Cx, e.view.Cy
	savedColOff, savedRowOff := e.view.ColOff, e.view.RowOff

	s := &searchState{lastMatch: -1, direction: 1, savedHlRow: -1}
	query, ok, err := e.prompt("Search: %s (Use ESC/Arrows/Enter)", s.step(e))
	if err != nil {
		return err
	}
	if !ok || query == "" {
		e.view.Cx, e.view.Cy = savedCx, savedCy
		e.view.ColOff, e.view.RowOff = savedColOff, savedRowOff
	}
	return nil
}

// Find starts an interactive search session.
func (e *Editor) Find() error {
	return e.find()
}

// step returns the per-keystroke search callback. Each call first
// restores any previously overlaid highlight, then updates direction
// from the arrow keys, then scans for the next match.
func (s *searchState) step(e *Editor) func(query string, ev input.Event) {
	return func(query string, ev input.Event) {
		if s.savedHlRow != -1 {
			if r := e.doc.Row(s.savedHlRow); r != nil {
				r.HL = s.savedHl
			}
			s.savedHlRow = -1
			s.savedHl = nil
		}

		switch ev.Key {
		case input.KeyEscape:
			s.lastMatch = -1
			s.direction = 1
			return
		case input.KeyRight, input.KeyDown:
			s.direction = 1
		case input.KeyLeft, input.KeyUp:
			s.direction = -1
		case input.KeyChar:
			if ev.Ch == '\r' {
				s.lastMatch = -1
				s.direction = 1
				return
			}
			s.lastMatch = -1
			s.direction = 1
		default:
			s.lastMatch = -1
			s.direction = 1
		}

		if s.lastMatch == -1 {
			s.direction = 1
		}

		current := s.lastMatch
		for i := 0; i < e.doc.NumRows(); i++ {
			current += s.direction
			if current == -1 {
				current = e.doc.NumRows() - 1
			} else if current == e.doc.NumRows() {
				current = 0
			}

			r := e.doc.Row(current)
			idx := bytes.Index(r.Chars, []byte(query))
			if idx < 0 {
				continue
			}

			s.lastMatch = current
			e.view.Cy = current
			e.view.Cx = idx
			// Force Scroll to bring the match row to the top of the
			// viewport on the next refresh.
			e.view.RowOff = e.doc.NumRows()

			s.savedHlRow = current
			s.savedHl = append([]syntax.Class(nil), r.HL...)
			from := r.CxToRx(idx)
			to := r.CxToRx(idx + len(query))
			for j := from; j < to && j < len(r.HL); j++ {
				r.HL[j] = syntax.ClassMatch
			}
			break
		}
	}
}
