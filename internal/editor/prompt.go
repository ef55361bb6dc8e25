package editor

import "github.com/kiln-editor/kiln/internal/input"

// prompt runs an interactive single-line prompt in the message bar. The
// format must contain one %s verb for the partial input. The callback,
// when non-nil, runs after every keystroke with the current input and
// the event that produced it; this is how incremental search hooks in.
//
// Enter accepts a non-empty input; Escape cancels. Cancellation returns
// ok == false with the partial input discarded.
func (e *Editor) prompt(format string, cb func(query string, ev input.Event)) (string, bool, error) {
	var buf []byte
	for {
		e.SetStatusMessage(format, string(buf))
		if err := e.RefreshScreen(); err != nil {
			return "", false, err
		}
		ev, err := e.dec.ReadEvent()
		if err != nil {
			return "", false, err
		}

		switch {
		case ev.Key == input.KeyDelete,
			ev.Key == input.KeyChar && (ev.Ch == backspace || ev.Ch == input.Ctrl('h')):
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case ev.Key == input.KeyEscape:
			e.SetStatusMessage("")
			if cb != nil {
				cb(string(buf), ev)
			}
			return "", false, nil
		case ev.Key == input.KeyChar && ev.Ch == '\r':
			if len(buf) > 0 {
				e.SetStatusMessage("")
				if cb != nil {
					cb(string(buf), ev)
				}
				return string(buf), true, nil
			}
		case ev.Key == input.KeyChar && !input.IsCtrl(ev.Ch):
			buf = append(buf, ev.Ch)
		}

		if cb != nil {
			cb(string(buf), ev)
		}
	}
}
