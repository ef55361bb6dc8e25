package input

import (
	"fmt"
	"io"
)

const escByte = 0x1b

// Decoder reads logical key events from a raw byte source.
type Decoder struct {
	src io.Reader
	buf [1]byte
}

// NewDecoder wraps a raw byte source. Reads that return (0, nil) are
// treated as input-poll timeouts.
func NewDecoder(src io.Reader) *Decoder {
	return &Decoder{src: src}
}

// ReadEvent blocks until one key press is decoded. An escape byte
// followed by a poll timeout collapses to a bare Escape event.
func (d *Decoder) ReadEvent() (Event, error) {
	b, err := d.readByte()
	if err != nil {
		return Event{}, err
	}
	if b != escByte {
		return Event{Key: KeyChar, Ch: b}, nil
	}
	return d.readEscape()
}

// readEscape decodes the bytes following an escape. Any timeout while the
// sequence is incomplete yields a bare Escape.
func (d *Decoder) readEscape() (Event, error) {
	b0, ok, err := d.pollByte()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Key: KeyEscape}, nil
	}
	b1, ok, err := d.pollByte()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Key: KeyEscape}, nil
	}

	switch b0 {
	case '[':
		if b1 >= '0' && b1 <= '9' {
			b2, ok, err := d.pollByte()
			if err != nil {
				return Event{}, err
			}
			if !ok || b2 != '~' {
				return Event{Key: KeyEscape}, nil
			}
			switch b1 {
			case '1', '7':
				return Event{Key: KeyHome}, nil
			case '3':
				return Event{Key: KeyDelete}, nil
			case '4', '8':
				return Event{Key: KeyEnd}, nil
			case '5':
				return Event{Key: KeyPageUp}, nil
			case '6':
				return Event{Key: KeyPageDown}, nil
			}
			return Event{Key: KeyEscape}, nil
		}
		switch b1 {
		case 'A':
			return Event{Key: KeyUp}, nil
		case 'B':
			return Event{Key: KeyDown}, nil
		case 'C':
			return Event{Key: KeyRight}, nil
		case 'D':
			return Event{Key: KeyLeft}, nil
		case 'H':
			return Event{Key: KeyHome}, nil
		case 'F':
			return Event{Key: KeyEnd}, nil
		}
	case 'O':
		switch b1 {
		case 'H':
			return Event{Key: KeyHome}, nil
		case 'F':
			return Event{Key: KeyEnd}, nil
		}
	}
	return Event{Key: KeyEscape}, nil
}

// readByte blocks across poll timeouts until a byte arrives.
func (d *Decoder) readByte() (byte, error) {
	for {
		b, ok, err := d.pollByte()
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
	}
}

// pollByte performs one read against the source. ok is false when the
// poll timed out with no input.
func (d *Decoder) pollByte() (byte, bool, error) {
	n, err := d.src.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == io.EOF {
		return 0, false, fmt.Errorf("reading input: %w", err)
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading input: %w", err)
	}
	return 0, false, nil
}
