// Package document implements the ordered row collection, its editing
// operations, and flat-text load/save.
package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kiln-editor/kiln/internal/row"
	"github.com/kiln-editor/kiln/internal/syntax"
)

// ErrNoFilename is returned by Save when the document has no filename.
var ErrNoFilename = errors.New("document has no filename")

// Document is an ordered sequence of rows plus save/dirty bookkeeping.
// Rows are addressed by index only; indices are stable only between
// mutations, so callers must never retain one across an edit.
type Document struct {
	rows     []*row.Row
	dirty    bool
	filename string
	profile  *syntax.Profile
	registry *syntax.Registry
}

// New creates an empty document using the given language registry.
func New(registry *syntax.Registry) *Document {
	return &Document{registry: registry}
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int {
	return len(d.rows)
}

// Row returns the row at index i, or nil if i is out of range.
func (d *Document) Row(i int) *row.Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// RowLen returns the text length of row i, or 0 if i is out of range.
func (d *Document) RowLen(i int) int {
	if r := d.Row(i); r != nil {
		return len(r.Chars)
	}
	return 0
}

// Dirty reports whether unsaved mutations exist.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Filename returns the document's filename, empty if unnamed.
func (d *Document) Filename() string {
	return d.filename
}

// Profile returns the active language profile, or nil.
func (d *Document) Profile() *syntax.Profile {
	return d.profile
}

// SetFilename updates the filename, re-detects the language profile, and
// re-highlights every row.
func (d *Document) SetFilename(name string) {
	d.filename = name
	d.profile = nil
	if d.registry != nil && name != "" {
		d.profile = d.registry.Detect(name)
	}
	for _, r := range d.rows {
		r.Update(d.profile)
	}
}

// InsertRow inserts a row with the given text at index at, clamped to
// [0, NumRows].
func (d *Document) InsertRow(at int, chars []byte) {
	if at < 0 {
		at = 0
	}
	if at > len(d.rows) {
		at = len(d.rows)
	}
	r := row.New(chars)
	r.Update(d.profile)
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = r
	d.dirty = true
}

// DeleteRow removes the row at index at. Out-of-range indices are a
// no-op.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = append(d.rows[:at], d.rows[at+1:]...)
	d.dirty = true
}

// InsertChar inserts c at (r, c). Row NumRows is the virtual row past the
// end of the document: inserting there first appends an empty row.
func (d *Document) InsertChar(at, col int, c byte) {
	if at == len(d.rows) {
		d.InsertRow(len(d.rows), nil)
	}
	r := d.Row(at)
	if r == nil {
		return
	}
	r.InsertChar(col, c)
	r.Update(d.profile)
	d.dirty = true
}

// InsertNewline breaks the row at (at, col). At column 0 an empty row is
// inserted above; otherwise the row is split and the tail becomes a new
// row below. The caller repositions the cursor to column 0 of row at+1.
func (d *Document) InsertNewline(at, col int) {
	if col == 0 {
		d.InsertRow(at, nil)
		return
	}
	r := d.Row(at)
	if r == nil {
		return
	}
	tail := r.Split(col)
	r.Update(d.profile)
	d.InsertRow(at+1, tail)
	d.dirty = true
}

// DeleteChar deletes the character before (at, col) and returns the new
// cursor position. At column 0 the row is merged into its predecessor.
// Deleting at the document start or on the virtual end row is a no-op.
func (d *Document) DeleteChar(at, col int) (int, int) {
	if at == len(d.rows) {
		return at, col
	}
	if at == 0 && col == 0 {
		return at, col
	}
	r := d.Row(at)
	if r == nil {
		return at, col
	}
	if col > 0 {
		r.DeleteChar(col - 1)
		r.Update(d.profile)
		d.dirty = true
		return at, col - 1
	}
	prev := d.Row(at - 1)
	newCol := len(prev.Chars)
	prev.AppendChars(r.Chars)
	prev.Update(d.profile)
	d.DeleteRow(at)
	return at - 1, newCol
}

// Contents returns the document as flat text: every row joined with a
// trailing newline, including after the last row. This is the exact save
// format.
func (d *Document) Contents() []byte {
	var buf bytes.Buffer
	for _, r := range d.rows {
		buf.Write(r.Chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Load replaces the document contents from r, splitting on newlines and
// stripping one trailing carriage return per line. The dirty flag is
// cleared.
func (d *Document) Load(src io.Reader) error {
	d.rows = nil
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		chars := make([]byte, len(line))
		copy(chars, line)
		d.InsertRow(len(d.rows), chars)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	d.dirty = false
	return nil
}

// Open loads the file at path into the document and selects its language
// profile from the filename.
func (d *Document) Open(path string) error {
	d.SetFilename(path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return d.Load(f)
}

// Save writes the document to its filename and clears the dirty flag.
// It returns the number of bytes written.
func (d *Document) Save() (int, error) {
	if d.filename == "" {
		return 0, ErrNoFilename
	}
	data := d.Contents()
	if err := os.WriteFile(d.filename, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", d.filename, err)
	}
	d.dirty = false
	return len(data), nil
}
