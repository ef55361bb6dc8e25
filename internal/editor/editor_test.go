package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiln-editor/kiln/internal/config"
	"github.com/kiln-editor/kiln/internal/input"
	"github.com/kiln-editor/kiln/internal/syntax"
)

// step is one scripted read result: a byte, or a poll timeout.
type step struct {
	b       byte
	timeout bool
}

// script replays scripted reads one byte at a time, with (0, nil) for
// timeouts and io.EOF once exhausted.
type script struct {
	steps []step
}

func (s *script) Read(p []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.timeout {
		return 0, nil
	}
	p[0] = st.b
	return 1, nil
}

func lit(text string) []step {
	out := make([]step, len(text))
	for i := 0; i < len(text); i++ {
		out[i] = step{b: text[i]}
	}
	return out
}

func escapeKey() []step {
	return []step{{b: 0x1b}, {timeout: true}}
}

func keys(groups ...[]step) []step {
	var out []step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func newEditor(t *testing.T, steps []step, cfg *config.Config) *Editor {
	t.Helper()
	return New(Options{
		Rows:   12,
		Cols:   60,
		In:     &script{steps: steps},
		Out:    &bytes.Buffer{},
		Config: cfg,
	})
}

// loadText fills the editor's document through its public edit surface.
func loadText(t *testing.T, e *Editor, lines ...string) {
	t.Helper()
	d := e.Document()
	for i, l := range lines {
		d.InsertRow(i, []byte(l))
	}
}

func processAll(t *testing.T, e *Editor, n int) error {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.ProcessKey(); err != nil {
			return err
		}
	}
	return nil
}

func TestTypingInsertsText(t *testing.T) {
	e := newEditor(t, lit("hi"), nil)
	if err := processAll(t, e, 2); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if got := string(e.Document().Contents()); got != "hi\n" {
		t.Errorf("contents = %q, want %q", got, "hi\n")
	}
	if e.Viewport().Cx != 2 {
		t.Errorf("Cx = %d, want 2", e.Viewport().Cx)
	}
}

func TestEnterSplitsRow(t *testing.T) {
	e := newEditor(t, keys(lit("ab"), []step{{b: 0x1b}, {b: '['}, {b: 'D'}}, lit("\r")), nil)
	// Type "ab", move left, press Enter: rows become ["a", "b"].
	if err := processAll(t, e, 4); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	d := e.Document()
	if d.NumRows() != 2 || string(d.Row(0).Chars) != "a" || string(d.Row(1).Chars) != "b" {
		t.Errorf("contents = %q", d.Contents())
	}
	if v := e.Viewport(); v.Cy != 1 || v.Cx != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", v.Cy, v.Cx)
	}
}

func TestBackspaceMergesRows(t *testing.T) {
	e := newEditor(t, lit("\x7f"), nil)
	loadText(t, e, "a", "b")
	e.Viewport().Cy = 1
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	d := e.Document()
	if d.NumRows() != 1 || string(d.Row(0).Chars) != "ab" {
		t.Errorf("contents = %q, want ab", d.Contents())
	}
	if v := e.Viewport(); v.Cy != 0 || v.Cx != 1 {
		t.Errorf("cursor = (%d,%d), want (0,1)", v.Cy, v.Cx)
	}
}

func TestDeleteKeyDeletesForward(t *testing.T) {
	e := newEditor(t, lit("\x1b[3~"), nil)
	loadText(t, e, "ab")
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if got := string(e.Document().Row(0).Chars); got != "b" {
		t.Errorf("row = %q, want %q", got, "b")
	}
}

func TestQuitCleanDocument(t *testing.T) {
	e := newEditor(t, lit(string(rune(input.Ctrl('q')))), nil)
	if err := e.ProcessKey(); !errors.Is(err, ErrQuit) {
		t.Errorf("error = %v, want ErrQuit", err)
	}
}

func TestQuitGuardWithUnsavedChanges(t *testing.T) {
	ctrlQ := string(rune(input.Ctrl('q')))
	e := newEditor(t, lit("x"+ctrlQ+ctrlQ+ctrlQ), nil)

	// One edit makes the document dirty.
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("edit: %v", err)
	}

	// First quit warns and does not exit.
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("first quit: %v", err)
	}
	if !strings.Contains(e.StatusMessage(), "WARNING") {
		t.Errorf("expected warning message, got %q", e.StatusMessage())
	}

	// Second quit still does not exit.
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("second quit: %v", err)
	}

	// Third consecutive quit exits.
	if err := e.ProcessKey(); !errors.Is(err, ErrQuit) {
		t.Errorf("third quit error = %v, want ErrQuit", err)
	}
}

func TestQuitGuardResetsOnOtherKey(t *testing.T) {
	ctrlQ := string(rune(input.Ctrl('q')))
	e := newEditor(t, lit("x"+ctrlQ+ctrlQ+"y"+ctrlQ+ctrlQ), nil)

	if err := processAll(t, e, 3); err != nil { // edit + 2 quits
		t.Fatalf("ProcessKey: %v", err)
	}
	if err := e.ProcessKey(); err != nil { // intervening edit resets counter
		t.Fatalf("edit: %v", err)
	}
	// Two more quits are now insufficient.
	if err := processAll(t, e, 2); err != nil {
		t.Errorf("error = %v, want nil after 2 quits post-reset", err)
	}
}

func TestForceQuitIgnoresDirty(t *testing.T) {
	e := newEditor(t, lit("x"), nil)
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := e.Quit(true); !errors.Is(err, ErrQuit) {
		t.Errorf("Quit(true) = %v, want ErrQuit", err)
	}
}

func TestSaveWithFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	e := newEditor(t, lit(string(rune(input.Ctrl('s')))), nil)
	loadText(t, e, "hello")
	e.Document().SetFilename(path)

	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("file = %q, want %q", data, "hello\n")
	}
	if !strings.Contains(e.StatusMessage(), "6 bytes written to disk") {
		t.Errorf("status = %q", e.StatusMessage())
	}
	if e.Document().Dirty() {
		t.Error("document still dirty after save")
	}
}

func TestSaveAsPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.c")
	ctrlS := string(rune(input.Ctrl('s')))
	e := newEditor(t, keys(lit("if"), lit(ctrlS), lit(path), lit("\r")), nil)

	if err := processAll(t, e, 3); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "if\n" {
		t.Errorf("file = %q, want %q", data, "if\n")
	}
	// Choosing a .c filename re-runs syntax selection.
	if p := e.Document().Profile(); p == nil || p.Name != "c" {
		t.Errorf("profile = %v, want c", p)
	}
}

func TestSaveAsAborted(t *testing.T) {
	ctrlS := string(rune(input.Ctrl('s')))
	e := newEditor(t, keys(lit("x"), lit(ctrlS), escapeKey()), nil)

	if err := processAll(t, e, 2); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if got := e.StatusMessage(); got != "Save aborted" {
		t.Errorf("status = %q, want %q", got, "Save aborted")
	}
	if !e.Document().Dirty() {
		t.Error("abort cleared dirty flag")
	}
}

func TestAutoClosePairs(t *testing.T) {
	cfg := &config.Config{AutoClosePairs: true}
	e := newEditor(t, lit("{("), cfg)
	if err := processAll(t, e, 2); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if got := string(e.Document().Row(0).Chars); got != "{()}" {
		t.Errorf("row = %q, want %q", got, "{()}")
	}
	if e.Viewport().Cx != 2 {
		t.Errorf("Cx = %d, want 2 (between the pairs)", e.Viewport().Cx)
	}
}

func TestAutoCloseDisabledByDefault(t *testing.T) {
	e := newEditor(t, lit("{"), nil)
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if got := string(e.Document().Row(0).Chars); got != "{" {
		t.Errorf("row = %q, want %q", got, "{")
	}
}

func TestFindMovesCursorToMatch(t *testing.T) {
	ctrlF := string(rune(input.Ctrl('f')))
	e := newEditor(t, keys(lit(ctrlF), lit("gamma"), lit("\r")), nil)
	loadText(t, e, "alpha", "beta", "gamma")

	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if v := e.Viewport(); v.Cy != 2 || v.Cx != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", v.Cy, v.Cx)
	}
}

func TestFindWraparound(t *testing.T) {
	for _, dir := range []string{"forward", "backward"} {
		t.Run(dir, func(t *testing.T) {
			ctrlF := string(rune(input.Ctrl('f')))
			var steps []step
			if dir == "forward" {
				steps = keys(lit(ctrlF), lit("two"), lit("\r"))
			} else {
				// Arrow-left reverses direction; with one occurrence the
				// scan must wrap and land on the same row.
				steps = keys(lit(ctrlF), lit("two"), lit("\x1b[D"), lit("\r"))
			}
			e := newEditor(t, steps, nil)
			loadText(t, e, "one", "two", "three")
			e.Viewport().Cy = 2

			if err := e.ProcessKey(); err != nil {
				t.Fatalf("ProcessKey: %v", err)
			}
			if v := e.Viewport(); v.Cy != 1 {
				t.Errorf("cursor row = %d, want 1", v.Cy)
			}
		})
	}
}

func TestFindHighlightsAndRestores(t *testing.T) {
	ctrlF := string(rune(input.Ctrl('f')))
	e := newEditor(t, keys(lit(ctrlF), lit("ee"), lit("\r")), nil)
	loadText(t, e, "needle")

	// Peek mid-search: after typing both letters the match overlay must
	// be applied, then restored once the prompt ends.
	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	hl := e.Document().Row(0).HL
	for i, c := range hl {
		if c != syntax.ClassNormal {
			t.Errorf("byte %d: class %v after search ended, want Normal", i, c)
		}
	}
}

func TestFindCancelRestoresCursor(t *testing.T) {
	ctrlF := string(rune(input.Ctrl('f')))
	e := newEditor(t, keys(lit(ctrlF), lit("three"), escapeKey()), nil)
	loadText(t, e, "one", "two", "three")
	e.Viewport().Cx, e.Viewport().Cy = 1, 1

	if err := e.ProcessKey(); err != nil {
		t.Fatalf("ProcessKey: %v", err)
	}
	if v := e.Viewport(); v.Cy != 1 || v.Cx != 1 {
		t.Errorf("cursor = (%d,%d), want restored (1,1)", v.Cy, v.Cx)
	}
}

func TestRunQuitsCleanly(t *testing.T) {
	e := newEditor(t, lit(string(rune(input.Ctrl('q')))), nil)
	if err := e.Run(); !errors.Is(err, ErrQuit) {
		t.Errorf("Run = %v, want ErrQuit", err)
	}
	if !strings.Contains(e.StatusMessage(), "HELP") {
		t.Errorf("status = %q, want help text", e.StatusMessage())
	}
}
