package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/input/source"
)

func newTestEditor(t *testing.T, content string) *Editor {
	t.Helper()
	var path string
	if content == "" {
		path = filepath.Join(t.TempDir(), "empty.txt")
	} else {
		path = writeFile(t, "doc.txt", content)
	}
	doc, err := LoadDocument(path, 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	e := NewEditor(doc, nil)
	e.Seed()
	return e
}

func keyEv(k key.Event) source.Event {
	return source.Event{Key: k}
}

func typeString(t *testing.T, e *Editor, s string) {
	t.Helper()
	for _, r := range s {
		ev := keyEv(key.Char(r))
		if r == '\n' {
			ev = keyEv(key.Newline())
		}
		if err := e.Handle(ev); err != nil {
			t.Fatalf("Handle(%q) failed: %v", r, err)
		}
	}
}

func TestSeedCopiesSnapshot(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"hello", "hello"},
		{"hello\n", "hello"},
		{"line1\nline2\n", "line1\nline2"},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\rb"},
		{"a\n\nb", "a\n\nb"},
	}

	for _, tt := range tests {
		e := newTestEditor(t, tt.content)
		if e.Text() != tt.want {
			t.Errorf("seeded %q: buffer = %q, want %q", tt.content, e.Text(), tt.want)
		}
	}
}

func TestSeedRunsOnce(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.Seed()
	e.Seed()

	if e.Text() != "hello" {
		t.Errorf("buffer after repeated Seed = %q, want %q", e.Text(), "hello")
	}

	typeString(t, e, "!")
	e.Seed()
	if e.Text() != "hello!" {
		t.Errorf("Seed after edit changed buffer: %q", e.Text())
	}
}

func TestTypingAppends(t *testing.T) {
	e := newTestEditor(t, "ab")
	typeString(t, e, "cd\nef\tg")

	if got, want := e.Text(), "abcd\nef\tg"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestBackspace(t *testing.T) {
	e := newTestEditor(t, "")
	if err := e.Handle(keyEv(key.Backspace())); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if e.Text() != "" {
		t.Errorf("Backspace on empty buffer gave %q", e.Text())
	}

	e = newTestEditor(t, "hello")
	e.Handle(keyEv(key.Backspace()))
	if e.Text() != "hell" {
		t.Errorf("after Backspace: %q, want hell", e.Text())
	}
	typeString(t, e, "o")
	if e.Text() != "hello" {
		t.Errorf("after retyping: %q, want hello", e.Text())
	}
}

func TestIgnoredEvents(t *testing.T) {
	e := newTestEditor(t, "x")

	events := []source.Event{
		keyEv(key.Named(key.KeyDown)),
		keyEv(key.Named(key.KeyUp)),
		keyEv(key.Named(key.KeyF1)),
		keyEv(key.Ctrl('q')),
		keyEv(key.Other()),
		{Key: key.Other(), Tick: true},
		{Key: key.Other(), Resize: true, Width: 10, Height: 10},
	}
	for _, ev := range events {
		if err := e.Handle(ev); err != nil {
			t.Errorf("Handle(%+v) = %v, want nil", ev, err)
		}
	}
	if e.Text() != "x" {
		t.Errorf("ignored events changed the buffer: %q", e.Text())
	}
}

func TestIgnoredKeysAreLogged(t *testing.T) {
	var sb strings.Builder
	doc, err := LoadDocument(writeFile(t, "doc.txt", "x"), 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	e := NewEditor(doc, NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &sb}))

	e.Handle(keyEv(key.Named(key.KeyF5)))
	e.Handle(keyEv(key.Ctrl('q')))
	e.Handle(keyEv(key.Named(key.KeyDown)))

	out := sb.String()
	if !strings.Contains(out, "ignored key F5") || !strings.Contains(out, "ignored key C-q") {
		t.Errorf("ignored keys not logged: %q", out)
	}
	if strings.Contains(out, "Down") {
		t.Errorf("Down should be dropped silently: %q", out)
	}
}

func TestCtrlXQuits(t *testing.T) {
	e := newTestEditor(t, "x")
	if err := e.Handle(keyEv(key.Ctrl('x'))); !errors.Is(err, ErrQuit) {
		t.Errorf("Ctrl+X = %v, want ErrQuit", err)
	}
}

func TestCtrlSSaves(t *testing.T) {
	e := newTestEditor(t, "")
	typeString(t, e, "abc")

	if err := e.Handle(keyEv(key.Ctrl('s'))); err != nil {
		t.Fatalf("Ctrl+S failed: %v", err)
	}
	data, err := os.ReadFile(e.Document().Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("saved %q, want abc", data)
	}

	// Editing continues after a save.
	typeString(t, e, "d")
	if e.Text() != "abcd" {
		t.Errorf("buffer after save = %q", e.Text())
	}
}

func TestSaveUnchangedKeepsLoneCR(t *testing.T) {
	e := newTestEditor(t, "a\rb")
	if _, y := e.Cursor(); y != 1 {
		t.Errorf("cursor row = %d, want 1", y)
	}

	if err := e.Handle(keyEv(key.Ctrl('s'))); err != nil {
		t.Fatalf("Ctrl+S failed: %v", err)
	}
	data, err := os.ReadFile(e.Document().Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "a\rb" {
		t.Errorf("saved %q, want %q", data, "a\rb")
	}
}

func TestCtrlSFailure(t *testing.T) {
	doc, err := LoadDocument(filepath.Join(t.TempDir(), "missing", "f.txt"), 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	e := NewEditor(doc, nil)
	e.Seed()

	err = e.Handle(keyEv(key.Ctrl('s')))
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" {
		t.Errorf("Ctrl+S to bad path = %v, want save OperationError", err)
	}
}

func TestCursor(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")

	if x, y := e.Cursor(); x != 5 || y != 2 {
		t.Errorf("initial cursor = (%d, %d), want (5, 2)", x, y)
	}

	typeString(t, e, "\n世")
	// Width covers the whole buffer; the row stays at the load-time count.
	if x, y := e.Cursor(); x != 7 || y != 2 {
		t.Errorf("cursor after typing = (%d, %d), want (7, 2)", x, y)
	}
}

func TestFrame(t *testing.T) {
	e := newTestEditor(t, "hello")
	f := e.Frame()

	if f.Panel.Title != e.Document().Path {
		t.Errorf("title = %q, want path", f.Panel.Title)
	}
	if f.Panel.Body != "hello" {
		t.Errorf("body = %q, want hello", f.Panel.Body)
	}
	if f.Cursor == nil || f.Cursor.X != 6 || f.Cursor.Y != 1 {
		t.Errorf("cursor = %+v, want (6, 1)", f.Cursor)
	}
}
