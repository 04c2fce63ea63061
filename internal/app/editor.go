package app

import (
	"github.com/dshills/jot/internal/engine/buffer"
	"github.com/dshills/jot/internal/input/key"
	"github.com/dshills/jot/internal/input/source"
	"github.com/dshills/jot/internal/renderer"
)

// Editor owns the buffer and applies events to it. It is driven by a
// single goroutine and needs no locking.
type Editor struct {
	doc    *Document
	buf    *buffer.Text
	seeded bool
	log    *Logger
}

// NewEditor creates an editor for doc with an empty buffer. Call Seed to
// copy the document content in.
func NewEditor(doc *Document, log *Logger) *Editor {
	if log == nil {
		log = NullLogger()
	}
	return &Editor{
		doc: doc,
		buf: buffer.New(),
		log: log,
	}
}

// Seed copies the load-time snapshot into the buffer line by line. Only
// the first call has an effect.
func (e *Editor) Seed() {
	if e.seeded {
		return
	}
	e.seeded = true

	for i, line := range buffer.Lines(e.doc.Snapshot()) {
		if i > 0 {
			e.buf.Append('\n')
		}
		e.buf.AppendString(line)
	}
	e.log.Debug("seeded %d lines", e.doc.LineCount())
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	return e.buf.String()
}

// Document returns the document being edited.
func (e *Editor) Document() *Document {
	return e.doc
}

// Handle applies one event. It returns ErrQuit on Ctrl+X and the save
// error if Ctrl+S fails; both end the editor loop.
//
//	Ctrl+X       quit
//	Ctrl+S       write the buffer to the document path
//	Enter        append '\n'
//	character    append it
//	Backspace    remove the last character, if any
//	anything else, ticks and resizes are ignored
func (e *Editor) Handle(ev source.Event) error {
	if ev.Tick || ev.Resize {
		return nil
	}

	k := ev.Key
	switch {
	case k.IsCtrl('x'):
		return ErrQuit
	case k.IsCtrl('s'):
		return e.save()
	case k.IsNamed(key.KeyDown):
		// No cursor movement.
		return nil
	}

	switch k.Kind {
	case key.KindNewline:
		e.buf.Append('\n')
	case key.KindChar:
		e.buf.Append(k.Rune)
	case key.KindBackspace:
		e.buf.Backspace()
	default:
		e.log.Debug("ignored key %s", k)
	}
	return nil
}

func (e *Editor) save() error {
	content := e.buf.Bytes()
	if err := e.doc.Save(content); err != nil {
		e.log.Error("%v", err)
		return err
	}
	e.log.Info("saved %d bytes to %s", len(content), e.doc.Path)
	return nil
}

// Cursor returns the terminal cursor position. x follows the display width
// of the whole buffer; y is the line count of the load-time snapshot and
// does not move while typing.
func (e *Editor) Cursor() (x, y int) {
	return e.buf.Width() + 1, e.doc.LineCount()
}

// Frame describes the screen for the current state.
func (e *Editor) Frame() renderer.Frame {
	x, y := e.Cursor()
	return renderer.Frame{
		Panel: renderer.Panel{
			Title: e.doc.Path,
			Body:  e.buf.String(),
		},
		Cursor: &renderer.CursorHint{X: x, Y: y},
	}
}
