package renderer

import (
	"github.com/dshills/jot/internal/renderer/backend"
	"github.com/dshills/jot/internal/renderer/core"
	"github.com/dshills/jot/internal/renderer/layout"
)

// Options configures the renderer.
type Options struct {
	BorderStyle core.Style
	TitleStyle  core.Style
	BodyStyle   core.Style

	// TabWidth is the tab stop distance used when laying out the body.
	TabWidth int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		BorderStyle: core.DefaultStyle(),
		TitleStyle:  core.DefaultStyle().Bold(),
		BodyStyle:   core.DefaultStyle(),
		TabWidth:    layout.DefaultTabWidth,
	}
}

// CursorHint is an absolute screen position for the terminal cursor.
type CursorHint struct {
	X, Y int
}

// Frame is a complete description of one screen.
type Frame struct {
	Panel Panel

	// Cursor positions the terminal cursor; nil hides it.
	Cursor *CursorHint
}

// Renderer paints frames onto a backend.
type Renderer struct {
	backend    backend.Backend
	opts       Options
	layout     *layout.Engine
	frameCount uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts,
		layout:  layout.NewEngine(opts.TabWidth),
	}
}

// Area returns the full viewport.
func (r *Renderer) Area() core.ScreenRect {
	w, h := r.backend.Size()
	return core.RectFromSize(0, 0, h, w)
}

// Draw repaints the whole screen from f and flushes it.
func (r *Renderer) Draw(f Frame) {
	r.backend.Clear()
	r.drawPanel(f.Panel, r.Area())

	if f.Cursor != nil {
		r.backend.ShowCursor(f.Cursor.X, f.Cursor.Y)
	} else {
		r.backend.HideCursor()
	}

	r.backend.Show()
	r.frameCount++
}

// Resync forces a full repaint on the next flush, used after a resize.
func (r *Renderer) Resync() {
	r.backend.Sync()
}

// FrameCount returns the number of frames drawn.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}
