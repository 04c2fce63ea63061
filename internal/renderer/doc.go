// Package renderer draws declarative frames onto a terminal backend.
//
// A Frame describes everything visible on screen: one bordered Panel that
// fills the viewport, with a title on the top border and a text body
// inside, plus an optional cursor position. Each Draw call repaints the
// whole frame; the backend is responsible for diffing against what the
// terminal already shows.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer (Frame -> cells)        │
//	├─────────────────────────────────────────┤
//	│      Layout (graphemes, tabs, width)    │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Draw(renderer.Frame{
//		Panel:  renderer.Panel{Title: path, Body: text},
//		Cursor: &renderer.CursorHint{X: 6, Y: 1},
//	})
package renderer
