// Package layout turns a line of text into terminal cells.
package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/jot/internal/renderer/core"
)

// DefaultTabWidth is used when an engine is created with a width below 1.
const DefaultTabWidth = 4

// LineLayout represents the visual layout of a single line.
type LineLayout struct {
	// Cells holds one entry per screen column. Wide graphemes are followed
	// by a continuation cell.
	Cells []core.Cell

	// Width is the total visual width in columns.
	Width int

	HasTabs bool // Contains tab characters
	HasWide bool // Contains wide (CJK) characters
}

// IsEmpty returns true if the layout represents an empty line.
func (l *LineLayout) IsEmpty() bool {
	return len(l.Cells) == 0
}

// Engine computes line layouts.
type Engine struct {
	tabWidth int
}

// NewEngine creates a layout engine with the given tab width.
func NewEngine(tabWidth int) *Engine {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Engine{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// Layout computes the visual layout for a line with the given style.
// The line must not contain '\n'. Tabs expand to the next tab stop and
// other zero-width control graphemes are dropped.
func (e *Engine) Layout(line string, style core.Style) *LineLayout {
	layout := &LineLayout{
		Cells: make([]core.Cell, 0, len(line)),
	}

	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)

		if cluster == "\t" {
			layout.HasTabs = true
			stop := e.tabWidth - (layout.Width % e.tabWidth)
			for i := 0; i < stop; i++ {
				layout.Cells = append(layout.Cells, core.NewStyledCell(' ', style))
			}
			layout.Width += stop
			continue
		}

		if width == 0 {
			continue
		}

		layout.Cells = append(layout.Cells, core.GraphemeCell(cluster, width, style))
		for i := 1; i < width; i++ {
			layout.HasWide = true
			layout.Cells = append(layout.Cells, core.Cell{Style: style})
		}
		layout.Width += width
	}

	return layout
}
