package renderer

import (
	"strings"

	"github.com/dshills/jot/internal/renderer/core"
)

// Box-drawing runes for panel borders.
const (
	borderHorizontal  = '─'
	borderVertical    = '│'
	borderTopLeft     = '┌'
	borderTopRight    = '┐'
	borderBottomLeft  = '└'
	borderBottomRight = '┘'
)

// Panel is a bordered block with a title and a text body.
type Panel struct {
	// Title is drawn on the top border, left aligned.
	Title string

	// Body is drawn inside the border. Lines are separated by '\n' and
	// clipped, never wrapped.
	Body string
}

// Inner returns the body area of a panel drawn over area.
func Inner(area core.ScreenRect) core.ScreenRect {
	return area.Inset(1, 1, 1, 1)
}

// drawPanel paints p over area.
func (r *Renderer) drawPanel(p Panel, area core.ScreenRect) {
	if area.Width() < 2 || area.Height() < 2 {
		return
	}

	r.drawBorder(area)
	r.drawTitle(p.Title, area)
	r.drawBody(p.Body, Inner(area))
}

func (r *Renderer) drawBorder(area core.ScreenRect) {
	style := r.opts.BorderStyle
	left, right := area.Left, area.Right-1
	top, bottom := area.Top, area.Bottom-1

	for x := left + 1; x < right; x++ {
		r.backend.SetCell(x, top, core.NewStyledCell(borderHorizontal, style))
		r.backend.SetCell(x, bottom, core.NewStyledCell(borderHorizontal, style))
	}
	for y := top + 1; y < bottom; y++ {
		r.backend.SetCell(left, y, core.NewStyledCell(borderVertical, style))
		r.backend.SetCell(right, y, core.NewStyledCell(borderVertical, style))
	}
	r.backend.SetCell(left, top, core.NewStyledCell(borderTopLeft, style))
	r.backend.SetCell(right, top, core.NewStyledCell(borderTopRight, style))
	r.backend.SetCell(left, bottom, core.NewStyledCell(borderBottomLeft, style))
	r.backend.SetCell(right, bottom, core.NewStyledCell(borderBottomRight, style))
}

func (r *Renderer) drawTitle(title string, area core.ScreenRect) {
	if title == "" {
		return
	}
	// A newline in a path would break the border row.
	title = strings.ReplaceAll(title, "\n", " ")

	limit := area.Width() - 2
	l := r.layout.Layout(title, r.opts.TitleStyle)
	r.putCells(l.Cells, area.Left+1, area.Top, limit)
}

func (r *Renderer) drawBody(body string, inner core.ScreenRect) {
	if inner.IsEmpty() {
		return
	}

	row := inner.Top
	for _, line := range strings.Split(body, "\n") {
		if row >= inner.Bottom {
			break
		}
		l := r.layout.Layout(line, r.opts.BodyStyle)
		r.putCells(l.Cells, inner.Left, row, inner.Width())
		row++
	}
}

// putCells writes cells starting at (x, y), never past limit columns. A
// wide cell that would straddle the limit is replaced by a space.
func (r *Renderer) putCells(cells []core.Cell, x, y, limit int) {
	for i := 0; i < len(cells) && i < limit; i++ {
		c := cells[i]
		if c.Width > 1 && i+c.Width > limit {
			c = core.NewStyledCell(' ', c.Style)
		}
		r.backend.SetCell(x+i, y, c)
	}
}
