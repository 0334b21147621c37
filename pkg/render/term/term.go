// Package term rasterises a surface document into terminal cells.
//
// Each painted quad fills the cells its bounding box covers, later quads
// over earlier ones. Opacity picks the shade glyph, so fades stay visible
// without color. Labels are written into the first row of their box.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flipkit/pkg/geom"
	"github.com/matzehuels/flipkit/pkg/render"
	"github.com/matzehuels/flipkit/pkg/surface"
)

// DefaultColumns is the raster width when Options.Columns is zero.
const DefaultColumns = 64

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Options configures rendering.
type Options struct {
	// Columns is the raster width in cells. Rows follow from the viewport
	// aspect ratio.
	Columns int

	// Color styles cells with lipgloss. Without it the output is plain
	// glyphs.
	Color bool
}

type cell struct {
	glyph rune
	color string // hex, empty for background
}

// Canvas is a grid of cells covering the viewport.
type Canvas struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
}

// NewCanvas creates a blank canvas for viewport.
func NewCanvas(viewport geom.Rect, cols int) *Canvas {
	if cols <= 0 {
		cols = DefaultColumns
	}
	rows := 1
	if viewport.Width > 0 {
		rows = max(1, int(math.Round(float64(cols)*viewport.Height/viewport.Width/cellAspect)))
	}
	c := &Canvas{cols: cols, rows: rows}
	if viewport.Width > 0 && viewport.Height > 0 {
		c.sx = float64(cols) / viewport.Width
		c.sy = float64(rows) / viewport.Height
	}
	c.cells = make([][]cell, rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, cols)
		for i := range c.cells[r] {
			c.cells[r][i].glyph = ' '
		}
	}
	return c
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// shade maps opacity to a glyph; zero opacity paints nothing.
func shade(opacity float64) (rune, bool) {
	switch {
	case opacity >= 0.75:
		return '█', true
	case opacity >= 0.45:
		return '▓', true
	case opacity >= 0.2:
		return '▒', true
	case opacity > 0.01:
		return '░', true
	}
	return 0, false
}

// span converts an interval in viewport units to a clamped cell range.
func span(lo, hi, scale float64, limit int) (int, int) {
	a := int(math.Floor(lo*scale + 0.5))
	b := int(math.Floor(hi*scale + 0.5))
	if b <= a && hi > lo {
		b = a + 1
	}
	return max(0, a), min(limit, b)
}

// Draw paints quads in order.
func (c *Canvas) Draw(quads []surface.Quad) {
	for i, q := range quads {
		glyph, ok := shade(q.Opacity)
		if !ok {
			continue
		}
		c0, c1 := span(q.Bounds.Left, q.Bounds.Right(), c.sx, c.cols)
		r0, r1 := span(q.Bounds.Top, q.Bounds.Bottom(), c.sy, c.rows)
		if c0 >= c1 || r0 >= r1 {
			continue
		}
		color := render.Blend(render.Fill(q.Node.Props().Color, i), q.Opacity).Hex()
		for r := r0; r < r1; r++ {
			for col := c0; col < c1; col++ {
				c.cells[r][col] = cell{glyph: glyph, color: color}
			}
		}
		c.label(q.Node.Label(), r0, c0, c1, color)
	}
}

func (c *Canvas) label(text string, row, c0, c1 int, color string) {
	if text == "" {
		return
	}
	col := c0
	if c1-c0 > 2 {
		col++
	}
	for _, ch := range text {
		if col >= c1 {
			return
		}
		c.cells[row][col] = cell{glyph: ch, color: color}
		col++
	}
}

// String returns the canvas as lines of plain glyphs.
func (c *Canvas) String() string {
	return c.render(false)
}

// Styled returns the canvas with lipgloss colors.
func (c *Canvas) Styled() string {
	return c.render(true)
}

func (c *Canvas) render(color bool) string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		if !color {
			for _, cl := range row {
				b.WriteRune(cl.glyph)
			}
			continue
		}
		// one style per run of equal colors
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].color == row[start].color {
				continue
			}
			b.WriteString(styleRun(row[start:i]))
			start = i
		}
	}
	return b.String()
}

func styleRun(run []cell) string {
	var s strings.Builder
	for _, cl := range run {
		s.WriteRune(cl.glyph)
	}
	style := lipgloss.NewStyle().Background(lipgloss.Color(render.Background))
	if run[0].color != "" {
		style = style.Foreground(lipgloss.Color(run[0].color))
	}
	return style.Render(s.String())
}

// Render rasterises doc.
func Render(doc *surface.Document, opts Options) string {
	c := NewCanvas(doc.Viewport(), opts.Columns)
	c.Draw(doc.Paint())
	if opts.Color {
		return c.Styled()
	}
	return c.String()
}
