// Package geom provides the rectangle type shared by the flip engine and
// the rendering surfaces it drives.
//
// All coordinates are in viewport space: the origin is the top-left corner
// of the visible area, X grows to the right and Y grows downwards.
package geom

import "math"

// Rect is an axis-aligned rectangle measured in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Top: r.Top + dy, Left: r.Left + dx, Width: r.Width, Height: r.Height}
}

// RelativeTo returns r expressed relative to the top-left corner of parent.
// Width and height are preserved.
func (r Rect) RelativeTo(parent Rect) Rect {
	return Rect{
		Top:    r.Top - parent.Top,
		Left:   r.Left - parent.Left,
		Width:  r.Width,
		Height: r.Height,
	}
}

// Intersects reports whether r and o overlap with a non-zero area.
// Touching edges do not count as an intersection.
func (r Rect) Intersects(o Rect) bool {
	return r.Top < o.Bottom() &&
		r.Bottom() > o.Top &&
		r.Left < o.Right() &&
		r.Right() > o.Left
}

// InViewport reports whether any part of r is visible inside a viewport of
// the given size anchored at the origin.
func (r Rect) InViewport(width, height float64) bool {
	return r.Top < height && r.Bottom() > 0 && r.Left < width && r.Right() > 0
}

// Bounds returns the smallest rectangle containing all points.
// It returns the zero Rect when pts is empty.
func Bounds(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Top: minY, Left: minX, Width: maxX - minX, Height: maxY - minY}
}

// Corners returns the four corners in clockwise order starting top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right(), Y: r.Top},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left, Y: r.Bottom()},
	}
}

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}
