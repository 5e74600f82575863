package geometry

import "fmt"

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String formats the rectangle the way X geometry strings are written.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Right returns the first column right of the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Translate moves the rectangle by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rectangle by n on every side. Negative n grows it.
// Sizes never go below zero.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.Width = max(r.Width-2*n, 0)
	r.Height = max(r.Height-2*n, 0)
	return r
}

// Expand grows the rectangle by n on every side.
func (r Rect) Expand(n int) Rect {
	return r.Inset(-n)
}

// Outer converts X window geometry (outer corner, content size) into the
// rectangle covered on screen including a border of the given width.
func (r Rect) Outer(border int) Rect {
	r.Width += 2 * border
	r.Height += 2 * border
	return r
}

// Inner is the inverse of Outer: it keeps the corner and removes the border
// from the size.
func (r Rect) Inner(border int) Rect {
	r.Width = max(r.Width-2*border, 1)
	r.Height = max(r.Height-2*border, 1)
	return r
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the shared area of both rectangles, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ClampInside moves the rectangle so it lies within area, shrinking it first
// when it is larger than the area.
func (r Rect) ClampInside(area Rect) Rect {
	r.Width = min(r.Width, area.Width)
	r.Height = min(r.Height, area.Height)
	if r.X < area.X {
		r.X = area.X
	} else if r.Right() > area.Right() {
		r.X = area.Right() - r.Width
	}
	if r.Y < area.Y {
		r.Y = area.Y
	} else if r.Bottom() > area.Bottom() {
		r.Y = area.Bottom() - r.Height
	}
	return r
}

// CenterInside centers the rectangle within area keeping its size. The
// result is clamped when the rectangle does not fit.
func (r Rect) CenterInside(area Rect) Rect {
	r.X = area.X + (area.Width-r.Width)/2
	r.Y = area.Y + (area.Height-r.Height)/2
	return r.ClampInside(area)
}

// DistanceSq returns the squared distance between the point and the center
// of the rectangle.
func (r Rect) DistanceSq(x, y int) int {
	cx, cy := r.Center()
	dx, dy := cx-x, cy-y
	return dx*dx + dy*dy
}
