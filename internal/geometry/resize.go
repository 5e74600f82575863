package geometry

// Edges selects which sides of a rectangle follow the pointer in a resize.
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// ResizeEdges picks the edges to move from where the pointer grabbed the
// rectangle: the outer thirds select the nearest edge on each axis. A grab
// in the middle third on both axes resizes from the bottom-right corner.
func ResizeEdges(r Rect, x, y int) Edges {
	var e Edges
	switch {
	case x < r.X+r.Width/3:
		e |= EdgeLeft
	case x >= r.Right()-r.Width/3:
		e |= EdgeRight
	}
	switch {
	case y < r.Y+r.Height/3:
		e |= EdgeTop
	case y >= r.Bottom()-r.Height/3:
		e |= EdgeBottom
	}
	if e == 0 {
		e = EdgeRight | EdgeBottom
	}
	return e
}

// ApplyResize moves the selected edges of start by dx, dy. The size never
// drops below minW x minH; when clamped the edge opposite to the moving one
// stays anchored.
func ApplyResize(start Rect, edges Edges, dx, dy, minW, minH int) Rect {
	r := start
	if edges&EdgeLeft != 0 {
		r.Width = max(start.Width-dx, minW)
		r.X = start.Right() - r.Width
	} else if edges&EdgeRight != 0 {
		r.Width = max(start.Width+dx, minW)
	}
	if edges&EdgeTop != 0 {
		r.Height = max(start.Height-dy, minH)
		r.Y = start.Bottom() - r.Height
	} else if edges&EdgeBottom != 0 {
		r.Height = max(start.Height+dy, minH)
	}
	return r
}
