package wm

import (
	"slices"

	"github.com/1broseidon/snapwm/internal/geometry"
)

// SmartPlace finds the first position for a window of size r inside area
// that overlaps none of the occupied rectangles. Candidate corners are the
// area origin and the right and bottom edges of the occupied rectangles,
// scanned top to bottom and left to right. ok is false when nothing fits.
func SmartPlace(r, area geometry.Rect, occupied []geometry.Rect) (geometry.Rect, bool) {
	if r.Width > area.Width || r.Height > area.Height {
		return geometry.Rect{}, false
	}
	xs := []int{area.X}
	ys := []int{area.Y}
	for _, o := range occupied {
		xs = append(xs, o.Right())
		ys = append(ys, o.Bottom())
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs = slices.Compact(xs)
	ys = slices.Compact(ys)

	for _, y := range ys {
		for _, x := range xs {
			cand := geometry.Rect{X: x, Y: y, Width: r.Width, Height: r.Height}
			if cand.X < area.X || cand.Y < area.Y || cand.Right() > area.Right() || cand.Bottom() > area.Bottom() {
				continue
			}
			free := true
			for _, o := range occupied {
				if cand.Overlaps(o) {
					free = false
					break
				}
			}
			if free {
				return cand, true
			}
		}
	}
	return geometry.Rect{}, false
}
