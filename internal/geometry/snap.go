package geometry

// SnapState is the named placement preset applied to a window.
type SnapState int

const (
	SnapNone SnapState = iota
	SnapLeft
	SnapRight
	SnapTopLeft
	SnapTopRight
	SnapBottomLeft
	SnapBottomRight
	SnapMaximized
)

func (s SnapState) String() string {
	switch s {
	case SnapNone:
		return "none"
	case SnapLeft:
		return "left"
	case SnapRight:
		return "right"
	case SnapTopLeft:
		return "top-left"
	case SnapTopRight:
		return "top-right"
	case SnapBottomLeft:
		return "bottom-left"
	case SnapBottomRight:
		return "bottom-right"
	case SnapMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Side is the horizontal half a snap state occupies.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// Band is the vertical part of a half a snap state occupies.
type Band int

const (
	BandFull Band = iota
	BandTop
	BandBottom
)

// Side returns the half of the monitor the state sits on. Maximized and
// None have no side.
func (s SnapState) Side() Side {
	switch s {
	case SnapLeft, SnapTopLeft, SnapBottomLeft:
		return SideLeft
	case SnapRight, SnapTopRight, SnapBottomRight:
		return SideRight
	}
	return SideNone
}

// Band returns the vertical band of a half or quarter state.
func (s SnapState) Band() Band {
	switch s {
	case SnapTopLeft, SnapTopRight:
		return BandTop
	case SnapBottomLeft, SnapBottomRight:
		return BandBottom
	}
	return BandFull
}

// IsSnapped reports whether any preset is applied.
func (s SnapState) IsSnapped() bool { return s != SnapNone }

// IsQuarter reports whether the state is one of the four corners.
func (s SnapState) IsQuarter() bool { return s.Band() != BandFull }

// Compose builds a snap state out of a side and a band. SideNone yields
// SnapNone.
func Compose(side Side, band Band) SnapState {
	switch side {
	case SideLeft:
		switch band {
		case BandTop:
			return SnapTopLeft
		case BandBottom:
			return SnapBottomLeft
		}
		return SnapLeft
	case SideRight:
		switch band {
		case BandTop:
			return SnapTopRight
		case BandBottom:
			return SnapBottomRight
		}
		return SnapRight
	}
	return SnapNone
}

// SnapLeft returns the state reached by a snap-left request. A quarter on
// the right half moves across keeping its band; everything else becomes the
// plain left half.
func (s SnapState) SnapLeft() SnapState {
	if s.Side() == SideRight {
		return Compose(SideLeft, s.Band())
	}
	return SnapLeft
}

// SnapRight mirrors SnapLeft.
func (s SnapState) SnapRight() SnapState {
	if s.Side() == SideLeft {
		return Compose(SideRight, s.Band())
	}
	return SnapRight
}

// SnapUp refines a half into its top quarter. It only applies to states
// with a side; ok is false otherwise and the state is returned unchanged.
func (s SnapState) SnapUp() (SnapState, bool) {
	if s.Side() == SideNone {
		return s, false
	}
	return Compose(s.Side(), BandTop), true
}

// SnapDown refines a half into its bottom quarter.
func (s SnapState) SnapDown() (SnapState, bool) {
	if s.Side() == SideNone {
		return s, false
	}
	return Compose(s.Side(), BandBottom), true
}

// SnapGeometry returns the X geometry (outer corner, content size) of a
// window snapped into state on the given work area. The outer rectangle is
// inset by gap on every side; border is removed from the size so that the
// outer rectangle including the border matches exactly. SnapNone returns the
// zero Rect.
func SnapGeometry(state SnapState, area Rect, splits Splits, gap, border int) Rect {
	var target Rect
	switch state.Side() {
	case SideLeft:
		target = Rect{X: area.X, Y: area.Y, Width: splits.Vertical, Height: area.Height}
		switch state.Band() {
		case BandTop:
			target.Height = splits.Left
		case BandBottom:
			target.Y += splits.Left
			target.Height = area.Height - splits.Left
		}
	case SideRight:
		target = Rect{X: area.X + splits.Vertical, Y: area.Y, Width: area.Width - splits.Vertical, Height: area.Height}
		switch state.Band() {
		case BandTop:
			target.Height = splits.Right
		case BandBottom:
			target.Y += splits.Right
			target.Height = area.Height - splits.Right
		}
	default:
		if state != SnapMaximized {
			return Rect{}
		}
		target = area
	}
	return target.Inset(gap).Inner(border)
}

// Unsnap returns the geometry restored from a saved rectangle. savedArea is
// the work area at the time it was saved. The rectangle comes back as saved
// unless that work area changed or the window would end up entirely off the
// area, in which case it is clamped onto the area.
func Unsnap(saved, savedArea, area Rect, border int) Rect {
	outer := saved.Outer(border)
	if savedArea == area && outer.Overlaps(area) {
		return saved
	}
	return outer.ClampInside(area).Inner(border)
}

// Center returns the geometry centered on the work area at its current size.
func Center(current, area Rect, border int) Rect {
	return current.Outer(border).CenterInside(area).Inner(border)
}

// MoveSnapState returns the preset implied by a pointer position while a
// window is dragged with the snap modifier: the half under the pointer,
// refined to a quarter when the pointer is in the top or bottom quarter band
// of the area.
func MoveSnapState(x, y int, area Rect) SnapState {
	side := SideLeft
	if x >= area.X+area.Width/2 {
		side = SideRight
	}
	band := BandFull
	quarter := area.Height / 4
	if y < area.Y+quarter {
		band = BandTop
	} else if y >= area.Bottom()-quarter {
		band = BandBottom
	}
	return Compose(side, band)
}

// EdgeSnapState returns the preset implied by pushing the pointer against
// the edges of the area. Touching the left or right edge picks a half, a
// corner picks a quarter, and touching the top or bottom edge alone
// maximizes. ok is false while the pointer is away from every edge.
func EdgeSnapState(x, y int, area Rect) (SnapState, bool) {
	inner := area.Inset(1)
	side := SideNone
	if x < inner.X {
		side = SideLeft
	} else if x >= inner.Right() {
		side = SideRight
	}
	band := BandFull
	if y < inner.Y {
		band = BandTop
	} else if y >= inner.Bottom() {
		band = BandBottom
	}
	if side == SideNone {
		if band == BandFull {
			return SnapNone, false
		}
		return SnapMaximized, true
	}
	return Compose(side, band), true
}
