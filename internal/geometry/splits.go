package geometry

// Splits holds the boundaries snapped windows share on one monitor of one
// workspace. Vertical is the x offset between the left and right halves;
// Left and Right are the y offsets between the top and bottom quarters of
// each half. All offsets are relative to the work area origin.
type Splits struct {
	Vertical int
	Left     int
	Right    int
}

// DefaultSplits places every boundary at the middle of the area.
func DefaultSplits(area Rect) Splits {
	return Splits{
		Vertical: area.Width / 2,
		Left:     area.Height / 2,
		Right:    area.Height / 2,
	}
}

// Rescale maps the splits of one area size onto another keeping their
// relative positions.
func (s Splits) Rescale(from, to Rect) Splits {
	if from.Width <= 0 || from.Height <= 0 {
		return DefaultSplits(to)
	}
	return Splits{
		Vertical: s.Vertical * to.Width / from.Width,
		Left:     s.Left * to.Height / from.Height,
		Right:    s.Right * to.Height / from.Height,
	}
}

// SplitRole names one of the three boundaries.
type SplitRole int

const (
	RoleVertical SplitRole = iota
	RoleLeft
	RoleRight
)

func (r SplitRole) String() string {
	switch r {
	case RoleVertical:
		return "vertical"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	}
	return "unknown"
}

// Horizontal reports whether the boundary runs horizontally and therefore
// moves along y.
func (r SplitRole) Horizontal() bool { return r != RoleVertical }

// Get returns the offset of the boundary.
func (s Splits) Get(role SplitRole) int {
	switch role {
	case RoleLeft:
		return s.Left
	case RoleRight:
		return s.Right
	}
	return s.Vertical
}

// With returns a copy with the boundary set to pos.
func (s Splits) With(role SplitRole, pos int) Splits {
	switch role {
	case RoleLeft:
		s.Left = pos
	case RoleRight:
		s.Right = pos
	default:
		s.Vertical = pos
	}
	return s
}

// Uses reports whether a window in state is bounded by the split.
func (r SplitRole) Uses(state SnapState) bool {
	switch r {
	case RoleVertical:
		return state.Side() != SideNone
	case RoleLeft:
		return state.Side() == SideLeft && state.IsQuarter()
	case RoleRight:
		return state.Side() == SideRight && state.IsQuarter()
	}
	return false
}

// Stick returns the first sticky point within threshold of p, or p itself.
func Stick(p int, points []int, threshold int) int {
	for _, s := range points {
		if p >= s-threshold && p <= s+threshold {
			return s
		}
	}
	return p
}

// SplitPolicy configures how a boundary reacts to being dragged.
type SplitPolicy struct {
	// MinPercent keeps every boundary this far from the area edges.
	MinPercent int
	// VerticalSticky and HorizontalSticky are percentages of the area.
	VerticalSticky   []int
	HorizontalSticky []int
	Threshold        int
}

// Move places the boundary at pos (an offset from the area origin). Unless
// free is set, the position sticks to the nearest configured sticky point
// within the threshold. The result is clamped to the minimum split size.
func (s Splits) Move(role SplitRole, pos int, area Rect, policy SplitPolicy, free bool) Splits {
	size, percents := area.Width, policy.VerticalSticky
	if role.Horizontal() {
		size, percents = area.Height, policy.HorizontalSticky
	}
	if !free {
		points := make([]int, 0, len(percents))
		for _, p := range percents {
			points = append(points, size*p/100)
		}
		pos = Stick(pos, points, policy.Threshold)
	}
	lo := size * policy.MinPercent / 100
	hi := size - lo
	pos = min(max(pos, lo), hi)
	return s.With(role, pos)
}

// Handle is the on-screen strip that lets a boundary be dragged.
type Handle struct {
	Role SplitRole
	Rect Rect
}

// HandleRects returns the absolute rectangles of the three split handles on
// area, each size pixels thick and centered on its boundary.
func HandleRects(area Rect, s Splits, size int) [3]Handle {
	off := size / 2
	return [3]Handle{
		{Role: RoleVertical, Rect: Rect{X: area.X + s.Vertical - off, Y: area.Y, Width: size, Height: area.Height}},
		{Role: RoleLeft, Rect: Rect{X: area.X, Y: area.Y + s.Left - off, Width: s.Vertical, Height: size}},
		{Role: RoleRight, Rect: Rect{X: area.X + s.Vertical, Y: area.Y + s.Right - off, Width: area.Width - s.Vertical, Height: size}},
	}
}
