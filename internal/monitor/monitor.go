// Package monitor tracks the physical outputs, their usable work areas and
// the workspace each of them is showing.
package monitor

import (
	"sort"

	"github.com/1broseidon/snapwm/internal/geometry"
)

// Padding is space kept free along the edges of a monitor.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Apply shrinks r by the padding.
func (p Padding) Apply(r geometry.Rect) geometry.Rect {
	r.X += p.Left
	r.Y += p.Top
	r.Width = max(r.Width-p.Left-p.Right, 1)
	r.Height = max(r.Height-p.Top-p.Bottom, 1)
	return r
}

// Add returns the per-side sum of both paddings.
func (p Padding) Add(o Padding) Padding {
	return Padding{
		Top:    p.Top + o.Top,
		Bottom: p.Bottom + o.Bottom,
		Left:   p.Left + o.Left,
		Right:  p.Right + o.Right,
	}
}

// Output is a monitor as reported by the display server.
type Output struct {
	Name    string
	Bounds  geometry.Rect
	Primary bool
	// Reserved is space claimed by docks and panels through struts.
	Reserved Padding
}

// Monitor is one physical output as seen by the window manager.
type Monitor struct {
	Index    int
	Name     string
	Bounds   geometry.Rect
	WorkArea geometry.Rect
	Primary  bool
	// Workspace is the workspace currently shown on this monitor.
	Workspace int

	reserved Padding
}

// Options controls how work areas are derived from output bounds.
type Options struct {
	Padding          Padding
	SecondaryPadding Padding
	// BarHeight is reserved at the top of the primary monitor.
	BarHeight int
}

// Direction selects a neighbor in Adjacent.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Layout is the live list of monitors ordered by the x coordinate of their
// bounds. Indices are stable until the next Update.
type Layout struct {
	monitors []Monitor
	opts     Options
}

// NewLayout builds a layout from the outputs. An empty output list yields a
// layout with a single 1x1 monitor so lookups always succeed.
func NewLayout(outputs []Output, opts Options) *Layout {
	l := &Layout{opts: opts}
	if len(outputs) == 0 {
		outputs = []Output{{Name: "default", Bounds: geometry.Rect{Width: 1, Height: 1}, Primary: true}}
	}
	l.monitors = l.build(outputs, nil)
	return l
}

func (l *Layout) build(outputs []Output, previous []Monitor) []Monitor {
	sorted := make([]Output, len(outputs))
	copy(sorted, outputs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Bounds.X != sorted[j].Bounds.X {
			return sorted[i].Bounds.X < sorted[j].Bounds.X
		}
		return sorted[i].Bounds.Y < sorted[j].Bounds.Y
	})

	hasPrimary := false
	for _, o := range sorted {
		if o.Primary {
			hasPrimary = true
			break
		}
	}

	monitors := make([]Monitor, len(sorted))
	for i, o := range sorted {
		m := Monitor{
			Index:    i,
			Name:     o.Name,
			Bounds:   o.Bounds,
			Primary:  o.Primary || (!hasPrimary && i == 0),
			reserved: o.Reserved,
		}
		for _, prev := range previous {
			if prev.Name == o.Name {
				m.Workspace = prev.Workspace
				break
			}
		}
		m.WorkArea = l.workArea(m)
		monitors[i] = m
	}
	return monitors
}

func (l *Layout) workArea(m Monitor) geometry.Rect {
	pad := l.opts.SecondaryPadding
	if m.Primary {
		pad = l.opts.Padding
		pad.Top += l.opts.BarHeight
	}
	return pad.Add(m.reserved).Apply(m.Bounds)
}

// Update replaces the monitor list. It returns a mapping from every old
// index to the index of the monitor that takes over its clients: the
// monitor with the same name, or the one nearest to the old monitor's
// center. changed is false when nothing observable differs.
func (l *Layout) Update(outputs []Output) (remap map[int]int, changed bool) {
	remap = make(map[int]int, len(l.monitors))
	if len(outputs) == 0 {
		for i := range l.monitors {
			remap[i] = i
		}
		return remap, false
	}
	old := l.monitors
	l.monitors = l.build(outputs, old)

	changed = len(old) != len(l.monitors)
	for i, prev := range old {
		target := -1
		for j, m := range l.monitors {
			if m.Name == prev.Name {
				target = j
				break
			}
		}
		if target < 0 {
			cx, cy := prev.Bounds.Center()
			target = l.nearest(cx, cy)
		}
		remap[i] = target
		if target != i {
			changed = true
		} else if m := l.monitors[target]; m.Bounds != prev.Bounds || m.WorkArea != prev.WorkArea || m.Primary != prev.Primary {
			changed = true
		}
	}
	return remap, changed
}

// SetOptions recomputes every work area. It reports whether any changed.
func (l *Layout) SetOptions(opts Options) bool {
	l.opts = opts
	changed := false
	for i := range l.monitors {
		wa := l.workArea(l.monitors[i])
		if wa != l.monitors[i].WorkArea {
			l.monitors[i].WorkArea = wa
			changed = true
		}
	}
	return changed
}

// Len returns the number of monitors.
func (l *Layout) Len() int { return len(l.monitors) }

// Get returns the monitor at index i. Out of range indices return the
// primary monitor.
func (l *Layout) Get(i int) Monitor {
	if i < 0 || i >= len(l.monitors) {
		return l.Primary()
	}
	return l.monitors[i]
}

// WorkArea returns the work area of monitor i.
func (l *Layout) WorkArea(i int) geometry.Rect { return l.Get(i).WorkArea }

// All returns a copy of the monitor list.
func (l *Layout) All() []Monitor {
	out := make([]Monitor, len(l.monitors))
	copy(out, l.monitors)
	return out
}

// Primary returns the primary monitor.
func (l *Layout) Primary() Monitor {
	for _, m := range l.monitors {
		if m.Primary {
			return m
		}
	}
	return l.monitors[0]
}

// At returns the index of the monitor containing the point. Points outside
// every monitor resolve to the monitor whose center is closest.
func (l *Layout) At(x, y int) int {
	for i, m := range l.monitors {
		if m.Bounds.Contains(x, y) {
			return i
		}
	}
	return l.nearest(x, y)
}

// Containing returns the monitor holding the center of r.
func (l *Layout) Containing(r geometry.Rect) int {
	cx, cy := r.Center()
	return l.At(cx, cy)
}

func (l *Layout) nearest(x, y int) int {
	best, bestDist := 0, -1
	for i, m := range l.monitors {
		if d := m.Bounds.DistanceSq(x, y); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Adjacent returns the neighbor of monitor i in x order. ok is false at the
// ends and when there is only one monitor.
func (l *Layout) Adjacent(i int, dir Direction) (int, bool) {
	j := i + int(dir)
	if j < 0 || j >= len(l.monitors) || j == i {
		return i, false
	}
	return j, true
}

// ActiveWorkspace returns the workspace shown on monitor i.
func (l *Layout) ActiveWorkspace(i int) int {
	if i < 0 || i >= len(l.monitors) {
		return l.Primary().Workspace
	}
	return l.monitors[i].Workspace
}

// SetActiveWorkspace changes the workspace shown on monitor i.
func (l *Layout) SetActiveWorkspace(i, ws int) {
	if i >= 0 && i < len(l.monitors) {
		l.monitors[i].Workspace = ws
	}
}
