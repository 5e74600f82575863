package monitor

import "github.com/1broseidon/snapwm/internal/geometry"

// Workspaces holds the split positions of every workspace on every monitor.
// The number of workspaces is fixed when the set is created.
type Workspaces struct {
	count  int
	areas  []geometry.Rect
	names  []string
	splits [][]geometry.Splits // [workspace][monitor]
}

// NewWorkspaces creates count workspaces with default splits for every
// monitor of the layout.
func NewWorkspaces(count int, l *Layout) *Workspaces {
	if count < 1 {
		count = 1
	}
	w := &Workspaces{count: count}
	w.Reset(l)
	return w
}

// Count returns the number of workspaces.
func (w *Workspaces) Count() int { return w.count }

// Valid reports whether ws names an existing workspace.
func (w *Workspaces) Valid(ws int) bool { return ws >= 0 && ws < w.count }

// Splits returns the splits of workspace ws on monitor mon.
func (w *Workspaces) Splits(ws, mon int) geometry.Splits {
	if !w.Valid(ws) || mon < 0 || mon >= len(w.splits[ws]) {
		return geometry.Splits{}
	}
	return w.splits[ws][mon]
}

// SetSplits stores the splits of workspace ws on monitor mon.
func (w *Workspaces) SetSplits(ws, mon int, s geometry.Splits) {
	if !w.Valid(ws) || mon < 0 || mon >= len(w.splits[ws]) {
		return
	}
	w.splits[ws][mon] = s
}

// Reset rebuilds the split table for the current monitors of l. Splits of
// monitors that survive (matched by name) are rescaled to the new work area;
// new monitors start at the half points.
func (w *Workspaces) Reset(l *Layout) {
	monitors := l.All()
	areas := make([]geometry.Rect, len(monitors))
	names := make([]string, len(monitors))
	for i, m := range monitors {
		areas[i] = m.WorkArea
		names[i] = m.Name
	}

	splits := make([][]geometry.Splits, w.count)
	for ws := range splits {
		splits[ws] = make([]geometry.Splits, len(monitors))
		for i := range monitors {
			splits[ws][i] = geometry.DefaultSplits(areas[i])
			for old, name := range w.names {
				if name == names[i] && w.splits != nil {
					splits[ws][i] = w.splits[ws][old].Rescale(w.areas[old], areas[i])
					break
				}
			}
		}
	}
	w.areas = areas
	w.names = names
	w.splits = splits
}
