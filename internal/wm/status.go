package wm

import (
	"github.com/1broseidon/snapwm/internal/geometry"
)

// MonitorStatus describes one monitor.
type MonitorStatus struct {
	Index     int           `json:"index"`
	Name      string        `json:"name"`
	Primary   bool          `json:"primary"`
	Current   bool          `json:"current"`
	Bounds    geometry.Rect `json:"bounds"`
	WorkArea  geometry.Rect `json:"work_area"`
	Workspace int           `json:"workspace"`
}

// ClientStatus describes one managed window.
type ClientStatus struct {
	ID        uint32        `json:"id"`
	Class     string        `json:"class"`
	Name      string        `json:"name"`
	Monitor   int           `json:"monitor"`
	Workspace int           `json:"workspace"`
	Geometry  geometry.Rect `json:"geometry"`
	Snap      string        `json:"snap"`
	Focused   bool          `json:"focused"`
	Minimized bool          `json:"minimized"`
	Urgent    bool          `json:"urgent"`
	Meta      bool          `json:"meta"`
}

// Status is a snapshot of the window model.
type Status struct {
	Workspaces     int             `json:"workspaces"`
	UrgentSpaces   []int           `json:"urgent_workspaces,omitempty"`
	CurrentMonitor int             `json:"current_monitor"`
	Focused        uint32          `json:"focused,omitempty"`
	Dragging       string          `json:"dragging,omitempty"`
	Monitors       []MonitorStatus `json:"monitors"`
	Clients        []ClientStatus  `json:"clients"`
}

// Status returns a snapshot of the model. Clients are listed in the order
// they were managed.
func (d *Dispatcher) Status() Status {
	st := Status{
		Workspaces:     d.spaces.Count(),
		CurrentMonitor: d.current,
	}
	for ws := 0; ws < d.spaces.Count(); ws++ {
		if d.clients.WorkspaceUrgent(ws) {
			st.UrgentSpaces = append(st.UrgentSpaces, ws)
		}
	}
	if f := d.clients.Focused(); f != nil {
		st.Focused = uint32(f.ID)
	}
	if s, ok := d.drag.Session(); ok {
		st.Dragging = s.Kind.String()
	}
	for _, m := range d.layout.All() {
		st.Monitors = append(st.Monitors, MonitorStatus{
			Index:     m.Index,
			Name:      m.Name,
			Primary:   m.Primary,
			Current:   m.Index == d.current,
			Bounds:    m.Bounds,
			WorkArea:  m.WorkArea,
			Workspace: m.Workspace,
		})
	}
	for _, c := range d.clients.List() {
		st.Clients = append(st.Clients, ClientStatus{
			ID:        uint32(c.ID),
			Class:     c.Class,
			Name:      c.Name,
			Monitor:   c.Monitor,
			Workspace: c.Workspace,
			Geometry:  c.Geometry,
			Snap:      c.Snap.String(),
			Focused:   c.Focused,
			Minimized: c.Minimized,
			Urgent:    c.Urgent,
			Meta:      c.Meta,
		})
	}
	return st
}
