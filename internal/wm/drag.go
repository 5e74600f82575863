package wm

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/drag"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/platform"
)

// DragRequest is a button press that may start a drag.
type DragRequest struct {
	Kind drag.Kind
	// Window is the client under the pointer for move and resize drags.
	Window client.ID
	// Monitor and Role identify the split handle of a split drag.
	Monitor int
	Role    geometry.SplitRole
	X, Y    int
	// Time is the server timestamp of the press.
	Time time.Duration
	// Edges are the sides a resize moves. Zero picks them from where the
	// pointer grabbed the window.
	Edges geometry.Edges
	// Requested is set for drags a client asked for. They never count as
	// a click.
	Requested bool
}

var resizeEdges = map[platform.MoveResizeDirection]geometry.Edges{
	platform.SizeTopLeft:     geometry.EdgeTop | geometry.EdgeLeft,
	platform.SizeTop:         geometry.EdgeTop,
	platform.SizeTopRight:    geometry.EdgeTop | geometry.EdgeRight,
	platform.SizeRight:       geometry.EdgeRight,
	platform.SizeBottomRight: geometry.EdgeBottom | geometry.EdgeRight,
	platform.SizeBottom:      geometry.EdgeBottom,
	platform.SizeBottomLeft:  geometry.EdgeBottom | geometry.EdgeLeft,
	platform.SizeLeft:        geometry.EdgeLeft,
}

// ClientDragRequest turns a _NET_WM_MOVERESIZE message into a drag
// request. Keyboard driven requests and cancellations give false.
func ClientDragRequest(msg platform.ClientMessage) (DragRequest, bool) {
	if msg.Kind != platform.MsgWMMoveResize {
		return DragRequest{}, false
	}
	req := DragRequest{Window: msg.Window, X: msg.PointerX, Y: msg.PointerY, Requested: true}
	if msg.Direction == platform.MoveDrag {
		req.Kind = drag.KindMove
		return req, true
	}
	edges, ok := resizeEdges[msg.Direction]
	if !ok {
		return DragRequest{}, false
	}
	req.Kind = drag.KindResize
	req.Edges = edges
	return req, true
}

// DragBegin starts a drag. It returns false when no drag was started,
// either because nothing can be dragged or because the press completed a
// double click, which toggles between maximized and unsnapped instead.
func (d *Dispatcher) DragBegin(req DragRequest) bool {
	defer d.flush()
	if d.switcher.Active() {
		return false
	}

	s := drag.Session{Kind: req.Kind, OriginX: req.X, OriginY: req.Y}
	switch req.Kind {
	case drag.KindMove, drag.KindResize:
		c, ok := d.clients.Get(req.Window)
		if !ok || !c.MayMove() {
			return false
		}
		d.activate(c)
		if req.Requested {
			d.clicks.Reset()
		} else if req.Kind == drag.KindMove && d.clicks.Press(c.ID, req.X, req.Y, req.Time) {
			d.toggleMaximize(c)
			return false
		}
		if req.Kind == drag.KindResize {
			d.clicks.Reset()
			if !c.MayResize() {
				return false
			}
			if d.cfg.GridResize.Enabled {
				d.gridResize(c, true)
				return false
			}
		}
		s.Client = c.ID
		s.Edges = req.Edges
		s.Monitor = c.Monitor
		s.Workspace = c.Workspace
		s.Start = c.Geometry
		if req.Kind == drag.KindMove && c.Snap.IsSnapped() {
			s.Start = d.grabSaved(c, req.X, req.Y)
		}
	case drag.KindSplit:
		if req.Monitor < 0 || req.Monitor >= d.layout.Len() {
			return false
		}
		d.setCurrent(req.Monitor)
		s.Role = req.Role
		s.Monitor = req.Monitor
		s.Workspace = d.layout.ActiveWorkspace(req.Monitor)
		s.Area = d.layout.WorkArea(req.Monitor)
		s.Splits = d.spaces.Splits(s.Workspace, s.Monitor)
	default:
		return false
	}
	if !d.drag.Begin(s) {
		return false
	}
	log.WithFields(log.Fields{"kind": req.Kind, "window": req.Window}).Debug("Begin drag")
	return true
}

// grabSaved returns the saved geometry of a snapped client placed so that
// the pointer keeps its relative position inside the window.
func (d *Dispatcher) grabSaved(c *client.Client, x, y int) geometry.Rect {
	g, saved := c.Geometry, c.SavedGeometry
	if g.Width <= 0 || g.Height <= 0 {
		return saved
	}
	saved.X = x - (x-g.X)*saved.Width/g.Width
	saved.Y = y - (y-g.Y)*saved.Height/g.Height
	return saved
}

func (d *Dispatcher) toggleMaximize(c *client.Client) {
	switch {
	case c.Snap.IsSnapped():
		d.unsnap(c)
	case c.MayResize():
		d.snap(c, geometry.SnapMaximized)
	}
}

// DragMotion follows the pointer. Moves and resizes are shown live; the
// snap region implied by the pointer is outlined. Split drags resize every
// client that shares the dragged boundary.
func (d *Dispatcher) DragMotion(x, y int, mods drag.Modifiers) {
	s, changed := d.drag.Motion(x, y, mods)
	if !changed {
		return
	}
	switch s.Kind {
	case drag.KindMove, drag.KindResize:
		c, ok := d.clients.Get(s.Client)
		if !ok {
			return
		}
		if err := d.backend.Configure(c.ID, s.Preview, d.border(c)); err != nil {
			log.WithField("window", c.ID).Debug("Live configure failed: ", err)
		}
		if s.Snap.IsSnapped() {
			area := d.layout.WorkArea(s.Monitor)
			splits := d.spaces.Splits(d.layout.ActiveWorkspace(s.Monitor), s.Monitor)
			d.showPreview(geometry.SnapGeometry(s.Snap, area, splits, d.cfg.Gap, d.border(c)).Outer(d.border(c)))
		} else {
			d.hidePreview()
		}
	case drag.KindSplit:
		d.resnapSplit(s.Monitor, s.Workspace, s.Area, s.PreviewSplits, false)
	}
}

// resnapSplit shows the clients of one workspace at the given splits.
// commit also records the geometry in the model.
func (d *Dispatcher) resnapSplit(mon, ws int, area geometry.Rect, splits geometry.Splits, commit bool) {
	for _, c := range d.clients.OnWorkspace(mon, ws) {
		if !c.Snap.IsSnapped() || c.Minimized || c.Fullscreen {
			continue
		}
		g := geometry.SnapGeometry(c.Snap, area, splits, d.cfg.Gap, d.border(c))
		if commit {
			c.Geometry = g
			d.configure(c)
			continue
		}
		if err := d.backend.Configure(c.ID, g, d.border(c)); err != nil {
			log.WithField("window", c.ID).Debug("Live configure failed: ", err)
		}
	}
}

// DragEnd finishes the drag and commits its result.
func (d *Dispatcher) DragEnd(x, y int, mods drag.Modifiers) {
	defer d.flush()
	res, ok := d.drag.Release(x, y, mods)
	if !ok {
		return
	}
	d.hidePreview()

	switch res.Kind {
	case drag.KindMove:
		c, ok := d.clients.Get(res.Client)
		if !ok {
			return
		}
		if res.Snapped {
			if res.Monitor != c.Monitor {
				d.changeMonitor(c, res.Monitor)
			}
			if !c.Snap.IsSnapped() {
				c.Geometry = res.Start
			}
			d.snap(c, res.Snap)
			return
		}
		if c.Snap.IsSnapped() && x == res.OriginX && y == res.OriginY {
			// A click that never moved leaves the client snapped.
			d.configure(c)
			return
		}
		d.moveResize(c, res.Geometry)
	case drag.KindResize:
		if c, ok := d.clients.Get(res.Client); ok {
			d.moveResize(c, res.Geometry)
		}
	case drag.KindSplit:
		d.spaces.SetSplits(res.Workspace, res.Monitor, res.Splits)
		d.resnapSplit(res.Monitor, res.Workspace, res.Area, res.Splits, true)
		d.dirty |= dirtyHandles
	}
	log.WithField("kind", res.Kind).Debug("End drag")
}

// DragCancel abandons the drag and shows the committed geometry again. It
// is safe to call at any time.
func (d *Dispatcher) DragCancel() {
	defer d.flush()
	s, ok := d.drag.Cancel()
	if !ok {
		return
	}
	d.hidePreview()
	switch s.Kind {
	case drag.KindMove, drag.KindResize:
		if c, ok := d.clients.Get(s.Client); ok {
			d.configure(c)
		}
	case drag.KindSplit:
		d.resnapSplit(s.Monitor, s.Workspace, s.Area, s.Splits, false)
	}
	log.WithField("kind", s.Kind).Debug("Cancel drag")
}
