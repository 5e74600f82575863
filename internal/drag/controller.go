package drag

import "github.com/1broseidon/snapwm/internal/geometry"

// Locator resolves the monitor under a pointer position.
type Locator interface {
	At(x, y int) int
	WorkArea(mon int) geometry.Rect
}

// Options holds the limits applied while dragging.
type Options struct {
	MinWidth  int
	MinHeight int
	// EdgeSnap snaps a moved window when the pointer touches an edge of
	// the work area, even without the snap modifier.
	EdgeSnap  bool
	Split     geometry.SplitPolicy
}

// Controller is the drag state machine: Idle, then Dragging from Begin
// until Release or Cancel. Preview geometry is recomputed on every motion
// and only committed through Release.
type Controller struct {
	opts    Options
	locate  Locator
	phase   Phase
	session Session
}

// NewController creates an idle controller.
func NewController(opts Options, locate Locator) *Controller {
	return &Controller{opts: opts, locate: locate}
}

// SetOptions replaces the limits. An active session keeps going with the
// new values.
func (c *Controller) SetOptions(opts Options) { c.opts = opts }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Session returns the active session.
func (c *Controller) Session() (Session, bool) {
	return c.session, c.phase == PhaseDragging
}

// Begin starts a session. It returns false while another one is active.
func (c *Controller) Begin(s Session) bool {
	if c.phase == PhaseDragging {
		return false
	}
	s.Preview = s.Start
	s.PreviewSplits = s.Splits
	s.Snap = geometry.SnapNone
	if s.Kind == KindResize && s.Edges == 0 {
		s.Edges = geometry.ResizeEdges(s.Start, s.OriginX, s.OriginY)
	}
	c.session = s
	c.phase = PhaseDragging
	return true
}

// Motion follows the pointer. It returns the updated session and whether
// the preview changed; unchanged previews need no request to the server.
func (c *Controller) Motion(x, y int, mods Modifiers) (Session, bool) {
	if c.phase != PhaseDragging {
		return Session{}, false
	}
	prev := c.session
	s := &c.session
	dx, dy := x-s.OriginX, y-s.OriginY

	switch s.Kind {
	case KindMove:
		s.Preview = s.Start.Translate(dx, dy)
		s.Monitor = c.locate.At(x, y)
		s.Snap = geometry.SnapNone
		area := c.locate.WorkArea(s.Monitor)
		if mods.Snap {
			s.Snap = geometry.MoveSnapState(x, y, area)
		} else if c.opts.EdgeSnap {
			s.Snap, _ = geometry.EdgeSnapState(x, y, area)
		}
	case KindResize:
		s.Preview = geometry.ApplyResize(s.Start, s.Edges, dx, dy, c.opts.MinWidth, c.opts.MinHeight)
	case KindSplit:
		delta := dx
		if s.Role.Horizontal() {
			delta = dy
		}
		pos := s.Splits.Get(s.Role) + delta
		s.PreviewSplits = s.Splits.Move(s.Role, pos, s.Area, c.opts.Split, mods.Free)
	}

	changed := s.Preview != prev.Preview || s.Snap != prev.Snap ||
		s.PreviewSplits != prev.PreviewSplits || s.Monitor != prev.Monitor
	return *s, changed
}

// Release ends the session at the given pointer position and returns what
// to commit. A move released with the snap modifier held, or against an
// edge with edge snapping on, commits the implied snap preset instead of
// the raw preview.
func (c *Controller) Release(x, y int, mods Modifiers) (Result, bool) {
	if c.phase != PhaseDragging {
		return Result{}, false
	}
	s, _ := c.Motion(x, y, mods)
	c.reset()

	res := Result{Session: s, Geometry: s.Preview, Splits: s.PreviewSplits}
	if s.Kind == KindMove && s.Snap.IsSnapped() {
		res.Snapped = true
	}
	return res, true
}

// Cancel abandons the session without committing anything. It may be
// called in any phase and returns the abandoned session, if there was one.
func (c *Controller) Cancel() (Session, bool) {
	if c.phase != PhaseDragging {
		return Session{}, false
	}
	s := c.session
	c.phase = PhaseCancelled
	c.reset()
	return s, true
}

func (c *Controller) reset() {
	c.session = Session{}
	c.phase = PhaseIdle
}
