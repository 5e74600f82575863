package wm

import (
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/drag"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/platform"
)

// manage registers a window and shows it. adopted is set for windows that
// were already mapped when the window manager started or that a reconcile
// pass found unmanaged; they keep their geometry and workspace.
func (d *Dispatcher) manage(info client.WindowInfo, adopted bool) {
	mon, ws := d.placeTarget(info, adopted)
	c, ok := d.clients.Register(info, mon, ws)
	if !ok {
		if _, managed := d.clients.Get(info.Window); !managed && !adopted {
			// Docks, desktops and notifications are mapped as they asked.
			if err := d.backend.Map(info.Window); err != nil {
				log.WithField("window", info.Window).Debug("Map failed: ", err)
			}
		}
		return
	}

	if !c.Meta {
		c.Geometry = d.initialGeometry(c, info, adopted)
		c.SaveGeometry(d.workArea(c))
	}
	if err := d.backend.Adopt(c.ID); err != nil {
		log.WithField("window", c.ID).Debug("Adopting window failed: ", err)
	}
	d.configure(c)
	d.paint(c)
	d.publishDesktop(c)

	if info.Maximized && c.MayResize() {
		d.snap(c, geometry.SnapMaximized)
	}
	if info.Fullscreen {
		d.setFullscreen(c, true)
	}
	if (info.Hidden || (adopted && info.Iconic)) && !c.Meta {
		d.clients.Minimize(c.ID)
	}

	switch {
	case d.clients.Visible(c):
		d.show(c)
		if !adopted {
			d.activate(c)
		}
	case adopted && !info.Unmapped:
		d.hide(c)
	default:
		// Not mapped, so there is nothing to unmap.
		state := platform.StateNormal
		if c.Minimized {
			state = platform.StateIconic
		}
		d.setWMState(c, state)
		d.publishState(c)
	}
	d.dirty |= dirtyStacking | dirtyClientList | dirtyHandles

	log.WithFields(log.Fields{
		"window":    c.ID,
		"class":     c.Class,
		"monitor":   c.Monitor,
		"workspace": c.Workspace,
		"meta":      c.Meta,
	}).Info("Manage window")
}

// placeTarget picks the monitor and workspace of a new client.
func (d *Dispatcher) placeTarget(info client.WindowInfo, adopted bool) (mon, ws int) {
	if owner, ok := d.clients.Get(info.TransientFor); ok {
		return owner.Monitor, owner.Workspace
	}
	if adopted {
		mon = d.layout.Containing(info.Geometry)
		ws = d.layout.ActiveWorkspace(mon)
		if d.spaces.Valid(info.Desktop) {
			ws = info.Desktop
		}
		return mon, ws
	}
	mon = d.current
	if x, y, err := d.backend.Pointer(); err == nil {
		mon = d.layout.At(x, y)
	}
	return mon, d.layout.ActiveWorkspace(mon)
}

// initialGeometry decides where a new client appears. Transients are
// centered over their owner; other new windows are placed by smart
// placement or centered on their monitor.
func (d *Dispatcher) initialGeometry(c *client.Client, info client.WindowInfo, adopted bool) geometry.Rect {
	b := d.border(c)
	area := d.workArea(c)
	g := info.Geometry
	if adopted {
		return g.Outer(b).ClampInside(area).Inner(b)
	}
	if owner, ok := d.clients.Get(info.TransientFor); ok {
		return g.Outer(b).CenterInside(owner.Geometry.Outer(d.border(owner))).ClampInside(area).Inner(b)
	}
	if d.cfg.SmartPlacement {
		var occupied []geometry.Rect
		for _, o := range d.clients.OnWorkspace(c.Monitor, c.Workspace) {
			if o.ID != c.ID && !o.Minimized {
				occupied = append(occupied, o.Geometry.Outer(d.border(o)))
			}
		}
		if r, ok := SmartPlace(g.Outer(b), area, occupied); ok {
			return r.Inner(b)
		}
	}
	return geometry.Center(g, area, b)
}

// unmanage forgets a client. destroyed is set when the window no longer
// exists, so nothing is sent to it.
func (d *Dispatcher) unmanage(id client.ID, destroyed bool) {
	if s, ok := d.drag.Session(); ok && s.Client == id && s.Kind != drag.KindSplit {
		d.drag.Cancel()
		d.hidePreview()
	}
	if d.switcher.Active() {
		d.switcher.Forget(id)
		if !d.switcher.Active() {
			d.hidePreview()
		}
	}
	c, ok := d.clients.Unregister(id)
	if !ok {
		return
	}
	delete(d.unmaps, id)
	if !destroyed {
		d.setWMState(c, platform.StateWithdrawn)
		if err := d.backend.Release(id); err != nil {
			log.WithField("window", id).Debug("Releasing window failed: ", err)
		}
	}
	d.dirty |= dirtyStacking | dirtyClientList | dirtyHandles
	log.WithFields(log.Fields{"window": id, "class": c.Class}).Info("Unmanage window")
}

// MapRequest handles a window asking to be shown.
func (d *Dispatcher) MapRequest(id client.ID) {
	defer d.flush()
	if c, ok := d.clients.Get(id); ok {
		if c.Minimized {
			d.clients.Unminimize(id)
			d.show(c)
			d.activate(c)
		}
		return
	}
	info, err := d.backend.WindowInfo(id)
	if err != nil {
		log.WithFields(log.Fields{"window": id, "event": "map_request"}).Warn("Drop map request: ", err)
		return
	}
	d.manage(info, false)
}

// UnmapNotify handles a window that was unmapped. Unmaps we requested
// ourselves are expected; any other unmap of a shown client means it
// withdrew and is no longer managed.
func (d *Dispatcher) UnmapNotify(id client.ID) {
	defer d.flush()
	if n := d.unmaps[id]; n > 0 {
		d.unmaps[id] = n - 1
		return
	}
	c, ok := d.clients.Get(id)
	if !ok {
		return
	}
	if !c.Meta && (c.Minimized || c.Workspace != d.layout.ActiveWorkspace(c.Monitor)) {
		return
	}
	d.unmanage(id, false)
}

// DestroyNotify handles a window that no longer exists.
func (d *Dispatcher) DestroyNotify(id client.ID) {
	defer d.flush()
	d.unmanage(id, true)
}

// ConfigureRequest handles a window asking for new geometry. Requests of
// unmanaged windows are granted as they are. Snapped and dragged clients
// keep their geometry and are told so; other clients get what they ask for.
func (d *Dispatcher) ConfigureRequest(req platform.ConfigureRequest) {
	defer d.flush()
	c, ok := d.clients.Get(req.Window)
	if !ok {
		if err := d.backend.PassConfigure(req); err != nil {
			log.WithField("window", req.Window).Debug("Passing configure request failed: ", err)
		}
		return
	}

	s, dragging := d.drag.Session()
	if c.Snap.IsSnapped() || c.Fullscreen || (dragging && s.Client == c.ID) || req.Mask&(platform.ConfigureX|platform.ConfigureY|platform.ConfigureWidth|platform.ConfigureHeight) == 0 {
		if err := d.backend.NotifyConfigure(c.ID, c.Geometry, d.border(c)); err != nil {
			log.WithField("window", c.ID).Debug("Sending ConfigureNotify failed: ", err)
		}
		return
	}
	d.moveResize(c, req.Apply(c.Geometry))
}

// moveResize commits new geometry for an unsnapped client and follows it
// to the monitor it ends up on.
func (d *Dispatcher) moveResize(c *client.Client, g geometry.Rect) {
	if c.Snap.IsSnapped() {
		c.Snap = geometry.SnapNone
		d.publishState(c)
		d.dirty |= dirtyHandles
	}
	if c.MinWidth > 0 {
		g.Width = max(g.Width, c.MinWidth)
	}
	if c.MinHeight > 0 {
		g.Height = max(g.Height, c.MinHeight)
	}
	c.Geometry = g
	d.configure(c)
	if mon := d.layout.Containing(g.Outer(d.border(c))); mon != c.Monitor && !c.Meta {
		d.changeMonitor(c, mon)
	}
}

// changeMonitor moves a client to the active workspace of another monitor
// without touching its geometry.
func (d *Dispatcher) changeMonitor(c *client.Client, mon int) {
	was := d.clients.Visible(c)
	d.clients.MoveTo(c.ID, mon, d.layout.ActiveWorkspace(mon))
	d.publishDesktop(c)
	d.syncVisibility(c, was)
	d.dirty |= dirtyHandles
}

// PropertyNotify handles a change of a window property.
func (d *Dispatcher) PropertyNotify(id client.ID, prop platform.Property) {
	defer d.flush()
	if prop == platform.PropStrut {
		d.screenChanged()
		return
	}
	c, ok := d.clients.Get(id)
	if !ok {
		return
	}
	switch prop {
	case platform.PropName, platform.PropClass, platform.PropHints, platform.PropNormalHints:
	default:
		return
	}
	info, err := d.backend.WindowInfo(id)
	if err != nil {
		log.WithFields(log.Fields{"window": id, "event": "property_notify"}).Debug("Drop property change: ", err)
		return
	}
	switch prop {
	case platform.PropName:
		c.Name = info.Name
	case platform.PropClass:
		c.Class, c.Instance = info.Class, info.Instance
	case platform.PropHints:
		// Urgency is only cleared by focus or an explicit dismiss.
		if info.Urgent {
			d.setUrgent(c, true)
		}
	case platform.PropNormalHints:
		c.MinWidth, c.MinHeight = info.MinWidth, info.MinHeight
		c.Fixed = info.MinWidth > 0 && info.MinWidth == info.MaxWidth &&
			info.MinHeight > 0 && info.MinHeight == info.MaxHeight
	}
}

// ClientMessage handles EWMH and ICCCM requests from clients and pagers.
func (d *Dispatcher) ClientMessage(msg platform.ClientMessage) {
	defer d.flush()
	if msg.Kind == platform.MsgCurrentDesktop {
		d.selectWorkspace(d.current, msg.Desktop)
		return
	}

	c, ok := d.clients.Get(msg.Window)
	if !ok {
		log.WithFields(log.Fields{"window": msg.Window, "event": "client_message"}).Debug("Drop message for unmanaged window")
		return
	}
	switch msg.Kind {
	case platform.MsgActiveWindow:
		if c.Meta {
			return
		}
		if c.Workspace != d.layout.ActiveWorkspace(c.Monitor) {
			d.setUrgent(c, true)
			return
		}
		if c.Minimized {
			d.clients.Unminimize(c.ID)
			d.show(c)
		}
		d.activate(c)
	case platform.MsgCloseWindow:
		d.closeClient(c)
	case platform.MsgWindowDesktop:
		d.moveToWorkspace(c, msg.Desktop)
	case platform.MsgWindowState:
		for _, flag := range msg.Flags {
			d.applyStateFlag(c, flag, msg.Action)
		}
	case platform.MsgMoveResize:
		if c.MayMove() {
			d.moveResize(c, platform.ConfigureRequest{Mask: msg.Mask, Geometry: msg.Geometry}.Apply(c.Geometry))
		}
	case platform.MsgChangeState:
		if msg.Iconic {
			d.minimize(c)
		}
	case platform.MsgWMMoveResize:
		// Starting a drag needs a pointer grab and is done by the input
		// handler; only the cancellation reaches the model.
		if s, ok := d.drag.Session(); ok && s.Client == c.ID && msg.Direction == platform.MoveResizeCancel {
			d.DragCancel()
		}
	}
}

func (d *Dispatcher) applyStateFlag(c *client.Client, flag platform.StateFlag, action platform.StateAction) {
	set := func(current bool) bool {
		switch action {
		case platform.StateAdd:
			return true
		case platform.StateToggle:
			return !current
		}
		return false
	}
	switch flag {
	case platform.FlagMaximized:
		maximized := c.Snap == geometry.SnapMaximized
		switch want := set(maximized); {
		case want && !maximized && c.MayResize():
			d.snap(c, geometry.SnapMaximized)
		case !want && maximized:
			d.unsnap(c)
		}
	case platform.FlagHidden:
		if set(c.Minimized) {
			d.minimize(c)
		} else if c.Minimized {
			d.unminimize(c)
		}
	case platform.FlagAttention:
		if set(c.Urgent) {
			d.setUrgent(c, true)
		} else {
			d.dismiss(c)
		}
	case platform.FlagFullscreen:
		d.setFullscreen(c, set(c.Fullscreen))
	}
}

// ButtonPress handles a click on a client: it takes the focus and is raised.
func (d *Dispatcher) ButtonPress(id client.ID) {
	defer d.flush()
	if c, ok := d.clients.Get(id); ok {
		d.activate(c)
	}
}

// ScreenChanged handles a change of the output configuration or of the
// space reserved by docks.
func (d *Dispatcher) ScreenChanged() {
	defer d.flush()
	d.screenChanged()
}

func (d *Dispatcher) screenChanged() {
	outputs, err := d.backend.Outputs()
	if err != nil {
		log.Warn("Failed to read outputs: ", err)
		return
	}
	visible := make(map[client.ID]bool, d.clients.Len())
	for _, c := range d.clients.List() {
		visible[c.ID] = d.clients.Visible(c)
	}
	remap, changed := d.layout.Update(outputs)
	if !changed {
		return
	}
	d.cancelInteractions()
	d.clients.RemapMonitors(remap)
	d.spaces.Reset(d.layout)
	if to, ok := remap[d.current]; ok {
		d.current = to
	}
	if d.current >= d.layout.Len() {
		d.current = d.layout.Primary().Index
	}

	for _, c := range d.clients.List() {
		d.clamp(c)
		d.syncVisibility(c, visible[c.ID])
	}
	d.clients.Refocus(d.current)
	d.dirty |= dirtyHandles | dirtyDesktop | dirtyStacking
	log.WithField("monitors", d.layout.Len()).Info("Monitor layout changed")
}

// Reconcile compares the model against the server: the output layout is
// re-read, clients whose windows vanished are dropped and mapped windows
// that were missed are adopted.
func (d *Dispatcher) Reconcile() {
	defer d.flush()
	d.screenChanged()

	for _, c := range d.clients.List() {
		if _, err := d.backend.WindowInfo(c.ID); err != nil {
			log.WithField("window", c.ID).Info("Drop client whose window is gone")
			d.unmanage(c.ID, true)
		}
	}
	ids, err := d.backend.TopLevels()
	if err != nil {
		log.Warn("Failed to list windows: ", err)
		return
	}
	for _, id := range ids {
		if _, ok := d.clients.Get(id); ok {
			continue
		}
		info, err := d.backend.WindowInfo(id)
		if err != nil {
			continue
		}
		if client.Classify(info, d.cfg.MetaWindowClasses) != client.Ignore {
			d.manage(info, true)
		}
	}
}
