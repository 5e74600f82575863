package wm

import (
	"fmt"
	"slices"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/monitor"
)

// Do applies an action to the focused client and the current monitor.
// Actions that do not apply in the current state are ignored.
func (d *Dispatcher) Do(a Action) {
	defer d.flush()

	var c *client.Client
	if a.Kind.TargetsClient() {
		c = d.clients.Focused()
		if c == nil {
			log.WithField("action", a).Debug("Ignore action without a focused window")
			return
		}
	}

	switch a.Kind {
	case ActionCloseWindow:
		d.closeClient(c)
	case ActionQuit:
		d.quitting = true
		if d.opts.OnQuit != nil {
			d.opts.OnQuit()
		}
	case ActionSnapLeft:
		d.snapIfResizable(c, c.Snap.SnapLeft(), true)
	case ActionSnapRight:
		d.snapIfResizable(c, c.Snap.SnapRight(), true)
	case ActionSnapUp:
		state, ok := c.Snap.SnapUp()
		d.snapIfResizable(c, state, ok)
	case ActionSnapDown:
		state, ok := c.Snap.SnapDown()
		d.snapIfResizable(c, state, ok)
	case ActionMaximize:
		d.snapIfResizable(c, geometry.SnapMaximized, true)
	case ActionToggleMaximize:
		if c.Snap == geometry.SnapMaximized {
			d.unsnap(c)
		} else {
			d.snapIfResizable(c, geometry.SnapMaximized, true)
		}
	case ActionUnsnapOrCenter:
		if c.Snap.IsSnapped() {
			d.unsnap(c)
		} else if c.MayMove() {
			d.center(c)
		}
	case ActionCenter:
		if c.MayMove() {
			d.center(c)
		}
	case ActionGridResize:
		if c.MayResize() {
			d.gridResize(c, false)
		}
	case ActionMinimize:
		d.minimize(c)
	case ActionRaiseAll:
		d.raiseAll(d.current)
	case ActionMoveToNextMonitor:
		d.moveToAdjacentMonitor(c, monitor.Next)
	case ActionMoveToPrevMonitor:
		d.moveToAdjacentMonitor(c, monitor.Prev)
	case ActionSwitchWindow:
		d.switchWindow(false)
	case ActionSwitchWindowReverse:
		d.switchWindow(true)
	case ActionSelectWorkspace:
		d.selectWorkspace(d.current, a.Workspace)
	case ActionMoveToWorkspace:
		d.moveToWorkspace(c, a.Workspace)
	case ActionIncreaseVolume:
		d.launch(d.cfg.Volume.Increase)
	case ActionDecreaseVolume:
		d.launch(d.cfg.Volume.Decrease)
	case ActionMuteVolume:
		d.launch(d.cfg.Volume.Mute)
	case ActionReload:
		if d.opts.OnReload != nil {
			d.opts.OnReload()
		}
	case ActionLaunch:
		d.launch(a.Argv)
	default:
		log.WithField("action", a).Debug("Ignore unknown action")
	}
}

func (d *Dispatcher) snapIfResizable(c *client.Client, state geometry.SnapState, ok bool) {
	if !ok || !c.MayResize() {
		log.WithFields(log.Fields{"window": c.ID, "snap": c.Snap}).Debug("Ignore snap that does not apply")
		return
	}
	d.snap(c, state)
}

func (d *Dispatcher) closeClient(c *client.Client) {
	if err := d.backend.Close(c.ID); err != nil {
		log.WithField("window", c.ID).Warn("Failed to close window: ", err)
	}
}

func (d *Dispatcher) launch(argv []string) {
	if len(argv) == 0 {
		log.Debug("Ignore launch without a command")
		return
	}
	if err := d.backend.Launch(argv); err != nil {
		log.WithField("command", argv).Warn("Failed to launch command: ", err)
		return
	}
	log.WithField("command", argv).Debug("Launched command")
}

// gridResize hands the resize of c to the configured grid tool, which
// answers with a move-resize request. pressed tells the tool that a mouse
// button is held and releasing it ends the selection.
func (d *Dispatcher) gridResize(c *client.Client, pressed bool) {
	g := d.cfg.GridResize
	if len(g.Command) == 0 {
		log.Debug("Ignore grid resize without a command")
		return
	}
	area := d.workArea(c)
	focused := d.colors.focused
	argv := append(slices.Clone(g.Command),
		strconv.FormatUint(uint64(c.ID), 10),
		fmt.Sprintf("%d,%d,%d,%d", area.X, area.Y, area.Width, area.Height),
		fmt.Sprintf("%d,%d", g.Columns, g.Rows),
		fmt.Sprintf("--color=%d,%d,%d", focused>>16&0xff, focused>>8&0xff, focused&0xff),
		"--method=message",
	)
	if pressed {
		argv = append(argv, "--right-button-pressed")
	}
	if g.Live {
		argv = append(argv, "--live")
	}
	d.launch(argv)
}

func (d *Dispatcher) minimize(c *client.Client) {
	if !d.clients.Minimize(c.ID) {
		return
	}
	d.hide(c)
	d.dirty |= dirtyHandles | dirtyStacking
}

func (d *Dispatcher) unminimize(c *client.Client) {
	was := d.clients.Visible(c)
	if !d.clients.Unminimize(c.ID) {
		return
	}
	d.syncVisibility(c, was)
	d.dirty |= dirtyHandles | dirtyStacking
}

func (d *Dispatcher) dismiss(c *client.Client) {
	if d.clients.Dismiss(c.ID) {
		d.paint(c)
		d.publishState(c)
	}
}

// raiseAll restores every minimized client of the active workspace of mon
// and focuses the last one restored.
func (d *Dispatcher) raiseAll(mon int) {
	restored := d.clients.RaiseAll(mon, d.layout.ActiveWorkspace(mon))
	if len(restored) == 0 {
		return
	}
	var last *client.Client
	for _, id := range restored {
		c, _ := d.clients.Get(id)
		d.show(c)
		last = c
	}
	d.activate(last)
	d.dirty |= dirtyHandles | dirtyStacking
}

// selectWorkspace shows workspace ws on monitor mon. The clients of the
// previous workspace are hidden and the focus moves to the most recent
// client of the new one.
func (d *Dispatcher) selectWorkspace(mon, ws int) {
	if !d.spaces.Valid(ws) {
		log.WithField("workspace", ws).Debug("Ignore switch to unknown workspace")
		return
	}
	d.setCurrent(mon)
	old := d.layout.ActiveWorkspace(mon)
	if old == ws {
		return
	}
	d.cancelInteractions()

	leaving := d.clients.OnWorkspace(mon, old)
	entering := d.clients.OnWorkspace(mon, ws)
	d.layout.SetActiveWorkspace(mon, ws)
	for _, c := range leaving {
		d.syncVisibility(c, !c.Minimized)
	}
	for _, c := range entering {
		d.syncVisibility(c, false)
	}

	d.clients.ClearFocus()
	d.clients.Refocus(mon)
	d.dirty |= dirtyDesktop | dirtyHandles | dirtyStacking
	log.WithFields(log.Fields{"monitor": mon, "workspace": ws}).Debug("Switch workspace")
}

// moveToWorkspace sends a client to workspace ws of its monitor.
func (d *Dispatcher) moveToWorkspace(c *client.Client, ws int) {
	if c.Meta || !d.spaces.Valid(ws) || ws == c.Workspace {
		return
	}
	was := d.clients.Visible(c)
	d.clients.MoveTo(c.ID, c.Monitor, ws)
	d.applySnap(c)
	d.publishDesktop(c)
	d.syncVisibility(c, was)
	d.dirty |= dirtyHandles | dirtyStacking
}

// moveToAdjacentMonitor sends a client to the active workspace of the
// neighboring monitor. A snapped client keeps its preset; other clients
// keep their offset from the work area origin.
func (d *Dispatcher) moveToAdjacentMonitor(c *client.Client, dir monitor.Direction) {
	if !c.MayMove() {
		return
	}
	target, ok := d.layout.Adjacent(c.Monitor, dir)
	if !ok {
		log.WithField("window", c.ID).Debug("Ignore move without a neighboring monitor")
		return
	}
	from, to := d.layout.WorkArea(c.Monitor), d.layout.WorkArea(target)
	d.clients.MoveTo(c.ID, target, d.layout.ActiveWorkspace(target))
	if c.Snap.IsSnapped() {
		c.SavedGeometry = c.SavedGeometry.Translate(to.X-from.X, to.Y-from.Y)
		c.SavedArea = c.SavedArea.Translate(to.X-from.X, to.Y-from.Y)
		d.applySnap(c)
	} else {
		b := d.border(c)
		c.Geometry = c.Geometry.Translate(to.X-from.X, to.Y-from.Y).Outer(b).ClampInside(to).Inner(b)
		d.configure(c)
	}
	d.publishDesktop(c)
	d.activate(c)
	d.dirty |= dirtyHandles
}

// switchWindow starts or advances the window switcher on the current
// monitor. The selection is outlined until SwitchCommit.
func (d *Dispatcher) switchWindow(reverse bool) {
	var pending client.ID
	if d.switcher.Active() {
		pending = d.switcher.Next(reverse)
	} else {
		var ok bool
		pending, ok = d.switcher.Start(d.clients.SwitchCandidates(d.current), reverse)
		if !ok {
			if c, found := d.clients.Get(pending); found {
				d.unminimize(c)
				d.activate(c)
			}
			return
		}
	}
	if c, ok := d.clients.Get(pending); ok {
		d.showPreview(c.Geometry.Outer(d.border(c)))
	}
}

// Switching reports whether the window switcher is waiting for a commit.
func (d *Dispatcher) Switching() bool { return d.switcher.Active() }

// SwitchCommit ends the window switcher and focuses its selection.
func (d *Dispatcher) SwitchCommit() {
	defer d.flush()
	id, ok := d.switcher.Commit()
	if !ok {
		return
	}
	d.hidePreview()
	if c, found := d.clients.Get(id); found {
		d.unminimize(c)
		d.activate(c)
	}
}

// SwitchCancel ends the window switcher without changing the focus.
func (d *Dispatcher) SwitchCancel() {
	defer d.flush()
	if d.switcher.Active() {
		d.switcher.Cancel()
		d.hidePreview()
	}
}
