// Package wm is the event dispatcher: every server event and user action
// enters here, is applied to the window model and is answered with the
// server requests and hint updates that keep the display in sync.
package wm

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/config"
	"github.com/1broseidon/snapwm/internal/drag"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/monitor"
	"github.com/1broseidon/snapwm/internal/platform"
)

// Options are the hooks through which the dispatcher reaches its owner.
type Options struct {
	// OnQuit runs when the quit action is dispatched.
	OnQuit func()
	// OnReload runs when the reload action is dispatched. The owner is
	// expected to load the configuration and call Reload.
	OnReload func()
}

type dirty uint8

const (
	dirtyStacking dirty = 1 << iota
	dirtyClientList
	dirtyHandles
	dirtyDesktop
)

type palette struct {
	focused   uint32
	unfocused uint32
	urgent    uint32
}

// Dispatcher owns the window model. It is not safe for concurrent use: a
// single goroutine feeds it every event and action in arrival order.
type Dispatcher struct {
	backend platform.Backend
	opts    Options
	cfg     *config.Config
	colors  palette

	layout   *monitor.Layout
	spaces   *monitor.Workspaces
	clients  *client.Registry
	drag     *drag.Controller
	clicks   drag.ClickTracker
	switcher client.Switcher

	// current is the monitor the user last interacted with.
	current int
	// shownFocus is the focus last published to the server.
	shownFocus client.ID
	// unmaps counts unmap requests we issued whose notify is still due.
	unmaps   map[client.ID]int
	dirty    dirty
	quitting bool
}

// New builds the model from the outputs the backend reports. Windows that
// already exist are adopted by Start.
func New(backend platform.Backend, cfg *config.Config, opts Options) (*Dispatcher, error) {
	outputs, err := backend.Outputs()
	if err != nil {
		return nil, fmt.Errorf("failed to read outputs: %w", err)
	}
	colors, err := paletteFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		backend: backend,
		opts:    opts,
		cfg:     cfg,
		colors:  colors,
		layout:  monitor.NewLayout(outputs, layoutOptions(cfg)),
		unmaps:  make(map[client.ID]int),
	}
	d.spaces = monitor.NewWorkspaces(cfg.Workspaces, d.layout)
	d.clients = client.NewRegistry(d.layout, cfg.MetaWindowClasses)
	d.drag = drag.NewController(dragOptions(cfg), d.layout)
	d.clicks = drag.ClickTracker{Timeout: cfg.DoubleClick(), Distance: cfg.DoubleClickDistance}
	d.current = d.layout.Primary().Index
	return d, nil
}

// Start publishes the desktop hints and adopts the windows that are
// already mapped, along with the unmapped ones a previous window manager
// left in the normal or iconic state.
func (d *Dispatcher) Start() error {
	if err := d.backend.SetDesktops(d.spaces.Count(), d.desktopNames()); err != nil {
		return fmt.Errorf("failed to publish desktops: %w", err)
	}
	ids, err := d.backend.Adoptable()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	for _, id := range ids {
		info, err := d.backend.WindowInfo(id)
		if err != nil {
			log.WithField("window", id).Debug("Skip window that went away during startup")
			continue
		}
		d.manage(info, true)
	}
	d.dirty |= dirtyStacking | dirtyClientList | dirtyHandles | dirtyDesktop
	d.flush()
	log.WithFields(log.Fields{
		"monitors": d.layout.Len(),
		"clients":  d.clients.Len(),
	}).Info("Window manager started")
	return nil
}

// Shutdown hands the windows back before the connection is closed. A drag
// or window switch in progress is abandoned and every client is mapped, so
// windows on hidden workspaces are not lost. WM_STATE is left as it is and
// tells the next window manager which clients were minimized.
func (d *Dispatcher) Shutdown() {
	d.cancelInteractions()
	for _, id := range d.clients.Stacking() {
		if err := d.backend.Map(id); err != nil {
			log.WithField("window", id).Debug("Map failed: ", err)
		}
	}
	d.flush()
	log.WithField("clients", d.clients.Len()).Info("Released all windows")
}

// Quitting reports whether the quit action was dispatched.
func (d *Dispatcher) Quitting() bool { return d.quitting }

// Reload applies a new configuration. The number of workspaces is fixed for
// the lifetime of the process.
func (d *Dispatcher) Reload(cfg *config.Config) error {
	colors, err := paletteFromConfig(cfg)
	if err != nil {
		return err
	}
	if cfg.Workspaces != d.spaces.Count() {
		log.WithFields(log.Fields{
			"configured": cfg.Workspaces,
			"active":     d.spaces.Count(),
		}).Warn("Workspace count changes take effect after a restart")
	}

	d.cancelInteractions()
	d.cfg = cfg
	d.colors = colors
	d.clients.SetMetaClasses(cfg.MetaWindowClasses)
	d.drag.SetOptions(dragOptions(cfg))
	d.clicks = drag.ClickTracker{Timeout: cfg.DoubleClick(), Distance: cfg.DoubleClickDistance}
	if d.layout.SetOptions(layoutOptions(cfg)) {
		d.spaces.Reset(d.layout)
	}
	d.reapplyAll()
	d.dirty |= dirtyHandles
	d.flush()
	log.Info("Configuration reloaded")
	return nil
}

func layoutOptions(cfg *config.Config) monitor.Options {
	pad := func(p config.Padding) monitor.Padding {
		return monitor.Padding{Top: p.Top, Bottom: p.Bottom, Left: p.Left, Right: p.Right}
	}
	return monitor.Options{
		Padding:          pad(cfg.Padding),
		SecondaryPadding: pad(cfg.SecondaryPadding),
		BarHeight:        cfg.BarHeight,
	}
}

func dragOptions(cfg *config.Config) drag.Options {
	return drag.Options{
		MinWidth:  cfg.MinWindowSize.Width,
		MinHeight: cfg.MinWindowSize.Height,
		EdgeSnap:  cfg.EdgeSnap,
		Split: geometry.SplitPolicy{
			MinPercent:       cfg.SplitHandles.MinSplitSize,
			VerticalSticky:   cfg.SplitHandles.VerticalSticky,
			HorizontalSticky: cfg.SplitHandles.HorizontalSticky,
			Threshold:        cfg.SplitHandles.Size,
		},
	}
}

func paletteFromConfig(cfg *config.Config) (palette, error) {
	var p palette
	var err error
	if p.focused, err = config.ParseColor(cfg.Colors.Focused); err != nil {
		return p, err
	}
	if p.unfocused, err = config.ParseColor(cfg.Colors.Unfocused); err != nil {
		return p, err
	}
	if p.urgent, err = config.ParseColor(cfg.Colors.Urgent); err != nil {
		return p, err
	}
	return p, nil
}

func (d *Dispatcher) desktopNames() []string {
	names := make([]string, d.spaces.Count())
	for i := range names {
		names[i] = fmt.Sprintf("%d", i+1)
	}
	return names
}

// border is the border width a client is drawn with.
func (d *Dispatcher) border(c *client.Client) int {
	if c.Meta || c.Fullscreen {
		return 0
	}
	return d.cfg.Border
}

func (d *Dispatcher) workArea(c *client.Client) geometry.Rect {
	return d.layout.WorkArea(c.Monitor)
}

// configure sends the client's committed geometry to the server.
func (d *Dispatcher) configure(c *client.Client) {
	if err := d.backend.Configure(c.ID, c.Geometry, d.border(c)); err != nil {
		log.WithFields(log.Fields{"window": c.ID, "geometry": c.Geometry}).Debug("Configure failed: ", err)
	}
}

// snap applies a preset. The geometry shown before the first snap is kept
// for unsnap; going from one preset to another leaves it alone.
func (d *Dispatcher) snap(c *client.Client, state geometry.SnapState) {
	if !c.Snap.IsSnapped() {
		c.SaveGeometry(d.workArea(c))
	}
	c.Snap = state
	d.applySnap(c)
	d.publishState(c)
	d.dirty |= dirtyHandles
}

// applySnap recomputes the geometry of a snapped client from its monitor
// and workspace splits.
func (d *Dispatcher) applySnap(c *client.Client) {
	if !c.Snap.IsSnapped() || c.Fullscreen {
		return
	}
	splits := d.spaces.Splits(c.Workspace, c.Monitor)
	c.Geometry = geometry.SnapGeometry(c.Snap, d.workArea(c), splits, d.cfg.Gap, d.border(c))
	d.configure(c)
}

// unsnap restores the geometry saved by the first snap. It is moved onto
// the work area only when the monitors changed in between.
func (d *Dispatcher) unsnap(c *client.Client) {
	if c.Fullscreen {
		return
	}
	c.Snap = geometry.SnapNone
	c.Geometry = geometry.Unsnap(c.SavedGeometry, c.SavedArea, d.workArea(c), d.border(c))
	d.configure(c)
	d.publishState(c)
	d.dirty |= dirtyHandles
}

func (d *Dispatcher) center(c *client.Client) {
	if c.Snap.IsSnapped() {
		c.Snap = geometry.SnapNone
		c.Geometry = c.SavedGeometry
		d.publishState(c)
		d.dirty |= dirtyHandles
	}
	c.Geometry = geometry.Center(c.Geometry, d.workArea(c), d.border(c))
	d.configure(c)
}

// clamp keeps an unsnapped client on its monitor's work area and re-snaps
// a snapped one. Fullscreen clients follow their monitor's bounds.
func (d *Dispatcher) clamp(c *client.Client) {
	if c.Fullscreen {
		d.cover(c)
		return
	}
	if c.Snap.IsSnapped() {
		d.applySnap(c)
		return
	}
	b := d.border(c)
	g := c.Geometry.Outer(b).ClampInside(d.workArea(c)).Inner(b)
	if g != c.Geometry {
		c.Geometry = g
		d.configure(c)
	}
}

// setFullscreen covers the client's monitor, bounds and all, or brings back
// what it showed before. A snapped client keeps its preset underneath.
func (d *Dispatcher) setFullscreen(c *client.Client, on bool) {
	if c.Meta || c.Fullscreen == on {
		return
	}
	c.Fullscreen = on
	switch {
	case on:
		if !c.Snap.IsSnapped() {
			c.SaveGeometry(d.workArea(c))
		}
		d.cover(c)
	case c.Snap.IsSnapped():
		d.applySnap(c)
	default:
		c.Geometry = geometry.Unsnap(c.SavedGeometry, c.SavedArea, d.workArea(c), d.border(c))
		d.configure(c)
	}
	d.publishState(c)
	d.dirty |= dirtyStacking | dirtyHandles
	log.WithFields(log.Fields{"window": c.ID, "fullscreen": on}).Debug("Change fullscreen state")
}

// cover sizes a fullscreen client to its monitor.
func (d *Dispatcher) cover(c *client.Client) {
	c.Geometry = d.layout.Get(c.Monitor).Bounds
	d.configure(c)
}

// reapplyAll re-sends geometry and decoration of every client, after the
// work areas, gaps or borders may have changed.
func (d *Dispatcher) reapplyAll() {
	for _, c := range d.clients.List() {
		if c.Snap.IsSnapped() {
			d.applySnap(c)
		} else {
			d.configure(c)
		}
		d.paint(c)
	}
}

// show maps a client that became visible.
func (d *Dispatcher) show(c *client.Client) {
	if err := d.backend.Map(c.ID); err != nil {
		log.WithField("window", c.ID).Debug("Map failed: ", err)
	}
	d.setWMState(c, platform.StateNormal)
	d.publishState(c)
}

// hide unmaps a client that is minimized or left the active workspace.
func (d *Dispatcher) hide(c *client.Client) {
	d.unmaps[c.ID]++
	if err := d.backend.Unmap(c.ID); err != nil {
		d.unmaps[c.ID]--
		log.WithField("window", c.ID).Debug("Unmap failed: ", err)
	}
	state := platform.StateNormal
	if c.Minimized {
		state = platform.StateIconic
	}
	d.setWMState(c, state)
	d.publishState(c)
}

// syncVisibility maps or unmaps the client to match the model.
func (d *Dispatcher) syncVisibility(c *client.Client, wasVisible bool) {
	switch visible := d.clients.Visible(c); {
	case visible && !wasVisible:
		d.show(c)
	case !visible && wasVisible:
		d.hide(c)
	}
}

func (d *Dispatcher) setWMState(c *client.Client, state platform.WMState) {
	if err := d.backend.SetWMState(c.ID, state); err != nil {
		log.WithField("window", c.ID).Debug("Setting WM_STATE failed: ", err)
	}
}

// publishState writes the _NET_WM_STATE flags of the client.
func (d *Dispatcher) publishState(c *client.Client) {
	state := platform.WindowState{
		Maximized: c.Snap == geometry.SnapMaximized,
		Hidden:    c.Minimized,
		Focused:   c.Focused,
		Urgent:    c.Urgent,
		Sticky:    c.Meta,

		Fullscreen: c.Fullscreen,
	}
	if err := d.backend.SetWindowState(c.ID, state); err != nil {
		log.WithField("window", c.ID).Debug("Setting _NET_WM_STATE failed: ", err)
	}
}

func (d *Dispatcher) publishDesktop(c *client.Client) {
	ws := c.Workspace
	if c.Meta {
		ws = -1
	}
	if err := d.backend.SetWindowDesktop(c.ID, ws); err != nil {
		log.WithField("window", c.ID).Debug("Setting _NET_WM_DESKTOP failed: ", err)
	}
}

// paint sets the border color matching the client's focus and urgency.
func (d *Dispatcher) paint(c *client.Client) {
	if c.Meta || d.cfg.Border == 0 {
		return
	}
	pixel := d.colors.unfocused
	switch {
	case c.Focused:
		pixel = d.colors.focused
	case c.Urgent:
		pixel = d.colors.urgent
	}
	if err := d.backend.SetBorderColor(c.ID, pixel); err != nil {
		log.WithField("window", c.ID).Debug("Setting border color failed: ", err)
	}
}

// setUrgent changes the urgency flag and republishes what depends on it.
func (d *Dispatcher) setUrgent(c *client.Client, urgent bool) {
	if !d.clients.SetUrgent(c.ID, urgent) {
		return
	}
	d.paint(c)
	d.publishState(c)
	log.WithFields(log.Fields{"window": c.ID, "urgent": urgent}).Debug("Urgency changed")
}

// activate focuses and raises a client and makes its monitor current.
func (d *Dispatcher) activate(c *client.Client) {
	if !d.clients.Eligible(c) {
		return
	}
	d.clients.Focus(c.ID)
	d.clients.Raise(c.ID)
	d.setCurrent(c.Monitor)
	d.dirty |= dirtyStacking
}

func (d *Dispatcher) setCurrent(mon int) {
	if mon != d.current {
		d.current = mon
		d.dirty |= dirtyDesktop
	}
}

// flush publishes everything the last entry point changed. Every entry
// point ends with it, so the server and the hints are current before the
// next event is read.
func (d *Dispatcher) flush() {
	d.publishFocus()
	if d.dirty&dirtyStacking != 0 {
		if err := d.backend.Restack(d.clients.Stacking()); err != nil {
			log.Debug("Restack failed: ", err)
		}
		d.dirty |= dirtyClientList
	}
	if d.dirty&dirtyClientList != 0 {
		order := make([]client.ID, 0, d.clients.Len())
		for _, c := range d.clients.List() {
			order = append(order, c.ID)
		}
		if err := d.backend.SetClientList(order, d.clients.Stacking()); err != nil {
			log.Debug("Setting the client list failed: ", err)
		}
	}
	if d.dirty&dirtyDesktop != 0 {
		if err := d.backend.SetCurrentDesktop(d.layout.ActiveWorkspace(d.current)); err != nil {
			log.Debug("Setting the current desktop failed: ", err)
		}
	}
	if d.dirty&dirtyHandles != 0 {
		d.publishHandles()
	}
	d.dirty = 0
}

// publishFocus pushes a focus change made by the registry to the server.
func (d *Dispatcher) publishFocus() {
	var id client.ID
	cur := d.clients.Focused()
	if cur != nil {
		id = cur.ID
	}
	if id == d.shownFocus {
		return
	}
	if prev, ok := d.clients.Get(d.shownFocus); ok {
		d.paint(prev)
		d.publishState(prev)
	}
	d.shownFocus = id
	if cur != nil {
		d.paint(cur)
		d.publishState(cur)
	}
	if err := d.backend.Focus(id); err != nil {
		log.WithField("window", id).Debug("Focus failed: ", err)
	}
	if err := d.backend.SetActiveWindow(id); err != nil {
		log.WithField("window", id).Debug("Setting _NET_ACTIVE_WINDOW failed: ", err)
	}
}

// publishHandles shows the split handles of the active workspace of every
// monitor, for the boundaries that visible snapped clients share.
func (d *Dispatcher) publishHandles() {
	var handles []platform.Handle
	for _, m := range d.layout.All() {
		rects := geometry.HandleRects(m.WorkArea, d.spaces.Splits(m.Workspace, m.Index), d.cfg.SplitHandles.Size)
		used := [3]bool{}
		for _, c := range d.clients.OnWorkspace(m.Index, m.Workspace) {
			if c.Minimized || c.Fullscreen {
				continue
			}
			for _, h := range rects {
				if h.Role.Uses(c.Snap) {
					used[h.Role] = true
				}
			}
		}
		for _, h := range rects {
			if used[h.Role] {
				handles = append(handles, platform.Handle{Monitor: m.Index, Handle: h})
			}
		}
	}
	if err := d.backend.SetHandles(handles); err != nil {
		log.Debug("Placing split handles failed: ", err)
	}
}

// cancelInteractions abandons a drag or a window switch in progress.
func (d *Dispatcher) cancelInteractions() {
	if _, ok := d.drag.Session(); ok {
		d.DragCancel()
	}
	if d.switcher.Active() {
		d.switcher.Cancel()
		d.hidePreview()
	}
}

func (d *Dispatcher) hidePreview() {
	if err := d.backend.HidePreview(); err != nil {
		log.Debug("Hiding the preview failed: ", err)
	}
}

func (d *Dispatcher) showPreview(r geometry.Rect) {
	if err := d.backend.ShowPreview(r); err != nil {
		log.Debug("Showing the preview failed: ", err)
	}
}
