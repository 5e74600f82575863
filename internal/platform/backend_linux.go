//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"slices"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/monitor"
	"github.com/1broseidon/snapwm/internal/x11"
)

// ownedStates are the _NET_WM_STATE atoms the window manager maintains.
// Other atoms set by clients are preserved.
var ownedStates = []string{
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_FOCUSED",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_FULLSCREEN",
}

var windowTypes = map[string]client.Type{
	"_NET_WM_WINDOW_TYPE_NORMAL":       client.TypeNormal,
	"_NET_WM_WINDOW_TYPE_DIALOG":       client.TypeDialog,
	"_NET_WM_WINDOW_TYPE_UTILITY":      client.TypeUtility,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":      client.TypeToolbar,
	"_NET_WM_WINDOW_TYPE_MENU":         client.TypeMenu,
	"_NET_WM_WINDOW_TYPE_SPLASH":       client.TypeSplash,
	"_NET_WM_WINDOW_TYPE_DOCK":         client.TypeDock,
	"_NET_WM_WINDOW_TYPE_DESKTOP":      client.TypeDesktop,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION": client.TypeNotification,
}

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn    *x11.Connection
	outline *x11.Outline
	handles *x11.Handles

	// PreviewColor is the pixel of the snap preview outline.
	PreviewColor uint32
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{
		conn:    conn,
		outline: conn.NewOutline(),
		handles: conn.NewHandles(),
	}
}

// Disconnect destroys the helper windows and closes the X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b == nil || b.conn == nil {
		return
	}
	b.outline.Destroy()
	b.handles.Destroy()
	b.conn.Close()
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	return b.conn.Root
}

// Connection returns the wrapped X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// OnHandleCreated registers a function that binds input to new split
// handle windows.
func (b *LinuxBackend) OnHandleCreated(fn func(win xproto.Window)) {
	b.handles.OnCreate = fn
}

// HandleAt returns the split handle a window stands for.
func (b *LinuxBackend) HandleAt(win xproto.Window) (Handle, bool) {
	spot, ok := b.handles.Lookup(win)
	if !ok {
		return Handle{}, false
	}
	return Handle{
		Monitor: spot.Monitor,
		Handle: geometry.Handle{
			Role: geometry.SplitRole(spot.Role),
			Rect: geometry.Rect{X: spot.X, Y: spot.Y, Width: spot.Width, Height: spot.Height},
		},
	}, true
}

// IsOwnWindow reports whether the window was created by the window manager.
func (b *LinuxBackend) IsOwnWindow(win xproto.Window) bool {
	return b.outline.IsOwn(win) || b.handles.IsOwn(win)
}

// Outputs returns all active displays with their dock struts.
func (b *LinuxBackend) Outputs() ([]monitor.Output, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	outputs := make([]monitor.Output, 0, len(monitors))
	for _, m := range monitors {
		outputs = append(outputs, monitor.Output{
			Name:    m.Name,
			Bounds:  geometry.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Primary: m.Primary,
			Reserved: monitor.Padding{
				Top:    m.Struts.Top,
				Bottom: m.Struts.Bottom,
				Left:   m.Struts.Left,
				Right:  m.Struts.Right,
			},
		})
	}
	return outputs, nil
}

func (b *LinuxBackend) TopLevels() ([]client.ID, error) {
	windows, err := b.conn.TopLevels()
	if err != nil {
		return nil, err
	}
	ids := make([]client.ID, 0, len(windows))
	for _, win := range windows {
		if b.IsOwnWindow(win) {
			continue
		}
		ids = append(ids, client.ID(win))
	}
	return ids, nil
}

func (b *LinuxBackend) Adoptable() ([]client.ID, error) {
	windows, err := b.conn.Adoptable()
	if err != nil {
		return nil, err
	}
	ids := make([]client.ID, 0, len(windows))
	for _, win := range windows {
		if b.IsOwnWindow(win) {
			continue
		}
		ids = append(ids, client.ID(win))
	}
	return ids, nil
}

func (b *LinuxBackend) WindowInfo(id client.ID) (client.WindowInfo, error) {
	attrs, err := b.conn.ReadWindow(xproto.Window(id))
	if err != nil {
		return client.WindowInfo{}, err
	}
	maximized := slices.Contains(attrs.States, "_NET_WM_STATE_MAXIMIZED_VERT") &&
		slices.Contains(attrs.States, "_NET_WM_STATE_MAXIMIZED_HORZ")
	info := client.WindowInfo{
		Window:           id,
		Geometry:         geometry.Rect{X: attrs.X, Y: attrs.Y, Width: attrs.Width, Height: attrs.Height},
		OverrideRedirect: attrs.OverrideRedirect || b.IsOwnWindow(xproto.Window(id)),
		Type:             windowType(attrs.Types),
		Class:            attrs.Class,
		Instance:         attrs.Instance,
		Name:             attrs.Name,
		Urgent:           attrs.Urgent,
		TransientFor:     client.ID(attrs.TransientFor),
		Desktop:          attrs.Desktop,
		MinWidth:         attrs.MinWidth,
		MinHeight:        attrs.MinHeight,
		MaxWidth:         attrs.MaxWidth,
		MaxHeight:        attrs.MaxHeight,
		Maximized:        maximized,
		Hidden:           slices.Contains(attrs.States, "_NET_WM_STATE_HIDDEN"),
		Fullscreen:       slices.Contains(attrs.States, "_NET_WM_STATE_FULLSCREEN"),
		Iconic:           attrs.WMState == icccm.StateIconic,
		Unmapped:         !attrs.Viewable,
	}
	return info, nil
}

// windowType returns the first known type, or normal when none is set.
func windowType(types []string) client.Type {
	for _, t := range types {
		if typ, ok := windowTypes[t]; ok {
			return typ
		}
	}
	return client.TypeNormal
}

func (b *LinuxBackend) Pointer() (int, int, error) {
	x, y, _, _, err := b.conn.Pointer()
	return x, y, err
}

func (b *LinuxBackend) Adopt(id client.ID) error {
	return b.conn.Adopt(xproto.Window(id))
}

func (b *LinuxBackend) Release(id client.ID) error {
	return b.conn.Release(xproto.Window(id))
}

func (b *LinuxBackend) Configure(id client.ID, geom geometry.Rect, border int) error {
	return b.conn.MoveResizeWindow(xproto.Window(id), geom.X, geom.Y, geom.Width, geom.Height, border)
}

func (b *LinuxBackend) NotifyConfigure(id client.ID, geom geometry.Rect, border int) error {
	return b.conn.NotifyConfigure(xproto.Window(id), geom.X, geom.Y, geom.Width, geom.Height, border)
}

// PassConfigure forwards the fields of a request in the order the core
// protocol lays them out.
func (b *LinuxBackend) PassConfigure(req ConfigureRequest) error {
	var mask uint16
	var values []uint32
	add := func(flag ConfigureMask, bit uint16, v uint32) {
		if req.Mask&flag != 0 {
			mask |= bit
			values = append(values, v)
		}
	}
	add(ConfigureX, xproto.ConfigWindowX, uint32(int32(req.Geometry.X)))
	add(ConfigureY, xproto.ConfigWindowY, uint32(int32(req.Geometry.Y)))
	add(ConfigureWidth, xproto.ConfigWindowWidth, uint32(max(req.Geometry.Width, 1)))
	add(ConfigureHeight, xproto.ConfigWindowHeight, uint32(max(req.Geometry.Height, 1)))
	add(ConfigureBorder, xproto.ConfigWindowBorderWidth, uint32(req.Border))
	add(ConfigureSibling, xproto.ConfigWindowSibling, uint32(req.Sibling))
	add(ConfigureStackMode, xproto.ConfigWindowStackMode, uint32(req.StackMode))
	if mask == 0 {
		return nil
	}
	return b.conn.ConfigureRaw(xproto.Window(req.Window), mask, values)
}

func (b *LinuxBackend) Map(id client.ID) error {
	return b.conn.MapWindow(xproto.Window(id))
}

func (b *LinuxBackend) Unmap(id client.ID) error {
	return b.conn.UnmapWindow(xproto.Window(id))
}

// Restack orders the clients bottom to top and keeps the split handles and
// the preview outline above them.
func (b *LinuxBackend) Restack(ids []client.ID) error {
	windows := make([]xproto.Window, len(ids))
	for i, id := range ids {
		windows[i] = xproto.Window(id)
	}
	if err := b.conn.Restack(windows); err != nil {
		return err
	}
	b.handles.Raise()
	b.outline.Raise()
	return nil
}

func (b *LinuxBackend) Focus(id client.ID) error {
	return b.conn.FocusWindow(xproto.Window(id))
}

func (b *LinuxBackend) Close(id client.ID) error {
	return b.conn.CloseWindow(xproto.Window(id))
}

func (b *LinuxBackend) SetBorderColor(id client.ID, pixel uint32) error {
	return b.conn.SetBorderColor(xproto.Window(id), pixel)
}

func (b *LinuxBackend) SetWMState(id client.ID, state WMState) error {
	switch state {
	case StateNormal:
		return b.conn.SetWMState(xproto.Window(id), icccm.StateNormal)
	case StateIconic:
		return b.conn.SetWMState(xproto.Window(id), icccm.StateIconic)
	}
	return b.conn.ClearWMState(xproto.Window(id))
}

func (b *LinuxBackend) SetWindowDesktop(id client.ID, ws int) error {
	return b.conn.SetWindowDesktop(xproto.Window(id), ws)
}

func (b *LinuxBackend) SetWindowState(id client.ID, state WindowState) error {
	win := xproto.Window(id)
	var atoms []string
	for _, name := range b.conn.GetWindowState(win) {
		if !slices.Contains(ownedStates, name) {
			atoms = append(atoms, name)
		}
	}
	return b.conn.SetWindowState(win, append(atoms, stateAtoms(state)...))
}

// stateAtoms lists the _NET_WM_STATE atoms for the flags that are set.
func stateAtoms(state WindowState) []string {
	var atoms []string
	if state.Maximized {
		atoms = append(atoms, "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ")
	}
	if state.Hidden {
		atoms = append(atoms, "_NET_WM_STATE_HIDDEN")
	}
	if state.Focused {
		atoms = append(atoms, "_NET_WM_STATE_FOCUSED")
	}
	if state.Urgent {
		atoms = append(atoms, "_NET_WM_STATE_DEMANDS_ATTENTION")
	}
	if state.Sticky {
		atoms = append(atoms, "_NET_WM_STATE_STICKY")
	}
	if state.Fullscreen {
		atoms = append(atoms, "_NET_WM_STATE_FULLSCREEN")
	}
	return atoms
}

func (b *LinuxBackend) SetActiveWindow(id client.ID) error {
	return b.conn.SetActiveWindow(xproto.Window(id))
}

func (b *LinuxBackend) SetCurrentDesktop(ws int) error {
	return b.conn.SetCurrentDesktop(ws)
}

func (b *LinuxBackend) SetDesktops(count int, names []string) error {
	return b.conn.SetDesktops(count, names)
}

func (b *LinuxBackend) SetClientList(order, stacking []client.ID) error {
	return b.conn.SetClientList(toWindows(order), toWindows(stacking))
}

func toWindows(ids []client.ID) []xproto.Window {
	windows := make([]xproto.Window, len(ids))
	for i, id := range ids {
		windows[i] = xproto.Window(id)
	}
	return windows
}

func (b *LinuxBackend) ShowPreview(r geometry.Rect) error {
	return b.outline.Show(r.X, r.Y, r.Width, r.Height, b.PreviewColor)
}

func (b *LinuxBackend) HidePreview() error {
	b.outline.Hide()
	return nil
}

func (b *LinuxBackend) SetHandles(handles []Handle) error {
	spots := make([]x11.HandleSpot, len(handles))
	for i, h := range handles {
		spots[i] = x11.HandleSpot{
			Monitor:  h.Monitor,
			Role:     int(h.Role),
			Vertical: h.Role == geometry.RoleVertical,
			X:        h.Rect.X,
			Y:        h.Rect.Y,
			Width:    h.Rect.Width,
			Height:   h.Rect.Height,
		}
	}
	return b.handles.Place(spots)
}

// Launch starts a command in its own session and reaps it in the
// background.
func (b *LinuxBackend) Launch(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.WithFields(log.Fields{"command": argv[0], "pid": cmd.Process.Pid}).Debug("Command exited: ", err)
		}
	}()
	return nil
}
