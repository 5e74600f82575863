package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// WindowAttrs is what the window manager reads from a window before
// managing it.
type WindowAttrs struct {
	X, Y             int
	Width, Height    int
	OverrideRedirect bool
	Viewable         bool
	Types            []string
	Class            string
	Instance         string
	Name             string
	Urgent           bool
	TransientFor     xproto.Window
	Desktop          int
	States           []string
	// WMState is the ICCCM WM_STATE, icccm.StateWithdrawn when unset.
	WMState uint

	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

// ReadWindow reads the geometry and hints of a window. Only the geometry
// is required; missing hints are left zero.
func (c *Connection) ReadWindow(windowID xproto.Window) (WindowAttrs, error) {
	conn := c.XUtil.Conn()
	attrsCookie := xproto.GetWindowAttributes(conn, windowID)
	geomCookie := xproto.GetGeometry(conn, xproto.Drawable(windowID))

	attrs, err := attrsCookie.Reply()
	if err != nil {
		return WindowAttrs{}, fmt.Errorf("window %d: %w", windowID, err)
	}
	geom, err := geomCookie.Reply()
	if err != nil {
		return WindowAttrs{}, fmt.Errorf("window %d: %w", windowID, err)
	}

	w := WindowAttrs{
		X:                int(geom.X),
		Y:                int(geom.Y),
		Width:            int(geom.Width),
		Height:           int(geom.Height),
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xproto.MapStateViewable,
		Desktop:          c.GetWindowDesktop(windowID),
		States:           c.GetWindowState(windowID),
	}
	w.Types, _ = ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if class, err := icccm.WmClassGet(c.XUtil, windowID); err == nil && class != nil {
		w.Class, w.Instance = class.Class, class.Instance
	}
	w.Name = c.windowTitle(windowID)
	if hints, err := icccm.WmHintsGet(c.XUtil, windowID); err == nil && hints != nil {
		w.Urgent = hints.Flags&icccm.HintUrgency != 0
	}
	if parent, err := icccm.WmTransientForGet(c.XUtil, windowID); err == nil {
		w.TransientFor = parent
	}
	if state, err := icccm.WmStateGet(c.XUtil, windowID); err == nil && state != nil {
		w.WMState = state.State
	}
	if nh, err := icccm.WmNormalHintsGet(c.XUtil, windowID); err == nil && nh != nil {
		if nh.Flags&icccm.SizeHintPMinSize != 0 {
			w.MinWidth, w.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
		}
		if nh.Flags&icccm.SizeHintPMaxSize != 0 {
			w.MaxWidth, w.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
		}
	}
	return w, nil
}

func (c *Connection) windowTitle(windowID xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return name
	}
	return ""
}

// TopLevels returns the viewable children of the root window bottom to top.
func (c *Connection) TopLevels() ([]xproto.Window, error) {
	return c.topLevels(func(xproto.Window) bool { return false })
}

// Adoptable returns the top-level windows to manage when taking over the
// display: the viewable ones and the unmapped ones a previous window
// manager left in the normal or iconic WM_STATE.
func (c *Connection) Adoptable() ([]xproto.Window, error) {
	return c.topLevels(func(win xproto.Window) bool {
		state, err := icccm.WmStateGet(c.XUtil, win)
		if err != nil || state == nil {
			return false
		}
		return state.State == icccm.StateNormal || state.State == icccm.StateIconic
	})
}

// topLevels lists the viewable children of the root window and the
// unmapped ones keepUnmapped accepts.
func (c *Connection) topLevels(keepUnmapped func(xproto.Window) bool) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	var windows []xproto.Window
	for _, child := range tree.Children {
		if c.check != nil && child == c.check.Id {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), child).Reply()
		if err != nil {
			continue
		}
		switch {
		case attrs.MapState == xproto.MapStateViewable:
		case attrs.MapState == xproto.MapStateUnmapped && !attrs.OverrideRedirect && keepUnmapped(child):
		default:
			continue
		}
		windows = append(windows, child)
	}
	return windows, nil
}

// Pointer returns the pointer position and the top-level window under it.
func (c *Connection) Pointer() (x, y int, child xproto.Window, mask uint16, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), reply.Child, reply.Mask, nil
}

// WatchWindow selects the events the window manager needs from a window
// that asked to be mapped.
func (c *Connection) WatchWindow(windowID xproto.Window) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwEventMask, []uint32{clientEventMask}).Check()
}

// Adopt adds a managed window to the save set so that it survives the
// window manager exiting.
func (c *Connection) Adopt(windowID xproto.Window) error {
	if err := c.WatchWindow(windowID); err != nil {
		return err
	}
	return xproto.ChangeSaveSetChecked(c.XUtil.Conn(), xproto.SetModeInsert, windowID).Check()
}

// Release undoes Adopt.
func (c *Connection) Release(windowID xproto.Window) error {
	conn := c.XUtil.Conn()
	if err := xproto.ChangeWindowAttributesChecked(conn, windowID,
		xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent}).Check(); err != nil {
		return err
	}
	return xproto.ChangeSaveSetChecked(conn, xproto.SetModeDelete, windowID).Check()
}

// MoveResizeWindow places a window with its border. x and y are the outer
// corner; width and height exclude the border.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height, border int) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(max(width, 1)), uint32(max(height, 1)), uint32(border)},
	).Check()
}

// ConfigureRaw forwards a configure request value list unchanged.
func (c *Connection) ConfigureRaw(windowID xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
}

// NotifyConfigure sends the synthetic ConfigureNotify that tells a client
// the geometry it keeps when its request was not granted.
func (c *Connection) NotifyConfigure(windowID xproto.Window, x, y, width, height, border int) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            windowID,
		Window:           windowID,
		AboveSibling:     0,
		X:                int16(x),
		Y:                int16(y),
		Width:            uint16(width),
		Height:           uint16(height),
		BorderWidth:      uint16(border),
		OverrideRedirect: false,
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

func (c *Connection) UnmapWindow(windowID xproto.Window) error {
	return xproto.UnmapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// Restack orders the windows bottom to top.
func (c *Connection) Restack(windows []xproto.Window) error {
	conn := c.XUtil.Conn()
	for i, win := range windows {
		var err error
		if i == 0 {
			err = xproto.ConfigureWindowChecked(conn, win,
				xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow}).Check()
		} else {
			err = xproto.ConfigureWindowChecked(conn, win,
				xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
				[]uint32{uint32(windows[i-1]), xproto.StackModeAbove}).Check()
		}
		if err != nil {
			return fmt.Errorf("restack window %d: %w", win, err)
		}
	}
	return nil
}

// Raise puts a window on top of its siblings.
func (c *Connection) Raise(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
}

// FocusWindow gives the input focus to a window, or back to the root when
// windowID is 0. Windows taking part in WM_TAKE_FOCUS are asked as well.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	conn := c.XUtil.Conn()
	if windowID == 0 {
		return xproto.SetInputFocusChecked(conn, xproto.InputFocusPointerRoot,
			xproto.InputFocusPointerRoot, xproto.TimeCurrentTime).Check()
	}
	if c.supportsProtocol(windowID, "WM_TAKE_FOCUS") {
		if err := c.sendProtocol(windowID, "WM_TAKE_FOCUS"); err != nil {
			return err
		}
	}
	return xproto.SetInputFocusChecked(conn, xproto.InputFocusPointerRoot,
		windowID, xproto.TimeCurrentTime).Check()
}

// CloseWindow asks a window to close through WM_DELETE_WINDOW and kills
// its client when it does not support the protocol.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	if c.supportsProtocol(windowID, "WM_DELETE_WINDOW") {
		return c.sendProtocol(windowID, "WM_DELETE_WINDOW")
	}
	return xproto.KillClientChecked(c.XUtil.Conn(), uint32(windowID)).Check()
}

// SetBorderColor paints the border of a window.
func (c *Connection) SetBorderColor(windowID xproto.Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwBorderPixel, []uint32{pixel}).Check()
}

func (c *Connection) supportsProtocol(windowID xproto.Window, protocol string) bool {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == protocol {
			return true
		}
	}
	return false
}

// sendProtocol sends a WM_PROTOCOLS client message.
func (c *Connection) sendProtocol(windowID xproto.Window, protocol string) error {
	protocolsAtom, err := c.atom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	protocolAtom, err := c.atom(protocol)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsAtom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(protocolAtom),
			uint32(c.XUtil.TimeGet()),
			0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (c *Connection) atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}

// AtomName returns the name of an atom, or "" when it is unknown.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}
