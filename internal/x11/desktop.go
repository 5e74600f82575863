package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// stickyDesktop is the _NET_WM_DESKTOP value of windows shown on every
// desktop.
const stickyDesktop = 0xFFFFFFFF

// SetDesktops publishes the number and names of the virtual desktops.
func (c *Connection) SetDesktops(count int, names []string) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(count)); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, names); err != nil {
		return fmt.Errorf("failed to set desktop names: %w", err)
	}
	return nil
}

// SetCurrentDesktop publishes the visible virtual desktop (0-indexed).
func (c *Connection) SetCurrentDesktop(desktop int) error {
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(desktop)); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	return nil
}

// GetWindowDesktop returns the desktop number a window asks for.
// Returns -1 for "sticky" windows (visible on all desktops) and when the
// property is unset.
func (c *Connection) GetWindowDesktop(windowID xproto.Window) int {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil || desktop == stickyDesktop {
		return -1
	}
	return int(desktop)
}

// SetWindowDesktop records the desktop of a window. Negative desktops mark
// it sticky.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	value := uint(stickyDesktop)
	if desktop >= 0 {
		value = uint(desktop)
	}
	return ewmh.WmDesktopSet(c.XUtil, windowID, value)
}

// SetActiveWindow publishes the focused window, or none when windowID is 0.
func (c *Connection) SetActiveWindow(windowID xproto.Window) error {
	return ewmh.ActiveWindowSet(c.XUtil, windowID)
}

// SetClientList publishes the managed windows in mapping order and bottom
// to top.
func (c *Connection) SetClientList(order, stacking []xproto.Window) error {
	if err := ewmh.ClientListSet(c.XUtil, order); err != nil {
		return err
	}
	return ewmh.ClientListStackingSet(c.XUtil, stacking)
}

// SetWindowState replaces the _NET_WM_STATE atoms of a window.
func (c *Connection) SetWindowState(windowID xproto.Window, states []string) error {
	return ewmh.WmStateSet(c.XUtil, windowID, states)
}

// GetWindowState returns the _NET_WM_STATE atoms of a window.
func (c *Connection) GetWindowState(windowID xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return states
}

// SetWMState sets the ICCCM WM_STATE of a window.
func (c *Connection) SetWMState(windowID xproto.Window, state uint) error {
	return icccm.WmStateSet(c.XUtil, windowID, &icccm.WmState{State: state})
}

// ClearWMState removes WM_STATE from a window that is no longer managed.
func (c *Connection) ClearWMState(windowID xproto.Window) error {
	atom, err := c.atom("WM_STATE")
	if err != nil {
		return err
	}
	return xproto.DeletePropertyChecked(c.XUtil.Conn(), windowID, atom).Check()
}
