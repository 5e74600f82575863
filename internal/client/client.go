// Package client owns the managed windows, their classification and the
// per-monitor focus history.
package client

import (
	"fmt"
	"slices"

	"github.com/1broseidon/snapwm/internal/geometry"
)

// ID identifies a managed window. It is the X window id.
type ID uint32

func (id ID) String() string { return fmt.Sprintf("0x%x", uint32(id)) }

// Type is the EWMH window type of a window.
type Type int

const (
	TypeNormal Type = iota
	TypeDialog
	TypeUtility
	TypeToolbar
	TypeMenu
	TypeSplash
	TypeDock
	TypeDesktop
	TypeNotification
)

func (t Type) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeDialog:
		return "dialog"
	case TypeUtility:
		return "utility"
	case TypeToolbar:
		return "toolbar"
	case TypeMenu:
		return "menu"
	case TypeSplash:
		return "splash"
	case TypeDock:
		return "dock"
	case TypeDesktop:
		return "desktop"
	case TypeNotification:
		return "notification"
	}
	return "unknown"
}

// WindowInfo is what the display server reports about a window that asks
// to be mapped.
type WindowInfo struct {
	Window           ID
	Geometry         geometry.Rect
	OverrideRedirect bool
	Type             Type
	Class            string
	Instance         string
	Name             string
	Urgent           bool
	TransientFor     ID

	// Desktop is the workspace the window asks for, -1 when unset or
	// sticky.
	Desktop int

	// Size hints. Zero means unset.
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	// Requested initial state.
	Maximized  bool
	Hidden     bool
	Fullscreen bool
	// Iconic is set when WM_STATE is iconic.
	Iconic bool
	// Unmapped is set for windows that are not viewable when read.
	Unmapped bool
}

// Kind is the outcome of the manage predicate.
type Kind int

const (
	// Ignore leaves the window unmanaged.
	Ignore Kind = iota
	// Meta windows are shown on every workspace and never focused.
	Meta
	// Normal windows are fully managed.
	Normal
)

func (k Kind) String() string {
	switch k {
	case Meta:
		return "meta"
	case Normal:
		return "normal"
	}
	return "ignore"
}

// Classify decides whether and how a window is managed.
func Classify(info WindowInfo, metaClasses []string) Kind {
	if info.OverrideRedirect || info.Geometry.Width <= 0 || info.Geometry.Height <= 0 {
		return Ignore
	}
	switch info.Type {
	case TypeDock, TypeDesktop, TypeNotification:
		return Ignore
	case TypeSplash:
		return Meta
	}
	if info.Class != "" && slices.Contains(metaClasses, info.Class) {
		return Meta
	}
	return Normal
}

// Client is one managed window.
type Client struct {
	ID ID
	// Geometry is the X geometry currently shown: outer corner and content size.
	Geometry geometry.Rect
	// SavedGeometry is restored by unsnap. It is recorded when the client
	// goes from unsnapped to snapped and left alone by further snaps.
	SavedGeometry geometry.Rect
	// SavedArea is the work area SavedGeometry was recorded on.
	SavedArea geometry.Rect
	Snap      geometry.SnapState
	Monitor   int
	Workspace int

	Meta      bool
	Minimized bool
	Urgent    bool
	Focused   bool
	// Fullscreen clients cover their monitor's bounds without a border.
	Fullscreen bool

	Type      Type
	Class     string
	Instance  string
	Name      string
	Transient ID
	MinWidth  int
	MinHeight int
	// Fixed is set when the size hints pin the window to one size.
	Fixed bool
}

// MayResize reports whether snapping and resizing apply to the client.
// Dialogs keep the size their owner gave them.
func (c *Client) MayResize() bool {
	return !c.Meta && !c.Fixed && !c.Fullscreen && c.Type != TypeDialog
}

// MayMove reports whether the client can be moved by the user.
func (c *Client) MayMove() bool { return !c.Meta && !c.Fullscreen }

// SaveGeometry records the current geometry as the one unsnap restores,
// together with the work area it is shown on.
func (c *Client) SaveGeometry(area geometry.Rect) {
	c.SavedGeometry = c.Geometry
	c.SavedArea = area
}

func (c *Client) String() string {
	if c.Class != "" {
		return fmt.Sprintf("%s (%s)", c.ID, c.Class)
	}
	return c.ID.String()
}

func newClient(info WindowInfo, kind Kind, mon, ws int) *Client {
	c := &Client{
		ID:        info.Window,
		Geometry:  info.Geometry,
		Monitor:   mon,
		Workspace: ws,
		Meta:      kind == Meta,
		Urgent:    info.Urgent,
		Type:      info.Type,
		Class:     info.Class,
		Instance:  info.Instance,
		Name:      info.Name,
		Transient: info.TransientFor,
		MinWidth:  info.MinWidth,
		MinHeight: info.MinHeight,
		Fixed: info.MinWidth > 0 && info.MinWidth == info.MaxWidth &&
			info.MinHeight > 0 && info.MinHeight == info.MaxHeight,
	}
	c.SavedGeometry = c.Geometry
	return c
}
