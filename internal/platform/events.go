package platform

import (
	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
)

// ConfigureMask tells which fields of a ConfigureRequest are set.
type ConfigureMask uint16

const (
	ConfigureX ConfigureMask = 1 << iota
	ConfigureY
	ConfigureWidth
	ConfigureHeight
	ConfigureBorder
	ConfigureSibling
	ConfigureStackMode
)

// ConfigureRequest is a window asking for new geometry or stacking.
type ConfigureRequest struct {
	Window    client.ID
	Mask      ConfigureMask
	Geometry  geometry.Rect
	Border    int
	Sibling   client.ID
	StackMode byte
}

// Apply returns cur with the requested fields replaced.
func (r ConfigureRequest) Apply(cur geometry.Rect) geometry.Rect {
	if r.Mask&ConfigureX != 0 {
		cur.X = r.Geometry.X
	}
	if r.Mask&ConfigureY != 0 {
		cur.Y = r.Geometry.Y
	}
	if r.Mask&ConfigureWidth != 0 {
		cur.Width = r.Geometry.Width
	}
	if r.Mask&ConfigureHeight != 0 {
		cur.Height = r.Geometry.Height
	}
	return cur
}

// Property names a window property whose change matters to the window
// manager.
type Property int

const (
	PropOther Property = iota
	PropName
	PropHints
	PropNormalHints
	PropClass
	PropStrut
	PropWindowType
)

// MessageKind is the request carried by a client message.
type MessageKind int

const (
	MsgUnknown MessageKind = iota
	// MsgCurrentDesktop is _NET_CURRENT_DESKTOP.
	MsgCurrentDesktop
	// MsgActiveWindow is _NET_ACTIVE_WINDOW.
	MsgActiveWindow
	// MsgCloseWindow is _NET_CLOSE_WINDOW.
	MsgCloseWindow
	// MsgWindowDesktop is _NET_WM_DESKTOP.
	MsgWindowDesktop
	// MsgWindowState is _NET_WM_STATE.
	MsgWindowState
	// MsgMoveResize is _NET_MOVERESIZE_WINDOW.
	MsgMoveResize
	// MsgChangeState is WM_CHANGE_STATE.
	MsgChangeState
	// MsgWMMoveResize is _NET_WM_MOVERESIZE, a client starting an
	// interactive move or resize from its own decorations.
	MsgWMMoveResize
)

// MoveResizeDirection is the direction word of _NET_WM_MOVERESIZE.
type MoveResizeDirection int

const (
	SizeTopLeft MoveResizeDirection = iota
	SizeTop
	SizeTopRight
	SizeRight
	SizeBottomRight
	SizeBottom
	SizeBottomLeft
	SizeLeft
	MoveDrag
	SizeKeyboard
	MoveKeyboard
	MoveResizeCancel
)

// StateAction is how a _NET_WM_STATE request changes a flag.
type StateAction int

const (
	StateRemove StateAction = iota
	StateAdd
	StateToggle
)

// StateFlag is a _NET_WM_STATE flag the window manager acts upon.
type StateFlag int

const (
	FlagUnknown StateFlag = iota
	FlagMaximized
	FlagHidden
	FlagAttention
	FlagFullscreen
)

// ClientMessage is a decoded EWMH or ICCCM request.
type ClientMessage struct {
	Kind   MessageKind
	Window client.ID
	// Desktop is the target workspace of desktop requests.
	Desktop int
	Action  StateAction
	Flags   []StateFlag
	// Geometry and Mask carry a move-resize request.
	Geometry geometry.Rect
	Mask     ConfigureMask
	// Iconic is set when WM_CHANGE_STATE asks for the iconic state.
	Iconic bool
	// Direction, PointerX and PointerY carry a _NET_WM_MOVERESIZE request.
	// The pointer position is in root coordinates.
	Direction MoveResizeDirection
	PointerX  int
	PointerY  int
}
