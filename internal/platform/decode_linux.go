//go:build linux

package platform

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
)

// DecodeConfigureRequest converts a core ConfigureRequest event.
func DecodeConfigureRequest(ev xproto.ConfigureRequestEvent) ConfigureRequest {
	req := ConfigureRequest{
		Window:    client.ID(ev.Window),
		Geometry:  geometry.Rect{X: int(ev.X), Y: int(ev.Y), Width: int(ev.Width), Height: int(ev.Height)},
		Border:    int(ev.BorderWidth),
		Sibling:   client.ID(ev.Sibling),
		StackMode: ev.StackMode,
	}
	bits := []struct {
		x    uint16
		mask ConfigureMask
	}{
		{xproto.ConfigWindowX, ConfigureX},
		{xproto.ConfigWindowY, ConfigureY},
		{xproto.ConfigWindowWidth, ConfigureWidth},
		{xproto.ConfigWindowHeight, ConfigureHeight},
		{xproto.ConfigWindowBorderWidth, ConfigureBorder},
		{xproto.ConfigWindowSibling, ConfigureSibling},
		{xproto.ConfigWindowStackMode, ConfigureStackMode},
	}
	for _, b := range bits {
		if ev.ValueMask&b.x != 0 {
			req.Mask |= b.mask
		}
	}
	return req
}

// DecodeProperty names the property behind an atom.
func DecodeProperty(name string) Property {
	switch name {
	case "_NET_WM_NAME", "WM_NAME":
		return PropName
	case "WM_HINTS":
		return PropHints
	case "WM_NORMAL_HINTS":
		return PropNormalHints
	case "WM_CLASS":
		return PropClass
	case "_NET_WM_STRUT", "_NET_WM_STRUT_PARTIAL":
		return PropStrut
	case "_NET_WM_WINDOW_TYPE":
		return PropWindowType
	}
	return PropOther
}

// DecodeClientMessage converts an EWMH or ICCCM client message. atomName
// resolves the atoms carried in the message data.
func DecodeClientMessage(ev xproto.ClientMessageEvent, typeName string, atomName func(xproto.Atom) string) ClientMessage {
	data := ev.Data.Data32
	msg := ClientMessage{Window: client.ID(ev.Window)}
	if len(data) < 5 {
		return msg
	}
	switch typeName {
	case "_NET_CURRENT_DESKTOP":
		msg.Kind = MsgCurrentDesktop
		msg.Desktop = int(int32(data[0]))
	case "_NET_ACTIVE_WINDOW":
		msg.Kind = MsgActiveWindow
	case "_NET_CLOSE_WINDOW":
		msg.Kind = MsgCloseWindow
	case "_NET_WM_DESKTOP":
		msg.Kind = MsgWindowDesktop
		msg.Desktop = int(int32(data[0]))
	case "_NET_WM_STATE":
		msg.Kind = MsgWindowState
		msg.Action = StateAction(data[0])
		for _, atom := range data[1:3] {
			if atom == 0 {
				continue
			}
			if flag := stateFlag(atomName(xproto.Atom(atom))); flag != FlagUnknown && !slices.Contains(msg.Flags, flag) {
				msg.Flags = append(msg.Flags, flag)
			}
		}
	case "_NET_MOVERESIZE_WINDOW":
		msg.Kind = MsgMoveResize
		msg.Geometry = geometry.Rect{
			X:      int(int32(data[1])),
			Y:      int(int32(data[2])),
			Width:  int(int32(data[3])),
			Height: int(int32(data[4])),
		}
		// Bits 8 to 11 of the first word tell which fields are present.
		for i, mask := range []ConfigureMask{ConfigureX, ConfigureY, ConfigureWidth, ConfigureHeight} {
			if data[0]&(1<<(8+i)) != 0 {
				msg.Mask |= mask
			}
		}
	case "_NET_WM_MOVERESIZE":
		msg.Kind = MsgWMMoveResize
		msg.PointerX = int(int32(data[0]))
		msg.PointerY = int(int32(data[1]))
		msg.Direction = MoveResizeDirection(data[2])
	case "WM_CHANGE_STATE":
		msg.Kind = MsgChangeState
		msg.Iconic = data[0] == icccm.StateIconic
	}
	return msg
}

func stateFlag(name string) StateFlag {
	switch name {
	case "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ":
		return FlagMaximized
	case "_NET_WM_STATE_HIDDEN":
		return FlagHidden
	case "_NET_WM_STATE_DEMANDS_ATTENTION":
		return FlagAttention
	case "_NET_WM_STATE_FULLSCREEN":
		return FlagFullscreen
	}
	return FlagUnknown
}
