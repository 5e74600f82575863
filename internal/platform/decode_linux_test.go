//go:build linux

package platform

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
)

func clientMessage(win xproto.Window, data ...uint32) xproto.ClientMessageEvent {
	for len(data) < 5 {
		data = append(data, 0)
	}
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
}

func TestDecodeConfigureRequest(t *testing.T) {
	req := DecodeConfigureRequest(xproto.ConfigureRequestEvent{
		Window:    7,
		X:         -5,
		Width:     300,
		ValueMask: xproto.ConfigWindowX | xproto.ConfigWindowWidth,
	})
	if req.Window != 7 || req.Mask != ConfigureX|ConfigureWidth {
		t.Fatalf("unexpected request %+v", req)
	}
	got := req.Apply(geometry.Rect{X: 10, Y: 20, Width: 100, Height: 200})
	want := geometry.Rect{X: -5, Y: 20, Width: 300, Height: 200}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDecodeProperty(t *testing.T) {
	tests := map[string]Property{
		"_NET_WM_NAME":          PropName,
		"WM_NAME":               PropName,
		"WM_HINTS":              PropHints,
		"WM_NORMAL_HINTS":       PropNormalHints,
		"_NET_WM_STRUT_PARTIAL": PropStrut,
		"_NET_WM_ICON":          PropOther,
	}
	for name, want := range tests {
		if got := DecodeProperty(name); got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestDecodeClientMessage(t *testing.T) {
	atoms := map[xproto.Atom]string{
		1: "_NET_WM_STATE_MAXIMIZED_VERT",
		2: "_NET_WM_STATE_MAXIMIZED_HORZ",
		3: "_NET_WM_STATE_DEMANDS_ATTENTION",
		4: "_NET_WM_STATE_ABOVE",
		5: "_NET_WM_STATE_FULLSCREEN",
	}
	atomName := func(a xproto.Atom) string { return atoms[a] }

	t.Run("maximize both axes", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 2, 1, 2), "_NET_WM_STATE", atomName)
		if msg.Kind != MsgWindowState || msg.Action != StateToggle || msg.Window != client.ID(9) {
			t.Fatalf("unexpected message %+v", msg)
		}
		if len(msg.Flags) != 1 || msg.Flags[0] != FlagMaximized {
			t.Fatalf("expected a single maximize flag, got %v", msg.Flags)
		}
	})

	t.Run("unknown state is dropped", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 1, 4, 3), "_NET_WM_STATE", atomName)
		if len(msg.Flags) != 1 || msg.Flags[0] != FlagAttention {
			t.Fatalf("expected only the attention flag, got %v", msg.Flags)
		}
	})

	t.Run("move resize with x and width", func(t *testing.T) {
		flags := uint32(1<<8 | 1<<10)
		msg := DecodeClientMessage(clientMessage(9, flags, 50, 60, 700, 800), "_NET_MOVERESIZE_WINDOW", atomName)
		if msg.Kind != MsgMoveResize || msg.Mask != ConfigureX|ConfigureWidth {
			t.Fatalf("unexpected message %+v", msg)
		}
		if msg.Geometry.X != 50 || msg.Geometry.Width != 700 {
			t.Fatalf("unexpected geometry %v", msg.Geometry)
		}
	})

	t.Run("fullscreen", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 1, 5), "_NET_WM_STATE", atomName)
		if msg.Action != StateAdd || len(msg.Flags) != 1 || msg.Flags[0] != FlagFullscreen {
			t.Fatalf("expected a fullscreen add, got %+v", msg)
		}
	})

	t.Run("client drag from the left edge", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 120, 340, 7, 1, 1), "_NET_WM_MOVERESIZE", atomName)
		if msg.Kind != MsgWMMoveResize || msg.Direction != SizeLeft {
			t.Fatalf("unexpected message %+v", msg)
		}
		if msg.PointerX != 120 || msg.PointerY != 340 {
			t.Fatalf("expected pointer at 120,340, got %d,%d", msg.PointerX, msg.PointerY)
		}
	})

	t.Run("client drag cancel", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 0, 0, 11), "_NET_WM_MOVERESIZE", atomName)
		if msg.Direction != MoveResizeCancel {
			t.Fatalf("expected cancel, got %v", msg.Direction)
		}
	})

	t.Run("iconify", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(9, 3), "WM_CHANGE_STATE", atomName)
		if msg.Kind != MsgChangeState || !msg.Iconic {
			t.Fatalf("unexpected message %+v", msg)
		}
	})

	t.Run("current desktop", func(t *testing.T) {
		msg := DecodeClientMessage(clientMessage(0, 2), "_NET_CURRENT_DESKTOP", atomName)
		if msg.Kind != MsgCurrentDesktop || msg.Desktop != 2 {
			t.Fatalf("unexpected message %+v", msg)
		}
	})
}

func TestStateAtoms_KeepOrder(t *testing.T) {
	got := stateAtoms(WindowState{Maximized: true, Focused: true, Fullscreen: true})
	want := []string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_FOCUSED", "_NET_WM_STATE_FULLSCREEN"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
