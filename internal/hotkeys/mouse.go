package hotkeys

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/drag"
	"github.com/1broseidon/snapwm/internal/platform"
	"github.com/1broseidon/snapwm/internal/wm"
)

// buttonBinding is a mouse chord that starts a drag on the client under
// the pointer.
type buttonBinding struct {
	button string
	kind   drag.Kind
}

// buttonBindings returns the drag chords for a modifier: button 1 moves,
// button 1 with Shift moves with the snap preview and button 3 resizes.
func buttonBindings(modifier string) []buttonBinding {
	return []buttonBinding{
		{modifier + "-1", drag.KindMove},
		{modifier + "-Shift-1", drag.KindMove},
		{modifier + "-3", drag.KindResize},
	}
}

// bindButtons grabs the drag chords and the plain click that focuses the
// window under the pointer.
func (h *Handler) bindButtons() error {
	mousebind.Detach(h.xu, h.root)
	xproto.UngrabButton(h.xu.Conn(), xproto.ButtonIndexAny, h.root, xproto.ModMaskAny)

	for _, b := range buttonBindings(h.modifier) {
		kind := b.kind
		mousebind.Drag(h.xu, h.root, h.root, b.button, true,
			func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
				return h.beginClientDrag(kind, rootX, rootY)
			},
			h.dragStep, h.dragEnd)
	}

	// A synchronous grab lets the click through to the client once the
	// focus has moved.
	err := mousebind.ButtonPressFun(h.clickToFocus).Connect(h.xu, h.root, "1", true, true)
	if err != nil {
		return fmt.Errorf("failed to grab button 1: %w", err)
	}
	return nil
}

func (h *Handler) clickToFocus(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	defer xproto.AllowEvents(xu.Conn(), xproto.AllowReplayPointer, ev.Time)
	if ev.Child != 0 && !h.backend.IsOwnWindow(ev.Child) {
		h.wm.ButtonPress(client.ID(ev.Child))
	}
}

// bindHandle makes a new split handle window draggable.
func (h *Handler) bindHandle(win xproto.Window) {
	mousebind.Drag(h.xu, win, win, "1", true,
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			handle, ok := h.backend.HandleAt(win)
			if !ok {
				return false, 0
			}
			return h.wm.DragBegin(wm.DragRequest{
				Kind:    drag.KindSplit,
				Monitor: handle.Monitor,
				Role:    handle.Role,
				X:       rootX,
				Y:       rootY,
				Time:    h.timestamp(),
			}), 0
		},
		h.dragStep, h.dragEnd)
}

func (h *Handler) beginClientDrag(kind drag.Kind, rootX, rootY int) (bool, xproto.Cursor) {
	reply, err := xproto.QueryPointer(h.xu.Conn(), h.root).Reply()
	if err != nil || reply.Child == 0 || h.backend.IsOwnWindow(reply.Child) {
		return false, 0
	}
	ok := h.wm.DragBegin(wm.DragRequest{
		Kind:   kind,
		Window: client.ID(reply.Child),
		X:      rootX,
		Y:      rootY,
		Time:   h.timestamp(),
	})
	if !ok {
		return false, 0
	}
	return true, h.cursorFor(kind)
}

// ClientDrag starts the drag a client asked for with _NET_WM_MOVERESIZE,
// usually from its own title bar. The button is already down, so the drag
// begins with a synthetic press at the reported pointer position.
func (h *Handler) ClientDrag(msg platform.ClientMessage) {
	req, ok := wm.ClientDragRequest(msg)
	if !ok {
		return
	}
	req.Time = h.timestamp()
	press := xevent.ButtonPressEvent{ButtonPressEvent: &xproto.ButtonPressEvent{
		Root:   h.root,
		Event:  h.root,
		Child:  xproto.Window(msg.Window),
		RootX:  int16(msg.PointerX),
		RootY:  int16(msg.PointerY),
		EventX: int16(msg.PointerX),
		EventY: int16(msg.PointerY),
		Time:   xproto.Timestamp(h.xu.TimeGet()),
	}}
	mousebind.DragBegin(h.xu, press, h.root, h.root,
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			if !h.wm.DragBegin(req) {
				return false, 0
			}
			return true, h.cursorFor(req.Kind)
		},
		h.dragStep, h.dragEnd)
}

func (h *Handler) dragStep(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
	h.wm.DragMotion(rootX, rootY, h.modifiers())
}

func (h *Handler) dragEnd(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
	h.wm.DragEnd(rootX, rootY, h.modifiers())
}

// modifiers reads the live modifier state, which drag callbacks do not
// carry. Shift asks for the snap preview of a move and for free
// positioning of a split.
func (h *Handler) modifiers() drag.Modifiers {
	reply, err := xproto.QueryPointer(h.xu.Conn(), h.root).Reply()
	if err != nil {
		return drag.Modifiers{}
	}
	shift := reply.Mask&xproto.ModMaskShift != 0
	return drag.Modifiers{Snap: shift, Free: shift}
}

// timestamp is the server time of the last event, used for double clicks.
func (h *Handler) timestamp() time.Duration {
	return time.Duration(h.xu.TimeGet()) * time.Millisecond
}

func (h *Handler) cursorFor(kind drag.Kind) xproto.Cursor {
	shape := uint16(xcursor.Fleur)
	if kind == drag.KindResize {
		shape = xcursor.BottomRightCorner
	}
	if cursor, ok := h.cursors[shape]; ok {
		return cursor
	}
	cursor, err := xcursor.CreateCursor(h.xu, shape)
	if err != nil {
		log.Debug("Failed to create cursor: ", err)
		return 0
	}
	h.cursors[shape] = cursor
	return cursor
}
