package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// HandleSpot is where one split handle goes.
type HandleSpot struct {
	Monitor int
	// Role is opaque to this package and returned by Lookup.
	Role int
	// Vertical handles are dragged sideways.
	Vertical            bool
	X, Y, Width, Height int
}

type handleWindow struct {
	id     xproto.Window
	spot   HandleSpot
	mapped bool
}

// Handles is a pool of InputOnly windows placed over the boundaries
// between snapped windows. They show a resize cursor and receive the
// presses that start split drags.
type Handles struct {
	conn    *Connection
	windows []*handleWindow
	cursors map[bool]xproto.Cursor

	// OnCreate runs once for every window the pool creates, so that
	// callers can bind input to it.
	OnCreate func(win xproto.Window)
}

// NewHandles returns an empty pool.
func (c *Connection) NewHandles() *Handles {
	return &Handles{conn: c, cursors: make(map[bool]xproto.Cursor)}
}

// Place shows exactly the given handles, reusing windows from the pool and
// unmapping the rest.
func (h *Handles) Place(spots []HandleSpot) error {
	conn := h.conn.XUtil.Conn()
	for len(h.windows) < len(spots) {
		wid, err := h.conn.createOverrideRedirectWindow(xproto.WindowClassInputOnly)
		if err != nil {
			return err
		}
		h.windows = append(h.windows, &handleWindow{id: wid})
		if h.OnCreate != nil {
			h.OnCreate(wid)
		}
	}

	for i, w := range h.windows {
		if i >= len(spots) {
			if w.mapped {
				xproto.UnmapWindow(conn, w.id)
				w.mapped = false
			}
			continue
		}
		s := spots[i]
		if w.spot.Vertical != s.Vertical || !w.mapped {
			if cursor := h.cursor(s.Vertical); cursor != 0 {
				xproto.ChangeWindowAttributes(conn, w.id, xproto.CwCursor, []uint32{uint32(cursor)})
			}
		}
		w.spot = s
		xproto.ConfigureWindow(conn, w.id,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
			[]uint32{uint32(int32(s.X)), uint32(int32(s.Y)), uint32(max(s.Width, 1)), uint32(max(s.Height, 1)), xproto.StackModeAbove},
		)
		if !w.mapped {
			xproto.MapWindow(conn, w.id)
			w.mapped = true
		}
	}
	return nil
}

// Raise puts the mapped handles above every other window.
func (h *Handles) Raise() {
	for _, w := range h.windows {
		if w.mapped {
			h.conn.Raise(w.id)
		}
	}
}

// Lookup returns the spot a handle window currently covers.
func (h *Handles) Lookup(win xproto.Window) (HandleSpot, bool) {
	for _, w := range h.windows {
		if w.id == win && w.mapped {
			return w.spot, true
		}
	}
	return HandleSpot{}, false
}

// IsOwn reports whether the window belongs to the pool.
func (h *Handles) IsOwn(win xproto.Window) bool {
	for _, w := range h.windows {
		if w.id == win {
			return true
		}
	}
	return false
}

// Destroy releases every window and cursor of the pool.
func (h *Handles) Destroy() {
	conn := h.conn.XUtil.Conn()
	for _, w := range h.windows {
		xproto.DestroyWindow(conn, w.id)
	}
	for _, cursor := range h.cursors {
		xproto.FreeCursor(conn, cursor)
	}
	h.windows = nil
	h.cursors = make(map[bool]xproto.Cursor)
}

func (h *Handles) cursor(vertical bool) xproto.Cursor {
	if cursor, ok := h.cursors[vertical]; ok {
		return cursor
	}
	shape := uint16(xcursor.SBVDoubleArrow)
	if vertical {
		shape = xcursor.SBHDoubleArrow
	}
	cursor, err := xcursor.CreateCursor(h.conn.XUtil, shape)
	if err != nil {
		return 0
	}
	h.cursors[vertical] = cursor
	return cursor
}
