package x11

import (
	"github.com/BurntSushi/xgb/xproto"
)

// OutlineThickness is the width of the preview outline in pixels.
const OutlineThickness = 4

// Outline is a rectangular frame made of four override-redirect windows.
// It previews where a dragged window will snap.
type Outline struct {
	conn    *Connection
	bars    [4]xproto.Window
	created bool
	mapped  bool
}

// NewOutline returns an outline whose windows are created on first use.
func (c *Connection) NewOutline() *Outline {
	return &Outline{conn: c}
}

// Show frames the rectangle in the given color and raises the frame above
// every other window.
func (o *Outline) Show(x, y, w, h int, color uint32) error {
	if !o.created {
		if err := o.create(); err != nil {
			return err
		}
	}

	t := OutlineThickness
	rects := [4][4]int{
		{x, y, w, t},                   // top
		{x, y + h - t, w, t},           // bottom
		{x, y + t, t, h - 2*t},         // left
		{x + w - t, y + t, t, h - 2*t}, // right
	}
	for i, r := range rects {
		o.update(o.bars[i], r[0], r[1], r[2], r[3], color)
	}
	if !o.mapped {
		for _, bar := range o.bars {
			xproto.MapWindow(o.conn.XUtil.Conn(), bar)
		}
		o.mapped = true
	}
	return nil
}

// Hide unmaps the frame without destroying it.
func (o *Outline) Hide() {
	if !o.mapped {
		return
	}
	for _, bar := range o.bars {
		xproto.UnmapWindow(o.conn.XUtil.Conn(), bar)
	}
	o.mapped = false
}

// Raise keeps a shown frame on top after the stacking order changed.
func (o *Outline) Raise() {
	if !o.mapped {
		return
	}
	for _, bar := range o.bars {
		o.conn.Raise(bar)
	}
}

// Destroy releases the frame windows.
func (o *Outline) Destroy() {
	if !o.created {
		return
	}
	for i, bar := range o.bars {
		xproto.DestroyWindow(o.conn.XUtil.Conn(), bar)
		o.bars[i] = 0
	}
	o.created = false
	o.mapped = false
}

// IsOwn reports whether the window belongs to the frame.
func (o *Outline) IsOwn(win xproto.Window) bool {
	for _, bar := range o.bars {
		if bar != 0 && bar == win {
			return true
		}
	}
	return false
}

func (o *Outline) create() error {
	for i := range o.bars {
		wid, err := o.conn.createOverrideRedirectWindow(xproto.WindowClassInputOutput)
		if err != nil {
			o.Destroy()
			return err
		}
		o.bars[i] = wid
		o.created = true
	}
	return nil
}

// update moves, resizes, and recolors a bar
func (o *Outline) update(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := o.conn.XUtil.Conn()
	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(x)),
			uint32(int32(y)),
			uint32(max(width, 1)),
			uint32(max(height, 1)),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

// createOverrideRedirectWindow creates a 1x1 window that bypasses
// substructure redirection. InputOnly windows carry no background.
func (c *Connection) createOverrideRedirectWindow(class uint16) (xproto.Window, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	depth, visual := screen.RootDepth, screen.RootVisual
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect)
	// Value list order follows the bit positions of the mask.
	values := []uint32{0, 1}
	if class == xproto.WindowClassInputOnly {
		depth, visual = 0, 0
		mask = xproto.CwOverrideRedirect
		values = []uint32{1}
	}

	err = xproto.CreateWindowChecked(
		conn,
		depth,
		wid,
		c.Root,
		0, 0, 1, 1,
		0, // border_width
		class,
		visual,
		mask,
		values,
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}
