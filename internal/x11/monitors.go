package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xinerama"
)

// Monitor represents a physical display
type Monitor struct {
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
	Struts  Struts
}

// Struts is the space docks reserve along each edge of a monitor.
type Struts struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// GetMonitors retrieves all active monitors using XRandR, falling back to
// Xinerama and finally to the whole screen. Dock struts are applied per
// monitor.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	var monitors []Monitor
	if c.randr {
		var err error
		if monitors, err = c.randrMonitors(); err != nil {
			return nil, err
		}
	}
	if len(monitors) == 0 && c.xinerama {
		heads, err := xinerama.PhysicalHeads(c.XUtil)
		if err == nil {
			for i, h := range heads {
				monitors = append(monitors, Monitor{
					Name:    fmt.Sprintf("head-%d", i),
					X:       h.X(),
					Y:       h.Y(),
					Width:   h.Width(),
					Height:  h.Height(),
					Primary: i == 0,
				})
			}
		}
	}
	if len(monitors) == 0 {
		screen := c.XUtil.Screen()
		monitors = append(monitors, Monitor{
			Name:    "screen",
			Width:   int(screen.WidthInPixels),
			Height:  int(screen.HeightInPixels),
			Primary: true,
		})
	}

	c.applyDockStruts(monitors)
	return monitors, nil
}

func (c *Connection) randrMonitors() ([]Monitor, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("crtc-%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		isPrimary := false
		for _, out := range crtcInfo.Outputs {
			if out == primary {
				isPrimary = true
			}
		}

		monitors = append(monitors, Monitor{
			Name:    outputName,
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: isPrimary,
		})
	}
	return monitors, nil
}

// applyDockStruts accumulates the struts of every mapped dock into the
// monitors they overlap.
func (c *Connection) applyDockStruts(monitors []Monitor) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	windows, err := c.TopLevels()
	if err != nil {
		return
	}
	for _, windowID := range windows {
		sp, ok := c.dockStrut(windowID, rootWidth, rootHeight)
		if !ok {
			continue
		}
		for i := range monitors {
			updateStrutsForMonitor(&monitors[i], rootWidth, rootHeight, sp)
		}
	}
}

// dockStrut reads the partial strut of a dock, widening a plain
// _NET_WM_STRUT to the whole screen edge.
func (c *Connection) dockStrut(windowID xproto.Window, rootWidth, rootHeight int) (*ewmh.WmStrutPartial, bool) {
	if !c.IsDock(windowID) {
		return nil, false
	}
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
		return sp, true
	}
	s, err := ewmh.WmStrutGet(c.XUtil, windowID)
	if err != nil {
		return nil, false
	}
	return &ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(rootHeight - 1),
		RightEndY:  uint(rootHeight - 1),
		TopEndX:    uint(rootWidth - 1),
		BottomEndX: uint(rootWidth - 1),
	}, true
}

// IsDock reports whether the window declares the dock window type.
func (c *Connection) IsDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func updateStrutsForMonitor(monitor *Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial) {
	mon := box{monitor.X, monitor.Y, monitor.X + monitor.Width, monitor.Y + monitor.Height}
	acc := &monitor.Struts

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		b := box{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)}
		acc.Top = max(acc.Top, mon.intersect(b).height())
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		b := box{int(sp.BottomStartX), rootHeight - int(sp.Bottom), int(sp.BottomEndX) + 1, rootHeight}
		acc.Bottom = max(acc.Bottom, mon.intersect(b).height())
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		b := box{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1}
		acc.Left = max(acc.Left, mon.intersect(b).width())
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		b := box{rootWidth - int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY) + 1}
		acc.Right = max(acc.Right, mon.intersect(b).width())
	}
}

// box is a rectangle given by its corners, exclusive at x2 and y2.
type box struct {
	x1, y1, x2, y2 int
}

func (a box) intersect(b box) box {
	r := box{max(a.x1, b.x1), max(a.y1, b.y1), min(a.x2, b.x2), min(a.y2, b.y2)}
	if r.x2 <= r.x1 || r.y2 <= r.y1 {
		return box{}
	}
	return r
}

func (a box) width() int  { return a.x2 - a.x1 }
func (a box) height() int { return a.y2 - a.y1 }
