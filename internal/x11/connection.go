package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ErrAnotherWM is returned by BecomeWM when another window manager already
// owns substructure redirection on the root window.
var ErrAnotherWM = errors.New("another window manager is already running")

// rootEventMask is what the window manager listens to on the root window.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// clientEventMask is selected on every window that asked to be mapped.
const clientEventMask = xproto.EventMaskPropertyChange | xproto.EventMaskFocusChange

// supportedHints are announced in _NET_SUPPORTED.
var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLOSE_WINDOW",
	"_NET_MOVERESIZE_WINDOW",
	"_NET_WM_MOVERESIZE",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_FOCUSED",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_NOTIFICATION",
	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
}

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// randr and xinerama are false when the extension is missing.
	randr    bool
	xinerama bool
	check    *xwindow.Window
}

// NewConnection establishes a connection to the X11 server and initializes
// the key and mouse binding modules.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	c.randr = randr.Init(xu.Conn()) == nil
	c.xinerama = xgbxinerama.Init(xu.Conn()) == nil
	return c, nil
}

// BecomeWM takes over substructure redirection on the root window and
// announces the window manager through the EWMH supporting window.
func (c *Connection) BecomeWM(name string) error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root,
		xproto.CwEventMask, []uint32{rootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("select root events: %w", err)
	}

	if c.randr {
		err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root,
			randr.NotifyMaskScreenChange|randr.NotifyMaskCrtcChange|randr.NotifyMaskOutputChange).Check()
		if err != nil {
			return fmt.Errorf("select randr events: %w", err)
		}
	}

	check, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return fmt.Errorf("generate check window: %w", err)
	}
	if err := check.CreateChecked(c.Root, -1, -1, 1, 1, xproto.CwOverrideRedirect, 1); err != nil {
		return fmt.Errorf("create check window: %w", err)
	}
	c.check = check

	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, name); err != nil {
		return err
	}
	return ewmh.SupportedSet(c.XUtil, supportedHints)
}

// HasRandR reports whether output changes are delivered through RandR.
func (c *Connection) HasRandR() bool { return c.randr }

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.check != nil {
		c.check.Destroy()
	}
	c.XUtil.Conn().Close()
}
