package platform

import (
	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/monitor"
)

// WMState is the ICCCM WM_STATE of a managed window.
type WMState int

const (
	StateWithdrawn WMState = 0
	StateNormal    WMState = 1
	StateIconic    WMState = 3
)

// WindowState is the set of _NET_WM_STATE flags the window manager owns.
type WindowState struct {
	Maximized bool
	Hidden    bool
	Focused   bool
	Urgent    bool
	Sticky    bool

	Fullscreen bool
}

// Handle is a split handle placed on a monitor.
type Handle struct {
	Monitor int
	geometry.Handle
}

// Backend abstracts the display server for the dispatcher. Every method
// issues its request right away; errors concern windows that vanished or a
// broken connection.
type Backend interface {
	// Outputs returns the monitors with the space reserved by docks.
	Outputs() ([]monitor.Output, error)
	// TopLevels returns the mapped top-level windows in stacking order.
	TopLevels() ([]client.ID, error)
	// Adoptable returns the windows to manage at startup: the mapped
	// top-levels and the unmapped ones whose WM_STATE is normal or iconic.
	Adoptable() ([]client.ID, error)
	// WindowInfo reads the hints of a window.
	WindowInfo(id client.ID) (client.WindowInfo, error)
	// Pointer returns the pointer position on the root window.
	Pointer() (x, y int, err error)

	// Adopt selects events on a newly managed window.
	Adopt(id client.ID) error
	// Release undoes Adopt for a window that is still alive.
	Release(id client.ID) error
	Configure(id client.ID, geom geometry.Rect, border int) error
	// NotifyConfigure sends a synthetic ConfigureNotify with the geometry
	// the window keeps.
	NotifyConfigure(id client.ID, geom geometry.Rect, border int) error
	// PassConfigure grants a configure request unchanged.
	PassConfigure(req ConfigureRequest) error
	Map(id client.ID) error
	Unmap(id client.ID) error
	// Restack orders the windows bottom to top.
	Restack(ids []client.ID) error
	// Focus gives the input focus to the window, or to the root when id is 0.
	Focus(id client.ID) error
	// Close asks the window to close, killing its client when it does not
	// take part in WM_DELETE_WINDOW.
	Close(id client.ID) error
	SetBorderColor(id client.ID, pixel uint32) error

	SetWMState(id client.ID, state WMState) error
	SetWindowDesktop(id client.ID, ws int) error
	SetWindowState(id client.ID, state WindowState) error
	SetActiveWindow(id client.ID) error
	SetCurrentDesktop(ws int) error
	SetDesktops(count int, names []string) error
	SetClientList(order, stacking []client.ID) error

	// ShowPreview outlines r while a drag is in progress.
	ShowPreview(r geometry.Rect) error
	HidePreview() error
	// SetHandles places exactly the given split handles, removing others.
	SetHandles(handles []Handle) error

	// Launch starts a command without waiting for it.
	Launch(argv []string) error
}
