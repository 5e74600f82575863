package wm

import (
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/config"
	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/monitor"
	"github.com/1broseidon/snapwm/internal/platform"
)

var errGone = errors.New("window is gone")

var _ platform.Backend = (*fakeBackend)(nil)

// fakeBackend records what the dispatcher asks of the display server.
type fakeBackend struct {
	outputs  []monitor.Output
	windows  map[client.ID]client.WindowInfo
	pointerX int
	pointerY int

	configured map[client.ID]geometry.Rect
	borders    map[client.ID]int
	mapped     map[client.ID]bool
	unmapCalls map[client.ID]int
	wmState    map[client.ID]platform.WMState
	netState   map[client.ID]platform.WindowState
	desktops   map[client.ID]int
	notified   []client.ID
	passed     []platform.ConfigureRequest
	released   []client.ID
	closed     []client.ID
	launched   [][]string

	stacking       []client.ID
	clientList     []client.ID
	focus          client.ID
	active         client.ID
	currentDesktop int
	desktopCount   int
	preview        *geometry.Rect
	handles        []platform.Handle
}

func newFakeBackend(outputs ...monitor.Output) *fakeBackend {
	if len(outputs) == 0 {
		outputs = []monitor.Output{{Name: "eDP-1", Bounds: geometry.Rect{Width: 1920, Height: 1080}, Primary: true}}
	}
	return &fakeBackend{
		outputs:    outputs,
		windows:    make(map[client.ID]client.WindowInfo),
		pointerX:   100,
		pointerY:   100,
		configured: make(map[client.ID]geometry.Rect),
		borders:    make(map[client.ID]int),
		mapped:     make(map[client.ID]bool),
		unmapCalls: make(map[client.ID]int),
		wmState:    make(map[client.ID]platform.WMState),
		netState:   make(map[client.ID]platform.WindowState),
		desktops:   make(map[client.ID]int),
	}
}

func (f *fakeBackend) Outputs() ([]monitor.Output, error) { return f.outputs, nil }

func (f *fakeBackend) TopLevels() ([]client.ID, error) {
	var ids []client.ID
	for id := range f.windows {
		if f.mapped[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Adoptable adds the unmapped windows whose WM_STATE is normal or iconic.
func (f *fakeBackend) Adoptable() ([]client.ID, error) {
	var ids []client.ID
	for id := range f.windows {
		if state, ok := f.wmState[id]; f.mapped[id] || (ok && state != platform.StateWithdrawn) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (f *fakeBackend) WindowInfo(id client.ID) (client.WindowInfo, error) {
	info, ok := f.windows[id]
	if !ok {
		return client.WindowInfo{}, errGone
	}
	return info, nil
}

func (f *fakeBackend) Pointer() (int, int, error) { return f.pointerX, f.pointerY, nil }

func (f *fakeBackend) Adopt(id client.ID) error { return nil }

func (f *fakeBackend) Release(id client.ID) error {
	f.released = append(f.released, id)
	return nil
}

func (f *fakeBackend) Configure(id client.ID, geom geometry.Rect, border int) error {
	f.configured[id] = geom
	f.borders[id] = border
	return nil
}

func (f *fakeBackend) NotifyConfigure(id client.ID, geom geometry.Rect, border int) error {
	f.notified = append(f.notified, id)
	return nil
}

func (f *fakeBackend) PassConfigure(req platform.ConfigureRequest) error {
	f.passed = append(f.passed, req)
	return nil
}

func (f *fakeBackend) Map(id client.ID) error {
	f.mapped[id] = true
	return nil
}

func (f *fakeBackend) Unmap(id client.ID) error {
	f.mapped[id] = false
	f.unmapCalls[id]++
	return nil
}

func (f *fakeBackend) Restack(ids []client.ID) error {
	f.stacking = slices.Clone(ids)
	return nil
}

func (f *fakeBackend) Focus(id client.ID) error {
	f.focus = id
	return nil
}

func (f *fakeBackend) Close(id client.ID) error {
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeBackend) SetBorderColor(id client.ID, pixel uint32) error { return nil }

func (f *fakeBackend) SetWMState(id client.ID, state platform.WMState) error {
	f.wmState[id] = state
	return nil
}

func (f *fakeBackend) SetWindowDesktop(id client.ID, ws int) error {
	f.desktops[id] = ws
	return nil
}

func (f *fakeBackend) SetWindowState(id client.ID, state platform.WindowState) error {
	f.netState[id] = state
	return nil
}

func (f *fakeBackend) SetActiveWindow(id client.ID) error {
	f.active = id
	return nil
}

func (f *fakeBackend) SetCurrentDesktop(ws int) error {
	f.currentDesktop = ws
	return nil
}

func (f *fakeBackend) SetDesktops(count int, names []string) error {
	f.desktopCount = count
	return nil
}

func (f *fakeBackend) SetClientList(order, stacking []client.ID) error {
	f.clientList = slices.Clone(order)
	return nil
}

func (f *fakeBackend) ShowPreview(r geometry.Rect) error {
	f.preview = &r
	return nil
}

func (f *fakeBackend) HidePreview() error {
	f.preview = nil
	return nil
}

func (f *fakeBackend) SetHandles(handles []platform.Handle) error {
	f.handles = slices.Clone(handles)
	return nil
}

func (f *fakeBackend) Launch(argv []string) error {
	f.launched = append(f.launched, slices.Clone(argv))
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Gap = 0
	cfg.Border = 0
	cfg.SmartPlacement = false
	return cfg
}

func newTestDispatcher(t *testing.T, f *fakeBackend) *Dispatcher {
	t.Helper()
	return newTestDispatcherWithOptions(t, f, testConfig(), Options{})
}

func newTestDispatcherWithOptions(t *testing.T, f *fakeBackend, cfg *config.Config, opts Options) *Dispatcher {
	t.Helper()
	d, err := New(f, cfg, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return d
}

// mapWindow makes a 640x480 window known to the backend and lets it ask to
// be mapped.
func mapWindow(t *testing.T, d *Dispatcher, f *fakeBackend, id client.ID) *client.Client {
	t.Helper()
	return mapInfo(t, d, f, client.WindowInfo{
		Window:   id,
		Geometry: geometry.Rect{X: 10, Y: 10, Width: 640, Height: 480},
		Class:    "Term",
		Desktop:  -1,
	})
}

func mapInfo(t *testing.T, d *Dispatcher, f *fakeBackend, info client.WindowInfo) *client.Client {
	t.Helper()
	f.windows[info.Window] = info
	d.MapRequest(info.Window)
	c, ok := d.clients.Get(info.Window)
	if !ok {
		t.Fatalf("window %v was not managed", info.Window)
	}
	return c
}

func mustParse(t *testing.T, s string) Action {
	t.Helper()
	a, err := ParseAction(s)
	if err != nil {
		t.Fatalf("ParseAction(%q): %v", s, err)
	}
	return a
}
