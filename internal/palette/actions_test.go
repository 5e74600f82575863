package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/snapwm/internal/wm"
)

func testStatus() *wm.Status {
	return &wm.Status{
		Workspaces:     3,
		UrgentSpaces:   []int{2},
		CurrentMonitor: 1,
		Focused:        0x400001,
		Monitors: []wm.MonitorStatus{
			{Index: 0, Workspace: 0},
			{Index: 1, Workspace: 1, Current: true},
		},
		Clients: []wm.ClientStatus{
			{ID: 0x400001, Class: "Firefox", Name: "Start page", Monitor: 1, Workspace: 1, Focused: true},
			{ID: 0x400002, Class: "URxvt", Name: "shell", Monitor: 1, Workspace: 1},
			{ID: 0x400003, Class: "conky", Monitor: 1, Workspace: 0, Meta: true},
			{ID: 0x400004, Class: "URxvt", Name: "other", Monitor: 0, Workspace: 0},
		},
	}
}

func walk(items []MenuItem, fn func(MenuItem)) {
	for _, it := range items {
		fn(it)
		walk(it.Submenu, fn)
	}
}

func TestBuildMenu_ActionsParse(t *testing.T) {
	walk(BuildMenu(testStatus()), func(it MenuItem) {
		if it.IsParent() || it.IsDivider || it.IsHeader {
			return
		}
		if _, err := wm.ParseAction(it.Action); err != nil {
			t.Fatalf("menu item %q has invalid action %q: %v", it.Label, it.Action, err)
		}
	})
}

func TestBuildMenu_Workspaces(t *testing.T) {
	var ws []MenuItem
	for _, it := range BuildMenu(testStatus()) {
		if it.Label == "Workspace" {
			ws = it.Submenu
		}
	}
	if len(ws) != 3 {
		t.Fatalf("expected 3 workspaces, got %+v", ws)
	}
	want := []struct {
		label  string
		action string
		active bool
		urgent bool
	}{
		{"Workspace 1", "workspace 1", false, false},
		{"Workspace 2 (2 windows)", "workspace 2", true, false},
		{"Workspace 3", "workspace 3", false, true},
	}
	for i, w := range want {
		got := ws[i]
		if got.Label != w.label || got.Action != w.action || got.IsActive != w.active || got.IsUrgent != w.urgent {
			t.Fatalf("workspace %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestBuildMenu_NoFocusHidesWindowActions(t *testing.T) {
	st := testStatus()
	st.Focused = 0
	walk(BuildMenu(st), func(it MenuItem) {
		if it.Action == "close_window" || strings.HasPrefix(it.Action, "move_to_workspace") {
			t.Fatalf("unexpected window action %q without focus", it.Action)
		}
	})
	if got := Message(st); got != "No focused window" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(testStatus()); got != "Firefox: Start page" {
		t.Fatalf("unexpected message %q", got)
	}
}

type fakeController struct {
	status  *wm.Status
	err     error
	actions []string
}

func (c *fakeController) GetStatus() (*wm.Status, error) { return c.status, c.err }

func (c *fakeController) RunAction(action string) error {
	c.actions = append(c.actions, action)
	return nil
}

func TestRun(t *testing.T) {
	ctl := &fakeController{status: testStatus()}
	b := &scriptedBackend{picks: []string{"Send window to →", "Workspace 3"}}
	action, err := Run(b, ctl)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if action != "move_to_workspace 3" || len(ctl.actions) != 1 || ctl.actions[0] != action {
		t.Fatalf("expected move_to_workspace 3 to run, got %q %v", action, ctl.actions)
	}

	ctl = &fakeController{status: testStatus()}
	if _, err := Run(&scriptedBackend{}, ctl); !IsCancelled(err) || len(ctl.actions) != 0 {
		t.Fatalf("expected a cancelled palette to run nothing, got %v %v", err, ctl.actions)
	}

	ctl = &fakeController{err: errors.New("not running")}
	if _, err := Run(&scriptedBackend{}, ctl); err == nil || IsCancelled(err) {
		t.Fatalf("expected the status error, got %v", err)
	}
}
