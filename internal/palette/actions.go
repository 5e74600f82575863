package palette

import (
	"errors"
	"fmt"
	"slices"

	"github.com/1broseidon/snapwm/internal/wm"
)

// Controller is the part of the control client the palette uses.
type Controller interface {
	GetStatus() (*wm.Status, error)
	RunAction(action string) error
}

type entry struct {
	label, action, icon, meta string
}

var windowEntries = []entry{
	{"Snap left", "snap_left", "go-previous", "half tile"},
	{"Snap right", "snap_right", "go-next", "half tile"},
	{"Snap up", "snap_up", "go-up", "quarter top"},
	{"Snap down", "snap_down", "go-down", "quarter bottom"},
	{"Maximize", "maximize", "window-maximize", "fill"},
	{"Toggle maximize", "toggle_maximize", "window-maximize", "restore"},
	{"Center", "center", "zoom-fit-best", ""},
	{"Grid resize", "grid_resize", "view-grid", "resize cells"},
	{"Unsnap or center", "unsnap_or_center", "view-restore", "restore"},
	{"Minimize", "minimize", "window-minimize", "hide iconify"},
	{"Next monitor", "move_to_next_monitor", "video-display", "screen output"},
	{"Previous monitor", "move_to_prev_monitor", "video-display", "screen output"},
	{"Close", "close_window", "window-close", "kill quit"},
}

var volumeEntries = []entry{
	{"Volume up", "increase_volume", "audio-volume-high", "louder"},
	{"Volume down", "decrease_volume", "audio-volume-low", "quieter"},
	{"Mute", "mute_volume", "audio-volume-muted", "silence"},
}

func leaves(entries []entry) []MenuItem {
	items := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, MenuItem{Label: e.label, Action: e.action, Icon: e.icon, Meta: e.meta})
	}
	return items
}

// BuildMenu returns the palette tree for the given state. Window actions
// are only offered while a window has the focus.
func BuildMenu(st *wm.Status) []MenuItem {
	var items []MenuItem
	if st.Focused != 0 {
		items = append(items,
			MenuItem{Label: "Window", Icon: "preferences-system-windows", Submenu: leaves(windowEntries)},
			MenuItem{Label: "Send window to", Icon: "go-jump", Submenu: workspaceItems(st, wm.ActionMoveToWorkspace)},
		)
	}
	items = append(items,
		MenuItem{Label: "Workspace", Icon: "view-grid", Submenu: workspaceItems(st, wm.ActionSelectWorkspace)},
		MenuItem{Label: "Show all windows", Action: "raise_all", Icon: "view-restore", Meta: "raise"},
		MenuItem{Label: "Volume", Icon: "audio-volume-medium", Submenu: leaves(volumeEntries)},
		MenuItem{Label: "────────", IsDivider: true},
		MenuItem{Label: "Reload configuration", Action: "reload", Icon: "view-refresh"},
		MenuItem{Label: "Quit snapwm", Action: "quit", Icon: "application-exit", Meta: "exit logout"},
	)
	return items
}

// workspaceItems lists the workspaces of the current monitor. The visible
// one is marked active.
func workspaceItems(st *wm.Status, kind wm.ActionKind) []MenuItem {
	active := -1
	for _, m := range st.Monitors {
		if m.Index == st.CurrentMonitor {
			active = m.Workspace
		}
	}
	counts := make(map[int]int)
	for _, c := range st.Clients {
		if c.Monitor == st.CurrentMonitor && !c.Meta {
			counts[c.Workspace]++
		}
	}

	items := make([]MenuItem, 0, st.Workspaces)
	for ws := 0; ws < st.Workspaces; ws++ {
		label := fmt.Sprintf("Workspace %d", ws+1)
		switch n := counts[ws]; n {
		case 0:
		case 1:
			label += " (1 window)"
		default:
			label += fmt.Sprintf(" (%d windows)", n)
		}
		items = append(items, MenuItem{
			Label:    label,
			Action:   wm.Action{Kind: kind, Workspace: ws}.String(),
			IsActive: ws == active,
			IsUrgent: slices.Contains(st.UrgentSpaces, ws),
		})
	}
	return items
}

// Message describes the focused window for the launcher message bar.
func Message(st *wm.Status) string {
	for _, c := range st.Clients {
		if c.ID != st.Focused || st.Focused == 0 {
			continue
		}
		name := c.Name
		if r := []rune(name); len(r) > 60 {
			name = string(r[:59]) + "…"
		}
		if c.Class == "" {
			return name
		}
		return c.Class + ": " + name
	}
	return "No focused window"
}

// Run shows the palette for the running window manager and runs the
// selected action. It returns ErrCancelled when nothing was selected.
func Run(backend Backend, ctl Controller) (string, error) {
	st, err := ctl.GetStatus()
	if err != nil {
		return "", err
	}
	menu := NewMenu(backend, "snapwm", BuildMenu(st))
	menu.SetMessage(Message(st))

	action, err := menu.Show()
	if err != nil {
		return "", err
	}
	if err := ctl.RunAction(action); err != nil {
		return action, fmt.Errorf("%s: %w", action, err)
	}
	return action, nil
}

// IsCancelled reports whether err means the user closed the palette.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
