package wm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/shlex"
)

// ActionKind names a user-triggerable operation.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCloseWindow
	ActionQuit
	ActionSnapLeft
	ActionSnapRight
	ActionSnapUp
	ActionSnapDown
	ActionMaximize
	ActionToggleMaximize
	ActionUnsnapOrCenter
	ActionCenter
	ActionGridResize
	ActionMinimize
	ActionRaiseAll
	ActionMoveToNextMonitor
	ActionMoveToPrevMonitor
	ActionSwitchWindow
	ActionSwitchWindowReverse
	ActionSelectWorkspace
	ActionMoveToWorkspace
	ActionIncreaseVolume
	ActionDecreaseVolume
	ActionMuteVolume
	ActionReload
	ActionLaunch
)

var actionNames = map[string]ActionKind{
	"close_window":          ActionCloseWindow,
	"quit":                  ActionQuit,
	"snap_left":             ActionSnapLeft,
	"snap_right":            ActionSnapRight,
	"snap_up":               ActionSnapUp,
	"snap_down":             ActionSnapDown,
	"maximize":              ActionMaximize,
	"toggle_maximize":       ActionToggleMaximize,
	"unsnap_or_center":      ActionUnsnapOrCenter,
	"center":                ActionCenter,
	"grid_resize":           ActionGridResize,
	"minimize":              ActionMinimize,
	"raise_all":             ActionRaiseAll,
	"move_to_next_monitor":  ActionMoveToNextMonitor,
	"move_to_prev_monitor":  ActionMoveToPrevMonitor,
	"switch_window":         ActionSwitchWindow,
	"switch_window_reverse": ActionSwitchWindowReverse,
	"workspace":             ActionSelectWorkspace,
	"move_to_workspace":     ActionMoveToWorkspace,
	"increase_volume":       ActionIncreaseVolume,
	"decrease_volume":       ActionDecreaseVolume,
	"mute_volume":           ActionMuteVolume,
	"reload":                ActionReload,
}

func (k ActionKind) String() string {
	if k == ActionLaunch {
		return "launch"
	}
	for name, kind := range actionNames {
		if kind == k {
			return name
		}
	}
	return "none"
}

// TakesWorkspace reports whether the action needs a workspace number.
func (k ActionKind) TakesWorkspace() bool {
	return k == ActionSelectWorkspace || k == ActionMoveToWorkspace
}

// TargetsClient reports whether the action applies to the focused client.
func (k ActionKind) TargetsClient() bool {
	switch k {
	case ActionCloseWindow, ActionSnapLeft, ActionSnapRight, ActionSnapUp, ActionSnapDown,
		ActionMaximize, ActionToggleMaximize, ActionUnsnapOrCenter, ActionCenter, ActionGridResize, ActionMinimize,
		ActionMoveToNextMonitor, ActionMoveToPrevMonitor, ActionMoveToWorkspace:
		return true
	}
	return false
}

// Action is a parsed action with its argument.
type Action struct {
	Kind ActionKind
	// Workspace is the zero-based workspace of workspace actions.
	Workspace int
	// Argv is the command of a launch action.
	Argv []string
}

func (a Action) String() string {
	switch {
	case a.Kind == ActionLaunch:
		return "$ " + strings.Join(a.Argv, " ")
	case a.Kind.TakesWorkspace():
		return fmt.Sprintf("%s %d", a.Kind, a.Workspace+1)
	}
	return a.Kind.String()
}

// ParseAction parses an action as written in key bindings and on the
// command line. Names are case-insensitive. Workspace numbers start at 1.
// A leading "$" makes the rest of the line a command to launch.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if cmd, ok := strings.CutPrefix(s, "$"); ok {
		argv, err := shlex.Split(cmd)
		if err != nil {
			return Action{}, fmt.Errorf("invalid command %q: %w", strings.TrimSpace(cmd), err)
		}
		if len(argv) == 0 {
			return Action{}, fmt.Errorf("launch action needs a command")
		}
		return Action{Kind: ActionLaunch, Argv: argv}, nil
	}

	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty action")
	}
	kind, ok := actionNames[fields[0]]
	if !ok {
		if similar := mostSimilar(fields[0]); similar != "" {
			return Action{}, fmt.Errorf("no such action: %s (did you mean %s?)", fields[0], similar)
		}
		return Action{}, fmt.Errorf("no such action: %s", fields[0])
	}

	if !kind.TakesWorkspace() {
		if len(fields) > 1 {
			return Action{}, fmt.Errorf("action %s takes no argument", kind)
		}
		return Action{Kind: kind}, nil
	}
	if len(fields) != 2 {
		return Action{}, fmt.Errorf("action %s needs a workspace number", kind)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return Action{}, fmt.Errorf("invalid workspace number %q", fields[1])
	}
	return Action{Kind: kind, Workspace: n - 1}, nil
}

// ActionNames returns every action name in alphabetical order.
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for name := range actionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseBindings parses every action of a key binding table and reports the
// chords whose action does not parse.
func ParseBindings(bindings map[string]string) (map[string]Action, error) {
	out := make(map[string]Action, len(bindings))
	var bad []string
	for chord, name := range bindings {
		a, err := ParseAction(name)
		if err != nil {
			bad = append(bad, fmt.Sprintf("keybindings.%s: %v", chord, err))
			continue
		}
		out[chord] = a
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return out, fmt.Errorf("invalid key bindings:\n  %s", strings.Join(bad, "\n  "))
	}
	return out, nil
}

// mostSimilar returns the action name closest to name by edit distance,
// if any is close enough to be a likely typo.
func mostSimilar(name string) string {
	best, bestDist := "", len(name)/2+1
	for _, candidate := range ActionNames() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
