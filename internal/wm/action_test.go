package wm

import (
	"slices"
	"strings"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"snap_left", Action{Kind: ActionSnapLeft}},
		{"  Toggle_Maximize ", Action{Kind: ActionToggleMaximize}},
		{"workspace 3", Action{Kind: ActionSelectWorkspace, Workspace: 2}},
		{"move_to_workspace 1", Action{Kind: ActionMoveToWorkspace, Workspace: 0}},
		{"$ rofi -show run", Action{Kind: ActionLaunch, Argv: []string{"rofi", "-show", "run"}}},
		{`$ sh -c "echo \"hi\" > /tmp/x"`, Action{Kind: ActionLaunch, Argv: []string{"sh", "-c", `echo "hi" > /tmp/x`}}},
		{`$ notify-send 'two words' a\ b`, Action{Kind: ActionLaunch, Argv: []string{"notify-send", "two words", "a b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tt.want.Kind || got.Workspace != tt.want.Workspace || !slices.Equal(got.Argv, tt.want.Argv) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseAction_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"", "empty action"},
		{"snap_lfet", "did you mean snap_left?"},
		{"frobnicate", "no such action: frobnicate"},
		{"workspace", "needs a workspace number"},
		{"workspace 0", "invalid workspace number"},
		{"workspace two", "invalid workspace number"},
		{"snap_left 2", "takes no argument"},
		{"$", "needs a command"},
		{"$ xterm 'unterminated", "closing quote"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseAction(tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAction_StringRoundTrips(t *testing.T) {
	for _, s := range []string{"raise_all", "workspace 2", "move_to_workspace 4", "$ xterm -e top"} {
		a, err := ParseAction(s)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", s, err)
		}
		if a.String() != s {
			t.Fatalf("expected %q, got %q", s, a.String())
		}
	}
}

func TestActionNames_AreSortedAndParse(t *testing.T) {
	names := ActionNames()
	if !slices.IsSorted(names) {
		t.Fatalf("expected sorted names, got %v", names)
	}
	for _, name := range names {
		kind := actionNames[name]
		s := name
		if kind.TakesWorkspace() {
			s += " 1"
		}
		if _, err := ParseAction(s); err != nil {
			t.Fatalf("ParseAction(%q): %v", s, err)
		}
	}
}

func TestParseBindings_ReportsEveryBadChord(t *testing.T) {
	parsed, err := ParseBindings(map[string]string{
		"Mod4-Left": "snap_left",
		"Mod4-x":    "snap_sideways",
		"Mod4-1":    "workspace",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, chord := range []string{"keybindings.Mod4-x", "keybindings.Mod4-1"} {
		if !strings.Contains(err.Error(), chord) {
			t.Fatalf("expected error to name %s, got %v", chord, err)
		}
	}
	if parsed["Mod4-Left"].Kind != ActionSnapLeft {
		t.Fatalf("expected valid bindings to be kept, got %v", parsed)
	}
}
