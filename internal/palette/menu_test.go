package palette

import (
	"errors"
	"testing"
)

// scriptedBackend picks rows by label, one label per Show call.
type scriptedBackend struct {
	picks   []string
	prompts []string
	shown   [][]Item
}

func (b *scriptedBackend) Capabilities() Capabilities { return Capabilities{} }

func (b *scriptedBackend) Show(prompt string, items []Item, message string) (Item, error) {
	b.prompts = append(b.prompts, prompt)
	b.shown = append(b.shown, items)
	if len(b.picks) == 0 {
		return Item{}, ErrCancelled
	}
	pick := b.picks[0]
	b.picks = b.picks[1:]
	for _, it := range items {
		if it.Label == pick {
			return it, nil
		}
	}
	return Item{}, errors.New("no row " + pick)
}

func testTree() []MenuItem {
	return []MenuItem{
		{Label: "Window", Submenu: []MenuItem{
			{Label: "Snap left", Action: "snap_left"},
			{Label: "Close", Action: "close_window"},
		}},
		{Label: "----", IsDivider: true},
		{Label: "Reload", Action: "reload"},
	}
}

func TestMenu_SelectsLeafInSubmenu(t *testing.T) {
	b := &scriptedBackend{picks: []string{"Window →", "Close"}}
	action, err := NewMenu(b, "snapwm", testTree()).Show()
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if action != "close_window" {
		t.Fatalf("expected close_window, got %q", action)
	}
	if len(b.prompts) != 2 || b.prompts[0] != "snapwm" || b.prompts[1] != "Window" {
		t.Fatalf("unexpected prompts %v", b.prompts)
	}
	if b.shown[1][0].Action != backAction {
		t.Fatalf("expected a back row first in the submenu, got %+v", b.shown[1][0])
	}
}

func TestMenu_BackAndCancel(t *testing.T) {
	tests := []struct {
		name  string
		picks []string
		want  string
		err   error
		shows int
	}{
		{"back returns to parent", []string{"Window →", "← Back", "Reload"}, "reload", nil, 3},
		{"cancel in submenu returns to parent", []string{"Window →"}, "", ErrCancelled, 3},
		{"divider is shown again", []string{"----", "Reload"}, "reload", nil, 2},
		{"cancel at top level", nil, "", ErrCancelled, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &scriptedBackend{picks: tt.picks}
			action, err := NewMenu(b, "snapwm", testTree()).Show()
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if action != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, action)
			}
			if len(b.shown) != tt.shows {
				t.Fatalf("expected %d launcher runs, got %d", tt.shows, len(b.shown))
			}
		})
	}
}
