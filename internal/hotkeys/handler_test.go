package hotkeys

import (
	"slices"
	"testing"

	"github.com/1broseidon/snapwm/internal/drag"
)

func TestIgnoreMasks(t *testing.T) {
	tests := []struct {
		name       string
		numLock    uint16
		scrollLock uint16
		want       []uint16
	}{
		{"caps only", 0, 0, []uint16{0, 2}},
		{"caps and numlock", 16, 0, []uint16{0, 2, 16, 18}},
		{"all three", 16, 128, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
		{"numlock mapped like caps", 2, 0, []uint16{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreMasks(2, tt.numLock, tt.scrollLock)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsModifierKey(t *testing.T) {
	for _, sym := range []string{"Alt_L", "Super_R", "Control_L"} {
		if !isModifierKey(sym) {
			t.Fatalf("expected %s to end a chord", sym)
		}
	}
	for _, sym := range []string{"Shift_L", "Tab", "a", ""} {
		if isModifierKey(sym) {
			t.Fatalf("expected %s not to end a chord", sym)
		}
	}
}

func TestButtonBindings(t *testing.T) {
	got := buttonBindings("Mod4")
	want := []buttonBinding{
		{"Mod4-1", drag.KindMove},
		{"Mod4-Shift-1", drag.KindMove},
		{"Mod4-3", drag.KindResize},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
