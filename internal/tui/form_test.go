package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/snapwm/internal/config"
)

func TestFields_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MetaWindowClasses = []string{"conky", "tint2"}
	edited := cfg.Clone()
	fieldsFrom(cfg).apply(edited)

	lines, err := computeDiffLines(cfg, edited)
	if err != nil {
		t.Fatalf("computeDiffLines failed: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected an unedited form to change nothing, got %+v", lines)
	}
}

func TestFields_Apply(t *testing.T) {
	cfg := config.DefaultConfig()
	f := fieldsFrom(cfg)
	f.gap = " 12 "
	f.paddingLeft = "30"
	f.metaClasses = "conky, , tint2"
	f.edgeSnap = !cfg.EdgeSnap
	f.preview = " #ff0000 "
	f.apply(cfg)

	if cfg.Gap != 12 || cfg.Padding.Left != 30 {
		t.Fatalf("unexpected numbers gap=%d padding.left=%d", cfg.Gap, cfg.Padding.Left)
	}
	if !slices.Equal(cfg.MetaWindowClasses, []string{"conky", "tint2"}) {
		t.Fatalf("unexpected meta classes %v", cfg.MetaWindowClasses)
	}
	if cfg.Colors.Preview != "#ff0000" {
		t.Fatalf("unexpected preview color %q", cfg.Colors.Preview)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("edited config does not validate: %v", err)
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		lo, hi int
		in     string
		ok     bool
	}{
		{1, 32, "4", true},
		{1, 32, "0", false},
		{1, 32, "33", false},
		{0, 0, "250", true},
		{0, 0, "-1", false},
		{0, 0, "ten", false},
	}
	for _, tt := range tests {
		err := validateCount(tt.lo, tt.hi)(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("validateCount(%d, %d)(%q) = %v, want ok=%v", tt.lo, tt.hi, tt.in, err, tt.ok)
		}
	}
}

func TestWithCurrent(t *testing.T) {
	if got := withCurrent(modifierOptions, "Mod4"); len(got) != len(modifierOptions) {
		t.Fatalf("expected known modifier to keep the options, got %d", len(got))
	}
	got := withCurrent(modifierOptions, "Mod3")
	if len(got) != len(modifierOptions)+1 || got[len(got)-1] != huh.NewOption("Mod3", "Mod3") {
		t.Fatalf("expected Mod3 to be appended, got %+v", got)
	}
	if len(modifierOptions) != 3 {
		t.Fatalf("withCurrent changed the shared options")
	}
}
