package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Validates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.Workspaces != DefaultWorkspaces || cfg.DoubleClickTime != DefaultDoubleClickTime {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.SplitHandles.Size != DefaultHandleSize {
		t.Fatalf("expected default handle size, got %d", cfg.SplitHandles.Size)
	}
}

func TestLoadFromPath_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
workspaces: 2
gap: 8
padding:
  top: 30
split_handles:
  vertical_sticky: [33, 50, 66]
keybindings:
  Mod4-t: "$ alacritty -e htop"
  Mod4-h: none
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.Workspaces != 2 || cfg.Gap != 8 || cfg.Padding.Top != 30 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.SplitHandles.Size != DefaultHandleSize || cfg.SplitHandles.MinSplitSize != DefaultMinSplitSize {
		t.Fatalf("expected untouched split handle defaults, got %+v", cfg.SplitHandles)
	}
	if len(cfg.SplitHandles.VerticalSticky) != 3 {
		t.Fatalf("expected sticky list to be replaced, got %v", cfg.SplitHandles.VerticalSticky)
	}

	bindings := cfg.Bindings()
	if bindings["Mod4-t"] != "$ alacritty -e htop" {
		t.Fatalf("expected added binding, got %q", bindings["Mod4-t"])
	}
	if _, ok := bindings["Mod4-h"]; ok {
		t.Fatalf("expected Mod4-h to be unbound")
	}
	if bindings["Mod4-Left"] != "snap_left" {
		t.Fatalf("expected default bindings to survive, got %q", bindings["Mod4-Left"])
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gaps: 3\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspaces = 0
	cfg.Gap = -1
	cfg.Colors.Urgent = "red"
	cfg.SplitHandles.VerticalSticky = []int{150}
	cfg.LogLevel = "loud"
	cfg.PaletteBackend = "wofi"
	cfg.GridResize.Enabled = true
	cfg.GridResize.Command = nil
	cfg.GridResize.Rows = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected error to wrap ErrInvalid, got %v", err)
	}
	for _, path := range []string{"workspaces", "gap", "colors.urgent", "split_handles.vertical_sticky[0]", "log_level", "palette_backend", "grid_resize", "grid_resize.command"} {
		if !strings.Contains(err.Error(), path+":") {
			t.Fatalf("expected %q in %v", path, err)
		}
	}

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Path != "colors.urgent" {
		t.Fatalf("expected the first error in path order, got %+v", ve)
	}
}

func TestLoadFromPath_ValidationErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("border: -2\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadFromPath(path)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.File != path || ve.Path != "border" {
		t.Fatalf("unexpected error location %+v", ve)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "#5294e2", want: 0x5294e2},
		{in: "#FFFFFF", want: 0xffffff},
		{in: "5294e2", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseColor(%q) = %06x, want %06x", tt.in, got, tt.want)
		}
	}
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDefault(&buf); err != nil {
		t.Fatalf("WriteDefault returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("default config does not load back: %v", err)
	}
}

func TestSave_WritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapwm", "config.yaml")
	cfg := DefaultConfig()
	cfg.Gap = 12
	cfg.Keybindings["Mod4-Return"] = "$ alacritty"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("saved config does not load back: %v", err)
	}
	if loaded.Gap != 12 || loaded.Keybindings["Mod4-Return"] != "$ alacritty" {
		t.Fatalf("unexpected config after save: gap=%d binding=%q", loaded.Gap, loaded.Keybindings["Mod4-Return"])
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the config file, found %d entries", len(entries))
	}
}

func TestSave_RefusesInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Workspaces = 0
	if err := Save(path, cfg); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written, stat returned %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetaWindowClasses = []string{"conky"}
	clone := cfg.Clone()
	clone.MetaWindowClasses[0] = "tint2"
	clone.Keybindings["Mod4-x"] = "quit"
	clone.SplitHandles.VerticalSticky = append(clone.SplitHandles.VerticalSticky[:0], 10)
	clone.GridResize.Command[0] = "other"

	if cfg.MetaWindowClasses[0] != "conky" {
		t.Fatalf("clone shares meta window classes")
	}
	if _, ok := cfg.Keybindings["Mod4-x"]; ok {
		t.Fatalf("clone shares key bindings")
	}
	if len(cfg.SplitHandles.VerticalSticky) > 0 && cfg.SplitHandles.VerticalSticky[0] == 10 {
		t.Fatalf("clone shares sticky points")
	}
	if cfg.GridResize.Command[0] != "grid-resize" {
		t.Fatalf("clone shares the grid resize command")
	}
}

func TestWatch_NotifiesOnRenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("gap: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 1)
	if err := Watch(ctx, path, changed); err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}

	tmp := filepath.Join(dir, ".config.yaml.swp")
	if err := os.WriteFile(tmp, []byte("gap: 2\n"), 0644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a change notification")
	}
}
