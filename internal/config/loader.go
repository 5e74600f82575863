package config

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWorkspaces      = 4
	DefaultDoubleClickTime = 500
	DefaultHandleSize      = 10
	DefaultMinSplitSize    = 10
)

// DefaultConfig returns the configuration used when no file exists. Keys
// missing from a file keep these values.
func DefaultConfig() *Config {
	return &Config{
		Workspaces:          DefaultWorkspaces,
		Gap:                 4,
		Border:              1,
		DoubleClickTime:     DefaultDoubleClickTime,
		DoubleClickDistance: 4,
		MetaWindowClasses:   []string{},
		Modifier:            "Mod4",
		MinWindowSize:       Size{Width: 160, Height: 90},
		SmartPlacement:      true,
		SplitHandles: SplitHandles{
			Size:             DefaultHandleSize,
			VerticalSticky:   []int{50},
			HorizontalSticky: []int{50},
			MinSplitSize:     DefaultMinSplitSize,
		},
		GridResize: GridResize{
			Command: []string{"grid-resize"},
			Columns: 16,
			Rows:    9,
		},
		Colors: Colors{
			Focused:   "#5294e2",
			Unfocused: "#383c4a",
			Urgent:    "#e25252",
			Preview:   "#5294e2",
		},
		Keybindings: defaultKeybindings(),
		Volume: Volume{
			Increase: []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "+5%"},
			Decrease: []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "-5%"},
			Mute:     []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle"},
		},
		PaletteBackend:    "auto",
		ReconcileInterval: 5,
		LogLevel:          "info",
	}
}

func defaultKeybindings() map[string]string {
	b := map[string]string{
		"Mod4-Left":            "snap_left",
		"Mod4-Right":           "snap_right",
		"Mod4-Up":              "snap_up",
		"Mod4-Down":            "snap_down",
		"Mod4-f":               "toggle_maximize",
		"Mod4-c":               "unsnap_or_center",
		"Mod4-h":               "minimize",
		"Mod4-r":               "raise_all",
		"Mod4-q":               "close_window",
		"Mod4-Shift-q":         "quit",
		"Mod4-Shift-r":         "reload",
		"Mod4-Shift-Left":      "move_to_prev_monitor",
		"Mod4-Shift-Right":     "move_to_next_monitor",
		"Mod1-Tab":             "switch_window",
		"Mod1-Shift-Tab":       "switch_window_reverse",
		"Mod4-Return":          "$ x-terminal-emulator",
		"XF86AudioRaiseVolume": "increase_volume",
		"XF86AudioLowerVolume": "decrease_volume",
		"XF86AudioMute":        "mute_volume",
	}
	for i := 1; i <= DefaultWorkspaces; i++ {
		b[fmt.Sprintf("Mod4-%d", i)] = fmt.Sprintf("workspace %d", i)
		b[fmt.Sprintf("Mod4-Shift-%d", i)] = fmt.Sprintf("move_to_workspace %d", i)
	}
	return b
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/snapwm/config.yaml, falling
// back to ~/.config/snapwm/config.yaml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "snapwm", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snapwm", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the file at path over the defaults and validates the
// result. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, attachFile(err, path)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration as YAML.
func WriteDefault(w io.Writer) error {
	if err := encodeYAML(w, DefaultConfig()); err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	return nil
}

// Save validates cfg and writes it to path. The file is replaced in one
// rename, so a watching daemon never reads it half written. Comments in
// the previous file are lost.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return attachFile(err, path)
	}
	var buf bytes.Buffer
	if err := encodeYAML(&buf, cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.MetaWindowClasses = slices.Clone(c.MetaWindowClasses)
	out.SplitHandles.VerticalSticky = slices.Clone(c.SplitHandles.VerticalSticky)
	out.SplitHandles.HorizontalSticky = slices.Clone(c.SplitHandles.HorizontalSticky)
	out.Keybindings = maps.Clone(c.Keybindings)
	out.Volume.Increase = slices.Clone(c.Volume.Increase)
	out.Volume.Decrease = slices.Clone(c.Volume.Decrease)
	out.Volume.Mute = slices.Clone(c.Volume.Mute)
	out.GridResize.Command = slices.Clone(c.GridResize.Command)
	return &out
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
