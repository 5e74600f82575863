package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// Padding is space kept free along the edges of a monitor.
type Padding struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SplitHandles configures the draggable boundaries between snapped windows.
type SplitHandles struct {
	// Size is the thickness of a handle and the distance within which a
	// dragged boundary sticks to a sticky point.
	Size int `yaml:"size"`
	// VerticalSticky and HorizontalSticky are positions in percent of the
	// work area.
	VerticalSticky   []int `yaml:"vertical_sticky"`
	HorizontalSticky []int `yaml:"horizontal_sticky"`
	// MinSplitSize keeps every boundary this many percent away from the
	// work area edges.
	MinSplitSize int `yaml:"min_split_size"`
}

// Colors are the border and preview colors as #rrggbb.
type Colors struct {
	Focused   string `yaml:"focused"`
	Unfocused string `yaml:"unfocused"`
	Urgent    string `yaml:"urgent"`
	Preview   string `yaml:"preview"`
}

// Volume holds the commands run by the volume actions.
type Volume struct {
	Increase []string `yaml:"increase"`
	Decrease []string `yaml:"decrease"`
	Mute     []string `yaml:"mute"`
}

// GridResize hands interactive resizes to an external grid selection
// tool such as grid-resize.
type GridResize struct {
	Enabled bool `yaml:"enabled"`
	// Command is started with the window id, the work area as x,y,w,h, the
	// grid as columns,rows and the focus color appended.
	Command []string `yaml:"command"`
	Columns int      `yaml:"columns"`
	Rows    int      `yaml:"rows"`
	// Live asks the tool to resize while the selection changes.
	Live bool `yaml:"live"`
}

// Config is the window manager configuration.
type Config struct {
	Workspaces       int     `yaml:"workspaces"`
	Gap              int     `yaml:"gap"`
	Border           int     `yaml:"border"`
	Padding          Padding `yaml:"padding"`
	SecondaryPadding Padding `yaml:"secondary_padding"`
	// BarHeight is reserved at the top of the primary monitor for an
	// external status bar.
	BarHeight int `yaml:"bar_height"`

	DoubleClickTime     int `yaml:"double_click_time"` // milliseconds
	DoubleClickDistance int `yaml:"double_click_distance"`

	// MetaWindowClasses are WM_CLASS names shown on every workspace and
	// never focused.
	MetaWindowClasses []string `yaml:"meta_window_classes"`

	// Modifier is held to drag windows with the mouse: button 1 moves and
	// button 3 resizes.
	Modifier      string `yaml:"modifier"`
	MinWindowSize Size   `yaml:"min_window_size"`
	// EdgeSnap snaps a dragged window when the pointer touches an edge of
	// the work area, without the snap modifier.
	EdgeSnap       bool         `yaml:"edge_snap"`
	SmartPlacement bool         `yaml:"smart_placement"`
	SplitHandles   SplitHandles `yaml:"split_handles"`
	GridResize     GridResize   `yaml:"grid_resize"`
	Colors         Colors       `yaml:"colors"`

	// Keybindings maps key chords such as "Mod4-Left" to action names. An
	// empty action or "none" removes a default binding.
	Keybindings map[string]string `yaml:"keybindings"`
	Volume      Volume            `yaml:"volume"`

	// PaletteBackend is the launcher behind "snapwm palette": auto, rofi
	// or dmenu.
	PaletteBackend string `yaml:"palette_backend"`

	// ReconcileInterval is how often, in seconds, the monitor layout and the
	// client list are checked against the server. 0 disables it.
	ReconcileInterval int    `yaml:"reconcile_interval"`
	LogLevel          string `yaml:"log_level"`
}

// DoubleClick returns the double click timeout.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickTime) * time.Millisecond
}

// Reconcile returns the reconcile period, 0 when disabled.
func (c *Config) Reconcile() time.Duration {
	return time.Duration(c.ReconcileInterval) * time.Second
}

// Bindings returns the active key bindings, without removed ones.
func (c *Config) Bindings() map[string]string {
	out := make(map[string]string, len(c.Keybindings))
	for chord, action := range c.Keybindings {
		action = strings.TrimSpace(action)
		if action == "" || action == "none" {
			continue
		}
		out[chord] = action
	}
	return out
}

// Validate checks the whole configuration and reports every problem found,
// joined into one error.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
	}

	if c.Workspaces < 1 || c.Workspaces > 32 {
		fail("workspaces", "workspaces must be between 1 and 32")
	}
	if c.Gap < 0 {
		fail("gap", "gap must be >= 0")
	}
	if c.Border < 0 {
		fail("border", "border must be >= 0")
	}
	if !c.Padding.valid() {
		fail("padding", "padding values must be >= 0")
	}
	if !c.SecondaryPadding.valid() {
		fail("secondary_padding", "secondary_padding values must be >= 0")
	}
	if c.BarHeight < 0 {
		fail("bar_height", "bar_height must be >= 0")
	}
	if c.DoubleClickTime < 0 {
		fail("double_click_time", "double_click_time must be >= 0")
	}
	if c.DoubleClickDistance < 0 {
		fail("double_click_distance", "double_click_distance must be >= 0")
	}
	for i, class := range c.MetaWindowClasses {
		if strings.TrimSpace(class) == "" {
			fail(fmt.Sprintf("meta_window_classes[%d]", i), "class name must not be empty")
		}
	}
	if strings.TrimSpace(c.Modifier) == "" {
		fail("modifier", "modifier is required")
	}
	if c.MinWindowSize.Width < 1 || c.MinWindowSize.Height < 1 {
		fail("min_window_size", "min_window_size width and height must be >= 1")
	}

	h := c.SplitHandles
	if h.Size < 1 {
		fail("split_handles.size", "size must be >= 1")
	}
	if h.MinSplitSize < 0 || h.MinSplitSize >= 50 {
		fail("split_handles.min_split_size", "min_split_size must be between 0 and 49")
	}
	for i, p := range h.VerticalSticky {
		if p <= 0 || p >= 100 {
			fail(fmt.Sprintf("split_handles.vertical_sticky[%d]", i), "sticky points must be between 1 and 99 percent")
		}
	}
	for i, p := range h.HorizontalSticky {
		if p <= 0 || p >= 100 {
			fail(fmt.Sprintf("split_handles.horizontal_sticky[%d]", i), "sticky points must be between 1 and 99 percent")
		}
	}

	if g := c.GridResize; g.Columns < 1 || g.Rows < 1 {
		fail("grid_resize", "grid_resize columns and rows must be >= 1")
	}
	if c.GridResize.Enabled && len(c.GridResize.Command) == 0 {
		fail("grid_resize.command", "command is required when grid_resize is enabled")
	}

	for name, value := range map[string]string{
		"colors.focused":   c.Colors.Focused,
		"colors.unfocused": c.Colors.Unfocused,
		"colors.urgent":    c.Colors.Urgent,
		"colors.preview":   c.Colors.Preview,
	} {
		if _, err := ParseColor(value); err != nil {
			fail(name, "%v", err)
		}
	}

	for chord := range c.Keybindings {
		if strings.TrimSpace(chord) == "" {
			fail("keybindings", "keybindings contains an empty key chord")
		}
	}

	switch c.PaletteBackend {
	case "auto", "rofi", "dmenu":
	default:
		fail("palette_backend", "palette_backend must be one of: auto, rofi, dmenu")
	}

	if c.ReconcileInterval < 0 {
		fail("reconcile_interval", "reconcile_interval must be >= 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		fail("log_level", "log_level must be one of: debug, info, warning, error")
	}

	sortValidationErrors(errs)
	return errors.Join(errs...)
}

func (p Padding) valid() bool {
	return p.Top >= 0 && p.Bottom >= 0 && p.Left >= 0 && p.Right >= 0
}

// ParseColor parses a #rrggbb color into its 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("color %q must be written as #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q must be written as #rrggbb", s)
	}
	return uint32(v), nil
}
