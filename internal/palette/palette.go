// Package palette shows snapwm actions in an external launcher such as
// rofi or dmenu and runs the one the user picks.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single row of a palette.
type Item struct {
	Label     string // Display text
	Action    string // Returned on selection
	Icon      string // Icon name for rofi -show-icons
	Info      string // Hidden data passed through rofi
	Meta      string // Hidden search keywords
	IsHeader  bool   // Non-selectable section header
	IsDivider bool   // Non-selectable divider line
	IsActive  bool
	IsUrgent  bool
}

// Capabilities describes what a launcher supports.
type Capabilities struct {
	Icons         bool // Supports icon display
	Markup        bool // Supports pango markup in labels
	NonSelectable bool // Supports non-selectable rows
	IndexOutput   bool // Prints the selected row index instead of its text
	MessageBar    bool // Shows a message above the rows
	RowStates     bool // Highlights active and urgent rows
}

// Backend shows a palette and returns the selected item.
type Backend interface {
	// Show displays items under prompt. message is shown when the
	// launcher has a message bar.
	Show(prompt string, items []Item, message string) (Item, error)
	Capabilities() Capabilities
}

// backendNames lists the launchers in detection order.
var backendNames = []string{"rofi", "dmenu"}

// DetectBackend returns the first launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range backendNames {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(backendNames, ", "))
}

// NewBackend creates a backend by name: auto, rofi or dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	var b *launcher
	switch name {
	case "rofi":
		b = newRofi()
	case "dmenu":
		b = newDmenu()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(backendNames, ", "))
	}
	if _, err := exec.LookPath(b.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", b.command)
	}
	return b, nil
}
