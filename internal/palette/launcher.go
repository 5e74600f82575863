package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindDmenu
)

// launcher runs a dmenu compatible program with the rows on stdin.
type launcher struct {
	command string
	kind    launcherKind
	caps    Capabilities
}

type rowStates struct {
	active         []int
	urgent         []int
	selectedRow    int
	hasSelectedRow bool
}

func newRofi() *launcher {
	return &launcher{
		command: "rofi",
		kind:    kindRofi,
		caps: Capabilities{
			Icons:         true,
			Markup:        true,
			NonSelectable: true,
			IndexOutput:   true,
			MessageBar:    true,
			RowStates:     true,
		},
	}
}

func newDmenu() *launcher {
	return &launcher{command: "dmenu", kind: kindDmenu}
}

func (b *launcher) Capabilities() Capabilities {
	return b.caps
}

func (b *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	rows := make([]Item, len(items))
	copy(rows, items)
	input, states := b.formatInput(rows)

	cmd := exec.Command(b.command, b.buildArgs(prompt, message, states)...)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", b.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return b.parseSelection(selection, rows)
}

func (b *launcher) buildArgs(prompt, message string, states rowStates) []string {
	if b.kind == kindDmenu {
		args := []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}

	// The index output keeps selection parsing independent of the labels.
	args := []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
	if prompt != "" {
		args = append(args, "-p", prompt)
	}
	if len(states.active) > 0 {
		args = append(args, "-a", formatIndices(states.active))
	}
	if len(states.urgent) > 0 {
		args = append(args, "-u", formatIndices(states.urgent))
	}
	if states.hasSelectedRow {
		args = append(args, "-selected-row", strconv.Itoa(states.selectedRow))
	}
	if message != "" {
		args = append(args, "-mesg", html.EscapeString(message))
	}
	return args
}

func (b *launcher) formatInput(items []Item) (string, rowStates) {
	// Launchers that print the selected text need unique labels.
	if !b.caps.IndexOutput {
		seen := make(map[string]int)
		for i := range items {
			if items[i].IsHeader || items[i].IsDivider {
				continue
			}
			key := sanitizeLabel(items[i].Label)
			if count := seen[key]; count > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	var states rowStates
	firstSelectable, firstActive := -1, -1
	for i, item := range items {
		lines = append(lines, b.formatItem(item))
		if item.IsHeader || item.IsDivider {
			continue
		}
		if firstSelectable == -1 {
			firstSelectable = i
		}
		if item.IsActive && firstActive == -1 {
			firstActive = i
		}
		if b.caps.RowStates {
			if item.IsActive {
				states.active = append(states.active, i)
			}
			if item.IsUrgent {
				states.urgent = append(states.urgent, i)
			}
		}
	}

	switch {
	case firstActive != -1:
		states.selectedRow, states.hasSelectedRow = firstActive, true
	case firstSelectable != -1:
		states.selectedRow, states.hasSelectedRow = firstSelectable, true
	}
	return strings.Join(lines, "\n"), states
}

func (b *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if !b.caps.Markup {
		return display
	}
	display = html.EscapeString(display)
	switch {
	case item.IsHeader:
		display = "<b>" + display + "</b>"
	case item.IsDivider:
		display = "<span foreground='#666666'>" + display + "</span>"
	}

	// Row properties follow a single NUL as key\x1fvalue pairs.
	var attrs []string
	if (item.IsHeader || item.IsDivider) && b.caps.NonSelectable {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" && b.caps.Icons {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Info != "" {
		attrs = append(attrs, "info", sanitizeRofiField(item.Info))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if b.caps.IndexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func formatIndices(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}

// isCancelExit reports the exit codes launchers use for Escape (1) and
// Ctrl+C (130).
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}
