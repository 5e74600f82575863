// Package tui is the interactive configuration editor behind
// "snapwm config edit".
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/snapwm/internal/config"
)

// Reloader asks the running window manager to read its configuration
// again.
type Reloader interface {
	Reload() error
}

// Editor edits the common settings of a configuration file with a form,
// shows the resulting changes and saves them on confirmation.
type Editor struct {
	path   string
	reload Reloader
	out    io.Writer
}

// New creates an editor for the file at path. reload may be nil.
func New(path string, reload Reloader) *Editor {
	return &Editor{path: path, reload: reload, out: os.Stdout}
}

// Run shows the editor. Cancelling the form leaves the file untouched.
func (e *Editor) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("config edit requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		width = 80
	}

	original, err := config.LoadFromPath(e.path)
	if err != nil {
		return err
	}
	edited := original.Clone()
	f := fieldsFrom(edited)
	if err := f.form(min(width-4, 100)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(e.out, "No changes saved")
			return nil
		}
		return err
	}
	f.apply(edited)

	lines, err := computeDiffLines(original, edited)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(e.out, "No changes to save")
		return nil
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("Pending changes to " + e.path)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(renderDiff(lines, true))
	fmt.Fprintln(e.out, title)
	fmt.Fprintln(e.out, box)

	save := true
	confirm := huh.NewConfirm().
		Title("Save these changes?").
		Description("Comments in the file are not kept.").
		Affirmative("Save").
		Negative("Discard").
		Value(&save)
	if err := confirm.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			save = false
		} else {
			return err
		}
	}
	if !save {
		fmt.Fprintln(e.out, "No changes saved")
		return nil
	}

	if err := config.Save(e.path, edited); err != nil {
		return err
	}
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	fmt.Fprintln(e.out, ok.Render("Config saved"))
	if e.reload != nil {
		if err := e.reload.Reload(); err == nil {
			fmt.Fprintln(e.out, "snapwm reloaded the configuration")
		}
	}
	return nil
}
