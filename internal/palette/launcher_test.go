package palette

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	b := newRofi()

	out := b.formatItem(Item{
		Label:    "Header",
		IsHeader: true,
		Icon:     "folder",
		Info:     "info",
		Meta:     "meta",
	})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.Contains(out, "<b>Header</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold non-selectable header, got %q", out)
	}
	if !strings.Contains(out, "icon\x1ffolder") || !strings.Contains(out, "info\x1finfo") || !strings.Contains(out, "meta\x1fmeta") {
		t.Fatalf("expected icon/info/meta attributes, got %q", out)
	}
}

func TestRofiFormatItem_EscapesLabels(t *testing.T) {
	out := newRofi().formatItem(Item{Label: "a <b> & c\nd"})
	if out != "a &lt;b&gt; &amp; c d" {
		t.Fatalf("unexpected row %q", out)
	}
}

func TestDmenuFormatItem_PlainText(t *testing.T) {
	out := newDmenu().formatItem(Item{Label: "Section", IsHeader: true, Icon: "folder"})
	if out != "Section" {
		t.Fatalf("expected plain label, got %q", out)
	}
}

func TestRofiBuildArgs_RowStates(t *testing.T) {
	b := newRofi()
	_, states := b.formatInput([]Item{
		{Label: "header", IsHeader: true, IsActive: true},
		{Label: "a"},
		{Label: "b", IsActive: true},
		{Label: "c", IsUrgent: true},
	})
	args := b.buildArgs("snapwm", "Firefox: <home>", states)

	for _, want := range [][]string{
		{"-format", "i"},
		{"-a", "2"},
		{"-u", "3"},
		{"-selected-row", "2"},
		{"-p", "snapwm"},
		{"-mesg", "Firefox: &lt;home&gt;"},
	} {
		if !containsArgs(args, want[0], want[1]) {
			t.Fatalf("expected %v in %v", want, args)
		}
	}
	if !slices.Contains(args, "-no-custom") {
		t.Fatalf("expected -no-custom in %v", args)
	}
}

func TestDmenuFormatInput_DisambiguatesLabels(t *testing.T) {
	items := []Item{{Label: "Close"}, {Label: "Close"}, {Label: "Other"}}
	input, _ := newDmenu().formatInput(items)
	if input != "Close\nClose (2)\nOther" {
		t.Fatalf("unexpected input %q", input)
	}
	if items[1].Label != "Close (2)" {
		t.Fatalf("expected the selectable label to be rewritten, got %q", items[1].Label)
	}
}

func TestParseSelection(t *testing.T) {
	items := []Item{{Label: "Snap left", Action: "snap_left"}, {Label: "Snap right", Action: "snap_right"}}
	tests := []struct {
		name      string
		b         *launcher
		selection string
		want      string
		wantErr   bool
	}{
		{"rofi index", newRofi(), "1", "snap_right", false},
		{"rofi out of range", newRofi(), "5", "", true},
		{"rofi label fallback", newRofi(), "Snap left", "snap_left", false},
		{"dmenu label", newDmenu(), "Snap right", "snap_right", false},
		{"dmenu typed text", newDmenu(), "snap", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.b.parseSelection(tt.selection, items)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSelection(%q) error = %v, wantErr %v", tt.selection, err, tt.wantErr)
			}
			if got.Action != tt.want {
				t.Fatalf("parseSelection(%q) = %q, want %q", tt.selection, got.Action, tt.want)
			}
		})
	}
}

func TestShow_RunsLauncher(t *testing.T) {
	items := []Item{{Label: "a", Action: "one"}, {Label: "b", Action: "two"}}

	b := newRofi()
	b.command = writeScript(t, "cat >/dev/null\necho 1\n")
	got, err := b.Show("snapwm", items, "")
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if got.Action != "two" {
		t.Fatalf("expected the second row, got %+v", got)
	}

	b.command = writeScript(t, "cat >/dev/null\nexit 1\n")
	if _, err := b.Show("snapwm", items, ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}

	b.command = writeScript(t, "cat >/dev/null\necho broken >&2\nexit 2\n")
	if _, err := b.Show("snapwm", items, ""); err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected launcher stderr in the error, got %v", err)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("wofi"); err == nil || !strings.Contains(err.Error(), "unknown palette backend") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launcher")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func containsArgs(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
