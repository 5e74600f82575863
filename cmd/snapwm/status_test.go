package main

import (
	"strings"
	"testing"

	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/wm"
)

func TestRenderStatus_Plain(t *testing.T) {
	st := &wm.Status{
		Workspaces:   4,
		UrgentSpaces: []int{2},
		Monitors: []wm.MonitorStatus{
			{Index: 0, Name: "DP-1", Primary: true, Current: true, Bounds: geometry.Rect{Width: 1920, Height: 1080}, WorkArea: geometry.Rect{Y: 30, Width: 1920, Height: 1050}},
		},
		Clients: []wm.ClientStatus{
			{ID: 0x400001, Class: "Alacritty", Name: "shell", Geometry: geometry.Rect{Y: 30, Width: 960, Height: 1050}, Snap: "left", Focused: true},
			{ID: 0x400002, Class: "conky", Meta: true},
		},
	}
	out := renderStatus(st, false)

	for _, want := range []string{
		"DP-1*",
		"1920x1050+0+30",
		"Workspaces: 4  urgent: 3",
		"0x400001",
		"960x1050+0+30",
		"left",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences in plain output:\n%s", out)
	}
}

func TestRenderStatus_NoWindows(t *testing.T) {
	out := renderStatus(&wm.Status{Workspaces: 1}, false)
	if !strings.Contains(out, "no managed windows") {
		t.Fatalf("expected empty window notice, got:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 5, "much…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
