package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snapwm/internal/geometry"
	"github.com/1broseidon/snapwm/internal/wm"
)

type statusStyles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	current lipgloss.Style
	focused lipgloss.Style
	urgent  lipgloss.Style
	dim     lipgloss.Style
}

func newStatusStyles(styled bool) statusStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return statusStyles{plain, plain, plain, plain, plain, plain}
	}
	return statusStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		current: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		urgent:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// renderStatus formats a status snapshot as two tables. Workspaces are
// shown counting from 1.
func renderStatus(st *wm.Status, styled bool) string {
	s := newStatusStyles(styled)
	var b strings.Builder

	fmt.Fprintln(&b, s.title.Render("Monitors"))
	fmt.Fprintln(&b, s.header.Render(fmt.Sprintf("  %-3s %-12s %-20s %-20s %s", "#", "NAME", "BOUNDS", "WORK AREA", "WORKSPACE")))
	for _, m := range st.Monitors {
		name := m.Name
		if m.Primary {
			name += "*"
		}
		line := fmt.Sprintf("  %-3d %-12s %-20s %-20s %d", m.Index, name, formatRect(m.Bounds), formatRect(m.WorkArea), m.Workspace+1)
		if m.Current {
			line = s.current.Render(line)
		}
		fmt.Fprintln(&b, line)
	}

	urgent := make([]string, 0, len(st.UrgentSpaces))
	for _, ws := range st.UrgentSpaces {
		urgent = append(urgent, fmt.Sprint(ws+1))
	}
	summary := fmt.Sprintf("Workspaces: %d", st.Workspaces)
	if len(urgent) > 0 {
		summary += "  " + s.urgent.Render("urgent: "+strings.Join(urgent, ","))
	}
	if st.Dragging != "" {
		summary += "  dragging: " + st.Dragging
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, summary)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, s.title.Render("Windows"))
	if len(st.Clients) == 0 {
		fmt.Fprintln(&b, s.dim.Render("  no managed windows"))
		return b.String()
	}
	fmt.Fprintln(&b, s.header.Render(fmt.Sprintf("  %-10s %-16s %-3s %-3s %-12s %-20s %s", "ID", "CLASS", "MON", "WS", "SNAP", "GEOMETRY", "TITLE")))
	for _, c := range st.Clients {
		ws := fmt.Sprint(c.Workspace + 1)
		if c.Meta {
			ws = "*"
		}
		snap := c.Snap
		if c.Minimized {
			snap = "minimized"
		}
		line := fmt.Sprintf("  0x%-8x %-16s %-3d %-3s %-12s %-20s %s",
			c.ID, truncate(c.Class, 16), c.Monitor, ws, snap, formatRect(c.Geometry), truncate(c.Name, 40))
		switch {
		case c.Urgent:
			line = s.urgent.Render(line)
		case c.Focused:
			line = s.focused.Render(line)
		case c.Minimized:
			line = s.dim.Render(line)
		}
		fmt.Fprintln(&b, line)
	}
	return b.String()
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
