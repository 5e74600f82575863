// Package mcp exposes the window manager to MCP clients over stdio. Every
// tool is a request on the control socket of the running daemon.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/snapwm/internal/wm"
)

const ServerName = "snapwm"

// Controller is the part of the IPC client the tools use.
type Controller interface {
	GetStatus() (*wm.Status, error)
	RunAction(action string) error
}

// Server is the MCP server.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
}

// NewServer creates a server whose tools talk to ctl.
func NewServer(ctl Controller, version string) *Server {
	s := &Server{ctl: ctl}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: version,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows managed by snapwm with their monitor, workspace, geometry and snap state. Filter by monitor or workspace, or restrict to the visible ones.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the monitors with their bounds, the work area left by docks and padding, and the active workspace of each.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Run a window manager action as if its key binding was pressed, e.g. snap_left, maximize, workspace 2 or move_to_next_monitor. Actions that act on a window apply to the focused one.",
	}, s.handleRunAction)
}

func (s *Server) status() (*wm.Status, error) {
	st, err := s.ctl.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("snapwm is not reachable: %w", err)
	}
	return st, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	st, err := s.status()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	active := make(map[int]int, len(st.Monitors))
	for _, m := range st.Monitors {
		active[m.Index] = m.Workspace
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(st.Clients))}
	for _, c := range st.Clients {
		if args.Monitor != nil && c.Monitor != *args.Monitor {
			continue
		}
		if args.Workspace != nil && c.Workspace != *args.Workspace-1 {
			continue
		}
		visible := !c.Minimized && (c.Meta || c.Workspace == active[c.Monitor])
		if args.VisibleOnly && !visible {
			continue
		}
		out.Windows = append(out.Windows, WindowInfo{
			ID:        fmt.Sprintf("0x%x", c.ID),
			Class:     c.Class,
			Title:     c.Name,
			Monitor:   c.Monitor,
			Workspace: c.Workspace + 1,
			X:         c.Geometry.X,
			Y:         c.Geometry.Y,
			Width:     c.Geometry.Width,
			Height:    c.Geometry.Height,
			Snap:      c.Snap,
			Focused:   c.Focused,
			Minimized: c.Minimized,
			Urgent:    c.Urgent,
			Visible:   visible,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	st, err := s.status()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	out := ListMonitorsOutput{
		Workspaces: st.Workspaces,
		Monitors:   make([]MonitorInfo, 0, len(st.Monitors)),
	}
	for _, m := range st.Monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			Index:     m.Index,
			Name:      m.Name,
			Primary:   m.Primary,
			Current:   m.Current,
			Bounds:    rectInfo(m.Bounds.X, m.Bounds.Y, m.Bounds.Width, m.Bounds.Height),
			WorkArea:  rectInfo(m.WorkArea.X, m.WorkArea.Y, m.WorkArea.Width, m.WorkArea.Height),
			Workspace: m.Workspace + 1,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, RunActionOutput, error) {
	action, err := wm.ParseAction(args.Action)
	if err != nil {
		return nil, RunActionOutput{}, err
	}
	switch action.Kind {
	case wm.ActionQuit, wm.ActionLaunch:
		return nil, RunActionOutput{}, fmt.Errorf("%s is not available over MCP", action.Kind)
	}
	if err := s.ctl.RunAction(args.Action); err != nil {
		return nil, RunActionOutput{}, err
	}
	return nil, RunActionOutput{Action: action.String(), OK: true}, nil
}

func rectInfo(x, y, w, h int) RectInfo {
	return RectInfo{X: x, Y: y, Width: w, Height: h}
}
