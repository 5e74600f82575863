package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Monitor     *int `json:"monitor,omitempty" jsonschema:"Only windows on this monitor index"`
	Workspace   *int `json:"workspace,omitempty" jsonschema:"Only windows on this workspace, counting from 1"`
	VisibleOnly bool `json:"visible_only,omitempty" jsonschema:"Only windows currently shown"`
}

// WindowInfo describes a single managed window.
type WindowInfo struct {
	ID        string `json:"id"`
	Class     string `json:"class"`
	Title     string `json:"title"`
	Monitor   int    `json:"monitor"`
	Workspace int    `json:"workspace"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Snap      string `json:"snap"`
	Focused   bool   `json:"focused"`
	Minimized bool   `json:"minimized"`
	Urgent    bool   `json:"urgent"`
	Visible   bool   `json:"visible"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// RectInfo is a rectangle in root window coordinates.
type RectInfo struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MonitorInfo describes one monitor.
type MonitorInfo struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Primary   bool     `json:"primary"`
	Current   bool     `json:"current"`
	Bounds    RectInfo `json:"bounds"`
	WorkArea  RectInfo `json:"work_area"`
	Workspace int      `json:"workspace"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Workspaces int           `json:"workspaces"`
	Monitors   []MonitorInfo `json:"monitors"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"Action name with its argument, e.g. snap_left or workspace 2"`
}

// RunActionOutput is the output for the run_action tool.
type RunActionOutput struct {
	Action string `json:"action"`
	OK     bool   `json:"ok"`
}
