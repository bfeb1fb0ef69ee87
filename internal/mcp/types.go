package mcp

// GetLayoutInput is the input for the get_layout tool.
type GetLayoutInput struct {
	Display *int `json:"display,omitempty" jsonschema:"Only report this display ID (default: every display)"`
	Debug   bool `json:"debug,omitempty" jsonschema:"Include the indented tree dump with fractional geometry"`
}

// WindowPlacement is one tiled window's rectangle.
type WindowPlacement struct {
	WindowID  uint32 `json:"window_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Focused   bool   `json:"focused"`
	Minimized bool   `json:"minimized"`
	Fixed     bool   `json:"fixed"`
}

// DisplayLayout describes one display's tree.
type DisplayLayout struct {
	Display  int               `json:"display"`
	Shape    string            `json:"shape"`
	AddMode  string            `json:"add_mode"`
	Mementos int               `json:"mementos"`
	Windows  []WindowPlacement `json:"windows"`
	Debug    string            `json:"debug,omitempty"`
}

// GetLayoutOutput is the output for the get_layout tool.
type GetLayoutOutput struct {
	Displays []DisplayLayout `json:"displays"`
}

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Command string `json:"command" jsonschema:"required,Layout command, e.g. 'focus left', 'move right', 'integrate up', 'swap down', 'mode vertical', 'width 600', 'grow -50', 'reset-size', 'minimize', 'close', 'retile'"`
}

// RunCommandOutput is the output for the run_command tool.
type RunCommandOutput struct {
	Command  string          `json:"command"`
	Displays []DisplayLayout `json:"displays"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Class string `json:"class,omitempty" jsonschema:"Only list windows whose WM_CLASS matches (case-insensitive)"`
}

// WindowEntry describes a window the daemon can see.
type WindowEntry struct {
	WindowID uint32 `json:"window_id"`
	Display  int    `json:"display"`
	Title    string `json:"title"`
	Class    string `json:"class"`
	Tiled    bool   `json:"tiled"`
	Hidden   bool   `json:"hidden"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowEntry `json:"windows"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Displays      int   `json:"displays"`
	WindowCount   int   `json:"window_count"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// ReloadConfigInput is the input for the reload_config tool.
type ReloadConfigInput struct{}

// ReloadConfigOutput is the output for the reload_config tool.
type ReloadConfigOutput struct {
	Reloaded bool `json:"reloaded"`
}
