package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/flextile/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetTree     CommandType = "GET_TREE"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandGetWindows  CommandType = "GET_WINDOWS"
	CommandExec        CommandType = "EXEC"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Displays      int   `json:"displays"`
	WindowCount   int   `json:"window_count"`
	UptimeSeconds int64 `json:"uptime_seconds"`
	DaemonRunning bool  `json:"daemon_running"`
}

// TreePayload is the optional payload for GET_TREE.
type TreePayload struct {
	Debug bool `json:"debug,omitempty"`
}

// TreeData represents the data returned by GET_TREE
type TreeData struct {
	Displays []wm.DisplayState `json:"displays"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// WindowInfo describes one top-level window the daemon can see.
type WindowInfo struct {
	ID      uint32 `json:"id"`
	Display int    `json:"display"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	Tiled   bool   `json:"tiled"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// WindowsData represents the data returned by GET_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// ExecPayload represents the payload for EXEC command
type ExecPayload struct {
	Command string `json:"command"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
