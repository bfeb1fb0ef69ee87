package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/flextile/internal/ipc"
)

const (
	ServerName    = "flextile"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools use.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetTree(debug bool) (*ipc.TreeData, error)
	GetWindows() (*ipc.WindowsData, error)
	Exec(command string) error
	Reload() error
}

var _ Daemon = (*ipc.Client)(nil)

// Server is the MCP server exposing the daemon's layouts.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates a new MCP server that talks to the daemon over IPC.
func NewServer(daemon Daemon) *Server {
	if daemon == nil {
		daemon = ipc.NewClient()
	}
	s := &Server{daemon: daemon}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
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
		Name:        "get_layout",
		Description: "Get the tiling tree of every display: the nested shape (H[...] horizontal, V[...] vertical), each window's pixel rectangle, which window has focus, and which are minimized or have a fixed size.",
	}, s.handleGetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run a layout command on the active display, acting on the focused window. Directions are left, right, up and down. Returns the layout after the command.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the top-level windows on every display, with title, WM_CLASS and whether each one is tiled.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report whether the flextile daemon is running, how many displays and windows it manages, and its uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Make the daemon re-read its config file and re-apply borders, margins and keybindings.",
	}, s.handleReloadConfig)
}
