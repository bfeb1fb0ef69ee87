package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/runtimepath"
	"github.com/1broseidon/flextile/internal/wm"
)

// Engine is the daemon state the server exposes.
type Engine interface {
	State(debug bool) []wm.DisplayState
	Counts() (displays, windows int)
	Run(command string) error
	UpdateConfig(cfg *config.Config) error
}

var _ Engine = (*wm.Manager)(nil)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	engine       Engine
	backend      platform.Backend
	logger       *slog.Logger
	loadConfig   func() (*config.Config, error)
	startTime    time.Time
	reloadChan   chan<- struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(engine Engine, backend platform.Backend, reloadChan chan<- struct{}, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		engine:     engine,
		backend:    backend,
		logger:     logger,
		loadConfig: config.Load,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)

	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetTree:
		return s.handleGetTree(req.Payload)
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandExec:
		return s.handleExec(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	newCfg, err := s.loadConfig()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	if err := s.engine.UpdateConfig(newCfg); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply config: %v", err))
	}

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	s.logger.Info("config reloaded")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	displays, windows := s.engine.Counts()
	status := StatusData{
		Displays:      displays,
		WindowCount:   windows,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetTree(payload json.RawMessage) *Response {
	var req TreePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid tree payload: %v", err))
		}
	}

	resp, err := NewOKResponse(TreeData{Displays: s.engine.State(req.Debug)})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleGetMonitors returns information about all monitors
func (s *Server) handleGetMonitors() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		monitorInfos[i] = MonitorInfo{
			ID:     d.ID,
			Name:   d.Name,
			X:      d.Bounds.X,
			Y:      d.Bounds.Y,
			Width:  d.Bounds.Width,
			Height: d.Bounds.Height,
		}
	}

	resp, _ := NewOKResponse(MonitorsData{Monitors: monitorInfos})
	return resp
}

// handleGetWindows lists every window on every display and whether it is
// tiled.
func (s *Server) handleGetWindows() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	tiled := make(map[platform.WindowID]bool)
	for _, st := range s.engine.State(false) {
		for _, w := range st.Windows {
			tiled[w.Payload] = true
		}
	}

	data := WindowsData{Windows: []WindowInfo{}}
	for _, d := range displays {
		windows, err := s.backend.ListWindowsOnDisplay(d.ID)
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to list windows on display %d: %v", d.ID, err))
		}
		for _, w := range windows {
			data.Windows = append(data.Windows, WindowInfo{
				ID:      uint32(w.ID),
				Display: d.ID,
				Title:   w.Title,
				Class:   w.AppID,
				Tiled:   tiled[w.ID],
				Hidden:  w.Hidden,
			})
		}
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleExec(payload json.RawMessage) *Response {
	var req ExecPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid exec payload: %v", err))
	}
	if err := s.engine.Run(req.Command); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
