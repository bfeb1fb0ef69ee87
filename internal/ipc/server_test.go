package ipc

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/layout"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/runtimepath"
	"github.com/1broseidon/flextile/internal/wm"
)

type fakeEngine struct {
	mu        sync.Mutex
	ran       []string
	runErr    error
	updated   *config.Config
	states    []wm.DisplayState
	lastDebug bool
}

func (e *fakeEngine) State(debug bool) []wm.DisplayState {
	e.lastDebug = debug
	return e.states
}

func (e *fakeEngine) Counts() (int, int) {
	n := 0
	for _, s := range e.states {
		n += len(s.Windows)
	}
	return len(e.states), n
}

func (e *fakeEngine) Run(command string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ran = append(e.ran, command)
	return e.runErr
}

func (e *fakeEngine) UpdateConfig(cfg *config.Config) error {
	e.updated = cfg
	return nil
}

type fakeBackend struct {
	platform.Backend
	displays []platform.Display
	windows  map[int][]platform.Window
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ListWindowsOnDisplay(id int) ([]platform.Window, error) {
	return f.windows[id], nil
}

func newTestServer(t *testing.T) (*Server, *fakeEngine, chan struct{}) {
	t.Helper()
	t.Setenv(runtimepath.SocketEnv, filepath.Join(t.TempDir(), "ft.sock"))

	engine := &fakeEngine{
		states: []wm.DisplayState{{
			DisplayID: 0,
			Shape:     "H[1 2]",
			Windows: []layout.Placement[platform.WindowID]{
				{Payload: 1}, {Payload: 2, Focused: true},
			},
		}},
	}
	backend := &fakeBackend{
		displays: []platform.Display{{ID: 0, Name: "eDP-1", Bounds: platform.Rect{Width: 1920, Height: 1080}}},
		windows: map[int][]platform.Window{
			0: {
				{ID: 1, AppID: "kitty", Title: "shell"},
				{ID: 2, AppID: "firefox", Title: "docs"},
				{ID: 3, AppID: "mpv", Title: "video", Hidden: true},
			},
		},
	}
	reload := make(chan struct{}, 1)
	srv, err := NewServer(engine, backend, reload, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, engine, reload
}

func decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	if resp.Status != "OK" {
		t.Fatalf("status = %s (%s)", resp.Status, resp.Error)
	}
	var out T
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestHandleCommand_Status(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status := decode[StatusData](t, srv.handleCommand(&Request{Command: CommandGetStatus}))
	if !status.DaemonRunning || status.Displays != 1 || status.WindowCount != 2 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestHandleCommand_TreeDebugFlag(t *testing.T) {
	srv, engine, _ := newTestServer(t)

	tree := decode[TreeData](t, srv.handleCommand(&Request{
		Command: CommandGetTree,
		Payload: json.RawMessage(`{"debug":true}`),
	}))
	if !engine.lastDebug {
		t.Fatalf("debug flag not passed through")
	}
	if len(tree.Displays) != 1 || tree.Displays[0].Shape != "H[1 2]" {
		t.Fatalf("unexpected tree %+v", tree)
	}

	srv.handleCommand(&Request{Command: CommandGetTree})
	if engine.lastDebug {
		t.Fatalf("debug should default to false")
	}
}

func TestHandleCommand_Windows(t *testing.T) {
	srv, _, _ := newTestServer(t)

	data := decode[WindowsData](t, srv.handleCommand(&Request{Command: CommandGetWindows}))
	if len(data.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(data.Windows))
	}
	want := map[uint32]bool{1: true, 2: true, 3: false}
	for _, w := range data.Windows {
		if w.Tiled != want[w.ID] {
			t.Errorf("window %d tiled = %v", w.ID, w.Tiled)
		}
	}
	if !data.Windows[2].Hidden || data.Windows[2].Class != "mpv" {
		t.Fatalf("unexpected window %+v", data.Windows[2])
	}
}

func TestHandleCommand_Exec(t *testing.T) {
	srv, engine, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: CommandExec, Payload: json.RawMessage(`{"command":"move left"}`)})
	if resp.Status != "OK" {
		t.Fatalf("exec failed: %s", resp.Error)
	}
	if len(engine.ran) != 1 || engine.ran[0] != "move left" {
		t.Fatalf("ran = %v", engine.ran)
	}

	engine.runErr = errors.New("no window to act on")
	resp = srv.handleCommand(&Request{Command: CommandExec, Payload: json.RawMessage(`{"command":"close"}`)})
	if resp.Status != "ERROR" || resp.Error != "no window to act on" {
		t.Fatalf("unexpected response %+v", resp)
	}

	resp = srv.handleCommand(&Request{Command: CommandExec, Payload: json.RawMessage(`nope`)})
	if resp.Status != "ERROR" {
		t.Fatalf("bad payload should fail")
	}
}

func TestHandleCommand_Reload(t *testing.T) {
	srv, engine, reload := newTestServer(t)
	cfg := config.DefaultConfig()
	srv.loadConfig = func() (*config.Config, error) { return cfg, nil }

	if resp := srv.handleCommand(&Request{Command: CommandReload}); resp.Status != "OK" {
		t.Fatalf("reload failed: %s", resp.Error)
	}
	if engine.updated != cfg {
		t.Fatalf("config not handed to the engine")
	}
	select {
	case <-reload:
	default:
		t.Fatalf("reload channel not signalled")
	}

	// A full channel must not block the second reload.
	reload <- struct{}{}
	if resp := srv.handleCommand(&Request{Command: CommandReload}); resp.Status != "OK" {
		t.Fatalf("second reload failed: %s", resp.Error)
	}

	srv.loadConfig = func() (*config.Config, error) { return nil, errors.New("bad yaml") }
	resp := srv.handleCommand(&Request{Command: CommandReload})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "bad yaml") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := srv.handleCommand(&Request{Command: "BOGUS"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "BOGUS") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestClientServerRoundTrip(t *testing.T) {
	srv, engine, _ := newTestServer(t)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	client := NewClientAt(srv.SocketPath())
	if err := client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := client.Exec("focus right"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	engine.mu.Lock()
	ran := append([]string(nil), engine.ran...)
	engine.runErr = errors.New("boom")
	engine.mu.Unlock()
	if len(ran) != 1 || ran[0] != "focus right" {
		t.Fatalf("ran = %v", ran)
	}

	monitors, err := client.GetMonitors()
	if err != nil {
		t.Fatalf("GetMonitors: %v", err)
	}
	if len(monitors.Monitors) != 1 || monitors.Monitors[0].Width != 1920 {
		t.Fatalf("unexpected monitors %+v", monitors)
	}

	if err := client.Exec("close"); err == nil || !strings.Contains(err.Error(), "daemon error: boom") {
		t.Fatalf("err = %v", err)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil {
		t.Fatalf("expected connection error")
	}
}
