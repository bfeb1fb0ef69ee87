package wm

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/platform"
)

type border struct {
	width int
	color uint32
}

// fakeBackend records what the manager asks of the window system.
type fakeBackend struct {
	displays  []platform.Display
	windows   map[int][]platform.Window
	active    platform.WindowID
	placed    map[platform.WindowID]platform.Rect
	borders   map[platform.WindowID]border
	minimized map[platform.WindowID]int
	activated []platform.WindowID
	closed    []platform.WindowID
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{
		displays:  displays,
		windows:   make(map[int][]platform.Window),
		placed:    make(map[platform.WindowID]platform.Rect),
		borders:   make(map[platform.WindowID]border),
		minimized: make(map[platform.WindowID]int),
	}
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	if len(f.displays) == 0 {
		return platform.Display{}, fmt.Errorf("no displays")
	}
	return f.displays[0], nil
}

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) { return f.active, nil }

func (f *fakeBackend) ListWindowsOnDisplay(displayID int) ([]platform.Window, error) {
	return f.windows[displayID], nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.placed[id] = bounds
	return nil
}

func (f *fakeBackend) Minimize(id platform.WindowID) error {
	f.minimized[id]++
	return nil
}

func (f *fakeBackend) Close(id platform.WindowID) error {
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeBackend) Activate(id platform.WindowID) error {
	f.activated = append(f.activated, id)
	f.active = id
	return nil
}

func (f *fakeBackend) SetBorder(id platform.WindowID, width int, color uint32) error {
	f.borders[id] = border{width: width, color: color}
	return nil
}

var testDisplay = platform.Display{
	ID:     0,
	Name:   "test",
	Bounds: platform.Rect{Width: 1000, Height: 500},
	Usable: platform.Rect{Width: 1000, Height: 500},
}

// bareConfig has no borders or margins so placements equal leaf rectangles.
func bareConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.BorderWidth = 0
	cfg.BorderWidthSingle = 0
	cfg.Margin = 0
	cfg.MarginSingle = 0
	return cfg
}

func newTestManager(t *testing.T, cfg *config.Config) (*Manager, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend(testDisplay)
	m, err := NewManager(backend, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m, backend
}

func windows(ids ...platform.WindowID) []platform.Window {
	out := make([]platform.Window, len(ids))
	for i, id := range ids {
		out[i] = platform.Window{ID: id, AppID: "kitty"}
	}
	return out
}

func syncWindows(t *testing.T, m *Manager, ws []platform.Window) {
	t.Helper()
	if err := m.Sync(testDisplay, ws); err != nil {
		t.Fatalf("sync: %v", err)
	}
}

func shapeOf(t *testing.T, m *Manager) string {
	t.Helper()
	state := m.State(false)
	if len(state) != 1 {
		t.Fatalf("expected one display, got %d", len(state))
	}
	return state[0].Shape
}
