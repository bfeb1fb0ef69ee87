package wm

import (
	"errors"
	"testing"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/platform"
)

func TestSync_AddsInOrderAndPlaces(t *testing.T) {
	m, backend := newTestManager(t, bareConfig())

	syncWindows(t, m, windows(1, 2))

	if got := shapeOf(t, m); got != "H[1 2]" {
		t.Fatalf("shape = %s, want H[1 2]", got)
	}
	want := map[platform.WindowID]platform.Rect{
		1: {X: 0, Y: 0, Width: 500, Height: 500},
		2: {X: 500, Y: 0, Width: 500, Height: 500},
	}
	for id, r := range want {
		if backend.placed[id] != r {
			t.Errorf("window %d placed at %+v, want %+v", id, backend.placed[id], r)
		}
	}
	if displays, count := m.Counts(); displays != 1 || count != 2 {
		t.Fatalf("counts = %d displays, %d windows", displays, count)
	}
}

func TestApply_BordersAndMargins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BorderWidth = 2
	cfg.Margin = 4
	cfg.BorderWidthSingle = 0
	cfg.MarginSingle = 0
	m, backend := newTestManager(t, cfg)

	syncWindows(t, m, windows(1))
	if got := backend.placed[1]; got != (platform.Rect{Width: 1000, Height: 500}) {
		t.Fatalf("single window placed at %+v", got)
	}
	if backend.borders[1].width != 0 {
		t.Fatalf("single window border = %d, want 0", backend.borders[1].width)
	}

	syncWindows(t, m, windows(1, 2))
	if got := backend.placed[1]; got != (platform.Rect{X: 4, Y: 4, Width: 488, Height: 488}) {
		t.Fatalf("window 1 placed at %+v", got)
	}
	if backend.borders[1].width != 2 {
		t.Fatalf("border width = %d, want 2", backend.borders[1].width)
	}

	colors, _ := cfg.BorderColors()
	if backend.borders[2].color != colors.Focus {
		t.Fatalf("focused border = %#x, want %#x", backend.borders[2].color, colors.Focus)
	}
	if backend.borders[1].color != colors.Normal {
		t.Fatalf("unfocused border = %#x, want %#x", backend.borders[1].color, colors.Normal)
	}
}

func TestApply_PaddingAndRegion(t *testing.T) {
	cfg := bareConfig()
	cfg.ScreenPadding = config.Margins{Top: 20}
	cfg.TileRegion = config.TileRegion{Type: config.RegionLeftHalf}
	m, backend := newTestManager(t, cfg)

	syncWindows(t, m, windows(1))
	if got := backend.placed[1]; got != (platform.Rect{X: 0, Y: 20, Width: 500, Height: 480}) {
		t.Fatalf("placed at %+v", got)
	}
}

func TestSync_RemoveAndRestore(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())

	syncWindows(t, m, windows(1, 2, 3))
	syncWindows(t, m, windows(1, 3))
	if got := shapeOf(t, m); got != "H[1 3]" {
		t.Fatalf("shape after close = %s", got)
	}

	syncWindows(t, m, windows(1, 3, 2))
	if got := shapeOf(t, m); got != "H[1 2 3]" {
		t.Fatalf("shape after reopen = %s, want H[1 2 3]", got)
	}
}

func TestSync_IgnoredClasses(t *testing.T) {
	cfg := bareConfig()
	cfg.IgnoreClasses = []string{"Gimp"}
	m, backend := newTestManager(t, cfg)

	ws := windows(1, 2)
	ws[1].AppID = "gimp"
	syncWindows(t, m, ws)

	if got := shapeOf(t, m); got != "H[1]" {
		t.Fatalf("shape = %s, want H[1]", got)
	}
	if _, ok := backend.placed[2]; ok {
		t.Fatalf("ignored window should not be placed")
	}
}

func TestSync_FollowsActiveWindow(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())
	m.backend.(*fakeBackend).active = 1

	syncWindows(t, m, windows(1, 2))

	state := m.State(false)[0]
	for _, w := range state.Windows {
		if w.Focused != (w.Payload == 1) {
			t.Fatalf("unexpected focus in %+v", state.Windows)
		}
	}
}

func TestSync_MirrorsIconifyState(t *testing.T) {
	m, backend := newTestManager(t, bareConfig())
	syncWindows(t, m, windows(1, 2))

	// Iconified by the window manager.
	ws := windows(1, 2)
	ws[0].Hidden = true
	syncWindows(t, m, ws)
	if !m.State(false)[0].Windows[0].Minimized {
		t.Fatalf("expected window 1 to be minimized")
	}
	if backend.minimized[1] != 0 {
		t.Fatalf("manager should not iconify an already hidden window")
	}

	// Restored by the user.
	syncWindows(t, m, windows(1, 2))
	if m.State(false)[0].Windows[0].Minimized {
		t.Fatalf("expected window 1 to be restored")
	}
}

func TestManage_MovesBetweenDisplays(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())
	other := platform.Display{ID: 1, Bounds: platform.Rect{X: 1000, Width: 800, Height: 600}}

	if _, err := m.Manage(testDisplay, 7); err != nil {
		t.Fatalf("manage: %v", err)
	}
	if _, err := m.Manage(other, 7); err != nil {
		t.Fatalf("manage: %v", err)
	}

	state := m.State(false)
	if len(state) != 2 {
		t.Fatalf("expected two displays, got %d", len(state))
	}
	if state[0].Shape != "H[]" || state[1].Shape != "H[7]" {
		t.Fatalf("shapes = %s / %s", state[0].Shape, state[1].Shape)
	}
	if state[1].Root.X != 1000 || state[1].Root.Width != 800 {
		t.Fatalf("second display root = %v", state[1].Root)
	}

	m.Unmanage(7)
	m.Unmanage(42)
	if _, count := m.Counts(); count != 0 {
		t.Fatalf("expected no managed windows, got %d", count)
	}
}

func TestSyncAll_DropsVanishedDisplays(t *testing.T) {
	m, backend := newTestManager(t, bareConfig())
	second := platform.Display{ID: 1, Bounds: platform.Rect{X: 1000, Width: 800, Height: 600}}
	backend.displays = append(backend.displays, second)
	backend.windows[0] = windows(1)
	backend.windows[1] = windows(2, 3)

	if err := m.SyncAll(); err != nil {
		t.Fatalf("sync all: %v", err)
	}
	if displays, count := m.Counts(); displays != 2 || count != 3 {
		t.Fatalf("counts = %d/%d", displays, count)
	}

	backend.displays = backend.displays[:1]
	if err := m.SyncAll(); err != nil {
		t.Fatalf("sync all: %v", err)
	}
	if displays, count := m.Counts(); displays != 1 || count != 1 {
		t.Fatalf("counts after unplug = %d/%d", displays, count)
	}
}

func TestSetFocus_UnknownWindowIgnored(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())
	syncWindows(t, m, windows(1, 2))

	m.SetFocus(99)
	m.SetFocus(1)
	state := m.State(false)[0]
	if !state.Windows[0].Focused {
		t.Fatalf("expected window 1 focused")
	}
}

func TestDesyncPanics(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())
	syncWindows(t, m, windows(1))
	m.owner[5] = testDisplay.ID

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a desynchronized window")
		}
	}()
	m.SetFocus(5)
}

func TestUpdateConfig_RejectsBadColour(t *testing.T) {
	m, _ := newTestManager(t, bareConfig())
	cfg := bareConfig()
	cfg.BorderFocus = "nope"

	err := m.UpdateConfig(cfg)
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if m.Config().BorderFocus == "nope" {
		t.Fatalf("bad config should not be applied")
	}
}
