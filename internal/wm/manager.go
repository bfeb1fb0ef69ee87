// Package wm drives real windows from per-display layout trees. It owns the
// mapping between platform windows and layout payloads and is the single
// synchronisation point for every layout it holds.
package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/layout"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
)

// ErrNoWindow is returned by Execute when the active display has no tiled
// window to act on.
var ErrNoWindow = errors.New("no tiled window on the active display")

// Layout is the per-display layout type.
type Layout = layout.FlexTree[platform.WindowID]

// Manager keeps one layout per display and applies it through a backend.
type Manager struct {
	mu        sync.Mutex
	backend   platform.Backend
	config    *config.Config
	colors    config.BorderColors
	logger    *slog.Logger
	template  *Layout
	layouts   map[int]*Layout
	owner     map[platform.WindowID]int
	iconified map[platform.WindowID]bool
}

// NewManager creates a manager with no managed windows.
func NewManager(backend platform.Backend, cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		backend:   backend,
		logger:    logger,
		layouts:   make(map[int]*Layout),
		owner:     make(map[platform.WindowID]int),
		iconified: make(map[platform.WindowID]bool),
	}
	if err := m.setConfig(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) setConfig(cfg *config.Config) error {
	colors, err := cfg.BorderColors()
	if err != nil {
		return err
	}
	m.config = cfg
	m.colors = colors
	m.template = layout.New[platform.WindowID](tree.DefaultRoot, tree.Options{
		MinSize:     cfg.MinSize,
		MaxMementos: cfg.MaxRestoreMementos,
	})
	return nil
}

// UpdateConfig swaps in a new configuration and re-applies every layout.
// min_size and max_restore_mementos only affect displays seen after the
// update; existing trees keep their options.
func (m *Manager) UpdateConfig(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.setConfig(cfg); err != nil {
		return err
	}
	for _, id := range m.displayIDs() {
		m.applyLocked(id)
	}
	return nil
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// must turns a lookup failure into a panic. The manager adds every window
// it tracks to exactly one layout, so a missing payload means the two views
// have desynchronized.
func (m *Manager) must(err error) error {
	if errors.Is(err, tree.ErrPayloadNotFound) {
		m.logger.Error("layout desynchronized", "error", err)
		panic(fmt.Sprintf("wm: layout desynchronized: %v", err))
	}
	return err
}

// TileArea returns the rectangle a display's layout covers after the work
// area, screen padding and tile region are applied.
func (m *Manager) TileArea(d platform.Display) (tiling.Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tileArea(d)
}

func (m *Manager) tileArea(d platform.Display) (tiling.Rect, error) {
	bounds := d.Usable
	if bounds.Width < 1 || bounds.Height < 1 {
		bounds = d.Bounds
	}
	r := tiling.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}
	padded, err := tiling.ApplyPadding(r, m.config.ScreenPadding)
	if err != nil {
		return tiling.Rect{}, err
	}
	return tiling.ApplyRegion(padded, m.config.TileRegion), nil
}

// layoutFor returns the display's layout, creating it from the template and
// reconfiguring its root when the display geometry changed.
func (m *Manager) layoutFor(d platform.Display) (*Layout, bool, error) {
	area, err := m.tileArea(d)
	if err != nil {
		return nil, false, err
	}
	l, ok := m.layouts[d.ID]
	if !ok {
		l = m.template.Clone()
		m.layouts[d.ID] = l
		m.logger.Debug("new display layout", "display", d.ID, "name", d.Name, "area", area.String())
	}
	if l.Root() == area {
		return l, false, nil
	}
	l.ConfigureRoot(area.X, area.Y, area.Width, area.Height)
	return l, true, nil
}

// Manage adds a window to a display's layout, reclaiming its previous slot
// when it has one. A window already on another display moves over.
func (m *Manager) Manage(d platform.Display, id platform.WindowID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	restored, err := m.manageLocked(d, id)
	if err != nil {
		return false, err
	}
	m.applyLocked(d.ID)
	return restored, nil
}

func (m *Manager) manageLocked(d platform.Display, id platform.WindowID) (bool, error) {
	if current, ok := m.owner[id]; ok {
		if current == d.ID {
			return false, nil
		}
		m.unmanageLocked(id)
		m.applyLocked(current)
	}

	l, _, err := m.layoutFor(d)
	if err != nil {
		return false, err
	}
	restored, err := l.AddNext(id)
	if err != nil {
		return false, err
	}
	m.owner[id] = d.ID
	m.logger.Debug("window managed", "window_id", id, "display", d.ID, "restored", restored)
	return restored, nil
}

// Unmanage removes a window from whichever layout holds it. Unknown
// windows are ignored.
func (m *Manager) Unmanage(id platform.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if displayID, ok := m.unmanageLocked(id); ok {
		m.applyLocked(displayID)
	}
}

func (m *Manager) unmanageLocked(id platform.WindowID) (int, bool) {
	displayID, ok := m.owner[id]
	if !ok {
		return 0, false
	}
	_ = m.must(m.layouts[displayID].Remove(id))
	delete(m.owner, id)
	delete(m.iconified, id)
	m.logger.Debug("window unmanaged", "window_id", id, "display", displayID)
	return displayID, true
}

// SetFocus records that a managed window received focus.
func (m *Manager) SetFocus(id platform.WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	displayID, ok := m.owner[id]
	if !ok {
		return
	}
	l := m.layouts[displayID]
	if focused, ok := l.Focused(); ok && focused == id {
		return
	}
	_ = m.must(l.Focus(id))
	m.applyLocked(displayID)
}

// Sync reconciles a display's layout with the windows currently on it.
// Windows are added in list order; tracked windows that are gone are
// removed, leaving a restore memento behind. Iconify state set by the
// window manager is mirrored into the minimized flag.
func (m *Manager) Sync(d platform.Display, windows []platform.Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, changed, err := m.layoutFor(d)
	if err != nil {
		return err
	}

	live := make(map[platform.WindowID]platform.Window, len(windows))
	for _, w := range windows {
		if m.config.Ignored(w.AppID) {
			continue
		}
		live[w.ID] = w
	}

	for _, id := range l.Payloads() {
		if _, ok := live[id]; !ok {
			m.unmanageLocked(id)
			changed = true
		}
	}

	for _, w := range windows {
		if _, ok := live[w.ID]; !ok {
			continue
		}
		if !l.Contains(w.ID) {
			if _, err := m.manageLocked(d, w.ID); err != nil {
				return err
			}
			changed = true
		}
		if m.syncIconified(l, w) {
			changed = true
		}
	}

	if active, err := m.backend.ActiveWindow(); err == nil && l.Contains(active) {
		if focused, ok := l.Focused(); !ok || focused != active {
			_ = m.must(l.Focus(active))
			changed = true
		}
	}

	if changed {
		m.applyLocked(d.ID)
	}
	return nil
}

// syncIconified mirrors iconify changes made outside the manager.
func (m *Manager) syncIconified(l *Layout, w platform.Window) bool {
	n, _ := l.Find(w.ID)
	switch {
	case w.Hidden && !n.Minimized():
		m.iconified[w.ID] = true
	case !w.Hidden && n.Minimized() && m.iconified[w.ID]:
		delete(m.iconified, w.ID)
	default:
		return false
	}
	_, _ = l.ToggleMinimizeInline(w.ID)
	return true
}

// SyncAll reconciles every display with the backend's window list and
// drops layouts for displays that went away.
func (m *Manager) SyncAll() error {
	displays, err := m.backend.Displays()
	if err != nil {
		return fmt.Errorf("list displays: %w", err)
	}

	seen := make(map[int]bool, len(displays))
	var errs []error
	for _, d := range displays {
		seen[d.ID] = true
		windows, err := m.backend.ListWindowsOnDisplay(d.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("display %d: %w", d.ID, err))
			continue
		}
		if err := m.Sync(d, windows); err != nil {
			errs = append(errs, fmt.Errorf("display %d: %w", d.ID, err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.layouts {
		if seen[id] {
			continue
		}
		for _, p := range l.Payloads() {
			m.unmanageLocked(p)
		}
		delete(m.layouts, id)
		m.logger.Info("display removed", "display", id)
	}
	return errors.Join(errs...)
}

// Apply pushes a display's geometry and borders to the backend.
func (m *Manager) Apply(displayID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyLocked(displayID)
}

func (m *Manager) applyLocked(displayID int) {
	l, ok := m.layouts[displayID]
	if !ok {
		return
	}

	placements := l.Placements()
	border, margin := m.config.BorderWidth, m.config.Margin
	if len(placements) == 1 {
		border, margin = m.config.BorderWidthSingle, m.config.MarginSingle
	}

	for _, p := range placements {
		if p.Minimized {
			if !m.iconified[p.Payload] {
				if err := m.backend.Minimize(p.Payload); err != nil {
					m.logger.Warn("failed to minimize window", "window_id", p.Payload, "error", err)
				}
				m.iconified[p.Payload] = true
			}
			continue
		}
		if m.iconified[p.Payload] {
			if err := m.backend.Activate(p.Payload); err != nil {
				m.logger.Warn("failed to restore window", "window_id", p.Payload, "error", err)
			}
			delete(m.iconified, p.Payload)
		}

		color := m.colors.Pick(p.Focused, p.Fixed())
		if err := m.backend.SetBorder(p.Payload, border, color); err != nil {
			m.logger.Warn("failed to set border", "window_id", p.Payload, "error", err)
		}

		r := frame(p.Rect, margin, border)
		err := m.backend.MoveResize(p.Payload, platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		if err != nil {
			// Continue with other windows even if one fails
			m.logger.Warn("failed to place window", "window_id", p.Payload, "rect", r.String(), "error", err)
		}
	}
	m.logger.Debug("layout applied", "display", displayID, "windows", len(placements))
}

// frame converts a leaf rectangle into the client geometry to request. X
// draws borders outside the client area, so they come out of the size.
func frame(r tiling.Rect, margin, border int) tiling.Rect {
	r = r.Inset(margin)
	r.Width = max(1, r.Width-2*border)
	r.Height = max(1, r.Height-2*border)
	return r
}

func (m *Manager) displayIDs() []int {
	ids := make([]int, 0, len(m.layouts))
	for id := range m.layouts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// activeLocked picks the display commands act on: the one holding the
// active window, or the backend's active display.
func (m *Manager) activeLocked() (int, *Layout, error) {
	if id, err := m.backend.ActiveWindow(); err == nil {
		if displayID, ok := m.owner[id]; ok {
			return displayID, m.layouts[displayID], nil
		}
	}
	d, err := m.backend.ActiveDisplay()
	if err != nil {
		return 0, nil, fmt.Errorf("active display: %w", err)
	}
	l, _, err := m.layoutFor(d)
	if err != nil {
		return 0, nil, err
	}
	return d.ID, l, nil
}
