package wm

import (
	"github.com/1broseidon/flextile/internal/layout"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/tiling"
)

// Run parses and executes one text command.
func (m *Manager) Run(input string) error {
	cmd, err := ParseCommand(input)
	if err != nil {
		return err
	}
	return m.Execute(cmd)
}

// Execute runs a command against the focused window of the active display.
func (m *Manager) Execute(cmd Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	displayID, l, err := m.activeLocked()
	if err != nil {
		return err
	}

	switch cmd.Action {
	case ActionRetile:
		m.applyLocked(displayID)
		return nil
	case ActionMode:
		l.SetAddMode(cmd.Mode)
		m.logger.Debug("add mode set", "display", displayID, "mode", cmd.Mode.String())
		return nil
	}

	focus, ok := l.Focused()
	if !ok {
		if focus, ok = l.FocusFirst(); !ok {
			return ErrNoWindow
		}
	}

	m.logger.Debug("executing command", "command", cmd.String(), "window_id", focus)

	switch cmd.Action {
	case ActionFocus:
		target, found, err := focusTarget(l, focus, cmd)
		if err := m.must(err); err != nil {
			return err
		}
		if !found {
			return nil
		}
		_ = m.must(l.Focus(target))
		if err := m.backend.Activate(target); err != nil {
			m.logger.Warn("failed to activate window", "window_id", target, "error", err)
		}

	case ActionMove:
		err = l.Move(focus, cmd.Direction)
	case ActionIntegrate:
		err = l.Integrate(focus, cmd.Direction)
	case ActionSwap:
		other, found, cerr := l.Close(focus, cmd.Direction)
		if cerr != nil {
			err = cerr
		} else if found {
			err = l.Swap(focus, other)
		}

	case ActionWidth:
		err = l.SetWidth(focus, cmd.Value)
	case ActionHeight:
		err = l.SetHeight(focus, cmd.Value)
	case ActionSize:
		err = l.SetSize(focus, cmd.Value)
	case ActionGrowWidth:
		err = l.GrowWidth(focus, cmd.Value)
	case ActionGrowHeight:
		err = l.GrowHeight(focus, cmd.Value)
	case ActionGrow:
		err = l.GrowSize(focus, cmd.Value)
	case ActionResetSize:
		err = l.ResetSize(focus)

	case ActionMinimize:
		_, err = l.ToggleMinimizeInline(focus)

	case ActionClose:
		// The window leaves the layout when the next sync sees it gone.
		if err := m.backend.Close(focus); err != nil {
			return err
		}
		return nil
	}

	if err := m.must(err); err != nil {
		return err
	}
	m.applyLocked(displayID)
	return nil
}

func focusTarget(l *Layout, focus platform.WindowID, cmd Command) (platform.WindowID, bool, error) {
	switch cmd.Target {
	case FocusNext:
		id, ok := l.Next()
		return id, ok, nil
	case FocusPrevious:
		id, ok := l.Previous()
		return id, ok, nil
	case FocusRecent:
		id, ok := l.Recent()
		return id, ok, nil
	case FocusFirst:
		id, ok := l.FocusFirst()
		return id, ok, nil
	case FocusLast:
		id, ok := l.FocusLast()
		return id, ok, nil
	}
	return l.Close(focus, cmd.Direction)
}

// DisplayState is a snapshot of one display's layout.
type DisplayState struct {
	DisplayID int                                   `json:"display_id"`
	Root      tiling.Rect                           `json:"root"`
	Shape     string                                `json:"shape"`
	AddMode   string                                `json:"add_mode"`
	Mementos  int                                   `json:"mementos"`
	Windows   []layout.Placement[platform.WindowID] `json:"windows"`
	Debug     string                                `json:"debug,omitempty"`
}

// State returns a snapshot of every display, ordered by display ID.
func (m *Manager) State(debug bool) []DisplayState {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]DisplayState, 0, len(m.layouts))
	for _, id := range m.displayIDs() {
		l := m.layouts[id]
		st := DisplayState{
			DisplayID: id,
			Root:      l.Root(),
			Shape:     l.TreeShape().Oriented(),
			AddMode:   l.AddMode().String(),
			Mementos:  l.Tree().Mementos(),
			Windows:   l.Placements(),
		}
		if debug {
			st.Debug = l.Describe()
		}
		out = append(out, st)
	}
	return out
}

// Counts returns the number of displays with a layout and managed windows.
func (m *Manager) Counts() (displays, windows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.layouts), len(m.owner)
}

// Focused returns the focused window of the active display and its layout
// rectangle.
func (m *Manager) Focused() (platform.WindowID, tiling.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, l, err := m.activeLocked()
	if err != nil {
		return 0, tiling.Rect{}, false
	}
	id, ok := l.Focused()
	if !ok {
		return 0, tiling.Rect{}, false
	}
	r, err := l.PixelGeometry(id)
	if err != nil {
		return 0, tiling.Rect{}, false
	}
	return id, r, true
}
