package daemon

import (
	"log/slog"

	"github.com/1broseidon/flextile/internal/platform"
)

// FocusTracker records focus changes made outside the layout.
type FocusTracker interface {
	SetFocus(id platform.WindowID)
}

// ActiveWindowSource reports the window that currently has input focus.
type ActiveWindowSource interface {
	ActiveWindow() (platform.WindowID, error)
}

// StateSynchronizer turns window-system change notifications into layout
// updates. A focus change only moves focus; anything else schedules a full
// reconcile.
type StateSynchronizer struct {
	focus      FocusTracker
	active     ActiveWindowSource
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewStateSynchronizer creates a new state synchronizer.
func NewStateSynchronizer(focus FocusTracker, active ActiveWindowSource, reconciler *Reconciler, logger *slog.Logger) *StateSynchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateSynchronizer{
		focus:      focus,
		active:     active,
		reconciler: reconciler,
		logger:     logger,
	}
}

// HandlePropertyChange is called with the name of a changed root window
// property.
func (s *StateSynchronizer) HandlePropertyChange(property string) {
	switch property {
	case platform.PropActiveWindow:
		id, err := s.active.ActiveWindow()
		if err != nil {
			s.logger.Debug("active window unavailable", "error", err)
			return
		}
		if id == 0 {
			return
		}
		s.focus.SetFocus(id)
	case platform.PropClientList, platform.PropCurrentDesktop:
		s.logger.Debug("window list changed", "property", property)
		s.reconciler.Trigger()
	}
}
