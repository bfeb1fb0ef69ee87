// Package movemode is a modal keyboard mode for rearranging the layout. It
// grabs the keyboard, translates key presses into layout commands and
// outlines the focused window until the user leaves or it times out.
package movemode

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// DefaultTimeout is how long move mode waits for a key before leaving.
const DefaultTimeout = 10 * time.Second

// Runner executes a layout command.
type Runner interface {
	Run(command string) error
}

// FocusSource reports the focused window and its rectangle.
type FocusSource interface {
	Focused() (platform.WindowID, tiling.Rect, bool)
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Mode is the move mode controller.
type Mode struct {
	mu      sync.Mutex
	backend platform.Backend
	xu      *xgbutil.XUtil
	root    xproto.Window
	runner  Runner
	focus   FocusSource
	logger  *slog.Logger
	overlay *OverlayManager

	phase           Phase
	timeout         *time.Timer
	timeoutDuration time.Duration
	// timerGen identifies the current timer; callbacks from replaced timers
	// that already fired see a different value and do nothing.
	timerGen uint64

	grabWindow         xproto.Window
	keyHandlerAttached bool
}

// NewMode creates a move mode controller. A timeout <= 0 uses
// DefaultTimeout.
func NewMode(backend platform.Backend, runner Runner, focus FocusSource, timeout time.Duration, logger *slog.Logger) *Mode {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mode{
		backend:         backend,
		xu:              xu,
		root:            root,
		runner:          runner,
		focus:           focus,
		logger:          logger.With("component", "movemode"),
		overlay:         NewOverlayManager(xu, root),
		timeoutDuration: timeout,
	}
}

// IsActive reports whether move mode is on.
func (m *Mode) IsActive() bool {
	return m.Phase() != PhaseInactive
}

// Phase returns the current phase.
func (m *Mode) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// SetTimeout changes the idle timeout used from the next key press on.
func (m *Mode) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeoutDuration = d
}

// Enter turns move mode on in the selecting phase. It does nothing when
// already active or when no window has focus.
func (m *Mode) Enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseInactive {
		return nil
	}
	if m.xu == nil {
		return errors.New("move mode requires an X11 backend")
	}
	if _, _, ok := m.focus.Focused(); !ok {
		m.logger.Debug("no focused window, not entering")
		return nil
	}

	if err := m.grabKeyboard(); err != nil {
		return fmt.Errorf("grab keyboard: %w", err)
	}
	m.phase = PhaseSelecting
	m.updateOverlay()
	m.startTimeout()
	m.logger.Info("entered move mode")
	return nil
}

// Exit turns move mode off.
func (m *Mode) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exitLocked()
}

func (m *Mode) exitLocked() {
	if m.phase == PhaseInactive {
		return
	}
	if m.timeout != nil {
		m.timeout.Stop()
		m.timeout = nil
	}
	m.timerGen++
	if m.xu != nil {
		m.ungrabKeyboard()
	}
	m.overlay.HideAll()
	m.phase = PhaseInactive
	m.logger.Info("left move mode")
}

// HandleKey applies one key press.
func (m *Mode) HandleKey(k Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseInactive {
		return
	}
	m.startTimeout()

	next, command := Step(m.phase, k)
	if command != "" {
		if err := m.runner.Run(command); err != nil {
			m.logger.Warn("command failed", "command", command, "error", err)
		}
	}
	if next == PhaseInactive {
		m.exitLocked()
		return
	}
	if next != m.phase {
		m.logger.Debug("phase changed", "from", m.phase.String(), "to", next.String())
	}
	m.phase = next
	m.updateOverlay()
}

func (m *Mode) updateOverlay() {
	_, rect, ok := m.focus.Focused()
	if !ok {
		m.overlay.HideAll()
		return
	}
	color := uint32(ColorSelecting)
	if m.phase == PhaseGrabbed {
		color = ColorGrabbed
	}
	if err := m.overlay.Render(rect, color, m.phase, m.hintBounds(rect)); err != nil {
		m.logger.Warn("overlay render failed", "error", err)
	}
}

// hintBounds is the active display, or the focused rectangle when the
// display is unknown.
func (m *Mode) hintBounds(fallback tiling.Rect) tiling.Rect {
	if m.backend == nil {
		return fallback
	}
	d, err := m.backend.ActiveDisplay()
	if err != nil {
		return fallback
	}
	return tiling.Rect{X: d.Usable.X, Y: d.Usable.Y, Width: d.Usable.Width, Height: d.Usable.Height}
}

func (m *Mode) startTimeout() {
	if m.timeout != nil {
		m.timeout.Stop()
	}
	m.timerGen++
	gen := m.timerGen
	m.timeout = time.AfterFunc(m.timeoutDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if gen != m.timerGen {
			return
		}
		if m.phase != PhaseInactive {
			m.logger.Info("timed out")
			m.exitLocked()
		}
	})
}

func (m *Mode) grabKeyboard() error {
	xu := m.xu
	if err := m.ensureGrabWindow(); err != nil {
		return err
	}

	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			xu.Conn(),
			false,
			m.root,
			xproto.TimeCurrentTime,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}
	// Entered from a global hotkey, the keyboard may still be grabbed by us.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		if reply, err = grab(); err != nil {
			return err
		}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	xevent.RedirectKeyEvents(xu, m.grabWindow)
	if !m.keyHandlerAttached {
		xevent.KeyPressFun(m.handleKeyPress).Connect(xu, m.grabWindow)
		m.keyHandlerAttached = true
	}
	return nil
}

func (m *Mode) ungrabKeyboard() {
	xproto.UngrabKeyboard(m.xu.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(m.xu, 0)
	if m.keyHandlerAttached && m.grabWindow != 0 {
		xevent.Detach(m.xu, m.grabWindow)
		m.keyHandlerAttached = false
	}
}

// ensureGrabWindow creates the InputOnly window key events are redirected
// to while the keyboard is grabbed.
func (m *Mode) ensureGrabWindow() error {
	if m.grabWindow != 0 {
		return nil
	}
	conn := m.xu.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}
	err = xproto.CreateWindowChecked(
		conn,
		0,
		wid,
		m.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOnly,
		xproto.Visualid(0),
		xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskKeyPress)},
	).Check()
	if err != nil {
		return err
	}
	xproto.MapWindow(conn, wid)
	m.grabWindow = wid
	return nil
}

func (m *Mode) handleKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	m.HandleKey(Key{
		Sym:     keybind.KeysymGet(xu, ev.Detail, 0),
		Shift:   ev.State&xproto.ModMaskShift != 0,
		Control: ev.State&xproto.ModMaskControl != 0,
	})
}
