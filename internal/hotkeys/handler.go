package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/wm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Runner executes a layout command.
type Runner interface {
	Run(command string) error
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Binding is one key sequence and the command it runs.
type Binding struct {
	Keys    string
	Command wm.Command
}

// Plan parses every binding, sorted by key sequence. All parse errors are
// reported together.
func Plan(bindings map[string]string) ([]Binding, error) {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Binding, 0, len(keys))
	var errs []error
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			errs = append(errs, fmt.Errorf("empty key sequence for %q", bindings[k]))
			continue
		}
		cmd, err := wm.ParseCommand(bindings[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("keybinding %s: %w", k, err))
			continue
		}
		out = append(out, Binding{Keys: k, Command: cmd})
	}
	return out, errors.Join(errs...)
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	runner Runner
	logger *slog.Logger

	mu       sync.Mutex
	bound    []Binding
	modeKeys string
	modeFn   func()
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, runner Runner, logger *slog.Logger) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}
	if logger == nil {
		logger = slog.Default()
	}

	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{
		xu:     xu,
		root:   root,
		runner: runner,
		logger: logger,
	}
}

// Bind replaces every registered hotkey with bindings. A key that fails to
// grab is logged and skipped; the rest stay active.
func (h *Handler) Bind(bindings map[string]string) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}

	plan, planErr := Plan(bindings)

	h.mu.Lock()
	defer h.mu.Unlock()

	keybind.Detach(h.xu, h.root)
	h.bound = h.bound[:0]

	for _, b := range plan {
		if err := h.RegisterFunc(b.Keys, h.runFunc(b)); err != nil {
			h.logger.Warn("failed to grab hotkey", "keys", b.Keys, "command", b.Command.String(), "error", err)
			continue
		}
		h.bound = append(h.bound, b)
	}

	if h.modeFn != nil && h.modeKeys != "" {
		if err := h.RegisterFunc(h.modeKeys, h.modeFn); err != nil {
			h.logger.Warn("failed to grab move mode hotkey", "keys", h.modeKeys, "error", err)
		}
	}

	h.logger.Info("hotkeys registered", "count", len(h.bound))
	return planErr
}

// SetModeKey sets the key sequence that calls enter. Bind grabs it along
// with the command bindings; an empty sequence disables it.
func (h *Handler) SetModeKey(keys string, enter func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modeKeys = strings.TrimSpace(keys)
	h.modeFn = enter
}

// Bound returns the bindings currently grabbed.
func (h *Handler) Bound() []Binding {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Binding(nil), h.bound...)
}

func (h *Handler) runFunc(b Binding) func() {
	command := b.Command.String()
	return func() {
		h.logger.Debug("hotkey triggered", "keys", b.Keys, "command", command)
		if err := h.runner.Run(command); err != nil {
			h.logger.Warn("hotkey command failed", "keys", b.Keys, "command", command, "error", err)
		}
	}
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the lock modifiers, including
// none, so a hotkey fires whatever lock keys are on.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	sort.Slice(ignore, func(i, j int) bool { return ignore[i] < ignore[j] })
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
