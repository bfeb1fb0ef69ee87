package hotkeys

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/wm"
)

type recorder struct {
	ran []string
	err error
}

func (r *recorder) Run(command string) error {
	r.ran = append(r.ran, command)
	return r.err
}

func TestPlan_SortsAndParses(t *testing.T) {
	plan, err := Plan(map[string]string{
		"Mod4-l":       "focus right",
		"Mod4-Shift-h": "MOVE left",
		"Mod4-0":       "reset-size",
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var keys, cmds []string
	for _, b := range plan {
		keys = append(keys, b.Keys)
		cmds = append(cmds, b.Command.String())
	}
	if want := []string{"Mod4-0", "Mod4-Shift-h", "Mod4-l"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if want := []string{"reset-size", "move left", "focus right"}; !reflect.DeepEqual(cmds, want) {
		t.Fatalf("commands = %v, want %v", cmds, want)
	}
}

func TestPlan_ReportsEveryBadBinding(t *testing.T) {
	plan, err := Plan(map[string]string{
		"Mod4-a": "launch rockets",
		"Mod4-b": "focus sideways",
		"Mod4-c": "retile",
		" ":      "retile",
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, wm.ErrUnknownCommand) || !errors.Is(err, wm.ErrBadArgument) {
		t.Fatalf("err = %v, want both parse failures", err)
	}
	if !strings.Contains(err.Error(), "empty key sequence") {
		t.Fatalf("err = %v, want the empty key reported", err)
	}
	if len(plan) != 1 || plan[0].Keys != "Mod4-c" {
		t.Fatalf("valid bindings should survive, got %+v", plan)
	}
}

func TestPlan_DefaultKeybindingsParse(t *testing.T) {
	cfg := config.DefaultConfig()
	plan, err := Plan(cfg.Keybindings)
	if err != nil {
		t.Fatalf("default keybindings: %v", err)
	}
	if len(plan) != len(cfg.Keybindings) {
		t.Fatalf("planned %d of %d bindings", len(plan), len(cfg.Keybindings))
	}
}

func TestRunFunc_UsesCanonicalCommand(t *testing.T) {
	rec := &recorder{err: errors.New("no window")}
	h := &Handler{runner: rec, logger: discardLogger()}

	plan, err := Plan(map[string]string{"Mod4-equal": "Grow   50"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	h.runFunc(plan[0])()

	if len(rec.ran) != 1 || rec.ran[0] != "grow 50" {
		t.Fatalf("ran = %v", rec.ran)
	}
}

func TestBind_RequiresX11(t *testing.T) {
	h := NewHandler(nil, &recorder{}, discardLogger())
	if err := h.Bind(map[string]string{"Mod4-l": "focus right"}); err == nil {
		t.Fatalf("expected an error without an X connection")
	}
}

func TestSetModeKey_Trims(t *testing.T) {
	h := NewHandler(nil, &recorder{}, discardLogger())
	called := false
	h.SetModeKey("  Mod4-Return ", func() { called = true })

	if h.modeKeys != "Mod4-Return" {
		t.Fatalf("modeKeys = %q", h.modeKeys)
	}
	h.modeFn()
	if !called {
		t.Fatalf("mode callback not stored")
	}
}

func TestIgnoreMasks(t *testing.T) {
	tests := []struct {
		name              string
		caps, num, scroll uint16
		want              []uint16
	}{
		{"caps only", 2, 0, 0, []uint16{0, 2}},
		{"caps and num lock", 2, 16, 0, []uint16{0, 2, 16, 18}},
		{"scroll shares num mask", 2, 16, 16, []uint16{0, 2, 16, 18}},
		{"all three", 2, 16, 128, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ignoreMasks(tt.caps, tt.num, tt.scroll); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ignoreMasks = %v, want %v", got, tt.want)
			}
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
