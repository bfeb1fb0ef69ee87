package movemode

import (
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
	"github.com/1broseidon/flextile/internal/wm"
	"github.com/BurntSushi/xgb/xproto"
)

// Phase represents the current phase of move mode
type Phase int

const (
	// PhaseInactive means move mode is not active
	PhaseInactive Phase = iota
	// PhaseSelecting means arrows move focus between windows
	PhaseSelecting
	// PhaseGrabbed means arrows move the focused window through the tree
	PhaseGrabbed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseSelecting:
		return "selecting"
	case PhaseGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

const (
	keysymUp      xproto.Keysym = 0xff52
	keysymDown    xproto.Keysym = 0xff54
	keysymLeft    xproto.Keysym = 0xff51
	keysymRight   xproto.Keysym = 0xff53
	keysymReturn  xproto.Keysym = 0xff0d
	keysymKPEnter xproto.Keysym = 0xff8d
	keysymEscape  xproto.Keysym = 0xff1b
	keysymEqual   xproto.Keysym = 0x003d
	keysymPlus    xproto.Keysym = 0x002b
	keysymMinus   xproto.Keysym = 0x002d
	keysym0       xproto.Keysym = 0x0030
	keysymb       xproto.Keysym = 0x0062
	keysymh       xproto.Keysym = 0x0068
	keysymj       xproto.Keysym = 0x006a
	keysymk       xproto.Keysym = 0x006b
	keysyml       xproto.Keysym = 0x006c
	keysymm       xproto.Keysym = 0x006d
	keysymn       xproto.Keysym = 0x006e
	keysymp       xproto.Keysym = 0x0070
	keysymv       xproto.Keysym = 0x0076
)

// Key is a key press reduced to what move mode reacts to. Sym is the
// unshifted keysym.
type Key struct {
	Sym     xproto.Keysym
	Shift   bool
	Control bool
}

func keyDirection(sym xproto.Keysym) (tiling.Direction, bool) {
	switch sym {
	case keysymUp, keysymk:
		return tiling.DirUp, true
	case keysymDown, keysymj:
		return tiling.DirDown, true
	case keysymLeft, keysymh:
		return tiling.DirLeft, true
	case keysymRight, keysyml:
		return tiling.DirRight, true
	}
	return 0, false
}

// selectingKeys maps the non-directional keys of the selecting phase.
var selectingKeys = map[xproto.Keysym]wm.Command{
	keysymEqual: {Action: wm.ActionGrow, Value: 50},
	keysymPlus:  {Action: wm.ActionGrow, Value: 50},
	keysymMinus: {Action: wm.ActionGrow, Value: -50},
	keysym0:     {Action: wm.ActionResetSize},
	keysymm:     {Action: wm.ActionMinimize},
	keysymn:     {Action: wm.ActionFocus, Target: wm.FocusNext},
	keysymp:     {Action: wm.ActionFocus, Target: wm.FocusPrevious},
	keysymb:     {Action: wm.ActionMode, Mode: tree.AddHorizontal},
	keysymv:     {Action: wm.ActionMode, Mode: tree.AddVertical},
}

// Step returns the phase after k and the layout command k runs, or "".
//
// While selecting, directions move focus, Enter grabs the focused window
// and Escape leaves move mode. While grabbed, directions move the window,
// Shift integrates it and Control swaps it; Enter or Escape drops it.
func Step(p Phase, k Key) (Phase, string) {
	switch p {
	case PhaseSelecting:
		if dir, ok := keyDirection(k.Sym); ok {
			return p, wm.Command{Action: wm.ActionFocus, Direction: dir}.String()
		}
		switch k.Sym {
		case keysymReturn, keysymKPEnter:
			return PhaseGrabbed, ""
		case keysymEscape:
			return PhaseInactive, ""
		}
		if cmd, ok := selectingKeys[k.Sym]; ok {
			return p, cmd.String()
		}

	case PhaseGrabbed:
		if dir, ok := keyDirection(k.Sym); ok {
			action := wm.ActionMove
			switch {
			case k.Control:
				action = wm.ActionSwap
			case k.Shift:
				action = wm.ActionIntegrate
			}
			return p, wm.Command{Action: action, Direction: dir}.String()
		}
		switch k.Sym {
		case keysymReturn, keysymKPEnter, keysymEscape:
			return PhaseSelecting, ""
		}
	}
	return p, ""
}
