package palette

import (
	"strings"

	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
	"github.com/1broseidon/flextile/internal/wm"
)

var directions = []tiling.Direction{tiling.DirLeft, tiling.DirRight, tiling.DirUp, tiling.DirDown}

var addModes = []tree.AddMode{
	tree.AddDefault,
	tree.AddHorizontal,
	tree.AddVertical,
	tree.AddHorizontal | tree.AddSplit,
	tree.AddVertical | tree.AddSplit,
}

// CommandMenu builds the layout command hierarchy. Every leaf action is a
// canonical command string accepted by wm.ParseCommand. addMode marks the
// pending add mode of the focused display; pass "" when it is unknown.
func CommandMenu(addMode string) []MenuItem {
	focus := []MenuItem{
		leaf(wm.Command{Action: wm.ActionFocus, Target: wm.FocusNext}, "go-next"),
		leaf(wm.Command{Action: wm.ActionFocus, Target: wm.FocusPrevious}, "go-previous"),
		leaf(wm.Command{Action: wm.ActionFocus, Target: wm.FocusRecent}, "document-open-recent"),
		leaf(wm.Command{Action: wm.ActionFocus, Target: wm.FocusFirst}, "go-first"),
		leaf(wm.Command{Action: wm.ActionFocus, Target: wm.FocusLast}, "go-last"),
	}
	focus = append(focus, directional(wm.ActionFocus)...)

	modes := make([]MenuItem, 0, len(addModes))
	for _, m := range addModes {
		item := leaf(wm.Command{Action: wm.ActionMode, Mode: m}, "view-split-left-right")
		item.IsActive = addMode != "" && m.String() == addMode
		modes = append(modes, item)
	}

	resize := []MenuItem{
		leaf(wm.Command{Action: wm.ActionGrow, Value: 50}, "zoom-in"),
		leaf(wm.Command{Action: wm.ActionGrow, Value: -50}, "zoom-out"),
		leaf(wm.Command{Action: wm.ActionGrowWidth, Value: 50}, "zoom-in"),
		leaf(wm.Command{Action: wm.ActionGrowWidth, Value: -50}, "zoom-out"),
		leaf(wm.Command{Action: wm.ActionGrowHeight, Value: 50}, "zoom-in"),
		leaf(wm.Command{Action: wm.ActionGrowHeight, Value: -50}, "zoom-out"),
		leaf(wm.Command{Action: wm.ActionResetSize}, "zoom-original"),
	}

	return []MenuItem{
		{Label: "Focus", Icon: "go-jump", Submenu: focus},
		{Label: "Move", Icon: "transform-move", Submenu: directional(wm.ActionMove)},
		{Label: "Integrate", Icon: "object-group", Submenu: directional(wm.ActionIntegrate)},
		{Label: "Swap", Icon: "object-flip-horizontal", Submenu: directional(wm.ActionSwap)},
		{Label: "Add mode", Icon: "view-split-left-right", Submenu: modes},
		{Label: "Resize", Icon: "transform-scale", Submenu: resize},
		leaf(wm.Command{Action: wm.ActionMinimize}, "window-minimize"),
		leaf(wm.Command{Action: wm.ActionRetile}, "view-refresh"),
		leaf(wm.Command{Action: wm.ActionClose}, "window-close"),
	}
}

func directional(action wm.Action) []MenuItem {
	out := make([]MenuItem, 0, len(directions))
	for _, d := range directions {
		out = append(out, leaf(wm.Command{Action: action, Direction: d}, "go-"+d.String()))
	}
	return out
}

func leaf(cmd wm.Command, icon string) MenuItem {
	action := cmd.String()
	return MenuItem{
		Label:  action,
		Action: action,
		Icon:   icon,
		Meta:   strings.ReplaceAll(action, "-", " "),
	}
}
