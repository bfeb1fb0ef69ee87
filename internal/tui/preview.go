package tui

import (
	"fmt"
	"strconv"

	"github.com/1broseidon/flextile/internal/layout"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/wm"
)

// summarizeDisplay reports the window count and the size range of a
// display's tiles.
func summarizeDisplay(d wm.DisplayState) string {
	rects := make([]tiling.Rect, 0, len(d.Windows))
	for _, w := range d.Windows {
		rects = append(rects, w.Rect)
	}
	if len(rects) == 0 {
		return "no windows"
	}

	minW, minH := rects[0].Width, rects[0].Height
	maxW, maxH := rects[0].Width, rects[0].Height
	for _, r := range rects[1:] {
		minW = min(minW, r.Width)
		minH = min(minH, r.Height)
		maxW = max(maxW, r.Width)
		maxH = max(maxH, r.Height)
	}

	if minW == maxW && minH == maxH {
		return fmt.Sprintf("%d windows • %d×%d px each", len(rects), minW, minH)
	}
	return fmt.Sprintf("%d windows • min %d×%d • max %d×%d", len(rects), minW, minH, maxW, maxH)
}

// tileLabel names a window in the preview: "*" marks focus and "~" a
// minimized window.
func tileLabel(p layout.Placement[platform.WindowID]) string {
	label := strconv.FormatUint(uint64(p.Payload), 10)
	if p.Minimized {
		label = "~" + label
	}
	if p.Focused {
		label = "*" + label
	}
	return label
}

// renderDisplayPreview draws a display's tiles as a box-drawing canvas.
func renderDisplayPreview(d wm.DisplayState, width, height int) []string {
	boxes := make([]tiling.Box, 0, len(d.Windows))
	for _, w := range d.Windows {
		boxes = append(boxes, tiling.Box{Rect: w.Rect, Label: tileLabel(w)})
	}
	return tiling.DrawBoxes(d.Root, boxes, width, height)
}
