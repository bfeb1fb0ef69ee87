package tiling

import "strings"

// Box is a labelled rectangle for DrawBoxes.
type Box struct {
	Rect  Rect
	Label string
}

// DrawBoxes draws boxes on a width x height character canvas framed by a
// double-line border. Coordinates are scaled from area onto the canvas.
// Each label is centred in its box and clipped to the box interior.
func DrawBoxes(area Rect, boxes []Box, width, height int) []string {
	if width < 5 || height < 3 || area.Empty() {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, b := range boxes {
		// Work relative to the area origin.
		r := b.Rect
		r.X -= area.X
		r.Y -= area.Y
		drawBox(canvas, r, b.Label, area.Width, area.Height, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawBox(canvas [][]rune, rect Rect, label string, areaW, areaH, canvasW, canvasH int) {
	// Map rect coordinates to canvas coordinates
	x1 := rect.X * canvasW / areaW
	y1 := rect.Y * canvasH / areaH
	x2 := (rect.X + rect.Width) * canvasW / areaW
	y2 := (rect.Y + rect.Height) * canvasH / areaH

	// Clamp to canvas bounds
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}

	// Need at least 2x2 for a box
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		runes := []rune(label)
		startX := centerX - len(runes)/2
		for i, r := range runes {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, max(height, 0))
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
