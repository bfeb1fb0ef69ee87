package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/flextile/internal/config"
)

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first x coordinate past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first y coordinate past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Start returns the rectangle's origin along the given axis.
func (r Rect) Start(o Orientation) int {
	if o == Vertical {
		return r.Y
	}
	return r.X
}

// Extent returns the rectangle's size along the given axis.
func (r Rect) Extent(o Orientation) int {
	if o == Vertical {
		return r.Height
	}
	return r.Width
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d at %d,%d", r.Width, r.Height, r.X, r.Y)
}

// Inset shrinks the rectangle by n pixels on every side, never below 1x1.
func (r Rect) Inset(n int) Rect {
	if n <= 0 {
		return r
	}
	out := Rect{X: r.X + n, Y: r.Y + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out
}

// SplitExtent divides total pixels among shares. Each share is floored and
// the rounding remainder goes to the last entry, so the result always sums
// to total.
func SplitExtent(total int, shares []float64) []int {
	if len(shares) == 0 {
		return nil
	}
	out := make([]int, len(shares))
	used := 0
	for i, s := range shares {
		if s < 0 {
			s = 0
		}
		out[i] = int(math.Floor(s + 1e-9))
		used += out[i]
	}
	out[len(out)-1] += total - used
	return out
}

// Subdivide lays extents out one after another along an axis inside r.
// The cross axis of each child equals the cross axis of r.
func Subdivide(r Rect, o Orientation, extents []int) []Rect {
	out := make([]Rect, len(extents))
	pos := r.Start(o)
	for i, e := range extents {
		if o == Vertical {
			out[i] = Rect{X: r.X, Y: pos, Width: r.Width, Height: e}
		} else {
			out[i] = Rect{X: pos, Y: r.Y, Width: e, Height: r.Height}
		}
		pos += e
	}
	return out
}

// ApplyPadding shrinks a monitor by the configured screen padding.
func ApplyPadding(monitor Rect, padding config.Margins) (Rect, error) {
	adjusted := Rect{
		X:      monitor.X + padding.Left,
		Y:      monitor.Y + padding.Top,
		Width:  monitor.Width - (padding.Left + padding.Right),
		Height: monitor.Height - (padding.Top + padding.Bottom),
	}
	if adjusted.Width < 1 || adjusted.Height < 1 {
		return monitor, fmt.Errorf("screen_padding leaves no usable space: %s", adjusted)
	}
	return adjusted, nil
}

// ApplyRegion applies the tile region to a monitor, returning adjusted bounds
func ApplyRegion(monitor Rect, region config.TileRegion) Rect {
	adjusted := monitor

	switch region.Type {
	case config.RegionFull:
		// No change

	case config.RegionLeftHalf:
		adjusted.Width = monitor.Width / 2

	case config.RegionRightHalf:
		adjusted.X = monitor.X + monitor.Width/2
		adjusted.Width = monitor.Width / 2

	case config.RegionTopHalf:
		adjusted.Height = monitor.Height / 2

	case config.RegionBottomHalf:
		adjusted.Y = monitor.Y + monitor.Height/2
		adjusted.Height = monitor.Height / 2

	case config.RegionCustom:
		adjusted.X = monitor.X + (monitor.Width * region.XPercent / 100)
		adjusted.Y = monitor.Y + (monitor.Height * region.YPercent / 100)
		adjusted.Width = monitor.Width * region.WidthPercent / 100
		adjusted.Height = monitor.Height * region.HeightPercent / 100
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted
}
