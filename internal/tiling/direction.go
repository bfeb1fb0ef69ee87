package tiling

import "fmt"

// Orientation is the axis along which a container lays out its children.
type Orientation int

const (
	// Horizontal places children left to right.
	Horizontal Orientation = iota
	// Vertical places children top to bottom.
	Vertical
)

// String returns the string representation of the orientation
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes "horizontal" or "vertical".
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("invalid orientation %q", string(text))
	}
	return nil
}

// Perpendicular returns the other axis.
func (o Orientation) Perpendicular() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Direction represents a compass direction on screen
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses "up", "down", "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

// Axis returns the orientation a direction moves along.
func (d Direction) Axis() Orientation {
	if d == DirUp || d == DirDown {
		return Vertical
	}
	return Horizontal
}

// Step returns -1 for directions toward the origin and +1 otherwise.
func (d Direction) Step() int {
	if d == DirUp || d == DirLeft {
		return -1
	}
	return 1
}

// Overlap returns the length shared by the ranges [a0,a1) and [b0,b1).
func Overlap(a0, a1, b0, b1 int) int {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Neighbor measures candidate relative to from in the given direction.
// ok is false unless candidate lies entirely past from's edge in that
// direction and shares a positive span with it on the perpendicular axis.
// dist is the edge-to-edge gap along the direction's axis.
func Neighbor(from, candidate Rect, dir Direction) (dist, overlap int, ok bool) {
	switch dir {
	case DirRight:
		if candidate.X < from.Right() {
			return 0, 0, false
		}
		dist = candidate.X - from.Right()
		overlap = Overlap(from.Y, from.Bottom(), candidate.Y, candidate.Bottom())
	case DirLeft:
		if candidate.Right() > from.X {
			return 0, 0, false
		}
		dist = from.X - candidate.Right()
		overlap = Overlap(from.Y, from.Bottom(), candidate.Y, candidate.Bottom())
	case DirDown:
		if candidate.Y < from.Bottom() {
			return 0, 0, false
		}
		dist = candidate.Y - from.Bottom()
		overlap = Overlap(from.X, from.Right(), candidate.X, candidate.Right())
	case DirUp:
		if candidate.Bottom() > from.Y {
			return 0, 0, false
		}
		dist = from.Y - candidate.Bottom()
		overlap = Overlap(from.X, from.Right(), candidate.X, candidate.Right())
	default:
		return 0, 0, false
	}
	if overlap <= 0 {
		return 0, 0, false
	}
	return dist, overlap, true
}
