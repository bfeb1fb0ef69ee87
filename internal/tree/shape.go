package tree

import (
	"fmt"
	"strings"

	"github.com/1broseidon/flextile/internal/tiling"
)

// Shape is a plain copy of a tree's structure: payloads for leaves,
// orientation and ordered children for containers.
type Shape[P comparable] struct {
	Leaf        bool               `json:"leaf"`
	Payload     P                  `json:"payload,omitempty"`
	Orientation tiling.Orientation `json:"orientation"`
	Children    []Shape[P]         `json:"children,omitempty"`
}

// String renders the shape as nested brackets, e.g. "[a [b c]]".
func (s Shape[P]) String() string {
	var b strings.Builder
	s.write(&b, false)
	return b.String()
}

// Oriented renders the shape with each container prefixed by H or V,
// e.g. "H[a V[b c]]".
func (s Shape[P]) Oriented() string {
	var b strings.Builder
	s.write(&b, true)
	return b.String()
}

func (s Shape[P]) write(b *strings.Builder, oriented bool) {
	if s.Leaf {
		fmt.Fprint(b, s.Payload)
		return
	}
	if oriented {
		if s.Orientation == tiling.Vertical {
			b.WriteByte('V')
		} else {
			b.WriteByte('H')
		}
	}
	b.WriteByte('[')
	for i, c := range s.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.write(b, oriented)
	}
	b.WriteByte(']')
}

// Shape returns the structure under the root.
func (t *Tree[P]) Shape() Shape[P] {
	return shapeOf(t.root)
}

func shapeOf[P comparable](n *Node[P]) Shape[P] {
	if n.kind == KindLeaf {
		return Shape[P]{Leaf: true, Payload: n.payload}
	}
	s := Shape[P]{Orientation: n.orientation}
	for _, c := range n.children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

// Describe renders one indented line per node with its geometry and sizing.
func (t *Tree[P]) Describe() string {
	t.ensureLayout()
	var b strings.Builder
	describe(&b, t.root, 0)
	return b.String()
}

func describe[P comparable](b *strings.Builder, n *Node[P], depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.kind == KindLeaf {
		fmt.Fprintf(b, "%v", n.payload)
	} else {
		b.WriteString(n.orientation.String())
	}
	fmt.Fprintf(b, " %s", n.geom)
	if ok, v := n.size.fixed(tiling.Horizontal); ok {
		fmt.Fprintf(b, " width=%d", v)
	}
	if ok, v := n.size.fixed(tiling.Vertical); ok {
		fmt.Fprintf(b, " height=%d", v)
	}
	if n.parent != nil {
		fmt.Fprintf(b, " weight=%.3g", n.size.weight)
	}
	if n.minimized {
		b.WriteString(" minimized")
	}
	b.WriteByte('\n')
	for _, c := range n.children {
		describe(b, c, depth+1)
	}
}

// Draw renders the leaves as labelled boxes on a width x height character
// canvas scaled from the root rectangle.
func (t *Tree[P]) Draw(width, height int) string {
	leaves := t.Leaves()
	boxes := make([]tiling.Box, 0, len(leaves))
	for _, n := range leaves {
		boxes = append(boxes, tiling.Box{Rect: n.PixelPerfect(), Label: fmt.Sprint(n.payload)})
	}
	return strings.Join(tiling.DrawBoxes(t.root.PixelPerfect(), boxes, width, height), "\n")
}
