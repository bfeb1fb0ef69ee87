package tree

import (
	"time"

	"github.com/1broseidon/flextile/internal/tiling"
)

// Kind distinguishes leaves from containers.
type Kind int

const (
	// KindLeaf holds exactly one payload and no children.
	KindLeaf Kind = iota
	// KindContainer holds ordered children laid out along an orientation.
	KindContainer
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// sizing is how a node claims space inside its parent. Width and height are
// fixed or flexible independently; flexible nodes share the free extent in
// proportion to weight.
type sizing struct {
	weight      float64
	widthFixed  bool
	heightFixed bool
	width       int
	height      int
}

func flexible() sizing { return sizing{weight: 1} }

func (s sizing) fixed(o tiling.Orientation) (bool, int) {
	if o == tiling.Vertical {
		return s.heightFixed, s.height
	}
	return s.widthFixed, s.width
}

func (s *sizing) setFixed(o tiling.Orientation, v int) {
	if o == tiling.Vertical {
		s.heightFixed, s.height = true, v
		return
	}
	s.widthFixed, s.width = true, v
}

// Node is a leaf or container in a layout tree. Parent is a back-reference
// only; a container owns its children slice.
type Node[P comparable] struct {
	kind        Kind
	payload     P
	orientation tiling.Orientation
	children    []*Node[P]
	parent      *Node[P]
	tree        *Tree[P]

	size sizing

	minimized    bool
	lastAccessed time.Time
	accessSeq    uint64

	geom tiling.Rect
}

// Kind reports whether the node is a leaf or a container.
func (n *Node[P]) Kind() Kind { return n.kind }

// IsLeaf reports whether the node holds a payload.
func (n *Node[P]) IsLeaf() bool { return n.kind == KindLeaf }

// Payload returns the leaf payload, or the zero value for containers.
func (n *Node[P]) Payload() P { return n.payload }

// Orientation returns the container's layout axis.
func (n *Node[P]) Orientation() tiling.Orientation { return n.orientation }

// Parent returns the enclosing container, or nil for the root and for
// detached nodes.
func (n *Node[P]) Parent() *Node[P] { return n.parent }

// Children returns a copy of the container's ordered children.
func (n *Node[P]) Children() []*Node[P] {
	out := make([]*Node[P], len(n.children))
	copy(out, n.children)
	return out
}

// Minimized reports whether the leaf's content should be hidden.
func (n *Node[P]) Minimized() bool { return n.minimized }

// LastAccessed returns when the leaf was last accessed.
func (n *Node[P]) LastAccessed() time.Time { return n.lastAccessed }

// Weight returns the node's flexible share relative to its siblings.
func (n *Node[P]) Weight() float64 { return n.size.weight }

// FixedWidth reports whether the width is fixed and its value.
func (n *Node[P]) FixedWidth() (bool, int) { return n.size.fixed(tiling.Horizontal) }

// FixedHeight reports whether the height is fixed and its value.
func (n *Node[P]) FixedHeight() (bool, int) { return n.size.fixed(tiling.Vertical) }

// PixelPerfect returns the node's integer rectangle, running the layout
// solver first if the tree changed since the last query.
func (n *Node[P]) PixelPerfect() tiling.Rect {
	if n.tree != nil {
		n.tree.ensureLayout()
	}
	return n.geom
}

func (n *Node[P]) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// attached reports whether n is reachable from root.
func (n *Node[P]) attached(root *Node[P]) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

func (n *Node[P]) insertChild(i int, c *Node[P]) {
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
}

func (n *Node[P]) removeChild(c *Node[P]) int {
	for i, cur := range n.children {
		if cur == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return i
		}
	}
	return -1
}

// replaceChild puts repl into old's slot.
func (n *Node[P]) replaceChild(old, repl *Node[P]) {
	for i, cur := range n.children {
		if cur == old {
			n.children[i] = repl
			repl.parent = n
			old.parent = nil
			return
		}
	}
}

// walk visits n and its descendants in pre-order. Returning false stops
// the walk.
func (n *Node[P]) walk(fn func(*Node[P]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
