// Package tree implements the layout tree: nested containers that partition
// a screen rectangle among leaves, kept gap-free under insertion, removal,
// resizing and topology changes.
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package tree

import (
	"time"

	"github.com/1broseidon/flextile/internal/tiling"
)

const (
	// DefaultMinSize is the smallest extent, in pixels, a fixed size may be
	// clamped to.
	DefaultMinSize = 10
	// DefaultMaxMementos bounds how many removed leaves remember their slot.
	DefaultMaxMementos = 16
)

// DefaultRoot is the root rectangle used until Configure is called.
var DefaultRoot = tiling.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

// Options tunes a Tree. Zero values select the defaults.
type Options struct {
	MinSize     int
	MaxMementos int
	// Now stamps leaf access times. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxMementos <= 0 {
		o.MaxMementos = DefaultMaxMementos
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Tree owns a root container covering one screen area.
type Tree[P comparable] struct {
	root      *Node[P]
	opts      Options
	dirty     bool
	seq       uint64
	mementos  map[P]*memento[P]
	removeSeq uint64
}

// New creates an empty tree whose root covers r.
func New[P comparable](r tiling.Rect, opts Options) *Tree[P] {
	t := &Tree[P]{
		opts:     opts.withDefaults(),
		mementos: make(map[P]*memento[P]),
		dirty:    true,
	}
	t.root = &Node[P]{
		kind:        KindContainer,
		orientation: tiling.Horizontal,
		size:        flexible(),
		tree:        t,
		geom:        r,
	}
	return t
}

// Options returns the effective options.
func (t *Tree[P]) Options() Options { return t.opts }

// Root returns the root container.
func (t *Tree[P]) Root() *Node[P] { return t.root }

// Configure moves the root to r and marks the whole tree for relayout.
func (t *Tree[P]) Configure(r tiling.Rect) {
	t.root.geom = r
	t.dirty = true
}

// Empty reports whether the tree holds no leaves.
func (t *Tree[P]) Empty() bool { return len(t.root.children) == 0 }

// Find returns the leaf holding p, or nil.
func (t *Tree[P]) Find(p P) *Node[P] {
	var found *Node[P]
	t.root.walk(func(n *Node[P]) bool {
		if n.kind == KindLeaf && n.payload == p {
			found = n
			return false
		}
		return true
	})
	return found
}

// Leaves returns every leaf in pre-order.
func (t *Tree[P]) Leaves() []*Node[P] {
	var out []*Node[P]
	t.root.walk(func(n *Node[P]) bool {
		if n.kind == KindLeaf {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Len returns the number of leaves.
func (t *Tree[P]) Len() int {
	count := 0
	t.root.walk(func(n *Node[P]) bool {
		if n.kind == KindLeaf {
			count++
		}
		return true
	})
	return count
}

func (t *Tree[P]) newLeaf(p P) *Node[P] {
	return &Node[P]{kind: KindLeaf, payload: p, size: flexible(), tree: t}
}

func (t *Tree[P]) newContainer(o tiling.Orientation) *Node[P] {
	return &Node[P]{kind: KindContainer, orientation: o, size: flexible(), tree: t}
}

func (t *Tree[P]) invalidate() { t.dirty = true }

func (t *Tree[P]) ensureLayout() {
	if !t.dirty {
		return
	}
	t.layout(t.root)
	t.dirty = false
}

// Relayout recomputes every node's geometry from the root rectangle.
func (t *Tree[P]) Relayout() {
	t.dirty = true
	t.ensureLayout()
}
