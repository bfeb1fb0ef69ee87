package tree

import (
	"fmt"
	"strings"

	"github.com/1broseidon/flextile/internal/tiling"
)

// AddMode selects where Add places a new leaf relative to its target.
type AddMode uint8

const (
	// AddHorizontal places the new leaf beside the target.
	AddHorizontal AddMode = 1 << iota
	// AddVertical places the new leaf below the target.
	AddVertical
	// AddSplit divides the target's own rectangle instead of joining its
	// siblings. Must be combined with an axis.
	AddSplit
)

// AddDefault inserts after the target in whatever container holds it.
const AddDefault AddMode = 0

// String returns the string representation of the mode
func (m AddMode) String() string {
	var parts []string
	if m&AddHorizontal != 0 {
		parts = append(parts, "horizontal")
	}
	if m&AddVertical != 0 {
		parts = append(parts, "vertical")
	}
	if m&AddSplit != 0 {
		parts = append(parts, "split")
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "-")
}

// ParseAddMode parses "default", "horizontal", "vertical",
// "horizontal-split" or "vertical-split".
func ParseAddMode(s string) (AddMode, error) {
	switch s {
	case "", "default", "none":
		return AddDefault, nil
	case "horizontal":
		return AddHorizontal, nil
	case "vertical":
		return AddVertical, nil
	case "horizontal-split":
		return AddHorizontal | AddSplit, nil
	case "vertical-split":
		return AddVertical | AddSplit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m AddMode) axis() (tiling.Orientation, bool, error) {
	h := m&AddHorizontal != 0
	v := m&AddVertical != 0
	switch {
	case h && v:
		return 0, false, fmt.Errorf("%w: %s", ErrInvalidMode, m)
	case h:
		return tiling.Horizontal, true, nil
	case v:
		return tiling.Vertical, true, nil
	case m&AddSplit != 0:
		return 0, false, fmt.Errorf("%w: split needs an axis", ErrInvalidMode)
	}
	return 0, false, nil
}

// Add inserts a leaf for p next to target. A nil or detached target falls
// back to the last leaf. On an empty tree the leaf becomes the root's only
// child. Any restore memento for p is dropped.
func (t *Tree[P]) Add(p P, target *Node[P], mode AddMode) (*Node[P], error) {
	o, hasAxis, err := mode.axis()
	if err != nil {
		return nil, err
	}
	if t.Find(p) != nil {
		return nil, fmt.Errorf("add %v: %w", p, ErrDuplicatePayload)
	}
	t.ensureLayout()
	delete(t.mementos, p)

	leaf := t.newLeaf(p)
	root := t.root
	defer t.invalidate()

	if len(root.children) == 0 {
		root.insertChild(0, leaf)
		return leaf, nil
	}
	if target == nil || target == root || !target.attached(root) {
		target = t.Last()
	}

	parent := target.parent
	switch {
	case !hasAxis:
		t.insertAfter(target, leaf)
	case mode&AddSplit != 0:
		t.splitWith(target, leaf, o)
	case parent.orientation == o:
		t.insertAfter(target, leaf)
	case parent == root && len(root.children) == 1:
		root.orientation = o
		t.insertAfter(target, leaf)
	default:
		t.wrap(target, leaf, o)
	}
	return leaf, nil
}

func (t *Tree[P]) insertAfter(target, n *Node[P]) {
	parent := target.parent
	parent.insertChild(target.index()+1, n)
	t.normalize(parent)
}

// splitWith divides target's rectangle between target and n along o. The
// root's only child is split by turning the root itself.
func (t *Tree[P]) splitWith(target, n *Node[P], o tiling.Orientation) {
	parent := target.parent
	if parent == t.root && len(parent.children) == 1 {
		parent.orientation = o
		t.insertAfter(target, n)
		return
	}
	t.wrap(target, n, o)
}

// wrap replaces target with a new container of orientation o holding
// target and n. The container takes over target's sizing.
func (t *Tree[P]) wrap(target, n *Node[P], o tiling.Orientation) {
	c := t.newContainer(o)
	c.size = target.size
	target.parent.replaceChild(target, c)
	target.size = flexible()
	n.size = flexible()
	c.insertChild(0, target)
	c.insertChild(1, n)
}

// Remove detaches a leaf and remembers its slot for Restore.
func (t *Tree[P]) Remove(n *Node[P]) error {
	if err := t.checkLeaf(n); err != nil {
		return err
	}
	t.ensureLayout()

	m := t.snapshot(n)
	t.detach(n, m)
	t.mementos[n.payload] = m
	t.pruneMementos()
	return nil
}

// detach unlinks n from its parent and settles the parent: a non-root
// container left with one child is replaced by that child, which takes over
// the container's sizing. A root left with one child resets it to flexible.
func (t *Tree[P]) detach(n *Node[P], m *memento[P]) {
	parent := n.parent
	parent.removeChild(n)
	defer t.invalidate()

	switch {
	case parent != t.root && len(parent.children) == 1:
		survivor := parent.children[0]
		if m != nil {
			m.container = parent
			m.survivor = survivor
			m.survivorSize = survivor.size
		}
		survivor.size = parent.size
		grand := parent.parent
		parent.children = nil
		grand.replaceChild(parent, survivor)
	case parent == t.root && len(parent.children) == 1:
		parent.children[0].size = flexible()
	default:
		t.normalize(parent)
	}
}

// Move relocates n toward dir. Inside a container laid out along dir's axis
// n trades places with its neighbour. At the container's edge, or in a
// container on the other axis, n leaves for the nearest ancestor container
// on dir's axis and lands beside the branch it came from. Returns false when
// nothing changed.
func (t *Tree[P]) Move(n *Node[P], dir tiling.Direction) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	t.ensureLayout()
	axis, step := dir.Axis(), dir.Step()

	parent := n.parent
	if parent.orientation == axis {
		i := n.index()
		j := i + step
		if j >= 0 && j < len(parent.children) {
			parent.children[i], parent.children[j] = parent.children[j], parent.children[i]
			t.invalidate()
			return true
		}
	}

	anchor := parent
	for anchor.parent != nil && anchor.parent.orientation != axis {
		anchor = anchor.parent
	}
	if anchor.parent == nil {
		return false
	}
	dest := anchor.parent
	idx := anchor.index()
	if step > 0 {
		idx++
	}

	t.detach(n, nil)
	n.size = flexible()
	dest.insertChild(idx, n)
	t.normalize(dest)
	t.invalidate()
	return true
}

// Integrate merges n into the neighbour toward dir. A neighbouring leaf is
// split to make room; a neighbouring container on dir's axis takes n on
// the side facing it, any other container appends it. Without a neighbour
// in its own container, n is moved outward first and integration retried
// if that gave it a new parent.
func (t *Tree[P]) Integrate(n *Node[P], dir tiling.Direction) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	t.ensureLayout()
	axis, step := dir.Axis(), dir.Step()

	parent := n.parent
	j := n.index() + step
	if parent.orientation != axis || j < 0 || j >= len(parent.children) {
		before := n.parent
		if !t.Move(n, dir) {
			return false
		}
		if n.parent == before {
			return true
		}
		t.Integrate(n, dir)
		return true
	}

	sibling := parent.children[j]
	t.detach(n, nil)
	n.size = flexible()

	switch {
	case sibling.kind == KindLeaf:
		t.splitWith(sibling, n, sibling.parent.orientation.Perpendicular())
	case sibling.orientation == axis && step > 0:
		sibling.insertChild(0, n)
		t.normalize(sibling)
	default:
		sibling.insertChild(len(sibling.children), n)
		t.normalize(sibling)
	}
	t.invalidate()
	return true
}

// Swap exchanges the contents of two leaves. Both slots keep their place in
// the tree; the payloads and everything that belongs to them trade places.
func (t *Tree[P]) Swap(a, b *Node[P]) error {
	if err := t.checkLeaf(a); err != nil {
		return err
	}
	if err := t.checkLeaf(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	a.payload, b.payload = b.payload, a.payload
	a.size, b.size = b.size, a.size
	a.minimized, b.minimized = b.minimized, a.minimized
	a.lastAccessed, b.lastAccessed = b.lastAccessed, a.lastAccessed
	a.accessSeq, b.accessSeq = b.accessSeq, a.accessSeq
	t.invalidate()
	return nil
}

// ToggleMinimize flips the leaf's minimized flag and returns the new value.
// The slot and its size are unaffected.
func (t *Tree[P]) ToggleMinimize(n *Node[P]) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	n.minimized = !n.minimized
	return n.minimized
}

// Access records n as the most recently used leaf.
func (t *Tree[P]) Access(n *Node[P]) {
	if t.checkLeaf(n) != nil {
		return
	}
	t.seq++
	n.accessSeq = t.seq
	n.lastAccessed = t.opts.Now()
}

func (t *Tree[P]) checkLeaf(n *Node[P]) error {
	if n == nil || n.tree != t || !n.attached(t.root) {
		return ErrPayloadNotFound
	}
	if n.kind != KindLeaf {
		return ErrNotLeaf
	}
	return nil
}
