package tree

import "fmt"

// memento is the slot a removed leaf left behind.
type memento[P comparable] struct {
	parent    *Node[P]
	index     int
	size      sizing
	minimized bool

	// siblings as they stood after removal, with their sizes from before.
	siblings     []*Node[P]
	siblingSizes []sizing

	// Set when removal collapsed parent into its last child.
	container    *Node[P]
	survivor     *Node[P]
	survivorSize sizing

	seq uint64
}

func (t *Tree[P]) snapshot(n *Node[P]) *memento[P] {
	t.removeSeq++
	m := &memento[P]{
		parent:    n.parent,
		index:     n.index(),
		size:      n.size,
		minimized: n.minimized,
		seq:       t.removeSeq,
	}
	for _, s := range n.parent.children {
		if s == n {
			continue
		}
		m.siblings = append(m.siblings, s)
		m.siblingSizes = append(m.siblingSizes, s.size)
	}
	return m
}

// restorable reports whether m's anchor still exists in the tree.
func (t *Tree[P]) restorable(m *memento[P]) bool {
	if m.container != nil {
		return m.container.parent == nil &&
			m.survivor.parent != nil &&
			m.survivor.attached(t.root)
	}
	return m.parent.kind == KindContainer &&
		m.parent.attached(t.root) &&
		m.index <= len(m.parent.children)
}

// CanRestore reports whether Restore would succeed for p.
func (t *Tree[P]) CanRestore(p P) bool {
	m, ok := t.mementos[p]
	return ok && t.restorable(m) && t.Find(p) == nil
}

// Restore puts p back into the slot it was removed from. If the removal
// collapsed its container, the container is rebuilt around the sibling
// that replaced it. Sibling sizes are restored exactly when the siblings
// are unchanged, otherwise flexible weights are renormalized.
func (t *Tree[P]) Restore(p P) (*Node[P], error) {
	if t.Find(p) != nil {
		return nil, fmt.Errorf("restore %v: %w", p, ErrDuplicatePayload)
	}
	m, ok := t.mementos[p]
	if !ok {
		return nil, fmt.Errorf("restore %v: %w", p, ErrNotRestorable)
	}
	delete(t.mementos, p)
	if !t.restorable(m) {
		return nil, fmt.Errorf("restore %v: anchor gone: %w", p, ErrNotRestorable)
	}
	t.ensureLayout()
	defer t.invalidate()

	leaf := t.newLeaf(p)
	leaf.size = m.size
	leaf.minimized = m.minimized

	if m.container != nil {
		c, s := m.container, m.survivor
		c.size = s.size
		s.parent.replaceChild(s, c)
		s.size = m.survivorSize
		c.children = nil
		c.insertChild(0, s)
		c.insertChild(m.index, leaf)
		return leaf, nil
	}

	parent := m.parent
	unchanged := sameNodes(parent.children, m.siblings)
	parent.insertChild(m.index, leaf)
	if unchanged {
		for i, s := range m.siblings {
			s.size = m.siblingSizes[i]
		}
	} else {
		t.normalize(parent)
	}
	return leaf, nil
}

// Forget drops any memento held for p.
func (t *Tree[P]) Forget(p P) {
	delete(t.mementos, p)
}

// Mementos returns the number of remembered slots.
func (t *Tree[P]) Mementos() int { return len(t.mementos) }

// pruneMementos drops mementos whose anchor is gone, then the oldest ones
// beyond the configured cap.
func (t *Tree[P]) pruneMementos() {
	for p, m := range t.mementos {
		if !t.restorable(m) {
			delete(t.mementos, p)
		}
	}
	for len(t.mementos) > t.opts.MaxMementos {
		var oldest P
		var oldestSeq uint64
		first := true
		for p, m := range t.mementos {
			if first || m.seq < oldestSeq {
				oldest, oldestSeq, first = p, m.seq, false
			}
		}
		delete(t.mementos, oldest)
	}
}

func sameNodes[P comparable](a, b []*Node[P]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
