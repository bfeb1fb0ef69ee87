package tree

import "github.com/1broseidon/flextile/internal/tiling"

// resizeTarget walks up from n to the node whose parent lays out along o.
// Returns nil when no such ancestor exists or it has no siblings.
func resizeTarget[P comparable](n *Node[P], o tiling.Orientation) *Node[P] {
	cur := n
	for cur.parent != nil && cur.parent.orientation != o {
		cur = cur.parent
	}
	if cur.parent == nil || len(cur.parent.children) < 2 {
		return nil
	}
	return cur
}

// SetExtent fixes the extent along o of n, or of the nearest ancestor laid
// out along o. Returns false when there is nothing to resize.
func (t *Tree[P]) SetExtent(n *Node[P], o tiling.Orientation, val int) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	t.ensureLayout()
	target := resizeTarget(n, o)
	if target == nil {
		return false
	}
	t.setFixed(target, o, val)
	return true
}

// GrowExtent adds delta to the current extent along o, fixing it.
func (t *Tree[P]) GrowExtent(n *Node[P], o tiling.Orientation, delta int) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	t.ensureLayout()
	target := resizeTarget(n, o)
	if target == nil {
		return false
	}
	t.setFixed(target, o, target.geom.Extent(o)+delta)
	return true
}

// SetSize fixes n's extent along its parent's axis.
func (t *Tree[P]) SetSize(n *Node[P], val int) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	return t.SetExtent(n, n.parent.orientation, val)
}

// GrowSize grows n along its parent's axis.
func (t *Tree[P]) GrowSize(n *Node[P], delta int) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	return t.GrowExtent(n, n.parent.orientation, delta)
}

// ResetSize makes both of n's axes flexible again with the default weight.
func (t *Tree[P]) ResetSize(n *Node[P]) bool {
	if t.checkLeaf(n) != nil {
		return false
	}
	t.ensureLayout()
	n.size = flexible()
	t.normalize(n.parent)
	t.invalidate()
	return true
}

// setFixed clamps val so every sibling keeps at least MinSize, then makes
// room: when the fixed siblings plus the flexible minimum no longer fit, or
// no flexible sibling is left to absorb the change, the fixed siblings are
// rescaled to take exactly what remains.
func (t *Tree[P]) setFixed(n *Node[P], o tiling.Orientation, val int) {
	parent := n.parent
	total := parent.geom.Extent(o)
	minSize := t.opts.MinSize

	siblings := make([]*Node[P], 0, len(parent.children)-1)
	for _, s := range parent.children {
		if s != n {
			siblings = append(siblings, s)
		}
	}

	val = min(val, total-minSize*len(siblings))
	val = max(val, minSize)

	fixedTotal, need, flex := 0, 0, 0
	for _, s := range siblings {
		if ok, v := s.size.fixed(o); ok {
			fixedTotal += v
			need += v
			continue
		}
		flex++
		need += minSize
	}

	space := total - need - val
	if space < 0 || flex == 0 {
		t.rescaleFixed(siblings, o, max(fixedTotal+space, 0))
	}

	n.size.setFixed(o, val)
	t.normalize(parent)
	t.invalidate()
}
