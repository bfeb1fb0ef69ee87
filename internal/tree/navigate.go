package tree

import "github.com/1broseidon/flextile/internal/tiling"

// First returns the first leaf in pre-order, or nil on an empty tree.
func (t *Tree[P]) First() *Node[P] {
	var found *Node[P]
	t.root.walk(func(n *Node[P]) bool {
		if n.kind == KindLeaf {
			found = n
			return false
		}
		return true
	})
	return found
}

// Last returns the last leaf in pre-order, or nil on an empty tree.
func (t *Tree[P]) Last() *Node[P] {
	cur := t.root
	for cur.kind == KindContainer {
		if len(cur.children) == 0 {
			return nil
		}
		cur = cur.children[len(cur.children)-1]
	}
	return cur
}

// Next returns the leaf after n in pre-order, wrapping to the first leaf.
func (t *Tree[P]) Next(n *Node[P]) *Node[P] {
	return t.step(n, 1)
}

// Prev returns the leaf before n in pre-order, wrapping to the last leaf.
func (t *Tree[P]) Prev(n *Node[P]) *Node[P] {
	return t.step(n, -1)
}

func (t *Tree[P]) step(n *Node[P], delta int) *Node[P] {
	leaves := t.Leaves()
	for i, l := range leaves {
		if l == n {
			return leaves[(i+delta+len(leaves))%len(leaves)]
		}
	}
	return nil
}

// Close returns the nearest leaf lying entirely toward dir from n whose
// perpendicular span overlaps n's. Nearest is by edge-to-edge distance;
// ties go to the larger overlap, then the more recently accessed leaf, then
// the earlier leaf in pre-order. Returns nil when no leaf qualifies.
func (t *Tree[P]) Close(n *Node[P], dir tiling.Direction) *Node[P] {
	if t.checkLeaf(n) != nil {
		return nil
	}
	t.ensureLayout()

	var best *Node[P]
	bestDist, bestOverlap := 0, 0
	for _, c := range t.Leaves() {
		if c == n {
			continue
		}
		dist, overlap, ok := tiling.Neighbor(n.geom, c.geom, dir)
		if !ok {
			continue
		}
		if best == nil ||
			dist < bestDist ||
			(dist == bestDist && overlap > bestOverlap) ||
			(dist == bestDist && overlap == bestOverlap && c.accessSeq > best.accessSeq) {
			best, bestDist, bestOverlap = c, dist, overlap
		}
	}
	return best
}

// Recent returns the most recently accessed leaf other than exclude. Leaves
// never accessed rank below all others, in pre-order.
func (t *Tree[P]) Recent(exclude *Node[P]) *Node[P] {
	var best *Node[P]
	for _, l := range t.Leaves() {
		if l == exclude {
			continue
		}
		if best == nil || l.accessSeq > best.accessSeq {
			best = l
		}
	}
	return best
}
