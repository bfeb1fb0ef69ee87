package tree

import "github.com/1broseidon/flextile/internal/tiling"

// layout assigns rectangles to c's descendants from c's own rectangle.
//
// Fixed children take their extent first. When the fixed total no longer
// fits next to the flexible children's minimum, or there are no flexible
// children to absorb the rest, fixed extents are scaled to fit. The stored
// sizes are left alone. Flexible children then split what is left by
// weight. The cross axis of every child equals c's cross axis.
func (t *Tree[P]) layout(c *Node[P]) {
	if len(c.children) == 0 {
		return
	}
	o := c.orientation
	total := c.geom.Extent(o)

	shares := make([]float64, len(c.children))
	isFixed := make([]bool, len(c.children))
	var fixedSum, weightSum float64
	flexCount := 0
	for i, child := range c.children {
		if ok, v := child.size.fixed(o); ok {
			isFixed[i] = true
			shares[i] = float64(max(v, 0))
			fixedSum += shares[i]
			continue
		}
		flexCount++
		weightSum += weightOf(child)
	}

	budget := float64(total)
	if flexCount > 0 {
		budget -= float64(min(total, t.opts.MinSize*flexCount))
	}
	if fixedSum > 0 && (fixedSum > budget || flexCount == 0) {
		scale := budget / fixedSum
		fixedSum = 0
		for i := range shares {
			if isFixed[i] {
				shares[i] *= scale
				fixedSum += shares[i]
			}
		}
	}

	free := float64(total) - fixedSum
	for i, child := range c.children {
		if !isFixed[i] {
			shares[i] = free * weightOf(child) / weightSum
		}
	}

	rects := tiling.Subdivide(c.geom, o, tiling.SplitExtent(total, shares))
	for i, child := range c.children {
		child.geom = rects[i]
		if child.kind == KindContainer {
			t.layout(child)
		}
	}
}

func weightOf[P comparable](n *Node[P]) float64 {
	if n.size.weight <= 0 {
		return 1
	}
	return n.size.weight
}

// normalize keeps c's flexible weights averaging 1 so a newcomer with
// weight 1 takes an even share. When every child is fixed along c's axis
// the fixed extents are rescaled to exactly fill c.
func (t *Tree[P]) normalize(c *Node[P]) {
	if c == nil || len(c.children) == 0 {
		return
	}
	o := c.orientation
	var sum float64
	flex := 0
	for _, child := range c.children {
		if ok, _ := child.size.fixed(o); ok {
			continue
		}
		sum += weightOf(child)
		flex++
	}
	if flex > 0 {
		mean := sum / float64(flex)
		for _, child := range c.children {
			if ok, _ := child.size.fixed(o); !ok {
				child.size.weight = weightOf(child) / mean
			}
		}
		return
	}
	t.rescaleFixed(c.children, o, c.geom.Extent(o))
}

// rescaleFixed sets the fixed extents of nodes along o so they sum to total.
// Non-fixed nodes are ignored.
func (t *Tree[P]) rescaleFixed(nodes []*Node[P], o tiling.Orientation, total int) {
	var fixed []*Node[P]
	var shares []float64
	var sum float64
	for _, n := range nodes {
		if ok, v := n.size.fixed(o); ok {
			fixed = append(fixed, n)
			shares = append(shares, float64(v))
			sum += float64(v)
		}
	}
	if len(fixed) == 0 || total <= 0 {
		return
	}
	for i := range shares {
		if sum > 0 {
			shares[i] = shares[i] * float64(total) / sum
		} else {
			shares[i] = float64(total) / float64(len(shares))
		}
	}
	for i, v := range tiling.SplitExtent(total, shares) {
		fixed[i].size.setFixed(o, max(v, 0))
	}
}
