package layout

import "github.com/1broseidon/flextile/internal/tiling"

// SetWidth fixes the width of p, or of the nearest ancestor that sits in a
// horizontal container.
func (l *FlexTree[P]) SetWidth(p P, value int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.SetExtent(n, tiling.Horizontal, value)
	return nil
}

// SetHeight fixes the height of p, or of the nearest ancestor that sits in
// a vertical container.
func (l *FlexTree[P]) SetHeight(p P, value int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.SetExtent(n, tiling.Vertical, value)
	return nil
}

// SetSize fixes p's extent along its own container's axis.
func (l *FlexTree[P]) SetSize(p P, value int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.SetSize(n, value)
	return nil
}

// GrowWidth adds delta to the width SetWidth would change.
func (l *FlexTree[P]) GrowWidth(p P, delta int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.GrowExtent(n, tiling.Horizontal, delta)
	return nil
}

// GrowHeight adds delta to the height SetHeight would change.
func (l *FlexTree[P]) GrowHeight(p P, delta int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.GrowExtent(n, tiling.Vertical, delta)
	return nil
}

// GrowSize adds delta to p's extent along its own container's axis.
func (l *FlexTree[P]) GrowSize(p P, delta int) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.GrowSize(n, delta)
	return nil
}

// ResetSize makes p flexible on both axes again.
func (l *FlexTree[P]) ResetSize(p P) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.ResetSize(n)
	return nil
}
