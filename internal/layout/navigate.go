package layout

import (
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
)

func payload[P comparable](n *tree.Node[P]) (P, bool) {
	if n == nil {
		var zero P
		return zero, false
	}
	return n.Payload(), true
}

// FocusFirst returns the first payload in leaf order.
func (l *FlexTree[P]) FocusFirst() (P, bool) { return payload(l.tree.First()) }

// FocusLast returns the last payload in leaf order.
func (l *FlexTree[P]) FocusLast() (P, bool) { return payload(l.tree.Last()) }

// FocusNext returns the payload after p in leaf order. It reports false
// instead of wrapping around to the first leaf.
func (l *FlexTree[P]) FocusNext(p P) (P, bool, error) {
	n, err := l.node(p)
	if err != nil {
		var zero P
		return zero, false, err
	}
	next := l.tree.Next(n)
	if next == l.tree.First() {
		var zero P
		return zero, false, nil
	}
	out, ok := payload(next)
	return out, ok, nil
}

// FocusPrevious returns the payload before p in leaf order. It reports
// false instead of wrapping around to the last leaf.
func (l *FlexTree[P]) FocusPrevious(p P) (P, bool, error) {
	n, err := l.node(p)
	if err != nil {
		var zero P
		return zero, false, err
	}
	prev := l.tree.Prev(n)
	if prev == l.tree.Last() {
		var zero P
		return zero, false, nil
	}
	out, ok := payload(prev)
	return out, ok, nil
}

// Next returns the payload after the focused one, wrapping around. With
// nothing focused it returns the first payload.
func (l *FlexTree[P]) Next() (P, bool) {
	focus, ok := l.Focused()
	if !ok {
		return l.FocusFirst()
	}
	return payload(l.tree.Next(l.tree.Find(focus)))
}

// Previous returns the payload before the focused one, wrapping around.
// With nothing focused it returns the last payload.
func (l *FlexTree[P]) Previous() (P, bool) {
	focus, ok := l.Focused()
	if !ok {
		return l.FocusLast()
	}
	return payload(l.tree.Prev(l.tree.Find(focus)))
}

// Recent returns the most recently used payload other than the focused one.
func (l *FlexTree[P]) Recent() (P, bool) {
	var exclude *tree.Node[P]
	if focus, ok := l.Focused(); ok {
		exclude = l.tree.Find(focus)
	}
	return payload(l.tree.Recent(exclude))
}

// Close returns the nearest payload toward dir from p.
func (l *FlexTree[P]) Close(p P, dir tiling.Direction) (P, bool, error) {
	n, err := l.node(p)
	if err != nil {
		var zero P
		return zero, false, err
	}
	out, ok := payload(l.tree.Close(n, dir))
	return out, ok, nil
}

// CloseLeft returns the nearest payload left of p.
func (l *FlexTree[P]) CloseLeft(p P) (P, bool, error) { return l.Close(p, tiling.DirLeft) }

// CloseRight returns the nearest payload right of p.
func (l *FlexTree[P]) CloseRight(p P) (P, bool, error) { return l.Close(p, tiling.DirRight) }

// CloseUp returns the nearest payload above p.
func (l *FlexTree[P]) CloseUp(p P) (P, bool, error) { return l.Close(p, tiling.DirUp) }

// CloseDown returns the nearest payload below p.
func (l *FlexTree[P]) CloseDown(p P) (P, bool, error) { return l.Close(p, tiling.DirDown) }

// Move relocates p toward dir.
func (l *FlexTree[P]) Move(p P, dir tiling.Direction) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.Move(n, dir)
	return nil
}

// MoveLeft moves p one step to the left.
func (l *FlexTree[P]) MoveLeft(p P) error { return l.Move(p, tiling.DirLeft) }

// MoveRight moves p one step to the right.
func (l *FlexTree[P]) MoveRight(p P) error { return l.Move(p, tiling.DirRight) }

// MoveUp moves p one step up.
func (l *FlexTree[P]) MoveUp(p P) error { return l.Move(p, tiling.DirUp) }

// MoveDown moves p one step down.
func (l *FlexTree[P]) MoveDown(p P) error { return l.Move(p, tiling.DirDown) }

// Integrate merges p into its neighbour toward dir.
func (l *FlexTree[P]) Integrate(p P, dir tiling.Direction) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.tree.Integrate(n, dir)
	return nil
}

// IntegrateLeft merges p into its neighbour on the left.
func (l *FlexTree[P]) IntegrateLeft(p P) error { return l.Integrate(p, tiling.DirLeft) }

// IntegrateRight merges p into its neighbour on the right.
func (l *FlexTree[P]) IntegrateRight(p P) error { return l.Integrate(p, tiling.DirRight) }

// IntegrateUp merges p into its neighbour above.
func (l *FlexTree[P]) IntegrateUp(p P) error { return l.Integrate(p, tiling.DirUp) }

// IntegrateDown merges p into its neighbour below.
func (l *FlexTree[P]) IntegrateDown(p P) error { return l.Integrate(p, tiling.DirDown) }
