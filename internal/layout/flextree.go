// Package layout wraps a layout tree with the per-screen state a window
// manager needs: which payload has focus and how the next add is placed.
// Every entry point is keyed by payload.
package layout

import (
	"fmt"

	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
)

// FlexTree is one screen's layout. It is not safe for concurrent use.
type FlexTree[P comparable] struct {
	tree     *tree.Tree[P]
	opts     tree.Options
	focus    P
	hasFocus bool
	addMode  tree.AddMode
}

// New creates an empty layout covering root.
func New[P comparable](root tiling.Rect, opts tree.Options) *FlexTree[P] {
	return &FlexTree[P]{
		tree: tree.New[P](root, opts),
		opts: opts,
	}
}

// Clone returns a fresh, empty layout with the same options and root
// rectangle. It shares nothing with l.
func (l *FlexTree[P]) Clone() *FlexTree[P] {
	return New[P](l.tree.Root().PixelPerfect(), l.opts)
}

// Tree exposes the underlying tree for read-only inspection.
func (l *FlexTree[P]) Tree() *tree.Tree[P] { return l.tree }

// Len returns the number of payloads in the layout.
func (l *FlexTree[P]) Len() int { return l.tree.Len() }

// Contains reports whether p has a leaf.
func (l *FlexTree[P]) Contains(p P) bool { return l.tree.Find(p) != nil }

// Payloads returns every payload in leaf order.
func (l *FlexTree[P]) Payloads() []P {
	leaves := l.tree.Leaves()
	out := make([]P, len(leaves))
	for i, n := range leaves {
		out[i] = n.Payload()
	}
	return out
}

func (l *FlexTree[P]) node(p P) (*tree.Node[P], error) {
	n := l.tree.Find(p)
	if n == nil {
		return nil, fmt.Errorf("%v: %w", p, tree.ErrPayloadNotFound)
	}
	return n, nil
}

// Find returns the leaf holding p.
func (l *FlexTree[P]) Find(p P) (*tree.Node[P], bool) {
	n := l.tree.Find(p)
	return n, n != nil
}

// MustFind returns the leaf holding p and panics if there is none.
func (l *FlexTree[P]) MustFind(p P) *tree.Node[P] {
	n, err := l.node(p)
	if err != nil {
		panic(err)
	}
	return n
}

// SetAddMode sets how the next AddNext places its payload.
func (l *FlexTree[P]) SetAddMode(m tree.AddMode) { l.addMode = m }

// AddMode returns the pending add mode.
func (l *FlexTree[P]) AddMode() tree.AddMode { return l.addMode }

// Add places p relative to the focused leaf, or the last leaf when nothing
// has focus, and focuses it.
func (l *FlexTree[P]) Add(p P, mode tree.AddMode) error {
	var target *tree.Node[P]
	if l.hasFocus {
		target = l.tree.Find(l.focus)
	}
	n, err := l.tree.Add(p, target, mode)
	if err != nil {
		return err
	}
	l.setFocus(n)
	return nil
}

// AddWithRestore puts p back where it was last removed from and focuses it.
// It fails with tree.ErrNotRestorable when that slot is gone.
func (l *FlexTree[P]) AddWithRestore(p P) error {
	n, err := l.tree.Restore(p)
	if err != nil {
		return err
	}
	l.setFocus(n)
	return nil
}

// AddNext restores p to its previous slot if possible and otherwise adds it
// with the pending add mode. The pending mode is consumed either way.
func (l *FlexTree[P]) AddNext(p P) (restored bool, err error) {
	mode := l.addMode
	l.addMode = tree.AddDefault
	if l.tree.CanRestore(p) {
		if err := l.AddWithRestore(p); err == nil {
			return true, nil
		}
	}
	return false, l.Add(p, mode)
}

// Remove takes p out of the layout, remembering its slot. If p had focus,
// focus passes to the most recently used remaining leaf.
func (l *FlexTree[P]) Remove(p P) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	var successor *tree.Node[P]
	if l.hasFocus && l.focus == p {
		successor = l.tree.Recent(n)
	}
	if err := l.tree.Remove(n); err != nil {
		return err
	}
	if l.hasFocus && l.focus == p {
		l.hasFocus = false
		var zero P
		l.focus = zero
		if successor != nil {
			l.setFocus(successor)
		}
	}
	return nil
}

func (l *FlexTree[P]) setFocus(n *tree.Node[P]) {
	l.tree.Access(n)
	l.focus = n.Payload()
	l.hasFocus = true
}

// Focus marks p as focused and most recently used.
func (l *FlexTree[P]) Focus(p P) error {
	n, err := l.node(p)
	if err != nil {
		return err
	}
	l.setFocus(n)
	return nil
}

// Focused returns the focused payload.
func (l *FlexTree[P]) Focused() (P, bool) {
	if l.hasFocus && l.tree.Find(l.focus) == nil {
		var zero P
		l.focus, l.hasFocus = zero, false
	}
	return l.focus, l.hasFocus
}

// Swap exchanges the slots of a and b.
func (l *FlexTree[P]) Swap(a, b P) error {
	na, err := l.node(a)
	if err != nil {
		return err
	}
	nb, err := l.node(b)
	if err != nil {
		return err
	}
	return l.tree.Swap(na, nb)
}

// ToggleMinimizeInline flips p's minimized flag and returns the new value.
func (l *FlexTree[P]) ToggleMinimizeInline(p P) (bool, error) {
	n, err := l.node(p)
	if err != nil {
		return false, err
	}
	return l.tree.ToggleMinimize(n), nil
}

// ConfigureRoot moves the layout to a new screen rectangle.
func (l *FlexTree[P]) ConfigureRoot(x, y, width, height int) {
	l.tree.Configure(tiling.Rect{X: x, Y: y, Width: width, Height: height})
}

// Root returns the screen rectangle the layout covers.
func (l *FlexTree[P]) Root() tiling.Rect {
	return l.tree.Root().PixelPerfect()
}

// PixelGeometry returns p's rectangle.
func (l *FlexTree[P]) PixelGeometry(p P) (tiling.Rect, error) {
	n, err := l.node(p)
	if err != nil {
		return tiling.Rect{}, err
	}
	return n.PixelPerfect(), nil
}

// TreeShape returns the nested structure of payloads.
func (l *FlexTree[P]) TreeShape() tree.Shape[P] { return l.tree.Shape() }

// Describe renders the tree with geometry for debugging.
func (l *FlexTree[P]) Describe() string { return l.tree.Describe() }

// Placement is one leaf's resolved position.
type Placement[P comparable] struct {
	Payload     P           `json:"payload"`
	Rect        tiling.Rect `json:"rect"`
	Minimized   bool        `json:"minimized"`
	FixedWidth  bool        `json:"fixed_width"`
	FixedHeight bool        `json:"fixed_height"`
	Focused     bool        `json:"focused"`
}

// Fixed reports whether either axis has a fixed size.
func (p Placement[P]) Fixed() bool { return p.FixedWidth || p.FixedHeight }

// Placements returns every leaf's rectangle in leaf order.
func (l *FlexTree[P]) Placements() []Placement[P] {
	focus, hasFocus := l.Focused()
	leaves := l.tree.Leaves()
	out := make([]Placement[P], 0, len(leaves))
	for _, n := range leaves {
		fw, _ := n.FixedWidth()
		fh, _ := n.FixedHeight()
		out = append(out, Placement[P]{
			Payload:     n.Payload(),
			Rect:        n.PixelPerfect(),
			Minimized:   n.Minimized(),
			FixedWidth:  fw,
			FixedHeight: fh,
			Focused:     hasFocus && n.Payload() == focus,
		})
	}
	return out
}

// Draw renders the layout as a box-drawing canvas for debugging.
func (l *FlexTree[P]) Draw(width, height int) string { return l.tree.Draw(width, height) }
