package layout

import (
	"errors"
	"testing"

	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/tree"
)

func newLayout(t *testing.T, payloads ...string) *FlexTree[string] {
	t.Helper()
	l := New[string](tree.DefaultRoot, tree.Options{})
	for _, p := range payloads {
		if _, err := l.AddNext(p); err != nil {
			t.Fatalf("add %s: %v", p, err)
		}
	}
	return l
}

func TestAdd_FocusesNewPayload(t *testing.T) {
	l := newLayout(t, "a", "b")

	if got, ok := l.Focused(); !ok || got != "b" {
		t.Fatalf("focused = %q, %v; want b", got, ok)
	}
	if got := l.TreeShape().String(); got != "[a b]" {
		t.Fatalf("shape = %s", got)
	}
}

func TestAddNext_ConsumesMode(t *testing.T) {
	l := newLayout(t, "a", "b")

	l.SetAddMode(tree.AddVertical)
	if _, err := l.AddNext("c"); err != nil {
		t.Fatalf("add c: %v", err)
	}
	if l.AddMode() != tree.AddDefault {
		t.Fatalf("add mode should reset after use, got %s", l.AddMode())
	}
	if _, err := l.AddNext("d"); err != nil {
		t.Fatalf("add d: %v", err)
	}
	if got := l.TreeShape().Oriented(); got != "H[a V[b c d]]" {
		t.Fatalf("shape = %s, want H[a V[b c d]]", got)
	}
}

func TestAddNext_PrefersRestore(t *testing.T) {
	l := newLayout(t, "a", "b", "c")
	if err := l.Focus("a"); err != nil {
		t.Fatalf("focus: %v", err)
	}
	if err := l.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	restored, err := l.AddNext("b")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !restored {
		t.Fatalf("expected b to reclaim its slot")
	}
	if got := l.TreeShape().String(); got != "[a b c]" {
		t.Fatalf("shape = %s, want [a b c]", got)
	}
}

func TestAddWithRestore_NotRestorable(t *testing.T) {
	l := newLayout(t, "a")
	if err := l.AddWithRestore("x"); !errors.Is(err, tree.ErrNotRestorable) {
		t.Fatalf("err = %v, want ErrNotRestorable", err)
	}
}

func TestRemove_FocusPassesToRecent(t *testing.T) {
	l := newLayout(t, "a", "b", "c")
	_ = l.Focus("a")
	_ = l.Focus("c")

	if err := l.Remove("c"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, ok := l.Focused(); !ok || got != "a" {
		t.Fatalf("focused = %q, %v; want a", got, ok)
	}

	_ = l.Remove("a")
	_ = l.Remove("b")
	if _, ok := l.Focused(); ok {
		t.Fatalf("empty layout should have no focus")
	}
}

func TestPayloadNotFound(t *testing.T) {
	l := newLayout(t, "a")

	checks := map[string]error{
		"remove":    l.Remove("x"),
		"focus":     l.Focus("x"),
		"move":      l.MoveLeft("x"),
		"integrate": l.IntegrateUp("x"),
		"swap":      l.Swap("a", "x"),
		"width":     l.SetWidth("x", 10),
		"grow":      l.GrowSize("x", 10),
		"reset":     l.ResetSize("x"),
	}
	for name, err := range checks {
		if !errors.Is(err, tree.ErrPayloadNotFound) {
			t.Errorf("%s: err = %v, want ErrPayloadNotFound", name, err)
		}
	}
	if _, _, err := l.CloseRight("x"); !errors.Is(err, tree.ErrPayloadNotFound) {
		t.Errorf("close: err = %v", err)
	}
	if _, err := l.PixelGeometry("x"); !errors.Is(err, tree.ErrPayloadNotFound) {
		t.Errorf("geometry: err = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("MustFind should panic for unknown payloads")
		}
	}()
	l.MustFind("x")
}

func TestFocusNextPrevious_NoWrap(t *testing.T) {
	l := newLayout(t, "a", "b", "c")

	tests := []struct {
		name string
		fn   func(string) (string, bool, error)
		from string
		want string
		ok   bool
	}{
		{"next a", l.FocusNext, "a", "b", true},
		{"next b", l.FocusNext, "b", "c", true},
		{"next c wraps", l.FocusNext, "c", "", false},
		{"previous c", l.FocusPrevious, "c", "b", true},
		{"previous a wraps", l.FocusPrevious, "a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := tt.fn(tt.from)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || ok != tt.ok {
				t.Errorf("got %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	if got, ok := l.FocusFirst(); !ok || got != "a" {
		t.Errorf("FocusFirst = %q", got)
	}
	if got, ok := l.FocusLast(); !ok || got != "c" {
		t.Errorf("FocusLast = %q", got)
	}
}

func TestNextPrevious_Wrap(t *testing.T) {
	l := newLayout(t, "a", "b", "c")

	if got, _ := l.Next(); got != "a" {
		t.Fatalf("Next from c = %q, want a", got)
	}
	_ = l.Focus("a")
	if got, _ := l.Previous(); got != "c" {
		t.Fatalf("Previous from a = %q, want c", got)
	}
	if got, _ := l.Recent(); got != "c" {
		t.Fatalf("Recent = %q, want c", got)
	}
}

func TestDirectionalAndMutations(t *testing.T) {
	l := newLayout(t, "A", "B", "C")

	if got, ok, _ := l.CloseRight("A"); !ok || got != "B" {
		t.Fatalf("CloseRight(A) = %q, %v", got, ok)
	}
	if _, ok, _ := l.CloseRight("C"); ok {
		t.Fatalf("CloseRight(C) should be empty")
	}

	if err := l.MoveLeft("C"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := l.TreeShape().String(); got != "[A C B]" {
		t.Fatalf("shape = %s", got)
	}
	if err := l.IntegrateLeft("B"); err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if got := l.TreeShape().Oriented(); got != "H[A V[C B]]" {
		t.Fatalf("shape = %s", got)
	}
	if err := l.Swap("A", "B"); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if got := l.TreeShape().String(); got != "[B [C A]]" {
		t.Fatalf("shape = %s", got)
	}
}

func TestDirectionalHelpers_MatchGenericCalls(t *testing.T) {
	type helper func(*FlexTree[string], string) error
	tests := []struct {
		name  string
		dir   tiling.Direction
		move  helper
		merge helper
	}{
		{"left", tiling.DirLeft, (*FlexTree[string]).MoveLeft, (*FlexTree[string]).IntegrateLeft},
		{"right", tiling.DirRight, (*FlexTree[string]).MoveRight, (*FlexTree[string]).IntegrateRight},
		{"up", tiling.DirUp, (*FlexTree[string]).MoveUp, (*FlexTree[string]).IntegrateUp},
		{"down", tiling.DirDown, (*FlexTree[string]).MoveDown, (*FlexTree[string]).IntegrateDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, want := newLayout(t, "A", "B", "C"), newLayout(t, "A", "B", "C")
			if err := tt.move(got, "B"); err != nil {
				t.Fatalf("move helper: %v", err)
			}
			if err := want.Move("B", tt.dir); err != nil {
				t.Fatalf("Move: %v", err)
			}
			if g, w := got.TreeShape().Oriented(), want.TreeShape().Oriented(); g != w {
				t.Fatalf("move %s: helper gave %s, Move gave %s", tt.name, g, w)
			}

			if err := tt.merge(got, "B"); err != nil {
				t.Fatalf("integrate helper: %v", err)
			}
			if err := want.Integrate("B", tt.dir); err != nil {
				t.Fatalf("Integrate: %v", err)
			}
			if g, w := got.TreeShape().Oriented(), want.TreeShape().Oriented(); g != w {
				t.Fatalf("integrate %s: helper gave %s, Integrate gave %s", tt.name, g, w)
			}
		})
	}
}

func TestResize(t *testing.T) {
	l := newLayout(t, "a", "b")

	if err := l.SetWidth("a", 300); err != nil {
		t.Fatalf("set width: %v", err)
	}
	r, _ := l.PixelGeometry("b")
	if r.Width != 700 {
		t.Fatalf("b width = %d, want 700", r.Width)
	}
	if err := l.GrowWidth("a", 100); err != nil {
		t.Fatalf("grow: %v", err)
	}
	r, _ = l.PixelGeometry("a")
	if r.Width != 400 {
		t.Fatalf("a width = %d, want 400", r.Width)
	}
	if err := l.ResetSize("a"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	r, _ = l.PixelGeometry("a")
	if r.Width != 500 {
		t.Fatalf("a width = %d, want 500", r.Width)
	}
}

func TestConfigureRootAndPlacements(t *testing.T) {
	l := newLayout(t, "a", "b")
	l.ConfigureRoot(0, 0, 400, 200)

	if got := l.Root(); got != (tiling.Rect{Width: 400, Height: 200}) {
		t.Fatalf("root = %v", got)
	}
	minimized, err := l.ToggleMinimizeInline("a")
	if err != nil || !minimized {
		t.Fatalf("toggle = %v, %v", minimized, err)
	}

	placements := l.Placements()
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	if placements[0].Payload != "a" || !placements[0].Minimized || placements[0].Rect.Width != 200 {
		t.Fatalf("unexpected placement %+v", placements[0])
	}
	if !placements[1].Focused {
		t.Fatalf("b should be reported focused")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	l := newLayout(t, "a", "b")
	l.ConfigureRoot(0, 0, 1920, 1080)

	c := l.Clone()
	if c.Len() != 0 {
		t.Fatalf("clone should start empty, has %d", c.Len())
	}
	if c.Root() != l.Root() {
		t.Fatalf("clone root = %v, want %v", c.Root(), l.Root())
	}
	if _, err := c.AddNext("a"); err != nil {
		t.Fatalf("clone add: %v", err)
	}
	if l.Len() != 2 || c.Len() != 1 {
		t.Fatalf("layouts share state: original %d, clone %d", l.Len(), c.Len())
	}
}
