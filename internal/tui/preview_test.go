package tui

import (
	"testing"

	"github.com/1broseidon/flextile/internal/layout"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/tiling"
	"github.com/1broseidon/flextile/internal/wm"
)

func TestRenderDisplayPreview_LabelsTiles(t *testing.T) {
	d := wm.DisplayState{
		Root: tiling.Rect{Width: 1000, Height: 500},
		Windows: []layout.Placement[platform.WindowID]{
			{Payload: 1, Rect: tiling.Rect{Width: 500, Height: 500}, Minimized: true},
			{Payload: 2, Rect: tiling.Rect{X: 500, Width: 500, Height: 500}, Focused: true},
		},
	}

	mid := []rune(renderDisplayPreview(d, 21, 7)[3])
	if string(mid[4:6]) != "~1" {
		t.Fatalf("minimized label missing: %q", string(mid))
	}
	if string(mid[13:15]) != "*2" {
		t.Fatalf("focused label missing: %q", string(mid))
	}
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		p    layout.Placement[platform.WindowID]
		want string
	}{
		{layout.Placement[platform.WindowID]{Payload: 7}, "7"},
		{layout.Placement[platform.WindowID]{Payload: 7, Focused: true}, "*7"},
		{layout.Placement[platform.WindowID]{Payload: 7, Minimized: true}, "~7"},
		{layout.Placement[platform.WindowID]{Payload: 7, Minimized: true, Focused: true}, "*~7"},
	}
	for _, tt := range tests {
		if got := tileLabel(tt.p); got != tt.want {
			t.Errorf("tileLabel(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSummarizeDisplay(t *testing.T) {
	d := wm.DisplayState{Windows: []layout.Placement[platform.WindowID]{
		{Rect: tiling.Rect{Width: 300, Height: 500}},
		{Rect: tiling.Rect{Width: 700, Height: 500}},
	}}
	if got := summarizeDisplay(d); got != "2 windows • min 300×500 • max 700×500" {
		t.Fatalf("summary = %q", got)
	}
	if got := summarizeDisplay(wm.DisplayState{}); got != "no windows" {
		t.Fatalf("summary = %q", got)
	}
}
