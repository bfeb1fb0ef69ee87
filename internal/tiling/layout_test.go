package tiling

import (
	"reflect"
	"testing"

	"github.com/1broseidon/flextile/internal/config"
)

func TestSplitExtent_RemainderGoesToLast(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		shares []float64
		want   []int
	}{
		{"even", 1000, []float64{500, 500}, []int{500, 500}},
		{"thirds", 1000, []float64{1000.0 / 3, 1000.0 / 3, 1000.0 / 3}, []int{333, 333, 334}},
		{"fixed and flexible", 1000, []float64{300, 700}, []int{300, 700}},
		{"negative share clamps", 10, []float64{-5, 15}, []int{0, 10}},
		{"single", 7, []float64{6.5}, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitExtent(tt.total, tt.shares)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitExtent(%d, %v) = %v, want %v", tt.total, tt.shares, got, tt.want)
			}
			sum := 0
			for _, v := range got {
				sum += v
			}
			if sum != tt.total {
				t.Fatalf("extents sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestSubdivide_TilesParent(t *testing.T) {
	parent := Rect{X: 10, Y: 20, Width: 300, Height: 100}

	rects := Subdivide(parent, Horizontal, []int{100, 200})
	want := []Rect{
		{X: 10, Y: 20, Width: 100, Height: 100},
		{X: 110, Y: 20, Width: 200, Height: 100},
	}
	if !reflect.DeepEqual(rects, want) {
		t.Fatalf("horizontal subdivide = %v, want %v", rects, want)
	}

	rects = Subdivide(parent, Vertical, []int{40, 60})
	want = []Rect{
		{X: 10, Y: 20, Width: 300, Height: 40},
		{X: 10, Y: 60, Width: 300, Height: 60},
	}
	if !reflect.DeepEqual(rects, want) {
		t.Fatalf("vertical subdivide = %v, want %v", rects, want)
	}
}

func TestApplyPadding(t *testing.T) {
	monitor := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	got, err := ApplyPadding(monitor, config.Margins{Top: 30, Bottom: 10, Left: 5, Right: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Rect{X: 5, Y: 30, Width: 1910, Height: 1040}
	if got != want {
		t.Fatalf("ApplyPadding = %v, want %v", got, want)
	}

	if _, err := ApplyPadding(Rect{Width: 10, Height: 10}, config.Margins{Left: 5, Right: 5}); err == nil {
		t.Fatalf("expected error when padding consumes the monitor")
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	if got := r.Inset(2); got != (Rect{X: 2, Y: 2, Width: 96, Height: 46}) {
		t.Fatalf("Inset(2) = %v", got)
	}
	if got := r.Inset(0); got != r {
		t.Fatalf("Inset(0) = %v, want unchanged", got)
	}
	if got := (Rect{Width: 3, Height: 3}).Inset(5); got.Width != 1 || got.Height != 1 {
		t.Fatalf("Inset should clamp to 1x1, got %v", got)
	}
}

func TestApplyRegion_Halves(t *testing.T) {
	monitor := Rect{X: 0, Y: 0, Width: 1000, Height: 800}

	tests := []struct {
		region config.RegionType
		want   Rect
	}{
		{config.RegionFull, Rect{X: 0, Y: 0, Width: 1000, Height: 800}},
		{config.RegionLeftHalf, Rect{X: 0, Y: 0, Width: 500, Height: 800}},
		{config.RegionRightHalf, Rect{X: 500, Y: 0, Width: 500, Height: 800}},
		{config.RegionTopHalf, Rect{X: 0, Y: 0, Width: 1000, Height: 400}},
		{config.RegionBottomHalf, Rect{X: 0, Y: 400, Width: 1000, Height: 400}},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			got := ApplyRegion(monitor, config.TileRegion{Type: tt.region})
			if got != tt.want {
				t.Fatalf("ApplyRegion(%s) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestApplyRegion_CustomClampsToMinimumSize(t *testing.T) {
	monitor := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	region := config.TileRegion{
		Type:          config.RegionCustom,
		XPercent:      0,
		YPercent:      0,
		WidthPercent:  1,
		HeightPercent: 1,
	}

	adjusted := ApplyRegion(monitor, region)
	if adjusted.Width != 1 || adjusted.Height != 1 {
		t.Fatalf("expected 1x1, got %dx%d", adjusted.Width, adjusted.Height)
	}
}
