package shatter

import (
	"errors"
	"testing"
)

func newTestSampler(t *testing.T, stride int) *GlyphSampler {
	t.Helper()
	g, err := DefaultGlyphSampler(stride, 128)
	if err != nil {
		t.Fatalf("DefaultGlyphSampler: %v", err)
	}
	return g
}

func TestSampleEmptyText(t *testing.T) {
	g := newTestSampler(t, 5)
	pts, err := g.Sample("", 400, 300, 100, newRand(1))
	if err != nil || len(pts) != 0 {
		t.Errorf("Sample(\"\") = %d points, %v; want 0, nil", len(pts), err)
	}
	pts, err = g.Sample("A", 400, 300, 0, newRand(1))
	if err != nil || len(pts) != 0 {
		t.Errorf("Sample with size 0 = %d points, %v; want 0, nil", len(pts), err)
	}
}

func TestSampleNoSurface(t *testing.T) {
	g := newTestSampler(t, 5)
	tests := []struct {
		name string
		g    *GlyphSampler
		w, h int
	}{
		{"zero width", g, 0, 300},
		{"negative height", g, 400, -1},
		{"nil sampler", nil, 400, 300},
		{"no font", &GlyphSampler{Stride: 5}, 400, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.g.Sample("NTEC", tt.w, tt.h, 100, nil)
			if !errors.Is(err, ErrNoSurface) {
				t.Errorf("Sample error = %v, want ErrNoSurface", err)
			}
		})
	}
}

func TestSampleInkIsCentered(t *testing.T) {
	g := newTestSampler(t, 2)
	const w, h = 400, 300
	pts, err := g.Sample("NTEC", w, h, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) < 100 {
		t.Fatalf("got %d ink points, want a solid glyph set", len(pts))
	}
	var sx, sy float64
	for _, p := range pts {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			t.Fatalf("point %v outside the surface", p)
		}
		sx += p.X
		sy += p.Y
	}
	cx, cy := sx/float64(len(pts)), sy/float64(len(pts))
	if !approxEqual(cx, w/2, 40) || !approxEqual(cy, h/2, 40) {
		t.Errorf("ink centroid = (%v, %v), want near (%v, %v)", cx, cy, w/2, h/2)
	}
}

func TestSampleStrideGrid(t *testing.T) {
	g := newTestSampler(t, 5)
	pts, err := g.Sample("NTEC", 400, 300, 100, newRand(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) == 0 {
		t.Fatal("no ink points")
	}
	for _, p := range pts {
		if int(p.X)%5 != 0 || int(p.Y)%5 != 0 {
			t.Fatalf("point %v is off the stride grid", p)
		}
	}
}

func TestSampleShuffleIsPermutation(t *testing.T) {
	g := newTestSampler(t, 4)
	ordered, err := g.Sample("GO", 300, 200, 80, nil)
	if err != nil {
		t.Fatal(err)
	}
	shuffled, err := g.Sample("GO", 300, 200, 80, newRand(9))
	if err != nil {
		t.Fatal(err)
	}
	if len(ordered) != len(shuffled) {
		t.Fatalf("len = %d vs %d", len(ordered), len(shuffled))
	}
	seen := make(map[[2]float64]int, len(ordered))
	for _, p := range ordered {
		seen[[2]float64{p.X, p.Y}]++
	}
	moved := false
	for i, p := range shuffled {
		seen[[2]float64{p.X, p.Y}]--
		if p.X != ordered[i].X || p.Y != ordered[i].Y {
			moved = true
		}
	}
	for p, n := range seen {
		if n != 0 {
			t.Fatalf("point %v count mismatch %d", p, n)
		}
	}
	if !moved {
		t.Error("shuffle left every point in place")
	}
}

func TestNewGlyphSamplerBadFont(t *testing.T) {
	if _, err := NewGlyphSampler([]byte("not a font"), 5, 128); err == nil {
		t.Error("expected parse error")
	}
}

func TestSampleThreshold(t *testing.T) {
	const w, h = 400, 300
	g := newTestSampler(t, 1)
	mask, err := g.rasterize("NTEC", w, h, 100)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := g.Sample("NTEC", w, h, 100, newRand(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) == 0 {
		t.Fatal("no ink points")
	}
	for _, p := range pts {
		if a := mask.AlphaAt(int(p.X), int(p.Y)).A; a <= g.Threshold {
			t.Fatalf("point (%v, %v) has coverage %d, want > %d", p.X, p.Y, a, g.Threshold)
		}
	}

	loose := *g
	loose.Threshold = 0
	strict := *g
	strict.Threshold = 254
	all, _ := loose.Sample("NTEC", w, h, 100, nil)
	solid, _ := strict.Sample("NTEC", w, h, 100, nil)
	if len(solid) >= len(all) {
		t.Errorf("threshold 254 gave %d points, threshold 0 gave %d; want fewer", len(solid), len(all))
	}
}
