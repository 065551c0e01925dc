package stroke

import (
	"math"
	"testing"
)

func bounds(contours [][]Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return
}

func TestExpandButtLine(t *testing.T) {
	poly := []Point{{X: 10, Y: 20}, {X: 50, Y: 20}}
	got := Expand(poly, false, Options{Width: 4, Cap: CapButt, Join: JoinMiter, MiterLimit: 10})
	if len(got) != 1 {
		t.Fatalf("contours = %d, want 1", len(got))
	}
	minX, minY, maxX, maxY := bounds(got)
	want := [4]float64{10, 18, 50, 22}
	if minX != want[0] || minY != want[1] || maxX != want[2] || maxY != want[3] {
		t.Errorf("bounds = (%v, %v, %v, %v), want %v", minX, minY, maxX, maxY, want)
	}
}

func TestExpandSquareCapExtends(t *testing.T) {
	poly := []Point{{X: 10, Y: 20}, {X: 50, Y: 20}}
	got := Expand(poly, false, Options{Width: 4, Cap: CapSquare, Join: JoinMiter, MiterLimit: 10})
	minX, _, maxX, _ := bounds(got)
	if minX != 8 || maxX != 52 {
		t.Errorf("x bounds = (%v, %v), want (8, 52)", minX, maxX)
	}
}

func TestExpandRoundCapStaysWithinRadius(t *testing.T) {
	poly := []Point{{X: 10, Y: 20}, {X: 50, Y: 20}}
	got := Expand(poly, false, Options{Width: 4, Cap: CapRound, Join: JoinMiter, MiterLimit: 10})
	minX, minY, maxX, maxY := bounds(got)
	if minX < 8-1e-9 || maxX > 52+1e-9 || minY < 18-1e-9 || maxY > 22+1e-9 {
		t.Errorf("round cap escapes radius: bounds (%v, %v, %v, %v)", minX, minY, maxX, maxY)
	}
	// The arcs should reach close to the full radius past both
	// endpoints, not fold back over the stroke body.
	if maxX < 51.9 {
		t.Errorf("round cap maxX = %v, want close to 52", maxX)
	}
	if minX > 8.1 {
		t.Errorf("round cap minX = %v, want close to 8", minX)
	}
}

func TestExpandClosedProducesTwoContours(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	got := Expand(square, true, Options{Width: 2, Cap: CapButt, Join: JoinMiter, MiterLimit: 10})
	if len(got) != 2 {
		t.Fatalf("contours = %d, want 2 (outer + inner)", len(got))
	}
	minX, minY, maxX, maxY := bounds(got[:1])
	if minX != -1 || minY != -1 || maxX != 11 || maxY != 11 {
		t.Errorf("outer bounds = (%v, %v, %v, %v), want (-1, -1, 11, 11)", minX, minY, maxX, maxY)
	}
}

func TestExpandClosedEitherWinding(t *testing.T) {
	// The outer loop comes first no matter which way the polygon winds.
	windings := map[string][]Point{
		"clockwise":         {{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		"counter-clockwise": {{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}},
	}
	for name, square := range windings {
		t.Run(name, func(t *testing.T) {
			got := Expand(square, true, Options{Width: 2, Cap: CapButt, Join: JoinMiter, MiterLimit: 10})
			if len(got) != 2 {
				t.Fatalf("contours = %d, want 2", len(got))
			}
			minX, minY, maxX, maxY := bounds(got[:1])
			if minX != -1 || minY != -1 || maxX != 11 || maxY != 11 {
				t.Errorf("outer bounds = (%v, %v, %v, %v), want (-1, -1, 11, 11)", minX, minY, maxX, maxY)
			}
			minX, minY, maxX, maxY = bounds(got[1:])
			if minX < 0 || minY < 0 || maxX > 10 || maxY > 10 {
				t.Errorf("inner bounds = (%v, %v, %v, %v), want within (0, 0, 10, 10)", minX, minY, maxX, maxY)
			}
		})
	}
}

func TestMiterLimitFallsBackToBevel(t *testing.T) {
	// A near-180-degree turn produces an enormous miter.
	spike := []Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 1}}
	sharp := Expand(spike, false, Options{Width: 4, Cap: CapButt, Join: JoinMiter, MiterLimit: 2})
	_, _, maxX, _ := bounds(sharp)
	// With the limit at 2 the tip may extend at most 2*radius beyond
	// the corner.
	if maxX > 100+4+1e-9 {
		t.Errorf("miter tip at x=%v exceeds limit", maxX)
	}
}

func TestExpandDegenerate(t *testing.T) {
	tests := []struct {
		name string
		cap  Cap
		want int // contour count
	}{
		{"butt dot vanishes", CapButt, 0},
		{"round dot", CapRound, 1},
		{"square dot", CapSquare, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand([]Point{{X: 5, Y: 5}, {X: 5, Y: 5}}, false, Options{Width: 3, Cap: tt.cap, Join: JoinMiter, MiterLimit: 10})
			if len(got) != tt.want {
				t.Errorf("contours = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDash(t *testing.T) {
	line := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}

	t.Run("even split", func(t *testing.T) {
		pieces := Dash(line, false, []float64{2, 2}, 0)
		if len(pieces) != 3 {
			t.Fatalf("pieces = %d, want 3", len(pieces))
		}
		first := pieces[0]
		if first[0].X != 0 || first[len(first)-1].X != 2 {
			t.Errorf("first dash spans [%v, %v], want [0, 2]", first[0].X, first[len(first)-1].X)
		}
	})

	t.Run("offset shifts pattern", func(t *testing.T) {
		pieces := Dash(line, false, []float64{2, 2}, 1)
		first := pieces[0]
		if first[len(first)-1].X != 1 {
			t.Errorf("first dash ends at %v, want 1", first[len(first)-1].X)
		}
	})

	t.Run("zero total is solid", func(t *testing.T) {
		pieces := Dash(line, false, []float64{0, 0}, 0)
		if len(pieces) != 1 || len(pieces[0]) != 2 {
			t.Fatalf("want the original polyline back, got %v", pieces)
		}
	})

	t.Run("dash longer than line", func(t *testing.T) {
		pieces := Dash(line, false, []float64{100, 100}, 0)
		if len(pieces) != 1 {
			t.Fatalf("pieces = %d, want 1", len(pieces))
		}
	})
}
