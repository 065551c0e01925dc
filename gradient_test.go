package atelier

import "testing"

func TestLinearGradientColorAt(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0)
	g.AddColorStop(0, Black)
	g.AddColorStop(1, White)

	tests := []struct {
		name string
		x    float64
		want RGBA
	}{
		{"start", 0, Black},
		{"middle", 50, Gray(0.5)},
		{"end", 100, White},
		{"pad before", -50, Black},
		{"pad after", 200, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ColorAt(tt.x, 0); !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("ColorAt(%v, 0) = %+v, want %+v", tt.x, got, tt.want)
			}
		})
	}
}

func TestGradientStopsSorted(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(1, White)
	g.AddColorStop(0, Black)
	g.AddColorStop(0.5, Red)

	if got := g.ColorAt(5, 0); !colorsClose(got, Red, 1e-9) {
		t.Errorf("out-of-order stops: ColorAt(5) = %+v, want red", got)
	}
}

func TestGradientExtendModes(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	g.AddColorStop(0, Black)
	g.AddColorStop(1, White)

	t.Run("repeat", func(t *testing.T) {
		g.SetExtend(ExtendRepeat)
		// t=1.25 repeats to 0.25.
		if got := g.ColorAt(12.5, 0); !colorsClose(got, Gray(0.25), 1e-9) {
			t.Errorf("repeat ColorAt(12.5) = %+v, want 0.25 gray", got)
		}
	})

	t.Run("reflect", func(t *testing.T) {
		g.SetExtend(ExtendReflect)
		// t=1.25 reflects to 0.75.
		if got := g.ColorAt(12.5, 0); !colorsClose(got, Gray(0.75), 1e-9) {
			t.Errorf("reflect ColorAt(12.5) = %+v, want 0.75 gray", got)
		}
	})
}

func TestRadialGradientColorAt(t *testing.T) {
	g := NewRadialGradient(50, 50, 10)
	g.AddColorStop(0, White)
	g.AddColorStop(1, Black)

	if got := g.ColorAt(50, 50); !colorsClose(got, White, 1e-9) {
		t.Errorf("center = %+v, want white", got)
	}
	if got := g.ColorAt(60, 50); !colorsClose(got, Black, 1e-9) {
		t.Errorf("radius edge = %+v, want black", got)
	}
	if got := g.ColorAt(55, 50); !colorsClose(got, Gray(0.5), 1e-9) {
		t.Errorf("half radius = %+v, want mid gray", got)
	}
}

func TestGradientNoStops(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	if got := g.ColorAt(5, 0); got != Transparent {
		t.Errorf("no stops ColorAt = %+v, want transparent", got)
	}
	g.AddColorStop(0.5, Red)
	if got := g.ColorAt(100, 0); got != Red {
		t.Errorf("single stop ColorAt = %+v, want the stop color", got)
	}
}
