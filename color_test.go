package atelier

import (
	"math"
	"testing"
)

func colorsClose(a, b RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RGBA
	}{
		{"six digits", "#FF0000", Red},
		{"no hash", "00FF00", Green},
		{"short form", "#00F", Blue},
		{"short with alpha", "#000F", RGBAf(0, 0, 0, 1)},
		{"eight digits", "#0000FF80", RGBAf(0, 0, 1, 128.0/255)},
		{"lowercase", "#ffffff", White},
		{"malformed", "#xyz-", Black},
		{"bad digits with alpha", "#zzzzzzzz", Black},
		{"empty", "", Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.in); !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    RGBA
	}{
		{"red", 0, 1, 0.5, Red},
		{"green", 120, 1, 0.5, Green},
		{"blue", 240, 1, 0.5, Blue},
		{"white", 0, 0, 1, White},
		{"black", 0, 0, 0, Black},
		{"hue wraps", 360, 1, 0.5, Red},
		{"negative hue", -120, 1, 0.5, Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSL(tt.h, tt.s, tt.l); !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("HSL(%v, %v, %v) = %+v, want %+v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    RGBA
	}{
		{"red", 0, 1, 1, Red},
		{"yellow", 60, 1, 1, Yellow},
		{"cyan", 180, 1, 1, Cyan},
		{"gray", 0, 0, 0.5, Gray(0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSV(tt.h, tt.s, tt.v); !colorsClose(got, tt.want, 1e-9) {
				t.Errorf("HSV(%v, %v, %v) = %+v, want %+v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if !colorsClose(got, Gray(0.5), 1e-9) {
		t.Errorf("Lerp midpoint = %+v, want mid gray", got)
	}
	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp(0) = %+v, want start color", got)
	}
	if got := Red.Lerp(Blue, 1); got != Blue {
		t.Errorf("Lerp(1) = %+v, want end color", got)
	}
}

func TestPremultiplyRoundTrip(t *testing.T) {
	c := RGBAf(0.8, 0.4, 0.2, 0.5)
	got := c.Premultiply().Unpremultiply()
	if !colorsClose(got, c, 1e-9) {
		t.Errorf("premultiply round trip = %+v, want %+v", got, c)
	}
	if got := Transparent.Premultiply().Unpremultiply(); got != (RGBA{}) {
		t.Errorf("transparent round trip = %+v, want zero", got)
	}
}

func TestColorConversion(t *testing.T) {
	c := RGBAf(0.25, 0.5, 0.75, 1)
	got := FromColor(c.Color())
	if !colorsClose(got, c, 1.0/255) {
		t.Errorf("FromColor(Color()) = %+v, want %+v", got, c)
	}
}
