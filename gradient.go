package atelier

import (
	"math"
	"sort"
)

// ExtendMode controls how gradients behave outside [0, 1].
type ExtendMode int

const (
	// ExtendPad clamps to the edge colors.
	ExtendPad ExtendMode = iota
	// ExtendRepeat tiles the gradient.
	ExtendRepeat
	// ExtendReflect mirrors the gradient on every repeat.
	ExtendReflect
)

// ColorStop is a color at a position within a gradient.
type ColorStop struct {
	Offset float64 // position in [0, 1]
	Color  RGBA
}

// Gradient is the shared implementation of gradient patterns.
// Stops are kept sorted by offset.
type Gradient struct {
	stops  []ColorStop
	extend ExtendMode
}

// AddColorStop adds a stop and keeps the stop list sorted.
func (g *Gradient) AddColorStop(offset float64, c RGBA) {
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: c})
	sort.SliceStable(g.stops, func(i, j int) bool {
		return g.stops[i].Offset < g.stops[j].Offset
	})
}

// SetExtend sets the extend mode. The default is ExtendPad.
func (g *Gradient) SetExtend(mode ExtendMode) {
	g.extend = mode
}

// colorAt resolves the gradient color for position t.
func (g *Gradient) colorAt(t float64) RGBA {
	switch len(g.stops) {
	case 0:
		return Transparent
	case 1:
		return g.stops[0].Color
	}

	t = extend(t, g.extend)

	if t <= g.stops[0].Offset {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Offset {
		return last.Color
	}

	for i := 1; i < len(g.stops); i++ {
		a, b := g.stops[i-1], g.stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// extend maps t into [0, 1] according to the extend mode.
func extend(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		return t
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
		return t
	default:
		return clamp01(t)
	}
}

// LinearGradient interpolates colors along the segment (x0,y0)-(x1,y1).
type LinearGradient struct {
	Gradient
	x0, y0, x1, y1 float64
}

// NewLinearGradient creates a linear gradient along the given segment.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{x0: x0, y0: y0, x1: x1, y1: y1}
}

// ColorAt implements Pattern by projecting (x, y) onto the gradient axis.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	dx := g.x1 - g.x0
	dy := g.y1 - g.y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return g.colorAt(0)
	}
	t := ((x-g.x0)*dx + (y-g.y0)*dy) / lenSq
	return g.colorAt(t)
}

// RadialGradient interpolates colors by distance from a center point
// out to radius r.
type RadialGradient struct {
	Gradient
	cx, cy, r float64
}

// NewRadialGradient creates a radial gradient centered at (cx, cy).
func NewRadialGradient(cx, cy, r float64) *RadialGradient {
	return &RadialGradient{cx: cx, cy: cy, r: r}
}

// ColorAt implements Pattern.
func (g *RadialGradient) ColorAt(x, y float64) RGBA {
	if g.r <= 0 {
		return g.colorAt(0)
	}
	d := math.Hypot(x-g.cx, y-g.cy)
	return g.colorAt(d / g.r)
}
