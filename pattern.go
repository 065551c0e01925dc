package atelier

// Pattern is a source of color for fills and strokes.
// ColorAt is queried in user-space coordinates.
type Pattern interface {
	ColorAt(x, y float64) RGBA
}

// SolidPattern is a single-color pattern.
type SolidPattern struct {
	Color RGBA
}

// NewSolidPattern creates a solid color pattern.
func NewSolidPattern(c RGBA) *SolidPattern {
	return &SolidPattern{Color: c}
}

// ColorAt implements Pattern.
func (p *SolidPattern) ColorAt(x, y float64) RGBA {
	return p.Color
}

// solidColor returns the pattern's color and true when p is solid,
// letting the renderer skip per-pixel pattern lookups.
func solidColor(p Pattern) (RGBA, bool) {
	if sp, ok := p.(*SolidPattern); ok {
		return sp.Color, true
	}
	return RGBA{}, false
}
