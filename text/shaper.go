package text

import "sync"

// GlyphID identifies a glyph within a font.
type GlyphID uint16

// ShapedGlyph is one positioned glyph produced by shaping. X and Y are
// offsets from the text origin on the baseline, in pixels.
type ShapedGlyph struct {
	GID      GlyphID
	Cluster  int // byte index of the source rune in the input text
	X, Y     float64
	XAdvance float64
	YAdvance float64
}

// Shaper converts a string into positioned glyphs for a face.
type Shaper interface {
	Shape(text string, face Face) []ShapedGlyph
}

var (
	shaperMu sync.RWMutex
	shaper   Shaper
)

// SetShaper replaces the process-wide shaper. Passing nil restores the
// default GoTextShaper.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	shaper = s
}

// CurrentShaper returns the process-wide shaper, creating the default
// GoTextShaper on first use.
func CurrentShaper() Shaper {
	shaperMu.RLock()
	s := shaper
	shaperMu.RUnlock()
	if s != nil {
		return s
	}

	shaperMu.Lock()
	defer shaperMu.Unlock()
	if shaper == nil {
		shaper = NewGoTextShaper()
	}
	return shaper
}

// Shape shapes text with the process-wide shaper.
func Shape(text string, face Face) []ShapedGlyph {
	return CurrentShaper().Shape(text, face)
}
