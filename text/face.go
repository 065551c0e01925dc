package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics are font-wide vertical metrics at a face's size, in pixels.
// Descent is the absolute distance below the baseline.
type Metrics struct {
	Ascent    float64
	Descent   float64
	LineGap   float64
	XHeight   float64
	CapHeight float64
}

// LineHeight returns the default baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a font at a specific size. Faces are lightweight; create
// them freely from a shared FontSource.
type Face interface {
	// Metrics returns the vertical font metrics at this size.
	Metrics() Metrics

	// Advance returns the width of text in pixels, glyph advances
	// summed without shaping adjustments. Use Shape for kerned layout.
	Advance(text string) float64

	// HasGlyph reports whether the font maps r to a real glyph.
	HasGlyph(r rune) bool

	// Size returns the face size in pixels per em.
	Size() float64

	// Source returns the FontSource the face was created from.
	Source() *FontSource

	private()
}

type sourceFace struct {
	source *FontSource
	size   float64
}

func (f *sourceFace) Metrics() Metrics {
	var m font.Metrics
	err := f.source.withBuffer(func(fnt *sfnt.Font, buf *sfnt.Buffer) error {
		var err error
		m, err = fnt.Metrics(buf, f.ppem(), font.HintingNone)
		return err
	})
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height - m.Ascent - m.Descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

func (f *sourceFace) Advance(text string) float64 {
	var total fixed.Int26_6
	err := f.source.withBuffer(func(fnt *sfnt.Font, buf *sfnt.Buffer) error {
		for _, r := range text {
			gid, err := fnt.GlyphIndex(buf, r)
			if err != nil {
				continue
			}
			adv, err := fnt.GlyphAdvance(buf, gid, f.ppem(), font.HintingNone)
			if err != nil {
				continue
			}
			total += adv
		}
		return nil
	})
	if err != nil {
		return 0
	}
	return fixedToFloat(total)
}

func (f *sourceFace) HasGlyph(r rune) bool {
	var gid sfnt.GlyphIndex
	err := f.source.withBuffer(func(fnt *sfnt.Font, buf *sfnt.Buffer) error {
		var err error
		gid, err = fnt.GlyphIndex(buf, r)
		return err
	})
	return err == nil && gid != 0
}

func (f *sourceFace) Size() float64        { return f.size }
func (f *sourceFace) Source() *FontSource { return f.source }
func (f *sourceFace) private()            {}

func (f *sourceFace) ppem() fixed.Int26_6 {
	return floatToFixed(f.size)
}

// floatToFixed converts pixels to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts 26.6 fixed point to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
