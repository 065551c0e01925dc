package text

import (
	"golang.org/x/image/font/sfnt"
)

// PathBuilder receives glyph outline geometry. The drawing context's
// Path satisfies this, so glyph outlines flow straight into the fill
// pipeline.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// AppendGlyphPath appends the outline of one glyph to pb, positioned
// with its origin at (x, y) on the baseline. Coordinates follow the
// raster convention: Y grows downward, so ascenders land above the
// baseline. Glyphs without an outline (spaces) append nothing.
func AppendGlyphPath(pb PathBuilder, face Face, gid GlyphID, x, y float64) error {
	sf, ok := face.(*sourceFace)
	if !ok {
		return nil
	}

	return sf.source.withBuffer(func(f *sfnt.Font, buf *sfnt.Buffer) error {
		segments, err := f.LoadGlyph(buf, sfnt.GlyphIndex(gid), sf.ppem(), nil)
		if err != nil {
			return err
		}
		open := false
		for _, seg := range segments {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					pb.Close()
				}
				pb.MoveTo(x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				pb.LineTo(x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y))
			case sfnt.SegmentOpQuadTo:
				pb.QuadraticTo(
					x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y),
					x+fixedToFloat(seg.Args[1].X), y+fixedToFloat(seg.Args[1].Y),
				)
			case sfnt.SegmentOpCubeTo:
				pb.CubicTo(
					x+fixedToFloat(seg.Args[0].X), y+fixedToFloat(seg.Args[0].Y),
					x+fixedToFloat(seg.Args[1].X), y+fixedToFloat(seg.Args[1].Y),
					x+fixedToFloat(seg.Args[2].X), y+fixedToFloat(seg.Args[2].Y),
				)
			}
		}
		if open {
			pb.Close()
		}
		return nil
	})
}

// AppendStringPath shapes text and appends every glyph outline to pb,
// with the text origin at (x, y) on the baseline. It returns the total
// advance in pixels.
func AppendStringPath(pb PathBuilder, face Face, s string, x, y float64) (float64, error) {
	var advance float64
	for _, g := range Shape(s, face) {
		if err := AppendGlyphPath(pb, face, g.GID, x+g.X, y+g.Y); err != nil {
			return advance, err
		}
		advance += g.XAdvance
	}
	return advance, nil
}

// Measure returns the shaped width of text in pixels.
func Measure(face Face, s string) float64 {
	var w float64
	for _, g := range Shape(s, face) {
		w += g.XAdvance
	}
	return w
}
