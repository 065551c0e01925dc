// Package text loads fonts and shapes strings into positioned glyphs.
//
// A FontSource wraps parsed TTF/OTF data and hands out Face values at
// a size. Shaping goes through the Shaper interface; the default
// GoTextShaper wraps go-text/typesetting's HarfBuzz port, so kerning,
// ligatures, and complex scripts come out right. Glyph outlines are
// extracted with x/image/font/sfnt and appended to any PathBuilder,
// which lets the drawing context fill text through its normal path
// pipeline.
package text
