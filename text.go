package atelier

import (
	"github.com/etudelab/atelier/text"
)

// defaultFontSize is used when text is drawn before any font is set.
const defaultFontSize = 13

// SetFontFace sets the face used by the string drawing methods.
func (c *Context) SetFontFace(face text.Face) {
	c.face = face
}

// FontFace returns the current face, loading the embedded Go Regular
// font on first use when none was set.
func (c *Context) FontFace() text.Face {
	if c.face == nil {
		c.face = text.BuiltinFace(defaultFontSize)
	}
	return c.face
}

// LoadFontFace loads a TTF or OTF file and sets it as the current face
// at the given size in pixels.
func (c *Context) LoadFontFace(path string, size float64) error {
	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return err
	}
	c.face = source.Face(size)
	return nil
}

// DrawString draws s with its origin at (x, y) on the baseline, filled
// with the current fill pattern through the current transform and
// clip. The current path is untouched.
func (c *Context) DrawString(s string, x, y float64) error {
	return c.DrawStringAnchored(s, x, y, 0, 0)
}

// DrawStringAnchored draws s anchored at (x, y); ax and ay are anchor
// fractions measured against the string width and the face ascent.
// ax=0, ay=0 puts the baseline origin at (x, y); ax=0.5, ay=0.5
// roughly centers the string on the point.
func (c *Context) DrawStringAnchored(s string, x, y float64, ax, ay float64) error {
	if s == "" {
		return nil
	}
	face := c.FontFace()
	if face == nil {
		return nil
	}

	w := text.Measure(face, s)
	h := face.Metrics().Ascent
	ox := x - ax*w
	oy := y + ay*h

	glyphs := NewPath()
	if _, err := text.AppendStringPath(glyphs, face, s, ox, oy); err != nil {
		return err
	}

	saved := c.path
	c.path = NewPath()
	c.appendTransformed(glyphs)
	err := c.doFill()
	c.path = saved
	return err
}

// MeasureString returns the shaped width and the face height of s in
// user units.
func (c *Context) MeasureString(s string) (w, h float64) {
	face := c.FontFace()
	if face == nil {
		return 0, 0
	}
	m := face.Metrics()
	return text.Measure(face, s), m.Ascent + m.Descent
}

// FontHeight returns the line height of the current face.
func (c *Context) FontHeight() float64 {
	face := c.FontFace()
	if face == nil {
		return 0
	}
	return face.Metrics().LineHeight()
}
