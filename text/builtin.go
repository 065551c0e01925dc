package text

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

var (
	builtinOnce   sync.Once
	builtinSource *FontSource
)

// BuiltinSource returns a FontSource for the embedded Go Regular font.
// It parses the font on first call and is shared process-wide, so
// callers that never load a font file still get working text.
func BuiltinSource() *FontSource {
	builtinOnce.Do(func() {
		s, err := NewFontSource(goregular.TTF)
		if err != nil {
			// goregular ships with the module; a parse failure is a
			// build problem, not a runtime condition.
			panic("text: parse embedded font: " + err.Error())
		}
		builtinSource = s
	})
	return builtinSource
}

// BuiltinFace returns a Face for the embedded Go Regular font at the
// given size.
func BuiltinFace(size float64) Face {
	return BuiltinSource().Face(size)
}
