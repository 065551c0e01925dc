package text

import "errors"

var (
	// ErrEmptyFontData is returned when a font source is created from
	// zero bytes.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrClosedSource is returned when a closed FontSource is used.
	ErrClosedSource = errors.New("text: font source is closed")
)
