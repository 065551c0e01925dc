package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// FontSource is a loaded font file. One FontSource creates any number
// of Face values at different sizes; it is heavyweight and should be
// shared across the application.
//
// FontSource is safe for concurrent use and must not be copied after
// creation.
type FontSource struct {
	// addr points at the FontSource itself so accidental value copies
	// are caught early.
	addr *FontSource

	data []byte
	font *sfnt.Font
	name string

	mu     sync.Mutex
	buf    sfnt.Buffer
	closed bool
}

// NewFontSource parses TTF or OTF font data. The data slice is copied
// internally and may be reused by the caller.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
	}
	s.addr = s
	s.name = s.readName()
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFontSource(data)
}

// Face creates a Face at the given size in pixels per em. Panics if s
// is nil, which usually means an ignored error from a constructor.
func (s *FontSource) Face(size float64) Face {
	if s == nil {
		panic("text: FontSource is nil (was the constructor error checked?)")
	}
	s.copyCheck()
	return &sourceFace{source: s, size: size}
}

// Name returns the font family name, or "" if the font carries none.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Data returns the raw font bytes. Shapers parse these with their own
// backends; the slice must not be modified.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	return s.data
}

// Close releases the font data. Faces created from this source become
// invalid. Close is idempotent.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	s.font = nil
	return nil
}

func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func (s *FontSource) readName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, err := s.font.Name(&s.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// withBuffer runs fn while holding the source's sfnt buffer. sfnt.Font
// is safe for concurrent use only with distinct buffers, so all glyph
// queries funnel through here.
func (s *FontSource) withBuffer(fn func(f *sfnt.Font, buf *sfnt.Buffer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosedSource
	}
	return fn(s.font, &s.buf)
}
