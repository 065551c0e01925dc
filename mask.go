package atelier

// Mask is an 8-bit coverage mask. 0 masks a pixel out entirely, 255
// leaves it untouched. The Context uses one mask as its active clip
// region, intersecting a new coverage layer into it on every Clip.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a mask of the given size with all values zero.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the coverage at (x, y). Out-of-bounds reads return 0.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set writes the coverage at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = v
}

// Fill sets every value in the mask.
func (m *Mask) Fill(v uint8) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Intersect multiplies other into m, keeping the minimum effective
// coverage. Masks must have equal dimensions; mismatched masks leave m
// unchanged.
func (m *Mask) Intersect(other *Mask) {
	if other == nil || other.width != m.width || other.height != m.height {
		return
	}
	for i := range m.data {
		m.data[i] = uint8((uint32(m.data[i])*uint32(other.data[i]) + 127) / 255)
	}
}

// Clone returns a copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.width, m.height)
	copy(out.data, m.data)
	return out
}
