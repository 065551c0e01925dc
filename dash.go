package atelier

import "math"

// Dash is a stroke dash pattern: alternating on/off lengths plus a
// starting offset into the cycle. An odd number of lengths is logically
// doubled, matching PostScript semantics ([5] behaves as [5 5]).
type Dash struct {
	Lengths []float64
	Offset  float64
}

// NewDash builds a dash pattern from alternating dash/gap lengths.
// Negative lengths are folded to their absolute value. Returns nil when
// no positive length is given, which means a solid stroke.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	any := false
	norm := make([]float64, len(lengths))
	for i, l := range lengths {
		norm[i] = math.Abs(l)
		if norm[i] > 0 {
			any = true
		}
	}
	if !any {
		return nil
	}

	return &Dash{Lengths: norm}
}

// WithOffset returns a copy of the dash starting offset units into the
// pattern cycle.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Lengths: d.Lengths, Offset: offset}
}

// cycle returns the effective even-length pattern.
func (d *Dash) cycle() []float64 {
	if len(d.Lengths)%2 == 0 {
		return d.Lengths
	}
	out := make([]float64, 0, len(d.Lengths)*2)
	out = append(out, d.Lengths...)
	out = append(out, d.Lengths...)
	return out
}

// IsDashed reports whether d represents an actual dash pattern.
func (d *Dash) IsDashed() bool {
	if d == nil {
		return false
	}
	for _, l := range d.Lengths {
		if l > 0 {
			return true
		}
	}
	return false
}
