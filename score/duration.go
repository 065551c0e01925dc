package score

import (
	"errors"
	"fmt"
)

// TicksPerWhole is the tick resolution: a whole note divides into 128
// ticks, so a 32nd note is 4 ticks and its dot is still exact.
const TicksPerWhole = 128

// ErrBadDuration is returned for bases that are not a power of two in
// 1..32, or for dots the grid cannot represent exactly.
var ErrBadDuration = errors.New("score: invalid duration")

// Duration is a note value: a power-of-two base (1 = whole, 4 =
// quarter) plus augmentation dots.
type Duration struct {
	Base int
	Dots int
}

// NewDuration validates the base and dot count.
func NewDuration(base, dots int) (Duration, error) {
	switch base {
	case 1, 2, 4, 8, 16, 32:
	default:
		return Duration{}, fmt.Errorf("%w: base %d", ErrBadDuration, base)
	}
	if dots < 0 || dots > 2 {
		return Duration{}, fmt.Errorf("%w: %d dots", ErrBadDuration, dots)
	}
	// Each dot halves again; the result must stay on the tick grid.
	if (TicksPerWhole/base)%(1<<dots) != 0 {
		return Duration{}, fmt.Errorf("%w: %d dots on base %d", ErrBadDuration, dots, base)
	}
	return Duration{Base: base, Dots: dots}, nil
}

// MustDuration is NewDuration for literals known to be valid.
func MustDuration(base, dots int) Duration {
	d, err := NewDuration(base, dots)
	if err != nil {
		panic(err)
	}
	return d
}

// Ticks returns the length on the 128-tick grid. Dots add successive
// halves; a dotted quarter is 32 + 16 = 48.
func (d Duration) Ticks() int {
	base := TicksPerWhole / d.Base
	total := base
	add := base
	for i := 0; i < d.Dots; i++ {
		add /= 2
		total += add
	}
	return total
}

// String returns the LilyPond duration suffix, e.g. "4." for a dotted
// quarter.
func (d Duration) String() string {
	s := fmt.Sprintf("%d", d.Base)
	for i := 0; i < d.Dots; i++ {
		s += "."
	}
	return s
}

// TimeSignature is beats per measure over a unit note value.
type TimeSignature struct {
	Beats int
	Unit  int
}

// NewTimeSignature validates the unit as a power of two.
func NewTimeSignature(beats, unit int) (TimeSignature, error) {
	if beats < 1 {
		return TimeSignature{}, fmt.Errorf("%w: %d beats", ErrBadDuration, beats)
	}
	switch unit {
	case 1, 2, 4, 8, 16, 32:
	default:
		return TimeSignature{}, fmt.Errorf("%w: unit %d", ErrBadDuration, unit)
	}
	return TimeSignature{Beats: beats, Unit: unit}, nil
}

// Ticks returns the measure length on the tick grid.
func (ts TimeSignature) Ticks() int {
	return ts.Beats * (TicksPerWhole / ts.Unit)
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Beats, ts.Unit)
}
