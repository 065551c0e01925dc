package score

import (
	"errors"
	"fmt"
)

var (
	// ErrBadTuplet is returned for degenerate tuplet ratios or tick
	// sums the ratio cannot scale exactly.
	ErrBadTuplet = errors.New("score: invalid tuplet")

	// ErrMeasureLength is returned when a measure's events do not fill
	// the time signature exactly.
	ErrMeasureLength = errors.New("score: measure length mismatch")
)

// Event is one rhythmic element of a measure.
type Event interface {
	// Ticks is the length on the 128-tick grid.
	Ticks() int
}

// Note is a pitched event. Tied notes carry into the next event.
type Note struct {
	Pitch    Pitch
	Duration Duration
	Tied     bool
}

func (n Note) Ticks() int { return n.Duration.Ticks() }

// Rest is silence. Rests never tie.
type Rest struct {
	Duration Duration
}

func (r Rest) Ticks() int { return r.Duration.Ticks() }

// Tuplet plays Num events' worth of time in the space of Den: a
// triplet of eighths is Num 3, Den 2.
type Tuplet struct {
	Num    int
	Den    int
	Events []Event
}

// NewTuplet validates the ratio and checks the inner tick sum scales
// exactly.
func NewTuplet(num, den int, events []Event) (Tuplet, error) {
	if num < 2 || den < 1 || num == den {
		return Tuplet{}, fmt.Errorf("%w: ratio %d/%d", ErrBadTuplet, num, den)
	}
	inner := 0
	for _, e := range events {
		inner += e.Ticks()
	}
	if inner*den%num != 0 {
		return Tuplet{}, fmt.Errorf("%w: %d inner ticks do not divide by %d/%d", ErrBadTuplet, inner, num, den)
	}
	return Tuplet{Num: num, Den: den, Events: events}, nil
}

// Ticks scales the inner sum by Den/Num with integer math.
func (t Tuplet) Ticks() int {
	inner := 0
	for _, e := range t.Events {
		inner += e.Ticks()
	}
	return inner * t.Den / t.Num
}

// Measure is one bar of events.
type Measure struct {
	Events []Event
}

// Ticks sums the event lengths.
func (m Measure) Ticks() int {
	total := 0
	for _, e := range m.Events {
		total += e.Ticks()
	}
	return total
}

// CheckMeasure verifies the measure fills the time signature exactly.
// An empty measure passes; the writer renders it as a full-measure
// rest.
func CheckMeasure(m Measure, ts TimeSignature) error {
	if len(m.Events) == 0 {
		return nil
	}
	if got, want := m.Ticks(), ts.Ticks(); got != want {
		return fmt.Errorf("%w: %d ticks, want %d", ErrMeasureLength, got, want)
	}
	return nil
}

// Voice is a named line of measures, one staff in the output.
type Voice struct {
	Name     string
	Measures []Measure
}

// Score is a complete piece.
type Score struct {
	Title    string
	Composer string
	Tempo    int // quarter notes per minute; 0 omits the mark
	Time     TimeSignature
	Voices   []Voice
}

// Check validates every measure of every voice against the time
// signature.
func (s *Score) Check() error {
	for _, v := range s.Voices {
		for i, m := range v.Measures {
			if err := CheckMeasure(m, s.Time); err != nil {
				return fmt.Errorf("voice %q measure %d: %w", v.Name, i+1, err)
			}
		}
	}
	return nil
}
