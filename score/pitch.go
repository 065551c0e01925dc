package score

import "fmt"

// Step is a diatonic letter name.
type Step int

const (
	C Step = iota
	D
	E
	F
	G
	A
	B
)

// stepSemis maps a step to its semitone offset above C.
var stepSemis = [7]int{0, 2, 4, 5, 7, 9, 11}

// stepNames holds the Dutch letter names LilyPond uses.
var stepNames = [7]string{"c", "d", "e", "f", "g", "a", "b"}

func (s Step) String() string {
	if s < C || s > B {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// Accidental shifts a step by semitones.
type Accidental int

const (
	Flat    Accidental = -1
	Natural Accidental = 0
	Sharp   Accidental = 1
)

// PitchClass is a spelled pitch without an octave.
type PitchClass struct {
	Step       Step
	Accidental Accidental
}

// Semis returns the pitch class as semitones above C, wrapped to 0..11.
func (pc PitchClass) Semis() int {
	s := stepSemis[pc.Step] + int(pc.Accidental)
	return ((s % 12) + 12) % 12
}

// Name returns the Dutch note name: cis for C sharp, ees for E flat.
func (pc PitchClass) Name() string {
	switch pc.Accidental {
	case Sharp:
		return stepNames[pc.Step] + "is"
	case Flat:
		return stepNames[pc.Step] + "es"
	default:
		return stepNames[pc.Step]
	}
}

// Pitch is a spelled pitch with an octave. Octave 4 holds middle C,
// which LilyPond spells c'.
type Pitch struct {
	PitchClass
	Octave int
}

// MIDI returns the MIDI note number; middle C (C4) is 60.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + stepSemis[p.Step] + int(p.Accidental)
}

// sharpSpellings and flatSpellings map a semitone within the octave to
// a spelled pitch class.
var sharpSpellings = [12]PitchClass{
	{C, Natural}, {C, Sharp}, {D, Natural}, {D, Sharp},
	{E, Natural}, {F, Natural}, {F, Sharp}, {G, Natural},
	{G, Sharp}, {A, Natural}, {A, Sharp}, {B, Natural},
}

var flatSpellings = [12]PitchClass{
	{C, Natural}, {D, Flat}, {D, Natural}, {E, Flat},
	{E, Natural}, {F, Natural}, {G, Flat}, {G, Natural},
	{A, Flat}, {A, Natural}, {B, Flat}, {B, Natural},
}

// FromMIDI spells a MIDI note number, preferring flats when asked.
func FromMIDI(midi int, preferFlat bool) Pitch {
	q, r := midi/12, midi%12
	if r < 0 {
		q--
		r += 12
	}
	pc := sharpSpellings[r]
	if preferFlat {
		pc = flatSpellings[r]
	}
	return Pitch{PitchClass: pc, Octave: q - 1}
}

// Transpose shifts a pitch by semitones and respells it.
func (p Pitch) Transpose(semitones int, preferFlat bool) Pitch {
	return FromMIDI(p.MIDI()+semitones, preferFlat)
}

// String returns the LilyPond absolute spelling, e.g. cis' for C#4.
func (p Pitch) String() string {
	name := p.Name()
	// Octave 3 is LilyPond's unmarked octave.
	for o := p.Octave; o > 3; o-- {
		name += "'"
	}
	for o := p.Octave; o < 3; o++ {
		name += ","
	}
	return name
}
