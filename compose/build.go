package compose

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/etudelab/atelier/score"
)

var (
	// ErrEmptyText is returned when no Latin letters survive
	// normalization.
	ErrEmptyText = errors.New("compose: no letters in input")

	// ErrBadConfig is returned for configs the pipeline cannot honor.
	ErrBadConfig = errors.New("compose: invalid config")
)

// Config drives BuildScore.
type Config struct {
	Title    string
	Measures int
	Time     score.TimeSignature
	Tempo    int
	Seed     int64

	// Floor is the minimum share of beats a letter that occurs at all
	// still sings, 0..1. It keeps rare letters audible.
	Floor float64
}

// DefaultConfig returns the settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		Measures: 8,
		Time:     score.TimeSignature{Beats: 4, Unit: 4},
		Tempo:    72,
	}
}

// voicePitch maps a letter index onto the 12 pitch classes, spread
// across three octaves: a..l sit in octave 3, m..x in 4, y..z in 5.
func voicePitch(letter int) score.Pitch {
	p := score.FromMIDI(60+letter%12, false) // octave 4 spelling
	p.Octave = 3 + letter/12
	return p
}

// BuildScore composes the 26-voice piece for text. A letter with
// relative frequency f keeps round(f/fmax * beats) onsets per measure,
// placed by a seeded permutation; the rest of the measure rests.
// Letters absent from the text become all-rest voices. The result is
// deterministic for a given (text, seed).
func BuildScore(text string, cfg Config) (*score.Score, error) {
	if cfg.Measures < 1 {
		return nil, fmt.Errorf("%w: measures %d", ErrBadConfig, cfg.Measures)
	}
	if cfg.Floor < 0 || cfg.Floor > 1 {
		return nil, fmt.Errorf("%w: floor %v", ErrBadConfig, cfg.Floor)
	}
	if cfg.Time.Beats < 1 || cfg.Time.Unit < 1 {
		return nil, fmt.Errorf("%w: time %v", ErrBadConfig, cfg.Time)
	}
	freq := Count(text)
	if freq.Total == 0 {
		return nil, ErrEmptyText
	}

	unit, err := score.NewDuration(cfg.Time.Unit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: time %v", ErrBadConfig, cfg.Time)
	}

	fmax := float64(freq.Max())
	beats := cfg.Time.Beats
	s := &score.Score{
		Title:  cfg.Title,
		Tempo:  cfg.Tempo,
		Time:   cfg.Time,
		Voices: make([]score.Voice, 26),
	}

	for letter := 0; letter < 26; letter++ {
		onsets := onsetsFor(freq, letter, fmax, beats, cfg.Floor)
		rng := rand.New(rand.NewSource(cfg.Seed + int64(letter)))
		pitch := voicePitch(letter)

		voice := score.Voice{
			Name:     string(rune('a' + letter)),
			Measures: make([]score.Measure, cfg.Measures),
		}
		for m := 0; m < cfg.Measures; m++ {
			voice.Measures[m] = buildMeasure(rng, pitch, unit, beats, onsets)
		}
		s.Voices[letter] = voice
	}

	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// onsetsFor applies the thinning rule: density proportional to
// relative frequency, with the floor keeping present letters audible.
func onsetsFor(freq Frequencies, letter int, fmax float64, beats int, floor float64) int {
	n := freq.Counts[letter]
	if n == 0 {
		return 0
	}
	onsets := int(math.Round(float64(n) / fmax * float64(beats)))
	if min := int(math.Ceil(floor * float64(beats))); onsets < min {
		onsets = min
	}
	if onsets > beats {
		onsets = beats
	}
	return onsets
}

// buildMeasure places onsets on a random subset of beats and fills the
// rest with rests. All-rest measures stay empty so the writer emits a
// full-measure rest.
func buildMeasure(rng *rand.Rand, pitch score.Pitch, unit score.Duration, beats, onsets int) score.Measure {
	if onsets == 0 {
		return score.Measure{}
	}
	sing := make([]bool, beats)
	for _, b := range rng.Perm(beats)[:onsets] {
		sing[b] = true
	}
	events := make([]score.Event, 0, beats)
	for b := 0; b < beats; b++ {
		if sing[b] {
			events = append(events, score.Note{Pitch: pitch, Duration: unit})
		} else {
			events = append(events, score.Rest{Duration: unit})
		}
	}
	return score.Measure{Events: events}
}
