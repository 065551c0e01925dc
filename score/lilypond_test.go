package score

import (
	"errors"
	"strings"
	"testing"
)

func testScore() *Score {
	quarter := MustDuration(4, 0)
	half := MustDuration(2, 0)
	return &Score{
		Title:    "Study No. 1",
		Composer: "anon.",
		Tempo:    96,
		Time:     TimeSignature{Beats: 4, Unit: 4},
		Voices: []Voice{
			{
				Name: "upper",
				Measures: []Measure{
					{Events: []Event{
						Note{Pitch: Pitch{PitchClass{C, Natural}, 4}, Duration: quarter},
						Note{Pitch: Pitch{PitchClass{E, Flat}, 4}, Duration: quarter},
						Note{Pitch: Pitch{PitchClass{G, Natural}, 4}, Duration: half, Tied: true},
					}},
					{Events: []Event{
						Note{Pitch: Pitch{PitchClass{G, Natural}, 4}, Duration: half},
						Rest{Duration: half},
					}},
				},
			},
			{
				Name: "lower",
				Measures: []Measure{
					{Events: []Event{
						Note{Pitch: Pitch{PitchClass{C, Natural}, 3}, Duration: MustDuration(1, 0)},
					}},
				},
			},
		},
	}
}

func TestWriteLilyPond(t *testing.T) {
	var b strings.Builder
	if err := WriteLilyPond(&b, testScore()); err != nil {
		t.Fatalf("WriteLilyPond: %v", err)
	}
	out := b.String()

	wantFragments := []string{
		`\version "2.24.2"`,
		`title = "Study No. 1"`,
		`composer = "anon."`,
		`\new Staff = "upper"`,
		`\new Staff = "lower"`,
		`\time 4/4`,
		`\tempo 4 = 96`,
		"c'4 ees'4 g'2~ |",
		"g'2 r2 |",
		"c1 |",
		`\bar "|."`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q:\n%s", frag, out)
		}
	}
	// Time and tempo appear once per score, not per staff.
	if got := strings.Count(out, `\time`); got != 1 {
		t.Errorf(`\time appears %d times, want 1`, got)
	}
	if got := strings.Count(out, `\tempo`); got != 1 {
		t.Errorf(`\tempo appears %d times, want 1`, got)
	}
}

func TestWriteLilyPondPadsShortVoices(t *testing.T) {
	var b strings.Builder
	if err := WriteLilyPond(&b, testScore()); err != nil {
		t.Fatal(err)
	}
	// The lower voice has one measure; the score has two, so the
	// second pads with a full-measure rest.
	if !strings.Contains(b.String(), "R1*4/4 |") {
		t.Errorf("missing full-measure rest padding:\n%s", b.String())
	}
}

func TestWriteLilyPondEmptyMeasures(t *testing.T) {
	s := &Score{
		Time:   TimeSignature{Beats: 3, Unit: 4},
		Voices: []Voice{{Name: "v", Measures: []Measure{{}, {}}}},
	}
	var b strings.Builder
	if err := WriteLilyPond(&b, s); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(b.String(), "R1*3/4 |"); got != 2 {
		t.Errorf("full-measure rest count = %d, want 2:\n%s", got, b.String())
	}
}

func TestWriteLilyPondTuplet(t *testing.T) {
	eighth := MustDuration(8, 0)
	quarter := MustDuration(4, 0)
	triplet, err := NewTuplet(3, 2, []Event{
		Note{Pitch: Pitch{PitchClass{C, Natural}, 4}, Duration: eighth},
		Note{Pitch: Pitch{PitchClass{D, Natural}, 4}, Duration: eighth},
		Note{Pitch: Pitch{PitchClass{E, Natural}, 4}, Duration: eighth},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := &Score{
		Time: TimeSignature{Beats: 4, Unit: 4},
		Voices: []Voice{{Name: "v", Measures: []Measure{
			{Events: []Event{triplet, Note{Pitch: Pitch{PitchClass{C, Natural}, 4}, Duration: quarter},
				Rest{Duration: quarter}, Rest{Duration: quarter}}},
		}}},
	}
	var b strings.Builder
	if err := WriteLilyPond(&b, s); err != nil {
		t.Fatalf("WriteLilyPond: %v", err)
	}
	if !strings.Contains(b.String(), `\tuplet 3/2 { c'8 d'8 e'8 }`) {
		t.Errorf("tuplet missing:\n%s", b.String())
	}
}

func TestWriteLilyPondRejectsDeepTuplets(t *testing.T) {
	eighth := MustDuration(8, 0)
	inner, err := NewTuplet(3, 2, []Event{
		Note{Duration: eighth}, Note{Duration: eighth}, Note{Duration: eighth},
	})
	if err != nil {
		t.Fatal(err)
	}
	mid, err := NewTuplet(3, 2, []Event{inner, inner, inner})
	if err != nil {
		t.Fatal(err)
	}
	outer, err := NewTuplet(3, 2, []Event{mid, mid, mid})
	if err != nil {
		t.Fatal(err)
	}
	// The outer tuplet alone fills the measure exactly.
	s := &Score{
		Time:   TimeSignature{Beats: 4, Unit: 4},
		Voices: []Voice{{Name: "v", Measures: []Measure{{Events: []Event{outer}}}}},
	}
	var b strings.Builder
	err = WriteLilyPond(&b, s)
	if !errors.Is(err, ErrTupletDepth) {
		t.Errorf("WriteLilyPond = %v, want ErrTupletDepth", err)
	}
}

func TestWriteLilyPondValidates(t *testing.T) {
	s := &Score{
		Time: TimeSignature{Beats: 4, Unit: 4},
		Voices: []Voice{{Name: "v", Measures: []Measure{
			{Events: []Event{Note{Duration: MustDuration(4, 0)}}},
		}}},
	}
	var b strings.Builder
	if err := WriteLilyPond(&b, s); !errors.Is(err, ErrMeasureLength) {
		t.Errorf("WriteLilyPond = %v, want ErrMeasureLength", err)
	}
	if b.Len() != 0 {
		t.Error("output written despite validation failure")
	}
}

func TestWriteLilyPondEscapesHeader(t *testing.T) {
	s := &Score{
		Title: `He said "hi" \ bye`,
		Time:  TimeSignature{Beats: 4, Unit: 4},
		Voices: []Voice{{Name: "v", Measures: []Measure{{}}}},
	}
	var b strings.Builder
	if err := WriteLilyPond(&b, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `title = "He said \"hi\" \\ bye"`) {
		t.Errorf("header not escaped:\n%s", b.String())
	}
}

func TestWriteLilyPondDeterministic(t *testing.T) {
	render := func() string {
		var b strings.Builder
		if err := WriteLilyPond(&b, testScore()); err != nil {
			t.Fatal(err)
		}
		return b.String()
	}
	first := render()
	for i := 0; i < 3; i++ {
		if render() != first {
			t.Fatal("output varies across runs")
		}
	}
}
