package compose

import (
	"errors"
	"strings"
	"testing"

	"github.com/etudelab/atelier/score"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"café", "cafe"},
		{"ÉLÈVE", "eleve"},
		{"naïve façade", "naive facade"},
		{"", ""},
		{"123 !?", "123 !?"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	f := Count("Abba, 2 bäd!")
	if f.Total != 7 {
		t.Fatalf("Total = %d, want 7", f.Total)
	}
	if got := f.Counts['a'-'a']; got != 3 {
		t.Errorf("a count = %d, want 3", got)
	}
	if got := f.Counts['b'-'a']; got != 3 {
		t.Errorf("b count = %d, want 3", got)
	}
	// "bäd" normalizes to "bad", so the d is counted.
	if got := f.Counts['d'-'a']; got != 1 {
		t.Errorf("d count = %d, want 1", got)
	}
}

func TestCountIgnoresNonLatin(t *testing.T) {
	f := Count("日本語 123 --- ab")
	if f.Total != 2 {
		t.Errorf("Total = %d, want 2 (only a and b)", f.Total)
	}
}

func TestFrequenciesRatioMax(t *testing.T) {
	f := Count("aab")
	if got := f.Ratio(0); got != 2.0/3.0 {
		t.Errorf("Ratio(a) = %v, want 2/3", got)
	}
	if got := f.Max(); got != 2 {
		t.Errorf("Max = %d, want 2", got)
	}
	var empty Frequencies
	if got := empty.Ratio(0); got != 0 {
		t.Errorf("empty Ratio = %v, want 0", got)
	}
}

func TestVoicePitchSpread(t *testing.T) {
	tests := []struct {
		letter     int
		wantOctave int
	}{
		{0, 3}, {11, 3}, {12, 4}, {23, 4}, {24, 5}, {25, 5},
	}
	for _, tt := range tests {
		if got := voicePitch(tt.letter).Octave; got != tt.wantOctave {
			t.Errorf("voicePitch(%d).Octave = %d, want %d", tt.letter, got, tt.wantOctave)
		}
	}
	// Letters 12 apart share a pitch class.
	if voicePitch(0).PitchClass != voicePitch(12).PitchClass {
		t.Error("letters 0 and 12 should share a pitch class")
	}
}

func buildCfg() Config {
	cfg := DefaultConfig()
	cfg.Measures = 2
	cfg.Seed = 42
	return cfg
}

func TestBuildScore(t *testing.T) {
	s, err := BuildScore("the quick brown fox jumps over the lazy dog", buildCfg())
	if err != nil {
		t.Fatalf("BuildScore: %v", err)
	}
	if got := len(s.Voices); got != 26 {
		t.Fatalf("voice count = %d, want 26", got)
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
	for _, v := range s.Voices {
		if got := len(v.Measures); got != 2 {
			t.Errorf("voice %q has %d measures, want 2", v.Name, got)
		}
	}
}

func TestBuildScoreDeterministic(t *testing.T) {
	const input = "some seed text for the piece"
	first, err := BuildScore(input, buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	again, err := BuildScore(input, buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	var a, b strings.Builder
	if err := score.WriteLilyPond(&a, first); err != nil {
		t.Fatal(err)
	}
	if err := score.WriteLilyPond(&b, again); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("same text and seed produced different scores")
	}
}

func TestBuildScoreSeedChangesPlacement(t *testing.T) {
	const input = "some seed text for the piece"
	cfgA := buildCfg()
	cfgB := buildCfg()
	cfgB.Seed = 7
	a, err := BuildScore(input, cfgA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildScore(input, cfgB)
	if err != nil {
		t.Fatal(err)
	}
	var sa, sb strings.Builder
	score.WriteLilyPond(&sa, a)
	score.WriteLilyPond(&sb, b)
	if sa.String() == sb.String() {
		t.Error("different seeds produced identical scores")
	}
}

func TestBuildScoreMostFrequentSingsEveryBeat(t *testing.T) {
	// e dominates; its voice must have no rests.
	s, err := BuildScore("eeee eeee eeee b", buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	eVoice := s.Voices['e'-'a']
	for mi, m := range eVoice.Measures {
		if len(m.Events) == 0 {
			t.Fatalf("measure %d empty for dominant letter", mi)
		}
		for _, ev := range m.Events {
			if _, isRest := ev.(score.Rest); isRest {
				t.Errorf("measure %d: dominant letter rests", mi)
			}
		}
	}
}

func TestBuildScoreAbsentLetterAllRests(t *testing.T) {
	s, err := BuildScore("aaaa", buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	zVoice := s.Voices['z'-'a']
	for mi, m := range zVoice.Measures {
		if len(m.Events) != 0 {
			t.Errorf("measure %d of silent voice has %d events, want empty", mi, len(m.Events))
		}
	}
}

func TestBuildScoreFloor(t *testing.T) {
	cfg := buildCfg()
	cfg.Floor = 0.25
	// b occurs once against a flood of e; without the floor it would
	// round to zero onsets.
	s, err := BuildScore(strings.Repeat("e", 100)+"b", cfg)
	if err != nil {
		t.Fatal(err)
	}
	bVoice := s.Voices['b'-'a']
	notes := 0
	for _, m := range bVoice.Measures {
		for _, ev := range m.Events {
			if _, ok := ev.(score.Note); ok {
				notes++
			}
		}
	}
	if notes == 0 {
		t.Error("floor did not keep the rare letter audible")
	}
}

func TestBuildScoreErrors(t *testing.T) {
	if _, err := BuildScore("123 !!!", buildCfg()); !errors.Is(err, ErrEmptyText) {
		t.Errorf("no letters = %v, want ErrEmptyText", err)
	}
	cfg := buildCfg()
	cfg.Measures = 0
	if _, err := BuildScore("abc", cfg); !errors.Is(err, ErrBadConfig) {
		t.Errorf("measures 0 = %v, want ErrBadConfig", err)
	}
	cfg = buildCfg()
	cfg.Floor = 1.5
	if _, err := BuildScore("abc", cfg); !errors.Is(err, ErrBadConfig) {
		t.Errorf("floor 1.5 = %v, want ErrBadConfig", err)
	}
}

func TestBuildScoreUniformText(t *testing.T) {
	// Every letter ties at max frequency: every voice sings densely.
	s, err := BuildScore("abcdefghijklmnopqrstuvwxyz", buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range s.Voices {
		for mi, m := range v.Measures {
			if len(m.Events) == 0 {
				t.Errorf("voice %q measure %d empty under uniform text", v.Name, mi)
			}
		}
	}
}

func TestRenderRoll(t *testing.T) {
	s, err := BuildScore("the quick brown fox", buildCfg())
	if err != nil {
		t.Fatal(err)
	}
	c := RenderRoll(s, RollOptions{})
	b := c.Image().Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatalf("roll canvas %dx%d", b.Dx(), b.Dy())
	}

	img := c.Image()
	ink, white := 0, 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			switch {
			case r>>8 == 255 && g>>8 == 255 && bl>>8 == 255 && a>>8 == 255:
				white++
			case r>>8 < 250:
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("roll drew nothing")
	}
	if white == 0 {
		t.Error("roll has no opaque white background")
	}
}
