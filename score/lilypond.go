package score

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTupletDepth is returned when tuplets nest more than one level.
var ErrTupletDepth = errors.New("score: tuplets nest too deeply")

const lilypondVersion = "2.24.2"

// WriteLilyPond writes the score as LilyPond source: a \header block,
// one \new Staff per voice inside <<>>, absolute Dutch note names, and
// a bar check at every measure boundary. Every measure is validated
// first. Voices shorter than the longest are padded with full-measure
// rests, as are empty measures.
func WriteLilyPond(w io.Writer, s *Score) error {
	if err := s.Check(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\version %q\n\n", lilypondVersion)

	if s.Title != "" || s.Composer != "" {
		b.WriteString("\\header {\n")
		if s.Title != "" {
			fmt.Fprintf(&b, "  title = \"%s\"\n", escapeLily(s.Title))
		}
		if s.Composer != "" {
			fmt.Fprintf(&b, "  composer = \"%s\"\n", escapeLily(s.Composer))
		}
		b.WriteString("}\n\n")
	}

	measures := 0
	for _, v := range s.Voices {
		if len(v.Measures) > measures {
			measures = len(v.Measures)
		}
	}

	b.WriteString("\\score {\n  <<\n")
	for vi, v := range s.Voices {
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("voice%d", vi+1)
		}
		fmt.Fprintf(&b, "    \\new Staff = \"%s\" {\n", escapeLily(name))
		if vi == 0 {
			fmt.Fprintf(&b, "      \\time %s\n", s.Time)
			if s.Tempo > 0 {
				fmt.Fprintf(&b, "      \\tempo 4 = %d\n", s.Tempo)
			}
		}
		for mi := 0; mi < measures; mi++ {
			var m Measure
			if mi < len(v.Measures) {
				m = v.Measures[mi]
			}
			line, err := renderMeasure(m, s.Time)
			if err != nil {
				return fmt.Errorf("voice %q measure %d: %w", name, mi+1, err)
			}
			fmt.Fprintf(&b, "      %s |\n", line)
		}
		b.WriteString("      \\bar \"|.\"\n")
		b.WriteString("    }\n")
	}
	b.WriteString("  >>\n}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// renderMeasure renders one bar without its trailing bar check. Empty
// measures become a full-measure rest.
func renderMeasure(m Measure, ts TimeSignature) (string, error) {
	if len(m.Events) == 0 {
		return fmt.Sprintf("R1*%d/%d", ts.Beats, ts.Unit), nil
	}
	parts := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		s, err := renderEvent(e, 0)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

func renderEvent(e Event, depth int) (string, error) {
	switch ev := e.(type) {
	case Note:
		s := ev.Pitch.String() + ev.Duration.String()
		if ev.Tied {
			s += "~"
		}
		return s, nil
	case Rest:
		return "r" + ev.Duration.String(), nil
	case Tuplet:
		if depth >= 2 {
			return "", ErrTupletDepth
		}
		inner := make([]string, 0, len(ev.Events))
		for _, sub := range ev.Events {
			s, err := renderEvent(sub, depth+1)
			if err != nil {
				return "", err
			}
			inner = append(inner, s)
		}
		return fmt.Sprintf("\\tuplet %d/%d { %s }", ev.Num, ev.Den, strings.Join(inner, " ")), nil
	default:
		return "", fmt.Errorf("score: unknown event type %T", e)
	}
}

func escapeLily(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
