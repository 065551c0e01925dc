package compose

import (
	"github.com/etudelab/atelier"
	"github.com/etudelab/atelier/score"
	"github.com/etudelab/atelier/text"
)

// RollOptions size the piano-roll proof sheet.
type RollOptions struct {
	CellW   float64 // width of one beat cell
	CellH   float64 // height of one voice row
	Margin  float64
	LabelW  float64 // gutter for voice names
	OnColor string  // hex fill for sounding beats
}

// DefaultRollOptions returns the proof-sheet defaults.
func DefaultRollOptions() RollOptions {
	return RollOptions{
		CellW:   14,
		CellH:   16,
		Margin:  12,
		LabelW:  28,
		OnColor: "#1f6feb",
	}
}

// RenderRoll draws a voice-by-beat grid of the score: one row per
// voice, one column per beat, filled cells where a note sounds, with
// measure boundaries ruled. The context is returned for encoding.
func RenderRoll(s *score.Score, opts RollOptions) *atelier.Context {
	def := DefaultRollOptions()
	if opts.CellW <= 0 {
		opts.CellW = def.CellW
	}
	if opts.CellH <= 0 {
		opts.CellH = def.CellH
	}
	if opts.Margin <= 0 {
		opts.Margin = def.Margin
	}
	if opts.LabelW <= 0 {
		opts.LabelW = def.LabelW
	}
	if opts.OnColor == "" {
		opts.OnColor = def.OnColor
	}

	measures := 0
	for _, v := range s.Voices {
		if len(v.Measures) > measures {
			measures = len(v.Measures)
		}
	}
	beats := s.Time.Beats
	if beats < 1 {
		beats = 1
	}
	cols := measures * beats
	rows := len(s.Voices)

	w := int(opts.Margin*2 + opts.LabelW + float64(cols)*opts.CellW)
	h := int(opts.Margin*2 + float64(rows)*opts.CellH)
	c := atelier.NewContext(w, h)
	c.SetFontFace(text.BuiltinFace(opts.CellH * 0.6))
	c.ClearWithColor(atelier.White)

	x0 := opts.Margin + opts.LabelW
	y0 := opts.Margin
	beatTicks := score.TicksPerWhole / s.Time.Unit

	for vi, v := range s.Voices {
		y := y0 + float64(vi)*opts.CellH

		c.SetRGB(0.2, 0.2, 0.2)
		c.DrawStringAnchored(v.Name, opts.Margin, y+opts.CellH*0.7, 0, 0)

		c.SetHexColor(opts.OnColor)
		for mi, m := range v.Measures {
			tick := 0
			for _, e := range m.Events {
				if n, ok := e.(score.Note); ok {
					startBeat := tick / beatTicks
					widthBeats := float64(n.Ticks()) / float64(beatTicks)
					x := x0 + float64(mi*beats+startBeat)*opts.CellW
					c.DrawRectangle(x+1, y+1, opts.CellW*widthBeats-2, opts.CellH-2)
					c.Fill()
				}
				tick += e.Ticks()
			}
		}
	}

	// Grid rules: light beat lines, darker measure boundaries.
	gridH := float64(rows) * opts.CellH
	c.SetLineWidth(1)
	for col := 0; col <= cols; col++ {
		if col%beats == 0 {
			c.SetRGB(0.45, 0.45, 0.45)
		} else {
			c.SetRGB(0.85, 0.85, 0.85)
		}
		x := x0 + float64(col)*opts.CellW
		c.DrawLine(x, y0, x, y0+gridH)
		c.Stroke()
	}
	c.SetRGB(0.85, 0.85, 0.85)
	for row := 0; row <= rows; row++ {
		y := y0 + float64(row)*opts.CellH
		c.DrawLine(x0, y, x0+float64(cols)*opts.CellW, y)
		c.Stroke()
	}
	return c
}
