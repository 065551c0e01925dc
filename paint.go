package atelier

// LineCap is the shape of stroke endpoints.
type LineCap int

const (
	// LineCapButt ends strokes flat at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends strokes with a semicircle.
	LineCapRound
	// LineCapSquare ends strokes with a half-square extension.
	LineCapSquare
)

// LineJoin is the shape of corners between stroke segments.
type LineJoin int

const (
	// LineJoinMiter joins segments with a sharp corner, falling back
	// to bevel past the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound joins segments with a circular arc.
	LineJoinRound
	// LineJoinBevel joins segments with a flat corner.
	LineJoinBevel
)

// FillRule decides which regions a path encloses.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Paint carries the drawing state applied by Fill and Stroke.
type Paint struct {
	// FillPattern colors filled regions.
	FillPattern Pattern

	// StrokePattern colors stroked outlines.
	StrokePattern Pattern

	// LineWidth is the stroke width in user units.
	LineWidth float64

	// LineCap, LineJoin, and MiterLimit style stroke geometry.
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64

	// Dash, when non-nil, breaks strokes into a dash pattern.
	Dash *Dash

	// FillRule selects the fill rule for paths.
	FillRule FillRule

	// Antialias toggles supersampled edge coverage.
	Antialias bool

	// TransformScale is the current matrix scale, applied to LineWidth
	// at stroke time so transformed strokes keep their visual width.
	TransformScale float64
}

// NewPaint creates a Paint with the defaults: black solid fill and
// stroke, 1px width, butt caps, miter joins, non-zero fill, AA on.
func NewPaint() *Paint {
	return &Paint{
		FillPattern:    NewSolidPattern(Black),
		StrokePattern:  NewSolidPattern(Black),
		LineWidth:      1,
		LineCap:        LineCapButt,
		LineJoin:       LineJoinMiter,
		MiterLimit:     10,
		FillRule:       FillRuleNonZero,
		Antialias:      true,
		TransformScale: 1,
	}
}

// Clone returns a copy of the paint. Patterns are shared, not copied;
// they are immutable once set.
func (p *Paint) Clone() *Paint {
	q := *p
	return &q
}

// StrokeWidth returns the effective stroke width under the current
// transform scale, never below a hairline.
func (p *Paint) StrokeWidth() float64 {
	w := p.LineWidth * p.TransformScale
	if w < 0 {
		w = 0
	}
	return w
}
