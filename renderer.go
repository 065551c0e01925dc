package atelier

import (
	"github.com/etudelab/atelier/internal/flatten"
	"github.com/etudelab/atelier/internal/raster"
	"github.com/etudelab/atelier/internal/stroke"
)

// Renderer rasterizes filled and stroked paths onto a pixmap. A nil
// clip mask means no clipping.
//
// The built-in SoftwareRenderer covers all paints; alternative
// renderers can be injected with WithRenderer.
type Renderer interface {
	Fill(dst *Pixmap, path *Path, paint *Paint, clip *Mask) error
	Stroke(dst *Pixmap, path *Path, paint *Paint, clip *Mask) error
}

// SoftwareRenderer is the default CPU scanline renderer. The zero
// value is ready to use. A SoftwareRenderer may be reused across draw
// calls but is not safe for concurrent use.
type SoftwareRenderer struct {
	ras raster.Rasterizer
}

// NewSoftwareRenderer creates a software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Fill rasterizes the path interior with the paint's fill pattern.
func (r *SoftwareRenderer) Fill(dst *Pixmap, path *Path, paint *Paint, clip *Mask) error {
	if dst == nil || path == nil || path.IsEmpty() {
		return nil
	}
	contours := flattenPath(path)
	if len(contours) == 0 {
		return nil
	}
	r.fill(dst, contours, paint.FillPattern, fillRule(paint.FillRule), paint.Antialias, clip)
	return nil
}

// Stroke expands the path outline to the paint's stroke geometry and
// fills it with the stroke pattern. Dash segmentation happens before
// expansion so caps apply to every dash.
func (r *SoftwareRenderer) Stroke(dst *Pixmap, path *Path, paint *Paint, clip *Mask) error {
	if dst == nil || path == nil || path.IsEmpty() {
		return nil
	}
	width := paint.StrokeWidth()
	if width <= 0 {
		return nil
	}
	opts := stroke.Options{
		Width:      width,
		Cap:        stroke.Cap(paint.LineCap),
		Join:       stroke.Join(paint.LineJoin),
		MiterLimit: paint.MiterLimit,
	}

	var expanded [][]stroke.Point
	for _, c := range flattenPath(path) {
		poly := make([]stroke.Point, len(c))
		for i, p := range c {
			poly[i] = stroke.Point{X: p.X, Y: p.Y}
		}
		closed := c.Closed()
		if paint.Dash.IsDashed() {
			scale := paint.TransformScale
			if scale <= 0 {
				scale = 1
			}
			cycle := paint.Dash.cycle()
			lengths := make([]float64, len(cycle))
			for i, l := range cycle {
				lengths[i] = l * scale
			}
			for _, piece := range stroke.Dash(poly, closed, lengths, paint.Dash.Offset*scale) {
				expanded = append(expanded, stroke.Expand(piece, false, opts)...)
			}
			continue
		}
		expanded = append(expanded, stroke.Expand(poly, closed, opts)...)
	}
	if len(expanded) == 0 {
		return nil
	}

	contours := make([][]raster.Point, len(expanded))
	for i, c := range expanded {
		pts := make([]raster.Point, len(c))
		for j, p := range c {
			pts[j] = raster.Point{X: p.X, Y: p.Y}
		}
		contours[i] = pts
	}
	// Stroke outlines self-intersect at inner corners; non-zero winding
	// resolves those to full coverage regardless of the paint fill rule.
	r.fillContours(dst, contours, paint.StrokePattern, raster.FillRuleNonZero, paint.Antialias, clip)
	return nil
}

func (r *SoftwareRenderer) fill(dst *Pixmap, contours []flatten.Contour, pattern Pattern, rule raster.FillRule, antialias bool, clip *Mask) {
	rcs := make([][]raster.Point, len(contours))
	for i, c := range contours {
		pts := make([]raster.Point, len(c))
		for j, p := range c {
			pts[j] = raster.Point{X: p.X, Y: p.Y}
		}
		rcs[i] = pts
	}
	r.fillContours(dst, rcs, pattern, rule, antialias, clip)
}

func (r *SoftwareRenderer) fillContours(dst *Pixmap, contours [][]raster.Point, pattern Pattern, rule raster.FillRule, antialias bool, clip *Mask) {
	if pattern == nil {
		return
	}
	src := patternSource(pattern)
	if clip == nil {
		r.ras.Fill(pixmapSurface{dst}, contours, src, rule, antialias)
		return
	}
	r.ras.Fill(clippedSurface{pm: dst, mask: clip}, contours, src, rule, antialias)
}

// flattenPath converts path elements into polyline contours.
func flattenPath(path *Path) []flatten.Contour {
	elements := path.Elements()
	fe := make([]flatten.PathElement, 0, len(elements))
	for _, el := range elements {
		switch e := el.(type) {
		case MoveTo:
			fe = append(fe, flatten.MoveTo{Point: fpt(e.Point)})
		case LineTo:
			fe = append(fe, flatten.LineTo{Point: fpt(e.Point)})
		case QuadTo:
			fe = append(fe, flatten.QuadTo{Control: fpt(e.Control), Point: fpt(e.Point)})
		case CubicTo:
			fe = append(fe, flatten.CubicTo{Control1: fpt(e.Control1), Control2: fpt(e.Control2), Point: fpt(e.Point)})
		case Close:
			fe = append(fe, flatten.Close{})
		}
	}
	return flatten.Contours(fe)
}

func fpt(p Point) flatten.Point { return flatten.Point{X: p.X, Y: p.Y} }

func fillRule(rule FillRule) raster.FillRule {
	if rule == FillRuleEvenOdd {
		return raster.FillRuleEvenOdd
	}
	return raster.FillRuleNonZero
}

// patternSource adapts a Pattern to the rasterizer source interface,
// keeping the solid fast path intact.
func patternSource(p Pattern) raster.Source {
	if sp, ok := p.(*SolidPattern); ok {
		c := sp.Color
		return raster.Solid{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return sourceAdapter{p}
}

type sourceAdapter struct {
	pattern Pattern
}

func (s sourceAdapter) ColorAt(x, y float64) raster.RGBA {
	c := s.pattern.ColorAt(x, y)
	return raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// pixmapSurface adapts a Pixmap to the rasterizer surface interface.
type pixmapSurface struct {
	pm *Pixmap
}

func (s pixmapSurface) Width() int  { return s.pm.Width() }
func (s pixmapSurface) Height() int { return s.pm.Height() }

func (s pixmapSurface) BlendPixel(x, y int, c raster.RGBA, coverage uint8) {
	s.pm.BlendPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, coverage)
}

func (s pixmapSurface) FillSpan(x1, x2, y int, c raster.RGBA) {
	s.pm.FillSpan(x1, x2, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// clippedSurface modulates every write by the clip mask coverage.
type clippedSurface struct {
	pm   *Pixmap
	mask *Mask
}

func (s clippedSurface) Width() int  { return s.pm.Width() }
func (s clippedSurface) Height() int { return s.pm.Height() }

func (s clippedSurface) BlendPixel(x, y int, c raster.RGBA, coverage uint8) {
	m := s.mask.At(x, y)
	if m == 0 {
		return
	}
	cov := uint8((uint32(coverage)*uint32(m) + 127) / 255)
	if cov == 0 {
		return
	}
	s.pm.BlendPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, cov)
}

func (s clippedSurface) FillSpan(x1, x2, y int, c raster.RGBA) {
	col := RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	for x := x1; x < x2; x++ {
		m := s.mask.At(x, y)
		if m == 0 {
			continue
		}
		if m == 255 {
			s.pm.FillSpan(x, x+1, y, col)
			continue
		}
		s.pm.BlendPixel(x, y, col, m)
	}
}
