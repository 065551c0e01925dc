package atelier

import "math"

// PathElement is a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path built from move/line/curve elements.
type Path struct {
	elements []PathElement
	start    Point // start of the current subpath
	current  Point
	hasStart bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasStart = true
}

// LineTo draws a line to (x, y). If the path is empty this acts as
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasStart {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bézier curve with control point
// (cx, cy) ending at (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	if !p.hasStart {
		p.MoveTo(cx, cy)
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bézier curve with control points (c1x, c1y) and
// (c2x, c2y) ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasStart {
		p.MoveTo(c1x, c1y)
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath with a line back to its start.
func (p *Path) Close() {
	if !p.hasStart {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasStart = false
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Elements returns the path elements. The slice is shared, not copied.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Current returns the current point and whether one exists.
func (p *Path) Current() (Point, bool) {
	return p.current, p.hasStart
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	out := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			out.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			out.LineTo(pt.X, pt.Y)
		case QuadTo:
			c := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			out.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    p.start,
		current:  p.current,
		hasStart: p.hasStart,
	}
	copy(out.elements, p.elements)
	return out
}

// Rectangle adds an axis-aligned rectangle as a closed subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// bezierCircle is the control point offset ratio that makes four cubic
// Béziers approximate a circle: 4/3 * (sqrt(2) - 1).
const bezierCircle = 0.5522847498307936

// Circle adds a circle of radius r centered at (cx, cy).
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse centered at (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox := rx * bezierCircle
	oy := ry * bezierCircle

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc adds a circular arc around (cx, cy) from angle1 to angle2 in
// radians. If angle2 < angle1 the arc wraps forward a full turn.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	p.EllipticalArc(cx, cy, r, r, angle1, angle2)
}

// EllipticalArc adds an elliptical arc around (cx, cy) from angle1 to
// angle2 in radians.
func (p *Path) EllipticalArc(cx, cy, rx, ry, angle1, angle2 float64) {
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}

	// Split into segments of at most 90 degrees.
	n := int(math.Ceil((angle2 - angle1) / (math.Pi / 2)))
	if n == 0 {
		n = 1
	}
	step := (angle2 - angle1) / float64(n)

	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		a2 := a1 + step
		p.arcSegment(cx, cy, rx, ry, a1, a2)
	}
}

// arcSegment appends one cubic Bézier approximating an arc of at most
// 90 degrees. Connects with a LineTo when a current point exists, so
// arcs compose with ongoing subpaths (rounded rectangles rely on this).
func (p *Path) arcSegment(cx, cy, rx, ry, a1, a2 float64) {
	// Standard control offset for a Bézier arc segment.
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Pow(math.Tan((a2-a1)/2), 2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + rx*cos1
	y1 := cy + ry*sin1
	x2 := cx + rx*cos2
	y2 := cy + ry*sin2

	if !p.hasStart {
		p.MoveTo(x1, y1)
	} else if p.current != Pt(x1, y1) {
		p.LineTo(x1, y1)
	}
	p.CubicTo(
		x1-alpha*rx*sin1, y1+alpha*ry*cos1,
		x2+alpha*rx*sin2, y2-alpha*ry*cos2,
		x2, y2,
	)
}

// RoundedRectangle adds a rectangle with corner radius r. The radius
// is clamped to half the smaller dimension.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	if max := math.Min(w, h) / 2; r > max {
		r = max
	}
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}
