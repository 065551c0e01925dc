// Package flatten converts vector paths into polyline contours.
//
// Curves are subdivided adaptively until they sit within Tolerance of
// the true curve. Each subpath becomes its own contour, so separate
// subpaths never gain connecting edges.
package flatten

import "math"

// Point is a 2D point (local copy to avoid an import cycle with the
// root package).
type Point struct {
	X, Y float64
}

// Tolerance is the maximum distance between the polyline and the true
// curve, in pixels.
const Tolerance = 0.1

// PathElement is an element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Contour is one flattened subpath. A closed contour repeats its first
// point at the end.
type Contour []Point

// Closed reports whether the contour ends where it starts.
func (c Contour) Closed() bool {
	return len(c) > 2 && c[0] == c[len(c)-1]
}

// Contours flattens path elements into one contour per subpath.
func Contours(elements []PathElement) []Contour {
	var out []Contour
	var cur Contour
	var start Point
	var pos Point

	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			start = e.Point
			pos = e.Point
			cur = append(cur, pos)

		case LineTo:
			if cur == nil {
				start, pos = e.Point, e.Point
				cur = append(cur, pos)
				continue
			}
			pos = e.Point
			cur = append(cur, pos)

		case QuadTo:
			if cur == nil {
				start, pos = e.Control, e.Control
				cur = append(cur, pos)
			}
			cur = appendQuad(cur, pos, e.Control, e.Point)
			pos = e.Point

		case CubicTo:
			if cur == nil {
				start, pos = e.Control1, e.Control1
				cur = append(cur, pos)
			}
			cur = appendCubic(cur, pos, e.Control1, e.Control2, e.Point)
			pos = e.Point

		case Close:
			if len(cur) > 0 && pos != start {
				cur = append(cur, start)
			}
			pos = start
			flush()
			// A draw after Close continues from the subpath start.
			cur = append(cur, start)
		}
	}
	flush()
	return out
}

// appendQuad appends a flattened quadratic curve, excluding p0.
func appendQuad(dst Contour, p0, c, p1 Point) Contour {
	if distanceToLine(c, p0, p1) < Tolerance {
		return append(dst, p1)
	}
	q0 := lerp(p0, c, 0.5)
	q1 := lerp(c, p1, 0.5)
	mid := lerp(q0, q1, 0.5)
	dst = appendQuad(dst, p0, q0, mid)
	return appendQuad(dst, mid, q1, p1)
}

// appendCubic appends a flattened cubic curve, excluding p0.
func appendCubic(dst Contour, p0, c1, c2, p1 Point) Contour {
	d := math.Max(distanceToLine(c1, p0, p1), distanceToLine(c2, p0, p1))
	if d < Tolerance {
		return append(dst, p1)
	}
	// de Casteljau split at t=0.5.
	q0 := lerp(p0, c1, 0.5)
	q1 := lerp(c1, c2, 0.5)
	q2 := lerp(c2, p1, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	mid := lerp(r0, r1, 0.5)
	dst = appendCubic(dst, p0, q0, r0, mid)
	return appendCubic(dst, mid, r1, q2, p1)
}

func lerp(p, q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// distanceToLine returns the distance from p to the line through a and b.
func distanceToLine(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	// Perpendicular distance via the cross product.
	return math.Abs((p.X-a.X)*dy-(p.Y-a.Y)*dx) / math.Sqrt(lenSq)
}
