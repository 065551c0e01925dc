// Package stroke expands stroked polylines into fill contours.
//
// A stroke becomes a fill region bounded by the polyline offset to both
// sides by half the width, with caps closing open ends and joins
// bridging the corners. The resulting contours are meant for a non-zero
// winding fill; inner-corner self-intersections are intentional and
// resolve to full coverage under that rule.
package stroke

import "math"

// Point is a 2D point (local copy to avoid an import cycle).
type Point struct {
	X, Y float64
}

func (p Point) sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) mul(s float64) Point   { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) neg() Point            { return Point{X: -p.X, Y: -p.Y} }
func (p Point) dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) length() float64       { return math.Hypot(p.X, p.Y) }

// perp rotates p 90 degrees counter-clockwise.
func (p Point) perp() Point { return Point{X: -p.Y, Y: p.X} }

func (p Point) normalize() Point {
	l := p.length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Cap is the shape of stroke endpoints.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape of stroke corners.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Options controls stroke expansion.
type Options struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// arcStep is the angular sample spacing for round caps and joins, in
// radians. At typical stroke widths this keeps arcs within the raster
// flattening tolerance.
const arcStep = math.Pi / 16

// Expand converts a polyline into fill contours outlining its stroke.
// closed marks the polyline as a loop (its last point connecting back
// to the first). Zero-length polylines produce a dot for round and
// square caps and nothing for butt caps.
func Expand(poly []Point, closed bool, o Options) [][]Point {
	if o.Width <= 0 {
		return nil
	}
	pts := dedupe(poly)
	if closed && len(pts) > 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	r := o.Width / 2

	if len(pts) == 0 {
		return nil
	}
	if len(pts) == 1 {
		return capDot(pts[0], r, o.Cap)
	}
	if closed && len(pts) < 3 {
		closed = false
	}

	e := expander{opts: o, radius: r}
	if closed {
		return e.expandClosed(pts)
	}
	return [][]Point{e.expandOpen(pts)}
}

type expander struct {
	opts   Options
	radius float64
}

// side identifies which offset side of the polyline is being built.
type side int

const (
	left  side = +1
	right side = -1
)

// offsetNormal returns the offset vector for a segment direction on the
// given side, scaled to the stroke radius.
func (e *expander) offsetNormal(dir Point, s side) Point {
	return dir.perp().mul(e.radius * float64(s))
}

// expandOpen builds a single closed contour: the left side forward, the
// end cap, the right side backward, and the start cap (implicit close).
func (e *expander) expandOpen(pts []Point) []Point {
	dirs := segmentDirs(pts, false)
	n := len(pts)

	var out []Point

	// Left side, forward.
	out = append(out, pts[0].add(e.offsetNormal(dirs[0], left)))
	for i := 1; i < n-1; i++ {
		out = e.appendJoin(out, pts[i], dirs[i-1], dirs[i], left)
	}
	out = append(out, pts[n-1].add(e.offsetNormal(dirs[n-2], left)))

	// End cap from left to right side.
	out = e.appendCap(out, pts[n-1], dirs[n-2], false)

	// Right side, backward.
	out = append(out, pts[n-1].add(e.offsetNormal(dirs[n-2], right)))
	for i := n - 2; i >= 1; i-- {
		out = e.appendJoinReversed(out, pts[i], dirs[i-1], dirs[i])
	}
	out = append(out, pts[0].add(e.offsetNormal(dirs[0], right)))

	// Start cap back to the first point; closing the contour finishes
	// a butt cap, the others add geometry first.
	out = e.appendCap(out, pts[0], dirs[0].neg(), false)
	out = append(out, out[0])
	return out
}

// expandClosed builds two contours: the outer left loop and the inner
// right loop wound the opposite way, so the non-zero fill leaves the
// interior hollow.
func (e *expander) expandClosed(pts []Point) [][]Point {
	// Traverse with the interior on the right so the left offsets form
	// the outer loop, whichever way the caller wound the polygon.
	if signedArea(pts) > 0 {
		rev := make([]Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	dirs := segmentDirs(pts, true)
	n := len(pts)

	var outer []Point
	for i := 0; i < n; i++ {
		prev := dirs[(i+n-1)%n]
		outer = e.appendJoin(outer, pts[i], prev, dirs[i], left)
	}
	outer = append(outer, outer[0])

	var inner []Point
	for i := n - 1; i >= 0; i-- {
		prev := dirs[(i+n-1)%n]
		inner = e.appendJoinReversed(inner, pts[i], prev, dirs[i])
	}
	inner = append(inner, inner[0])

	return [][]Point{outer, inner}
}

// appendJoin emits the corner geometry at vertex p between segment
// directions d1 and d2 on the given side. The inner side routes through
// the vertex itself so coverage never falls short of the corner.
func (e *expander) appendJoin(dst []Point, p Point, d1, d2 Point, s side) []Point {
	n1 := e.offsetNormal(d1, s)
	n2 := e.offsetNormal(d2, s)
	cross := d1.cross(d2)

	// Straight or nearly straight: a single offset point suffices.
	if math.Abs(cross) < 1e-9 && d1.dot(d2) > 0 {
		return append(dst, p.add(n2))
	}

	outerTurn := cross*float64(s) < 0
	if !outerTurn {
		return append(dst, p.add(n1), p, p.add(n2))
	}

	switch e.opts.Join {
	case JoinMiter:
		dst = append(dst, p.add(n1))
		if mp, ok := e.miterPoint(p, n1, n2, d1, d2); ok {
			dst = append(dst, mp)
		}
		return append(dst, p.add(n2))
	case JoinRound:
		dst = append(dst, p.add(n1))
		dst = appendArc(dst, p, n1, n2, e.radius)
		return append(dst, p.add(n2))
	default: // JoinBevel
		return append(dst, p.add(n1), p.add(n2))
	}
}

// appendJoinReversed emits the right-side corner at p while walking the
// polyline backward, so the segment roles swap.
func (e *expander) appendJoinReversed(dst []Point, p Point, d1, d2 Point) []Point {
	// Walking backward along the right side is the same corner as
	// walking forward along the left side of the reversed polyline.
	return e.appendJoin(dst, p, d2.neg(), d1.neg(), left)
}

// miterPoint returns the miter tip for the corner, or ok=false when the
// miter length exceeds the limit and the join falls back to bevel.
func (e *expander) miterPoint(p, n1, n2, d1, d2 Point) (Point, bool) {
	bisect := n1.add(n2)
	bl := bisect.length()
	if bl < 1e-9 {
		return Point{}, false
	}
	// cos(theta/2) from the segment directions; miter length is
	// radius / cos(theta/2).
	cosHalf := math.Sqrt(math.Max(0, (1+d1.dot(d2))/2))
	if cosHalf < 1e-9 {
		return Point{}, false
	}
	miterLen := e.radius / cosHalf
	if miterLen > e.opts.MiterLimit*e.radius {
		return Point{}, false
	}
	return p.add(bisect.mul(miterLen / bl)), true
}

// appendCap emits cap geometry at endpoint p for a segment leaving in
// direction d. The cap sweeps from the left offset to the right offset
// through the tangent direction.
func (e *expander) appendCap(dst []Point, p Point, d Point, _ bool) []Point {
	n := e.offsetNormal(d, left)
	switch e.opts.Cap {
	case CapRound:
		return appendCapArc(dst, p, n, e.radius)
	case CapSquare:
		ext := d.mul(e.radius)
		return append(dst, p.add(n).add(ext), p.add(n.neg()).add(ext))
	default: // CapButt: the straight line to the other side is implicit.
		return dst
	}
}

// appendArc samples the round-join arc around center from offset n1 to
// offset n2, excluding both endpoints, sweeping the short way. Join
// sweeps are always below pi, so the short way is unambiguous.
func appendArc(dst []Point, center, n1, n2 Point, radius float64) []Point {
	a1 := math.Atan2(n1.Y, n1.X)
	a2 := math.Atan2(n2.Y, n2.X)
	sweep := a2 - a1
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	for i := 1; i < steps; i++ {
		a := a1 + sweep*float64(i)/float64(steps)
		dst = append(dst, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return dst
}

// appendCapArc samples the half circle from the left offset n around
// center to -n, excluding both endpoints. n leads the outward tangent
// by a quarter turn, so sweeping clockwise keeps the arc past the
// endpoint rather than over the stroke body.
func appendCapArc(dst []Point, center, n Point, radius float64) []Point {
	a1 := math.Atan2(n.Y, n.X)
	steps := int(math.Ceil(math.Pi / arcStep))
	for i := 1; i < steps; i++ {
		a := a1 - math.Pi*float64(i)/float64(steps)
		dst = append(dst, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return dst
}

// signedArea is positive when pts wind counter-clockwise in a y-up
// frame.
func signedArea(pts []Point) float64 {
	var s float64
	for i, p := range pts {
		s += p.cross(pts[(i+1)%len(pts)])
	}
	return s / 2
}

// capDot renders a degenerate (single-point) stroke.
func capDot(p Point, r float64, c Cap) [][]Point {
	switch c {
	case CapRound:
		var out []Point
		steps := int(math.Ceil(2 * math.Pi / arcStep))
		for i := 0; i <= steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			out = append(out, Point{X: p.X + r*math.Cos(a), Y: p.Y + r*math.Sin(a)})
		}
		return [][]Point{out}
	case CapSquare:
		return [][]Point{{
			{X: p.X - r, Y: p.Y - r},
			{X: p.X + r, Y: p.Y - r},
			{X: p.X + r, Y: p.Y + r},
			{X: p.X - r, Y: p.Y + r},
			{X: p.X - r, Y: p.Y - r},
		}}
	default:
		return nil
	}
}

// segmentDirs returns the unit direction of each segment. For closed
// polylines the final entry is the wrap-around segment.
func segmentDirs(pts []Point, closed bool) []Point {
	n := len(pts)
	count := n - 1
	if closed {
		count = n
	}
	dirs := make([]Point, count)
	for i := 0; i < count; i++ {
		dirs[i] = pts[(i+1)%n].sub(pts[i]).normalize()
	}
	return dirs
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
