// Package raster provides scanline rasterization for flattened paths.
package raster

// Point is a 2D point (local copy to avoid an import cycle).
type Point struct {
	X, Y float64
}

// RGBA is a color (local copy to avoid an import cycle).
type RGBA struct {
	R, G, B, A float64
}

// Edge is a non-horizontal line segment normalized so y0 < y1, with the
// original winding direction preserved for the non-zero rule.
type Edge struct {
	x0, y0 float64
	x1, y1 float64
	slope  float64 // dx/dy
	dir    int     // +1 downward, -1 upward in the source path
}

// newEdge builds an edge from two points. Horizontal segments must be
// filtered out by the caller.
func newEdge(p0, p1 Point) Edge {
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return Edge{
		x0:    p0.X,
		y0:    p0.Y,
		x1:    p1.X,
		y1:    p1.Y,
		slope: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:   dir,
	}
}

// xAt returns the x coordinate where the edge crosses scanline y.
func (e *Edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.slope
}

// buildEdges converts contours into an edge list, skipping horizontal
// and degenerate segments. Open contours are closed implicitly so every
// region is bounded.
func buildEdges(contours [][]Point) []Edge {
	var edges []Edge
	for _, c := range contours {
		if len(c) < 2 {
			continue
		}
		n := len(c)
		closed := c[0] == c[n-1]
		for i := 0; i < n-1; i++ {
			if c[i].Y != c[i+1].Y {
				edges = append(edges, newEdge(c[i], c[i+1]))
			}
		}
		if !closed && c[n-1].Y != c[0].Y {
			edges = append(edges, newEdge(c[n-1], c[0]))
		}
	}
	return edges
}

// crossing is an edge intersection with a scanline.
type crossing struct {
	x   float64
	dir int
}

// activeTable collects and sorts scanline crossings. It is reused
// across scanlines to avoid allocation.
type activeTable struct {
	crossings []crossing
}

func (t *activeTable) reset() {
	t.crossings = t.crossings[:0]
}

func (t *activeTable) add(x float64, dir int) {
	t.crossings = append(t.crossings, crossing{x: x, dir: dir})
}

// sort orders crossings by x. Insertion sort: the list is short and
// nearly sorted between adjacent scanlines.
func (t *activeTable) sort() {
	cr := t.crossings
	for i := 1; i < len(cr); i++ {
		key := cr[i]
		j := i - 1
		for j >= 0 && cr[j].x > key.x {
			cr[j+1] = cr[j]
			j--
		}
		cr[j+1] = key
	}
}

// spans invokes fn for each filled span [x1, x2) on the scanline
// according to the fill rule.
func (t *activeTable) spans(rule FillRule, fn func(x1, x2 float64)) {
	cr := t.crossings
	if rule == FillRuleNonZero {
		winding := 0
		var x1 float64
		for _, c := range cr {
			if winding == 0 {
				x1 = c.x
			}
			winding += c.dir
			if winding == 0 && c.x > x1 {
				fn(x1, c.x)
			}
		}
		return
	}
	for i := 0; i+1 < len(cr); i += 2 {
		if cr[i+1].x > cr[i].x {
			fn(cr[i].x, cr[i+1].x)
		}
	}
}
