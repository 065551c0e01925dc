package raster

import "math"

// FillRule selects how self-intersecting paths are filled.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// Surface is the pixel destination. The renderer adapts its pixmap
// type to this interface.
type Surface interface {
	Width() int
	Height() int
	// BlendPixel composites c over the pixel at (x, y) scaled by
	// coverage (0..255).
	BlendPixel(x, y int, c RGBA, coverage uint8)
	// FillSpan writes c to pixels [x1, x2) on row y without blending.
	FillSpan(x1, x2, y int, c RGBA)
}

// Source yields the fill color at a device-space position.
type Source interface {
	ColorAt(x, y float64) RGBA
}

// Solid is a position-independent Source. Opaque solid fills take an
// unblended span fast path.
type Solid RGBA

func (s Solid) ColorAt(x, y float64) RGBA { return RGBA(s) }

// supersample shift: 4 sub-scanlines per pixel row, 4 sub-columns per
// pixel, 16 samples total.
const (
	ssShift   = 2
	ssScale   = 1 << ssShift
	ssSamples = ssScale * ssScale
)

// Rasterizer fills flattened contours onto a Surface. The zero value
// is ready to use; it may be reused across fills but is not safe for
// concurrent use.
type Rasterizer struct {
	table activeTable
	cov   []uint8
}

// Fill rasterizes contours with the given source and fill rule.
// Antialiasing uses 4x4 supersampling; with antialias false, pixels
// are sampled once at their center.
func (r *Rasterizer) Fill(dst Surface, contours [][]Point, src Source, rule FillRule, antialias bool) {
	edges := buildEdges(contours)
	if len(edges) == 0 {
		return
	}

	minY, maxY := edgeYBounds(edges)
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > dst.Height() {
		y1 = dst.Height()
	}
	if y0 >= y1 {
		return
	}

	if antialias {
		r.fillAA(dst, edges, src, rule, y0, y1)
		return
	}
	r.fillAliased(dst, edges, src, rule, y0, y1)
}

func edgeYBounds(edges []Edge) (minY, maxY float64) {
	minY = edges[0].y0
	maxY = edges[0].y1
	for _, e := range edges[1:] {
		if e.y0 < minY {
			minY = e.y0
		}
		if e.y1 > maxY {
			maxY = e.y1
		}
	}
	return minY, maxY
}

// gatherCrossings loads intersections of all edges with scanline y
// into the active table and sorts them.
//
// TODO: keep edges y-sorted and maintain an active window instead of
// scanning the full list per scanline.
func (r *Rasterizer) gatherCrossings(edges []Edge, y float64) {
	r.table.reset()
	for i := range edges {
		e := &edges[i]
		if y < e.y0 || y >= e.y1 {
			continue
		}
		r.table.add(e.xAt(y), e.dir)
	}
	r.table.sort()
}

// fillAliased samples each pixel row once at its center.
func (r *Rasterizer) fillAliased(dst Surface, edges []Edge, src Source, rule FillRule, y0, y1 int) {
	w := dst.Width()
	solid, isSolid := src.(Solid)
	opaque := isSolid && solid.A >= 1
	for y := y0; y < y1; y++ {
		sy := float64(y) + 0.5
		r.gatherCrossings(edges, sy)
		r.table.spans(rule, func(x1, x2 float64) {
			ix1 := int(math.Round(x1))
			ix2 := int(math.Round(x2))
			if ix1 < 0 {
				ix1 = 0
			}
			if ix2 > w {
				ix2 = w
			}
			if ix1 >= ix2 {
				return
			}
			if opaque {
				dst.FillSpan(ix1, ix2, y, RGBA(solid))
				return
			}
			for x := ix1; x < ix2; x++ {
				dst.BlendPixel(x, y, src.ColorAt(float64(x)+0.5, sy), 255)
			}
		})
	}
}

// fillAA accumulates per-pixel coverage from 4 sub-scanlines per row,
// then composites the row in one pass.
func (r *Rasterizer) fillAA(dst Surface, edges []Edge, src Source, rule FillRule, y0, y1 int) {
	w := dst.Width()
	if cap(r.cov) < w {
		r.cov = make([]uint8, w)
	}
	cov := r.cov[:w]

	for y := y0; y < y1; y++ {
		clear(cov)
		rowMin, rowMax := w, 0
		for sub := 0; sub < ssScale; sub++ {
			sy := float64(y) + (float64(sub)+0.5)/ssScale
			r.gatherCrossings(edges, sy)
			r.table.spans(rule, func(x1, x2 float64) {
				if x2 <= 0 || x1 >= float64(w) {
					return
				}
				if x1 < 0 {
					x1 = 0
				}
				if x2 > float64(w) {
					x2 = float64(w)
				}
				accumulateSpan(cov, x1, x2)
				if ix := int(x1); ix < rowMin {
					rowMin = ix
				}
				if ix := int(math.Ceil(x2)); ix > rowMax {
					rowMax = ix
				}
			})
		}
		if rowMin >= rowMax {
			continue
		}
		if rowMax > w {
			rowMax = w
		}
		sy := float64(y) + 0.5
		for x := rowMin; x < rowMax; x++ {
			n := cov[x]
			if n == 0 {
				continue
			}
			alpha := uint8((uint32(n)*255 + ssSamples/2) / ssSamples)
			dst.BlendPixel(x, y, src.ColorAt(float64(x)+0.5, sy), alpha)
		}
	}
}

// accumulateSpan adds sub-column samples covered by [x1, x2) to the
// per-pixel counters. Each pixel gains at most ssScale samples per
// sub-scanline and ssSamples across the row.
func accumulateSpan(cov []uint8, x1, x2 float64) {
	px1 := int(x1)
	px2 := int(x2)
	if px2 >= len(cov) {
		px2 = len(cov) - 1
	}
	if px1 == px2 {
		cov[px1] += subSamples(x1-float64(px1), x2-float64(px1))
		return
	}
	cov[px1] += subSamples(x1-float64(px1), 1)
	for x := px1 + 1; x < px2; x++ {
		cov[x] += ssScale
	}
	if f := x2 - float64(px2); f > 0 {
		cov[px2] += subSamples(0, f)
	}
}

// subSamples counts sub-column centers inside [f1, f2) within one
// pixel, f1 and f2 in [0, 1].
func subSamples(f1, f2 float64) uint8 {
	var n uint8
	for s := 0; s < ssScale; s++ {
		c := (float64(s) + 0.5) / ssScale
		if c >= f1 && c < f2 {
			n++
		}
	}
	return n
}
