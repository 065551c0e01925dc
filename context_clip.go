package atelier

import "github.com/etudelab/atelier/internal/raster"

// Clip intersects the current path into the clip region and clears the
// path. Subsequent drawing only affects pixels inside every region
// clipped so far. Push/Pop restore the clip active at push time.
func (c *Context) Clip() {
	c.ClipPreserve()
	c.path.Clear()
}

// ClipPreserve intersects the current path into the clip region
// without clearing the path.
func (c *Context) ClipPreserve() {
	if c.path.IsEmpty() {
		return
	}
	mask := c.rasterizeMask(c.path)
	if c.clip == nil {
		c.clip = mask
		return
	}
	c.clip = c.clip.Clone()
	c.clip.Intersect(mask)
}

// ClipRect clips to an axis-aligned rectangle in user space without
// touching the current path.
func (c *Context) ClipRect(x, y, w, h float64) {
	saved := c.path
	c.path = NewPath()
	c.DrawRectangle(x, y, w, h)
	c.Clip()
	c.path = saved
}

// ResetClip removes all clipping.
func (c *Context) ResetClip() {
	c.clip = nil
}

// ClipMask returns the active clip mask, or nil when unclipped.
func (c *Context) ClipMask() *Mask {
	return c.clip
}

// SetClipMask replaces the clip region with an explicit mask. A nil
// mask removes clipping. Masks with mismatched dimensions are ignored.
func (c *Context) SetClipMask(m *Mask) {
	if m == nil {
		c.clip = nil
		return
	}
	if m.Width() != c.width || m.Height() != c.height {
		return
	}
	c.clip = m.Clone()
}

// rasterizeMask renders the path's antialiased coverage into a fresh
// mask using the paint's fill rule.
func (c *Context) rasterizeMask(path *Path) *Mask {
	mask := NewMask(c.width, c.height)
	contours := flattenPath(path)
	if len(contours) == 0 {
		return mask
	}
	rcs := make([][]raster.Point, len(contours))
	for i, contour := range contours {
		pts := make([]raster.Point, len(contour))
		for j, p := range contour {
			pts[j] = raster.Point{X: p.X, Y: p.Y}
		}
		rcs[i] = pts
	}
	var r raster.Rasterizer
	r.Fill(maskSurface{mask}, rcs, raster.Solid{A: 1}, fillRule(c.paint.FillRule), c.paint.Antialias)
	return mask
}

// maskSurface adapts a Mask to the rasterizer surface interface,
// recording coverage instead of color.
type maskSurface struct {
	mask *Mask
}

func (s maskSurface) Width() int  { return s.mask.Width() }
func (s maskSurface) Height() int { return s.mask.Height() }

func (s maskSurface) BlendPixel(x, y int, _ raster.RGBA, coverage uint8) {
	if coverage > s.mask.At(x, y) {
		s.mask.Set(x, y, coverage)
	}
}

func (s maskSurface) FillSpan(x1, x2, y int, _ raster.RGBA) {
	for x := x1; x < x2; x++ {
		s.mask.Set(x, y, 255)
	}
}
