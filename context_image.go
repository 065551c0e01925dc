package atelier

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
)

// InterpolationMode selects how image pixels are sampled when a
// transform maps them off the pixel grid.
type InterpolationMode int

const (
	// InterpNearest picks the closest source pixel. Fast, blocky under
	// scaling.
	InterpNearest InterpolationMode = iota
	// InterpBilinear blends the four neighboring pixels.
	InterpBilinear
)

// SetInterpolationMode sets the sampling mode for DrawImage.
func (c *Context) SetInterpolationMode(mode InterpolationMode) {
	c.interp = mode
}

// DrawImage draws an image with its top-left corner at (x, y) in user
// space, through the current transform and clip.
func (c *Context) DrawImage(img image.Image, x, y int) {
	c.DrawImageAnchored(img, x, y, 0, 0)
}

// DrawImageAnchored draws an image anchored at (x, y); ax and ay are
// the anchor fractions, 0.5 centering the image on the point.
func (c *Context) DrawImageAnchored(img image.Image, x, y int, ax, ay float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return
	}
	ox := float64(x) - ax*float64(sw)
	oy := float64(y) - ay*float64(sh)

	if c.matrix.IsIdentity() {
		c.blitImage(img, ox, oy)
		return
	}
	c.sampleImage(img, ox, oy)
}

// blitImage copies pixels directly for untransformed draws.
func (c *Context) blitImage(img image.Image, ox, oy float64) {
	b := img.Bounds()
	ix, iy := int(math.Round(ox)), int(math.Round(oy))
	for sy := 0; sy < b.Dy(); sy++ {
		dy := iy + sy
		if dy < 0 || dy >= c.height {
			continue
		}
		for sx := 0; sx < b.Dx(); sx++ {
			dx := ix + sx
			if dx < 0 || dx >= c.width {
				continue
			}
			col := FromColor(img.At(b.Min.X+sx, b.Min.Y+sy))
			c.blendClipped(dx, dy, col)
		}
	}
}

// sampleImage draws a transformed image by walking its device-space
// bounding box and sampling through the inverse matrix.
func (c *Context) sampleImage(img image.Image, ox, oy float64) {
	b := img.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())

	corners := [4]Point{
		c.matrix.TransformPoint(Pt(ox, oy)),
		c.matrix.TransformPoint(Pt(ox+sw, oy)),
		c.matrix.TransformPoint(Pt(ox+sw, oy+sh)),
		c.matrix.TransformPoint(Pt(ox, oy+sh)),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	x0 := int(math.Max(0, math.Floor(minX)))
	y0 := int(math.Max(0, math.Floor(minY)))
	x1 := int(math.Min(float64(c.width), math.Ceil(maxX)))
	y1 := int(math.Min(float64(c.height), math.Ceil(maxY)))

	inv := c.matrix.Invert()
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			src := inv.TransformPoint(Pt(float64(dx)+0.5, float64(dy)+0.5))
			u := src.X - ox
			v := src.Y - oy
			if u < 0 || u >= sw || v < 0 || v >= sh {
				continue
			}
			var col RGBA
			if c.interp == InterpBilinear {
				col = sampleBilinear(img, u, v)
			} else {
				col = FromColor(img.At(b.Min.X+int(u), b.Min.Y+int(v)))
			}
			c.blendClipped(dx, dy, col)
		}
	}
}

// blendClipped composites col onto the pixmap honoring the clip mask.
func (c *Context) blendClipped(x, y int, col RGBA) {
	cov := uint8(255)
	if c.clip != nil {
		cov = c.clip.At(x, y)
		if cov == 0 {
			return
		}
	}
	c.pixmap.BlendPixel(x, y, col, cov)
}

// sampleBilinear samples an image at fractional pixel coordinates,
// blending the four nearest texels. Samples outside the image clamp to
// the edge.
func sampleBilinear(img image.Image, u, v float64) RGBA {
	b := img.Bounds()
	fx := u - 0.5
	fy := v - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	at := func(x, y int) RGBA {
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if x > b.Dx()-1 {
			x = b.Dx() - 1
		}
		if y > b.Dy()-1 {
			y = b.Dy() - 1
		}
		return FromColor(img.At(b.Min.X+x, b.Min.Y+y))
	}

	c00 := at(x0, y0)
	c10 := at(x0+1, y0)
	c01 := at(x0, y0+1)
	c11 := at(x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

// LoadImage decodes an image file. PNG, JPEG, and GIF are registered.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadPNG decodes a PNG file.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load png: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
