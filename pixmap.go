package atelier

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
)

// Pixmap is a rectangular RGBA8 pixel buffer. It implements
// image.Image, so it can be passed straight to the stdlib encoders.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // non-premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a transparent pixmap of the given size.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromImage copies an image into a new pixmap.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return pm
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw RGBA pixel data.
func (p *Pixmap) Data() []uint8 { return p.data }

// SetPixel writes a pixel, replacing the existing color.
// Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel reads a pixel. Out-of-bounds reads return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// BlendPixel composites c over the existing pixel (source-over) with an
// extra coverage factor in [0, 255]. coverage 255 with opaque c is a
// plain write.
func (p *Pixmap) BlendPixel(x, y int, c RGBA, coverage uint8) {
	if coverage == 0 || x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}

	srcA := c.A * float64(coverage) / 255
	if srcA <= 0 {
		return
	}
	if srcA >= 1 {
		p.SetPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: 1})
		return
	}

	dst := p.GetPixel(x, y)
	inv := 1 - srcA
	outA := srcA + dst.A*inv
	if outA <= 0 {
		p.SetPixel(x, y, Transparent)
		return
	}
	p.SetPixel(x, y, RGBA{
		R: (c.R*srcA + dst.R*dst.A*inv) / outA,
		G: (c.G*srcA + dst.G*dst.A*inv) / outA,
		B: (c.B*srcA + dst.B*dst.A*inv) / outA,
		A: outA,
	})
}

// FillSpan writes a horizontal run [x1, x2) with a single color,
// replacing existing pixels. Used by the rasterizer for opaque interior
// spans.
func (p *Pixmap) FillSpan(x1, x2, y int, c RGBA) {
	if y < 0 || y >= p.height {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > p.width {
		x2 = p.width
	}
	if x1 >= x2 {
		return
	}

	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	i := (y*p.width + x1) * 4
	for x := x1; x < x2; x++ {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
		i += 4
	}
}

// Clear fills the whole pixmap with one color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ToImage copies the pixmap into a new image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements image.Image.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// EncodeJPEG writes the pixmap as JPEG with the given quality (1-100).
func (p *Pixmap) EncodeJPEG(w io.Writer, quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("atelier: jpeg quality %d out of range [1, 100]", quality)
	}
	return jpeg.Encode(w, p.ToImage(), &jpeg.Options{Quality: quality})
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return p.EncodePNG(f)
}
