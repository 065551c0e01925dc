package atelier

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/etudelab/atelier/text"
)

// Context is the main drawing context. It maintains a pixmap, the
// current path, paint state, the active clip mask, and a transform
// stack. Context implements io.Closer; after Close the context must
// not be used.
//
// A Context is not safe for concurrent use.
type Context struct {
	width    int
	height   int
	pixmap   *Pixmap
	renderer Renderer

	// Current state
	path   *Path
	paint  *Paint
	clip   *Mask // nil means unclipped
	interp InterpolationMode
	face   text.Face // lazily defaulted to the builtin face

	// Transform and state stack
	matrix Matrix
	stack  []contextState

	closed bool
}

// contextState is one Push entry: the transform, a paint snapshot, and
// the clip mask active at push time.
type contextState struct {
	matrix Matrix
	paint  *Paint
	clip   *Mask
}

var _ io.Closer = (*Context)(nil)

// NewContext creates a drawing context with the given dimensions.
// Non-positive dimensions are clamped to a 1x1 canvas. Optional
// ContextOption arguments inject a custom renderer or target pixmap:
//
//	dc := atelier.NewContext(800, 600)
//	dc := atelier.NewContext(800, 600, atelier.WithRenderer(r))
func NewContext(width, height int, opts ...ContextOption) *Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	var options contextOptions
	for _, opt := range opts {
		opt(&options)
	}

	pixmap := options.pixmap
	if pixmap == nil {
		pixmap = NewPixmap(width, height)
	}
	renderer := options.renderer
	if renderer == nil {
		renderer = NewSoftwareRenderer()
	}

	return &Context{
		width:    width,
		height:   height,
		pixmap:   pixmap,
		renderer: renderer,
		path:     NewPath(),
		paint:    NewPaint(),
		matrix:   Identity(),
		stack:    make([]contextState, 0, 8),
	}
}

// NewContextForImage creates a context drawing over a copy of an
// existing image.
func NewContextForImage(img image.Image, opts ...ContextOption) *Context {
	bounds := img.Bounds()
	pm := FromImage(img)
	opts = append([]ContextOption{WithPixmap(pm)}, opts...)
	return NewContext(bounds.Dx(), bounds.Dy(), opts...)
}

// Close releases context state. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.path.Clear()
	c.stack = nil
	c.clip = nil
	return nil
}

// Width returns the width of the context in pixels.
func (c *Context) Width() int {
	return c.width
}

// Height returns the height of the context in pixels.
func (c *Context) Height() int {
	return c.height
}

// Pixmap returns the underlying pixel buffer.
func (c *Context) Pixmap() *Pixmap {
	return c.pixmap
}

// Image returns the rendered image.
func (c *Context) Image() image.Image {
	return c.pixmap.ToImage()
}

// SavePNG writes the context to a PNG file.
func (c *Context) SavePNG(path string) error {
	return c.pixmap.SavePNG(path)
}

// EncodePNG writes the image as PNG to w.
func (c *Context) EncodePNG(w io.Writer) error {
	return c.pixmap.EncodePNG(w)
}

// EncodeJPEG writes the image as JPEG with the given quality (1-100).
func (c *Context) EncodeJPEG(w io.Writer, quality int) error {
	return c.pixmap.EncodeJPEG(w, quality)
}

// Clear fills the entire context with transparent black, ignoring the
// clip region.
func (c *Context) Clear() {
	c.pixmap.Clear(Transparent)
}

// ClearWithColor fills the entire context with a color, ignoring the
// clip region.
func (c *Context) ClearWithColor(col RGBA) {
	c.pixmap.Clear(col)
}

// SetColor sets both the fill and stroke color.
func (c *Context) SetColor(col color.Color) {
	c.setSolid(FromColor(col))
}

// SetRGB sets the fill and stroke color from RGB components in [0, 1].
func (c *Context) SetRGB(r, g, b float64) {
	c.setSolid(RGB(r, g, b))
}

// SetRGBA sets the fill and stroke color from RGBA components in [0, 1].
func (c *Context) SetRGBA(r, g, b, a float64) {
	c.setSolid(RGBAf(r, g, b, a))
}

// SetRGB255 sets the fill and stroke color from 8-bit components.
func (c *Context) SetRGB255(r, g, b int) {
	c.setSolid(RGB(float64(r)/255, float64(g)/255, float64(b)/255))
}

// SetHexColor sets the fill and stroke color from a hex string like
// "#RRGGBB" or "#RGB".
func (c *Context) SetHexColor(hex string) {
	c.setSolid(Hex(hex))
}

func (c *Context) setSolid(col RGBA) {
	p := NewSolidPattern(col)
	c.paint.FillPattern = p
	c.paint.StrokePattern = p
}

// SetFillPattern sets the pattern used by Fill.
func (c *Context) SetFillPattern(p Pattern) {
	c.paint.FillPattern = p
}

// SetStrokePattern sets the pattern used by Stroke.
func (c *Context) SetStrokePattern(p Pattern) {
	c.paint.StrokePattern = p
}

// SetLineWidth sets the stroke width in user units.
func (c *Context) SetLineWidth(width float64) {
	c.paint.LineWidth = width
}

// SetLineCap sets the stroke endpoint style.
func (c *Context) SetLineCap(lineCap LineCap) {
	c.paint.LineCap = lineCap
}

// SetLineJoin sets the stroke corner style.
func (c *Context) SetLineJoin(join LineJoin) {
	c.paint.LineJoin = join
}

// SetMiterLimit sets the miter limit for miter joins.
func (c *Context) SetMiterLimit(limit float64) {
	c.paint.MiterLimit = limit
}

// SetFillRule sets the fill rule for subsequent fills.
func (c *Context) SetFillRule(rule FillRule) {
	c.paint.FillRule = rule
}

// SetAntialias toggles antialiasing.
func (c *Context) SetAntialias(on bool) {
	c.paint.Antialias = on
}

// SetDash sets the stroke dash pattern from alternating dash and gap
// lengths. Calling with no arguments clears the pattern.
func (c *Context) SetDash(lengths ...float64) {
	c.paint.Dash = NewDash(lengths...)
}

// SetDashOffset sets the starting offset into the dash pattern. No
// effect without a dash pattern.
func (c *Context) SetDashOffset(offset float64) {
	c.paint.Dash = c.paint.Dash.WithOffset(offset)
}

// ClearDash removes the dash pattern.
func (c *Context) ClearDash() {
	c.paint.Dash = nil
}

// IsDashed reports whether strokes currently use a dash pattern.
func (c *Context) IsDashed() bool {
	return c.paint.Dash.IsDashed()
}

// MoveTo starts a new subpath at (x, y). The point is transformed by
// the current matrix as it enters the path.
func (c *Context) MoveTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.MoveTo(p.X, p.Y)
}

// LineTo adds a line to the current path.
func (c *Context) LineTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.LineTo(p.X, p.Y)
}

// QuadraticTo adds a quadratic Bézier curve to the current path.
func (c *Context) QuadraticTo(cx, cy, x, y float64) {
	cp := c.matrix.TransformPoint(Pt(cx, cy))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.QuadraticTo(cp.X, cp.Y, p.X, p.Y)
}

// CubicTo adds a cubic Bézier curve to the current path.
func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	cp1 := c.matrix.TransformPoint(Pt(c1x, c1y))
	cp2 := c.matrix.TransformPoint(Pt(c2x, c2y))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.CubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p.X, p.Y)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.path.Close()
}

// ClearPath clears the current path.
func (c *Context) ClearPath() {
	c.path.Clear()
}

// NewSubPath marks the start of a new subpath. The next MoveTo begins
// one regardless; this exists for callers porting canvas-style code.
func (c *Context) NewSubPath() {
}

// CurrentPoint returns the path's current point in device space and
// whether one exists.
func (c *Context) CurrentPoint() (Point, bool) {
	return c.path.Current()
}

// Fill fills the current path and clears it.
func (c *Context) Fill() error {
	err := c.doFill()
	c.path.Clear()
	return err
}

// FillPreserve fills the current path without clearing it.
func (c *Context) FillPreserve() error {
	return c.doFill()
}

// Stroke strokes the current path and clears it.
func (c *Context) Stroke() error {
	err := c.doStroke()
	c.path.Clear()
	return err
}

// StrokePreserve strokes the current path without clearing it.
func (c *Context) StrokePreserve() error {
	return c.doStroke()
}

func (c *Context) doFill() error {
	return c.renderer.Fill(c.pixmap, c.path, c.paint, c.clip)
}

func (c *Context) doStroke() error {
	c.paint.TransformScale = c.matrix.ScaleFactor()
	return c.renderer.Stroke(c.pixmap, c.path, c.paint, c.clip)
}

// Push saves the current transform, paint, and clip region.
func (c *Context) Push() {
	c.stack = append(c.stack, contextState{
		matrix: c.matrix,
		paint:  c.paint.Clone(),
		clip:   c.clip,
	})
}

// Pop restores the most recently pushed state. Pop on an empty stack
// is a no-op.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.matrix = s.matrix
	c.paint = s.paint
	c.clip = s.clip
}

// Identity resets the transformation matrix.
func (c *Context) Identity() {
	c.matrix = Identity()
}

// Translate applies a translation.
func (c *Context) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale applies a scale.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// ScaleAbout scales around a specific point.
func (c *Context) ScaleAbout(sx, sy, x, y float64) {
	c.Translate(x, y)
	c.Scale(sx, sy)
	c.Translate(-x, -y)
}

// Rotate applies a rotation, angle in radians.
func (c *Context) Rotate(angle float64) {
	c.matrix = c.matrix.Multiply(Rotate(angle))
}

// RotateAbout rotates around a specific point.
func (c *Context) RotateAbout(angle, x, y float64) {
	c.Translate(x, y)
	c.Rotate(angle)
	c.Translate(-x, -y)
}

// Shear applies a shear.
func (c *Context) Shear(x, y float64) {
	c.matrix = c.matrix.Multiply(Shear(x, y))
}

// Transform multiplies the current matrix by m.
func (c *Context) Transform(m Matrix) {
	c.matrix = c.matrix.Multiply(m)
}

// SetTransform replaces the current matrix.
func (c *Context) SetTransform(m Matrix) {
	c.matrix = m
}

// GetTransform returns a copy of the current matrix.
func (c *Context) GetTransform() Matrix {
	return c.matrix
}

// TransformPoint maps a user-space point to device space.
func (c *Context) TransformPoint(x, y float64) (float64, float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// InvertY flips the Y axis so the origin moves to the bottom-left.
func (c *Context) InvertY() {
	c.Translate(0, float64(c.height))
	c.Scale(1, -1)
}

// SetPixel writes a single pixel, bypassing transform and clip.
func (c *Context) SetPixel(x, y int, col RGBA) {
	c.pixmap.SetPixel(x, y, col)
}

// DrawPoint draws a filled dot of radius r. The path still needs a
// Fill call, matching the other Draw helpers.
func (c *Context) DrawPoint(x, y, r float64) {
	c.DrawCircle(x, y, r)
}

// DrawLine adds a line between two points to the current path.
func (c *Context) DrawLine(x1, y1, x2, y2 float64) {
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
}

// DrawRectangle adds a rectangle to the current path.
func (c *Context) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// DrawRoundedRectangle adds a rectangle with rounded corners.
func (c *Context) DrawRoundedRectangle(x, y, w, h, r float64) {
	local := NewPath()
	local.RoundedRectangle(x, y, w, h, r)
	c.appendTransformed(local)
}

// DrawCircle adds a circle to the current path.
func (c *Context) DrawCircle(x, y, r float64) {
	c.DrawEllipse(x, y, r, r)
}

// DrawEllipse adds an axis-aligned ellipse to the current path.
func (c *Context) DrawEllipse(x, y, rx, ry float64) {
	local := NewPath()
	local.Ellipse(x, y, rx, ry)
	c.appendTransformed(local)
}

// DrawArc adds a circular arc around (x, y) from angle1 to angle2 in
// radians.
func (c *Context) DrawArc(x, y, r, angle1, angle2 float64) {
	c.DrawEllipticalArc(x, y, r, r, angle1, angle2)
}

// DrawEllipticalArc adds an elliptical arc around (x, y).
func (c *Context) DrawEllipticalArc(x, y, rx, ry, angle1, angle2 float64) {
	local := NewPath()
	if cur, ok := c.currentUserPoint(); ok {
		local.MoveTo(cur.X, cur.Y)
	}
	local.EllipticalArc(x, y, rx, ry, angle1, angle2)
	c.appendTransformed(local)
}

// DrawRegularPolygon adds a regular n-gon centered at (x, y) with
// circumradius r, rotated so the first vertex sits at the given angle.
func (c *Context) DrawRegularPolygon(n int, x, y, r, rotation float64) {
	if n < 3 {
		return
	}
	angle := 2 * math.Pi / float64(n)
	rotation -= math.Pi / 2
	for i := 0; i < n; i++ {
		a := rotation + angle*float64(i)
		px := x + r*math.Cos(a)
		py := y + r*math.Sin(a)
		if i == 0 {
			c.MoveTo(px, py)
		} else {
			c.LineTo(px, py)
		}
	}
	c.ClosePath()
}

// appendTransformed appends a user-space path to the current path with
// the current matrix applied. DrawEllipse and friends build locally so
// their curve control points transform correctly.
func (c *Context) appendTransformed(local *Path) {
	if c.matrix.IsIdentity() {
		for _, el := range local.Elements() {
			c.appendElement(el)
		}
		return
	}
	for _, el := range local.Transform(c.matrix).Elements() {
		c.appendElement(el)
	}
}

func (c *Context) appendElement(el PathElement) {
	switch e := el.(type) {
	case MoveTo:
		c.path.MoveTo(e.Point.X, e.Point.Y)
	case LineTo:
		c.path.LineTo(e.Point.X, e.Point.Y)
	case QuadTo:
		c.path.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
	case CubicTo:
		c.path.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
	case Close:
		c.path.Close()
	}
}

// currentUserPoint maps the path's current device-space point back to
// user space.
func (c *Context) currentUserPoint() (Point, bool) {
	cur, ok := c.path.Current()
	if !ok {
		return Point{}, false
	}
	return c.matrix.Invert().TransformPoint(cur), true
}

// Resize changes the context dimensions. The pixmap is reallocated,
// the clip region resets, the current path clears, and the transform
// is preserved.
func (c *Context) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}
	c.width = width
	c.height = height
	c.pixmap = NewPixmap(width, height)
	c.clip = nil
	c.path.Clear()
	return nil
}
