package dot

import (
	"math"
	"strings"

	"github.com/etudelab/atelier"
	"github.com/etudelab/atelier/text"
)

// RenderOptions tune the drawing pass on top of the layout.
type RenderOptions struct {
	Layout     LayoutOptions
	Background string // color name or hex; default white
	FontSize   float64
	LineWidth  float64
}

// Render lays the graph out and draws it onto a fresh canvas. Node
// shape, color, fillcolor, and fontcolor attributes are honored, with
// graph-level node/edge defaults as fallback. Directed edges get
// arrowheads; self-loops draw as side arcs. The context is returned
// ready for encoding.
func Render(g *Graph, opts RenderOptions) *atelier.Context {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultLayoutOptions().FontSize
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	opts.Layout.FontSize = opts.FontSize
	res := Layout(g, opts.Layout)

	c := atelier.NewContext(int(math.Ceil(res.W)), int(math.Ceil(res.H)))
	c.SetFontFace(text.BuiltinFace(opts.FontSize))

	bg := opts.Background
	if bg == "" {
		bg = "white"
	}
	c.ClearWithColor(resolveColor(bg))

	drawClusters(c, g, res, opts)
	for _, el := range res.Edges {
		drawEdge(c, g, el, opts)
	}
	for _, v := range g.vertices {
		drawNode(c, g, v, res.Node(v.ID), opts)
	}
	return c
}

// drawClusters paints a bounding box with label behind each cluster's
// member nodes.
func drawClusters(c *atelier.Context, g *Graph, res *LayoutResult, opts RenderOptions) {
	const pad = 8.0
	for _, s := range g.subgraphs {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, id := range s.members {
			n := res.Node(id)
			if n == nil {
				continue
			}
			minX = math.Min(minX, n.Pos.X-n.W/2)
			minY = math.Min(minY, n.Pos.Y-n.H/2)
			maxX = math.Max(maxX, n.Pos.X+n.W/2)
			maxY = math.Max(maxY, n.Pos.Y+n.H/2)
		}
		if minX > maxX {
			continue
		}
		if fill, ok := s.Attrs.Get("fillcolor"); ok {
			setColor(c, fill)
			c.DrawRectangle(minX-pad, minY-pad, maxX-minX+2*pad, maxY-minY+2*pad)
			c.Fill()
		}
		setColor(c, s.Attrs.GetDefault("color", "gray"))
		c.SetLineWidth(opts.LineWidth)
		c.DrawRectangle(minX-pad, minY-pad, maxX-minX+2*pad, maxY-minY+2*pad)
		c.Stroke()
		if s.Name != "" {
			setColor(c, s.Attrs.GetDefault("fontcolor", "black"))
			c.DrawStringAnchored(s.Name, minX-pad+4, minY-pad-4, 0, 0)
		}
	}
}

func drawNode(c *atelier.Context, g *Graph, v *Vertex, n *NodeLayout, opts RenderOptions) {
	shape := nodeAttr(g, v, "shape", "box")
	x, y, w, h := n.Pos.X, n.Pos.Y, n.W, n.H

	tracePath := func() {
		switch shape {
		case "ellipse":
			c.DrawEllipse(x, y, w/2, h/2)
		case "circle":
			r := math.Max(w, h) / 2
			c.DrawCircle(x, y, r)
		case "diamond":
			c.MoveTo(x, y-h/2)
			c.LineTo(x+w/2, y)
			c.LineTo(x, y+h/2)
			c.LineTo(x-w/2, y)
			c.ClosePath()
		case "point":
			c.DrawCircle(x, y, 3)
		default:
			c.DrawRectangle(x-w/2, y-h/2, w, h)
		}
	}

	if fill, ok := lookupAttr(g, v, "fillcolor"); ok {
		setColor(c, fill)
		tracePath()
		c.Fill()
	} else if shape == "point" {
		setColor(c, nodeAttr(g, v, "color", "black"))
		tracePath()
		c.Fill()
		return
	}

	setColor(c, nodeAttr(g, v, "color", "black"))
	c.SetLineWidth(opts.LineWidth)
	tracePath()
	c.Stroke()

	setColor(c, nodeAttr(g, v, "fontcolor", "black"))
	c.DrawStringAnchored(v.Label(), x, y, 0.5, 0.35)
}

func drawEdge(c *atelier.Context, g *Graph, el EdgeLayout, opts RenderOptions) {
	p := el.Points
	if len(p) != 4 {
		return
	}
	setColor(c, edgeAttr(g, el.Edge, "color", "black"))
	c.SetLineWidth(opts.LineWidth)
	c.MoveTo(p[0].X, p[0].Y)
	c.CubicTo(p[1].X, p[1].Y, p[2].X, p[2].Y, p[3].X, p[3].Y)
	c.Stroke()

	if g.directed {
		drawArrowhead(c, p[2], p[3])
	}
	if label, ok := el.Edge.Attrs.Get("label"); ok && label != "" {
		mx := cubicAt(p, 0.5)
		setColor(c, edgeAttr(g, el.Edge, "fontcolor", "black"))
		c.DrawStringAnchored(label, mx.X+4, mx.Y-4, 0, 0)
	}
}

// drawArrowhead fills a triangle at tip, pointing away from from.
func drawArrowhead(c *atelier.Context, from, tip XY) {
	dx, dy := tip.X-from.X, tip.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l, dy/l
	const length, width = 9.0, 4.0
	bx, by := tip.X-ux*length, tip.Y-uy*length
	px, py := -uy, ux
	c.MoveTo(tip.X, tip.Y)
	c.LineTo(bx+px*width, by+py*width)
	c.LineTo(bx-px*width, by-py*width)
	c.ClosePath()
	c.Fill()
}

func cubicAt(p []XY, t float64) XY {
	u := 1 - t
	return XY{
		X: u*u*u*p[0].X + 3*u*u*t*p[1].X + 3*u*t*t*p[2].X + t*t*t*p[3].X,
		Y: u*u*u*p[0].Y + 3*u*u*t*p[1].Y + 3*u*t*t*p[2].Y + t*t*t*p[3].Y,
	}
}

func lookupAttr(g *Graph, v *Vertex, key string) (string, bool) {
	if val, ok := v.Attrs.Get(key); ok {
		return val, true
	}
	return g.nodeDefaults.Get(key)
}

func nodeAttr(g *Graph, v *Vertex, key, def string) string {
	if val, ok := lookupAttr(g, v, key); ok {
		return val
	}
	return def
}

func edgeAttr(g *Graph, e *Edge, key, def string) string {
	if val, ok := e.Attrs.Get(key); ok {
		return val
	}
	return g.edgeDefaults.GetDefault(key, def)
}

// namedColors covers the Graphviz names the examples actually use.
// Anything else is handed to SetHexColor.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#e81123",
	"green":     "#16c60c",
	"blue":      "#0078d7",
	"yellow":    "#fff100",
	"orange":    "#f7630c",
	"purple":    "#886ce4",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"lightblue": "#add8e6",
	"salmon":    "#fa8072",
	"navy":      "#001f3f",
}

func resolveColor(name string) atelier.RGBA {
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return atelier.Hex(hex)
	}
	return atelier.Hex(name)
}

func setColor(c *atelier.Context, name string) {
	col := resolveColor(name)
	c.SetRGBA(col.R, col.G, col.B, col.A)
}
