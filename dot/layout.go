package dot

import (
	"math"
	"sort"

	"github.com/etudelab/atelier/text"
)

// Rankdir selects the direction ranks grow in.
type Rankdir int

const (
	// RankTB stacks ranks top to bottom.
	RankTB Rankdir = iota
	// RankLR stacks ranks left to right.
	RankLR
)

// MeasureFunc returns the rendered extent of a label at the given font
// size. Layout uses it to size node boxes.
type MeasureFunc func(label string, size float64) (w, h float64)

// LayoutOptions tune the layered layout. The zero value is usable;
// DefaultLayoutOptions fills in the Graphviz-flavored defaults.
type LayoutOptions struct {
	Rankdir  Rankdir
	NodeSep  float64 // gap between nodes on the same rank
	RankSep  float64 // gap between ranks
	Margin   float64 // outer canvas margin
	FontSize float64
	Measure  MeasureFunc
}

// DefaultLayoutOptions returns the standard spacing.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		NodeSep:  24,
		RankSep:  48,
		Margin:   16,
		FontSize: 14,
		Measure:  builtinMeasure,
	}
}

func builtinMeasure(label string, size float64) (w, h float64) {
	face := text.BuiltinFace(size)
	m := face.Metrics()
	return text.Measure(face, label), m.Ascent + m.Descent
}

// XY is a point in layout space.
type XY struct {
	X, Y float64
}

// NodeLayout is a placed vertex: center position and box extent.
type NodeLayout struct {
	ID   VertexID
	Pos  XY
	W, H float64
	Rank int
}

// EdgeLayout is a routed edge. Points holds the cubic control polygon
// from tail to head; Loop marks a self-edge drawn as a side arc.
type EdgeLayout struct {
	Edge   *Edge
	Points []XY
	Loop   bool
}

// LayoutResult is a finished drawing plan in canvas coordinates with
// the origin at the top left.
type LayoutResult struct {
	Nodes  []NodeLayout
	Edges  []EdgeLayout
	W, H   float64
	byNode map[VertexID]int
}

// Node returns the placement for a vertex, or nil if it was not laid
// out.
func (r *LayoutResult) Node(id VertexID) *NodeLayout {
	i, ok := r.byNode[id]
	if !ok {
		return nil
	}
	return &r.Nodes[i]
}

const (
	nodeMarginX = 12.0
	nodeMarginY = 8.0
	minNodeW    = 36.0
	minNodeH    = 26.0
)

// Layout places the graph with a layered (Sugiyama-style) pass: break
// cycles by reversing DFS back edges, rank by longest path, order each
// rank with median-of-neighbors sweeps, then assign coordinates from
// label extents. The result is deterministic for a given graph.
func Layout(g *Graph, opts LayoutOptions) *LayoutResult {
	def := DefaultLayoutOptions()
	if opts.NodeSep <= 0 {
		opts.NodeSep = def.NodeSep
	}
	if opts.RankSep <= 0 {
		opts.RankSep = def.RankSep
	}
	if opts.Margin <= 0 {
		opts.Margin = def.Margin
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}
	if opts.Measure == nil {
		opts.Measure = def.Measure
	}

	res := &LayoutResult{byNode: make(map[VertexID]int)}
	n := len(g.vertices)
	if n == 0 {
		res.W = 2 * opts.Margin
		res.H = 2 * opts.Margin
		return res
	}

	fwd := acyclicEdges(g)
	ranks := longestPathRanks(n, fwd)
	order := orderRanks(n, fwd, ranks)

	// Node extents from labels.
	ws := make([]float64, n)
	hs := make([]float64, n)
	for _, v := range g.vertices {
		lw, lh := opts.Measure(v.Label(), opts.FontSize)
		ws[v.ID] = math.Max(minNodeW, lw+2*nodeMarginX)
		hs[v.ID] = math.Max(minNodeH, lh+2*nodeMarginY)
	}

	// Coordinates: "main" runs along a rank, "cross" between ranks.
	// For TB main is x and cross is y; LR swaps them.
	main := make([]float64, n)
	cross := make([]float64, n)
	var maxMain float64
	crossPos := opts.Margin
	for _, rank := range order {
		pos := opts.Margin
		var rankDepth float64
		for _, id := range rank {
			w, h := ws[id], hs[id]
			if opts.Rankdir == RankLR {
				w, h = h, w
			}
			main[id] = pos + w/2
			pos += w + opts.NodeSep
			rankDepth = math.Max(rankDepth, h)
		}
		for _, id := range rank {
			cross[id] = crossPos + rankDepth/2
		}
		maxMain = math.Max(maxMain, pos-opts.NodeSep)
		crossPos += rankDepth + opts.RankSep
	}
	maxCross := crossPos - opts.RankSep

	res.Nodes = make([]NodeLayout, n)
	for _, v := range g.vertices {
		x, y := main[v.ID], cross[v.ID]
		if opts.Rankdir == RankLR {
			x, y = y, x
		}
		res.Nodes[v.ID] = NodeLayout{
			ID:   v.ID,
			Pos:  XY{X: x, Y: y},
			W:    ws[v.ID],
			H:    hs[v.ID],
			Rank: ranks[v.ID],
		}
		res.byNode[v.ID] = int(v.ID)
	}
	if opts.Rankdir == RankLR {
		res.W = maxCross + opts.Margin
		res.H = maxMain + opts.Margin
	} else {
		res.W = maxMain + opts.Margin
		res.H = maxCross + opts.Margin
	}

	for _, e := range g.edges {
		if e.From == e.To {
			res.Edges = append(res.Edges, routeLoop(res.Node(e.From), e))
			continue
		}
		res.Edges = append(res.Edges, routeEdge(res, e, opts.Rankdir))
	}
	return res
}

// acyclicEdges returns a cycle-free forward edge set for ranking: DFS
// back edges are reversed and self-loops dropped.
func acyclicEdges(g *Graph) (fwd [][2]VertexID) {
	n := len(g.vertices)
	adj := make([][]int, n)
	for i, e := range g.edges {
		if e.From == e.To {
			continue
		}
		adj[e.From] = append(adj[e.From], i)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make([]int, n)
	reversed := make(map[int]bool)
	var visit func(v VertexID)
	visit = func(v VertexID) {
		state[v] = gray
		for _, ei := range adj[v] {
			to := g.edges[ei].To
			switch state[to] {
			case white:
				visit(to)
			case gray:
				reversed[ei] = true
			}
		}
		state[v] = black
	}
	for v := 0; v < n; v++ {
		if state[v] == white {
			visit(VertexID(v))
		}
	}

	for i, e := range g.edges {
		if e.From == e.To {
			continue
		}
		if reversed[i] {
			fwd = append(fwd, [2]VertexID{e.To, e.From})
		} else {
			fwd = append(fwd, [2]VertexID{e.From, e.To})
		}
	}
	return fwd
}

// longestPathRanks assigns each vertex the length of the longest
// forward path reaching it.
func longestPathRanks(n int, fwd [][2]VertexID) []int {
	ranks := make([]int, n)
	indeg := make([]int, n)
	out := make([][]VertexID, n)
	for _, e := range fwd {
		out[e[0]] = append(out[e[0]], e[1])
		indeg[e[1]]++
	}
	var queue []VertexID
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			queue = append(queue, VertexID(v))
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, to := range out[v] {
			if ranks[v]+1 > ranks[to] {
				ranks[to] = ranks[v] + 1
			}
			indeg[to]--
			if indeg[to] == 0 {
				queue = append(queue, to)
			}
		}
	}
	return ranks
}

// orderRanks groups vertices by rank and reduces crossings with a few
// median-of-neighbors sweeps.
func orderRanks(n int, fwd [][2]VertexID, ranks []int) [][]VertexID {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	order := make([][]VertexID, maxRank+1)
	for v := 0; v < n; v++ {
		order[ranks[v]] = append(order[ranks[v]], VertexID(v))
	}

	up := make([][]VertexID, n)   // neighbors one rank above
	down := make([][]VertexID, n) // one rank below
	for _, e := range fwd {
		down[e[0]] = append(down[e[0]], e[1])
		up[e[1]] = append(up[e[1]], e[0])
	}

	pos := make([]int, n)
	rebuild := func() {
		for _, rank := range order {
			for i, id := range rank {
				pos[id] = i
			}
		}
	}
	median := func(id VertexID, neighbors []VertexID) float64 {
		if len(neighbors) == 0 {
			return float64(pos[id])
		}
		ps := make([]int, len(neighbors))
		for i, nb := range neighbors {
			ps[i] = pos[nb]
		}
		sort.Ints(ps)
		return float64(ps[len(ps)/2])
	}
	sweep := func(neighbors [][]VertexID) {
		rebuild()
		for _, rank := range order {
			sort.SliceStable(rank, func(i, j int) bool {
				return median(rank[i], neighbors[rank[i]]) < median(rank[j], neighbors[rank[j]])
			})
			for i, id := range rank {
				pos[id] = i
			}
		}
	}
	for i := 0; i < 4; i++ {
		sweep(up)
		sweep(down)
	}
	return order
}

// routeEdge builds a cubic from the tail border toward the head border
// with control points pulled along the rank axis.
func routeEdge(res *LayoutResult, e *Edge, dir Rankdir) EdgeLayout {
	from := res.Node(e.From)
	to := res.Node(e.To)
	p0 := borderPoint(from, to.Pos, dir)
	p3 := borderPoint(to, from.Pos, dir)
	var c1, c2 XY
	if dir == RankLR {
		dx := (p3.X - p0.X) / 3
		c1 = XY{X: p0.X + dx, Y: p0.Y}
		c2 = XY{X: p3.X - dx, Y: p3.Y}
	} else {
		dy := (p3.Y - p0.Y) / 3
		c1 = XY{X: p0.X, Y: p0.Y + dy}
		c2 = XY{X: p3.X, Y: p3.Y - dy}
	}
	return EdgeLayout{Edge: e, Points: []XY{p0, c1, c2, p3}}
}

// borderPoint picks the point on the node box facing the target.
func borderPoint(n *NodeLayout, toward XY, dir Rankdir) XY {
	if dir == RankLR {
		if toward.X >= n.Pos.X {
			return XY{X: n.Pos.X + n.W/2, Y: n.Pos.Y}
		}
		return XY{X: n.Pos.X - n.W/2, Y: n.Pos.Y}
	}
	if toward.Y >= n.Pos.Y {
		return XY{X: n.Pos.X, Y: n.Pos.Y + n.H/2}
	}
	return XY{X: n.Pos.X, Y: n.Pos.Y - n.H/2}
}

// routeLoop routes a self-edge as an arc off the right side of the
// node box.
func routeLoop(n *NodeLayout, e *Edge) EdgeLayout {
	r := n.H / 2
	right := XY{X: n.Pos.X + n.W/2, Y: n.Pos.Y}
	return EdgeLayout{
		Edge: e,
		Loop: true,
		Points: []XY{
			{X: right.X, Y: right.Y - r/2},
			{X: right.X + r*1.6, Y: right.Y - r},
			{X: right.X + r*1.6, Y: right.Y + r},
			{X: right.X, Y: right.Y + r/2},
		},
	}
}
