package dot

import (
	"testing"
)

func fixedMeasure(label string, size float64) (w, h float64) {
	return float64(len(label)) * size * 0.6, size
}

func layoutOpts() LayoutOptions {
	o := DefaultLayoutOptions()
	o.Measure = fixedMeasure
	return o
}

func TestLayoutRanks(t *testing.T) {
	g := NewDigraph()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	d := g.AddVertex("d")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(a, d)
	g.AddEdge(d, c)

	res := Layout(g, layoutOpts())
	wantRanks := map[VertexID]int{a: 0, b: 1, d: 1, c: 2}
	for id, want := range wantRanks {
		if got := res.Node(id).Rank; got != want {
			t.Errorf("rank(%d) = %d, want %d", id, got, want)
		}
	}
}

func TestLayoutRanksFollowDeeperPath(t *testing.T) {
	// a -> b -> c and a -> c: c must sit below b, not beside it.
	g := NewDigraph()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(a, c)

	res := Layout(g, layoutOpts())
	if got := res.Node(c).Rank; got != 2 {
		t.Errorf("rank(c) = %d, want 2", got)
	}
}

func TestLayoutCycle(t *testing.T) {
	g := NewDigraph()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	c := g.AddVertex("c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(c, a) // back edge

	res := Layout(g, layoutOpts())
	if len(res.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(res.Nodes))
	}
	// Cycle broken: ranks are finite and not all equal.
	ranks := map[int]bool{}
	for _, n := range res.Nodes {
		ranks[n.Rank] = true
	}
	if len(ranks) < 2 {
		t.Errorf("cycle collapsed onto one rank: %+v", res.Nodes)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	build := func() *LayoutResult {
		g, err := ParseString(`digraph {
  a -> b; a -> c; b -> d; c -> d; d -> e; b -> e;
}`)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		return Layout(g, layoutOpts())
	}
	first := build()
	for i := 0; i < 3; i++ {
		again := build()
		for j := range first.Nodes {
			if first.Nodes[j].Pos != again.Nodes[j].Pos {
				t.Fatalf("run %d: node %d moved from %+v to %+v",
					i, j, first.Nodes[j].Pos, again.Nodes[j].Pos)
			}
		}
	}
}

func TestLayoutRankdirLR(t *testing.T) {
	g := NewDigraph()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b)

	opts := layoutOpts()
	opts.Rankdir = RankLR
	res := Layout(g, opts)
	na, nb := res.Node(a), res.Node(b)
	if nb.Pos.X <= na.Pos.X {
		t.Errorf("LR: b.X = %v should exceed a.X = %v", nb.Pos.X, na.Pos.X)
	}
	if na.Pos.Y != nb.Pos.Y {
		t.Errorf("LR: same-chain nodes should share Y, got %v vs %v", na.Pos.Y, nb.Pos.Y)
	}
}

func TestLayoutEmptyGraph(t *testing.T) {
	res := Layout(NewDigraph(), layoutOpts())
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("empty graph laid out %d nodes, %d edges", len(res.Nodes), len(res.Edges))
	}
	if res.W <= 0 || res.H <= 0 {
		t.Errorf("empty canvas extent = %v x %v", res.W, res.H)
	}
}

func TestLayoutSelfLoop(t *testing.T) {
	g := NewDigraph()
	a := g.AddVertex("a")
	g.AddEdge(a, a)

	res := Layout(g, layoutOpts())
	if len(res.Edges) != 1 || !res.Edges[0].Loop {
		t.Fatalf("self edge not marked as loop: %+v", res.Edges)
	}
	n := res.Node(a)
	for _, p := range res.Edges[0].Points[1:3] {
		if p.X <= n.Pos.X+n.W/2 {
			t.Errorf("loop control point %v not outside node box", p)
		}
	}
}

func TestLayoutEdgeEndpointsOnBorders(t *testing.T) {
	g := NewDigraph()
	a := g.AddVertex("a")
	b := g.AddVertex("b")
	g.AddEdge(a, b)

	res := Layout(g, layoutOpts())
	el := res.Edges[0]
	na, nb := res.Node(a), res.Node(b)
	if got := el.Points[0].Y; got != na.Pos.Y+na.H/2 {
		t.Errorf("tail Y = %v, want bottom border %v", got, na.Pos.Y+na.H/2)
	}
	if got := el.Points[3].Y; got != nb.Pos.Y-nb.H/2 {
		t.Errorf("head Y = %v, want top border %v", got, nb.Pos.Y-nb.H/2)
	}
}

func TestLayoutNodeSizesFromLabels(t *testing.T) {
	g := NewDigraph()
	short := g.AddVertex("a")
	long := g.AddVertex("a considerably longer label")

	res := Layout(g, layoutOpts())
	if res.Node(long).W <= res.Node(short).W {
		t.Errorf("long label width %v not greater than short %v",
			res.Node(long).W, res.Node(short).W)
	}
}
