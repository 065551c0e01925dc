package dot

import (
	"errors"
	"fmt"
	"sort"
)

// VertexID identifies a vertex within its graph. IDs are dense,
// assigned in insertion order, and never reused.
type VertexID int

// Vertex is a graph node with its attribute table.
type Vertex struct {
	ID    VertexID
	Attrs *Attrs
}

// Label returns the vertex label attribute, or its numeric ID when no
// label is set.
func (v *Vertex) Label() string {
	return v.Attrs.GetDefault("label", fmt.Sprintf("n%d", v.ID))
}

// Edge connects two vertices. For undirected graphs From/To record
// insertion order but carry no direction.
type Edge struct {
	From  VertexID
	To    VertexID
	Attrs *Attrs
}

// Subgraph is a cluster: a named group of vertices with its own
// attribute table. Clusters render as labeled boxes.
type Subgraph struct {
	Name    string
	Attrs   *Attrs
	members []VertexID
}

// Members returns the member vertex IDs in insertion order.
func (s *Subgraph) Members() []VertexID {
	out := make([]VertexID, len(s.members))
	copy(out, s.members)
	return out
}

var (
	// ErrUnknownVertex is returned when an edge references a vertex ID
	// the graph never issued.
	ErrUnknownVertex = errors.New("dot: unknown vertex")

	// ErrDuplicateEdge is returned by strict graphs when an edge
	// between the same endpoints is added twice.
	ErrDuplicateEdge = errors.New("dot: duplicate edge in strict graph")
)

// Graph is a directed or undirected attributed graph. Graph itself is
// not safe for concurrent mutation; the attribute tables it hands out
// are.
type Graph struct {
	name     string
	directed bool
	strict   bool

	vertices  []*Vertex
	edges     []*Edge
	subgraphs []*Subgraph

	attrs        *Attrs
	nodeDefaults *Attrs
	edgeDefaults *Attrs
}

// Option configures a graph at construction.
type Option func(*Graph)

// Strict rejects duplicate edges between the same endpoints.
func Strict() Option {
	return func(g *Graph) { g.strict = true }
}

// Name sets the graph name emitted in the DOT header.
func Name(name string) Option {
	return func(g *Graph) { g.name = name }
}

// NewGraph creates an undirected graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		attrs:        NewAttrs(),
		nodeDefaults: NewAttrs(),
		edgeDefaults: NewAttrs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewDigraph creates a directed graph.
func NewDigraph(opts ...Option) *Graph {
	g := NewGraph(opts...)
	g.directed = true
	return g
}

// Directed reports whether edges carry direction.
func (g *Graph) Directed() bool { return g.directed }

// IsStrict reports whether duplicate edges are rejected.
func (g *Graph) IsStrict() bool { return g.strict }

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Attrs returns the graph-level attribute table.
func (g *Graph) Attrs() *Attrs { return g.attrs }

// NodeDefaults returns the default attributes applied to every node.
func (g *Graph) NodeDefaults() *Attrs { return g.nodeDefaults }

// EdgeDefaults returns the default attributes applied to every edge.
func (g *Graph) EdgeDefaults() *Attrs { return g.edgeDefaults }

// SetAttr sets a graph-level attribute.
func (g *Graph) SetAttr(key, value string) {
	g.attrs.Set(key, value)
}

// Attr returns a graph-level attribute.
func (g *Graph) Attr(key string) (string, bool) {
	return g.attrs.Get(key)
}

// AddVertex adds a vertex with the given label and returns its ID. An
// empty label leaves the label attribute unset.
func (g *Graph) AddVertex(label string) VertexID {
	v := &Vertex{ID: VertexID(len(g.vertices)), Attrs: NewAttrs()}
	if label != "" {
		v.Attrs.Set("label", label)
	}
	g.vertices = append(g.vertices, v)
	return v.ID
}

// AddVertexWithAttrs adds a labeled vertex carrying extra attributes.
func (g *Graph) AddVertexWithAttrs(label string, attrs map[string]string) VertexID {
	id := g.AddVertex(label)
	v := g.vertices[id]
	for _, k := range sortedKeys(attrs) {
		v.Attrs.Set(k, attrs[k])
	}
	return id
}

// Vertex returns the vertex for an ID, or nil for unknown IDs.
func (g *Graph) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(g.vertices) {
		return nil
	}
	return g.vertices[id]
}

// Vertices returns all vertices ordered by ID.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// AddEdge connects two vertices. Unknown endpoints error; duplicate
// edges error only on strict graphs.
func (g *Graph) AddEdge(from, to VertexID) (*Edge, error) {
	if g.Vertex(from) == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, from)
	}
	if g.Vertex(to) == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, to)
	}
	if g.strict && g.hasEdge(from, to) {
		return nil, fmt.Errorf("%w: %d-%d", ErrDuplicateEdge, from, to)
	}
	e := &Edge{From: from, To: to, Attrs: NewAttrs()}
	g.edges = append(g.edges, e)
	return e, nil
}

// AddEdgeWithAttrs connects two vertices with extra attributes.
func (g *Graph) AddEdgeWithAttrs(from, to VertexID, attrs map[string]string) (*Edge, error) {
	e, err := g.AddEdge(from, to)
	if err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(attrs) {
		e.Attrs.Set(k, attrs[k])
	}
	return e, nil
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) hasEdge(from, to VertexID) bool {
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			return true
		}
		if !g.directed && e.From == to && e.To == from {
			return true
		}
	}
	return false
}

// Subgraph returns the cluster with the given name, creating it on
// first use.
func (g *Graph) Subgraph(name string) *Subgraph {
	for _, s := range g.subgraphs {
		if s.Name == name {
			return s
		}
	}
	s := &Subgraph{Name: name, Attrs: NewAttrs()}
	g.subgraphs = append(g.subgraphs, s)
	return s
}

// Subgraphs returns the clusters in creation order.
func (g *Graph) Subgraphs() []*Subgraph {
	out := make([]*Subgraph, len(g.subgraphs))
	copy(out, g.subgraphs)
	return out
}

// AddToSubgraph places a vertex into a cluster. A vertex may belong to
// at most one cluster; moving it drops the old membership.
func (g *Graph) AddToSubgraph(s *Subgraph, id VertexID) error {
	if g.Vertex(id) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	for _, other := range g.subgraphs {
		for i, m := range other.members {
			if m == id {
				other.members = append(other.members[:i], other.members[i+1:]...)
				break
			}
		}
	}
	s.members = append(s.members, id)
	return nil
}

// subgraphOf returns the cluster containing id, or nil.
func (g *Graph) subgraphOf(id VertexID) *Subgraph {
	for _, s := range g.subgraphs {
		for _, m := range s.members {
			if m == id {
				return s
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
