package dot

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes the graph in Graphviz DOT syntax. Output is
// deterministic: graph attributes first, then node and edge defaults,
// clusters in creation order, vertices by ID, and finally edges in
// insertion order.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder

	if g.strict {
		b.WriteString("strict ")
	}
	if g.directed {
		b.WriteString("digraph ")
	} else {
		b.WriteString("graph ")
	}
	if g.name != "" {
		b.WriteString(quoteID(g.name))
		b.WriteByte(' ')
	}
	b.WriteString("{\n")

	g.attrs.Each(func(k, v string) bool {
		fmt.Fprintf(&b, "  %s=%s;\n", quoteID(k), quoteID(v))
		return true
	})
	writeDefaults(&b, "node", g.nodeDefaults)
	writeDefaults(&b, "edge", g.edgeDefaults)

	for i, s := range g.subgraphs {
		fmt.Fprintf(&b, "  subgraph %s {\n", quoteID(fmt.Sprintf("cluster_%d", i)))
		if s.Name != "" {
			fmt.Fprintf(&b, "    label=%s;\n", quoteID(s.Name))
		}
		s.Attrs.Each(func(k, v string) bool {
			fmt.Fprintf(&b, "    %s=%s;\n", quoteID(k), quoteID(v))
			return true
		})
		for _, id := range s.members {
			fmt.Fprintf(&b, "    %s;\n", quoteID(vertexName(id)))
		}
		b.WriteString("  }\n")
	}

	for _, v := range g.vertices {
		b.WriteString("  ")
		b.WriteString(quoteID(vertexName(v.ID)))
		writeAttrList(&b, v.Attrs)
		b.WriteString(";\n")
	}

	op := " -- "
	if g.directed {
		op = " -> "
	}
	for _, e := range g.edges {
		b.WriteString("  ")
		b.WriteString(quoteID(vertexName(e.From)))
		b.WriteString(op)
		b.WriteString(quoteID(vertexName(e.To)))
		writeAttrList(&b, e.Attrs)
		b.WriteString(";\n")
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the DOT source for the graph.
func (g *Graph) String() string {
	var b strings.Builder
	_ = g.WriteDOT(&b)
	return b.String()
}

func writeDefaults(b *strings.Builder, kind string, attrs *Attrs) {
	if attrs.Len() == 0 {
		return
	}
	b.WriteString("  ")
	b.WriteString(kind)
	writeAttrList(b, attrs)
	b.WriteString(";\n")
}

func writeAttrList(b *strings.Builder, attrs *Attrs) {
	if attrs.Len() == 0 {
		return
	}
	b.WriteString(" [")
	first := true
	attrs.Each(func(k, v string) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(quoteID(k))
		b.WriteByte('=')
		b.WriteString(quoteID(v))
		return true
	})
	b.WriteByte(']')
}

func vertexName(id VertexID) string {
	return fmt.Sprintf("n%d", id)
}

// quoteID quotes a DOT identifier unless it is bare-safe: a letter or
// underscore followed by letters, digits, and underscores, or a plain
// numeral.
func quoteID(s string) string {
	if bareSafe(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func bareSafe(s string) bool {
	if s == "" {
		return false
	}
	numeric := true
	for i, r := range s {
		if r < '0' || r > '9' {
			numeric = false
		}
		alpha := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if i == 0 && !alpha && !digit {
			return false
		}
		if !alpha && !digit {
			return false
		}
	}
	if numeric {
		return true
	}
	// A leading digit on a non-numeral needs quoting.
	first := s[0]
	if first >= '0' && first <= '9' {
		return false
	}
	// DOT keywords must be quoted to stay unambiguous.
	switch strings.ToLower(s) {
	case "graph", "digraph", "subgraph", "node", "edge", "strict":
		return false
	}
	return true
}
