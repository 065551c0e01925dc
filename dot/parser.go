package dot

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrParse wraps every syntax error returned by Parse.
var ErrParse = errors.New("dot: parse error")

// Parse reads the DOT subset WriteDOT emits: graph/digraph headers
// with optional strict and name, attribute statements, node and edge
// defaults, node statements, edge chains (a -> b -> c), attribute
// lists, subgraph blocks, and // and /* */ comments. Vertex IDs are
// assigned in order of first mention.
func Parse(r io.Reader) (*Graph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dot: read: %w", err)
	}
	p := &parser{lex: newLexer(string(src)), names: make(map[string]VertexID)}
	return p.parse()
}

// ParseString parses DOT source from a string.
func ParseString(src string) (*Graph, error) {
	return Parse(strings.NewReader(src))
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokID            // bare identifier, numeral, or quoted string
	tokSym           // single-rune punctuation: { } [ ] = ; ,
	tokDirEdge
	tokUndirEdge
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}
	c := l.src[l.pos]
	switch c {
	case '{', '}', '[', ']', '=', ';', ',':
		l.pos++
		return token{kind: tokSym, text: string(c), line: l.line}, nil
	case '-':
		if strings.HasPrefix(l.src[l.pos:], "->") {
			l.pos += 2
			return token{kind: tokDirEdge, text: "->", line: l.line}, nil
		}
		if strings.HasPrefix(l.src[l.pos:], "--") {
			l.pos += 2
			return token{kind: tokUndirEdge, text: "--", line: l.line}, nil
		}
		return token{}, fmt.Errorf("%w: line %d: stray '-'", ErrParse, l.line)
	case '"':
		return l.quotedString()
	}
	if isIDRune(rune(c)) {
		start := l.pos
		for l.pos < len(l.src) && isIDRune(rune(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokID, text: l.src[start:l.pos], line: l.line}, nil
	}
	return token{}, fmt.Errorf("%w: line %d: unexpected character %q", ErrParse, l.line, c)
}

func (l *lexer) quotedString() (token, error) {
	line := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, fmt.Errorf("%w: line %d: unterminated escape", ErrParse, line)
			}
			esc := l.src[l.pos+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case '"', '\\':
				b.WriteByte(esc)
			default:
				// Graphviz keeps unknown escapes verbatim.
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
			l.pos += 2
		case '"':
			l.pos++
			return token{kind: tokID, text: b.String(), line: line}, nil
		case '\n':
			l.line++
			b.WriteByte(c)
			l.pos++
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return token{}, fmt.Errorf("%w: line %d: unterminated string", ErrParse, line)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				l.pos = len(l.src)
				return
			}
			l.line += strings.Count(l.src[l.pos:l.pos+2+end+2], "\n")
			l.pos += 2 + end + 2
		default:
			return
		}
	}
}

func isIDRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type parser struct {
	lex   *lexer
	tok   token
	graph *Graph
	names map[string]VertexID
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expectSym(sym string) error {
	if p.tok.kind != tokSym || p.tok.text != sym {
		return fmt.Errorf("%w: line %d: expected %q, got %q", ErrParse, p.tok.line, sym, p.tok.text)
	}
	return p.advance()
}

func (p *parser) parse() (*Graph, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	strict := false
	if p.tok.kind == tokID && strings.EqualFold(p.tok.text, "strict") {
		strict = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.tok.kind != tokID {
		return nil, fmt.Errorf("%w: line %d: expected graph or digraph", ErrParse, p.tok.line)
	}
	var directed bool
	switch strings.ToLower(p.tok.text) {
	case "digraph":
		directed = true
	case "graph":
		directed = false
	default:
		return nil, fmt.Errorf("%w: line %d: expected graph or digraph, got %q", ErrParse, p.tok.line, p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var opts []Option
	if strict {
		opts = append(opts, Strict())
	}
	if p.tok.kind == tokID {
		opts = append(opts, Name(p.tok.text))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if directed {
		p.graph = NewDigraph(opts...)
	} else {
		p.graph = NewGraph(opts...)
	}

	if err := p.expectSym("{"); err != nil {
		return nil, err
	}
	if err := p.statements(nil); err != nil {
		return nil, err
	}
	if err := p.expectSym("}"); err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: line %d: trailing input %q", ErrParse, p.tok.line, p.tok.text)
	}
	return p.graph, nil
}

// statements parses the body of a graph or subgraph block until the
// closing brace. Inside a subgraph, bare node statements also join the
// cluster.
func (p *parser) statements(cluster *Subgraph) error {
	for {
		switch {
		case p.tok.kind == tokSym && p.tok.text == "}":
			return nil
		case p.tok.kind == tokEOF:
			return fmt.Errorf("%w: unexpected end of input", ErrParse)
		case p.tok.kind == tokID && strings.EqualFold(p.tok.text, "subgraph"):
			if err := p.subgraph(); err != nil {
				return err
			}
		case p.tok.kind == tokID:
			if err := p.statement(cluster); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: line %d: unexpected %q", ErrParse, p.tok.line, p.tok.text)
		}
	}
}

func (p *parser) subgraph() error {
	if err := p.advance(); err != nil { // consume "subgraph"
		return err
	}
	name := ""
	if p.tok.kind == tokID {
		name = p.tok.text
		if err := p.advance(); err != nil {
			return err
		}
	}
	if err := p.expectSym("{"); err != nil {
		return err
	}
	cluster := p.graph.Subgraph(name)
	if err := p.statements(cluster); err != nil {
		return err
	}
	if err := p.expectSym("}"); err != nil {
		return err
	}
	// A label inside the block becomes the display name.
	if label, ok := cluster.Attrs.Get("label"); ok && name != "" && strings.HasPrefix(name, "cluster_") {
		cluster.Name = label
		cluster.Attrs.Del("label")
	}
	return nil
}

// statement parses one ID-led statement: an attribute assignment, a
// node or edge defaults line, a node statement, or an edge chain.
func (p *parser) statement(cluster *Subgraph) error {
	first := p.tok.text
	line := p.tok.line
	if err := p.advance(); err != nil {
		return err
	}

	// key = value
	if p.tok.kind == tokSym && p.tok.text == "=" {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokID {
			return fmt.Errorf("%w: line %d: expected attribute value", ErrParse, p.tok.line)
		}
		value := p.tok.text
		if err := p.advance(); err != nil {
			return err
		}
		if cluster != nil {
			if first == "label" {
				cluster.Name = value
			} else {
				cluster.Attrs.Set(first, value)
			}
		} else {
			p.graph.SetAttr(first, value)
		}
		return p.optionalSemi()
	}

	// node/edge defaults
	if lower := strings.ToLower(first); lower == "node" || lower == "edge" {
		if p.tok.kind == tokSym && p.tok.text == "[" {
			target := p.graph.NodeDefaults()
			if lower == "edge" {
				target = p.graph.EdgeDefaults()
			}
			if err := p.attrList(target); err != nil {
				return err
			}
			return p.optionalSemi()
		}
	}

	// Edge chain or plain node statement.
	ids := []VertexID{p.vertex(first, cluster)}
	for p.tok.kind == tokDirEdge || p.tok.kind == tokUndirEdge {
		if (p.tok.kind == tokDirEdge) != p.graph.Directed() {
			return fmt.Errorf("%w: line %d: edge operator %q does not match graph type", ErrParse, p.tok.line, p.tok.text)
		}
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokID {
			return fmt.Errorf("%w: line %d: expected vertex after edge operator", ErrParse, p.tok.line)
		}
		ids = append(ids, p.vertex(p.tok.text, cluster))
		if err := p.advance(); err != nil {
			return err
		}
	}

	attrs := NewAttrs()
	if p.tok.kind == tokSym && p.tok.text == "[" {
		if err := p.attrList(attrs); err != nil {
			return err
		}
	}

	if len(ids) == 1 {
		v := p.graph.Vertex(ids[0])
		attrs.Each(func(k, val string) bool {
			v.Attrs.Set(k, val)
			return true
		})
	} else {
		for i := 1; i < len(ids); i++ {
			e, err := p.graph.AddEdge(ids[i-1], ids[i])
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
			}
			attrs.Each(func(k, val string) bool {
				e.Attrs.Set(k, val)
				return true
			})
		}
	}
	return p.optionalSemi()
}

// vertex resolves a name to an ID, creating the vertex on first
// mention and joining it to the enclosing cluster.
func (p *parser) vertex(name string, cluster *Subgraph) VertexID {
	id, ok := p.names[name]
	if !ok {
		id = p.graph.AddVertex("")
		p.names[name] = id
	}
	if cluster != nil {
		_ = p.graph.AddToSubgraph(cluster, id)
	}
	return id
}

func (p *parser) attrList(dst *Attrs) error {
	if err := p.expectSym("["); err != nil {
		return err
	}
	for {
		if p.tok.kind == tokSym && p.tok.text == "]" {
			return p.advance()
		}
		if p.tok.kind != tokID {
			return fmt.Errorf("%w: line %d: expected attribute key", ErrParse, p.tok.line)
		}
		key := p.tok.text
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expectSym("="); err != nil {
			return err
		}
		if p.tok.kind != tokID {
			return fmt.Errorf("%w: line %d: expected attribute value", ErrParse, p.tok.line)
		}
		dst.Set(key, p.tok.text)
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind == tokSym && (p.tok.text == "," || p.tok.text == ";") {
			if err := p.advance(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) optionalSemi() error {
	if p.tok.kind == tokSym && p.tok.text == ";" {
		return p.advance()
	}
	return nil
}
