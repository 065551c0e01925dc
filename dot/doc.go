// Package dot builds attributed graphs, writes and reads Graphviz DOT,
// and renders layered layouts onto an atelier canvas.
//
// A Graph holds vertices, edges, and cluster subgraphs, each carrying
// an insertion-ordered attribute table. WriteDOT output is
// deterministic, Parse reads the subset WriteDOT emits, and
// Layout/Render produce a ranked drawing in the Graphviz style.
package dot
