package shuttle

import (
	"fmt"
	"io"
	"strings"
)

// ErrNilWriter indicates that a nil writer was provided to an exporter.
var ErrNilWriter = fmt.Errorf("shuttle: nil writer")

// Graphviz renders the whole graph as Graphviz DOT text.
func (g *Graph) Graphviz() string {
	var b strings.Builder
	_ = g.WriteGraphviz(&b)
	return b.String()
}

// WriteGraphviz renders the whole graph as Graphviz DOT text to w.
func (g *Graph) WriteGraphviz(w io.Writer) error {
	if w == nil {
		return ErrNilWriter
	}
	p := &dotPrinter{w: w}
	p.writeHeader()
	p.writeClustersAndNodes(g, nil)
	p.writeEdges(g, nil)
	p.writeFooter()
	return p.err
}

// FullGraphviz renders the whole graph with the rejected edge overlaid as
// a dashed red constraint-free edge, per the dependency-cycle rendering
// contract.
func (e *DependencyCycle) FullGraphviz() string {
	var b strings.Builder
	p := &dotPrinter{w: &b}
	p.writeHeader()
	p.writeClustersAndNodes(e.Graph, nil)
	p.writeEdges(e.Graph, nil)
	p.writeCycleOverlay(e)
	p.writeFooter()
	return b.String()
}

// SubgraphGraphviz renders only the nodes on some path between the
// cycle's endpoints (computed as if the rejected edge had been admitted),
// with the rejected edge overlaid the same way as FullGraphviz.
func (e *DependencyCycle) SubgraphGraphviz() string {
	extra := &hypotheticalEdge{from: e.From, to: e.To}
	keep := e.Graph.filterBetween(e.To, e.From, extra)
	var b strings.Builder
	p := &dotPrinter{w: &b}
	p.writeHeader()
	p.writeClustersAndNodes(e.Graph, keep)
	p.writeEdges(e.Graph, keep)
	p.writeCycleOverlay(e)
	p.writeFooter()
	return b.String()
}

type dotPrinter struct {
	w   io.Writer
	err error
}

func (p *dotPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *dotPrinter) writeHeader() {
	p.printf("digraph {\n")
	p.printf("    rankdir=\"TB\";\n")
	p.printf("    newrank=\"true\";\n")
}

func (p *dotPrinter) writeFooter() {
	p.printf("}\n")
}

// writeClustersAndNodes walks the cluster forest depth-first, emitting a
// nested subgraph per cluster and a node declaration for every node,
// clustered or not. If keep is non-nil, only nodes named in it are
// emitted; clusters are still emitted (possibly empty) to preserve the
// nesting structure.
func (p *dotPrinter) writeClustersAndNodes(g *Graph, keep map[NodeID]bool) {
	inCluster := make(map[NodeID]bool)
	var walk func(id ClusterID)
	walk = func(id ClusterID) {
		c := g.clusters[id]
		p.printf("    subgraph cluster_%d {\n", id)
		p.printf("        label = \"%s\";\n", clusterLabel(c))
		for _, child := range c.Children {
			walk(child)
		}
		for _, n := range c.Nodes {
			inCluster[n] = true
			if keep == nil || keep[n] {
				p.writeNode(g, n)
			}
		}
		p.printf("    }\n")
	}
	for i, c := range g.clusters {
		if c.Parent == nil {
			walk(ClusterID(i))
		}
	}
	for i := range g.nodes {
		id := NodeID(i)
		if !inCluster[id] && (keep == nil || keep[id]) {
			p.writeNode(g, id)
		}
	}
}

func (p *dotPrinter) writeNode(g *Graph, id NodeID) {
	n := g.nodes[id]
	p.printf("    node_%d [ label = %q ];\n", id, nodeLabel(n))
}

func nodeLabel(n Node) string {
	return fmt.Sprintf("%s (#%d)\n%s", n.Name, n.ID, n.Description)
}

// clusterLabel uses a literal two-character "\n" escape, per the contract,
// rather than an actual newline byte as nodeLabel does.
func clusterLabel(c Cluster) string {
	return fmt.Sprintf("%s (#%d)\\n%s", c.Name, c.ID, c.Description)
}

func edgeStyle(k EdgeKind) string {
	switch k {
	case Depend:
		return `dir = "back"`
	case Flow:
		return `style = "dashed" arrowhead = "dot"`
	case Fulfill:
		return `arrowhead = "vee"`
	default:
		return ""
	}
}

// writeEdges emits every edge in g, in insertion order. If keep is
// non-nil, an edge is skipped unless both endpoints are in keep.
func (p *dotPrinter) writeEdges(g *Graph, keep map[NodeID]bool) {
	for _, e := range g.edges {
		if keep != nil && (!keep[e.From] || !keep[e.To]) {
			continue
		}
		p.printf("    node_%d -> node_%d [ %s label = %q ];\n", e.From, e.To, edgeStyle(e.Kind), e.Label)
	}
}

// writeCycleOverlay emits the rejected edge reversed, dashed, and red, with
// constraint="false" so Graphviz's ranking ignores it.
func (p *dotPrinter) writeCycleOverlay(e *DependencyCycle) {
	p.printf("    node_%d -> node_%d [ style = \"dashed\" color = \"red\" constraint = \"false\" label = %q ];\n",
		e.To, e.From, e.Label)
}
