package depgraph

import (
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/serum-errors/go-serum"

	"github.com/warptools/buildorder/pkg/buildorderapi"
)

// ToGraph copies the model into a dominikbraun/graph directed graph.
// Edges run from a target to each of its dependencies.
// Implicit leaves become vertices too, so the vertex set matches AllNodes.
//
// Errors:
//
//   - buildorder-error-graph-export -- if the graph library refuses a vertex or edge.
func (m *Model) ToGraph() (graph.Graph[string, string], error) {
	// Directed graphs accept cycles unless PreventCycles is given.
	// Cycles are the resolver's business to report, not ours.
	g := graph.New(
		func(n string) string { return n },
		graph.Directed(),
	)
	for _, n := range m.AllNodes().Sorted() {
		if err := g.AddVertex(string(n)); err != nil {
			return nil, errGraphExport(err, string(n))
		}
	}
	for _, t := range m.Targets() {
		for _, dep := range m.deps[t].Sorted() {
			if err := g.AddEdge(string(t), string(dep)); err != nil {
				return nil, errGraphExport(err, string(t))
			}
		}
	}
	return g, nil
}

// WriteDOT renders the model in graphviz DOT format.
// Statement order within the output follows the graph library's map iteration and is not stable.
//
// Errors:
//
//   - buildorder-error-graph-export -- if conversion or rendering fails.
func (m *Model) WriteDOT(w io.Writer) error {
	g, err := m.ToGraph()
	if err != nil {
		return err
	}
	if err := draw.DOT(g, w); err != nil {
		return errGraphExport(err, "")
	}
	return nil
}

func errGraphExport(cause error, node string) error {
	return serum.Error(buildorderapi.EcodeGraphExport,
		serum.WithMessageTemplate("could not export dependency graph at {{node|q}}"),
		serum.WithCause(cause),
		serum.WithDetail("node", node),
	)
}
