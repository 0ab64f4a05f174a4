package depgraph

import (
	"bytes"
	"testing"

	"github.com/dominikbraun/graph"
	qt "github.com/frankban/quicktest"
)

func TestWriteDOT(t *testing.T) {
	m := New()
	m.Declare("app", "lib", "util")
	m.Declare("lib", "util")

	var buf bytes.Buffer
	qt.Assert(t, m.WriteDOT(&buf), qt.IsNil)
	out := buf.String()
	qt.Assert(t, out, qt.Contains, "digraph")
	qt.Assert(t, out, qt.Contains, `"app" -> "lib"`)
	qt.Assert(t, out, qt.Contains, `"app" -> "util"`)
	qt.Assert(t, out, qt.Contains, `"lib" -> "util"`)
}

func TestToGraphIncludesImplicitLeaves(t *testing.T) {
	m := New()
	m.Declare("A", "B")

	g, err := m.ToGraph()
	qt.Assert(t, err, qt.IsNil)
	order, err := graph.TopologicalSort(g)
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, order, qt.DeepEquals, []string{"A", "B"})
}

func TestToGraphKeepsCycles(t *testing.T) {
	m := New()
	m.Declare("A", "A", "B")
	m.Declare("B", "A")

	g, err := m.ToGraph()
	qt.Assert(t, err, qt.IsNil)
	size, err := g.Size()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, size, qt.Equals, 3)

	var buf bytes.Buffer
	qt.Assert(t, m.WriteDOT(&buf), qt.IsNil)
	qt.Assert(t, buf.String(), qt.Contains, `"A" -> "A"`)
	qt.Assert(t, buf.String(), qt.Contains, `"B" -> "A"`)
}
