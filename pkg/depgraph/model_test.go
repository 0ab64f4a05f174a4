package depgraph

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDependenciesOf(t *testing.T) {
	m := New()
	m.Declare("A", "B", "C", "B")

	t.Run("declared target", func(t *testing.T) {
		qt.Assert(t, m.DependenciesOf("A").Sorted(), qt.DeepEquals, []Name{"B", "C"})
	})
	t.Run("implicit leaf", func(t *testing.T) {
		deps := m.DependenciesOf("B")
		qt.Assert(t, deps, qt.IsNotNil)
		qt.Assert(t, deps.Len(), qt.Equals, 0)
	})
	t.Run("unknown name", func(t *testing.T) {
		qt.Assert(t, m.DependenciesOf("nope").Len(), qt.Equals, 0)
	})
	t.Run("returns a copy", func(t *testing.T) {
		m.DependenciesOf("A").Add("Z")
		qt.Assert(t, m.DependenciesOf("A").Has("Z"), qt.Equals, false)
	})
}

func TestAllNodes(t *testing.T) {
	m := New()
	m.Declare("A", "B")
	m.Declare("C")
	m.Declare("D", "B", "E")
	qt.Assert(t, m.AllNodes().Sorted(), qt.DeepEquals, []Name{"A", "B", "C", "D", "E"})

	// Recomputed, not cached.
	m.Declare("E", "F")
	qt.Assert(t, m.AllNodes().Sorted(), qt.DeepEquals, []Name{"A", "B", "C", "D", "E", "F"})
}

func TestDeclareReplaces(t *testing.T) {
	m := New()
	m.Declare("A", "B")
	m.Declare("A", "C")
	qt.Assert(t, m.DependenciesOf("A").Sorted(), qt.DeepEquals, []Name{"C"})
	qt.Assert(t, m.AllNodes().Has("B"), qt.Equals, false)
}

func TestTargets(t *testing.T) {
	m := New()
	m.Declare("b", "x")
	m.Declare("a")
	m.Declare("B")
	qt.Assert(t, m.Targets(), qt.DeepEquals, []Name{"B", "a", "b"})
	qt.Assert(t, m.IsDeclared("a"), qt.Equals, true)
	qt.Assert(t, m.IsDeclared("x"), qt.Equals, false)
}

func TestEqual(t *testing.T) {
	a := New()
	a.Declare("A", "B", "C")
	a.Declare("B", "C")

	b := New()
	b.Declare("B", "C")
	b.Declare("A", "C", "B")
	qt.Assert(t, a.Equal(b), qt.Equals, true)
	qt.Assert(t, b.Equal(a), qt.Equals, true)

	b.Declare("C")
	qt.Assert(t, a.Equal(b), qt.Equals, false)

	c := New()
	c.Declare("A", "B")
	c.Declare("B", "C")
	qt.Assert(t, a.Equal(c), qt.Equals, false)
}

func TestSetSorted(t *testing.T) {
	s := NewSet("b", "a", "c", "a")
	qt.Assert(t, s.Len(), qt.Equals, 3)
	qt.Assert(t, s.Sorted(), qt.DeepEquals, []Name{"a", "b", "c"})
	qt.Assert(t, NewSet().Sorted(), qt.DeepEquals, []Name{})
}
