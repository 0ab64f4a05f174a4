package depgraph

import (
	"sort"
)

// Name identifies a unit in a dependency graph.
// It's opaque: identity and lexical order are all that matter about it.
type Name string

// Set is an unordered collection of unit names.
type Set map[Name]struct{}

func NewSet(names ...Name) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Add(n Name) { s[n] = struct{}{} }
func (s Set) Len() int   { return len(s) }

func (s Set) Has(n Name) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the members in ascending lexical order.
// Anything that iterates a Set and cares about output order should go through here.
func (s Set) Sorted() []Name {
	res := make([]Name, 0, len(s))
	for n := range s {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Graph is the read-only view of declared dependencies that resolution works from.
type Graph interface {
	// DependenciesOf returns what name depends on.
	// Names that were never declared as targets are implicit leaves and get an empty set.
	DependenciesOf(name Name) Set

	// AllNodes returns every declared target plus every name mentioned as a dependency.
	AllNodes() Set
}

var _ Graph = (*Model)(nil)

// Model is the in-memory dependency graph: target name to the set of names it depends on.
//
// Build it with Declare, then hand it off; nothing downstream mutates it.
type Model struct {
	deps map[Name]Set
}

func New() *Model {
	return &Model{deps: make(map[Name]Set)}
}

// Declare records target as depending on deps.
// Declaring the same target again replaces the earlier declaration rather than merging with it.
// Repeated names in deps collapse.
func (m *Model) Declare(target Name, deps ...Name) {
	m.deps[target] = NewSet(deps...)
}

// DependenciesOf returns a copy of the declared dependency set of name,
// or an empty set if name is an implicit leaf.
func (m *Model) DependenciesOf(name Name) Set {
	declared := m.deps[name]
	res := make(Set, len(declared))
	for n := range declared {
		res[n] = struct{}{}
	}
	return res
}

// AllNodes computes the full node universe fresh on every call.
func (m *Model) AllNodes() Set {
	res := make(Set, len(m.deps))
	for target, deps := range m.deps {
		res[target] = struct{}{}
		for n := range deps {
			res[n] = struct{}{}
		}
	}
	return res
}

func (m *Model) IsDeclared(name Name) bool {
	_, ok := m.deps[name]
	return ok
}

// Targets lists declared targets in lexical order.  Implicit leaves are not included.
func (m *Model) Targets() []Name {
	res := make([]Name, 0, len(m.deps))
	for t := range m.deps {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Equal reports whether both models declare the same targets with the same dependency sets.
// Declaration order plays no part.
func (m *Model) Equal(other *Model) bool {
	if len(m.deps) != len(other.deps) {
		return false
	}
	for target, deps := range m.deps {
		otherDeps, ok := other.deps[target]
		if !ok || len(otherDeps) != len(deps) {
			return false
		}
		for n := range deps {
			if !otherDeps.Has(n) {
				return false
			}
		}
	}
	return true
}
