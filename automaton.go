package blazetopic

import (
	"maps"
	"slices"
	"strings"
)

type node struct {
	edgeStart, edgeEnd   int32 // literal edges, sorted by label
	single, multi        int32
	valueStart, valueEnd int32
}

type edge struct {
	label string
	child int32
}

// Automaton is the compiled, read-only form of a Store. Nodes, literal edges
// and values each live in one contiguous slice and refer to each other by
// index.
//
// An Automaton is immutable and safe for concurrent use. Searching needs a
// Query, which is not: give every goroutine its own Query.
type Automaton[V any] struct {
	nodes  []node
	edges  []edge
	values []V
}

// Compile consumes the store and returns its Automaton. The nodes are laid out
// breadth first with the root at index 0. After Compile the store rejects Add
// and a second Compile returns ErrStoreCompiled.
func (s *Store[V]) Compile() (*Automaton[V], error) {
	if s.compiled {
		return nil, ErrStoreCompiled
	}

	a := &Automaton[V]{
		nodes:  make([]node, 0, len(s.nodes)),
		edges:  make([]edge, 0, max(len(s.nodes)-1, 0)),
		values: make([]V, 0, s.size),
	}

	order := make([]int32, 1, len(s.nodes))

	enqueue := func(old int32) int32 {
		order = append(order, old)

		return int32(len(order) - 1)
	}

	for head := 0; head < len(order); head++ {
		old := &s.nodes[order[head]]

		compiled := node{edgeStart: int32(len(a.edges))}

		for _, label := range slices.Sorted(maps.Keys(old.children)) {
			a.edges = append(a.edges, edge{label: label, child: enqueue(old.children[label])})
		}

		compiled.edgeEnd = int32(len(a.edges))

		if old.single != noEdge {
			compiled.single = enqueue(old.single)
		}

		if old.multi != noEdge {
			compiled.multi = enqueue(old.multi)
		}

		compiled.valueStart = int32(len(a.values))
		a.values = append(a.values, old.values...)
		compiled.valueEnd = int32(len(a.values))

		a.nodes = append(a.nodes, compiled)
	}

	s.nodes = nil
	s.size = 0
	s.compiled = true

	return a, nil
}

// literal follows the literal edge labelled level out of n.
func (a *Automaton[V]) literal(n int32, level string) (int32, bool) {
	edges := a.edges[a.nodes[n].edgeStart:a.nodes[n].edgeEnd]

	idx, found := slices.BinarySearchFunc(edges, level, func(e edge, target string) int {
		return strings.Compare(e.label, target)
	})
	if !found {
		return noEdge, false
	}

	return edges[idx].child, true
}

// NewQuery returns a Query bound to a. Queries are cheap; create one per
// goroutine.
func (a *Automaton[V]) NewQuery() *Query[V] {
	return newQuery(a, DefaultQueueCapacity, DefaultResultCapacity)
}

// Len returns the number of values held by the automaton.
func (a *Automaton[V]) Len() int {
	return len(a.values)
}

// NodeCount returns the number of nodes, root included.
func (a *Automaton[V]) NodeCount() int {
	return len(a.nodes)
}

// Walk calls fn for every bound value together with the filter it was added
// under. Values of one filter are visited in insertion order. Walk stops when
// fn returns false.
func (a *Automaton[V]) Walk(fn func(filter string, value *V) bool) {
	a.walk(0, nil, fn)
}

func (a *Automaton[V]) walk(n int32, path []string, fn func(string, *V) bool) bool {
	current := a.nodes[n]

	if current.valueEnd > current.valueStart {
		filter := strings.Join(path, separator)

		for i := current.valueStart; i < current.valueEnd; i++ {
			if !fn(filter, &a.values[i]) {
				return false
			}
		}
	}

	for _, e := range a.edges[current.edgeStart:current.edgeEnd] {
		if !a.walk(e.child, append(path, e.label), fn) {
			return false
		}
	}

	if current.single != noEdge && !a.walk(current.single, append(path, SingleLevelWildcard), fn) {
		return false
	}

	if current.multi != noEdge && !a.walk(current.multi, append(path, MultiLevelWildcard), fn) {
		return false
	}

	return true
}
