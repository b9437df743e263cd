package blazetopic

// noEdge marks an absent wildcard edge. The root sits at index 0 and is never
// anyone's child, so 0 is free to mean "none".
const noEdge int32 = 0

// trieNode is a build-time node. Children are referenced by index into the
// owning Store's arena.
type trieNode[V any] struct {
	children map[string]int32 // literal edges
	single   int32            // "+" edge
	multi    int32            // "#" edge
	values   []V
}

// Store is the mutable build phase of the matching trie. Filters are added one
// at a time and the finished store is compiled exactly once into an
// Automaton.
//
// A Store is not safe for concurrent use; concurrent Add calls must be
// serialized by the caller.
type Store[V any] struct {
	nodes    []trieNode[V]
	size     int
	compiled bool
}

// NewStore creates an empty Store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{
		nodes: make([]trieNode[V], 1, 16),
	}
}

// Add binds value to filter. The same filter added twice keeps both values in
// insertion order; nothing is deduplicated.
//
// Add does not validate filter. Callers must check it with Validate(filter,
// Filter) beforehand: a '#' that is not the last level produces a branch the
// search never reaches. Add only fails with ErrStoreCompiled once the store
// has been compiled.
func (s *Store[V]) Add(filter string, value V) error {
	if s.compiled {
		return ErrStoreCompiled
	}

	current := int32(0)

	for {
		level, rest, more := nextLevel(filter)
		current = s.child(current, level)

		if !more {
			break
		}

		filter = rest
	}

	s.nodes[current].values = append(s.nodes[current].values, value)
	s.size++

	return nil
}

// child returns the node reached from parent through level, creating it when
// the edge does not exist yet.
func (s *Store[V]) child(parent int32, level string) int32 {
	switch level {
	case SingleLevelWildcard:
		if s.nodes[parent].single == noEdge {
			s.nodes[parent].single = s.newNode()
		}

		return s.nodes[parent].single
	case MultiLevelWildcard:
		if s.nodes[parent].multi == noEdge {
			s.nodes[parent].multi = s.newNode()
		}

		return s.nodes[parent].multi
	}

	if idx, exists := s.nodes[parent].children[level]; exists {
		return idx
	}

	idx := s.newNode()
	if s.nodes[parent].children == nil {
		s.nodes[parent].children = make(map[string]int32)
	}

	s.nodes[parent].children[level] = idx

	return idx
}

func (s *Store[V]) newNode() int32 {
	s.nodes = append(s.nodes, trieNode[V]{})

	return int32(len(s.nodes) - 1)
}

// Len returns the number of values bound so far.
func (s *Store[V]) Len() int {
	return s.size
}

// NodeCount returns the number of trie nodes, root included.
func (s *Store[V]) NodeCount() int {
	return len(s.nodes)
}

// Compiled reports whether Compile has consumed the store.
func (s *Store[V]) Compiled() bool {
	return s.compiled
}
