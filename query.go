package blazetopic

type stateKind uint8

const (
	literalState stateKind = iota
	singleLevelState
	multiLevelState
)

// searchState is one pending branch of a search: the part of the topic still
// to consume and the node reached so far. Which edge slot produced the node
// decides the kind, the topic text never does.
type searchState struct {
	topic string
	node  int32
	kind  stateKind
}

// Query runs searches against one Automaton and owns the scratch buffers they
// need. A Query must not be used by two goroutines at once; the Automaton
// behind it can be shared freely.
type Query[V any] struct {
	automaton *Automaton[V]
	states    fifo[searchState]
	results   []*V
}

func newQuery[V any](a *Automaton[V], queueCapacity, resultCapacity int) *Query[V] {
	return &Query[V]{
		automaton: a,
		states:    newFIFO[searchState](queueCapacity),
		results:   make([]*V, 0, max(resultCapacity, 0)),
	}
}

// Automaton returns the automaton q is bound to.
func (q *Query[V]) Automaton() *Automaton[V] {
	return q.automaton
}

// Find returns every value whose filter matches topic.
//
// Values bound to one filter come back in insertion order. Across different
// filters the order follows the breadth-first search and carries no further
// guarantee. The returned slice is reused by the next call on q; the values it
// points to belong to the Automaton.
//
// topic is expected to be a valid topic name. Anything else is searched
// without failing but the result is not meaningful.
func (q *Query[V]) Find(topic string) []*V {
	q.states.reset()
	clear(q.results)
	q.results = q.results[:0]

	q.states.push(searchState{topic: topic, node: 0, kind: literalState})

	// [MQTT-4.7.2-1] wildcards at the first level never match a '$' topic.
	if !IsSystemTopic(topic) {
		q.pushWildcards(topic, 0)
	}

	for {
		state, ok := q.states.pop()
		if !ok {
			break
		}

		switch state.kind {
		case literalState:
			q.literal(state)
		case singleLevelState:
			q.singleLevel(state)
		case multiLevelState:
			q.collect(state.node)
		}
	}

	return q.results
}

// FindFunc calls fn for every value matching topic, in Find order.
func (q *Query[V]) FindFunc(topic string, fn func(value *V)) {
	for _, value := range q.Find(topic) {
		fn(value)
	}
}

// literal consumes levels through literal edges for as long as they exist,
// offering the wildcard edges of every node on the way as alternatives.
func (q *Query[V]) literal(state searchState) {
	current, topic := state.node, state.topic

	for {
		level, rest, more := nextLevel(topic)

		child, found := q.automaton.literal(current, level)
		if !found {
			return
		}

		current = child

		if !more {
			q.collect(current)
			// "sport/#" also matches "sport".
			q.pushMulti(current)

			return
		}

		q.pushWildcards(rest, current)
		topic = rest
	}
}

// singleLevel consumes exactly one level, whatever its content.
func (q *Query[V]) singleLevel(state searchState) {
	_, rest, more := nextLevel(state.topic)
	if !more {
		q.collect(state.node)
		q.pushMulti(state.node)

		return
	}

	// "/+" also matches "/finance/".
	if rest == "" {
		q.collect(state.node)
	}

	q.states.push(searchState{topic: rest, node: state.node, kind: literalState})
	q.pushWildcards(rest, state.node)
}

func (q *Query[V]) pushWildcards(topic string, n int32) {
	if single := q.automaton.nodes[n].single; single != noEdge {
		q.states.push(searchState{topic: topic, node: single, kind: singleLevelState})
	}

	q.pushMulti(n)
}

func (q *Query[V]) pushMulti(n int32) {
	if multi := q.automaton.nodes[n].multi; multi != noEdge {
		q.states.push(searchState{node: multi, kind: multiLevelState})
	}
}

func (q *Query[V]) collect(n int32) {
	current := q.automaton.nodes[n]

	for i := current.valueStart; i < current.valueEnd; i++ {
		q.results = append(q.results, &q.automaton.values[i])
	}
}
