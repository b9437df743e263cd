package blazetopic_test

import (
	"testing"

	"github.com/NSXBet/blazetopic"
	"github.com/stretchr/testify/require"
)

type binding struct {
	filter string
	value  int
}

func bind(filter string, value int) binding {
	return binding{filter: filter, value: value}
}

// compile builds an automaton from bindings, added in order.
func compile(tb testing.TB, bindings ...binding) *blazetopic.Automaton[int] {
	tb.Helper()

	store := blazetopic.NewStore[int]()

	for _, b := range bindings {
		require.Equal(tb, blazetopic.Valid, blazetopic.Validate(b.filter, blazetopic.Filter), "filter %q", b.filter)
		require.NoError(tb, store.Add(b.filter, b.value))
	}

	automaton, err := store.Compile()
	require.NoError(tb, err)

	return automaton
}

// values dereferences the result of a Find call.
func values(found []*int) []int {
	out := make([]int, 0, len(found))
	for _, v := range found {
		out = append(out, *v)
	}

	return out
}

// findAll runs a fresh query and returns plain values.
func findAll(tb testing.TB, topic string, bindings ...binding) []int {
	tb.Helper()

	return values(compile(tb, bindings...).NewQuery().Find(topic))
}

func newRouter[V any](tb testing.TB) *blazetopic.Router[V] {
	tb.Helper()

	config := blazetopic.NewConfig()
	config.WorkerCount = 16

	router, err := blazetopic.NewRouter[V](config)
	require.NoError(tb, err)

	tb.Cleanup(func() {
		require.NoError(tb, router.Close())
	})

	return router
}
