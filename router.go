package blazetopic

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/panjf2000/ants/v2"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/atomic"
)

// snapshot pairs a compiled Automaton with the Queries bound to it and the
// subscription generation it was built from.
type snapshot[V any] struct {
	automaton  *Automaton[V]
	generation uint64
	queries    sync.Pool
}

func newSnapshot[V any](a *Automaton[V], generation uint64, config Config) *snapshot[V] {
	snap := &snapshot[V]{automaton: a, generation: generation}
	snap.queries.New = func() any {
		return newQuery(a, config.QueueCapacity, config.ResultCapacity)
	}

	return snap
}

// Router keeps a mutable set of subscriptions and answers matches against a
// compiled snapshot of them.
//
// Subscribe and Unsubscribe only bump a generation counter. A Match that finds
// the current snapshot older than the generation it observed rebuilds a fresh
// Store, compiles it and swaps it in atomically; matches already running keep
// using the snapshot they started with. Router is safe for concurrent use.
type Router[V any] struct {
	config      Config
	logger      logr.Logger
	topicFilter TopicFilter

	subID         *atomic.Uint64
	subscriptions *xsync.Map[uint64, *Subscription[V]]
	wildcardCount *atomic.Int64

	generation *atomic.Uint64
	rebuildMu  sync.Mutex
	current   atomic.Pointer[snapshot[V]]
	rebuilds  *atomic.Uint64

	pool *ants.Pool
}

// NewRouter creates an empty Router.
func NewRouter[V any](config Config) (*Router[V], error) {
	config = config.withDefaults()

	pool, err := newPool(config, "router")
	if err != nil {
		return nil, fmt.Errorf("creating match pool: %w", err)
	}

	empty, err := NewStore[V]().Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling empty store: %w", err)
	}

	r := &Router[V]{
		config:        config,
		logger:        config.Logger.WithName("router"),
		topicFilter:   NewTopicFilter(),
		subID:         atomic.NewUint64(0),
		subscriptions: xsync.NewMap[uint64, *Subscription[V]](),
		wildcardCount: atomic.NewInt64(0),
		generation:    atomic.NewUint64(0),
		rebuilds:      atomic.NewUint64(0),
		pool:          pool,
	}

	r.current.Store(newSnapshot(empty, 0, config))

	return r, nil
}

func NewRouterWithDefaults[V any]() (*Router[V], error) {
	return NewRouter[V](NewConfig())
}

// newPool builds the ants pool shared by Router and Dispatcher.
func newPool(config Config, name string) (*ants.Pool, error) {
	logger := config.Logger.WithName(name)

	options := []ants.Option{
		ants.WithPanicHandler(func(p any) {
			logger.Error(fmt.Errorf("%v", p), "panic in worker pool")
		}),
		ants.WithPreAlloc(config.PreAlloc),
		ants.WithMaxBlockingTasks(config.MaxBlockingTasks),
	}

	if config.ExpiryDuration > 0 {
		options = append(options, ants.WithExpiryDuration(config.ExpiryDuration))
	}

	return ants.NewPool(config.WorkerCount, options...)
}

// Close releases the worker pool. Match keeps working, MatchBatch does not.
func (r *Router[V]) Close() error {
	r.pool.Release()

	return nil
}

// Subscribe binds value to filter. The filter must be a valid, non-empty
// topic filter; otherwise the error wraps ErrInvalidFilter.
func (r *Router[V]) Subscribe(filter string, value V) (*Subscription[V], error) {
	if err := r.topicFilter.Validate(filter); err != nil {
		r.logger.V(1).Info("rejected filter", "filter", filter)

		return nil, fmt.Errorf("subscribing to %q: %w", filter, err)
	}

	subscription := newSubscription(r.subID.Inc(), filter, value)
	subscription.unsubscribeFn = r.remove

	r.subscriptions.Store(subscription.id, subscription)

	if hasWildcard(filter) {
		r.wildcardCount.Inc()
	}

	r.generation.Inc()

	return subscription, nil
}

// Unsubscribe removes the subscription with the given ID. It reports whether
// a subscription was removed.
func (r *Router[V]) Unsubscribe(subID uint64) bool {
	subscription, found := r.subscriptions.Load(subID)
	if !found || !subscription.status.CompareAndSwap(0, 1) {
		return false
	}

	return r.remove(subID)
}

func (r *Router[V]) remove(subID uint64) bool {
	subscription, found := r.subscriptions.LoadAndDelete(subID)
	if !found {
		return false
	}

	if hasWildcard(subscription.filter) {
		r.wildcardCount.Dec()
	}

	r.generation.Inc()

	return true
}

// Match returns the values of every subscription whose filter matches topic.
// Values of subscriptions sharing a filter come back in subscription order.
// Topics that are not valid topic names match nothing.
func (r *Router[V]) Match(topic string) []V {
	if err := r.topicFilter.ValidateTopic(topic); err != nil {
		return nil
	}

	snap := r.snapshot()

	query, _ := snap.queries.Get().(*Query[V])
	defer snap.queries.Put(query)

	found := query.Find(topic)
	if len(found) == 0 {
		return nil
	}

	values := make([]V, len(found))
	for i, value := range found {
		values[i] = *value
	}

	return values
}

// MatchBatch matches every topic on the worker pool. The result at index i
// belongs to topics[i].
func (r *Router[V]) MatchBatch(topics []string) ([][]V, error) {
	results := make([][]V, len(topics))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i, topic := range topics {
		wg.Add(1)

		err := r.pool.Submit(func() {
			defer wg.Done()

			results[i] = r.Match(topic)
		})
		if err != nil {
			wg.Done()
			errOnce.Do(func() {
				firstErr = fmt.Errorf("submitting match for %q: %w", topic, err)
			})
		}
	}

	wg.Wait()

	return results, firstErr
}

// Snapshot returns the Automaton reflecting all subscriptions made so far.
// Callers running many searches can keep their own Query against it.
func (r *Router[V]) Snapshot() *Automaton[V] {
	return r.snapshot().automaton
}

// snapshot returns a snapshot built from at least the generation current at
// the time of the call, rebuilding when the stored one is older.
func (r *Router[V]) snapshot() *snapshot[V] {
	want := r.generation.Load()

	if snap := r.current.Load(); snap.generation >= want {
		return snap
	}

	r.rebuildMu.Lock()
	defer r.rebuildMu.Unlock()

	if snap := r.current.Load(); snap.generation >= want {
		return snap
	}

	r.rebuild()

	return r.current.Load()
}

// rebuild must be called with rebuildMu held.
func (r *Router[V]) rebuild() {
	start := time.Now()

	// Read before ranging: every change counted in generation is already in
	// the map, later ones bump it again.
	generation := r.generation.Load()

	subscriptions := make([]*Subscription[V], 0, r.subscriptions.Size())
	r.subscriptions.Range(func(_ uint64, subscription *Subscription[V]) bool {
		subscriptions = append(subscriptions, subscription)

		return true
	})

	slices.SortFunc(subscriptions, func(a, b *Subscription[V]) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		default:
			return 0
		}
	})

	store := NewStore[V]()
	for _, subscription := range subscriptions {
		if err := store.Add(subscription.filter, subscription.value); err != nil {
			// Only a compiled store rejects Add and this one is fresh.
			r.logger.Error(err, "adding filter", "filter", subscription.filter)
		}
	}

	automaton, err := store.Compile()
	if err != nil {
		r.logger.Error(err, "compiling store")

		return
	}

	r.current.Store(newSnapshot(automaton, generation, r.config))
	r.rebuilds.Inc()

	r.logger.V(1).Info("rebuilt automaton",
		"subscriptions", len(subscriptions),
		"generation", generation,
		"nodes", automaton.NodeCount(),
		"took", time.Since(start),
	)
}

// SubscriptionCount returns the number of live subscriptions.
func (r *Router[V]) SubscriptionCount() int {
	return r.subscriptions.Size()
}

// WildcardCount returns the number of live subscriptions using '+' or '#'.
func (r *Router[V]) WildcardCount() int {
	return int(r.wildcardCount.Load())
}

// ExactCount returns the number of live subscriptions without wildcards.
func (r *Router[V]) ExactCount() int {
	return r.SubscriptionCount() - r.WildcardCount()
}

// Rebuilds returns how many times the automaton has been rebuilt.
func (r *Router[V]) Rebuilds() uint64 {
	return r.rebuilds.Load()
}
