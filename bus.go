package blazetopic

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
)

// Dispatcher fans a published topic out to the values it matches in a
// Router, running the handler for every value on a worker pool.
type Dispatcher[V any] struct {
	router   *Router[V]
	pool     *ants.Pool
	logger   logr.Logger
	// mu orders Dispatch against Close so no delivery is added once Close
	// starts waiting.
	mu       sync.RWMutex
	closed   *atomic.Bool
	inflight sync.WaitGroup
}

func NewDispatcher[V any](router *Router[V], config Config) (*Dispatcher[V], error) {
	config = config.withDefaults()

	pool, err := newPool(config, "dispatcher")
	if err != nil {
		return nil, fmt.Errorf("creating dispatch pool: %w", err)
	}

	return &Dispatcher[V]{
		router: router,
		pool:   pool,
		logger: config.Logger.WithName("dispatcher"),
		closed: atomic.NewBool(false),
	}, nil
}

// Dispatch submits one delivery per value matching topic and returns how many
// were submitted. Handler errors are logged, not returned.
func (d *Dispatcher[V]) Dispatch(topic string, handler Handler[V]) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed.Load() {
		return 0, ErrDispatcherClosed
	}

	values := d.router.Match(topic)

	for i, value := range values {
		delivery := newDelivery(topic, value)

		d.inflight.Add(1)

		err := d.pool.Submit(func() {
			defer d.inflight.Done()

			if err := handler.OnMatch(delivery); err != nil {
				d.logger.Error(err, "handling delivery", "topic", topic)
			}
		})
		if err != nil {
			d.inflight.Done()

			return i, fmt.Errorf("submitting delivery for %q: %w", topic, err)
		}
	}

	return len(values), nil
}

// Wait blocks until every submitted delivery has been handled.
func (d *Dispatcher[V]) Wait() {
	d.inflight.Wait()
}

// Close stops accepting dispatches, waits for in-flight deliveries and
// releases the pool.
func (d *Dispatcher[V]) Close() error {
	d.mu.Lock()
	swapped := d.closed.CompareAndSwap(false, true)
	d.mu.Unlock()

	if !swapped {
		return nil
	}

	d.inflight.Wait()
	d.pool.Release()

	return nil
}
