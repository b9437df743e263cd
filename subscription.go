package blazetopic

import "go.uber.org/atomic"

// Subscription binds a value to a topic filter inside a Router.
type Subscription[V any] struct {
	id            uint64
	filter        string
	value         V
	unsubscribeFn func(subID uint64) bool
	status        *atomic.Uint32
}

func newSubscription[V any](id uint64, filter string, value V) *Subscription[V] {
	return &Subscription[V]{
		id:     id,
		filter: filter,
		value:  value,
		status: atomic.NewUint32(0),
	}
}

// ID returns the subscription ID. IDs grow with every Subscribe call.
func (s *Subscription[V]) ID() uint64 {
	return s.id
}

// Filter returns the subscription topic filter.
func (s *Subscription[V]) Filter() string {
	return s.filter
}

// Value returns the value bound to the filter.
func (s *Subscription[V]) Value() V {
	return s.value
}

// Unsubscribe removes the subscription from its Router. Only the first call
// has an effect.
func (s *Subscription[V]) Unsubscribe() {
	if !s.status.CompareAndSwap(0, 1) {
		return
	}

	if s.unsubscribeFn != nil {
		s.unsubscribeFn(s.id)
	}
}

func (s *Subscription[V]) IsClosed() bool {
	return s.status.Load() >= 1
}
