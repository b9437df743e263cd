package blazetopic

import "time"

// Delivery is handed to a Handler for every value matching a dispatched topic.
type Delivery[V any] struct {
	Topic        string
	Value        V
	UTCTimestamp time.Time
}

func newDelivery[V any](topic string, value V) *Delivery[V] {
	return &Delivery[V]{
		Topic:        topic,
		Value:        value,
		UTCTimestamp: time.Now().UTC(),
	}
}
