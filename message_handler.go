package blazetopic

// Handler receives deliveries from a Dispatcher.
type Handler[V any] interface {
	OnMatch(delivery *Delivery[V]) error
}

type HandlerFunc[V any] func(delivery *Delivery[V]) error

func (f HandlerFunc[V]) OnMatch(delivery *Delivery[V]) error {
	return f(delivery)
}
