package blazetopic

// fifo is a growable ring buffer. Popped slots are zeroed so the buffer does
// not pin topic strings between searches.
type fifo[T any] struct {
	buf  []T
	head int
	size int
}

func newFIFO[T any](capacity int) fifo[T] {
	return fifo[T]{buf: make([]T, max(capacity, 1))}
}

func (q *fifo[T]) push(v T) {
	if q.size == len(q.buf) {
		q.grow()
	}

	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

func (q *fifo[T]) pop() (T, bool) {
	var zero T

	if q.size == 0 {
		return zero, false
	}

	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--

	return v, true
}

func (q *fifo[T]) len() int {
	return q.size
}

func (q *fifo[T]) reset() {
	var zero T

	for q.size > 0 {
		q.buf[q.head] = zero
		q.head = (q.head + 1) % len(q.buf)
		q.size--
	}

	q.head = 0
}

func (q *fifo[T]) grow() {
	grown := make([]T, max(2*len(q.buf), 8))

	for i := range q.size {
		grown[i] = q.buf[(q.head+i)%len(q.buf)]
	}

	q.buf = grown
	q.head = 0
}
