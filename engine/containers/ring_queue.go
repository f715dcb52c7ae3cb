package containers

// RingQueue is a bounded FIFO. Indices wrap around so draining the queue
// frees its slots for reuse.
type RingQueue[T any] struct {
	data       []T
	size       int
	readIndex  int
	writeIndex int
	count      int
}

// Create a new RingQueue
func NewRingQueue[T any](size int) *RingQueue[T] {
	if size < 0 {
		size = 0
	}
	return &RingQueue[T]{
		data: make([]T, size),
		size: size,
	}
}

// Enqueue adds an element to the queue
func (rq *RingQueue[T]) Enqueue(value T) error {
	if rq.IsFull() {
		return ErrQueueFull
	}

	rq.data[rq.writeIndex] = value
	rq.writeIndex = (rq.writeIndex + 1) % rq.size
	rq.count++
	return nil
}

// Dequeue removes and returns the front element in the queue
func (rq *RingQueue[T]) Dequeue() (T, error) {
	var zero T
	if rq.IsEmpty() {
		return zero, ErrQueueEmpty
	}

	value := rq.data[rq.readIndex]
	// drop the reference so the slot does not keep it alive
	rq.data[rq.readIndex] = zero
	rq.readIndex = (rq.readIndex + 1) % rq.size
	rq.count--
	return value, nil
}

// Peek returns the front element without removing it
func (rq *RingQueue[T]) Peek() (T, error) {
	if rq.IsEmpty() {
		var zero T
		return zero, ErrQueueEmpty
	}
	return rq.data[rq.readIndex], nil
}

// IsEmpty checks if the queue is empty
func (rq *RingQueue[T]) IsEmpty() bool {
	return rq.count == 0
}

// IsFull checks if the queue is full
func (rq *RingQueue[T]) IsFull() bool {
	return rq.count == rq.size
}

func (rq *RingQueue[T]) Len() int {
	return rq.count
}

func (rq *RingQueue[T]) Cap() int {
	return rq.size
}

// Rotate visits every element exactly once in FIFO order by dequeuing it and
// enqueuing it again at the tail. Membership and order are unchanged when it
// returns, even if fn fails: the element fn failed on is re-enqueued before
// the error is returned, and the remaining elements are rotated past without
// being visited so the head ends up where it started.
func (rq *RingQueue[T]) Rotate(fn func(T) error) error {
	n := rq.count
	var ferr error
	for i := 0; i < n; i++ {
		v, err := rq.Dequeue()
		if err != nil {
			return err
		}
		if ferr == nil {
			ferr = fn(v)
		}
		if err := rq.Enqueue(v); err != nil {
			return err
		}
	}
	return ferr
}
