package status

// ringBuffer is a fixed-capacity FIFO of recent outcomes.
// Not safe for concurrent use; the caller must synchronize.
type ringBuffer struct {
	buf      []Entry
	capacity int
	head     int // next write position
	count    int
	overflow bool // true once any entry has been overwritten
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{
		buf:      make([]Entry, capacity),
		capacity: capacity,
	}
}

func (r *ringBuffer) push(e Entry) {
	r.buf[r.head] = e
	r.head = (r.head + 1) % r.capacity
	if r.count == r.capacity {
		// Overwrote the oldest
		r.overflow = true
		return
	}
	r.count++
}

// items returns a copy of the buffered entries, oldest first.
func (r *ringBuffer) items() []Entry {
	if r.count == 0 {
		return nil
	}

	result := make([]Entry, r.count)
	// Oldest item is at (head - count) mod capacity
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		result[i] = r.buf[(start+i)%r.capacity]
	}
	return result
}

func (r *ringBuffer) len() int {
	return r.count
}
