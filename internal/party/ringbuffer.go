package party

import "github.com/mmuslimabdulj/comuno/internal/domain"

// RingBuffer is a fixed-size circular buffer holding the trailing chat window.
// Appends are O(1); once full, the oldest message is overwritten.
type RingBuffer struct {
	data []domain.ChatMessage
	head int // next write position
	size int // current number of elements
	cap  int // maximum capacity
}

// NewRingBuffer creates a new ring buffer with the given capacity.
// Capacities below one are raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		data: make([]domain.ChatMessage, capacity),
		cap:  capacity,
	}
}

// Add appends a message, returning the evicted message if the buffer was full
func (rb *RingBuffer) Add(msg domain.ChatMessage) (evicted domain.ChatMessage, ok bool) {
	if rb.size == rb.cap {
		evicted, ok = rb.data[rb.head], true
	}

	rb.data[rb.head] = msg
	rb.head = (rb.head + 1) % rb.cap

	if rb.size < rb.cap {
		rb.size++
	}
	return evicted, ok
}

// GetAll returns all messages in chronological order (oldest first)
func (rb *RingBuffer) GetAll() []domain.ChatMessage {
	if rb.size == 0 {
		return nil
	}

	result := make([]domain.ChatMessage, rb.size)
	if rb.size < rb.cap {
		copy(result, rb.data[:rb.size])
	} else {
		// head points at the oldest element once the buffer has wrapped
		n := copy(result, rb.data[rb.head:])
		copy(result[n:], rb.data[:rb.head])
	}
	return result
}

// Last returns the most recent message
func (rb *RingBuffer) Last() (domain.ChatMessage, bool) {
	if rb.size == 0 {
		return domain.ChatMessage{}, false
	}
	return rb.data[(rb.head-1+rb.cap)%rb.cap], true
}

// Len returns the current number of elements
func (rb *RingBuffer) Len() int {
	return rb.size
}

// Cap returns the maximum number of retained messages
func (rb *RingBuffer) Cap() int {
	return rb.cap
}

// Clear removes all elements from the buffer
func (rb *RingBuffer) Clear() {
	rb.head = 0
	rb.size = 0
	clear(rb.data)
}
