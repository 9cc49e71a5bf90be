// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulfq

// Queue is the combined producer-consumer interface for an unbounded
// FIFO queue.
//
// Enqueue always succeeds (the queue grows as needed); Dequeue is
// non-blocking and returns ErrWouldBlock when the queue is currently empty.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed. IsEmpty is provided as a
// best-effort snapshot only.
//
// Example:
//
//	q := ulfq.NewSegmented[int]()
//
//	// Enqueue (always succeeds)
//	val := 42
//	_ = q.Enqueue(&val)
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// IsEmpty reports whether the queue currently holds no elements.
	// The result may be stale immediately after returning under
	// concurrent modification.
	IsEmpty() bool
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue. Unbounded queues never
	// reject an element; the error result is always nil and exists so
	// that producers of bounded and unbounded queues share a signature.
	//
	// Safe for concurrent use by multiple goroutines.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value (copied out of the queue's storage);
// the vacated storage is cleared to allow garbage collection of
// referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue
	// (non-blocking). Returns (zero-value, ErrWouldBlock) if the queue
	// is currently empty.
	//
	// Safe for concurrent use by multiple goroutines.
	Dequeue() (T, error)
}
