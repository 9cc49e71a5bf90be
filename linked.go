// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulfq

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// Linked is a pointer-chasing multi-producer multi-consumer unbounded queue.
//
// Based on the Michael-Scott algorithm (PODC 1996). The queue is a singly
// linked list with a sentinel node: head always points at the sentinel, and
// the logical front element lives in the node after it. Enqueue links a new
// node at the tail; dequeue advances head past the sentinel.
//
// Tail may lag behind the true last node by at most one unswung link; both
// enqueue and dequeue help swing it forward when they observe the lag.
//
// Unlinked nodes are reclaimed by the garbage collector once no goroutine
// can reach them, so no explicit retirement step is needed.
//
// Memory: one node allocation per element (pointer + element per node).
type Linked[T any] struct {
	_    pad
	head atomic.Pointer[node[T]]
	_    pad
	tail atomic.Pointer[node[T]]
	_    pad
}

type node[T any] struct {
	elem T
	next atomic.Pointer[node[T]]
}

// NewLinked creates a new empty Michael-Scott queue.
// The queue starts with a single sentinel node that never holds an element.
func NewLinked[T any]() *Linked[T] {
	q := &Linked[T]{}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue adds an element to the queue. Always succeeds (may allocate);
// a nil error is returned to satisfy the shared Producer interface.
func (q *Linked[T]) Enqueue(elem *T) error {
	n := &node[T]{elem: *elem}
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()

		// tail has moved since it was loaded - retry
		if q.tail.Load() != tail {
			continue
		}

		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				// swing tail to the new node; failure means another
				// operation already helped, which is fine
				q.tail.CompareAndSwap(tail, n)
				return nil
			}
		} else {
			// a linked but unswung node exists - help swing tail forward
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// Dequeue removes and returns the front element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Linked[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.Load()
		// tail is only compared by identity, never dereferenced here
		tail := q.tail.Load()
		next := head.next.Load()

		// head has moved since it was loaded - retry
		if q.head.Load() != head {
			continue
		}

		if head == tail {
			if next == nil {
				var zero T
				return zero, ErrWouldBlock
			}
			// an in-flight enqueue linked a node but has not swung
			// tail yet - help and retry
			q.tail.CompareAndSwap(tail, next)
			continue
		}

		// head != tail, so next is non-nil and holds the front element.
		// The read is tentative: losing competitors read the same field,
		// so the node keeps its value until it becomes unreachable.
		elem := next.elem
		if q.head.CompareAndSwap(head, next) {
			// the old sentinel is unlinked; the GC reclaims it once no
			// concurrent dequeue still holds a reference
			return elem, nil
		}
		sw.Once()
	}
}

// IsEmpty reports whether the queue currently holds no elements.
// The snapshot is best-effort and may be stale under concurrent use.
func (q *Linked[T]) IsEmpty() bool {
	// head.next == nil means head is the last node, i.e. the sentinel
	return q.head.Load().next.Load() == nil
}
