// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulfq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SegmentSize is the number of slots per segment in a Segmented queue.
// Segments are the unit of bulk allocation: one allocation covers
// SegmentSize elements, amortizing the per-element cost of the queue.
const SegmentSize = 1024

// slotSpinLimit bounds the dequeue-side wait for an in-flight producer
// write before the slot is abandoned and a fresh index is reserved.
const slotSpinLimit = 128

// Slot claim states. Transitions are monotonic:
// slotEmpty → slotFilled → slotTaken, or slotEmpty → slotTaken directly
// when a consumer gives up waiting for the producer (slot abandoned).
const (
	slotEmpty  uint64 = iota // no producer write has landed
	slotFilled               // a value is present and readable
	slotTaken                // claimed or abandoned; no further access
)

// Segmented is an FAA-based multi-producer multi-consumer unbounded queue.
//
// The queue is a linked list of fixed-size segments. Producers and consumers
// reserve slot indices with a single Fetch-And-Add on the segment cursors
// instead of competing in a CAS loop over a shared pointer, which keeps the
// reservation cost flat under contention. The price is a per-slot handshake:
// a reserved index may be observed by its consumer before the producer's
// write lands, so each slot carries a three-state claim protocol
// (empty/filled/taken) resolving that window.
//
// Order among elements follows slot-index reservation order. A producer that
// stalls past the consumer's spin budget has its slot abandoned and retries
// into a later position; this affects that element's latency, not the
// consistency of the returned sequence.
//
// Drained segments are unlinked from head and reclaimed by the garbage
// collector once no goroutine can reach them.
//
// Memory: segments of SegmentSize slots (8 bytes state + element per slot).
type Segmented[T any] struct {
	_    pad
	head atomic.Pointer[segment[T]]
	_    pad
	tail atomic.Pointer[segment[T]]
	_    pad
}

type segment[T any] struct {
	_       pad
	pushIdx atomix.Uint64 // producer cursor (FAA), only increases
	_       pad
	popIdx  atomix.Uint64 // consumer cursor (FAA), only increases
	_       pad
	next    atomic.Pointer[segment[T]]
	_       padPtr
	slots   [SegmentSize]slot[T]
}

type slot[T any] struct {
	state atomix.Uint64
	data  T
}

// NewSegmented creates a new empty FAA-based queue.
// The queue starts with a single empty segment.
func NewSegmented[T any]() *Segmented[T] {
	q := &Segmented[T]{}
	// zero value of a segment is ready for use: cursors at 0, all
	// slots in the empty state
	seg := &segment[T]{}
	q.head.Store(seg)
	q.tail.Store(seg)
	return q
}

// segmentWith builds an unpublished segment whose first slot already holds
// elem. The relaxed state store is safe because the segment only becomes
// visible through the CAS that links it, which orders the writes.
func segmentWith[T any](elem *T) *segment[T] {
	seg := &segment[T]{}
	seg.slots[0].data = *elem
	seg.slots[0].state.StoreRelaxed(slotFilled)
	seg.pushIdx.StoreRelaxed(1)
	return seg
}

// Enqueue adds an element to the queue. Always succeeds (may allocate);
// a nil error is returned to satisfy the shared Producer interface.
func (q *Segmented[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.Load()
		idx := tail.pushIdx.AddAcqRel(1) - 1

		if idx < SegmentSize {
			s := &tail.slots[idx]
			s.data = *elem
			if s.state.CompareAndSwapAcqRel(slotEmpty, slotFilled) {
				return nil
			}
			// the consumer for this index gave up before the write
			// landed and marked the slot taken: the cell is dead and
			// will never be read, so drop the copy and take a fresh
			// index in a (possibly) new segment
			var zero T
			s.data = zero
			sw.Once()
			continue
		}

		// segment is full; retry if tail already moved on
		if q.tail.Load() != tail {
			continue
		}

		next := tail.next.Load()
		if next == nil {
			// extend the list with a candidate segment carrying elem
			// in its first slot; publishing it completes the enqueue
			seg := segmentWith(elem)
			if tail.next.CompareAndSwap(nil, seg) {
				return nil
			}
			// lost the extension race; the candidate was never
			// published, so it is plain garbage - retry with elem
		} else {
			// another enqueue already extended the list - help swing
			// tail forward and retry
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
}

// Dequeue removes and returns the front element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Segmented[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.Load()

		popIdx := head.popIdx.LoadAcquire()
		pushIdx := head.pushIdx.LoadAcquire()
		if pushIdx <= popIdx && head.next.Load() == nil {
			var zero T
			return zero, ErrWouldBlock
		}

		idx := head.popIdx.AddAcqRel(1) - 1
		if idx < SegmentSize {
			s := &head.slots[idx]
			if elem, ok := s.take(); ok {
				return elem, nil
			}
			// slot abandoned: the producer did not arrive within the
			// spin budget and will retry elsewhere - reserve a fresh
			// index
			sw.Once()
			continue
		}

		// this segment is drained in the consume direction
		next := head.next.Load()
		if next == nil {
			var zero T
			return zero, ErrWouldBlock
		}
		// unlink the drained segment; failure means another consumer
		// already advanced head. Once unreachable, the segment and
		// everything still stored in it are reclaimed by the GC.
		q.head.CompareAndSwap(head, next)
		sw.Once()
	}
}

// take claims the slot for the calling consumer. It spins a bounded number
// of iterations waiting for an in-flight producer write, then abandons the
// slot. Exactly one consumer ever holds this slot's index, so only the
// caller transitions the state to taken.
func (s *slot[T]) take() (T, bool) {
	sw := spin.Wait{}
	for i := 0; ; i++ {
		if s.state.CompareAndSwapAcqRel(slotFilled, slotTaken) {
			elem := s.data
			// sole owner now; clear the cell so the element does not
			// stay reachable through the live segment
			var zero T
			s.data = zero
			return elem, true
		}
		if i >= slotSpinLimit {
			if s.state.CompareAndSwapAcqRel(slotEmpty, slotTaken) {
				// permanently skipped; the stalled producer will see
				// the taken state and retry with a fresh index
				var zero T
				return zero, false
			}
			// the producer published within the window; the filled
			// claim above succeeds on the next iteration
		}
		sw.Once()
	}
}

// IsEmpty reports whether the queue currently holds no elements.
// The snapshot is best-effort and may be stale under concurrent use.
func (q *Segmented[T]) IsEmpty() bool {
	head := q.head.Load()
	return head.pushIdx.LoadAcquire() <= head.popIdx.LoadAcquire() &&
		head.next.Load() == nil
}
