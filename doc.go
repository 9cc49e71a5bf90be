// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ulfq provides unbounded lock-free FIFO queue implementations.
//
// The package offers two multi-producer multi-consumer queue algorithms
// with identical semantics and different cost profiles:
//
//   - Segmented: fetch-and-add slot reservation over fixed-size segments
//   - Linked: Michael-Scott pointer-chasing queue, one node per element
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := ulfq.NewSegmented[Event]()
//	q := ulfq.NewLinked[*Request]()
//
// Builder API selects the algorithm from hints:
//
//	q := ulfq.Build[Event](ulfq.New())           // → Segmented
//	q := ulfq.Build[Event](ulfq.New().Linked())  // → Linked
//
// # Basic Usage
//
// Both queues share the same interface for enqueueing and dequeueing:
//
//	q := ulfq.NewSegmented[int]()
//
//	// Enqueue (always succeeds, may allocate)
//	value := 42
//	q.Enqueue(&value)
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if ulfq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Algorithm Selection
//
// Segmented (default) reserves slots by atomically incrementing per-segment
// cursors, a single Fetch-And-Add regardless of how many goroutines race.
// Elements live in segments of SegmentSize slots, so allocation cost is
// amortized over SegmentSize enqueues. Choose it for throughput under
// contention and high sustained rates.
//
// Linked allocates one node per element and races producers with a CAS on
// the tail link. Memory use tracks the current length exactly, with no idle
// segment capacity. Choose it when queues are numerous, mostly small, or
// long-lived while often empty.
//
// Relative order among elements in the segmented queue follows slot-index
// reservation order: a producer stalled past the consumer spin budget has
// its slot abandoned and retries into a later position, which affects that
// element's latency, never the consistency of the dequeued sequence.
//
// # Progress Guarantees
//
// All operations are lock-free: some goroutine always completes in a
// bounded number of steps, while an individual goroutine may retry under
// adversarial scheduling. No operation blocks. The only bounded waiting is
// the segmented dequeue's spin while an in-flight producer write lands,
// after which the consumer unilaterally abandons the slot and moves on.
//
// # Memory Reclamation
//
// Lock-free queues must never free memory that a concurrent goroutine may
// still dereference. In Go the garbage collector is the reclamation
// facility: holding a reference is the guard, and "retiring" an unlinked
// node or drained segment simply means removing it from the queue's shared
// fields. A goroutine that loaded the old head keeps it alive until the
// load goes out of scope; no epoch or hazard-pointer machinery is needed,
// and the CAS/fetch-and-add protocols are unaffected.
//
// Two retention properties follow from the algorithms and are worth
// knowing:
//
//   - Linked: the node that becomes the sentinel after a dequeue retains a
//     stale copy of the returned element until it is unlinked by the next
//     dequeue. Concurrent losing dequeues may still read that field, so it
//     cannot be cleared eagerly.
//   - Segmented: claimed and abandoned slots are cleared on claim, but a
//     drained segment as a whole stays allocated while any goroutine still
//     references it.
//
// # Error Handling
//
// Dequeue returns [ErrWouldBlock] when the queue is currently empty. This
// error is sourced from [code.hybscloud.com/iox] for ecosystem consistency
// and is a control flow signal, not a failure:
//
//	backoff := iox.Backoff{}
//	for {
//	    elem, err := q.Dequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        process(elem)
//	        continue
//	    }
//	    backoff.Wait()
//	}
//
// Enqueue never fails; its error result is always nil and exists only so
// bounded and unbounded producers share a signature.
//
// For semantic error classification (delegates to iox):
//
//	ulfq.IsWouldBlock(err)  // true if queue empty
//	ulfq.IsSemantic(err)    // true if control flow signal
//	ulfq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Length and Emptiness
//
// Length is intentionally not provided because accurate counts in
// lock-free algorithms require expensive cross-core synchronization. Track
// counts in application logic when needed. IsEmpty is a best-effort
// snapshot that may be stale immediately after returning under concurrent
// modification.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// The segmented queue protects slot data with an atomically ordered claim
// state on a separate variable; the detector cannot observe the
// happens-before edges established by those orderings and may report false
// positives. The linked queue publishes nodes through sync/atomic pointers
// and is race-detector clean.
//
// Tests incompatible with race detection are excluded via //go:build !race
// or skipped through the RaceEnabled constant.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package ulfq
