// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ulfq

import "unsafe"

// Options configures queue creation and algorithm selection.
type Options struct {
	// Performance hints
	linked bool // Prefer node-per-element layout over segments
}

// Builder creates queues with fluent configuration.
//
// Builder provides a fluent API for selecting between the two unbounded
// queue algorithms. The default is the segmented FAA-based queue; Linked()
// selects the Michael-Scott pointer-chasing queue.
//
// Example:
//
//	// Segmented queue (default, highest throughput)
//	q := ulfq.Build[Event](ulfq.New())
//
//	// Linked queue (node per element, no idle segment memory)
//	q := ulfq.Build[Event](ulfq.New().Linked())
type Builder struct {
	opts Options
}

// New creates a queue builder.
//
// Unbounded queues take no capacity: both algorithms grow as needed, one
// node or one segment at a time.
//
// Example:
//
//	// Create builder, then configure and build
//	b := ulfq.New()
//	q := ulfq.BuildLinked[int](b.Linked())
//
//	// Or chain directly
//	q := ulfq.Build[int](ulfq.New())
func New() *Builder {
	return &Builder{}
}

// Linked selects the Michael-Scott linked queue with one node per element
// instead of the segmented FAA-based default.
//
// Trade-off: no up-front segment allocation and memory proportional to the
// current length, at the cost of an allocation and a CAS race per element.
// Prefer the default for throughput under producer/consumer contention.
func (b *Builder) Linked() *Builder {
	b.opts.linked = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	Default  → Segmented (FAA slot reservation, segments of SegmentSize)
//	Linked() → Linked (Michael-Scott, node per element)
//
// For type-safe returns with concrete types, use:
//   - BuildLinked[T](b)    → *Linked[T]
//   - BuildSegmented[T](b) → *Segmented[T]
func Build[T any](b *Builder) Queue[T] {
	if b.opts.linked {
		return NewLinked[T]()
	}
	return NewSegmented[T]()
}

// BuildLinked creates a Linked queue with compile-time type safety.
// Panics if builder is not configured with Linked().
func BuildLinked[T any](b *Builder) *Linked[T] {
	if !b.opts.linked {
		panic("ulfq: BuildLinked requires Linked()")
	}
	return NewLinked[T]()
}

// BuildSegmented creates a Segmented queue with compile-time type safety.
// Panics if builder is configured with Linked().
func BuildSegmented[T any](b *Builder) *Segmented[T] {
	if b.opts.linked {
		panic("ulfq: BuildSegmented requires no Linked() hint")
	}
	return NewSegmented[T]()
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padPtr is padding to fill cache line after pointer-sized field.
type padPtr [64 - ptrSize]byte
