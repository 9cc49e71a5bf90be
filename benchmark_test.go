// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package ulfq_test

import (
	"testing"

	"code.hybscloud.com/spin"
	"code.hybscloud.com/ulfq"
)

// =============================================================================
// Single-goroutine benchmarks
// =============================================================================

func BenchmarkLinkedEnqueueDequeue(b *testing.B) {
	q := ulfq.NewLinked[int]()
	v := 42

	b.ResetTimer()
	for range b.N {
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkSegmentedEnqueueDequeue(b *testing.B) {
	q := ulfq.NewSegmented[int]()
	v := 42

	b.ResetTimer()
	for range b.N {
		q.Enqueue(&v)
		q.Dequeue()
	}
}

// BenchmarkSegmentedSegmentTurnover keeps a standing load of one full
// segment so every SegmentSize operations allocate and retire a segment.
func BenchmarkSegmentedSegmentTurnover(b *testing.B) {
	q := ulfq.NewSegmented[int]()
	v := 42
	for range ulfq.SegmentSize {
		q.Enqueue(&v)
	}

	b.ResetTimer()
	for range b.N {
		q.Enqueue(&v)
		q.Dequeue()
	}
}

// =============================================================================
// Parallel benchmarks
// =============================================================================

func BenchmarkLinkedParallel(b *testing.B) {
	q := ulfq.NewLinked[int]()
	v := 42

	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		for pb.Next() {
			q.Enqueue(&v)
			if _, err := q.Dequeue(); err != nil {
				sw.Once()
			} else {
				sw.Reset()
			}
		}
	})
}

func BenchmarkSegmentedParallel(b *testing.B) {
	q := ulfq.NewSegmented[int]()
	v := 42

	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		for pb.Next() {
			q.Enqueue(&v)
			if _, err := q.Dequeue(); err != nil {
				sw.Once()
			} else {
				sw.Reset()
			}
		}
	})
}
