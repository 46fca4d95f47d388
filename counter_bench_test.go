package atomx

import (
	"sync/atomic"
	"testing"
)

func BenchmarkInt32FetchAdd(b *testing.B) {
	b.ReportAllocs()
	var x Int32
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			x.FetchAdd(1)
		}
	})
}

func BenchmarkInt32IncUnlessNegative(b *testing.B) {
	b.ReportAllocs()
	var x Int32
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			x.IncUnlessNegative()
		}
	})
}

func BenchmarkInt64FetchAddUnless(b *testing.B) {
	b.ReportAllocs()
	var x Int64
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			x.FetchAddUnless(1, -1)
		}
	})
}

func BenchmarkInt32Load(b *testing.B) {
	b.ReportAllocs()
	var x Int32
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = x.Load()
		}
	})
}

// Baseline: the native read-modify-write of sync/atomic.
func BenchmarkSyncAtomicAddInt32(b *testing.B) {
	b.ReportAllocs()
	var x atomic.Int32
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			x.Add(1)
		}
	})
}
