package atomx

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/atomx/internal/opt"
)

// word is the payload of a counter: a naturally aligned signed machine word.
type word interface {
	~int32 | ~int64
}

// Concurrency variable access rules for counter payloads
// 1. Outside a masked window a payload is only touched through loadWord,
//    storeWord and casWord; these are single indivisible accesses.
// 2. Inside a masked window the native engines still commit with casWord,
//    because a conditional update from an unmasked context may land
//    between the read and the write.
// 3. The emulated 64-bit payload is only ever touched under the mask, so
//    loadWordFast/storeWordFast are sufficient there.

// loadWord is a single ordered load of an aligned word.
//
//go:nosplit
func loadWord[T word](p *T) T {
	if unsafe.Sizeof(T(0)) == 4 {
		return T(atomic.LoadInt32((*int32)(unsafe.Pointer(p))))
	}
	return T(atomic.LoadInt64((*int64)(unsafe.Pointer(p))))
}

// storeWord is a single ordered store of an aligned word.
//
//go:nosplit
func storeWord[T word](p *T, v T) {
	if unsafe.Sizeof(T(0)) == 4 {
		atomic.StoreInt32((*int32)(unsafe.Pointer(p)), int32(v))
		return
	}
	atomic.StoreInt64((*int64)(unsafe.Pointer(p)), int64(v))
}

// casWord stores v if *p still holds old.
//
//go:nosplit
func casWord[T word](p *T, old, v T) bool {
	if unsafe.Sizeof(T(0)) == 4 {
		return atomic.CompareAndSwapInt32((*int32)(unsafe.Pointer(p)), int32(old), int32(v))
	}
	return atomic.CompareAndSwapInt64((*int64)(unsafe.Pointer(p)), int64(old), int64(v))
}

// loadWordFast performs a non-atomic read, safe only while the caller holds
// the interrupt mask and every other access to p does too.
//
//go:nosplit
func loadWordFast[T word](p *T) T {
	if opt.Race_ {
		return loadWord(p)
	}
	return *p
}

// storeWordFast performs a non-atomic write under the same rule as
// loadWordFast.
//
//go:nosplit
func storeWordFast[T word](p *T, v T) {
	if opt.Race_ {
		storeWord(p, v)
		return
	}
	*p = v
}
