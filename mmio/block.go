package mmio

import (
	"fmt"
	"unsafe"
)

// Block is a window of device registers.
//
// In a hosted process a Block is backed by ordinary memory, which lets a
// test play the device side of a driver.
type Block struct {
	mem []uint64
}

// NewBlock returns a zeroed register window of at least size bytes.
func NewBlock(size uintptr) *Block {
	return &Block{mem: make([]uint64, (size+7)/8)}
}

// Size returns the window size in bytes.
func (b *Block) Size() uintptr {
	return uintptr(len(b.mem)) * 8
}

// register is implemented by the register cell types.
type register interface {
	Reg32 | Reg64
}

// At returns the register of type R at byte offset off.
// It panics if the register does not fit the window or off is not aligned
// to the register size.
func At[R register](b *Block, off uintptr) *R {
	sz := unsafe.Sizeof(*new(R))
	if off%sz != 0 || off+sz > b.Size() {
		panic(fmt.Sprintf("mmio: register of %d bytes at offset %#x outside %#x byte window or misaligned",
			sz, off, b.Size()))
	}
	return (*R)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.mem)), off))
}
