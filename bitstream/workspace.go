package bitstream

import (
	"fmt"
	"unsafe"
)

// Alignment is the boundary the stream state is placed on inside a
// workspace.
const Alignment = 16

// state is the part of a Stream that lives inside its workspace. It holds no
// pointers, so it may be placed in caller-supplied memory.
type state struct {
	// bits is the accumulator byte.
	bits uint8
	// count is, in write mode, the number of free slots left in bits
	// (1..8); in read mode, the number of unconsumed bits (0..8).
	count uint8
}

// WorkspaceSize returns the number of bytes a caller must supply through
// WithWorkspace to avoid allocation. It includes Alignment bytes of slack so
// the state can be aligned regardless of where the buffer starts.
func WorkspaceSize() int {
	return int(unsafe.Sizeof(state{})) + Alignment
}

// Allocator is the memory capability a Stream uses when the caller supplies
// no workspace. Free is called once, on Close, with the block Alloc returned.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapAllocator) Free([]byte) {}

// ownership records who releases the workspace.
type ownership uint8

const (
	// owned memory came from the Allocator and is freed on Close.
	owned ownership = iota
	// borrowed memory belongs to the caller and is never freed.
	borrowed
)

func (o ownership) String() string {
	if o == borrowed {
		return "borrowed"
	}
	return "owned"
}

// alignOffset returns the index of the first byte in ws whose address is a
// multiple of Alignment.
func alignOffset(ws []byte) int {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(ws)))
	return int((Alignment - addr%Alignment) % Alignment)
}

// placeState positions the stream state at the first aligned address in ws.
func placeState(ws []byte) (*state, error) {
	if len(ws) < WorkspaceSize() {
		return nil, fmt.Errorf("workspace of %d bytes, need %d", len(ws), WorkspaceSize())
	}
	off := alignOffset(ws)
	return (*state)(unsafe.Pointer(&ws[off])), nil
}
