package secure

import (
	"bytes"
	"runtime"

	"github.com/awnumar/memguard"
)

// Buffer holds sensitive bytes. The visible portion returned by Bytes may be narrower than the underlying allocation, but Destroy always wipes the whole allocation.
type Buffer struct {
	mem       []byte
	data      []byte
	release   func()
	destroyed bool
}

// NewBuffer wraps mem as a Buffer. The release function, if not nil, is called after mem has been wiped.
// This is intended for custom Allocator implementations.
func NewBuffer(mem []byte, release func()) *Buffer {
	return &Buffer{
		mem:     mem,
		data:    mem,
		release: release,
	}
}

// Bytes returns the visible contents. The returned slice must not be retained past Destroy.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.destroyed {
		return nil
	}
	return b.data
}

// Len returns the length of the visible contents.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool {
	return b == nil || b.destroyed
}

// Truncate shrinks the visible contents to n bytes.
func (b *Buffer) Truncate(n int) {
	if b == nil || b.destroyed {
		return
	}
	if n < 0 || n > len(b.data) {
		panic("secure: truncate out of range")
	}
	b.data = b.data[:n]
}

// TrimSpace narrows the visible contents to exclude leading and trailing white space.
// No bytes are copied.
func (b *Buffer) TrimSpace() {
	if b == nil || b.destroyed {
		return
	}
	b.data = bytes.TrimSpace(b.data)
}

// Destroy wipes the allocation and releases it.
func (b *Buffer) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	b.destroyed = true
	memguard.WipeBytes(b.mem)
	runtime.KeepAlive(b.mem)
	if b.release != nil {
		b.release()
	}
	b.mem = nil
	b.data = nil
}

// Allocator creates Buffers of a fixed size, initially zeroed.
type Allocator interface {
	Alloc(size int) *Buffer
}

// AllocatorFunc adapts a function to the Allocator interface.
type AllocatorFunc func(size int) *Buffer

func (f AllocatorFunc) Alloc(size int) *Buffer {
	return f(size)
}

var (
	// Locked allocates guarded memory through memguard.
	Locked Allocator = AllocatorFunc(allocLocked)
	// Heap allocates ordinary Go memory that is still wiped on Destroy.
	Heap Allocator = AllocatorFunc(allocHeap)
)

func allocLocked(size int) *Buffer {
	if size <= 0 {
		return allocHeap(0)
	}
	lb := memguard.NewBuffer(size)
	return NewBuffer(lb.Bytes(), lb.Destroy)
}

func allocHeap(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return NewBuffer(make([]byte, size), nil)
}

// Copy allocates a Buffer with alloc and copies src into it. The caller still owns src.
func Copy(alloc Allocator, src []byte) *Buffer {
	buf := alloc.Alloc(len(src))
	copy(buf.Bytes(), src)
	return buf
}

// OrDefault returns alloc, or Locked if alloc is nil.
func OrDefault(alloc Allocator) Allocator {
	if alloc == nil {
		return Locked
	}
	return alloc
}
