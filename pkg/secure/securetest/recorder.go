// Package securetest provides an instrumented secure.Allocator for verifying wipe behavior in tests.
package securetest

import (
	"sync"
	"testing"

	"github.com/saylorsolutions/sphragis/pkg/secure"
	"github.com/stretchr/testify/assert"
)

var _ secure.Allocator = (*Recorder)(nil)

// Recorder allocates heap-backed Buffers and keeps a reference to each backing allocation, so it can be inspected after Destroy.
type Recorder struct {
	mu      sync.Mutex
	buffers []*secure.Buffer
	mem     [][]byte
}

func (r *Recorder) Alloc(size int) *secure.Buffer {
	mem := make([]byte, size)
	buf := secure.NewBuffer(mem, nil)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffers = append(r.buffers, buf)
	r.mem = append(r.mem, mem)
	return buf
}

// Count returns the number of Buffers allocated so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffers)
}

// Live returns the number of Buffers that have not been destroyed.
func (r *Recorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	live := 0
	for _, buf := range r.buffers {
		if !buf.Destroyed() {
			live++
		}
	}
	return live
}

// Wiped reports whether every Buffer was destroyed and all of its backing memory is zero.
func (r *Recorder) Wiped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, buf := range r.buffers {
		if !buf.Destroyed() {
			return false
		}
		for _, b := range r.mem[i] {
			if b != 0 {
				return false
			}
		}
	}
	return true
}

// AssertWiped fails the test if any recorded Buffer is still live or holds non-zero bytes.
func (r *Recorder) AssertWiped(t testing.TB) bool {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := true
	for i, buf := range r.buffers {
		if !assert.Truef(t, buf.Destroyed(), "buffer %d (size %d) was not destroyed", i, len(r.mem[i])) {
			ok = false
			continue
		}
		if !assert.Equalf(t, make([]byte, len(r.mem[i])), r.mem[i], "buffer %d was not wiped", i) {
			ok = false
		}
	}
	return ok
}
