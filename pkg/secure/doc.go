/*
Package secure provides scoped containers for sensitive byte material.

A Buffer owns a single allocation. Whoever holds a Buffer is responsible for calling Destroy, which overwrites the entire allocation with zeros before releasing it.
Destroy is idempotent and safe on a nil Buffer, so the usual pattern is to defer it as soon as the Buffer is obtained, even if ownership is handed off later.

# Allocators:

Buffers are created through an Allocator.
  - Locked (the default) is backed by memguard, so the memory is mlocked, guarded, and never swapped.
  - Heap uses ordinary Go memory and is wiped on Destroy. It's useful where mlock limits are tight.
  - The securetest package provides an instrumented allocator that records every Buffer so tests can verify that everything was wiped.

# Reading input:

ReadLine reads a single line from an io.Reader one byte at a time directly into a Buffer.
No intermediate buffering is used, so nothing is left behind in a bufio.Reader, and a subsequent reader of the same source sees the data right after the newline.
*/
package secure
