// Portions of this file are derived from golang.org/x/crypto/argon2.
// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the NOTICE file.

package kdf

import (
	"math/bits"
)

// compress is the Argon2 compression function G. When xor is set the result is XORed into out instead of replacing it.
// out may alias in1.
func compress(out, in1, in2 *block, xor bool) {
	var r, t block
	var v [16]uint64
	defer func() {
		clear(r[:])
		clear(t[:])
		clear(v[:])
	}()

	for i := range r {
		r[i] = in1[i] ^ in2[i]
	}
	t = r

	// Rows of 16 words.
	for row := 0; row < 8; row++ {
		base := row * 16
		copy(v[:], t[base:base+16])
		permute(&v)
		copy(t[base:base+16], v[:])
	}
	// Columns of word pairs.
	for col := 0; col < 8; col++ {
		base := 2 * col
		for k := 0; k < 8; k++ {
			v[2*k] = t[base+16*k]
			v[2*k+1] = t[base+16*k+1]
		}
		permute(&v)
		for k := 0; k < 8; k++ {
			t[base+16*k] = v[2*k]
			t[base+16*k+1] = v[2*k+1]
		}
	}

	if xor {
		for i := range t {
			out[i] ^= r[i] ^ t[i]
		}
		return
	}
	for i := range t {
		out[i] = r[i] ^ t[i]
	}
}

func permute(v *[16]uint64) {
	v[0], v[4], v[8], v[12] = gb(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = gb(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = gb(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = gb(v[3], v[7], v[11], v[15])

	v[0], v[5], v[10], v[15] = gb(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = gb(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = gb(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = gb(v[3], v[4], v[9], v[14])
}

// gb is the BLAKE2b G function with the BlaMka multiplication.
func gb(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a += b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = bits.RotateLeft64(d^a, -32)
	c += d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = bits.RotateLeft64(b^c, -24)
	a += b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = bits.RotateLeft64(d^a, -16)
	c += d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}
