// Portions of this file are derived from golang.org/x/crypto/argon2.
// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the NOTICE file.

package kdf

import (
	"encoding/binary"
	"io"
	"sync"

	bin "github.com/saylorsolutions/binmap"
	"golang.org/x/crypto/blake2b"
)

const (
	blockLength         = 128
	blockSize           = 8 * blockLength
	syncPoints          = 4
	modeArgon2id uint32 = 2
)

type block [blockLength]uint64

// hashParams is the fixed width prefix of the H0 pre-hash.
type hashParams struct {
	lanes   uint32
	tagLen  uint32
	memory  uint32
	passes  uint32
	version uint32
	mode    uint32
}

func (p *hashParams) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&p.lanes),
		bin.Int(&p.tagLen),
		bin.Int(&p.memory),
		bin.Int(&p.passes),
		bin.Int(&p.version),
		bin.Int(&p.mode),
	)
}

type argon2Input struct {
	password []byte
	salt     []byte
	secret   []byte
	data     []byte
	passes   uint32
	memory   uint32
	lanes    uint32
	version  Version
}

// argon2id fills out with the Argon2id tag for in. Inputs must already be validated.
func argon2id(out []byte, in argon2Input) error {
	if len(out) < 4 {
		return ErrInvalidOutputLength
	}
	var h0 [blake2b.Size + 8]byte
	defer clear(h0[:])
	if err := initHash(&h0, in, uint32(len(out))); err != nil {
		return err
	}

	lanes := in.lanes
	memory := in.memory / (syncPoints * lanes) * (syncPoints * lanes)
	if memory < 2*syncPoints*lanes {
		memory = 2 * syncPoints * lanes
	}
	B := make([]block, memory)
	defer clear(B)

	initBlocks(&h0, B, lanes)
	processBlocks(B, in.passes, memory, lanes, in.version)
	extractKey(out, B, memory, lanes)
	return nil
}

// initHash writes H0 into the first 64 bytes of h0.
func initHash(h0 *[blake2b.Size + 8]byte, in argon2Input, tagLen uint32) error {
	b2, err := blake2b.New512(nil)
	if err != nil {
		return err
	}
	params := hashParams{
		lanes:   in.lanes,
		tagLen:  tagLen,
		memory:  in.memory,
		passes:  in.passes,
		version: uint32(in.version),
		mode:    modeArgon2id,
	}
	if err := params.mapper().Write(b2, binary.LittleEndian); err != nil {
		return err
	}
	for _, field := range [][]byte{in.password, in.salt, in.secret, in.data} {
		if err := writeField(b2, field); err != nil {
			return err
		}
	}
	b2.Sum(h0[:0])
	return nil
}

func writeField(w io.Writer, field []byte) error {
	n := uint32(len(field))
	if err := bin.Int(&n).Write(w, binary.LittleEndian); err != nil {
		return err
	}
	_, err := w.Write(field)
	return err
}

func initBlocks(h0 *[blake2b.Size + 8]byte, B []block, lanes uint32) {
	var block0 [blockSize]byte
	defer clear(block0[:])
	laneLen := uint32(len(B)) / lanes
	for lane := uint32(0); lane < lanes; lane++ {
		j := lane * laneLen
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)
		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(h0[blake2b.Size:], i)
			blake2bHash(block0[:], h0[:])
			for k := range B[j+i] {
				B[j+i][k] = binary.LittleEndian.Uint64(block0[k*8:])
			}
		}
	}
}

func processBlocks(B []block, passes, memory, lanes uint32, version Version) {
	laneLen := memory / lanes
	segLen := laneLen / syncPoints

	processSegment := func(n, slice, lane uint32, wg *sync.WaitGroup) {
		defer wg.Done()
		var addresses, in, zero block
		defer func() {
			clear(addresses[:])
			clear(in[:])
		}()

		dataIndependent := n == 0 && slice < syncPoints/2
		if dataIndependent {
			in[0] = uint64(n)
			in[1] = uint64(lane)
			in[2] = uint64(slice)
			in[3] = uint64(memory)
			in[4] = uint64(passes)
			in[5] = uint64(modeArgon2id)
		}

		index := uint32(0)
		if n == 0 && slice == 0 {
			// The first two blocks of each lane come from H0.
			index = 2
			in[6]++
			compress(&addresses, &in, &zero, false)
			compress(&addresses, &addresses, &zero, false)
		}

		// Version 0x10 overwrites blocks on every pass.
		xor := version == Version13 && n > 0
		offset := lane*laneLen + slice*segLen + index
		var random uint64
		for index < segLen {
			prev := offset - 1
			if index == 0 && slice == 0 {
				prev += laneLen
			}
			if dataIndependent {
				if index%blockLength == 0 {
					in[6]++
					compress(&addresses, &in, &zero, false)
					compress(&addresses, &addresses, &zero, false)
				}
				random = addresses[index%blockLength]
			} else {
				random = B[prev][0]
			}
			ref := indexAlpha(random, laneLen, segLen, lanes, n, slice, lane, index)
			compress(&B[offset], &B[prev], &B[ref], xor)
			index, offset = index+1, offset+1
		}
	}

	for n := uint32(0); n < passes; n++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < lanes; lane++ {
				wg.Add(1)
				go processSegment(n, slice, lane, &wg)
			}
			wg.Wait()
		}
	}
}

func extractKey(out []byte, B []block, memory, lanes uint32) {
	laneLen := memory / lanes
	last := &B[memory-1]
	for lane := uint32(0); lane < lanes-1; lane++ {
		src := &B[lane*laneLen+laneLen-1]
		for i := range src {
			last[i] ^= src[i]
		}
	}

	var final [blockSize]byte
	defer clear(final[:])
	for i, v := range last {
		binary.LittleEndian.PutUint64(final[i*8:], v)
	}
	blake2bHash(out, final[:])
}

func indexAlpha(rand uint64, laneLen, segLen, lanes, n, slice, lane, index uint32) uint32 {
	refLane := uint32(rand>>32) % lanes
	if n == 0 && slice == 0 {
		refLane = lane
	}
	m, s := 3*segLen, ((slice+1)%syncPoints)*segLen
	if lane == refLane {
		m += index
	}
	if n == 0 {
		m, s = slice*segLen, 0
		if slice == 0 || lane == refLane {
			m += index
		}
	}
	if index == 0 || lane == refLane {
		m--
	}
	return phi(rand, uint64(m), uint64(s), refLane, laneLen)
}

func phi(rand, m, s uint64, lane, laneLen uint32) uint32 {
	p := rand & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * m) >> 32
	return lane*laneLen + uint32((s+m-(p+1))%uint64(laneLen))
}

// blake2bHash is the variable length hash H' from RFC 9106 section 3.3.
func blake2bHash(out []byte, in []byte) {
	var buffer [blake2b.Size]byte
	defer clear(buffer[:])

	outLen := len(out)
	size := blake2b.Size
	if outLen < size {
		size = outLen
	}
	b2, _ := blake2b.New(size, nil)
	binary.LittleEndian.PutUint32(buffer[:4], uint32(outLen))
	b2.Write(buffer[:4])
	b2.Write(in)

	if outLen <= blake2b.Size {
		b2.Sum(out[:0])
		return
	}

	b2.Sum(buffer[:0])
	b2.Reset()
	copy(out, buffer[:32])
	out = out[32:]
	for len(out) > blake2b.Size {
		b2.Write(buffer[:])
		b2.Sum(buffer[:0])
		copy(out, buffer[:32])
		out = out[32:]
		b2.Reset()
	}

	if outLen%blake2b.Size > 0 {
		r := ((outLen + 31) / 32) - 2
		b2, _ = blake2b.New(outLen-32*r, nil)
	}
	b2.Write(buffer[:])
	b2.Sum(out[:0])
}
