// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package helix

import (
	"encoding/binary"
	"math"
)

// Stats holds the diagnostic figures spec §6 describes as an interface
// contract. They are purely informational: nothing here feeds back
// into Compress or Decompress, and none of it affects round-trip
// correctness.
type Stats struct {
	OriginalBytes       int     // N
	CompressedBytes     int     // framed code count serialized as 32-bit little-endian integers
	CompressionRatio    float64 // CompressedBytes / OriginalBytes
	BitsPerBase         float64 // compressed bits spent per output base symbol
	InputEntropy        float64 // Shannon entropy of the input byte distribution, bits/byte
	CodeEntropy         float64 // Shannon entropy of the little-endian octet expansion of codes, bits/byte
	TheoreticalMinBytes float64 // InputEntropy * OriginalBytes / 8
	ShannonEfficiency   float64 // TheoreticalMinBytes / CompressedBytes, capped at 1.0
}

// Stats computes diagnostics for a (original, codes, meta) triple
// produced by Compress. It never mutates its arguments and never
// returns an error: every figure here is well-defined even for the
// empty input.
func (c *Codec) Stats(original []byte, codes []int32, meta Metadata) Stats {
	compressedBytes := 4 * len(codes)
	inputEntropy := byteEntropy(original)
	codeEntropy := byteEntropy(codesToLittleEndian(codes))
	theoreticalMin := inputEntropy * float64(len(original)) / 8

	var ratio, bitsPerBase, efficiency float64
	if len(original) > 0 {
		ratio = float64(compressedBytes) / float64(len(original))
	}
	if meta.BaseLen > 0 {
		bitsPerBase = float64(compressedBytes*8) / float64(meta.BaseLen)
	}
	if compressedBytes > 0 {
		efficiency = theoreticalMin / float64(compressedBytes)
		if efficiency > 1.0 {
			efficiency = 1.0
		}
	}

	return Stats{
		OriginalBytes:       len(original),
		CompressedBytes:     compressedBytes,
		CompressionRatio:    ratio,
		BitsPerBase:         bitsPerBase,
		InputEntropy:        inputEntropy,
		CodeEntropy:         codeEntropy,
		TheoreticalMinBytes: theoreticalMin,
		ShannonEfficiency:   efficiency,
	}
}

// codesToLittleEndian serializes codes the same way the frame digest
// does: each code as a 32-bit little-endian integer.
func codesToLittleEndian(codes []int32) []byte {
	buf := make([]byte, 4*len(codes))
	for i, c := range codes {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(c))
	}
	return buf
}

// byteEntropy computes the Shannon entropy, in bits per byte, of data's
// byte-value distribution.
func byteEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var hist [256]int
	for _, b := range data {
		hist[b]++
	}
	n := float64(len(data))
	var h float64
	for _, cnt := range hist {
		if cnt == 0 {
			continue
		}
		p := float64(cnt) / n
		h -= p * math.Log2(p)
	}
	return h
}
