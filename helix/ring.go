// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package helix

import (
	"math"

	"github.com/dsnet/helicode/helix/internal"
)

// RingMeta records the sizes the ring builder computed, all of which
// the ring breaker needs verbatim rather than recomputing (spec §4.5:
// trailing size fields take precedence over any internal recomputation).
type RingMeta struct {
	CodeLen   int // ℓ, length of the pre-ring LZW code sequence
	RingLen   int // P, the prime padding length
	BridgeLen int // K, the length of the repeated bridge suffix
}

// BuildRing implements spec §4.3: it zero-pads codes up to the next
// prime length P, then appends the first K = min(floor(sqrt(P)), 10)
// codes of the padded ring again as a bridge suffix. The returned slice
// has length P+meta.BridgeLen; only its first P elements are
// semantically meaningful, the rest is a structural artifact the ring
// breaker discards.
func BuildRing(codes []int32) ([]int32, RingMeta) {
	l := len(codes)
	p := internal.NextPrime(l)
	k := bridgeLen(p)

	ring := make([]int32, p+k)
	copy(ring, codes)
	copy(ring[p:], ring[:k])

	return ring, RingMeta{CodeLen: l, RingLen: p, BridgeLen: k}
}

// BreakRing implements the inverse of BuildRing: it discards the bridge
// suffix and the zero padding, recovering exactly the original code
// sequence of length meta.CodeLen. The bridge is never read here — spec
// §9 is explicit that it is structural only and must not be used for
// continuity.
func BreakRing(ring []int32, meta RingMeta) []int32 {
	if len(ring) > meta.RingLen {
		ring = ring[:meta.RingLen]
	}
	if len(ring) > meta.CodeLen {
		ring = ring[:meta.CodeLen]
	}
	return ring
}

// bridgeLen computes K = min(floor(sqrt(p)), 10).
func bridgeLen(p int) int {
	k := int(math.Sqrt(float64(p)))
	if k > 10 {
		k = 10
	}
	return k
}
