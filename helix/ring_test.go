// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package helix

import (
	"testing"

	"github.com/dsnet/helicode/helix/internal"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBuildBreakRing(t *testing.T) {
	var vectors = [][]int32{
		nil,
		{0},
		{0, 1},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	for i, codes := range vectors {
		ring, meta := BuildRing(codes)
		if !internal.IsPrime(meta.RingLen) {
			t.Errorf("test %d: RingLen = %d is not prime", i, meta.RingLen)
		}
		if meta.RingLen < len(codes) {
			t.Errorf("test %d: RingLen = %d < input length %d", i, meta.RingLen, len(codes))
		}
		if len(ring) != meta.RingLen+meta.BridgeLen {
			t.Errorf("test %d: len(ring) = %d, want %d", i, len(ring), meta.RingLen+meta.BridgeLen)
		}

		// The bridge suffix must repeat the ring's own leading codes.
		for j := 0; j < meta.BridgeLen; j++ {
			if ring[meta.RingLen+j] != ring[j] {
				t.Errorf("test %d: bridge[%d] = %d, want ring[%d] = %d", i, j, ring[meta.RingLen+j], j, ring[j])
			}
		}

		got := BreakRing(ring, meta)
		if diff := cmp.Diff(codes, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("test %d: BreakRing(BuildRing(x)) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBridgeLen(t *testing.T) {
	var vectors = []struct {
		p    int
		want int
	}{
		{p: 2, want: 1},
		{p: 3, want: 1},
		{p: 5, want: 2},
		{p: 101, want: 10},
		{p: 10007, want: 10}, // sqrt(10007) ~= 100, capped at 10
	}
	for _, v := range vectors {
		if got := bridgeLen(v.p); got != v.want {
			t.Errorf("bridgeLen(%d) = %d, want %d", v.p, got, v.want)
		}
	}
}

func TestBuildRingShortInputs(t *testing.T) {
	// Spec §9 edge case: ℓ <= 2 must still produce a valid, prime-length
	// ring rather than degenerating.
	for _, codes := range [][]int32{nil, {7}} {
		_, meta := BuildRing(codes)
		if meta.RingLen < 2 {
			t.Errorf("BuildRing(%v) RingLen = %d, want >= 2", codes, meta.RingLen)
		}
	}
}
