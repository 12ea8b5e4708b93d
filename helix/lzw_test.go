// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package helix

import (
	"testing"
)

func lzwRoundTrip(t *testing.T, s string, minPatternLen int) []int32 {
	t.Helper()
	syms, _, err := ParseBaseString(s, true)
	if err != nil {
		t.Fatalf("ParseBaseString(%q) error: %v", s, err)
	}

	enc := NewEncoder(minPatternLen)
	codes := enc.Finish(enc.Encode(syms))

	dec := NewDecoder(minPatternLen)
	got, err := dec.Decode(codes)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if gotStr := FormatBaseString(got); gotStr != s {
		t.Errorf("round trip mismatch: got %q, want %q", gotStr, s)
	}
	return codes
}

func TestLZWRoundTrip(t *testing.T) {
	var vectors = []string{
		"",
		"A",
		"AAAA",
		"ACGT",
		"ATCGATCGATCGATCGAAAAAATCGATCGATCG",
		"ACACACA", // classical KwKwK-triggering pattern, spelled in bases
	}
	for _, s := range vectors {
		lzwRoundTrip(t, s, 0)
		lzwRoundTrip(t, s, DefaultMinPatternLength)
	}
}

// TestLZWKwKwK exercises the decoder's "k == next_code" edge case
// directly, the same pattern that the classical LZW literature uses
// ("ABABAB...") but spelled in {A,C,G,T} per spec §8 point 6.
func TestLZWKwKwK(t *testing.T) {
	lzwRoundTrip(t, "ACACACA", 0)
	lzwRoundTrip(t, "ACACACACACACACA", 0)
}

func TestLZWFirstCodeResetRejected(t *testing.T) {
	dec := NewDecoder(DefaultMinPatternLength)
	_, err := dec.Decode([]int32{ResetCode, 0, 1})
	if err == nil {
		t.Fatal("Decode with leading reset code: got nil error, want FormatError")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != FormatError {
		t.Fatalf("Decode with leading reset code error = %v, want FormatError", err)
	}
}

func TestLZWInvalidCode(t *testing.T) {
	dec := NewDecoder(DefaultMinPatternLength)
	_, err := dec.Decode([]int32{0, 1, 9999})
	if err == nil {
		t.Fatal("Decode with unassigned code: got nil error, want InvalidCode")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != InvalidCode {
		t.Fatalf("Decode with unassigned code error = %v, want InvalidCode", err)
	}
}

func TestLZWResetCorrectness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping reset-forcing test in short mode")
	}

	// A long run of a single repeated symbol grows the dictionary by
	// doubling the matched length at each new entry, so it reaches the
	// 65536-entry cap (and forces at least one reset) well within a
	// modest input size.
	const n = 1 << 20 // 1 Mi symbols
	syms := make([]Symbol, n)
	for i := range syms {
		syms[i] = SymA
	}

	enc := NewEncoder(0)
	codes := enc.Finish(enc.Encode(syms))

	var sawReset bool
	for _, c := range codes {
		if c == ResetCode {
			sawReset = true
			break
		}
	}
	if !sawReset {
		t.Fatal("expected at least one reset code for a long repetitive run")
	}

	dec := NewDecoder(0)
	got, err := dec.Decode(codes)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(got) != n {
		t.Fatalf("decoded length = %d, want %d", len(got), n)
	}
	for i, s := range got {
		if s != SymA {
			t.Fatalf("decoded[%d] = %v, want SymA", i, s)
		}
	}
}
