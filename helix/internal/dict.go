// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package internal

// MaxDict is the maximum number of live entries a Dict may hold before
// the caller must reset it. It matches the 65536-entry bound from the
// LZW coder's reset protocol; the reset code itself lies outside this
// range (it is not an entry at all).
const MaxDict = 1 << 16

// NumBaseSyms is the size of the four-symbol nucleotide alphabet. The
// four base codes 0..3 are the permanent root entries of every Dict.
const NumBaseSyms = 4

// Dict is the shared trie backing both the LZW encoder's "prefix + symbol
// -> code" lookup and the decoder's "code -> prefix + symbol" expansion.
// Per entry it stores only the parent code and the trailing symbol that
// extends it, never a materialized string; Expand walks the parent chain
// on demand. This keeps memory at O(MaxDict) regardless of how long the
// matched strings get.
type Dict struct {
	parent   []int32 // parent[code] is the code of the prefix, or -1 for a base entry
	symbol   []byte  // symbol[code] is the symbol appended to parent[code]
	first    []byte  // first[code] is the first symbol of the entry's expansion, cached
	depth    []int   // depth[code] is the length of the entry's expansion, cached
	children [][NumBaseSyms]int32 // children[code][sym] is the code for code+sym, or -1

	n int // number of live entries; next entry is assigned code n
}

// NewDict returns a Dict seeded with the four base entries.
func NewDict() *Dict {
	d := &Dict{
		parent:   make([]int32, NumBaseSyms, 256),
		symbol:   make([]byte, NumBaseSyms, 256),
		first:    make([]byte, NumBaseSyms, 256),
		depth:    make([]int, NumBaseSyms, 256),
		children: make([][NumBaseSyms]int32, NumBaseSyms, 256),
	}
	d.Reset()
	return d
}

// Reset discards all learned entries and reseeds the four base entries,
// exactly mirroring what both encoder and decoder must do when they
// observe (or emit) the reset code.
func (d *Dict) Reset() {
	d.parent = d.parent[:NumBaseSyms]
	d.symbol = d.symbol[:NumBaseSyms]
	d.first = d.first[:NumBaseSyms]
	d.depth = d.depth[:NumBaseSyms]
	d.children = d.children[:NumBaseSyms]
	for s := byte(0); s < NumBaseSyms; s++ {
		d.parent[s] = -1
		d.symbol[s] = s
		d.first[s] = s
		d.depth[s] = 1
		d.children[s] = [NumBaseSyms]int32{-1, -1, -1, -1}
	}
	d.n = NumBaseSyms
}

// Len reports the number of live entries (the encoder/decoder's next_code
// counter).
func (d *Dict) Len() int { return d.n }

// Full reports whether the dictionary has reached MaxDict entries and
// must be reset before learning anything else.
func (d *Dict) Full() bool { return d.n >= MaxDict }

// Lookup returns the code for the entry formed by extending code with
// sym, if that entry already exists.
func (d *Dict) Lookup(code int32, sym byte) (child int32, ok bool) {
	c := d.children[code][sym]
	return c, c >= 0
}

// Insert adds a new entry extending the existing entry code with sym and
// returns its code. It panics if the dictionary is Full; callers must
// reset first.
func (d *Dict) Insert(code int32, sym byte) int32 {
	if d.Full() {
		panic("helix/internal: dictionary insert while full")
	}
	newCode := int32(d.n)
	d.parent = append(d.parent, code)
	d.symbol = append(d.symbol, sym)
	d.first = append(d.first, d.first[code])
	d.depth = append(d.depth, d.depth[code]+1)
	d.children = append(d.children, [NumBaseSyms]int32{-1, -1, -1, -1})
	d.children[code][sym] = newCode
	d.n++
	return newCode
}

// FirstSymbol returns the first symbol of the entry's expansion in O(1).
func (d *Dict) FirstSymbol(code int32) byte { return d.first[code] }

// Depth returns the length of the entry's expansion in O(1). This is
// what both the encoder and the decoder consult to evaluate a
// minimum-pattern-length threshold without tracking a parallel counter
// that could drift out of sync with the dictionary itself.
func (d *Dict) Depth(code int32) int { return d.depth[code] }

// Expand appends the base-symbol expansion of code to buf and returns
// the result. The chain is walked parent-first into a scratch reversal
// buffer so the caller's buf is only ever appended to, not rewritten.
func (d *Dict) Expand(code int32, buf []byte, scratch *[]byte) []byte {
	s := (*scratch)[:0]
	for code >= 0 {
		s = append(s, d.symbol[code])
		code = d.parent[code]
	}
	*scratch = s
	for i := len(s) - 1; i >= 0; i-- {
		buf = append(buf, s[i])
	}
	return buf
}
