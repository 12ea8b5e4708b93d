// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package helix

import "github.com/dsnet/helicode/helix/internal"

// ResetCode is the distinguished code that forces both encoder and
// decoder to reseed their dictionary to the four base entries. It is
// chosen outside the 16-bit code range (unlike the historical 65535
// choice) so that no learned code can ever alias it; see spec §9.
const ResetCode int32 = internal.MaxDict

// Encoder implements the LZW coder of spec §4.2: a classical LZW
// encoder bounded at internal.MaxDict entries, augmented with a reset
// protocol that re-synchronizes with Decoder instead of growing the
// dictionary forever.
type Encoder struct {
	dict          *internal.Dict
	minPatternLen int
	w             int32 // code of the current prefix; -1 means "empty"
}

// NewEncoder returns an Encoder. minPatternLen gates how long a matched
// prefix must be before its extension is worth learning (spec §9 open
// question (c), resolved in SPEC_FULL.md §3.2); pass 0 or 1 to learn
// every extension, matching plain LZW.
func NewEncoder(minPatternLen int) *Encoder {
	e := &Encoder{dict: internal.NewDict(), minPatternLen: minPatternLen, w: -1}
	return e
}

// Encode runs syms through the encoder's state machine and returns the
// resulting code stream, including any reset codes emitted along the
// way. The encoder is stateful: feeding in multiple slices back to back
// is equivalent to feeding in their concatenation.
func (e *Encoder) Encode(syms []Symbol) []int32 {
	codes := make([]int32, 0, len(syms))
	for _, s := range syms {
		codes = e.encodeSymbol(codes, s)
	}
	return codes
}

// Finish flushes any pending prefix at the end of input, per spec
// §4.2's step 4 ("at end of input, if w is non-empty, emit code for w").
func (e *Encoder) Finish(codes []int32) []int32 {
	if e.w >= 0 {
		codes = append(codes, e.w)
		e.w = -1
	}
	return codes
}

func (e *Encoder) encodeSymbol(codes []int32, s Symbol) []int32 {
	if e.w < 0 {
		e.w = int32(s)
		return codes
	}
	if child, ok := e.dict.Lookup(e.w, byte(s)); ok {
		e.w = child
		return codes
	}

	codes = append(codes, e.w)
	switch {
	case e.dict.Full():
		codes = append(codes, ResetCode)
		e.dict.Reset()
	case e.dict.Depth(e.w)+1 >= e.minPatternLen:
		e.dict.Insert(e.w, byte(s))
	}
	e.w = int32(s)
	return codes
}

// Decoder implements the inverse of Encoder.
type Decoder struct {
	dict          *internal.Dict
	minPatternLen int
	p             int32 // code of the previous output entry; -1 means "empty"
	scratch       []byte
}

// NewDecoder returns a Decoder. minPatternLen must match the value
// given to the corresponding Encoder, or the two dictionaries will
// drift apart.
func NewDecoder(minPatternLen int) *Decoder {
	return &Decoder{dict: internal.NewDict(), minPatternLen: minPatternLen, p: -1}
}

// Decode runs codes through the decoder's state machine and returns the
// expanded symbol sequence. On InvalidCode it returns the symbols
// successfully decoded so far alongside the error, so lenient callers
// can report a partial result (spec §9 open question (a)).
func (d *Decoder) Decode(codes []int32) ([]Symbol, error) {
	var out []Symbol
	for i, k := range codes {
		if k == ResetCode {
			if i == 0 {
				return out, &Error{Kind: FormatError, Msg: "code stream begins with the reset code"}
			}
			d.dict.Reset()
			d.p = -1
			continue
		}
		entry, err := d.decodeCode(k)
		if err != nil {
			return out, err
		}
		out = append(out, entry...)
	}
	return out, nil
}

func (d *Decoder) decodeCode(k int32) ([]Symbol, error) {
	var expanded []byte
	var firstSym byte

	switch {
	case k < 0 || k > ResetCode:
		return nil, &Error{Kind: FormatError, Msg: "code is outside the valid code range"}
	case int(k) < d.dict.Len():
		expanded = d.dict.Expand(k, nil, &d.scratch)
		firstSym = d.dict.FirstSymbol(k)
	case int(k) == d.dict.Len() && d.p >= 0:
		// The classical KwKwK edge case: the encoder emitted the code it
		// had just assigned to p+p[0] before the decoder could have
		// learned what it means. Synthesize it the same way the encoder
		// built it.
		expanded = d.dict.Expand(d.p, nil, &d.scratch)
		firstSym = d.dict.FirstSymbol(d.p)
		expanded = append(expanded, firstSym)
	default:
		return nil, &Error{Kind: InvalidCode, Msg: "code is neither a known dictionary entry nor the expected next code"}
	}

	if d.p >= 0 && !d.dict.Full() && d.dict.Depth(d.p)+1 >= d.minPatternLen {
		d.dict.Insert(d.p, firstSym)
	}
	d.p = k

	syms := make([]Symbol, len(expanded))
	for i, b := range expanded {
		syms[i] = Symbol(b)
	}
	return syms, nil
}
