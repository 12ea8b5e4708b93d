// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package helix implements a lossless byte-stream codec whose
// compressed form is modeled after a circular DNA chromosome.
//
// Compression stack:
//	Bit packer                 (bit string, MSB-first)
//	Base encoder                {00,01,10,11} -> {A,C,G,T}
//	LZW coder with reset        bounded dictionary, reset code outside uint16 range
//	Ring builder                 prime-length zero padding + bridge suffix
//	Frame inserter               disjoint marker interleaved every chunk + digest
//
// Decompression runs the same five stages in reverse. The four core
// stages form one tightly coupled state machine whose invariants must
// match bit-for-bit between Compress and Decompress; see each stage's
// own file (bitbase.go, lzw.go, ring.go, frame.go) for the details.
package helix

import (
	"log"
	"os"
	"runtime"
)

// Kind classifies a helix Error, matching the four-way taxonomy spec §7
// names: malformed input, an undecodable code, a digest mismatch, or a
// nonsensical configuration.
type Kind uint8

const (
	// FormatError marks malformed input: an invalid base character, a
	// code stream that begins with the reset code, or an out-of-range
	// code.
	FormatError Kind = iota + 1
	// InvalidCode marks a code the decoder can neither find in its
	// dictionary nor treat as the classical KwKwK edge case.
	InvalidCode
	// IntegrityError marks a digest mismatch during ring decapsulation.
	IntegrityError
	// ConfigError marks a nonsensical configuration parameter.
	ConfigError
)

func (k Kind) String() string {
	switch k {
	case FormatError:
		return "format error"
	case InvalidCode:
		return "invalid code"
	case IntegrityError:
		return "integrity error"
	case ConfigError:
		return "config error"
	default:
		return "unknown error"
	}
}

// Error is the wrapper type for all errors specific to this package. It
// generalizes the teacher packages' flat `type Error string` sentinels
// into a small taxonomy, since spec §7 names four distinct kinds rather
// than one.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "helix: " + e.Kind.String() + ": " + e.Msg }

// PartialError wraps an error raised partway through a lenient-mode
// Decompress, alongside how many bytes of output were successfully
// recovered before the failure. Spec §9 open question (a) recommends
// exactly this instead of silently returning a short slice.
type PartialError struct {
	Err        error
	DecodedLen int // number of output bytes successfully recovered
}

func (e *PartialError) Error() string { return e.Err.Error() }
func (e *PartialError) Unwrap() error { return e.Err }

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

const (
	// DefaultChunkSize is the distance between framing markers used
	// when Config.ChunkSize is left at its zero value.
	DefaultChunkSize = 1000
	// DefaultMinPatternLength is the minimum matched-prefix length
	// used when Config.MinPatternLength is left at its zero value.
	DefaultMinPatternLength = 4
)

// Config configures a Codec. Its zero value is meaningful: chunk size
// and minimum pattern length fall back to their defaults, and Lenient
// is false, i.e. strict mode — matching spec §6's documented defaults
// of chunk_size=1000, min_pattern_length=4, strict=true. (The field is
// named Lenient rather than Strict so that the zero value is the safe,
// spec-documented default.)
type Config struct {
	ChunkSize        int
	MinPatternLength int
	Lenient          bool
	Verbose          bool
}

// Codec is a configured instance of the helix pipeline.
type Codec struct {
	chunkSize        int
	minPatternLength int
	strict           bool
	logger           *log.Logger
}

// New validates cfg, applies its defaults, and returns a ready Codec.
func New(cfg Config) (*Codec, error) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkSize < 0 {
		return nil, &Error{Kind: ConfigError, Msg: "chunk size must be positive"}
	}
	if cfg.MinPatternLength == 0 {
		cfg.MinPatternLength = DefaultMinPatternLength
	}
	if cfg.MinPatternLength < 0 {
		return nil, &Error{Kind: ConfigError, Msg: "min pattern length must not be negative"}
	}

	c := &Codec{
		chunkSize:        cfg.ChunkSize,
		minPatternLength: cfg.MinPatternLength,
		strict:           !cfg.Lenient,
	}
	if cfg.Verbose {
		c.logger = log.New(os.Stderr, "helix: ", log.LstdFlags)
	}
	return c, nil
}

func (c *Codec) tracef(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// Metadata carries every size and framing field the decoder needs to
// drive Decompress without inspecting the compressed stream's contents,
// per spec §3's Metadata entity and §6's serialization schema.
type Metadata struct {
	ByteLen   int    // N, the original byte count
	BitLen    int    // B, the original bit count
	BaseLen   int    // L, the base-string length
	CodeLen   int    // ℓ, the pre-ring LZW code count
	RingLen   int    // P, the prime ring length
	BridgeLen int    // K, the bridge suffix length
	ChunkSize int    // C, the chunk size used for framing
	Marker    int32  // M, the framing marker
	Digest    string // integrity digest over the ring proper
}

// Compress runs data through every stage of spec §4.5's pipeline and
// returns the framed code sequence alongside the metadata needed to
// invert it.
func (c *Codec) Compress(data []byte) (codes []int32, meta Metadata, err error) {
	defer errRecover(&err)

	bitstream, bitLen := Pack(data)
	syms := EncodeBases(bitstream)
	c.tracef("packed %d bytes into %d bits, %d bases", len(data), bitLen, len(syms))

	enc := NewEncoder(c.minPatternLength)
	lzwCodes := enc.Encode(syms)
	lzwCodes = enc.Finish(lzwCodes)
	c.tracef("LZW coder emitted %d codes", len(lzwCodes))

	ring, ringMeta := BuildRing(lzwCodes)
	digest := digestRing(ring[:ringMeta.RingLen], c.chunkSize)
	c.tracef("ring padded to %d codes (prime), bridge length %d", ringMeta.RingLen, ringMeta.BridgeLen)

	framed, marker := InsertFrames(ring, c.chunkSize)
	c.tracef("framed with marker %d, chunk size %d", marker, c.chunkSize)

	meta = Metadata{
		ByteLen:   len(data),
		BitLen:    bitLen,
		BaseLen:   len(syms),
		CodeLen:   ringMeta.CodeLen,
		RingLen:   ringMeta.RingLen,
		BridgeLen: ringMeta.BridgeLen,
		ChunkSize: c.chunkSize,
		Marker:    marker,
		Digest:    digest,
	}
	return framed, meta, nil
}

// Decompress inverts Compress. meta's size fields take precedence over
// any length the decoder might otherwise infer, per spec §4.5.
func (c *Codec) Decompress(codes []int32, meta Metadata) (data []byte, err error) {
	defer errRecover(&err)

	ring := RemoveFrames(codes, meta.Marker)

	var warnErr error
	if digest := digestRing(ring[:min(len(ring), meta.RingLen)], meta.ChunkSize); digest != meta.Digest {
		if c.strict {
			return nil, &Error{Kind: IntegrityError, Msg: "digest mismatch"}
		}
		warnErr = &Error{Kind: IntegrityError, Msg: "digest mismatch"}
		c.tracef("integrity warning: digest mismatch, proceeding in lenient mode")
	}

	lzwCodes := BreakRing(ring, RingMeta{CodeLen: meta.CodeLen, RingLen: meta.RingLen, BridgeLen: meta.BridgeLen})

	dec := NewDecoder(c.minPatternLength)
	syms, decErr := dec.Decode(lzwCodes)
	if decErr != nil {
		if c.strict {
			return nil, decErr
		}
		warnErr = decErr
		c.tracef("lenient recovery: %v, truncating at %d decoded symbols", decErr, len(syms))
	}

	bitstream := DecodeBases(syms)
	outBitLen := meta.BitLen
	if decErr != nil {
		// syms (and so bitstream) stops short of the full stream; unpacking
		// to the full meta.BitLen would zero-pad over the gap and make
		// DecodedLen always report the full length. Cap at what was
		// actually recovered instead.
		outBitLen = min(len(bitstream), meta.BitLen)
	}
	out := Unpack(bitstream, outBitLen)

	if warnErr != nil {
		return out, &PartialError{Err: warnErr, DecodedLen: len(out)}
	}
	return out, nil
}

// VerifyDigest reports whether digest matches the integrity digest of
// ring (the first meta.RingLen elements of a decapsulated, de-marked
// stream). It lets a caller who persists (codes, metadata) separately
// check integrity without running a full Decompress, the way
// bzip2's ReverseSearch in the meta package exposes a standalone check
// rather than only offering it bundled inside a full decode.
func VerifyDigest(ring []int32, ringLen int, chunkSize int, digest string) bool {
	return digestRing(ring[:min(len(ring), ringLen)], chunkSize) == digest
}
