package hashes

import (
	"encoding/binary"

	"github.com/twmb/murmur3"
	"github.com/user/hashbench/internal/murmur"
)

// All Murmur adapters use seed 0. Integer digests are serialized big-endian.

type Murmur1 struct{}

func (m *Murmur1) ID() string   { return "murmur1" }
func (m *Murmur1) Name() string { return "Murmur1 hash" }
func (m *Murmur1) Bits() int    { return 32 }

func (m *Murmur1) Digest(input []byte) (string, error) {
	return encode32(murmur.Sum1(input, 0))
}

type Murmur2 struct{}

func (m *Murmur2) ID() string   { return "murmur2" }
func (m *Murmur2) Name() string { return "Murmur2 hash" }
func (m *Murmur2) Bits() int    { return 32 }

func (m *Murmur2) Digest(input []byte) (string, error) {
	return encode32(murmur.Sum2(input, 0))
}

type Murmur2A struct{}

func (m *Murmur2A) ID() string   { return "murmur2a" }
func (m *Murmur2A) Name() string { return "Murmur2A hash" }
func (m *Murmur2A) Bits() int    { return 32 }

func (m *Murmur2A) Digest(input []byte) (string, error) {
	return encode32(murmur.Sum2A(input, 0))
}

type Murmur64A struct{}

func (m *Murmur64A) ID() string   { return "murmur64a" }
func (m *Murmur64A) Name() string { return "Murmur64A hash" }
func (m *Murmur64A) Bits() int    { return 64 }

func (m *Murmur64A) Digest(input []byte) (string, error) {
	return encode64(murmur.Sum64A(input, 0))
}

type Murmur64B struct{}

func (m *Murmur64B) ID() string   { return "murmur64b" }
func (m *Murmur64B) Name() string { return "Murmur64B hash" }
func (m *Murmur64B) Bits() int    { return 64 }

func (m *Murmur64B) Digest(input []byte) (string, error) {
	return encode64(murmur.Sum64B(input, 0))
}

type Murmur3 struct{}

func (m *Murmur3) ID() string   { return "murmur3_32" }
func (m *Murmur3) Name() string { return "Murmur3 32 bit hash" }
func (m *Murmur3) Bits() int    { return 32 }

func (m *Murmur3) Digest(input []byte) (string, error) {
	return encode32(murmur3.Sum32(input))
}

// Murmur3x86 is the 128-bit MurmurHash3 optimized for 32-bit platforms.
// Its output differs from the x64 variant for the same input.
type Murmur3x86 struct{}

func (m *Murmur3x86) ID() string   { return "murmur3_128_x86" }
func (m *Murmur3x86) Name() string { return "Murmur3 128 bit (32 bit platform) hash" }
func (m *Murmur3x86) Bits() int    { return 128 }

func (m *Murmur3x86) Digest(input []byte) (string, error) {
	h1, h2, h3, h4 := murmur.Sum128x86(input, 0)
	var b [16]byte
	binary.BigEndian.PutUint32(b[0:], h1)
	binary.BigEndian.PutUint32(b[4:], h2)
	binary.BigEndian.PutUint32(b[8:], h3)
	binary.BigEndian.PutUint32(b[12:], h4)
	return encode(b[:])
}

type Murmur3x64 struct{}

func (m *Murmur3x64) ID() string   { return "murmur3_128_x64" }
func (m *Murmur3x64) Name() string { return "Murmur3 128 bit (64 bit platform) hash" }
func (m *Murmur3x64) Bits() int    { return 128 }

func (m *Murmur3x64) Digest(input []byte) (string, error) {
	h1, h2 := murmur3.Sum128(input)
	return encode128(h1, h2)
}
