package hashes

import (
	"hash/crc32"

	oneofone "github.com/OneOfOne/xxhash"
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/minio/highwayhash"
	"github.com/zeebo/xxh3"
)

// highwayKey is the fixed 256-bit key used by HighwayHash64. Keys must stay
// constant across runs for digests to be comparable.
var highwayKey = []byte("hashbench-highwayhash-fixed-key!")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

type XXHash64 struct{}

func (x *XXHash64) ID() string   { return "xxhash64" }
func (x *XXHash64) Name() string { return "xxHash 64 bit hash" }
func (x *XXHash64) Bits() int    { return 64 }

func (x *XXHash64) Digest(input []byte) (string, error) {
	return encode64(xxhash.Sum64(input))
}

type XXHash32 struct{}

func (x *XXHash32) ID() string   { return "xxhash32" }
func (x *XXHash32) Name() string { return "xxHash 32 bit hash" }
func (x *XXHash32) Bits() int    { return 32 }

func (x *XXHash32) Digest(input []byte) (string, error) {
	return encode32(oneofone.Checksum32(input))
}

type XXH3 struct{}

func (x *XXH3) ID() string   { return "xxh3_64" }
func (x *XXH3) Name() string { return "XXH3 64 bit hash" }
func (x *XXH3) Bits() int    { return 64 }

func (x *XXH3) Digest(input []byte) (string, error) {
	return encode64(xxh3.Hash(input))
}

type XXH128 struct{}

func (x *XXH128) ID() string   { return "xxh3_128" }
func (x *XXH128) Name() string { return "XXH3 128 bit hash" }
func (x *XXH128) Bits() int    { return 128 }

func (x *XXH128) Digest(input []byte) (string, error) {
	h := xxh3.Hash128(input)
	return encode128(h.Hi, h.Lo)
}

type HighwayHash64 struct{}

func (h *HighwayHash64) ID() string   { return "highwayhash64" }
func (h *HighwayHash64) Name() string { return "HighwayHash 64 bit hash" }
func (h *HighwayHash64) Bits() int    { return 64 }

func (h *HighwayHash64) Digest(input []byte) (string, error) {
	return encode64(highwayhash.Sum64(input, highwayKey))
}

// SipHash is SipHash-2-4 with an all-zero key.
type SipHash struct{}

func (s *SipHash) ID() string   { return "siphash" }
func (s *SipHash) Name() string { return "SipHash-2-4 hash" }
func (s *SipHash) Bits() int    { return 64 }

func (s *SipHash) Digest(input []byte) (string, error) {
	return encode64(siphash.Hash(0, 0, input))
}

type CRC32C struct{}

func (c *CRC32C) ID() string   { return "crc32c" }
func (c *CRC32C) Name() string { return "CRC32 (Castagnoli) checksum" }
func (c *CRC32C) Bits() int    { return 32 }

func (c *CRC32C) Digest(input []byte) (string, error) {
	return encode32(crc32.Checksum(input, castagnoli))
}
