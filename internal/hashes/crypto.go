package hashes

import (
	"crypto/md5"
	"crypto/sha256"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

type SHA256 struct{}

func (s *SHA256) ID() string   { return "sha256" }
func (s *SHA256) Name() string { return "SHA 256 hash" }
func (s *SHA256) Bits() int    { return 256 }

func (s *SHA256) Digest(input []byte) (string, error) {
	sum := sha256.Sum256(input)
	return encode(sum[:])
}

// SHA256SIMD is SHA-256 through the AVX2/SHA-NI accelerated implementation.
type SHA256SIMD struct{}

func (s *SHA256SIMD) ID() string   { return "sha256simd" }
func (s *SHA256SIMD) Name() string { return "SHA 256 (SIMD) hash" }
func (s *SHA256SIMD) Bits() int    { return 256 }

func (s *SHA256SIMD) Digest(input []byte) (string, error) {
	sum := sha256simd.Sum256(input)
	return encode(sum[:])
}

type MD5 struct{}

func (m *MD5) ID() string   { return "md5" }
func (m *MD5) Name() string { return "MD5 hash" }
func (m *MD5) Bits() int    { return 128 }

func (m *MD5) Digest(input []byte) (string, error) {
	sum := md5.Sum(input)
	return encode(sum[:])
}

type SHA3 struct{}

func (s *SHA3) ID() string   { return "sha3_256" }
func (s *SHA3) Name() string { return "SHA3 256 hash" }
func (s *SHA3) Bits() int    { return 256 }

func (s *SHA3) Digest(input []byte) (string, error) {
	sum := sha3.Sum256(input)
	return encode(sum[:])
}

type Blake2b struct{}

func (b *Blake2b) ID() string   { return "blake2b256" }
func (b *Blake2b) Name() string { return "BLAKE2b 256 hash" }
func (b *Blake2b) Bits() int    { return 256 }

func (b *Blake2b) Digest(input []byte) (string, error) {
	sum := blake2b.Sum256(input)
	return encode(sum[:])
}

type Blake3 struct{}

func (b *Blake3) ID() string   { return "blake3" }
func (b *Blake3) Name() string { return "BLAKE3 hash" }
func (b *Blake3) Bits() int    { return 256 }

func (b *Blake3) Digest(input []byte) (string, error) {
	sum := blake3.Sum256(input)
	return encode(sum[:])
}
