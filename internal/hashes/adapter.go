// Package hashes wraps hash algorithms behind a uniform digest contract so the
// benchmark runner can compare them by name. Every adapter renders its raw
// digest as standard base64, which makes keys printable and directly usable as
// map keys regardless of the underlying output width.
package hashes

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEncoding is returned when a digest cannot be rendered as a key.
	ErrEncoding = errors.New("digest encoding failure")
	// ErrUnknown is returned by New for an unregistered adapter id.
	ErrUnknown = errors.New("unknown hash")
)

// Adapter is a named hash algorithm. Implementations are stateless and safe
// for concurrent use.
type Adapter interface {
	ID() string
	Name() string
	Bits() int
	Digest(input []byte) (string, error)
}

// DefaultIDs is the adapter line-up used when none is configured.
var DefaultIDs = []string{
	"sha256",
	"md5",
	"murmur1",
	"murmur2",
	"murmur2a",
	"murmur64a",
	"murmur64b",
	"murmur3_32",
	"murmur3_128_x86",
	"murmur3_128_x64",
	"builtin",
}

var constructors = map[string]func() Adapter{
	"sha256":          func() Adapter { return &SHA256{} },
	"sha256simd":      func() Adapter { return &SHA256SIMD{} },
	"md5":             func() Adapter { return &MD5{} },
	"sha3_256":        func() Adapter { return &SHA3{} },
	"blake2b256":      func() Adapter { return &Blake2b{} },
	"blake3":          func() Adapter { return &Blake3{} },
	"murmur1":         func() Adapter { return &Murmur1{} },
	"murmur2":         func() Adapter { return &Murmur2{} },
	"murmur2a":        func() Adapter { return &Murmur2A{} },
	"murmur64a":       func() Adapter { return &Murmur64A{} },
	"murmur64b":       func() Adapter { return &Murmur64B{} },
	"murmur3_32":      func() Adapter { return &Murmur3{} },
	"murmur3_128_x86": func() Adapter { return &Murmur3x86{} },
	"murmur3_128_x64": func() Adapter { return &Murmur3x64{} },
	"xxhash64":        func() Adapter { return &XXHash64{} },
	"xxhash32":        func() Adapter { return &XXHash32{} },
	"xxh3_64":         func() Adapter { return &XXH3{} },
	"xxh3_128":        func() Adapter { return &XXH128{} },
	"highwayhash64":   func() Adapter { return &HighwayHash64{} },
	"siphash":         func() Adapter { return &SipHash{} },
	"crc32c":          func() Adapter { return &CRC32C{} },
	"builtin":         func() Adapter { return &Builtin{} },
}

// New returns the adapter registered under id.
func New(id string) (Adapter, error) {
	ctor, ok := constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	return ctor(), nil
}

// NewAll resolves ids in order.
func NewAll(ids []string) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		a, err := New(id)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// IDs returns every registered adapter id, sorted.
func IDs() []string {
	ids := make([]string, 0, len(constructors))
	for id := range constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns one instance of every registered adapter, ordered by id.
func All() []Adapter {
	ids := IDs()
	adapters := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		adapters = append(adapters, constructors[id]())
	}
	return adapters
}

func encode(sum []byte) (string, error) {
	if len(sum) == 0 {
		return "", ErrEncoding
	}
	return base64.StdEncoding.EncodeToString(sum), nil
}

func encode32(h uint32) (string, error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], h)
	return encode(b[:])
}

func encode64(h uint64) (string, error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h)
	return encode(b[:])
}

func encode128(hi, lo uint64) (string, error) {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], hi)
	binary.BigEndian.PutUint64(b[8:], lo)
	return encode(b[:])
}
