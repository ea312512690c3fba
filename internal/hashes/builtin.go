package hashes

import (
	"hash/fnv"
	"strconv"
)

// Builtin is the baseline general-purpose hash: the standard library's
// FNV-1a 64, rendered as a signed decimal string and then base64 encoded.
// Unlike hash/maphash it is stable across processes.
type Builtin struct{}

func (b *Builtin) ID() string   { return "builtin" }
func (b *Builtin) Name() string { return "Builtin FNV hash" }
func (b *Builtin) Bits() int    { return 64 }

func (b *Builtin) Digest(input []byte) (string, error) {
	h := fnv.New64a()
	h.Write(input)
	return encode([]byte(strconv.FormatInt(int64(h.Sum64()), 10)))
}
