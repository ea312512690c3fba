package source

import (
	"fmt"
	"math/rand/v2"
)

const (
	DigitAlphabet = "0123456789"
	// TokenAlphabet drops the look-alike characters i, l, o, I, O.
	TokenAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ0123456789=+_"

	DefaultDigitLength = 10
	DefaultTokenLength = 44
)

// charset draws fixed-width strings whose characters are chosen
// independently and uniformly from alphabet.
type charset struct {
	alphabet string
	length   int
	seed     *uint64
	rng      *rand.Rand
	buf      []byte
}

func newCharset(alphabet string, length int, seed *uint64) charset {
	var s *uint64
	if seed != nil {
		v := *seed
		s = &v
	}
	return charset{
		alphabet: alphabet,
		length:   length,
		seed:     s,
		rng:      newRand(s),
		buf:      make([]byte, length),
	}
}

func (c *charset) Next() (string, error) {
	for i := range c.buf {
		c.buf[i] = c.alphabet[c.rng.IntN(len(c.alphabet))]
	}
	return string(c.buf), nil
}

// Reset rewinds a seeded generator to its first value. Unseeded generators
// keep their stream.
func (c *charset) Reset() {
	if c.seed != nil {
		c.rng = newRand(c.seed)
	}
}

// Length reports the width of generated strings.
func (c *charset) Length() int { return c.length }

// Digits generates random numeric codes.
type Digits struct {
	charset
}

func NewDigits(length int, seed *uint64) *Digits {
	if length <= 0 {
		length = DefaultDigitLength
	}
	return &Digits{charset: newCharset(DigitAlphabet, length, seed)}
}

func (d *Digits) ID() string   { return "digits" }
func (d *Digits) Name() string { return fmt.Sprintf("%d-digit numeric codes", d.length) }

// Tokens generates opaque identifier strings.
type Tokens struct {
	charset
}

func NewTokens(length int, seed *uint64) *Tokens {
	if length <= 0 {
		length = DefaultTokenLength
	}
	return &Tokens{charset: newCharset(TokenAlphabet, length, seed)}
}

func (t *Tokens) ID() string   { return "tokens" }
func (t *Tokens) Name() string { return "Fake UUIDs" }
