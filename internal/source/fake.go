package source

import (
	"fmt"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Names generates realistic person names.
type Names struct {
	seed  *uint64
	faker *gofakeit.Faker
}

func NewNames(seed *uint64) *Names {
	n := &Names{}
	if seed != nil {
		v := *seed
		n.seed = &v
	}
	n.Reset()
	return n
}

func (n *Names) ID() string   { return "names" }
func (n *Names) Name() string { return "Fake person names" }

func (n *Names) Next() (string, error) {
	return n.faker.Name(), nil
}

func (n *Names) Reset() {
	if n.faker != nil && n.seed == nil {
		return
	}
	n.faker = gofakeit.New(fakerSeed(n.seed))
}

// fakerSeed maps a sweep seed onto gofakeit's seed space, where 0 means
// "seed from crypto/rand". The splitmix64 finalizer is a bijection, so
// distinct sweep seeds give distinct faker seeds; the single seed that
// mixes to 0 is moved to 1.
func fakerSeed(seed *uint64) int64 {
	if seed == nil {
		return 0
	}
	z := *seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		return 1
	}
	return int64(z)
}

// UUIDs generates version 4 UUID strings from the source RNG.
type UUIDs struct {
	seed *uint64
	rng  *rand.Rand
}

func NewUUIDs(seed *uint64) *UUIDs {
	u := &UUIDs{}
	if seed != nil {
		v := *seed
		u.seed = &v
	}
	u.rng = newRand(u.seed)
	return u
}

func (u *UUIDs) ID() string   { return "uuids" }
func (u *UUIDs) Name() string { return "Random v4 UUIDs" }

func (u *UUIDs) Next() (string, error) {
	id, err := uuid.NewRandomFromReader(randReader{u.rng})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	return id.String(), nil
}

func (u *UUIDs) Reset() {
	if u.seed != nil {
		u.rng = newRand(u.seed)
	}
}

type randReader struct {
	rng *rand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
