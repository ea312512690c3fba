// Package source provides the input generators fed to hash adapters during a
// benchmark sweep.
package source

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

var (
	// ErrResourceUnavailable is returned when a source's backing data cannot
	// be loaded.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrExhausted is returned by Next when a source cannot produce a value.
	ErrExhausted = errors.New("source exhausted")
	// ErrUnknown is returned by New for an unregistered source id.
	ErrUnknown = errors.New("unknown source")
)

// DefaultWordList is the word list path used when none is configured.
const DefaultWordList = "wordlist.10000.txt"

// DefaultIDs is the source line-up used when none is configured.
var DefaultIDs = []string{"digits", "words", "tokens"}

// Source produces an unbounded stream of inputs. Implementations are not safe
// for concurrent use.
type Source interface {
	ID() string
	Name() string
	Next() (string, error)
}

// Resetter is implemented by sources that can rewind to their initial state.
type Resetter interface {
	Reset()
}

// Options configures source construction.
type Options struct {
	// Seed makes random sources reproducible when non-nil.
	Seed *uint64
	// WordList is the path of the word list backing the words source.
	WordList string
	// DigitLength and TokenLength override the generated string widths.
	DigitLength int
	TokenLength int
}

type constructor struct {
	name string
	new  func(opts Options) (Source, error)
}

var constructors = map[string]constructor{
	"digits": {"10-digit numeric codes", func(o Options) (Source, error) {
		return NewDigits(o.DigitLength, o.Seed), nil
	}},
	"words": {"Common English Words", func(o Options) (Source, error) {
		return NewWordsFromFile(o.WordList)
	}},
	"tokens": {"Fake UUIDs", func(o Options) (Source, error) {
		return NewTokens(o.TokenLength, o.Seed), nil
	}},
	"names": {"Fake person names", func(o Options) (Source, error) {
		return NewNames(o.Seed), nil
	}},
	"uuids": {"Random v4 UUIDs", func(o Options) (Source, error) {
		return NewUUIDs(o.Seed), nil
	}},
}

// New constructs the source registered under id.
func New(id string, opts Options) (Source, error) {
	c, ok := constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	return c.new(opts)
}

// NewAll constructs the sources for ids in order. When opts.Seed is set, the
// i-th source receives seed+i so that random sources never share a stream.
func NewAll(ids []string, opts Options) ([]Source, error) {
	sources := make([]Source, 0, len(ids))
	for i, id := range ids {
		o := opts
		if opts.Seed != nil {
			seed := *opts.Seed + uint64(i)
			o.Seed = &seed
		}
		s, err := New(id, o)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", id, err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// Info describes a registered source.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns every registered source, ordered by id.
func List() []Info {
	infos := make([]Info, 0, len(constructors))
	for id, c := range constructors {
		infos = append(infos, Info{ID: id, Name: c.name})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// IDs returns every registered source id, sorted.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

func newRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}
