package benchmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/hashbench/internal/hashes"
	"github.com/user/hashbench/internal/source"
)

const (
	DefaultSamples = 10000
	DefaultRounds  = 1
)

// CursorPolicy decides whether a source is rewound before each pair.
type CursorPolicy string

const (
	// CursorReset rewinds every source before each pair so all hash adapters
	// see the same inputs.
	CursorReset CursorPolicy = "reset"
	// CursorShared keeps one continuing cursor per source across adapters.
	CursorShared CursorPolicy = "shared"
)

type Config struct {
	Hashes       []string     `json:"hashes"`
	Sources      []string     `json:"sources"`
	Samples      int          `json:"sample_count"`
	Rounds       int          `json:"rounds"`
	Parallel     int          `json:"parallel"`
	Seed         *uint64      `json:"seed,omitempty"`
	WordList     string       `json:"word_list,omitempty"`
	CursorPolicy CursorPolicy `json:"cursor_policy"`
	ShowProgress bool         `json:"show_progress"`
	Timeout      int          `json:"timeout"`
	Verbose      bool         `json:"verbose"`
}

// DefaultConfig returns the configuration of a flagless run.
func DefaultConfig() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if len(c.Hashes) == 0 {
		c.Hashes = append([]string(nil), hashes.DefaultIDs...)
	}
	if len(c.Sources) == 0 {
		c.Sources = append([]string(nil), source.DefaultIDs...)
	}
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	if c.Rounds == 0 {
		c.Rounds = DefaultRounds
	}
	if c.Parallel == 0 {
		c.Parallel = 1
	}
	if c.CursorPolicy == "" {
		c.CursorPolicy = CursorReset
	}
	if c.WordList == "" {
		c.WordList = source.DefaultWordList
	}
}

// Validate fills unset fields with defaults and rejects invalid values.
func (c *Config) Validate() error {
	c.applyDefaults()

	var errs []error
	if c.Samples < 1 {
		errs = append(errs, fmt.Errorf("sample count must be positive, got %d", c.Samples))
	}
	if c.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be positive, got %d", c.Rounds))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be positive, got %d", c.Parallel))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %d", c.Timeout))
	}
	switch c.CursorPolicy {
	case CursorReset, CursorShared:
	default:
		errs = append(errs, fmt.Errorf("unknown cursor policy %q", c.CursorPolicy))
	}
	return errors.Join(errs...)
}

// FailureKind classifies why a pair did not produce a measurement.
type FailureKind string

const (
	FailureExhaustion FailureKind = "exhaustion"
	FailureEncoding   FailureKind = "encoding"
	FailureCanceled   FailureKind = "canceled"
	FailureOther      FailureKind = "error"
)

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, source.ErrExhausted):
		return FailureExhaustion
	case errors.Is(err, hashes.ErrEncoding):
		return FailureEncoding
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCanceled
	default:
		return FailureOther
	}
}

// Result is the measurement of one (hash, source) pair.
type Result struct {
	HashID          string        `json:"hash_id"`
	Hash            string        `json:"hash"`
	Bits            int           `json:"bits"`
	SourceID        string        `json:"source_id"`
	Source          string        `json:"source"`
	Samples         int           `json:"samples"`
	Rounds          int           `json:"rounds"`
	Collisions      int           `json:"collisions"`
	Repeats         int           `json:"repeats"`
	Distinct        int           `json:"distinct"`
	TotalTime       time.Duration `json:"total_time"`
	AverageTime     time.Duration `json:"average_time"`
	MinTime         time.Duration `json:"min_time"`
	MaxTime         time.Duration `json:"max_time"`
	StdDev          time.Duration `json:"std_dev"`
	UserTime        time.Duration `json:"user_time"`
	SystemTime      time.Duration `json:"system_time"`
	HashesPerSecond float64       `json:"hashes_per_second"`
	NsPerHash       float64       `json:"ns_per_hash"`
	Failed          bool          `json:"failed"`
	FailureKind     FailureKind   `json:"failure_kind,omitempty"`
	Error           string        `json:"error,omitempty"`
	CompletedAt     time.Time     `json:"completed_at"`
}

func (r Result) fail(err error) Result {
	r.Failed = true
	r.FailureKind = classify(err)
	r.Error = err.Error()
	r.CompletedAt = time.Now()
	return r
}
