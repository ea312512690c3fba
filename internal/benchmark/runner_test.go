package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/user/hashbench/internal/hashes"
	"github.com/user/hashbench/internal/source"
)

// sequenceSource yields "<prefix>-0", "<prefix>-1", ... and counts calls.
type sequenceSource struct {
	prefix string
	next   int
	calls  int
}

func (s *sequenceSource) ID() string   { return "seq-" + s.prefix }
func (s *sequenceSource) Name() string { return "Sequence " + s.prefix }
func (s *sequenceSource) Reset()       { s.next = 0 }

func (s *sequenceSource) Next() (string, error) {
	s.calls++
	v := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return v, nil
}

// drySource runs out after limit values.
type drySource struct {
	limit int
	n     int
}

func (d *drySource) ID() string   { return "dry" }
func (d *drySource) Name() string { return "Dry well" }

func (d *drySource) Next() (string, error) {
	if d.n >= d.limit {
		return "", source.ErrExhausted
	}
	d.n++
	return fmt.Sprintf("drop-%d", d.n), nil
}

// constantHash maps every input to the same key.
type constantHash struct{}

func (c *constantHash) ID() string   { return "constant" }
func (c *constantHash) Name() string { return "Constant hash" }
func (c *constantHash) Bits() int    { return 8 }

func (c *constantHash) Digest(input []byte) (string, error) { return "AA==", nil }

// pickyHash refuses to encode one specific input.
type pickyHash struct {
	reject string
}

func (p *pickyHash) ID() string   { return "picky" }
func (p *pickyHash) Name() string { return "Picky hash" }
func (p *pickyHash) Bits() int    { return 32 }

func (p *pickyHash) Digest(input []byte) (string, error) {
	if string(input) == p.reject {
		return "", hashes.ErrEncoding
	}
	return string(input), nil
}

// recordingHash remembers every input it digests.
type recordingHash struct {
	id     string
	mu     sync.Mutex
	inputs []string
}

func (r *recordingHash) ID() string   { return r.id }
func (r *recordingHash) Name() string { return "Recording " + r.id }
func (r *recordingHash) Bits() int    { return 0 }

func (r *recordingHash) Digest(input []byte) (string, error) {
	r.mu.Lock()
	r.inputs = append(r.inputs, string(input))
	r.mu.Unlock()
	return string(input), nil
}

func mustAdapters(t *testing.T, ids ...string) []hashes.Adapter {
	t.Helper()
	adapters, err := hashes.NewAll(ids)
	if err != nil {
		t.Fatalf("Failed to build adapters: %v", err)
	}
	return adapters
}

func mustWords(t *testing.T, n int) *source.Words {
	t.Helper()
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	w, err := source.NewWords(words)
	if err != nil {
		t.Fatalf("Failed to build word source: %v", err)
	}
	return w
}

func TestCalculateStatistics(t *testing.T) {
	timings := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		150 * time.Millisecond,
		180 * time.Millisecond,
		170 * time.Millisecond,
	}

	avg := calculateAverage(timings)
	expectedAvg := 160 * time.Millisecond
	if avg != expectedAvg {
		t.Errorf("Expected average %v, got %v", expectedAvg, avg)
	}

	min := calculateMin(timings)
	if min != 100*time.Millisecond {
		t.Errorf("Expected min %v, got %v", 100*time.Millisecond, min)
	}

	max := calculateMax(timings)
	if max != 200*time.Millisecond {
		t.Errorf("Expected max %v, got %v", 200*time.Millisecond, max)
	}

	stdDev := calculateStdDev(timings, avg)
	// Allow for some floating point error
	if stdDev < 35*time.Millisecond || stdDev > 40*time.Millisecond {
		t.Errorf("Expected stdDev around 37ms, got %v", stdDev)
	}

	if calculateAverage(nil) != 0 || calculateStdDev(timings[:1], avg) != 0 {
		t.Error("Expected zero statistics for empty or single timings")
	}
}

func TestRunnerCrossProduct(t *testing.T) {
	seed := uint64(11)
	adapters := mustAdapters(t, "md5", "murmur2", "builtin")
	sources := []source.Source{
		source.NewDigits(10, &seed),
		mustWords(t, 150),
	}

	runner := NewRunner(Config{Samples: 200}, adapters, sources)
	results, err := runner.Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}

	if len(results) != len(adapters)*len(sources) {
		t.Fatalf("Expected %d results, got %d", len(adapters)*len(sources), len(results))
	}

	for i, result := range results {
		wantHash := adapters[i/len(sources)].ID()
		wantSource := sources[i%len(sources)].ID()
		if result.HashID != wantHash || result.SourceID != wantSource {
			t.Errorf("result %d is %s/%s, want %s/%s", i, result.HashID, result.SourceID, wantHash, wantSource)
		}
		if result.Failed {
			t.Errorf("result %d failed: %s", i, result.Error)
		}
		if result.Samples != 200 {
			t.Errorf("Expected 200 samples, got %d", result.Samples)
		}
		if result.Collisions < 0 || result.Collisions > result.Samples-1 {
			t.Errorf("collisions %d out of bounds for %d samples", result.Collisions, result.Samples)
		}
		if got := result.Distinct + result.Repeats + result.Collisions; got != result.Samples {
			t.Errorf("distinct+repeats+collisions = %d, want %d", got, result.Samples)
		}
		if result.TotalTime <= 0 {
			t.Errorf("Expected positive elapsed time, got %v", result.TotalTime)
		}
	}

	// The word list wraps after 150 words, so 50 of 200 samples are repeats.
	for _, result := range results {
		if result.SourceID == "words" && result.Repeats != 50 {
			t.Errorf("%s: expected 50 repeats over a wrapped word list, got %d", result.HashID, result.Repeats)
		}
	}
}

func TestRunnerDrawsFreshSamplesPerPair(t *testing.T) {
	seq := &sequenceSource{prefix: "a"}
	adapters := mustAdapters(t, "md5", "sha256", "murmur64a", "xxhash64")

	results, err := NewRunner(Config{Samples: 25}, adapters, []source.Source{seq}).Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	if seq.calls != 4*25 {
		t.Errorf("Expected %d draws, got %d", 4*25, seq.calls)
	}
}

func TestRunnerCursorPolicy(t *testing.T) {
	tests := []struct {
		policy     CursorPolicy
		secondFrom int
	}{
		{CursorReset, 0},
		{CursorShared, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			first := &recordingHash{id: "first"}
			second := &recordingHash{id: "second"}
			words := mustWords(t, 1000)

			config := Config{Samples: 10, CursorPolicy: tt.policy}
			_, err := NewRunner(config, []hashes.Adapter{first, second}, []source.Source{words}).Run()
			if err != nil {
				t.Fatalf("Runner failed: %v", err)
			}

			for i := 0; i < 10; i++ {
				if want := fmt.Sprintf("word%d", i); first.inputs[i] != want {
					t.Errorf("first adapter input %d = %s, want %s", i, first.inputs[i], want)
				}
				if want := fmt.Sprintf("word%d", tt.secondFrom+i); second.inputs[i] != want {
					t.Errorf("second adapter input %d = %s, want %s", i, second.inputs[i], want)
				}
			}
		})
	}
}

func TestRunnerConstantHash(t *testing.T) {
	words := mustWords(t, 50)
	results, err := NewRunner(Config{Samples: 120}, []hashes.Adapter{&constantHash{}}, []source.Source{words}).Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}

	r := results[0]
	// 49 + 49 + 19 collisions against word0, which itself repeats twice.
	if r.Collisions != 117 {
		t.Errorf("Expected 117 collisions, got %d", r.Collisions)
	}
	if r.Repeats != 2 {
		t.Errorf("Expected 2 repeats, got %d", r.Repeats)
	}
	if r.Distinct != 1 {
		t.Errorf("Expected 1 distinct key, got %d", r.Distinct)
	}
}

func TestRunnerFailureIsolation(t *testing.T) {
	seed := uint64(3)
	adapters := []hashes.Adapter{&pickyHash{reject: "word3"}, mustAdapters(t, "md5")[0]}
	sources := []source.Source{
		mustWords(t, 10),
		&drySource{limit: 5},
		source.NewDigits(10, &seed),
	}

	results, err := NewRunner(Config{Samples: 20}, adapters, sources).Run()
	if err != nil {
		t.Fatalf("Sweep should not fail on pair errors: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("Expected 6 results, got %d", len(results))
	}

	want := []struct {
		failed bool
		kind   FailureKind
	}{
		{true, FailureEncoding},   // picky x words
		{true, FailureExhaustion}, // picky x dry
		{false, ""},               // picky x digits
		{false, ""},               // md5 x words
		{true, FailureExhaustion}, // md5 x dry
		{false, ""},               // md5 x digits
	}

	for i, w := range want {
		if results[i].Failed != w.failed || results[i].FailureKind != w.kind {
			t.Errorf("result %d (%s/%s): failed=%v kind=%q, want failed=%v kind=%q",
				i, results[i].HashID, results[i].SourceID, results[i].Failed, results[i].FailureKind, w.failed, w.kind)
		}
	}
	if !strings.Contains(results[0].Error, "word3") {
		t.Errorf("Expected error to name the offending sample, got %q", results[0].Error)
	}
}

func TestRunnerParallelKeepsOrder(t *testing.T) {
	seed := uint64(5)
	adapters := mustAdapters(t, "sha256", "md5", "murmur1", "murmur3_32")
	sources := []source.Source{
		source.NewDigits(10, &seed),
		source.NewTokens(44, &seed),
		mustWords(t, 300),
	}

	results, err := NewRunner(Config{Samples: 300, Parallel: 4}, adapters, sources).Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}

	for i, result := range results {
		if result.HashID != adapters[i/3].ID() || result.SourceID != sources[i%3].ID() {
			t.Errorf("result %d out of order: %s/%s", i, result.HashID, result.SourceID)
		}
		if result.Failed {
			t.Errorf("result %d failed: %s", i, result.Error)
		}
	}
}

func TestRunnerSeededRunsAgree(t *testing.T) {
	run := func() []Result {
		seed := uint64(2024)
		sources := []source.Source{source.NewDigits(3, &seed)}
		results, err := NewRunner(Config{Samples: 2000}, mustAdapters(t, "murmur2", "crc32c"), sources).Run()
		if err != nil {
			t.Fatalf("Runner failed: %v", err)
		}
		return results
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Repeats != b[i].Repeats || a[i].Collisions != b[i].Collisions {
			t.Errorf("result %d differs between seeded runs: %+v vs %+v", i, a[i], b[i])
		}
		// Only 1000 distinct 3-digit codes exist.
		if a[i].Repeats < 1000 {
			t.Errorf("Expected at least 1000 repeats, got %d", a[i].Repeats)
		}
	}
}

func TestRunnerRounds(t *testing.T) {
	results, err := NewRunner(Config{Samples: 500, Rounds: 3}, mustAdapters(t, "sha256"), []source.Source{mustWords(t, 500)}).Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}

	r := results[0]
	if r.Rounds != 3 {
		t.Errorf("Expected 3 rounds, got %d", r.Rounds)
	}
	if r.MinTime > r.AverageTime || r.AverageTime > r.MaxTime {
		t.Errorf("Expected min <= avg <= max, got %v %v %v", r.MinTime, r.AverageTime, r.MaxTime)
	}
	if r.TotalTime < r.MaxTime {
		t.Errorf("Total time %v shorter than slowest round %v", r.TotalTime, r.MaxTime)
	}
	if r.HashesPerSecond <= 0 || r.NsPerHash <= 0 {
		t.Errorf("Expected positive throughput, got %f hashes/s, %f ns/hash", r.HashesPerSecond, r.NsPerHash)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewRunner(Config{Samples: 10}, mustAdapters(t, "md5", "sha256"), []source.Source{mustWords(t, 10)}).RunContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Failed || r.FailureKind != FailureCanceled {
			t.Errorf("Expected canceled result, got failed=%v kind=%q", r.Failed, r.FailureKind)
		}
	}
}

func TestRunnerProgressChannel(t *testing.T) {
	runner := NewRunner(Config{Samples: 10}, mustAdapters(t, "md5", "sha256", "murmur2"), []source.Source{mustWords(t, 10)})

	progress := make(chan ProgressUpdate, 10)
	runner.SetProgressChannel(progress)

	if _, err := runner.Run(); err != nil {
		t.Fatalf("Runner failed: %v", err)
	}
	close(progress)

	count := 0
	for update := range progress {
		count++
		if update.Current > update.Total {
			t.Errorf("Current progress %d exceeds total %d", update.Current, update.Total)
		}
		if update.Percentage < 0 || update.Percentage > 100 {
			t.Errorf("Invalid percentage: %f", update.Percentage)
		}
	}
	if count != 3 {
		t.Errorf("Expected 3 progress updates, got %d", count)
	}
}

func TestNewRunnerFromConfig(t *testing.T) {
	dir := t.TempDir()
	wordList := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(wordList, []byte("alpha\nbravo\ncharlie\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	seed := uint64(1)
	runner, err := NewRunnerFromConfig(Config{
		Hashes:   []string{"md5", "murmur64b"},
		Sources:  []string{"words", "digits"},
		Samples:  30,
		Seed:     &seed,
		WordList: wordList,
	})
	if err != nil {
		t.Fatalf("NewRunnerFromConfig failed: %v", err)
	}

	results, err := runner.Run()
	if err != nil {
		t.Fatalf("Runner failed: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("Expected 4 results, got %d", len(results))
	}
	if runner.Config().CursorPolicy != CursorReset {
		t.Errorf("Expected default cursor policy reset, got %q", runner.Config().CursorPolicy)
	}

	_, err = NewRunnerFromConfig(Config{Sources: []string{"words"}, WordList: filepath.Join(dir, "missing.txt")})
	if !errors.Is(err, source.ErrResourceUnavailable) {
		t.Errorf("Expected ErrResourceUnavailable, got %v", err)
	}

	_, err = NewRunnerFromConfig(Config{Hashes: []string{"crc64"}, Sources: []string{"digits"}})
	if !errors.Is(err, hashes.ErrUnknown) {
		t.Errorf("Expected ErrUnknown, got %v", err)
	}

	_, err = NewRunnerFromConfig(Config{Samples: -1})
	if err == nil {
		t.Error("Expected error for negative sample count")
	}
}
