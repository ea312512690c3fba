package benchmark

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/user/hashbench/internal/hashes"
	"github.com/user/hashbench/internal/source"
)

// cancelCheckMask sets how often the timed loop polls the context.
const cancelCheckMask = 0xff

type ProgressUpdate struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Rate       float64 `json:"rate"`
	Hash       string  `json:"hash"`
	Source     string  `json:"source"`
}

// lockedSource serializes draws from a source shared by several workers.
type lockedSource struct {
	mu  sync.Mutex
	src source.Source
}

func (l *lockedSource) draw(n int, reset bool) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if reset {
		if r, ok := l.src.(source.Resetter); ok {
			r.Reset()
		}
	}

	samples := make([]string, n)
	for i := range samples {
		v, err := l.src.Next()
		if err != nil {
			return nil, fmt.Errorf("drawing sample %d from %s: %w", i, l.src.ID(), err)
		}
		samples[i] = v
	}
	return samples, nil
}

type pair struct {
	hash   hashes.Adapter
	source *lockedSource
}

type Runner struct {
	config       Config
	hashes       []hashes.Adapter
	sources      []*lockedSource
	progressChan chan ProgressUpdate
	proc         *process.Process
}

// NewRunner builds a runner over explicit adapters and sources. The
// Hashes and Sources fields of config are replaced by their ids.
func NewRunner(config Config, adapters []hashes.Adapter, sources []source.Source) *Runner {
	config.Hashes = make([]string, len(adapters))
	for i, a := range adapters {
		config.Hashes[i] = a.ID()
	}
	config.Sources = make([]string, len(sources))
	locked := make([]*lockedSource, len(sources))
	for i, s := range sources {
		config.Sources[i] = s.ID()
		locked[i] = &lockedSource{src: s}
	}
	config.applyDefaults()

	return &Runner{
		config:  config,
		hashes:  adapters,
		sources: locked,
		proc:    currentProcess(),
	}
}

// NewRunnerFromConfig resolves the configured adapters and sources. Any
// construction failure, such as a missing word list, is returned before a
// single measurement is taken.
func NewRunnerFromConfig(config Config) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	adapters, err := hashes.NewAll(config.Hashes)
	if err != nil {
		return nil, err
	}

	sources, err := source.NewAll(config.Sources, source.Options{
		Seed:     config.Seed,
		WordList: config.WordList,
	})
	if err != nil {
		return nil, err
	}

	r := NewRunner(config, adapters, sources)
	return r, nil
}

func (r *Runner) Config() Config { return r.config }

func (r *Runner) SetProgressChannel(ch chan ProgressUpdate) {
	r.progressChan = ch
}

func (r *Runner) Run() ([]Result, error) {
	return r.RunContext(context.Background())
}

// RunContext measures every (hash, source) pair in hash-major order. The
// returned slice always holds one result per pair; pairs that could not be
// measured are marked failed. An error is returned only when ctx itself is
// done.
func (r *Runner) RunContext(ctx context.Context) ([]Result, error) {
	pairs := r.pairs()
	results := make([]Result, len(pairs))

	runCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(r.config.Timeout)*time.Second)
		defer cancel()
	}

	var bar *progressbar.ProgressBar
	if r.config.ShowProgress {
		bar = progressbar.NewOptions(len(pairs),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("[hashbench]"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}

	workers := r.config.Parallel
	if workers > len(pairs) {
		workers = len(pairs)
	}

	var (
		completed int32
		startTime = time.Now()
		jobs      = make(chan int)
		wg        sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := pairs[i]
				results[i] = r.measure(runCtx, p)
				if r.config.Verbose && results[i].Failed {
					log.Printf("%s hashing %s failed: %s", p.hash.Name(), p.source.src.Name(), results[i].Error)
				}

				done := int(atomic.AddInt32(&completed, 1))
				if bar != nil {
					bar.Add(1)
				}
				r.sendProgress(ProgressUpdate{
					Current:    done,
					Total:      len(pairs),
					Percentage: float64(done) / float64(len(pairs)) * 100,
					Rate:       float64(done) / time.Since(startTime).Seconds(),
					Hash:       p.hash.Name(),
					Source:     p.source.src.Name(),
				})
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(pairs); next++ {
		select {
		case jobs <- next:
		case <-runCtx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Pairs never handed to a worker still get a result.
	for i := next; i < len(pairs); i++ {
		results[i] = r.newResult(pairs[i]).fail(runCtx.Err())
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) pairs() []pair {
	pairs := make([]pair, 0, len(r.hashes)*len(r.sources))
	for _, h := range r.hashes {
		for _, s := range r.sources {
			pairs = append(pairs, pair{hash: h, source: s})
		}
	}
	return pairs
}

func (r *Runner) newResult(p pair) Result {
	return Result{
		HashID:      p.hash.ID(),
		Hash:        p.hash.Name(),
		Bits:        p.hash.Bits(),
		SourceID:    p.source.src.ID(),
		Source:      p.source.src.Name(),
		Samples:     r.config.Samples,
		Rounds:      r.config.Rounds,
		CompletedAt: time.Now(),
	}
}

func (r *Runner) measure(ctx context.Context, p pair) Result {
	result := r.newResult(p)
	if err := ctx.Err(); err != nil {
		return result.fail(err)
	}

	samples, err := p.source.draw(r.config.Samples, r.config.CursorPolicy == CursorReset)
	if err != nil {
		return result.fail(err)
	}
	inputs := make([][]byte, len(samples))
	for i, s := range samples {
		inputs[i] = []byte(s)
	}

	timings := make([]time.Duration, 0, r.config.Rounds)
	for round := 0; round < r.config.Rounds; round++ {
		tracker := NewCollisionTracker(len(inputs))

		sw := StartStopwatch(r.proc)
		for i, in := range inputs {
			if i&cancelCheckMask == 0 {
				if err := ctx.Err(); err != nil {
					return result.fail(err)
				}
			}
			key, err := p.hash.Digest(in)
			if err != nil {
				return result.fail(fmt.Errorf("digest of sample %d (%q): %w", i, samples[i], err))
			}
			tracker.Record(key, samples[i])
		}
		m := sw.Stop()

		timings = append(timings, m.Wall)
		result.UserTime += m.User
		result.SystemTime += m.System

		if round == 0 {
			result.Collisions = tracker.Collisions()
			result.Repeats = tracker.Repeats()
			result.Distinct = tracker.Distinct()
		}
	}

	for _, t := range timings {
		result.TotalTime += t
	}
	result.AverageTime = calculateAverage(timings)
	result.MinTime = calculateMin(timings)
	result.MaxTime = calculateMax(timings)
	result.StdDev = calculateStdDev(timings, result.AverageTime)

	hashed := float64(len(inputs) * len(timings))
	if result.TotalTime > 0 {
		result.HashesPerSecond = hashed / result.TotalTime.Seconds()
		result.NsPerHash = float64(result.TotalTime.Nanoseconds()) / hashed
	}
	result.CompletedAt = time.Now()

	return result
}

func (r *Runner) sendProgress(update ProgressUpdate) {
	if r.progressChan == nil {
		return
	}
	select {
	case r.progressChan <- update:
	default:
	}
}

func calculateAverage(timings []time.Duration) time.Duration {
	if len(timings) == 0 {
		return 0
	}

	var sum time.Duration
	for _, t := range timings {
		sum += t
	}
	return sum / time.Duration(len(timings))
}

func calculateMin(timings []time.Duration) time.Duration {
	if len(timings) == 0 {
		return 0
	}

	min := timings[0]
	for _, t := range timings[1:] {
		if t < min {
			min = t
		}
	}
	return min
}

func calculateMax(timings []time.Duration) time.Duration {
	if len(timings) == 0 {
		return 0
	}

	max := timings[0]
	for _, t := range timings[1:] {
		if t > max {
			max = t
		}
	}
	return max
}

func calculateStdDev(timings []time.Duration, avg time.Duration) time.Duration {
	if len(timings) <= 1 {
		return 0
	}

	var sum float64
	avgFloat := float64(avg)

	for _, t := range timings {
		diff := float64(t) - avgFloat
		sum += diff * diff
	}

	variance := sum / float64(len(timings)-1)
	stdDev := math.Sqrt(variance)

	return time.Duration(stdDev)
}
