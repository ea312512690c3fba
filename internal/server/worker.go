package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/user/hashbench/internal/benchmark"
)

type WorkerPool struct {
	workers    int
	jobQueue   chan *SweepJob
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	jobStore   *JobStore
	activeJobs map[string]context.CancelFunc
	mu         sync.Mutex
	closeOnce  sync.Once
}

func NewWorkerPool(numWorkers int, jobStore *JobStore) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:    numWorkers,
		jobQueue:   make(chan *SweepJob, numWorkers*2),
		ctx:        ctx,
		cancel:     cancel,
		jobStore:   jobStore,
		activeJobs: make(map[string]context.CancelFunc),
	}
}

func (wp *WorkerPool) Start() {
	log.Printf("Starting worker pool with %d workers", wp.workers)

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop cancels running sweeps and waits for the workers to exit.
func (wp *WorkerPool) Stop() {
	wp.closeOnce.Do(func() {
		log.Println("Stopping worker pool...")
		wp.cancel()
		wp.wg.Wait()
		log.Println("Worker pool stopped")
	})
}

func (wp *WorkerPool) Submit(job *SweepJob) error {
	if wp.ctx.Err() != nil {
		return fmt.Errorf("worker pool is shutting down")
	}
	select {
	case wp.jobQueue <- job:
		return nil
	default:
		return fmt.Errorf("job queue is full")
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case job := <-wp.jobQueue:
			log.Printf("Worker %d processing sweep %s", id, job.ID)
			wp.processJob(job)

		case <-wp.ctx.Done():
			log.Printf("Worker %d stopping due to context cancellation", id)
			return
		}
	}
}

func (wp *WorkerPool) TerminateJob(jobID string) {
	wp.mu.Lock()
	if cancel, exists := wp.activeJobs[jobID]; exists {
		cancel()
		delete(wp.activeJobs, jobID)
	}
	wp.mu.Unlock()
}

func (wp *WorkerPool) processJob(job *SweepJob) {
	defer close(job.Progress)

	jobCtx, jobCancel := context.WithCancel(wp.ctx)

	wp.mu.Lock()
	wp.activeJobs[job.ID] = jobCancel
	wp.mu.Unlock()

	defer func() {
		wp.mu.Lock()
		delete(wp.activeJobs, job.ID)
		wp.mu.Unlock()
		jobCancel()
	}()

	// Terminated while still queued.
	if !wp.jobStore.StartJob(job.ID) {
		log.Printf("Sweep %s terminated before it started", job.ID)
		return
	}

	job.runner.SetProgressChannel(job.Progress)
	results, err := job.runner.RunContext(jobCtx)

	wp.jobStore.CompleteJob(job.ID, results, err)
	if err != nil {
		log.Printf("Sweep %s stopped: %v", job.ID, err)
	} else {
		log.Printf("Sweep %s completed with %d results", job.ID, len(results))
	}
}

func (js *JobStore) UpdateStatus(jobID, status string) {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[jobID]; exists {
		job.Status = status
		job.UpdatedAt = time.Now()
	}
}

// StartJob moves a queued job to running. It reports false when the job is
// gone or was terminated in the meantime.
func (js *JobStore) StartJob(jobID string) bool {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, exists := js.jobs[jobID]
	if !exists || job.Status != StatusQueued {
		return false
	}
	job.Status = StatusRunning
	job.UpdatedAt = time.Now()
	return true
}

// CompleteJob records the outcome of a sweep. Partial results of a
// terminated sweep are kept and its status is left as terminated.
func (js *JobStore) CompleteJob(jobID string, results []benchmark.Result, err error) {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, exists := js.jobs[jobID]
	if !exists {
		return
	}

	completedAt := time.Now()
	job.CompletedAt = &completedAt
	job.UpdatedAt = completedAt
	job.Results = results

	switch {
	case job.Status == StatusTerminated:
	case errors.Is(err, context.Canceled):
		job.Status = StatusTerminated
		job.Error = err.Error()
	case err != nil:
		job.Status = StatusFailed
		job.Error = err.Error()
	default:
		job.Status = StatusCompleted
	}
}
