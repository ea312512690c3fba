package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/user/hashbench/internal/benchmark"
	"github.com/user/hashbench/internal/hashes"
	"github.com/user/hashbench/internal/source"
	"github.com/user/hashbench/pkg/sysinfo"
)

const (
	StatusQueued     = "queued"
	StatusRunning    = "running"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusTerminated = "terminated"
)

type Server struct {
	router     *mux.Router
	jobStore   *JobStore
	workerPool *WorkerPool
	sysInfo    *sysinfo.SystemInfo
	upgrader   websocket.Upgrader
	port       string
}

type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*SweepJob
}

type SweepJob struct {
	ID          string                        `json:"id"`
	Config      benchmark.Config              `json:"config"`
	Status      string                        `json:"status"`
	StartedAt   time.Time                     `json:"started_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
	CompletedAt *time.Time                    `json:"completed_at,omitempty"`
	Results     []benchmark.Result            `json:"results,omitempty"`
	Error       string                        `json:"error,omitempty"`
	Progress    chan benchmark.ProgressUpdate `json:"-"`

	runner *benchmark.Runner
}

func (j *SweepJob) finished() bool {
	switch j.Status {
	case StatusCompleted, StatusFailed, StatusTerminated:
		return true
	}
	return false
}

func NewServer(port string) (*Server, error) {
	return NewServerWithWorkers(port, 1)
}

// NewServerWithWorkers creates a server whose pool runs up to workers
// sweeps at once.
func NewServerWithWorkers(port string, workers int) (*Server, error) {
	if workers < 1 {
		workers = 1
	}

	sysInfo, err := sysinfo.Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to collect system info: %w", err)
	}

	jobStore := &JobStore{
		jobs: make(map[string]*SweepJob),
	}

	s := &Server{
		router:   mux.NewRouter(),
		jobStore: jobStore,
		sysInfo:  sysInfo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		port: port,
	}

	s.workerPool = NewWorkerPool(workers, jobStore)

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/system-info", s.handleSystemInfo).Methods("GET")
	api.HandleFunc("/hashes", s.handleListHashes).Methods("GET")
	api.HandleFunc("/sources", s.handleListSources).Methods("GET")
	api.HandleFunc("/sweeps", s.handleCreateSweep).Methods("POST")
	api.HandleFunc("/sweeps", s.handleListSweeps).Methods("GET")
	api.HandleFunc("/sweeps/{id}", s.handleGetSweep).Methods("GET")
	api.HandleFunc("/sweeps/{id}/progress", s.handleSweepProgress).Methods("GET")
	api.HandleFunc("/sweeps/{id}/terminate", s.handleTerminateSweep).Methods("POST")
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.workerPool.Start()
	defer s.workerPool.Stop()

	log.Printf("hashbench web server starting on http://localhost:%s", s.port)
	log.Printf("Worker pool started with %d workers", s.workerPool.workers)

	return http.ListenAndServe(":"+s.port, s.router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sysInfo)
}

type hashInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Bits    int    `json:"bits"`
	Default bool   `json:"default"`
}

func (s *Server) handleListHashes(w http.ResponseWriter, r *http.Request) {
	defaults := make(map[string]bool, len(hashes.DefaultIDs))
	for _, id := range hashes.DefaultIDs {
		defaults[id] = true
	}

	var list []hashInfo
	for _, a := range hashes.All() {
		list = append(list, hashInfo{ID: a.ID(), Name: a.Name(), Bits: a.Bits(), Default: defaults[a.ID()]})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, source.List())
}

func (s *Server) handleCreateSweep(w http.ResponseWriter, r *http.Request) {
	var config benchmark.Config
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// No terminal on the server side.
	config.ShowProgress = false

	runner, err := benchmark.NewRunnerFromConfig(config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Creating sweep job: %d hashes x %d sources, %d samples, %d workers",
		len(runner.Config().Hashes), len(runner.Config().Sources), runner.Config().Samples, runner.Config().Parallel)

	now := time.Now()
	job := &SweepJob{
		ID:        uuid.New().String(),
		Config:    runner.Config(),
		Status:    StatusQueued,
		StartedAt: now,
		UpdatedAt: now,
		Progress:  make(chan benchmark.ProgressUpdate, 100),
		runner:    runner,
	}

	s.jobStore.Add(job)

	if err := s.workerPool.Submit(job); err != nil {
		s.jobStore.Remove(job.ID)
		http.Error(w, "Server is busy, please try again later", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"job_id": job.ID,
		"status": StatusQueued,
	})
}

func (s *Server) handleListSweeps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobStore.List())
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, exists := s.jobStore.Get(id)
	if !exists {
		http.Error(w, "Sweep not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleTerminateSweep(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, exists := s.jobStore.Get(id)
	if !exists {
		http.Error(w, "Sweep not found", http.StatusNotFound)
		return
	}
	if job.finished() {
		http.Error(w, fmt.Sprintf("Sweep already %s", job.Status), http.StatusConflict)
		return
	}

	s.jobStore.UpdateStatus(id, StatusTerminated)
	s.workerPool.TerminateJob(id)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  StatusTerminated,
		"message": "Sweep termination initiated",
	})
}

func (s *Server) handleSweepProgress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	progress, exists := s.jobStore.progress(id)
	if !exists {
		http.Error(w, "Sweep not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			err := conn.WriteJSON(map[string]any{
				"status":     StatusRunning,
				"completed":  false,
				"current":    update.Current,
				"total":      update.Total,
				"percentage": update.Percentage,
				"rate":       update.Rate,
				"hash":       update.Hash,
				"source":     update.Source,
			})
			if err != nil {
				return
			}
		case <-ticker.C:
			job, exists := s.jobStore.Get(id)
			if !exists {
				return
			}
			if job.finished() {
				conn.WriteJSON(map[string]any{
					"status":    job.Status,
					"completed": true,
					"results":   len(job.Results),
				})
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (js *JobStore) Add(job *SweepJob) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[job.ID] = job
}

func (js *JobStore) Remove(jobID string) {
	js.mu.Lock()
	defer js.mu.Unlock()
	delete(js.jobs, jobID)
}

// Get returns a snapshot of the job safe to read without the lock.
func (js *JobStore) Get(jobID string) (SweepJob, bool) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	job, exists := js.jobs[jobID]
	if !exists {
		return SweepJob{}, false
	}
	return *job, true
}

// List returns snapshots of all jobs, oldest first.
func (js *JobStore) List() []SweepJob {
	js.mu.RLock()
	jobs := make([]SweepJob, 0, len(js.jobs))
	for _, job := range js.jobs {
		jobs = append(jobs, *job)
	}
	js.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartedAt.Before(jobs[j].StartedAt)
	})
	return jobs
}

func (js *JobStore) progress(jobID string) (<-chan benchmark.ProgressUpdate, bool) {
	js.mu.RLock()
	defer js.mu.RUnlock()

	job, exists := js.jobs[jobID]
	if !exists {
		return nil, false
	}
	return job.Progress, true
}
