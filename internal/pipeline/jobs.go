package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/doctriage/internal/report"
)

// JobStatus represents the state of a triage job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one asynchronous triage run over an uploaded document batch.
type Job struct {
	mu sync.Mutex

	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Persona     string    `json:"persona"`
	JobToBeDone string    `json:"job_to_be_done"`
	Filenames   []string  `json:"filenames"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	documents []Document
	result    *report.Report
	errMsg    string
}

// NewJob builds a queued job for a document batch.
func NewJob(persona, jobToBeDone string, docs []Document) *Job {
	now := time.Now()
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return &Job{
		ID:          newJobID(),
		Status:      StatusQueued,
		Persona:     persona,
		JobToBeDone: jobToBeDone,
		Filenames:   names,
		CreatedAt:   now,
		UpdatedAt:   now,
		documents:   docs,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// SetResult stores the finished report and marks the job completed.
func (j *Job) SetResult(r *report.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.Status = StatusCompleted
	j.UpdatedAt = time.Now()
}

// Fail records the error and marks the job failed.
func (j *Job) Fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errMsg = msg
	j.Status = StatusFailed
	j.UpdatedAt = time.Now()
}

// Documents returns the uploaded batch for processing.
func (j *Job) Documents() []Document {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.documents
}

// Result returns the report, or nil while the job is still running.
func (j *Job) Result() *report.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Persona     string    `json:"persona"`
	JobToBeDone string    `json:"job_to_be_done"`
	Filenames   []string  `json:"filenames"`
	Error       string    `json:"error,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Persona:     j.Persona,
		JobToBeDone: j.JobToBeDone,
		Filenames:   append([]string(nil), j.Filenames...),
		Error:       j.errMsg,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}
