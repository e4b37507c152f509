package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator runs triage jobs asynchronously for the HTTP surface.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	engine *Engine
	log    *slog.Logger

	workerCount int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewOrchestrator creates the job pipeline; call Start before Submit.
func NewOrchestrator(engine *Engine, log *slog.Logger, workerCount, maxQueueSize int, jobTTL time.Duration) *Orchestrator {
	if workerCount <= 0 {
		workerCount = 2
	}
	if maxQueueSize <= 0 {
		maxQueueSize = 100
	}
	return &Orchestrator{
		jobs:        NewJobStore(jobTTL),
		queue:       make(chan *Job, maxQueueSize),
		engine:      engine,
		log:         log,
		workerCount: workerCount,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.workerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	// Job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("job queue is full")
		return fmt.Errorf("job queue is full (%d)", cap(o.queue))
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID)
	job.SetStatus(StatusProcessing)

	rep, err := o.engine.Run(ctx, job.Documents(), job.Persona, job.JobToBeDone)
	if err != nil {
		log.Error("triage run failed", "error", err)
		job.Fail(err.Error())
		return
	}

	job.SetResult(rep)
	log.Info("triage run complete", "top_sections", len(rep.ExtractedSections))
}
