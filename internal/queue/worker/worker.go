package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/job"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error
	RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error)
}

type CandidatesRepository interface {
	GetByID(ctx context.Context, id string) (candidate.Candidate, error)
}

type InterviewsRepository interface {
	GetByID(ctx context.Context, id string) (interview.Interview, error)
}

type Config struct {
	WorkerID     string
	PollInterval time.Duration
	Concurrency  int
	LockTTL      time.Duration
}

type Worker struct {
	cfg        Config
	repo       JobsRepository
	candidates CandidatesRepository
	interviews InterviewsRepository
	executor   *Executor
	logger     *slog.Logger

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, candidates CandidatesRepository, interviews InterviewsRepository, executor *Executor, logger *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		cfg:        cfg,
		repo:       repo,
		candidates: candidates,
		interviews: interviews,
		executor:   executor,
		logger:     logger,
	}
}

// Run polls until ctx is cancelled. Each tick drains the queue: ProcessOne is
// called until no claimable job remains, so a burst is worked off without
// waiting out the poll interval.
func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	staleTicker := time.NewTicker(w.cfg.LockTTL)
	defer staleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker received shutdown signal", "worker_id", w.cfg.WorkerID)
			return nil

		case <-staleTicker.C:
			n, err := w.repo.RequeueStaleProcessing(ctx, w.cfg.LockTTL)

			if err != nil {
				w.logger.Error("requeue stale failed", "error", err)
			} else if n > 0 {
				w.logger.Warn("requeued stale jobs", "count", n)
			}

		case <-ticker.C:
			for {
				processed, err := w.ProcessOne(ctx)

				if err != nil {
					w.logger.Error("process job failed", "error", err)
				}

				if !processed || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

func (w *Worker) setReady(ready bool) {
	w.readyMu.Lock()
	w.ready = ready
	w.readyMu.Unlock()
}
