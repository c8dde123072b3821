package worker

import (
	"context"
	"errors"
	"time"

	"github.com/devsync89/jobportal/internal/domain/job"
)

// ProcessOne claims and executes a single job. It reports whether a job was
// processed, so the caller can keep draining or back off to the poll ticker.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)

	j, err := w.repo.ClaimNext(claimCtx, w.cfg.WorkerID)
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return false, nil
		}

		return false, err
	}

	w.logger.Info("claimed job",
		"job_id", j.ID,
		"type", j.Type,
		"attempt", j.Attempts,
		"worker_id", w.cfg.WorkerID,
	)

	err = w.executor.Execute(ctx, j)

	if err != nil {
		w.handleFailure(ctx, j, err)
		return true, nil
	}

	err = w.repo.MarkDone(ctx, j.ID)

	if err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		return true, err
	}

	return true, nil
}

// handleFailure either reschedules with backoff or, once attempts are
// exhausted, parks the job as failed for operator inspection.
func (w *Worker) handleFailure(ctx context.Context, j job.Job, execErr error) {
	// attempts counts completed tries; Reschedule increments it
	if j.Attempts+1 >= j.MaxAttempts {
		w.logger.Error("job exhausted attempts",
			"job_id", j.ID,
			"type", j.Type,
			"attempts", j.Attempts+1,
			"error", execErr,
		)

		if err := w.repo.MarkFailed(ctx, j.ID, execErr.Error()); err != nil {
			w.logger.Error("mark failed error", "job_id", j.ID, "error", err)
		}
		return
	}

	delay := ExponentialBackoff(j.Attempts)
	runAt := time.Now().UTC().Add(delay)

	w.logger.Warn("job failed, rescheduling",
		"job_id", j.ID,
		"type", j.Type,
		"attempt", j.Attempts,
		"retry_in", delay.String(),
		"error", execErr,
	)

	if err := w.repo.Reschedule(ctx, j.ID, runAt, execErr.Error()); err != nil {
		w.logger.Error("reschedule error", "job_id", j.ID, "error", err)
	}
}
