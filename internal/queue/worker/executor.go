package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/job"
	"github.com/devsync89/jobportal/internal/jobs"
	"github.com/devsync89/jobportal/internal/notifications"
)

// Executor dispatches a claimed job to its handler by type.
type Executor struct {
	candidates CandidatesRepository
	interviews InterviewsRepository
	notifier   notifications.Notifier
	logger     *slog.Logger
}

func NewExecutor(candidates CandidatesRepository, interviews InterviewsRepository, notifier notifications.Notifier, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		candidates: candidates,
		interviews: interviews,
		notifier:   notifier,
		logger:     logger,
	}
}

func (e *Executor) Execute(ctx context.Context, j job.Job) error {
	switch jobs.JobType(j.Type) {
	case jobs.JobInterviewReminder:
		return e.executeInterviewReminder(ctx, j)
	default:
		// unknown types are a permanent failure, retrying cannot help
		return fmt.Errorf("%w: %s", jobs.ErrInvalidJobType, j.Type)
	}
}

func (e *Executor) executeInterviewReminder(ctx context.Context, j job.Job) error {
	decoded, err := jobs.DecodePayload(jobs.JobInterviewReminder, j.Payload)

	if err != nil {
		return err
	}

	p := decoded.(jobs.InterviewReminderPayload)

	if err := jobs.ValidatePayload(jobs.JobInterviewReminder, p); err != nil {
		return err
	}

	// Re-read state at delivery time: a reminder for a cancelled or already
	// completed interview must not go out.
	iv, err := e.interviews.GetByID(ctx, p.InterviewID)

	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			e.logger.InfoContext(ctx, "reminder skipped, interview gone", "interview_id", p.InterviewID)
			return nil
		}
		return err
	}

	if iv.Status != interview.StatusScheduled {
		e.logger.InfoContext(ctx, "reminder skipped, interview not scheduled",
			"interview_id", iv.ID,
			"status", string(iv.Status),
		)
		return nil
	}

	cand, err := e.candidates.GetByID(ctx, iv.CandidateID)

	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			e.logger.InfoContext(ctx, "reminder skipped, candidate gone", "candidate_id", iv.CandidateID)
			return nil
		}
		return err
	}

	return e.notifier.SendInterviewReminder(ctx, notifications.InterviewReminderInput{
		CandidateID:    cand.ID,
		CandidateName:  cand.Name,
		CandidateEmail: cand.Email,
		InterviewID:    iv.ID,
		InterviewType:  iv.Type,
		Date:           iv.Date,
		Time:           iv.Time,
	})
}
