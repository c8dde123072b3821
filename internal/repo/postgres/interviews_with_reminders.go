package postgres

import (
	"context"
	"time"

	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/job"
	"github.com/devsync89/jobportal/internal/jobs"
)

// InterviewsWithReminders decorates InterviewsRepo so every scheduled
// interview atomically enqueues its reminder job in the same transaction.
// The engine stays oblivious to queueing concerns.
type InterviewsWithReminders struct {
	*InterviewsRepo
	jobs *JobsRepo
}

func NewInterviewsWithReminders(interviews *InterviewsRepo, jobsRepo *JobsRepo) *InterviewsWithReminders {
	return &InterviewsWithReminders{InterviewsRepo: interviews, jobs: jobsRepo}
}

func (r *InterviewsWithReminders) Create(ctx context.Context, req interview.CreateInterviewRequest) (interview.Interview, error) {
	tx, err := r.BeginTx(ctx)

	if err != nil {
		return interview.Interview{}, err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	iv, err := r.CreateTx(ctx, tx, req)

	if err != nil {
		return interview.Interview{}, err
	}

	payload := jobs.InterviewReminderPayload{
		InterviewID: iv.ID,
		CandidateID: iv.CandidateID,
		Date:        iv.Date,
		Time:        iv.Time,
		Type:        iv.Type,
		RequestedAt: time.Now().UTC(),
	}

	raw, err := payload.JSON()

	if err != nil {
		return interview.Interview{}, err
	}

	key := "interview:reminder:" + iv.ID

	_, err = r.jobs.CreateTx(ctx, tx, job.CreateRequest{
		Type:           string(jobs.JobInterviewReminder),
		Payload:        raw,
		RunAt:          reminderRunAt(iv.Date, iv.Time),
		MaxAttempts:    10,
		IdempotencyKey: &key,
	})

	if err != nil {
		// duplicate idempotency key means the reminder already exists
		if !IsUniqueViolation(err) {
			return interview.Interview{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return interview.Interview{}, err
	}

	return iv, nil
}

// reminderRunAt targets 24h before the interview slot, or now when the slot
// is closer than that.
func reminderRunAt(date, timeStr string) time.Time {
	now := time.Now().UTC()

	slot, err := time.Parse("2006-01-02 15:04", date+" "+timeStr)

	if err != nil {
		return now
	}

	runAt := slot.Add(-24 * time.Hour)

	if runAt.Before(now) {
		return now
	}

	return runAt
}
