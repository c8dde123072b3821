package pipeline

import (
	"context"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/user"
)

// Keep these small interfaces so tests can fake them easily.

type CandidateStore interface {
	GetByID(ctx context.Context, id string) (candidate.Candidate, error)
	UpdateStatus(ctx context.Context, id string, status candidate.Status) (candidate.Candidate, error)
}

type InterviewStore interface {
	Create(ctx context.Context, req interview.CreateInterviewRequest) (interview.Interview, error)
	GetByID(ctx context.Context, id string) (interview.Interview, error)
	UpdateStatus(ctx context.Context, id string, status interview.Status) (interview.Interview, error)
}

type Config struct {
	// AllowTerminalOverride lets UpdateCandidateStatus move a candidate out
	// of Hired/Rejected. It exists for administrative correction; deployments
	// that want strict terminality set it to false.
	AllowTerminalOverride bool
}

type Engine struct {
	cfg        Config
	candidates CandidateStore
	interviews InterviewStore

	// optional metrics hook: (operation, outcome)
	observe func(op, outcome string)
}

func New(cfg Config, candidates CandidateStore, interviews InterviewStore) *Engine {
	return &Engine{
		cfg:        cfg,
		candidates: candidates,
		interviews: interviews,
	}
}

// WithObserver attaches a transition observer (prometheus in production).
func (e *Engine) WithObserver(fn func(op, outcome string)) *Engine {
	e.observe = fn
	return e
}

func (e *Engine) observed(op string, err error) error {
	if e.observe != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		e.observe(op, outcome)
	}
	return err
}

// ScheduleInterview creates a Scheduled interview for an existing candidate.
// The candidate status label is not touched here; scheduling and
// status-labeling are decoupled operations. Duplicate Scheduled interviews
// for the same candidate are allowed on purpose.
func (e *Engine) ScheduleInterview(ctx context.Context, req interview.CreateInterviewRequest, role user.Role) (interview.Interview, error) {
	if !Allowed(role, ActionScheduleInterview) {
		return interview.Interview{}, e.observed("schedule", ErrForbidden)
	}

	_, err := e.candidates.GetByID(ctx, req.CandidateID)

	if err != nil {
		return interview.Interview{}, e.observed("schedule", err)
	}

	iv, err := e.interviews.Create(ctx, req)

	return iv, e.observed("schedule", err)
}

// CompleteInterview moves Scheduled -> Completed. Completing an already
// Completed interview is a no-op success: the only consumer-visible effect
// is the status value.
func (e *Engine) CompleteInterview(ctx context.Context, interviewID string, role user.Role) (interview.Interview, error) {
	if !Allowed(role, ActionCompleteInterview) {
		return interview.Interview{}, e.observed("complete", ErrForbidden)
	}

	iv, err := e.interviews.GetByID(ctx, interviewID)

	if err != nil {
		// absent interviews are an invalid-state failure for this operation
		return interview.Interview{}, e.observed("complete", ErrInvalidState)
	}

	switch iv.Status {
	case interview.StatusCompleted:
		return iv, e.observed("complete", nil)
	case interview.StatusScheduled:
		iv, err = e.interviews.UpdateStatus(ctx, interviewID, interview.StatusCompleted)
		return iv, e.observed("complete", err)
	default:
		return interview.Interview{}, e.observed("complete", ErrInvalidState)
	}
}

// CancelInterview moves Scheduled -> Cancelled.
func (e *Engine) CancelInterview(ctx context.Context, interviewID string, role user.Role) (interview.Interview, error) {
	if !Allowed(role, ActionCancelInterview) {
		return interview.Interview{}, e.observed("cancel", ErrForbidden)
	}

	iv, err := e.interviews.GetByID(ctx, interviewID)

	if err != nil {
		return interview.Interview{}, e.observed("cancel", err)
	}

	if iv.Status != interview.StatusScheduled {
		return interview.Interview{}, e.observed("cancel", ErrInvalidState)
	}

	iv, err = e.interviews.UpdateStatus(ctx, interviewID, interview.StatusCancelled)

	return iv, e.observed("cancel", err)
}

// deriveCandidateStatus applies the result decision table.
func deriveCandidateStatus(interviewType string, result interview.Status) candidate.Status {
	if result == interview.StatusRejected {
		return candidate.StatusRejected
	}

	if interviewType == interview.TypeSecond {
		return candidate.StatusHired
	}

	return candidate.StatusPassedFirst
}

// RecordResult sets the interview result and derives the coupled candidate
// status. The interview write happens strictly before the candidate write so
// that the interview record stays the durable source of truth even when the
// candidate write fails; a retry then repairs only the candidate side.
func (e *Engine) RecordResult(ctx context.Context, interviewID string, result interview.Status, role user.Role) (interview.Interview, candidate.Candidate, error) {
	if !Allowed(role, ActionRecordResult) {
		return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", ErrForbidden)
	}

	if result != interview.StatusPassed && result != interview.StatusRejected {
		return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", ErrInvalidState)
	}

	iv, err := e.interviews.GetByID(ctx, interviewID)

	if err != nil {
		return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", err)
	}

	repair := false

	switch {
	case iv.Status == interview.StatusCompleted:
		// normal path
	case iv.Status == result:
		// interview already carries this result; only the candidate side may
		// still be stale (a previous call died between the two writes)
		repair = true
	default:
		return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", ErrInvalidState)
	}

	derived := deriveCandidateStatus(iv.Type, result)

	cand, err := e.candidates.GetByID(ctx, iv.CandidateID)

	if err != nil {
		return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", err)
	}

	if repair {
		// already fully applied: nothing left to repair
		if cand.Status == derived || cand.Status.IsTerminal() {
			return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", ErrInvalidState)
		}
	} else {
		if cand.Status.IsTerminal() {
			return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", ErrInvalidState)
		}

		iv, err = e.interviews.UpdateStatus(ctx, interviewID, result)

		if err != nil {
			return interview.Interview{}, candidate.Candidate{}, e.observed("record_result", err)
		}
	}

	cand, err = e.candidates.UpdateStatus(ctx, iv.CandidateID, derived)

	if err != nil {
		// interview already holds the result; caller retries and lands on the
		// repair path above
		return iv, candidate.Candidate{}, e.observed("record_result", err)
	}

	return iv, cand, e.observed("record_result", nil)
}

// UpdateCandidateStatus is the direct override escape hatch. It bypasses the
// transition table; terminal-state enforcement depends on the configured
// policy flag.
func (e *Engine) UpdateCandidateStatus(ctx context.Context, candidateID string, newStatus candidate.Status, role user.Role) (candidate.Candidate, error) {
	if !Allowed(role, ActionUpdateCandidateStatus) {
		return candidate.Candidate{}, e.observed("override_status", ErrForbidden)
	}

	if !newStatus.IsValid() {
		return candidate.Candidate{}, e.observed("override_status", ErrInvalidState)
	}

	if !e.cfg.AllowTerminalOverride {
		cand, err := e.candidates.GetByID(ctx, candidateID)

		if err != nil {
			return candidate.Candidate{}, e.observed("override_status", err)
		}

		if cand.Status.IsTerminal() {
			return candidate.Candidate{}, e.observed("override_status", ErrInvalidState)
		}
	}

	cand, err := e.candidates.UpdateStatus(ctx, candidateID, newStatus)

	return cand, e.observed("override_status", err)
}
