package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/user"
)

type fakeCandidates struct {
	getByIDFn      func(ctx context.Context, id string) (candidate.Candidate, error)
	updateStatusFn func(ctx context.Context, id string, status candidate.Status) (candidate.Candidate, error)
}

func (f *fakeCandidates) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCandidates) UpdateStatus(ctx context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
	return f.updateStatusFn(ctx, id, status)
}

type fakeInterviews struct {
	createFn       func(ctx context.Context, req interview.CreateInterviewRequest) (interview.Interview, error)
	getByIDFn      func(ctx context.Context, id string) (interview.Interview, error)
	updateStatusFn func(ctx context.Context, id string, status interview.Status) (interview.Interview, error)
}

func (f *fakeInterviews) Create(ctx context.Context, req interview.CreateInterviewRequest) (interview.Interview, error) {
	return f.createFn(ctx, req)
}

func (f *fakeInterviews) GetByID(ctx context.Context, id string) (interview.Interview, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeInterviews) UpdateStatus(ctx context.Context, id string, status interview.Status) (interview.Interview, error) {
	return f.updateStatusFn(ctx, id, status)
}

func existingCandidate(status candidate.Status) *fakeCandidates {
	return &fakeCandidates{
		getByIDFn: func(_ context.Context, id string) (candidate.Candidate, error) {
			return candidate.Candidate{ID: id, Status: status}, nil
		},
		updateStatusFn: func(_ context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
			return candidate.Candidate{ID: id, Status: status}, nil
		},
	}
}

func TestScheduleInterviewRoleGate(t *testing.T) {
	e := New(Config{}, existingCandidate(candidate.StatusPending), &fakeInterviews{})

	for _, role := range []user.Role{user.RoleCandidate, user.RolePending, user.Role("ghost")} {
		_, err := e.ScheduleInterview(context.Background(), interview.CreateInterviewRequest{CandidateID: "c1"}, role)

		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("role %q: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestScheduleInterviewUnknownCandidate(t *testing.T) {
	cands := &fakeCandidates{
		getByIDFn: func(_ context.Context, _ string) (candidate.Candidate, error) {
			return candidate.Candidate{}, candidate.ErrNotFound
		},
	}

	e := New(Config{}, cands, &fakeInterviews{})

	_, err := e.ScheduleInterview(context.Background(), interview.CreateInterviewRequest{CandidateID: "missing"}, user.RoleStaff)

	if !errors.Is(err, candidate.ErrNotFound) {
		t.Fatalf("expected candidate.ErrNotFound, got %v", err)
	}
}

func TestScheduleInterviewAllowsDuplicates(t *testing.T) {
	created := 0

	ivs := &fakeInterviews{
		createFn: func(_ context.Context, req interview.CreateInterviewRequest) (interview.Interview, error) {
			created++
			return interview.Interview{ID: "iv", CandidateID: req.CandidateID, Status: interview.StatusScheduled}, nil
		},
	}

	e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), ivs)

	for i := 0; i < 2; i++ {
		if _, err := e.ScheduleInterview(context.Background(), interview.CreateInterviewRequest{CandidateID: "c1"}, user.RoleAdmin); err != nil {
			t.Fatalf("schedule %d: %v", i, err)
		}
	}

	if created != 2 {
		t.Fatalf("expected 2 interviews created, got %d", created)
	}
}

func TestCompleteInterview(t *testing.T) {
	tests := []struct {
		name    string
		current interview.Status
		missing bool
		want    interview.Status
		wantErr error
	}{
		{name: "scheduled completes", current: interview.StatusScheduled, want: interview.StatusCompleted},
		{name: "completed is a no-op", current: interview.StatusCompleted, want: interview.StatusCompleted},
		{name: "cancelled rejects", current: interview.StatusCancelled, wantErr: ErrInvalidState},
		{name: "passed rejects", current: interview.StatusPassed, wantErr: ErrInvalidState},
		{name: "missing rejects", missing: true, wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ivs := &fakeInterviews{
				getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
					if tt.missing {
						return interview.Interview{}, interview.ErrNotFound
					}
					return interview.Interview{ID: id, Status: tt.current}, nil
				},
				updateStatusFn: func(_ context.Context, id string, status interview.Status) (interview.Interview, error) {
					return interview.Interview{ID: id, Status: status}, nil
				},
			}

			e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), ivs)

			iv, err := e.CompleteInterview(context.Background(), "iv1", user.RoleAdmin)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if iv.Status != tt.want {
				t.Fatalf("expected status %q, got %q", tt.want, iv.Status)
			}
		})
	}
}

func TestCompleteInterviewStaffForbidden(t *testing.T) {
	e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), &fakeInterviews{})

	_, err := e.CompleteInterview(context.Background(), "iv1", user.RoleStaff)

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("staff must not complete interviews, got %v", err)
	}
}

func TestRecordResultStaffForbidden(t *testing.T) {
	e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), &fakeInterviews{})

	_, _, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleStaff)

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("staff must not record results, got %v", err)
	}
}

func TestRecordResultDecisionTable(t *testing.T) {
	tests := []struct {
		name          string
		interviewType string
		result        interview.Status
		want          candidate.Status
	}{
		{name: "technical pass", interviewType: interview.TypeTechnical, result: interview.StatusPassed, want: candidate.StatusPassedFirst},
		{name: "hr pass", interviewType: interview.TypeHR, result: interview.StatusPassed, want: candidate.StatusPassedFirst},
		{name: "second interview pass hires", interviewType: interview.TypeSecond, result: interview.StatusPassed, want: candidate.StatusHired},
		{name: "any reject rejects", interviewType: interview.TypeTechnical, result: interview.StatusRejected, want: candidate.StatusRejected},
		{name: "second interview reject rejects", interviewType: interview.TypeSecond, result: interview.StatusRejected, want: candidate.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCandStatus candidate.Status

			cands := &fakeCandidates{
				getByIDFn: func(_ context.Context, id string) (candidate.Candidate, error) {
					return candidate.Candidate{ID: id, Status: candidate.StatusInterviewScheduled}, nil
				},
				updateStatusFn: func(_ context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
					gotCandStatus = status
					return candidate.Candidate{ID: id, Status: status}, nil
				},
			}

			ivs := &fakeInterviews{
				getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
					return interview.Interview{ID: id, CandidateID: "c1", Type: tt.interviewType, Status: interview.StatusCompleted}, nil
				},
				updateStatusFn: func(_ context.Context, id string, status interview.Status) (interview.Interview, error) {
					return interview.Interview{ID: id, CandidateID: "c1", Type: tt.interviewType, Status: status}, nil
				},
			}

			e := New(Config{}, cands, ivs)

			iv, cand, err := e.RecordResult(context.Background(), "iv1", tt.result, user.RoleAdmin)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if iv.Status != tt.result {
				t.Fatalf("interview status = %q, want %q", iv.Status, tt.result)
			}

			if gotCandStatus != tt.want || cand.Status != tt.want {
				t.Fatalf("candidate status = %q, want %q", gotCandStatus, tt.want)
			}
		})
	}
}

func TestRecordResultWriteOrder(t *testing.T) {
	var order []string

	cands := &fakeCandidates{
		getByIDFn: func(_ context.Context, id string) (candidate.Candidate, error) {
			return candidate.Candidate{ID: id, Status: candidate.StatusInterviewScheduled}, nil
		},
		updateStatusFn: func(_ context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
			order = append(order, "candidate")
			return candidate.Candidate{ID: id, Status: status}, nil
		},
	}

	ivs := &fakeInterviews{
		getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
			return interview.Interview{ID: id, CandidateID: "c1", Type: interview.TypeTechnical, Status: interview.StatusCompleted}, nil
		},
		updateStatusFn: func(_ context.Context, id string, status interview.Status) (interview.Interview, error) {
			order = append(order, "interview")
			return interview.Interview{ID: id, CandidateID: "c1", Status: status}, nil
		},
	}

	e := New(Config{}, cands, ivs)

	if _, _, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 2 || order[0] != "interview" || order[1] != "candidate" {
		t.Fatalf("interview must be written before candidate, got %v", order)
	}
}

func TestRecordResultRepairsTornWrite(t *testing.T) {
	// interview already carries the result but the candidate write was lost
	candWrites := 0
	ivWrites := 0

	cands := &fakeCandidates{
		getByIDFn: func(_ context.Context, id string) (candidate.Candidate, error) {
			return candidate.Candidate{ID: id, Status: candidate.StatusInterviewScheduled}, nil
		},
		updateStatusFn: func(_ context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
			candWrites++
			return candidate.Candidate{ID: id, Status: status}, nil
		},
	}

	ivs := &fakeInterviews{
		getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
			return interview.Interview{ID: id, CandidateID: "c1", Type: interview.TypeSecond, Status: interview.StatusPassed}, nil
		},
		updateStatusFn: func(_ context.Context, id string, status interview.Status) (interview.Interview, error) {
			ivWrites++
			return interview.Interview{ID: id, Status: status}, nil
		},
	}

	e := New(Config{}, cands, ivs)

	_, cand, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleAdmin)

	if err != nil {
		t.Fatalf("repair should succeed, got %v", err)
	}

	if ivWrites != 0 {
		t.Fatalf("repair must not rewrite the interview, got %d writes", ivWrites)
	}

	if candWrites != 1 || cand.Status != candidate.StatusHired {
		t.Fatalf("expected exactly one candidate write to %q, got %d writes, status %q",
			candidate.StatusHired, candWrites, cand.Status)
	}
}

func TestRecordResultSecondCallRejected(t *testing.T) {
	// both writes landed: a second identical call must fail, not double-apply
	cands := &fakeCandidates{
		getByIDFn: func(_ context.Context, id string) (candidate.Candidate, error) {
			return candidate.Candidate{ID: id, Status: candidate.StatusHired}, nil
		},
		updateStatusFn: func(_ context.Context, _ string, _ candidate.Status) (candidate.Candidate, error) {
			t.Fatal("candidate must not be written again")
			return candidate.Candidate{}, nil
		},
	}

	ivs := &fakeInterviews{
		getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
			return interview.Interview{ID: id, CandidateID: "c1", Type: interview.TypeSecond, Status: interview.StatusPassed}, nil
		},
	}

	e := New(Config{}, cands, ivs)

	_, _, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleAdmin)

	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestRecordResultScheduledInterviewRejected(t *testing.T) {
	ivs := &fakeInterviews{
		getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
			return interview.Interview{ID: id, CandidateID: "c1", Status: interview.StatusScheduled}, nil
		},
	}

	e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), ivs)

	_, _, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleAdmin)

	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for un-completed interview, got %v", err)
	}
}

func TestRecordResultInvalidResultValue(t *testing.T) {
	e := New(Config{}, existingCandidate(candidate.StatusInterviewScheduled), &fakeInterviews{})

	for _, bad := range []interview.Status{interview.StatusScheduled, interview.StatusCompleted, interview.StatusCancelled, "Maybe"} {
		_, _, err := e.RecordResult(context.Background(), "iv1", bad, user.RoleAdmin)

		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("result %q: expected ErrInvalidState, got %v", bad, err)
		}
	}
}

func TestRecordResultTerminalCandidateProtected(t *testing.T) {
	ivs := &fakeInterviews{
		getByIDFn: func(_ context.Context, id string) (interview.Interview, error) {
			return interview.Interview{ID: id, CandidateID: "c1", Type: interview.TypeTechnical, Status: interview.StatusCompleted}, nil
		},
	}

	e := New(Config{}, existingCandidate(candidate.StatusRejected), ivs)

	_, _, err := e.RecordResult(context.Background(), "iv1", interview.StatusPassed, user.RoleAdmin)

	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for terminal candidate, got %v", err)
	}
}

func TestUpdateCandidateStatusOverride(t *testing.T) {
	tests := []struct {
		name          string
		allowOverride bool
		current       candidate.Status
		next          candidate.Status
		wantErr       error
	}{
		{name: "plain override", allowOverride: true, current: candidate.StatusPending, next: candidate.StatusInterviewScheduled},
		{name: "terminal override allowed by policy", allowOverride: true, current: candidate.StatusHired, next: candidate.StatusPending},
		{name: "terminal override blocked by policy", allowOverride: false, current: candidate.StatusRejected, next: candidate.StatusPending, wantErr: ErrInvalidState},
		{name: "unknown status rejected", allowOverride: true, current: candidate.StatusPending, next: candidate.Status("Limbo"), wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{AllowTerminalOverride: tt.allowOverride}, existingCandidate(tt.current), &fakeInterviews{})

			cand, err := e.UpdateCandidateStatus(context.Background(), "c1", tt.next, user.RoleStaff)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if cand.Status != tt.next {
				t.Fatalf("status = %q, want %q", cand.Status, tt.next)
			}
		})
	}
}

func TestUpdateCandidateStatusCandidateRoleForbidden(t *testing.T) {
	e := New(Config{AllowTerminalOverride: true}, existingCandidate(candidate.StatusPending), &fakeInterviews{})

	_, err := e.UpdateCandidateStatus(context.Background(), "c1", candidate.StatusHired, user.RoleCandidate)

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestObserverSeesOutcomes(t *testing.T) {
	type obs struct{ op, outcome string }

	var seen []obs

	e := New(Config{}, existingCandidate(candidate.StatusPending), &fakeInterviews{}).
		WithObserver(func(op, outcome string) { seen = append(seen, obs{op, outcome}) })

	_, _ = e.ScheduleInterview(context.Background(), interview.CreateInterviewRequest{CandidateID: "c1"}, user.RoleCandidate)

	if len(seen) != 1 || seen[0].op != "schedule" || seen[0].outcome != "error" {
		t.Fatalf("unexpected observations: %v", seen)
	}
}
