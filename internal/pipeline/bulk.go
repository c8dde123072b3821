package pipeline

import (
	"context"
	"sync"

	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/user"
)

// BulkResult is the per-candidate outcome of a bulk scheduling intent.
type BulkResult struct {
	CandidateID string               `json:"candidateId"`
	OK          bool                 `json:"ok"`
	Interview   *interview.Interview `json:"interview,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// BulkSchedule applies ScheduleInterview once per candidate, best-effort and
// independent: one candidate's failure never aborts the others. The stores
// offer no cross-record atomicity, so this must not pretend to be a
// transaction. Results come back in input order.
func (e *Engine) BulkSchedule(ctx context.Context, candidateIDs []string, date, timeStr, interviewType string, role user.Role) ([]BulkResult, error) {
	if !Allowed(role, ActionScheduleInterview) {
		return nil, ErrForbidden
	}

	results := make([]BulkResult, len(candidateIDs))

	var wg sync.WaitGroup

	for i, id := range candidateIDs {
		wg.Add(1)

		go func(i int, id string) {
			defer wg.Done()

			iv, err := e.ScheduleInterview(ctx, interview.CreateInterviewRequest{
				CandidateID: id,
				Date:        date,
				Time:        timeStr,
				Type:        interviewType,
			}, role)

			if err != nil {
				results[i] = BulkResult{CandidateID: id, Error: err.Error()}
				return
			}

			results[i] = BulkResult{CandidateID: id, OK: true, Interview: &iv}
		}(i, id)
	}

	wg.Wait()

	return results, nil
}
