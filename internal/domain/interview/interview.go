package interview

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusPassed    Status = "Passed"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusPassed, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsResult reports whether s is a terminal outcome of the interview itself.
func (s Status) IsResult() bool {
	return s == StatusPassed || s == StatusRejected || s == StatusCancelled
}

// Interview type labels. The type is an open-ended label, not state-bearing;
// only TypeSecond is special-cased by the pipeline (a pass means Hired).
const (
	TypeTechnical  = "Technical"
	TypeHR         = "HR"
	TypeManagerial = "Managerial"
	TypeGeneral    = "General"
	TypeSecond     = "Second Interview"
)

var ErrNotFound = errors.New("interview not found")

type Interview struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Type        string    `json:"type"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateInterviewRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" binding:"required,datetime=15:04"`
	Type        string `json:"type" binding:"required,min=2,max=60"`
}

type ListInterviewsFilter struct {
	CandidateID *string
	Status      *Status
}

func NewFromCreateRequest(req CreateInterviewRequest) Interview {
	now := time.Now().UTC()
	return Interview{
		ID:          uuid.NewString(),
		CandidateID: req.CandidateID,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Status:      StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
