package jobs

import (
	"encoding/json"
	"time"
)

// InterviewReminderPayload is kept minimal and ID-based; the worker loads
// current details from the DB at delivery time.
type InterviewReminderPayload struct {
	InterviewID string    `json:"interviewId"`
	CandidateID string    `json:"candidateId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Type        string    `json:"type"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

func (p InterviewReminderPayload) JSON() (json.RawMessage, error) {
	b, err := json.Marshal(p)

	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// ExportPhonesCSVPayload generates an async phone export (future use).
type ExportPhonesCSVPayload struct {
	UpcomingOnly bool   `json:"upcomingOnly"`
	RequestedBy  string `json:"requestedBy,omitempty"`
}
