package notifications

import "context"

type InterviewReminderInput struct {
	CandidateID    string
	CandidateName  string
	CandidateEmail string
	InterviewID    string
	InterviewType  string
	Date           string
	Time           string
}

type Notifier interface {
	SendInterviewReminder(ctx context.Context, input InterviewReminderInput) error
}
