package candidate

// Status is the pipeline progress label for a candidate. The string values
// are wire-visible and match what the front end renders, so they stay
// human-readable rather than snake_case.
type Status string

const (
	StatusPending            Status = "pending"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusPassedFirst        Status = "Passed First Interview"
	StatusSecondScheduled    Status = "Second Interview Scheduled"
	StatusHired              Status = "Hired"
	StatusRejected           Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInterviewScheduled, StatusPassedFirst,
		StatusSecondScheduled, StatusHired, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further pipeline transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}
