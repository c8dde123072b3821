package jobs

type JobType string

const (
	JobInterviewReminder JobType = "interview.reminder"

	// Future use cases

	JobExportPhonesCSV JobType = "export.phones_csv"
)

// check to see if the job type is a known constant

func (t JobType) IsValid() bool {
	switch t {
	case JobInterviewReminder, JobExportPhonesCSV:
		return true
	default:
		return false
	}
}
