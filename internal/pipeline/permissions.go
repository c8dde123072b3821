package pipeline

import "github.com/devsync89/jobportal/internal/domain/user"

// Action names one mutating capability of the pipeline. Role checks go
// through Allowed instead of ad hoc role-string comparisons at call sites.
type Action string

const (
	ActionScheduleInterview     Action = "schedule_interview"
	ActionCompleteInterview     Action = "complete_interview"
	ActionRecordResult          Action = "record_result"
	ActionCancelInterview       Action = "cancel_interview"
	ActionUpdateCandidateStatus Action = "update_candidate_status"
	ActionManageCandidates      Action = "manage_candidates"
	ActionImportCandidates      Action = "import_candidates"
	ActionExportPhones          Action = "export_phones"
	ActionManageUsers           Action = "manage_users"
)

var capabilities = map[user.Role]map[Action]struct{}{
	user.RoleAdmin: {
		ActionScheduleInterview:     {},
		ActionCompleteInterview:     {},
		ActionRecordResult:          {},
		ActionCancelInterview:       {},
		ActionUpdateCandidateStatus: {},
		ActionManageCandidates:      {},
		ActionImportCandidates:      {},
		ActionExportPhones:          {},
		ActionManageUsers:           {},
	},
	user.RoleStaff: {
		ActionScheduleInterview:     {},
		ActionCancelInterview:       {},
		ActionUpdateCandidateStatus: {},
		ActionManageCandidates:      {},
		ActionImportCandidates:      {},
		ActionExportPhones:          {},
	},
	// candidate and pending hold no mutating capabilities; reads are
	// gated at the HTTP layer (own profile only).
}

func Allowed(role user.Role, action Action) bool {
	actions, ok := capabilities[role]

	if !ok {
		return false
	}

	_, ok = actions[action]

	return ok
}
