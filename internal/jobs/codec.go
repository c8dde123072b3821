package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
)

func EncodePayload(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobInterviewReminder:
		switch payload.(type) {
		case InterviewReminderPayload, *InterviewReminderPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}

	case JobExportPhonesCSV:
		switch payload.(type) {
		case ExportPhonesCSVPayload, *ExportPhonesCSVPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}
	}

	b, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return b, nil
}

// DecodePayload unmarshals raw payload bytes into the typed payload struct
// for the given job type.
func DecodePayload(t JobType, raw []byte) (any, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(raw) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch t {
	case JobInterviewReminder:
		var p InterviewReminderPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobExportPhonesCSV:
		var p ExportPhonesCSVPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}

// ValidatePayload performs minimal validation on decoded payloads.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	trim := strings.TrimSpace

	switch t {
	case JobInterviewReminder:
		var p InterviewReminderPayload
		switch v := payload.(type) {
		case InterviewReminderPayload:
			p = v
		case *InterviewReminderPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if trim(p.InterviewID) == "" || trim(p.CandidateID) == "" {
			return ErrInvalidJobPayload
		}
		return nil

	case JobExportPhonesCSV:
		switch payload.(type) {
		case ExportPhonesCSVPayload, *ExportPhonesCSVPayload:
			return nil
		default:
			return ErrPayloadTypeMismatch
		}

	default:
		return ErrInvalidJobType
	}
}
