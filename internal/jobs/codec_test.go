package jobs

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecodeInterviewReminder(t *testing.T) {
	p := InterviewReminderPayload{
		InterviewID: "iv-1",
		CandidateID: "c-1",
		Date:        "2026-09-10",
		Time:        "14:30",
		Type:        "Technical",
		RequestedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := EncodePayload(JobInterviewReminder, p)

	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodePayload(JobInterviewReminder, raw)

	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, ok := decoded.(InterviewReminderPayload)

	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}

	if got != p {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestEncodePayloadTypeMismatch(t *testing.T) {
	_, err := EncodePayload(JobInterviewReminder, ExportPhonesCSVPayload{})

	if !errors.Is(err, ErrPayloadTypeMismatch) {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}

func TestDecodePayloadRejectsUnknownType(t *testing.T) {
	_, err := DecodePayload(JobType("mystery"), []byte(`{}`))

	if !errors.Is(err, ErrInvalidJobType) {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}

func TestDecodePayloadRejectsEmpty(t *testing.T) {
	_, err := DecodePayload(JobInterviewReminder, nil)

	if !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}
}

func TestValidatePayload(t *testing.T) {
	ok := InterviewReminderPayload{InterviewID: "iv-1", CandidateID: "c-1"}

	if err := ValidatePayload(JobInterviewReminder, ok); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	missing := InterviewReminderPayload{InterviewID: " ", CandidateID: "c-1"}

	if err := ValidatePayload(JobInterviewReminder, missing); !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}

	if err := ValidatePayload(JobInterviewReminder, "nope"); !errors.Is(err, ErrPayloadTypeMismatch) {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}
