package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// LogNotifier stands in for a real mail/SMS provider. The env knobs let the
// worker's failure handling be exercised locally.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendInterviewReminder(ctx context.Context, in InterviewReminderInput) error {
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	n.logger.InfoContext(ctx, "notification.interview_reminder",
		"candidate_id", in.CandidateID,
		"email", in.CandidateEmail,
		"interview_id", in.InterviewID,
		"type", in.InterviewType,
		"date", in.Date,
		"time", in.Time,
	)
	return nil
}
