package worker

import (
	"testing"
	"time"
)

func TestExponentialBackoffGrows(t *testing.T) {
	// jitter adds at most 250ms on top of the deterministic part
	cases := []struct {
		attempt int
		min     time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
		{3, 16 * time.Second},
	}

	for _, tc := range cases {
		got := ExponentialBackoff(tc.attempt)

		if got < tc.min || got >= tc.min+250*time.Millisecond {
			t.Fatalf("attempt %d: got %v, want [%v, %v)", tc.attempt, got, tc.min, tc.min+250*time.Millisecond)
		}
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	capDelay := 5 * time.Minute

	for _, attempt := range []int{10, 15, 20} {
		got := ExponentialBackoff(attempt)

		if got < capDelay || got >= capDelay+250*time.Millisecond {
			t.Fatalf("attempt %d: got %v, want capped at %v", attempt, got, capDelay)
		}
	}
}
