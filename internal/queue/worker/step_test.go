package worker

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/domain/job"
	"github.com/devsync89/jobportal/internal/repo/memory"
)

type fakeJobsRepo struct {
	claimNextFn   func(ctx context.Context, workerID string) (job.Job, error)
	markDoneFn    func(ctx context.Context, id string) error
	markFailedFn  func(ctx context.Context, id, errMsg string) error
	rescheduleFn  func(ctx context.Context, id string, runAt time.Time, errMsg string) error
	requeueFn     func(ctx context.Context, lockTTL time.Duration) (int64, error)
	done          []string
	failed        map[string]string
	rescheduled   map[string]time.Time
	rescheduleErr map[string]string
}

func newFakeJobsRepo() *fakeJobsRepo {
	return &fakeJobsRepo{
		failed:        map[string]string{},
		rescheduled:   map[string]time.Time{},
		rescheduleErr: map[string]string{},
	}
}

func (f *fakeJobsRepo) ClaimNext(ctx context.Context, workerID string) (job.Job, error) {
	if f.claimNextFn != nil {
		return f.claimNextFn(ctx, workerID)
	}
	return job.Job{}, job.ErrJobNotFound
}

func (f *fakeJobsRepo) MarkDone(ctx context.Context, id string) error {
	if f.markDoneFn != nil {
		return f.markDoneFn(ctx, id)
	}
	f.done = append(f.done, id)
	return nil
}

func (f *fakeJobsRepo) MarkFailed(ctx context.Context, id, errMsg string) error {
	if f.markFailedFn != nil {
		return f.markFailedFn(ctx, id, errMsg)
	}
	f.failed[id] = errMsg
	return nil
}

func (f *fakeJobsRepo) Reschedule(ctx context.Context, id string, runAt time.Time, errMsg string) error {
	if f.rescheduleFn != nil {
		return f.rescheduleFn(ctx, id, runAt, errMsg)
	}
	f.rescheduled[id] = runAt
	f.rescheduleErr[id] = errMsg
	return nil
}

func (f *fakeJobsRepo) RequeueStaleProcessing(ctx context.Context, lockTTL time.Duration) (int64, error) {
	if f.requeueFn != nil {
		return f.requeueFn(ctx, lockTTL)
	}
	return 0, nil
}

func newTestWorker(repo JobsRepository, cands CandidatesRepository, ivs InterviewsRepository, n *fakeNotifier) *Worker {
	e := NewExecutor(cands, ivs, n, slog.Default())
	return New(Config{WorkerID: "test-worker"}, repo, cands, ivs, e, slog.Default())
}

func TestProcessOneEmptyQueue(t *testing.T) {
	repo := newFakeJobsRepo()
	w := newTestWorker(repo, memory.NewCandidatesRepo(), memory.NewInterviewsRepo(), &fakeNotifier{})

	processed, err := w.ProcessOne(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if processed {
		t.Fatal("nothing to claim, processed must be false")
	}
}

func TestProcessOneSuccessMarksDone(t *testing.T) {
	cands := memory.NewCandidatesRepo()
	ivs := memory.NewInterviewsRepo()

	c, _ := cands.Create(context.Background(), candidate.CreateCandidateRequest{
		Name: "Jane Doe", Email: "jane@example.com", Phone: "111", Age: 30,
	})

	iv, _ := ivs.Create(context.Background(), interview.CreateInterviewRequest{
		CandidateID: c.ID, Date: "2026-09-10", Time: "14:00", Type: interview.TypeTechnical,
	})

	j := reminderJob(t, iv.ID, c.ID)

	repo := newFakeJobsRepo()
	repo.claimNextFn = func(context.Context, string) (job.Job, error) { return j, nil }

	n := &fakeNotifier{}
	w := newTestWorker(repo, cands, ivs, n)

	processed, err := w.ProcessOne(context.Background())

	if err != nil || !processed {
		t.Fatalf("processed=%v err=%v", processed, err)
	}

	if len(repo.done) != 1 || repo.done[0] != j.ID {
		t.Fatalf("job should be marked done: %v", repo.done)
	}

	if len(n.sent) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(n.sent))
	}
}

func TestProcessOneFailureReschedulesWithBackoff(t *testing.T) {
	j := job.New(job.CreateRequest{Type: "mystery", Payload: []byte(`{}`), MaxAttempts: 5})
	j.Attempts = 1

	repo := newFakeJobsRepo()
	repo.claimNextFn = func(context.Context, string) (job.Job, error) { return j, nil }

	w := newTestWorker(repo, memory.NewCandidatesRepo(), memory.NewInterviewsRepo(), &fakeNotifier{})

	before := time.Now().UTC()
	processed, err := w.ProcessOne(context.Background())

	if err != nil || !processed {
		t.Fatalf("a handled failure still counts as processed, got processed=%v err=%v", processed, err)
	}

	runAt, ok := repo.rescheduled[j.ID]

	if !ok {
		t.Fatalf("expected a reschedule, got failed=%v", repo.failed)
	}

	// attempt 1 => at least 4s of backoff
	if runAt.Before(before.Add(4 * time.Second)) {
		t.Fatalf("runAt %v is too soon (claimed at %v)", runAt, before)
	}

	if repo.rescheduleErr[j.ID] == "" {
		t.Fatal("reschedule must record the execution error")
	}
}

func TestProcessOneExhaustedAttemptsParksJob(t *testing.T) {
	j := job.New(job.CreateRequest{Type: "mystery", Payload: []byte(`{}`), MaxAttempts: 3})
	j.Attempts = 2 // next failure is the third and last try

	repo := newFakeJobsRepo()
	repo.claimNextFn = func(context.Context, string) (job.Job, error) { return j, nil }

	w := newTestWorker(repo, memory.NewCandidatesRepo(), memory.NewInterviewsRepo(), &fakeNotifier{})

	processed, err := w.ProcessOne(context.Background())

	if err != nil || !processed {
		t.Fatalf("processed=%v err=%v", processed, err)
	}

	if _, ok := repo.rescheduled[j.ID]; ok {
		t.Fatal("exhausted job must not be rescheduled")
	}

	if repo.failed[j.ID] == "" {
		t.Fatal("exhausted job must be parked as failed with the error message")
	}
}

func TestProcessOneClaimErrorPropagates(t *testing.T) {
	repo := newFakeJobsRepo()
	repo.claimNextFn = func(context.Context, string) (job.Job, error) {
		return job.Job{}, context.DeadlineExceeded
	}

	w := newTestWorker(repo, memory.NewCandidatesRepo(), memory.NewInterviewsRepo(), &fakeNotifier{})

	processed, err := w.ProcessOne(context.Background())

	if processed || err == nil {
		t.Fatalf("claim errors must surface, got processed=%v err=%v", processed, err)
	}
}
