package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/devsync89/jobportal/internal/domain/interview"
)

type InterviewsRepo struct {
	mu    sync.RWMutex
	items map[string]interview.Interview
}

func NewInterviewsRepo() *InterviewsRepo {
	return &InterviewsRepo{
		items: make(map[string]interview.Interview),
	}
}

func (r *InterviewsRepo) Create(_ context.Context, req interview.CreateInterviewRequest) (interview.Interview, error) {
	iv := interview.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[iv.ID] = iv
	r.mu.Unlock()

	return iv, nil
}

func (r *InterviewsRepo) GetByID(_ context.Context, id string) (interview.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	iv, ok := r.items[id]

	if !ok {
		return interview.Interview{}, interview.ErrNotFound
	}

	return iv, nil
}

func (r *InterviewsRepo) List(_ context.Context, filter interview.ListInterviewsFilter) ([]interview.Interview, error) {
	r.mu.RLock()

	var all []interview.Interview

	for _, iv := range r.items {
		if filter.CandidateID != nil && iv.CandidateID != *filter.CandidateID {
			continue
		}

		if filter.Status != nil && iv.Status != *filter.Status {
			continue
		}

		all = append(all, iv)
	}

	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		if all[i].Time != all[j].Time {
			return all[i].Time < all[j].Time
		}
		return all[i].ID < all[j].ID
	})

	return all, nil
}

func (r *InterviewsRepo) UpdateStatus(_ context.Context, id string, status interview.Status) (interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iv, ok := r.items[id]

	if !ok {
		return interview.Interview{}, interview.ErrNotFound
	}

	iv.Status = status
	iv.UpdatedAt = time.Now().UTC()

	r.items[id] = iv

	return iv, nil
}

func (r *InterviewsRepo) ScheduledCandidateIDs(_ context.Context) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make(map[string]bool)

	for _, iv := range r.items {
		if iv.Status == interview.StatusScheduled {
			ids[iv.CandidateID] = true
		}
	}

	return ids, nil
}
