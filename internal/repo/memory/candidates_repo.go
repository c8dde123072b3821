package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/devsync89/jobportal/internal/domain/candidate"
)

type CandidatesRepo struct {
	mu    sync.RWMutex
	items map[string]candidate.Candidate
}

func NewCandidatesRepo() *CandidatesRepo {
	return &CandidatesRepo{
		items: make(map[string]candidate.Candidate),
	}
}

func (r *CandidatesRepo) Create(_ context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
	c := candidate.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[c.ID] = c
	r.mu.Unlock()

	return c, nil
}

func (r *CandidatesRepo) GetByID(_ context.Context, id string) (candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]

	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}

	return c, nil
}

func (r *CandidatesRepo) GetByUID(_ context.Context, uid string) (candidate.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.UID != "" && c.UID == uid {
			return c, nil
		}
	}

	return candidate.Candidate{}, candidate.ErrNotFound
}

func (r *CandidatesRepo) List(_ context.Context, filter candidate.ListCandidatesFilter) ([]candidate.Candidate, int, error) {
	r.mu.RLock()

	var all []candidate.Candidate

	for _, c := range r.items {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}

		if filter.Query != nil {
			q := strings.ToLower(*filter.Query)
			if !strings.Contains(strings.ToLower(c.Name), q) &&
				!strings.Contains(strings.ToLower(c.Email), q) {
				continue
			}
		}

		all = append(all, c)
	}

	r.mu.RUnlock()

	// same stable ordering as the SQL repo
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)

	if filter.Limit > 0 {
		start := filter.Offset

		if start > total {
			start = total
		}

		end := start + filter.Limit

		if end > total {
			end = total
		}

		all = all[start:end]
	}

	return all, total, nil
}

func (r *CandidatesRepo) Update(_ context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]

	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}

	c.Name = req.Name
	c.Phone = req.Phone
	c.Age = req.Age
	c.ExperienceYears = req.ExperienceYears
	c.PreviousExperience = req.PreviousExperience
	c.UpdatedAt = time.Now().UTC()

	r.items[id] = c

	return c, nil
}

func (r *CandidatesRepo) UpdateStatus(_ context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]

	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}

	c.Status = status
	c.UpdatedAt = time.Now().UTC()

	r.items[id] = c

	return c, nil
}

func (r *CandidatesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return candidate.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func (r *CandidatesRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)

	for _, c := range r.items {
		counts[string(c.Status)]++
	}

	return counts, nil
}
