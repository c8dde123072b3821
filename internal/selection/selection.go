// Package selection computes candidate subsets over the ordered, filtered
// list a caller currently sees, plus the flattened phone export.
package selection

import (
	"errors"

	"github.com/devsync89/jobportal/internal/domain/candidate"
)

// ErrInvalidRange means the 1-indexed range does not fit the list.
var ErrInvalidRange = errors.New("selection range out of bounds")

// ApplyRange returns the union of the prior selection with the candidates at
// 1-indexed positions [start, end] of orderedIDs. The selection accumulates
// across repeated applications; it never replaces. On a bad range the prior
// selection is returned untouched alongside ErrInvalidRange.
func ApplyRange(orderedIDs []string, selected []string, start, end int) ([]string, error) {
	if start < 1 || end < start || end > len(orderedIDs) {
		return selected, ErrInvalidRange
	}

	seen := make(map[string]struct{}, len(selected)+end-start+1)
	out := make([]string, 0, len(selected)+end-start+1)

	for _, id := range selected {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range orderedIDs[start-1 : end] {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out, nil
}

// Phones flattens candidates into their phone numbers in iteration order,
// duplicates included. With upcomingOnly set, only candidates for which
// hasUpcoming reports a Scheduled interview are kept.
func Phones(candidates []candidate.Candidate, hasUpcoming func(candidateID string) bool, upcomingOnly bool) []string {
	phones := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if upcomingOnly && (hasUpcoming == nil || !hasUpcoming(c.ID)) {
			continue
		}
		phones = append(phones, c.Phone)
	}

	return phones
}
