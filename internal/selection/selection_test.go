package selection

import (
	"errors"
	"reflect"
	"testing"

	"github.com/devsync89/jobportal/internal/domain/candidate"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestApplyRange(t *testing.T) {
	tests := []struct {
		name     string
		ordered  []string
		selected []string
		start    int
		end      int
		want     []string
		wantErr  error
	}{
		{
			name:    "basic range",
			ordered: ids(10),
			start:   2,
			end:     4,
			want:    []string{"b", "c", "d"},
		},
		{
			name:    "single element",
			ordered: ids(5),
			start:   3,
			end:     3,
			want:    []string{"c"},
		},
		{
			name:    "full list",
			ordered: ids(3),
			start:   1,
			end:     3,
			want:    []string{"a", "b", "c"},
		},
		{
			name:     "accumulates with prior selection",
			ordered:  ids(10),
			selected: []string{"h", "b"},
			start:    1,
			end:      3,
			want:     []string{"h", "b", "a", "c"},
		},
		{
			name:     "start beyond end",
			ordered:  ids(10),
			selected: []string{"a"},
			start:    5,
			end:      2,
			want:     []string{"a"},
			wantErr:  ErrInvalidRange,
		},
		{
			name:    "end beyond list",
			ordered: ids(4),
			start:   2,
			end:     5,
			wantErr: ErrInvalidRange,
		},
		{
			name:    "zero start",
			ordered: ids(4),
			start:   0,
			end:     2,
			wantErr: ErrInvalidRange,
		},
		{
			name:    "empty list",
			ordered: nil,
			start:   1,
			end:     1,
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyRange(tt.ordered, tt.selected, tt.start, tt.end)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				// prior selection must come back untouched
				if !reflect.DeepEqual(got, tt.selected) && !(len(got) == 0 && len(tt.selected) == 0) {
					t.Fatalf("prior selection changed: got %v, want %v", got, tt.selected)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyRangeIsIdempotentPerRange(t *testing.T) {
	ordered := ids(6)

	first, err := ApplyRange(ordered, nil, 2, 4)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := ApplyRange(ordered, first, 2, 4)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-applying the same range changed the selection: %v vs %v", first, second)
	}
}

func TestPhones(t *testing.T) {
	cands := []candidate.Candidate{
		{ID: "c1", Phone: "111"},
		{ID: "c2", Phone: "222"},
		{ID: "c3", Phone: "111"}, // duplicate number on purpose
	}

	all := Phones(cands, nil, false)

	if !reflect.DeepEqual(all, []string{"111", "222", "111"}) {
		t.Fatalf("duplicates must be kept: %v", all)
	}

	upcoming := map[string]bool{"c2": true}

	got := Phones(cands, func(id string) bool { return upcoming[id] }, true)

	if !reflect.DeepEqual(got, []string{"222"}) {
		t.Fatalf("upcoming-only export wrong: %v", got)
	}
}

func TestPhonesUpcomingOnlyWithoutPredicate(t *testing.T) {
	cands := []candidate.Candidate{{ID: "c1", Phone: "111"}}

	got := Phones(cands, nil, true)

	if len(got) != 0 {
		t.Fatalf("no predicate means no upcoming matches, got %v", got)
	}
}
