package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devsync89/jobportal/internal/domain/interview"
	"github.com/devsync89/jobportal/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InterviewsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewInterviewsRepo(pool *pgxpool.Pool, prom *observability.Prom) *InterviewsRepo {
	return &InterviewsRepo{pool: pool, prom: prom}
}

func (r *InterviewsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const interviewColumns = `id, candidate_id, date, time, type, status, created_at, updated_at`

func scanInterview(row pgx.Row) (interview.Interview, error) {
	var iv interview.Interview

	err := row.Scan(
		&iv.ID,
		&iv.CandidateID,
		&iv.Date,
		&iv.Time,
		&iv.Type,
		&iv.Status,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)

	return iv, err
}

func (r *InterviewsRepo) Create(ctx context.Context, req interview.CreateInterviewRequest) (interview.Interview, error) {
	iv := interview.NewFromCreateRequest(req)

	err := r.observe("interviews.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO interviews(`+interviewColumns+`)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			iv.ID, iv.CandidateID, iv.Date, iv.Time, iv.Type, string(iv.Status), iv.CreatedAt, iv.UpdatedAt)
		return err
	})

	if err != nil {
		return interview.Interview{}, err
	}

	return iv, nil
}

// CreateTx creates the interview inside a caller-owned transaction so the
// reminder job can be enqueued atomically alongside it.
func (r *InterviewsRepo) CreateTx(ctx context.Context, tx pgx.Tx, req interview.CreateInterviewRequest) (interview.Interview, error) {
	iv := interview.NewFromCreateRequest(req)

	err := r.observe("interviews.create_tx", func() error {
		_, err := tx.Exec(ctx,
			`INSERT INTO interviews(`+interviewColumns+`)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			iv.ID, iv.CandidateID, iv.Date, iv.Time, iv.Type, string(iv.Status), iv.CreatedAt, iv.UpdatedAt)
		return err
	})

	if err != nil {
		return interview.Interview{}, err
	}

	return iv, nil
}

func (r *InterviewsRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *InterviewsRepo) GetByID(ctx context.Context, id string) (interview.Interview, error) {
	var iv interview.Interview

	err := r.observe("interviews.get", func() error {
		var err error
		iv, err = scanInterview(r.pool.QueryRow(ctx,
			`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, err
	}

	return iv, nil
}

func (r *InterviewsRepo) List(ctx context.Context, filter interview.ListInterviewsFilter) ([]interview.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.CandidateID != nil {
		conds = append(conds, fmt.Sprintf("candidate_id = $%d", argsPosition))
		args = append(args, *filter.CandidateID)
		argsPosition++
	}

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*filter.Status))
		argsPosition++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY date ASC, time ASC, id ASC"

	var output []interview.Interview

	err := r.observe("interviews.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			iv, err := scanInterview(rows)

			if err != nil {
				return err
			}

			output = append(output, iv)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *InterviewsRepo) UpdateStatus(ctx context.Context, id string, status interview.Status) (interview.Interview, error) {
	var iv interview.Interview

	err := r.observe("interviews.update_status", func() error {
		var err error
		iv, err = scanInterview(r.pool.QueryRow(ctx,
			`UPDATE interviews
				SET status = $2,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+interviewColumns,
			id, string(status)))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, err
	}

	return iv, nil
}

// ScheduledCandidateIDs returns the set of candidates holding at least one
// Scheduled interview; the phone export uses it as the upcoming predicate.
func (r *InterviewsRepo) ScheduledCandidateIDs(ctx context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)

	err := r.observe("interviews.scheduled_candidates", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT DISTINCT candidate_id FROM interviews WHERE status = $1`,
			string(interview.StatusScheduled))

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var id string

			if err := rows.Scan(&id); err != nil {
				return err
			}

			ids[id] = true
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return ids, nil
}
