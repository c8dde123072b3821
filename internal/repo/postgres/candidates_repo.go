package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devsync89/jobportal/internal/domain/candidate"
	"github.com/devsync89/jobportal/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidatesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCandidatesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CandidatesRepo {
	return &CandidatesRepo{pool: pool, prom: prom}
}

func (r *CandidatesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const candidateColumns = `id, uid, name, email, phone, age, experience_years, previous_experience, photo, status, created_at, updated_at`

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate

	err := row.Scan(
		&c.ID,
		&c.UID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Age,
		&c.ExperienceYears,
		&c.PreviousExperience,
		&c.Photo,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}

func (r *CandidatesRepo) Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
	c := candidate.NewFromCreateRequest(req)

	err := r.observe("candidates.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO candidates(`+candidateColumns+`)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			c.ID, c.UID, c.Name, c.Email, c.Phone, c.Age, c.ExperienceYears,
			c.PreviousExperience, c.Photo, string(c.Status), c.CreatedAt, c.UpdatedAt)
		return err
	})

	if err != nil {
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	var c candidate.Candidate

	err := r.observe("candidates.get", func() error {
		var err error
		c, err = scanCandidate(r.pool.QueryRow(ctx,
			`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) GetByUID(ctx context.Context, uid string) (candidate.Candidate, error) {
	var c candidate.Candidate

	err := r.observe("candidates.get_by_uid", func() error {
		var err error
		c, err = scanCandidate(r.pool.QueryRow(ctx,
			`SELECT `+candidateColumns+` FROM candidates WHERE uid = $1`, uid))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) List(ctx context.Context, filter candidate.ListCandidatesFilter) ([]candidate.Candidate, int, error) {
	baseQuery := `SELECT ` + candidateColumns + `, COUNT(*) OVER() AS total FROM candidates`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, string(*filter.Status))
		argsPosition++
	}

	if filter.Query != nil {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argsPosition, argsPosition))
		args = append(args, "%"+*filter.Query+"%")
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering so range selection over the rendered list is meaningful
	query += " ORDER BY created_at ASC, id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	var output []candidate.Candidate
	total := 0

	err := r.observe("candidates.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var c candidate.Candidate
			var t int

			err = rows.Scan(&c.ID, &c.UID, &c.Name, &c.Email, &c.Phone, &c.Age,
				&c.ExperienceYears, &c.PreviousExperience, &c.Photo, &c.Status,
				&c.CreatedAt, &c.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *CandidatesRepo) Update(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error) {
	var c candidate.Candidate

	err := r.observe("candidates.update", func() error {
		var err error
		c, err = scanCandidate(r.pool.QueryRow(ctx,
			`UPDATE candidates
				SET name = $2,
					phone = $3,
					age = $4,
					experience_years = $5,
					previous_experience = $6,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+candidateColumns,
			id, req.Name, req.Phone, req.Age, req.ExperienceYears, req.PreviousExperience))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) UpdateStatus(ctx context.Context, id string, status candidate.Status) (candidate.Candidate, error) {
	var c candidate.Candidate

	err := r.observe("candidates.update_status", func() error {
		var err error
		c, err = scanCandidate(r.pool.QueryRow(ctx,
			`UPDATE candidates
				SET status = $2,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+candidateColumns,
			id, string(status)))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}

	return c, nil
}

func (r *CandidatesRepo) Delete(ctx context.Context, id string) error {
	return r.observe("candidates.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return candidate.ErrNotFound
		}

		return nil
	})
}

// CountByStatus feeds the dashboard stats endpoint.
func (r *CandidatesRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	err := r.observe("candidates.count_by_status", func() error {
		rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM candidates GROUP BY status`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var status string
			var n int

			if err := rows.Scan(&status, &n); err != nil {
				return err
			}

			counts[status] = n
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return counts, nil
}
