package generations

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a generation record.
func (r *PGRepo) Create(ctx context.Context, gen Generation) error {
	const query = `
INSERT INTO generations (id, user_id, job_description, kind, payload, job_title, company, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		gen.ID,
		gen.UserID,
		gen.JobDescription,
		gen.Kind,
		[]byte(gen.Payload),
		gen.JobTitle,
		gen.Company,
		gen.CreatedAt,
	)
	return err
}

const generationColumns = `id, user_id, job_description, kind, payload, job_title, company, created_at`

// GetByID returns a generation by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Generation, error) {
	const query = `
SELECT ` + generationColumns + `
FROM generations
WHERE id = $1`
	var gen Generation
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&gen.ID,
		&gen.UserID,
		&gen.JobDescription,
		&gen.Kind,
		&gen.Payload,
		&gen.JobTitle,
		&gen.Company,
		&gen.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Generation{}, ErrNotFound
		}
		return Generation{}, err
	}
	return gen, nil
}

// ListByUser returns the user's generations newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Generation, error) {
	const query = `
SELECT ` + generationColumns + `
FROM generations
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var gen Generation
		if err := rows.Scan(
			&gen.ID,
			&gen.UserID,
			&gen.JobDescription,
			&gen.Kind,
			&gen.Payload,
			&gen.JobTitle,
			&gen.Company,
			&gen.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, gen)
	}
	return out, rows.Err()
}

// DeleteByUser removes all generations owned by the user.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM generations WHERE user_id = $1`, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
