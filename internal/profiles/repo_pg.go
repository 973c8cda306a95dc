package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `id, user_id, name, phone, linkedin_url, summary, skills, publications, projects, interests, created_at, updated_at`

// EnsureProfile returns the user's profile, inserting an empty row first
// when none exists. The unique index on user_id makes concurrent ensures
// collapse into one row.
func (r *PGRepo) EnsureProfile(ctx context.Context, userID, profileID string) (Profile, error) {
	const insert = `
INSERT INTO profiles (id, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, insert, profileID, userID, time.Now().UTC()); err != nil {
		return Profile{}, err
	}
	return r.GetByUser(ctx, userID)
}

// GetByUser returns the profile owned by the given user.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Phone,
		&p.LinkedInURL,
		&p.Summary,
		&p.Skills,
		&p.Publications,
		&p.Projects,
		&p.Interests,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

// UpdateProfile writes the editable profile fields.
func (r *PGRepo) UpdateProfile(ctx context.Context, profile Profile) error {
	const query = `
UPDATE profiles
SET name = $1, phone = $2, linkedin_url = $3, summary = $4,
    skills = $5, publications = $6, projects = $7, interests = $8,
    updated_at = $9
WHERE user_id = $10`
	res, err := r.DB.ExecContext(ctx, query,
		profile.Name,
		profile.Phone,
		profile.LinkedInURL,
		profile.Summary,
		profile.Skills,
		profile.Publications,
		profile.Projects,
		profile.Interests,
		time.Now().UTC(),
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEducation inserts an education entry.
func (r *PGRepo) AddEducation(ctx context.Context, edu Education) error {
	const query = `
INSERT INTO education_entries (
    id, profile_id, level, institution, location, start_date, end_date,
    specialization, thesis, relevant_subjects, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var endDate sql.NullTime
	if edu.EndDate != nil {
		endDate = sql.NullTime{Time: *edu.EndDate, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		edu.ID,
		edu.ProfileID,
		edu.Level,
		edu.Institution,
		edu.Location,
		edu.StartDate,
		endDate,
		edu.Specialization,
		edu.Thesis,
		edu.RelevantSubjects,
		edu.CreatedAt,
	)
	return err
}

// ListEducation lists education entries newest-first by start date.
func (r *PGRepo) ListEducation(ctx context.Context, profileID string) ([]Education, error) {
	const query = `
SELECT id, profile_id, level, institution, location, start_date, end_date,
       specialization, thesis, relevant_subjects, created_at
FROM education_entries
WHERE profile_id = $1
ORDER BY start_date DESC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Education
	for rows.Next() {
		var edu Education
		var endDate sql.NullTime
		if err := rows.Scan(
			&edu.ID,
			&edu.ProfileID,
			&edu.Level,
			&edu.Institution,
			&edu.Location,
			&edu.StartDate,
			&endDate,
			&edu.Specialization,
			&edu.Thesis,
			&edu.RelevantSubjects,
			&edu.CreatedAt,
		); err != nil {
			return nil, err
		}
		if endDate.Valid {
			edu.EndDate = &endDate.Time
		}
		out = append(out, edu)
	}
	return out, rows.Err()
}

// AddExperience inserts an experience entry.
func (r *PGRepo) AddExperience(ctx context.Context, exp Experience) error {
	const query = `
INSERT INTO experience_entries (
    id, profile_id, company, location, title, start_date, end_date, description, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var endDate sql.NullTime
	if exp.EndDate != nil {
		endDate = sql.NullTime{Time: *exp.EndDate, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query,
		exp.ID,
		exp.ProfileID,
		exp.Company,
		exp.Location,
		exp.Title,
		exp.StartDate,
		endDate,
		exp.Description,
		exp.CreatedAt,
	)
	return err
}

// ListExperience lists experience entries newest-first by start date.
func (r *PGRepo) ListExperience(ctx context.Context, profileID string) ([]Experience, error) {
	const query = `
SELECT id, profile_id, company, location, title, start_date, end_date, description, created_at
FROM experience_entries
WHERE profile_id = $1
ORDER BY start_date DESC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Experience
	for rows.Next() {
		var exp Experience
		var endDate sql.NullTime
		if err := rows.Scan(
			&exp.ID,
			&exp.ProfileID,
			&exp.Company,
			&exp.Location,
			&exp.Title,
			&exp.StartDate,
			&endDate,
			&exp.Description,
			&exp.CreatedAt,
		); err != nil {
			return nil, err
		}
		if endDate.Valid {
			exp.EndDate = &endDate.Time
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// DeleteByUser removes the user's profile; education and experience rows
// go with it via ON DELETE CASCADE.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
