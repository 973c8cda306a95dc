package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for profiles and their entries.
type Service struct {
	Repo Repo
}

// Get returns the user's profile, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.EnsureProfile(ctx, userID, uuid.NewString())
}

// UpdateInput holds the editable profile fields.
type UpdateInput struct {
	Name         string
	Phone        string
	LinkedInURL  string
	Summary      string
	Skills       string
	Publications string
	Projects     string
	Interests    string
}

// Update overwrites the user's profile fields, creating the profile first
// when none exists.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}

	p, err := s.Repo.EnsureProfile(ctx, userID, uuid.NewString())
	if err != nil {
		return Profile{}, err
	}

	p.Name = in.Name
	p.Phone = in.Phone
	p.LinkedInURL = in.LinkedInURL
	p.Summary = in.Summary
	p.Skills = in.Skills
	p.Publications = in.Publications
	p.Projects = in.Projects
	p.Interests = in.Interests

	if err := s.Repo.UpdateProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetByUser(ctx, userID)
}

// EducationInput describes a new education entry.
type EducationInput struct {
	Level            string
	Institution      string
	Location         string
	StartDate        time.Time
	EndDate          *time.Time
	Specialization   string
	Thesis           string
	RelevantSubjects string
}

// AddEducation appends an education entry to the user's profile.
func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (Education, error) {
	if userID == "" {
		return Education{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if in.Institution == "" {
		return Education{}, fmt.Errorf("%w: institution required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() {
		return Education{}, fmt.Errorf("%w: start date required", ErrInvalidInput)
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Education{}, ErrInvalidDateRange
	}

	p, err := s.Repo.EnsureProfile(ctx, userID, uuid.NewString())
	if err != nil {
		return Education{}, err
	}

	edu := Education{
		ID:               uuid.NewString(),
		ProfileID:        p.ID,
		Level:            in.Level,
		Institution:      in.Institution,
		Location:         in.Location,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Specialization:   in.Specialization,
		Thesis:           in.Thesis,
		RelevantSubjects: in.RelevantSubjects,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.AddEducation(ctx, edu); err != nil {
		return Education{}, err
	}
	return edu, nil
}

// ExperienceInput describes a new work experience entry.
type ExperienceInput struct {
	Company     string
	Location    string
	Title       string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// AddExperience appends a work experience entry to the user's profile.
func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (Experience, error) {
	if userID == "" {
		return Experience{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if in.Company == "" {
		return Experience{}, fmt.Errorf("%w: company required", ErrInvalidInput)
	}
	if in.StartDate.IsZero() {
		return Experience{}, fmt.Errorf("%w: start date required", ErrInvalidInput)
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Experience{}, ErrInvalidDateRange
	}

	p, err := s.Repo.EnsureProfile(ctx, userID, uuid.NewString())
	if err != nil {
		return Experience{}, err
	}

	exp := Experience{
		ID:          uuid.NewString(),
		ProfileID:   p.ID,
		Company:     in.Company,
		Location:    in.Location,
		Title:       in.Title,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.AddExperience(ctx, exp); err != nil {
		return Experience{}, err
	}
	return exp, nil
}

// Snapshot returns the profile with all entries, for prompt assembly.
func (s *Service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	p, err := s.Repo.EnsureProfile(ctx, userID, uuid.NewString())
	if err != nil {
		return Snapshot{}, err
	}
	edu, err := s.Repo.ListEducation(ctx, p.ID)
	if err != nil {
		return Snapshot{}, err
	}
	exp, err := s.Repo.ListExperience(ctx, p.ID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Profile: p, Education: edu, Experience: exp}, nil
}

// DeleteByUser removes the user's profile and all its entries.
func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.DeleteByUser(ctx, userID)
}
