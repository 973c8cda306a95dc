package profiles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo for dev mode and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	byUser     map[string]Profile
	education  map[string][]Education  // profileID -> entries
	experience map[string][]Experience // profileID -> entries
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser:     make(map[string]Profile),
		education:  make(map[string][]Education),
		experience: make(map[string][]Experience),
	}
}

// EnsureProfile returns the user's profile, creating an empty one if needed.
func (r *MemoryRepo) EnsureProfile(ctx context.Context, userID, profileID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byUser[userID]; ok {
		return p, nil
	}
	now := time.Now().UTC()
	p := Profile{ID: profileID, UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.byUser[userID] = p
	return p, nil
}

// GetByUser returns the profile owned by the given user.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUser[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// UpdateProfile writes the editable profile fields.
func (r *MemoryRepo) UpdateProfile(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byUser[profile.UserID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = profile.Name
	existing.Phone = profile.Phone
	existing.LinkedInURL = profile.LinkedInURL
	existing.Summary = profile.Summary
	existing.Skills = profile.Skills
	existing.Publications = profile.Publications
	existing.Projects = profile.Projects
	existing.Interests = profile.Interests
	existing.UpdatedAt = time.Now().UTC()
	r.byUser[profile.UserID] = existing
	return nil
}

// AddEducation stores an education entry.
func (r *MemoryRepo) AddEducation(ctx context.Context, edu Education) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.education[edu.ProfileID] = append(r.education[edu.ProfileID], edu)
	return nil
}

// ListEducation returns education entries newest-first by start date.
func (r *MemoryRepo) ListEducation(ctx context.Context, profileID string) ([]Education, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := append([]Education(nil), r.education[profileID]...)
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartDate.After(entries[j].StartDate)
	})
	return entries, nil
}

// AddExperience stores an experience entry.
func (r *MemoryRepo) AddExperience(ctx context.Context, exp Experience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.experience[exp.ProfileID] = append(r.experience[exp.ProfileID], exp)
	return nil
}

// ListExperience returns experience entries newest-first by start date.
func (r *MemoryRepo) ListExperience(ctx context.Context, profileID string) ([]Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := append([]Experience(nil), r.experience[profileID]...)
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartDate.After(entries[j].StartDate)
	})
	return entries, nil
}

// DeleteByUser removes the profile and its entries.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byUser[userID]
	if !ok {
		return nil
	}
	delete(r.byUser, userID)
	delete(r.education, p.ID)
	delete(r.experience, p.ID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
