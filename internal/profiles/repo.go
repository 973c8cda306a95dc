package profiles

import "context"

// Repo defines persistence operations for the profile aggregate.
type Repo interface {
	// EnsureProfile returns the user's profile, creating an empty one
	// when none exists yet.
	EnsureProfile(ctx context.Context, userID, profileID string) (Profile, error)
	GetByUser(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, profile Profile) error

	AddEducation(ctx context.Context, edu Education) error
	ListEducation(ctx context.Context, profileID string) ([]Education, error)

	AddExperience(ctx context.Context, exp Experience) error
	ListExperience(ctx context.Context, profileID string) ([]Experience, error)

	// DeleteByUser removes the profile and, through the schema cascade,
	// its education and experience entries.
	DeleteByUser(ctx context.Context, userID string) error
}
