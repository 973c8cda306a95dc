package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cvforge-backend/internal/generations"
	"cvforge-backend/internal/profiles"
	"cvforge-backend/internal/users"
)

// Service owns cross-aggregate account operations: claiming guest data
// after login and deleting an account with everything it owns.
type Service struct {
	ProfileRepo    profiles.Repo
	GenerationRepo generations.Repo
	UserRepo       users.Repo
}

type ClaimResult struct {
	MigratedGenerations int  `json:"migratedGenerations"`
	MigratedProfile     bool `json:"migratedProfile"`
}

func NewService(profileRepo profiles.Repo, generationRepo generations.Repo, userRepo users.Repo) *Service {
	return &Service{ProfileRepo: profileRepo, GenerationRepo: generationRepo, UserRepo: userRepo}
}

// ClaimGuest moves a guest identity's generations to the authed user. The
// guest profile moves too, but only when the authed user has none yet; the
// unique user_id constraint admits a single profile per identity.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if db := s.pgDB(); db != nil {
		return claimWithTx(ctx, db, guestUserID, authedUserID)
	}
	return s.claimInMemory(ctx, guestUserID, authedUserID)
}

// DeleteAccount removes the user's profile subtree, generations, and user
// row. Against Postgres the whole removal is one transaction.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("userID is required")
	}

	if db := s.pgDB(); db != nil {
		return deleteWithTx(ctx, db, userID)
	}

	if err := s.ProfileRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.GenerationRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.UserRepo.Delete(ctx, userID)
}

// pgDB returns the shared database handle when every repo is Postgres
// backed, enabling transactional claims and deletes.
func (s *Service) pgDB() *sql.DB {
	profilePG, ok := s.ProfileRepo.(*profiles.PGRepo)
	if !ok || profilePG == nil || profilePG.DB == nil {
		return nil
	}
	genPG, ok := s.GenerationRepo.(*generations.PGRepo)
	if !ok || genPG == nil || genPG.DB == nil {
		return nil
	}
	userPG, ok := s.UserRepo.(*users.PGRepo)
	if !ok || userPG == nil || userPG.DB == nil {
		return nil
	}
	return profilePG.DB
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	genRes, err := tx.ExecContext(ctx,
		`UPDATE generations SET user_id = $1 WHERE user_id = $2`,
		authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	genCount, _ := genRes.RowsAffected()

	profileRes, err := tx.ExecContext(ctx, `
UPDATE profiles SET user_id = $1
WHERE user_id = $2
  AND NOT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`,
		authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	profileCount, _ := profileRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{
		MigratedGenerations: int(genCount),
		MigratedProfile:     profileCount > 0,
	}, nil
}

func deleteWithTx(ctx context.Context, db *sql.DB, userID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Education and experience rows cascade from the profile delete.
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM generations WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Service) claimInMemory(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	var res ClaimResult

	gens, err := s.GenerationRepo.ListByUser(ctx, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	for _, gen := range gens {
		gen.UserID = authedUserID
		if err := s.GenerationRepo.Create(ctx, gen); err != nil {
			return ClaimResult{}, err
		}
		res.MigratedGenerations++
	}
	if err := s.GenerationRepo.DeleteByUser(ctx, guestUserID); err != nil {
		return ClaimResult{}, err
	}

	// Only adopt the guest profile when the authed user has none.
	if _, err := s.ProfileRepo.GetByUser(ctx, authedUserID); errors.Is(err, profiles.ErrNotFound) {
		guestSnap, snapErr := snapshotProfile(ctx, s.ProfileRepo, guestUserID)
		if snapErr == nil {
			if copyErr := copyProfile(ctx, s.ProfileRepo, guestSnap, authedUserID); copyErr == nil {
				res.MigratedProfile = true
			}
		}
	}
	if err := s.ProfileRepo.DeleteByUser(ctx, guestUserID); err != nil {
		return ClaimResult{}, err
	}
	return res, nil
}

func snapshotProfile(ctx context.Context, repo profiles.Repo, userID string) (profiles.Snapshot, error) {
	p, err := repo.GetByUser(ctx, userID)
	if err != nil {
		return profiles.Snapshot{}, err
	}
	edu, err := repo.ListEducation(ctx, p.ID)
	if err != nil {
		return profiles.Snapshot{}, err
	}
	exp, err := repo.ListExperience(ctx, p.ID)
	if err != nil {
		return profiles.Snapshot{}, err
	}
	return profiles.Snapshot{Profile: p, Education: edu, Experience: exp}, nil
}

func copyProfile(ctx context.Context, repo profiles.Repo, snap profiles.Snapshot, targetUserID string) error {
	target, err := repo.EnsureProfile(ctx, targetUserID, snap.Profile.ID+":claimed")
	if err != nil {
		return err
	}
	copied := snap.Profile
	copied.ID = target.ID
	copied.UserID = targetUserID
	if err := repo.UpdateProfile(ctx, copied); err != nil {
		return err
	}
	for _, edu := range snap.Education {
		edu.ProfileID = target.ID
		if err := repo.AddEducation(ctx, edu); err != nil {
			return err
		}
	}
	for _, exp := range snap.Experience {
		exp.ProfileID = target.ID
		if err := repo.AddExperience(ctx, exp); err != nil {
			return err
		}
	}
	return nil
}
