package account

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cvforge-backend/internal/generations"
	"cvforge-backend/internal/profiles"
	"cvforge-backend/internal/users"
)

func newTestService(t *testing.T) (*Service, profiles.Repo, generations.Repo, users.Repo) {
	t.Helper()
	profileRepo := profiles.NewMemoryRepo()
	genRepo := generations.NewMemoryRepo()
	userRepo := users.NewMemoryRepo()
	return NewService(profileRepo, genRepo, userRepo), profileRepo, genRepo, userRepo
}

func seedGeneration(t *testing.T, repo generations.Repo, id, userID string) {
	t.Helper()
	raw, _ := json.Marshal(map[string]string{"latex_code": "x"})
	err := repo.Create(context.Background(), generations.Generation{
		ID:        id,
		UserID:    userID,
		Kind:      generations.KindCV,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed generation: %v", err)
	}
}

func TestClaimGuestMovesGenerationsAndProfile(t *testing.T) {
	svc, profileRepo, genRepo, _ := newTestService(t)
	ctx := context.Background()

	guest := "guest:abc"
	authed := "google:123"

	seedGeneration(t, genRepo, "gen-1", guest)
	seedGeneration(t, genRepo, "gen-2", guest)

	p, err := profileRepo.EnsureProfile(ctx, guest, "profile-guest")
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	p.Name = "Guest Jane"
	if err := profileRepo.UpdateProfile(ctx, p); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	res, err := svc.ClaimGuest(ctx, guest, authed)
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if res.MigratedGenerations != 2 {
		t.Fatalf("expected 2 migrated generations, got %d", res.MigratedGenerations)
	}
	if !res.MigratedProfile {
		t.Fatal("expected guest profile to be adopted")
	}

	if gens, _ := genRepo.ListByUser(ctx, guest); len(gens) != 0 {
		t.Fatalf("expected guest generations gone, got %d", len(gens))
	}
	if gens, _ := genRepo.ListByUser(ctx, authed); len(gens) != 2 {
		t.Fatalf("expected 2 generations for authed user, got %d", len(gens))
	}
	adopted, err := profileRepo.GetByUser(ctx, authed)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if adopted.Name != "Guest Jane" {
		t.Fatalf("expected adopted profile name, got %q", adopted.Name)
	}
}

func TestClaimGuestKeepsExistingProfile(t *testing.T) {
	svc, profileRepo, genRepo, _ := newTestService(t)
	ctx := context.Background()

	guest := "guest:abc"
	authed := "google:123"

	existing, err := profileRepo.EnsureProfile(ctx, authed, "profile-authed")
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	existing.Name = "Real Jane"
	if err := profileRepo.UpdateProfile(ctx, existing); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := profileRepo.EnsureProfile(ctx, guest, "profile-guest"); err != nil {
		t.Fatalf("EnsureProfile guest: %v", err)
	}
	seedGeneration(t, genRepo, "gen-1", guest)

	res, err := svc.ClaimGuest(ctx, guest, authed)
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if res.MigratedProfile {
		t.Fatal("expected existing profile to win over guest profile")
	}
	kept, _ := profileRepo.GetByUser(ctx, authed)
	if kept.Name != "Real Jane" {
		t.Fatalf("expected existing profile untouched, got %q", kept.Name)
	}
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	svc, profileRepo, genRepo, userRepo := newTestService(t)
	ctx := context.Background()

	userID := "google:123"
	if err := userRepo.Upsert(ctx, users.User{ID: userID, Email: "jane@example.com"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := profileRepo.EnsureProfile(ctx, userID, "profile-1"); err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	seedGeneration(t, genRepo, "gen-1", userID)

	if err := svc.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := profileRepo.GetByUser(ctx, userID); !errors.Is(err, profiles.ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
	if gens, _ := genRepo.ListByUser(ctx, userID); len(gens) != 0 {
		t.Fatalf("expected generations gone, got %d", len(gens))
	}
	if _, err := userRepo.GetByID(ctx, userID); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}
