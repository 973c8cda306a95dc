package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAccountRouter(t *testing.T, svc *Service, isGuest bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "google:123")
		c.Set("isGuest", isGuest)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func TestClaimGuestEndpointMigratesData(t *testing.T) {
	svc, _, genRepo, _ := newTestService(t)
	router := newAccountRouter(t, svc, false)

	guestID := "11111111-1111-1111-1111-111111111111"
	seedGeneration(t, genRepo, "gen-1", "guest:"+guestID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result ClaimResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.MigratedGenerations != 1 {
		t.Fatalf("expected 1 migrated generation, got %d", result.MigratedGenerations)
	}

	gens, err := genRepo.ListByUser(context.Background(), "google:123")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(gens) != 1 {
		t.Fatalf("expected generation moved to authed user, got %d", len(gens))
	}
}

func TestClaimGuestEndpointRejectsGuests(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	router := newAccountRouter(t, svc, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", "11111111-1111-1111-1111-111111111111")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestClaimGuestEndpointValidatesGuestID(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	router := newAccountRouter(t, svc, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", "not-a-uuid")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestDeleteAccountEndpoint(t *testing.T) {
	svc, profileRepo, _, _ := newTestService(t)
	router := newAccountRouter(t, svc, false)

	if _, err := profileRepo.EnsureProfile(context.Background(), "google:123", "profile-1"); err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}
