package generations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvforge-backend/internal/shared/server/middleware"
	"cvforge-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generations", h.generate)
	rg.GET("/generations", h.list)
	rg.GET("/generations/:id", h.get)
}

type generateRequest struct {
	JobDescription string   `json:"jobDescription"`
	Kinds          []string `json:"kinds"`
}

type kindResultResponse struct {
	Kind       string              `json:"kind"`
	Generation *generationResponse `json:"generation,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type generateResponse struct {
	Results []kindResultResponse `json:"results"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	userEmail := middleware.UserEmailFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	results, err := h.Svc.Generate(c.Request.Context(), userID, userEmail, Request{
		JobDescription: strings.TrimSpace(req.JobDescription),
		Kinds:          req.Kinds,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate documents", nil)
		}
		return
	}

	out := generateResponse{Results: make([]kindResultResponse, 0, len(results))}
	anySuccess := false
	for _, res := range results {
		if res.Err != nil {
			out.Results = append(out.Results, kindResultResponse{Kind: res.Kind, Error: res.Err.Error()})
			continue
		}
		anySuccess = true
		gen := toGenerationResponse(res.Generation)
		out.Results = append(out.Results, kindResultResponse{Kind: res.Kind, Generation: &gen})
	}

	// A request where every kind failed is an upstream failure, not a
	// partial success.
	status := http.StatusCreated
	if !anySuccess {
		status = http.StatusBadGateway
	}
	respond.JSON(c, status, out)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	gens, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generations", nil)
		return
	}

	out := make([]generationResponse, 0, len(gens))
	for _, gen := range gens {
		out = append(out, toGenerationResponse(gen))
	}
	respond.JSON(c, http.StatusOK, gin.H{"generations": out})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	gen, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "generation belongs to another user", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load generation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toGenerationResponse(gen))
}

type generationResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	JobDescription string `json:"jobDescription"`
	JobTitle       string `json:"jobTitle"`
	Company        string `json:"company"`
	CreatedAt      string `json:"createdAt"`
}

func toGenerationResponse(g Generation) generationResponse {
	return generationResponse{
		ID:             g.ID,
		Kind:           g.Kind,
		JobDescription: g.JobDescription,
		JobTitle:       g.JobTitle,
		Company:        g.Company,
		CreatedAt:      g.CreatedAt.UTC().Format(time.RFC3339),
	}
}
