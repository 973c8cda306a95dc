package render

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvforge-backend/internal/generations"
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

// RegisterRoutes attaches render routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/generations/:id/pdf", h.preview)
	rg.GET("/generations/:id/download", h.download)
}

// preview compiles and returns the PDF for inline viewing.
func (h *Handler) preview(c *gin.Context) {
	h.serve(c, false)
}

// download is the same compile path with an attachment disposition.
func (h *Handler) download(c *gin.Context) {
	h.serve(c, true)
}

func (h *Handler) serve(c *gin.Context, attachment bool) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Render(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondRenderError(c, err)
		return
	}

	disposition := "inline"
	if attachment {
		disposition = fmt.Sprintf("attachment; filename=%q", res.FileName)
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}

func respondRenderError(c *gin.Context, err error) {
	var compileErr *CompileError
	switch {
	case errors.Is(err, generations.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
	case errors.Is(err, generations.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "generation belongs to another user", nil)
	case errors.Is(err, ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_document", "generation has no latex content to compile", nil)
	case errors.Is(err, ErrTimeout):
		respond.Error(c, http.StatusGatewayTimeout, "compile_timeout", "latex compile timed out", nil)
	case errors.Is(err, ErrCompilerNotFound):
		respond.Error(c, http.StatusServiceUnavailable, "compiler_unavailable", "latex compiler is not installed", nil)
	case errors.As(err, &compileErr):
		respond.Error(c, http.StatusUnprocessableEntity, "compile_failed", "latex compile failed", gin.H{"output": compileErr.Output})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render document", nil)
	}
}
