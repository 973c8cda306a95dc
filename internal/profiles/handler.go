package profiles

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvforge-backend/internal/shared/server/middleware"
	"cvforge-backend/internal/shared/server/respond"
)

const entryDateLayout = "2006-01-02"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.update)
	rg.POST("/profile/education", h.addEducation)
	rg.POST("/profile/experience", h.addExperience)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	snap, err := h.Svc.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "failed to load profile")
		return
	}

	respond.JSON(c, http.StatusOK, toSnapshotResponse(snap))
}

type updateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	LinkedInURL  string `json:"linkedinUrl"`
	Summary      string `json:"summary"`
	Skills       string `json:"skills"`
	Publications string `json:"publications"`
	Projects     string `json:"projects"`
	Interests    string `json:"interests"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Update(c.Request.Context(), userID, UpdateInput{
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		LinkedInURL:  strings.TrimSpace(req.LinkedInURL),
		Summary:      req.Summary,
		Skills:       req.Skills,
		Publications: req.Publications,
		Projects:     req.Projects,
		Interests:    req.Interests,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update profile")
		return
	}

	respond.JSON(c, http.StatusOK, toProfileResponse(profile))
}

type addEducationRequest struct {
	Level            string `json:"level"`
	Institution      string `json:"institution"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Specialization   string `json:"specialization"`
	Thesis           string `json:"thesis"`
	RelevantSubjects string `json:"relevantSubjects"`
}

func (h *Handler) addEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req addEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	start, end, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	edu, err := h.Svc.AddEducation(c.Request.Context(), userID, EducationInput{
		Level:            strings.TrimSpace(req.Level),
		Institution:      strings.TrimSpace(req.Institution),
		Location:         strings.TrimSpace(req.Location),
		StartDate:        start,
		EndDate:          end,
		Specialization:   strings.TrimSpace(req.Specialization),
		Thesis:           strings.TrimSpace(req.Thesis),
		RelevantSubjects: strings.TrimSpace(req.RelevantSubjects),
	})
	if err != nil {
		respondServiceError(c, err, "failed to add education")
		return
	}

	respond.JSON(c, http.StatusCreated, toEducationResponse(edu))
}

type addExperienceRequest struct {
	Company     string `json:"company"`
	Location    string `json:"location"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

func (h *Handler) addExperience(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req addExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	start, end, ok := parseDateRange(c, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	exp, err := h.Svc.AddExperience(c.Request.Context(), userID, ExperienceInput{
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Title:       strings.TrimSpace(req.Title),
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, "failed to add experience")
		return
	}

	respond.JSON(c, http.StatusCreated, toExperienceResponse(exp))
}

// parseDateRange parses ISO dates from the request, writing a validation
// error itself when a date is malformed. An empty end date means ongoing.
func parseDateRange(c *gin.Context, startRaw, endRaw string) (time.Time, *time.Time, bool) {
	start, err := time.Parse(entryDateLayout, strings.TrimSpace(startRaw))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "startDate must be YYYY-MM-DD", nil)
		return time.Time{}, nil, false
	}

	var end *time.Time
	if trimmed := strings.TrimSpace(endRaw); trimmed != "" {
		parsed, err := time.Parse(entryDateLayout, trimmed)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "endDate must be YYYY-MM-DD", nil)
			return time.Time{}, nil, false
		}
		end = &parsed
	}
	return start, end, true
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		respond.Error(c, http.StatusBadRequest, "validation_error", "endDate must not be before startDate", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

type profileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	LinkedInURL  string `json:"linkedinUrl"`
	Summary      string `json:"summary"`
	Skills       string `json:"skills"`
	Publications string `json:"publications"`
	Projects     string `json:"projects"`
	Interests    string `json:"interests"`
	UpdatedAt    string `json:"updatedAt"`
}

type educationResponse struct {
	ID               string  `json:"id"`
	Level            string  `json:"level"`
	Institution      string  `json:"institution"`
	Location         string  `json:"location"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
	Specialization   string  `json:"specialization"`
	Thesis           string  `json:"thesis"`
	RelevantSubjects string  `json:"relevantSubjects"`
}

type experienceResponse struct {
	ID          string  `json:"id"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Title       string  `json:"title"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
}

type snapshotResponse struct {
	Profile    profileResponse      `json:"profile"`
	Education  []educationResponse  `json:"education"`
	Experience []experienceResponse `json:"experience"`
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		Name:         p.Name,
		Phone:        p.Phone,
		LinkedInURL:  p.LinkedInURL,
		Summary:      p.Summary,
		Skills:       p.Skills,
		Publications: p.Publications,
		Projects:     p.Projects,
		Interests:    p.Interests,
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toEducationResponse(e Education) educationResponse {
	return educationResponse{
		ID:               e.ID,
		Level:            e.Level,
		Institution:      e.Institution,
		Location:         e.Location,
		StartDate:        e.StartDate.Format(entryDateLayout),
		EndDate:          formatOptionalDate(e.EndDate),
		Specialization:   e.Specialization,
		Thesis:           e.Thesis,
		RelevantSubjects: e.RelevantSubjects,
	}
}

func toExperienceResponse(e Experience) experienceResponse {
	return experienceResponse{
		ID:          e.ID,
		Company:     e.Company,
		Location:    e.Location,
		Title:       e.Title,
		StartDate:   e.StartDate.Format(entryDateLayout),
		EndDate:     formatOptionalDate(e.EndDate),
		Description: e.Description,
	}
}

func toSnapshotResponse(snap Snapshot) snapshotResponse {
	out := snapshotResponse{
		Profile:    toProfileResponse(snap.Profile),
		Education:  make([]educationResponse, 0, len(snap.Education)),
		Experience: make([]experienceResponse, 0, len(snap.Experience)),
	}
	for _, edu := range snap.Education {
		out.Education = append(out.Education, toEducationResponse(edu))
	}
	for _, exp := range snap.Experience {
		out.Experience = append(out.Experience, toExperienceResponse(exp))
	}
	return out
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entryDateLayout)
	return &s
}
