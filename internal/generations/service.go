package generations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cvforge-backend/internal/latex"
	"cvforge-backend/internal/llm"
	"cvforge-backend/internal/profiles"
	"cvforge-backend/internal/shared/metrics"
	"cvforge-backend/internal/shared/telemetry"
)

// Service orchestrates document generation: assemble profile info, build
// the per-kind prompt, call the model, persist the result.
type Service struct {
	Repo     Repo
	Profiles *profiles.Service
	LLM      llm.Client
}

// Request is one generation request. Kinds picks which documents to
// produce; each kind is processed independently.
type Request struct {
	JobDescription string
	Kinds          []string
}

// KindResult is the outcome for a single requested kind. Err is nil on
// success, in which case Generation is populated.
type KindResult struct {
	Kind       string
	Generation Generation
	Err        error
}

// Generate runs the request. Validation failures abort the whole request
// before anything is produced. After that each kind succeeds or fails on
// its own; an earlier kind's persisted record survives a later kind's
// failure. The returned error is non-nil only for whole-request failures.
func (s *Service) Generate(ctx context.Context, userID, userEmail string, req Request) ([]KindResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if req.JobDescription == "" {
		return nil, fmt.Errorf("%w: job description required", ErrInvalidInput)
	}
	if len(req.Kinds) == 0 {
		return nil, fmt.Errorf("%w: select at least one document kind", ErrInvalidInput)
	}
	for _, kind := range req.Kinds {
		if !ValidKind(kind) {
			return nil, fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kind)
		}
	}

	snap, err := s.Profiles.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	profileInfo, err := profiles.FormatInfo(snap, userEmail)
	if err != nil {
		return nil, err
	}

	jobTitle, company := s.extractJobDetails(ctx, req.JobDescription)

	results := make([]KindResult, 0, len(req.Kinds))
	for _, kind := range req.Kinds {
		gen, err := s.generateOne(ctx, userID, kind, req.JobDescription, profileInfo, jobTitle, company)
		if err != nil {
			telemetry.Warn("generation.kind_failed", map[string]any{
				"kind":    kind,
				"user_id": userID,
				"error":   err.Error(),
			})
			metrics.GenerationsTotal.WithLabelValues(kind, "error").Inc()
			results = append(results, KindResult{Kind: kind, Err: err})
			continue
		}
		metrics.GenerationsTotal.WithLabelValues(kind, "ok").Inc()
		results = append(results, KindResult{Kind: kind, Generation: gen})
	}
	return results, nil
}

func (s *Service) generateOne(ctx context.Context, userID, kind, jobDescription, profileInfo, jobTitle, company string) (Generation, error) {
	var prompt string
	switch kind {
	case KindCV:
		prompt = llm.BuildCVPrompt(profileInfo, jobDescription, latex.CVTemplate())
	case KindCoverLetter:
		prompt = llm.BuildCoverLetterPrompt(profileInfo, jobDescription, latex.CoverLetterTemplate())
	default:
		return Generation{}, fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kind)
	}

	started := time.Now()
	out, err := s.LLM.GenerateDocument(ctx, llm.GenerateInput{Label: kind, Prompt: prompt})
	metrics.LLMRequestDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if err != nil {
		return Generation{}, err
	}

	gen := Generation{
		ID:             uuid.NewString(),
		UserID:         userID,
		Kind:           kind,
		JobDescription: jobDescription,
		Payload:        out.Raw,
		JobTitle:       jobTitle,
		Company:        company,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, gen); err != nil {
		return Generation{}, err
	}
	return gen, nil
}

// extractJobDetails pulls a job title and company out of the description.
// Failures are logged and yield empty fields; the generation proceeds.
func (s *Service) extractJobDetails(ctx context.Context, jobDescription string) (string, string) {
	details, err := s.LLM.ExtractJobDetails(ctx, jobDescription)
	if err != nil {
		telemetry.Warn("generation.job_details_failed", map[string]any{"error": err.Error()})
		return "", ""
	}
	return details.JobTitle, details.Company
}

// Get returns a generation after verifying ownership.
func (s *Service) Get(ctx context.Context, userID, generationID string) (Generation, error) {
	if generationID == "" {
		return Generation{}, fmt.Errorf("%w: generation id required", ErrInvalidInput)
	}
	gen, err := s.Repo.GetByID(ctx, generationID)
	if err != nil {
		return Generation{}, err
	}
	if gen.UserID != userID {
		return Generation{}, ErrForbidden
	}
	return gen, nil
}

// List returns the caller's generations newest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Generation, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// DeleteByUser removes all generations owned by the user.
func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.DeleteByUser(ctx, userID)
}
