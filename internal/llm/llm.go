package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the LLM provider used for document generation. It is
// constructed once in bootstrap and injected into services; nothing in
// this codebase reaches for a package-level client.
type Client interface {
	// GenerateDocument sends a prompt and returns the single-field
	// structured response {"latex_code": "..."}.
	GenerateDocument(ctx context.Context, input GenerateInput) (DocumentOutput, error)

	// ExtractJobDetails pulls the job title and company out of a job
	// description. Callers treat failures as best-effort.
	ExtractJobDetails(ctx context.Context, jobDescription string) (JobDetails, error)
}

// GenerateInput carries one generation prompt.
type GenerateInput struct {
	// Label tags the request for logs and metrics ("cv", "cover_letter").
	Label  string
	Prompt string
}

// DocumentOutput is the validated provider response.
type DocumentOutput struct {
	// LatexCode is the markup document, still transport-escaped.
	LatexCode string
	// Raw is the full JSON object the provider returned.
	Raw json.RawMessage
}

// JobDetails holds fields extracted from a job description.
type JobDetails struct {
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

var (
	// ErrSchema indicates the provider returned output that does not
	// match the requested single-field schema.
	ErrSchema = errors.New("llm output does not match schema")

	// ErrNotImplemented is returned by the placeholder client.
	ErrNotImplemented = errors.New("LLM not implemented")
)

// PlaceholderClient is a stub implementation for unconfigured dev setups.
type PlaceholderClient struct{}

// GenerateDocument returns ErrNotImplemented.
func (PlaceholderClient) GenerateDocument(ctx context.Context, input GenerateInput) (DocumentOutput, error) {
	_ = ctx
	_ = input
	return DocumentOutput{}, ErrNotImplemented
}

// ExtractJobDetails returns ErrNotImplemented.
func (PlaceholderClient) ExtractJobDetails(ctx context.Context, jobDescription string) (JobDetails, error) {
	_ = ctx
	_ = jobDescription
	return JobDetails{}, ErrNotImplemented
}
