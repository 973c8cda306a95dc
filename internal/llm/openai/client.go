package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cvforge-backend/internal/llm"
	"cvforge-backend/internal/shared/telemetry"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

const (
	systemPromptDocument = "You are a LaTeX document generation engine. Respond with JSON only. " +
		"The output must be a single JSON object with exactly one key \"latex_code\" whose value is the full LaTeX document as an escaped string."
	systemPromptJobDetails = "You extract structured facts from job descriptions. Respond with JSON only. " +
		"The output must be a single JSON object with exactly the keys \"job_title\" and \"company\"; use an empty string when a value is not stated."
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type latexPayload struct {
	LatexCode string `json:"latex_code"`
}

// GenerateDocument sends the prompt and validates the single-field response.
func (c *Client) GenerateDocument(ctx context.Context, input llm.GenerateInput) (llm.DocumentOutput, error) {
	raw, err := c.completeOnce(ctx, input.Label, systemPromptDocument, input.Prompt)
	if err != nil {
		return llm.DocumentOutput{}, err
	}

	var payload latexPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return llm.DocumentOutput{}, fmt.Errorf("%w: %v", llm.ErrSchema, err)
	}
	if strings.TrimSpace(payload.LatexCode) == "" {
		return llm.DocumentOutput{}, fmt.Errorf("%w: latex_code missing or empty", llm.ErrSchema)
	}

	return llm.DocumentOutput{LatexCode: payload.LatexCode, Raw: raw}, nil
}

// ExtractJobDetails asks the model for the job title and company.
func (c *Client) ExtractJobDetails(ctx context.Context, jobDescription string) (llm.JobDetails, error) {
	user := fmt.Sprintf("Job Description:\n%s", jobDescription)
	raw, err := c.completeOnce(ctx, "job_details", systemPromptJobDetails, user)
	if err != nil {
		return llm.JobDetails{}, err
	}

	var details llm.JobDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return llm.JobDetails{}, fmt.Errorf("%w: %v", llm.ErrSchema, err)
	}
	return details, nil
}

func (c *Client) completeOnce(ctx context.Context, label, system, user string) (json.RawMessage, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	reqBody.Temperature = &temp

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: invalid JSON from OpenAI", llm.ErrSchema)
	}

	logUsage(c.model, label, parsed.Usage)
	return json.RawMessage(content), nil
}

func logUsage(model, label string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	fields := map[string]any{"model": model, "label": label}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
