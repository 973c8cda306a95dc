package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cvforge-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "test-model", 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client, srv
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func TestGenerateDocument(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}
		chatReply(t, w, `{"latex_code": "\\documentclass{article}"}`)
	})

	out, err := client.GenerateDocument(context.Background(), llm.GenerateInput{Label: "cv", Prompt: "make a cv"})
	if err != nil {
		t.Fatalf("generate document: %v", err)
	}
	if out.LatexCode != `\documentclass{article}` {
		t.Fatalf("unexpected latex code %q", out.LatexCode)
	}
	if len(out.Raw) == 0 {
		t.Fatalf("expected raw payload")
	}
}

func TestGenerateDocumentSchemaMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong key", content: `{"document": "x"}`},
		{name: "empty value", content: `{"latex_code": ""}`},
		{name: "not json", content: `\documentclass{article}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				chatReply(t, w, tt.content)
			})
			_, err := client.GenerateDocument(context.Background(), llm.GenerateInput{Label: "cv", Prompt: "p"})
			if !errors.Is(err, llm.ErrSchema) {
				t.Fatalf("expected ErrSchema, got %v", err)
			}
		})
	}
}

func TestGenerateDocumentProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit"}}`))
	})

	_, err := client.GenerateDocument(context.Background(), llm.GenerateInput{Label: "cv", Prompt: "p"})
	if err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestExtractJobDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"job_title": "Senior Software Engineer", "company": "Tech Innovators Inc."}`)
	})

	details, err := client.ExtractJobDetails(context.Background(), "We are seeking a Senior Software Engineer at Tech Innovators Inc.")
	if err != nil {
		t.Fatalf("extract job details: %v", err)
	}
	if details.JobTitle != "Senior Software Engineer" {
		t.Fatalf("unexpected job title %q", details.JobTitle)
	}
	if details.Company != "Tech Innovators Inc." {
		t.Fatalf("unexpected company %q", details.Company)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model", time.Second); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("key", "", time.Second); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
