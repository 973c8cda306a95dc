package render

import (
	"context"
	"errors"
	"strings"

	"cvforge-backend/internal/generations"
	"cvforge-backend/internal/latex"
	"cvforge-backend/internal/shared/metrics"
)

// Service compiles persisted generations to PDF. Rendering never mutates
// stored state; the same generation can be compiled any number of times.
type Service struct {
	Generations *generations.Service
	Compiler    *Compiler
}

// Result is one compiled document.
type Result struct {
	PDF      []byte
	FileName string
}

// Render compiles the generation identified by generationID after
// verifying the caller owns it. An empty markup payload fails before the
// compiler subprocess is started.
func (s *Service) Render(ctx context.Context, userID, generationID string) (Result, error) {
	gen, err := s.Generations.Get(ctx, userID, generationID)
	if err != nil {
		return Result{}, err
	}

	code := gen.LatexCode()
	if strings.TrimSpace(code) == "" {
		metrics.RendersTotal.WithLabelValues("empty").Inc()
		return Result{}, ErrEmptyDocument
	}

	document := latex.EnsureInputenc(latex.Clean(code))

	pdf, err := s.Compiler.Compile(ctx, document)
	if err != nil {
		metrics.RendersTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return Result{}, err
	}

	metrics.RendersTotal.WithLabelValues("ok").Inc()
	return Result{PDF: pdf, FileName: fileName(gen)}, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCompilerNotFound):
		return "compiler_missing"
	default:
		return "compile_error"
	}
}

// fileName derives a download name from the generation's kind and the
// extracted company, falling back to the kind alone.
func fileName(gen generations.Generation) string {
	base := gen.Kind
	if gen.Company != "" {
		base += "_" + sanitize(gen.Company)
	}
	return base + ".pdf"
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
