package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTransportEscapes(t *testing.T) {
	raw := `\\documentclass{article}\n\\begin{document}\nHello\nWorld\n\\end{document}`
	got := Clean(raw)

	assert.Contains(t, got, "\n")
	assert.Contains(t, got, `\documentclass{article}`)
	assert.Contains(t, got, `\begin{document}`)
	assert.NotContains(t, got, `\\documentclass`)
}

func TestCleanIdempotentOnCleanInput(t *testing.T) {
	clean := "\\documentclass{article}\n\\begin{document}\nline one \\\\\nline two\n\\end{document}\n"

	once := Clean(clean)
	twice := Clean(once)

	require.Equal(t, clean, once, "clean input must pass through unchanged")
	assert.Equal(t, once, twice)
	assert.Contains(t, twice, "\\\\\n", "intentional LaTeX line breaks survive")
}

func TestCleanEmpty(t *testing.T) {
	assert.Equal(t, "", Clean(""))
}

func TestCleanFallbackForNonJSONEscapes(t *testing.T) {
	// \% is not a valid JSON escape, forcing the manual path.
	raw := `\\section{Results}\nImproved throughput by 40\%`
	got := Clean(raw)

	assert.Contains(t, got, `\section{Results}`)
	assert.Contains(t, got, "\nImproved throughput by 40")
	assert.Contains(t, got, `\%`)
}

func TestEnsureInputenc(t *testing.T) {
	doc := "\\documentclass[a4paper,10pt]{article}\n\\begin{document}\nhi\n\\end{document}\n"
	got := EnsureInputenc(doc)

	require.Contains(t, got, `\usepackage[utf8]{inputenc}`)
	assert.Less(t,
		strings.Index(got, `\usepackage[utf8]{inputenc}`),
		strings.Index(got, `\begin{document}`),
		"directive belongs in the preamble")

	// Already present: unchanged.
	assert.Equal(t, got, EnsureInputenc(got))

	// No documentclass: unchanged.
	assert.Equal(t, "hello", EnsureInputenc("hello"))
}
