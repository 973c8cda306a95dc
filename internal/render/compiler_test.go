package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubCompiler drops an executable shell script standing in for the
// LaTeX toolchain and returns its path. The script records its working
// directory into workdirFile so tests can verify scratch cleanup.
func writeStubCompiler(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	script := "#!/bin/sh\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestCompileSuccessProducesPDFAndCleansUp(t *testing.T) {
	workdirFile := filepath.Join(t.TempDir(), "workdir")
	t.Setenv("RENDER_WORKDIR_FILE", workdirFile)

	binary := writeStubCompiler(t, `echo "$PWD" > "$RENDER_WORKDIR_FILE"
printf '%%PDF-1.4 stub' > "$PWD/document.pdf"
`)
	c := &Compiler{Binary: binary, Timeout: 5 * time.Second}

	pdf, err := c.Compile(context.Background(), `\documentclass{article}\begin{document}x\end{document}`)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "%PDF")

	recorded, err := os.ReadFile(workdirFile)
	require.NoError(t, err)
	workDir := strings.TrimSpace(string(recorded))
	_, statErr := os.Stat(workDir)
	assert.True(t, os.IsNotExist(statErr), "scratch directory should be removed after compile")
}

func TestCompileTimeoutKillsProcessAndCleansUp(t *testing.T) {
	workdirFile := filepath.Join(t.TempDir(), "workdir")
	t.Setenv("RENDER_WORKDIR_FILE", workdirFile)

	binary := writeStubCompiler(t, `echo "$PWD" > "$RENDER_WORKDIR_FILE"
sleep 10
`)
	c := &Compiler{Binary: binary, Timeout: 200 * time.Millisecond}

	_, err := c.Compile(context.Background(), `\documentclass{article}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "expected ErrTimeout, got %v", err)

	recorded, readErr := os.ReadFile(workdirFile)
	require.NoError(t, readErr)
	workDir := strings.TrimSpace(string(recorded))
	_, statErr := os.Stat(workDir)
	assert.True(t, os.IsNotExist(statErr), "scratch directory should be removed after timeout")
}

func TestCompileFailureCarriesDiagnosticOutput(t *testing.T) {
	binary := writeStubCompiler(t, `echo "! LaTeX Error: missing \\begin{document}"
exit 1
`)
	c := &Compiler{Binary: binary, Timeout: 5 * time.Second}

	_, err := c.Compile(context.Background(), "not latex")
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr), "expected *CompileError, got %v", err)
	assert.Contains(t, compileErr.Output, "LaTeX Error")
}

func TestCompileMissingArtifactIsCompileError(t *testing.T) {
	binary := writeStubCompiler(t, "exit 0\n")
	c := &Compiler{Binary: binary, Timeout: 5 * time.Second}

	_, err := c.Compile(context.Background(), `\documentclass{article}`)
	require.Error(t, err)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr), "expected *CompileError, got %v", err)
	assert.Contains(t, compileErr.Err.Error(), "no pdf")
}

func TestCompileMissingBinary(t *testing.T) {
	c := &Compiler{Binary: "definitely-not-a-latex-binary", Timeout: time.Second}

	_, err := c.Compile(context.Background(), `\documentclass{article}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompilerNotFound), "expected ErrCompilerNotFound, got %v", err)
}
