package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	pdfreader "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"cvforge-backend/internal/shared/telemetry"
)

// Compiler runs the external LaTeX toolchain as a subprocess. Each compile
// happens in a fresh temporary directory that is removed before the call
// returns, whatever the outcome.
type Compiler struct {
	// Binary is the compiler executable, e.g. "pdflatex".
	Binary string
	// Timeout bounds one compile run.
	Timeout time.Duration
}

// Compile writes the document to a scratch directory, runs the compiler,
// and returns the produced PDF bytes. Error kinds: ErrCompilerNotFound,
// ErrTimeout, or *CompileError carrying the compiler's diagnostic output.
func (c *Compiler) Compile(ctx context.Context, document string) ([]byte, error) {
	binary, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, errors.Wrapf(ErrCompilerNotFound, "%s", c.Binary)
	}

	workDir, err := os.MkdirTemp("", "cvforge-render-*")
	if err != nil {
		return nil, errors.Wrap(err, "create scratch directory")
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, "document.tex")
	if err := os.WriteFile(texPath, []byte(document), 0o600); err != nil {
		return nil, errors.Wrap(err, "write tex source")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", workDir,
		texPath,
	)
	cmd.Dir = workDir

	output, err := cmd.CombinedOutput()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, errors.Wrapf(ErrTimeout, "after %s", c.Timeout)
	}
	if err != nil {
		return nil, &CompileError{Output: string(output), Err: err}
	}

	pdfPath := filepath.Join(workDir, "document.pdf")
	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &CompileError{
			Output: string(output),
			Err:    errors.New("compiler exited cleanly but produced no pdf"),
		}
	}

	logPageCount(pdfPath, pdfBytes)
	return pdfBytes, nil
}

// logPageCount reads the artifact's page count for the request log. The
// read is advisory; stub toolchains in tests produce non-PDF bytes.
func logPageCount(path string, raw []byte) {
	if !strings.HasPrefix(string(raw), "%PDF") {
		return
	}
	f, reader, err := pdfreader.Open(path)
	if err != nil {
		telemetry.Warn("render.pdf_unreadable", map[string]any{"error": err.Error()})
		return
	}
	defer f.Close()
	telemetry.Info("render.compiled", map[string]any{
		"pages":      reader.NumPage(),
		"size_bytes": len(raw),
	})
}
