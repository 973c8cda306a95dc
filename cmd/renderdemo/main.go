package main

// Compile a sample document with the local LaTeX toolchain:
//   go run ./cmd/renderdemo -out ./out/sample.pdf

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cvforge-backend/internal/latex"
	"cvforge-backend/internal/render"
	"cvforge-backend/internal/shared/config"
)

const sampleDocument = `\documentclass[a4paper,10pt]{article}
\begin{document}
\section*{Jane Doe}
Senior Engineer with experience in Go, distributed systems and 100\% test coverage.
\end{document}
`

func main() {
	cfg := config.Load()

	outPath := flag.String("out", "./out/sample.pdf", "output path for the compiled PDF")
	flag.Parse()

	compiler := &render.Compiler{Binary: cfg.LatexBinary, Timeout: cfg.RenderTimeout}
	pdf, err := compiler.Compile(context.Background(), latex.EnsureInputenc(sampleDocument))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%d bytes)\n", *outPath, len(pdf))
}
