package render

import (
	"errors"
	"fmt"
)

var (
	// ErrCompilerNotFound indicates the configured LaTeX binary is not on PATH.
	ErrCompilerNotFound = errors.New("latex compiler not found")

	// ErrTimeout indicates the compile subprocess exceeded its deadline.
	ErrTimeout = errors.New("latex compile timed out")

	// ErrEmptyDocument indicates the generation holds no markup to compile.
	ErrEmptyDocument = errors.New("generation has no latex content")
)

// CompileError carries the compiler's diagnostic output for a failed run.
type CompileError struct {
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("latex compile failed: %v", e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
