// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package typeset runs the external typesetting engine on generated
// documents. The engine is a black box: it is handed a document path and
// an output directory and either exits zero or fails.
package typeset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

const binXeLaTeX = "xelatex"

// ErrExternalTool is wrapped by every *ToolError.
var ErrExternalTool = errors.New("external typesetting tool failed")

// ToolError reports a typesetter run that exited unsuccessfully.
type ToolError struct {
	Tool     string
	Document string
	ExitCode int // -1 when the process did not report one
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed on %s: exit status %d", e.Tool, e.Document, e.ExitCode)
	}
	return fmt.Sprintf("%s failed on %s: %v", e.Tool, e.Document, e.Err)
}

func (e *ToolError) Unwrap() []error {
	return []error{ErrExternalTool, e.Err}
}

// Typesetter turns a document on disk into a rendered page file.
type Typesetter interface {
	// Name returns the engine name ("xelatex").
	Name() string

	// Render typesets the document at documentPath. A non-zero exit is
	// reported as a *ToolError.
	Render(ctx context.Context, documentPath string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// XeLaTeX runs xelatex with a fixed output directory.
type XeLaTeX struct {
	bin       string
	outputDir string
	output    io.Writer
	exec      executor
}

// NewXeLaTeX returns a typesetter that writes PDFs into outputDir. bin is
// the binary name or path; empty means "xelatex" on PATH. Engine output
// goes to w; pass io.Discard to silence it. The binary must be resolvable.
func NewXeLaTeX(bin, outputDir string, w io.Writer) (*XeLaTeX, error) {
	return newXeLaTeX(defaultExec, bin, outputDir, w)
}

func newXeLaTeX(exec executor, bin, outputDir string, w io.Writer) (*XeLaTeX, error) {
	if bin == "" {
		bin = binXeLaTeX
	}
	if w == nil {
		w = io.Discard
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("typesetter %s not available: %w", bin, err)
	}
	return &XeLaTeX{bin: bin, outputDir: outputDir, output: w, exec: exec}, nil
}

func (x *XeLaTeX) Name() string { return x.bin }

// Render runs the engine once in non-interactive mode so a LaTeX error
// ends the process instead of waiting on stdin.
func (x *XeLaTeX) Render(ctx context.Context, documentPath string) error {
	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", x.outputDir,
		documentPath,
	}
	if err := x.exec.Run(ctx, x.bin, args, x.output, x.output); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("typesetting %s: %w", documentPath, ctxErr)
		}
		return &ToolError{
			Tool:     x.bin,
			Document: documentPath,
			ExitCode: exitCode(err),
			Err:      err,
		}
	}
	return nil
}

// exitCode extracts the process exit status from err, or -1.
func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}
