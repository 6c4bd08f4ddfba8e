package hltdiff

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Differ runs a single comparison.
type Differ interface {
	Diff(ctx context.Context, req Request) (Output, error)
	Command(req Request) []string
}

// BinaryRunner shells out to the hltDiff binary.
type BinaryRunner struct {
	binaryPath string
}

// NewBinaryRunner creates a BinaryRunner that invokes the given binary path.
func NewBinaryRunner(binaryPath string) *BinaryRunner {
	return &BinaryRunner{binaryPath: binaryPath}
}

// Command returns the full command line that Diff would execute.
func (r *BinaryRunner) Command(req Request) []string {
	return append([]string{r.binaryPath}, req.Args()...)
}

// Diff runs hltDiff and blocks until it exits. Output captured before a
// failure is returned alongside the error.
func (r *BinaryRunner) Diff(ctx context.Context, req Request) (Output, error) {
	cmd := exec.CommandContext(ctx, r.binaryPath, req.Args()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return out, fmt.Errorf("hltDiff %s: %w (stderr: %s)", req.Process, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
