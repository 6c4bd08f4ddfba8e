package edmdump

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/hltvalidation/trcompare/internal/domain"
)

// Lister reports the TriggerResults process names present in an EDM file.
type Lister interface {
	ProcessNames(ctx context.Context, file string) domain.ListResult
}

// BinaryRunner shells out to the edmDumpEventContent binary.
type BinaryRunner struct {
	binaryPath string
}

// NewBinaryRunner creates a BinaryRunner that invokes the given binary path.
func NewBinaryRunner(binaryPath string) *BinaryRunner {
	return &BinaryRunner{binaryPath: binaryPath}
}

// ProcessNames runs `edmDumpEventContent <file>` and parses its listing.
// Failures are reported through the outcome, never as a panic or a nil result.
func (r *BinaryRunner) ProcessNames(ctx context.Context, file string) domain.ListResult {
	cmd := exec.CommandContext(ctx, r.binaryPath, file)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return domain.ListResult{
			Outcome: domain.ListFailed,
			Err:     fmt.Errorf("%s %s: %w (stderr: %s)", r.binaryPath, file, err, strings.TrimSpace(stderr.String())),
		}
	}

	names, err := ParseProcessNames(&stdout)
	if err != nil {
		return domain.ListResult{
			Outcome: domain.ListFailed,
			Err:     fmt.Errorf("%s %s: read output: %w", r.binaryPath, file, err),
		}
	}
	if len(names) == 0 {
		return domain.ListResult{Outcome: domain.ListEmpty}
	}
	return domain.ListResult{Outcome: domain.ListOK, Names: names}
}

// ParseProcessNames extracts process names from edmDumpEventContent output.
// A product line reads
//
//	edm::TriggerResults  "TriggerResults"  ""  "HLT"
//
// and only lines with exactly that shape contribute. Names that cannot be
// used as a file name (path separators, "." or "..") are ignored. The
// result is deduplicated and sorted.
func ParseProcessNames(out io.Reader) ([]domain.ProcessName, error) {
	seen := make(map[string]struct{})
	br := bufio.NewReader(out)
	for {
		line, err := br.ReadString('\n')
		if name, ok := processName(line); ok {
			seen[name] = struct{}{}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	names := make([]domain.ProcessName, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func processName(line string) (domain.ProcessName, bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return "", false
	}
	for i := range fields {
		fields[i] = strings.ReplaceAll(fields[i], `"`, "")
	}
	if fields[0] != triggerResultsType || fields[1] != triggerResultsLabel || fields[2] != "" {
		return "", false
	}
	return fields[3], validProcessName(fields[3])
}

func validProcessName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
