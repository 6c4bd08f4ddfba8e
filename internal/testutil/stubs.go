// Package testutil holds stubs and fixtures shared by package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hltvalidation/trcompare/internal/connectors/hltdiff"
	"github.com/hltvalidation/trcompare/internal/domain"
)

// StubLister satisfies edmdump.Lister with canned results keyed by file path.
// Files without an entry report ListEmpty.
type StubLister struct {
	Results map[string]domain.ListResult
	Calls   []string
}

func (s *StubLister) ProcessNames(_ context.Context, file string) domain.ListResult {
	s.Calls = append(s.Calls, file)
	if r, ok := s.Results[file]; ok {
		return r
	}
	return domain.ListResult{Outcome: domain.ListEmpty}
}

// Listed is a ListOK result carrying names.
func Listed(names ...string) domain.ListResult {
	return domain.ListResult{Outcome: domain.ListOK, Names: names}
}

// StubDiffer satisfies hltdiff.Differ with canned stdout and errors keyed by
// process name, recording every request.
type StubDiffer struct {
	Stdout   map[string]string
	Failures map[string]error
	Requests []hltdiff.Request
}

func (s *StubDiffer) Command(req hltdiff.Request) []string {
	return append([]string{hltdiff.DefaultBinary}, req.Args()...)
}

func (s *StubDiffer) Diff(_ context.Context, req hltdiff.Request) (hltdiff.Output, error) {
	s.Requests = append(s.Requests, req)
	return hltdiff.Output{Stdout: []byte(s.Stdout[req.Process])}, s.Failures[req.Process]
}

// WriteScript writes an executable /bin/sh script named name into dir and
// returns its path. Tests using it are skipped on Windows.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on Windows")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write mock script: %v", err)
	}
	return path
}

// CatScript writes a script named name that prints the golden fixture file.
func CatScript(t *testing.T, dir, name, fixture string) string {
	t.Helper()
	return WriteScript(t, dir, name, "cat '"+filepath.Join(GoldenDir(), fixture)+"'\n")
}

// GoldenDir returns the absolute path to the golden fixtures directory.
func GoldenDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "golden")
}
