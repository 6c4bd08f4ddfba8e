// Package connectors locates the external CMSSW tools the comparison shells out to.
package connectors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Executable is a resolved external tool.
type Executable struct {
	Name string
	// Path is the first match, the one that will be invoked.
	Path string
	// Matches lists every executable found for Name, in PATH order.
	Matches []string
}

// Ambiguous reports whether more than one executable answers to Name.
func (e Executable) Ambiguous() bool {
	return len(e.Matches) > 1
}

// Resolve locates name. A name containing a path separator is checked as-is;
// a bare name is searched in every PATH entry.
func Resolve(name string) (Executable, error) {
	if name == "" {
		return Executable{}, fmt.Errorf("executable name is empty")
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if !isExecutable(name) {
			return Executable{}, fmt.Errorf("executable not found: %s", name)
		}
		return Executable{Name: name, Path: name, Matches: []string{name}}, nil
	}

	seen := make(map[string]bool)
	var matches []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		dir = strings.Trim(dir, `"`)
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if seen[candidate] || !isExecutable(candidate) {
			continue
		}
		seen[candidate] = true
		matches = append(matches, candidate)
	}
	if len(matches) == 0 {
		return Executable{}, fmt.Errorf("executable not found: %s", name)
	}
	return Executable{Name: name, Path: matches[0], Matches: matches}, nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
