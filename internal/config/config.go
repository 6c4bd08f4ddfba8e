// Package config parses the command line and environment into a validated run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jessevdk/go-flags"

	"github.com/hltvalidation/trcompare/internal/connectors/edmdump"
	"github.com/hltvalidation/trcompare/internal/connectors/hltdiff"
)

// Options are the command line flags.
type Options struct {
	ReferenceDir string `short:"r" long:"reference-dir" required:"true" value-name:"DIR" description:"path to directory with baseline (or \"reference\") workflow outputs"`
	TargetDir    string `short:"t" long:"target-dir" required:"true" value-name:"DIR" description:"path to directory with new (or \"target\") workflow outputs"`
	FilePattern  string `short:"f" long:"file-pattern" default:"step*.root" value-name:"GLOB" description:"basename pattern of input EDM files to be compared"`
	OutputDir    string `short:"o" long:"output-dir" required:"true" value-name:"DIR" description:"path to output directory (must not exist)"`
	MaxEvents    int    `short:"m" long:"max-events" default:"-1" value-name:"N" description:"maximum number of events considered per comparison (-1 means all)"`
	DryRun       bool   `short:"d" long:"dry-run" description:"enable dry-run mode"`
	Verbosity    int    `short:"v" long:"verbosity" default:"0" value-name:"LEVEL" description:"level of verbosity (negative silences all output)"`
	SummaryJSON  bool   `long:"summary-json" description:"also write summary.json to the output directory"`
	LogFormat    string `long:"log-format" default:"auto" choice:"auto" choice:"text" choice:"json" choice:"terminal" description:"log output format"`
}

// Config holds the full run configuration.
type Config struct {
	Options

	// External tools, overridable for non-standard installations.
	DumpBinary string
	DiffBinary string
}

// ErrHelp is returned by Parse when -h/--help was requested.
var ErrHelp = errors.New("help requested")

// Parse reads flags from args (without the program name) and tool
// locations from the environment. Unrecognized flags and stray
// positional arguments are errors.
func Parse(name string, args []string) (Config, string, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = name

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flags.WroteHelp(err) {
			return Config{}, err.Error(), ErrHelp
		}
		return Config{}, "", fmt.Errorf("config: %w", err)
	}
	if len(rest) > 0 {
		return Config{}, "", fmt.Errorf("config: unrecognized command-line arguments: %s", strings.Join(rest, " "))
	}

	return Config{
		Options:    opts,
		DumpBinary: envOr("TRCOMPARE_DUMP_BINARY", edmdump.DefaultBinary),
		DiffBinary: envOr("TRCOMPARE_DIFF_BINARY", hltdiff.DefaultBinary),
	}, "", nil
}

// Validate runs the pre-flight checks on the filesystem state.
func (c Config) Validate() error {
	if !isDir(c.ReferenceDir) {
		return fmt.Errorf("config: invalid path to directory with baseline (or \"reference\") workflow outputs [-r]: %s", c.ReferenceDir)
	}
	if !isDir(c.TargetDir) {
		return fmt.Errorf("config: invalid path to directory with new (or \"target\") workflow outputs [-t]: %s", c.TargetDir)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output directory [-o] is required")
	}
	if _, err := os.Lstat(c.OutputDir); err == nil {
		return fmt.Errorf("config: target output directory already exists [-o]: %s", c.OutputDir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: check output directory [-o]: %w", err)
	}
	if !doublestar.ValidatePattern(c.FilePattern) {
		return fmt.Errorf("config: invalid file pattern [-f]: %q", c.FilePattern)
	}
	return nil
}

// Silent reports whether all console output is suppressed.
func (c Config) Silent() bool {
	return c.Verbosity < 0
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
