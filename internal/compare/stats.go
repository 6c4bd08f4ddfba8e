package compare

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hltvalidation/trcompare/internal/domain"
)

// statsMarker starts the hltDiff summary line, e.g.
//
//	Found 100 matching events, out of which 5 have different HLT results
const statsMarker = "Found "

// ParseStats scans hltDiff output for the statistics line. The first
// integer on it is the number of events considered, the second the number
// of events with differences. Lines with any other number of integers are
// discarded with a warning; a second valid line is reported and ignored.
// It returns false when no valid line was found, in which case the stats
// are zero.
func ParseStats(lines []string, logger *slog.Logger) (domain.DiffStats, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	var stats domain.DiffStats
	found := false
	for _, line := range lines {
		if !strings.HasPrefix(line, statsMarker) {
			continue
		}
		ints := integerTokens(line)
		if len(ints) != 2 {
			logger.Warn("format error: extracted N!=2 integers from output of hltDiff", "integers", ints, "line", line)
			continue
		}
		if found {
			logger.Warn("logic error: hltDiff statistics already known (check output of hltDiff)", "line", line)
			continue
		}
		stats = domain.DiffStats{EventsConsidered: ints[0], EventsWithDifferences: ints[1]}
		found = true
	}
	return stats, found
}

// integerTokens returns the whitespace-separated tokens of line made only of digits.
func integerTokens(line string) []int {
	var out []int
	for _, tok := range strings.Fields(line) {
		if !allDigits(tok) {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
