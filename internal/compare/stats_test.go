package compare

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hltvalidation/trcompare/internal/domain"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestParseStats(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		lines     []string
		want      domain.DiffStats
		wantFound bool
		wantWarn  string
	}{
		{
			name:      "two integers",
			lines:     []string{"Processing...", "Found 7 3 extra text", ""},
			want:      domain.DiffStats{EventsConsidered: 7, EventsWithDifferences: 3},
			wantFound: true,
		},
		{
			name:      "hltDiff wording",
			lines:     []string{"Found 100 matching events, out of which 5 have different HLT results"},
			want:      domain.DiffStats{EventsConsidered: 100, EventsWithDifferences: 5},
			wantFound: true,
		},
		{
			name:     "three integers discarded",
			lines:    []string{"Found 1 2 3"},
			wantWarn: "format error",
		},
		{
			name:     "no integers discarded",
			lines:    []string{"Found nothing"},
			wantWarn: "format error",
		},
		{
			name:  "no marker line",
			lines: []string{"found 7 3", " Found 7 3", "Foundation 1 2"},
		},
		{
			name:      "second line ignored",
			lines:     []string{"Found 10 1", "Found 20 2"},
			want:      domain.DiffStats{EventsConsidered: 10, EventsWithDifferences: 1},
			wantFound: true,
			wantWarn:  "already known",
		},
		{
			name:      "malformed line then valid",
			lines:     []string{"Found 1 2 3", "Found 4 5"},
			want:      domain.DiffStats{EventsConsidered: 4, EventsWithDifferences: 5},
			wantFound: true,
			wantWarn:  "format error",
		},
		{
			name:      "mixed tokens only count pure digits",
			lines:     []string{"Found 12 events (3%) and 4 diffs"},
			want:      domain.DiffStats{EventsConsidered: 12, EventsWithDifferences: 4},
			wantFound: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger, buf := bufferLogger()
			got, found := ParseStats(tt.lines, logger)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantWarn != "" {
				assert.Contains(t, buf.String(), tt.wantWarn)
			} else {
				assert.NotContains(t, buf.String(), "level=WARN")
			}
		})
	}
}

func TestIntegerTokens(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{100, 5}, integerTokens("Found 100 matching, 5 differ"))
	assert.Empty(t, integerTokens("Found -3 +4 5a"))
}
