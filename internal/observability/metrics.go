package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for a comparison run.
// Without a configured MeterProvider the instruments are no-ops.
type Metrics struct {
	Comparisons           metric.Int64Counter
	EventsWithDifferences metric.Int64Counter
	WorkflowsWithDiffs    metric.Int64Counter
	ListingFailures       metric.Int64Counter
}

// NewMetrics creates the trcompare metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("trcompare")

	comparisons, err := meter.Int64Counter("trcompare.comparisons",
		metric.WithDescription("Number of hltDiff comparisons by status"),
	)
	if err != nil {
		return nil, err
	}

	events, err := meter.Int64Counter("trcompare.events_with_differences",
		metric.WithDescription("Events whose trigger results differ between reference and target"),
	)
	if err != nil {
		return nil, err
	}

	workflows, err := meter.Int64Counter("trcompare.workflows_with_differences",
		metric.WithDescription("Workflows with at least one differing process"),
	)
	if err != nil {
		return nil, err
	}

	listing, err := meter.Int64Counter("trcompare.listing_failures",
		metric.WithDescription("Files whose process names could not be listed"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Comparisons:           comparisons,
		EventsWithDifferences: events,
		WorkflowsWithDiffs:    workflows,
		ListingFailures:       listing,
	}, nil
}

// RecordComparison records one finished comparison.
func (m *Metrics) RecordComparison(ctx context.Context, workflow, status string, eventsWithDiffs int) {
	if m == nil {
		return
	}
	m.Comparisons.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if eventsWithDiffs > 0 {
		m.EventsWithDifferences.Add(ctx, int64(eventsWithDiffs),
			metric.WithAttributes(attribute.String("workflow", workflow)),
		)
	}
}

// RecordWorkflowWithDiffs records a workflow that had differences.
func (m *Metrics) RecordWorkflowWithDiffs(ctx context.Context) {
	if m == nil {
		return
	}
	m.WorkflowsWithDiffs.Add(ctx, 1)
}

// RecordListingFailure records a file whose process names could not be listed.
func (m *Metrics) RecordListingFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.ListingFailures.Add(ctx, 1)
}
