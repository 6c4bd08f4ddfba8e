// Package edmdump wraps edmDumpEventContent as a subprocess and extracts the
// process names of the edm::TriggerResults collections stored in an EDM file.
package edmdump

// DefaultBinary is the tool name looked up on PATH when none is configured.
const DefaultBinary = "edmDumpEventContent"

// Column values identifying a TriggerResults product line in the dump.
const (
	triggerResultsType  = "edm::TriggerResults"
	triggerResultsLabel = "TriggerResults"
)
