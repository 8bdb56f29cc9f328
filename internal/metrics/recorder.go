package metrics

import "time"

// OutcomeLabel enumerates per-directory index outcomes.
type OutcomeLabel string

const (
	OutcomeWritten   OutcomeLabel = "written"
	OutcomePreserved OutcomeLabel = "preserved"
	OutcomeSkipped   OutcomeLabel = "skipped" // non-directory entries
	OutcomeFailed    OutcomeLabel = "failed"
)

// EntryLabel enumerates the kinds of entries a walk accounts for.
type EntryLabel string

const (
	EntryDirectory EntryLabel = "directory"
	EntryFile      EntryLabel = "file"
	EntryIgnored   EntryLabel = "ignored"
	EntryPruned    EntryLabel = "pruned"
	EntrySkipped   EntryLabel = "skipped"
)

// Recorder defines observability hooks for index runs. Implementations must
// be safe to call on a zero value.
type Recorder interface {
	IncIndexOutcome(outcome OutcomeLabel)
	AddEntries(kind EntryLabel, n int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string) // success|failed
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncIndexOutcome(OutcomeLabel) {}
func (NoopRecorder) AddEntries(EntryLabel, int) {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(string) {}
