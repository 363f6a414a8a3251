package pipeline

import (
	"fmt"
)

// FailureKind labels why one item could not be drafted. The kind also
// decides the seen/not-seen policy: permanent failures are marked seen
// so they are never reconsidered, transient ones are left unseen and
// retried on the next run.
type FailureKind string

const (
	FailureNoURL      FailureKind = "no_url"
	FailureFetch      FailureKind = "fetch_failed"
	FailureExtraction FailureKind = "extraction_failed"
	FailureSummarize  FailureKind = "summarize_failed"
	FailureWrite      FailureKind = "write_failed"
)

type ItemFailure struct {
	Kind      FailureKind
	Permanent bool
	Err       error
}

func (f *ItemFailure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *ItemFailure) Unwrap() error {
	return f.Err
}
