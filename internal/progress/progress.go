package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Prefix is the literal marker prefix the host process matches on.
const Prefix = "PROGRESS:"

// Checkpoints shared by the driver; backend-specific checkpoints live with
// the adapters that emit them.
const (
	CheckpointStart    = 5
	CheckpointComplete = 100
)

// Reporter writes monotonic PROGRESS markers to a single writer.
// A nil Reporter is valid and discards all reports.
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	last int
}

// NewReporter constructs a reporter. A nil writer defaults to stderr.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w, last: -1}
}

// Report emits a marker for percent, clamped to [0, 100]. Markers at or below
// the last emitted value are suppressed so the sequence is strictly
// increasing.
func (r *Reporter) Report(percent int) {
	if r == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if percent <= r.last {
		return
	}
	r.last = percent
	fmt.Fprintf(r.w, "%s%d\n", Prefix, percent)
}

// Last returns the most recently emitted percentage, or -1 before the first
// report.
func (r *Reporter) Last() int {
	if r == nil {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
