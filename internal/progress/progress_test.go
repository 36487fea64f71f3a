package progress_test

import (
	"bytes"
	"strings"
	"testing"

	"scribe/internal/progress"
)

func TestReporterEmitsPrefixedMarkers(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf)

	r.Report(5)
	r.Report(30)
	r.Report(100)

	want := "PROGRESS:5\nPROGRESS:30\nPROGRESS:100\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if r.Last() != 100 {
		t.Fatalf("expected last=100, got %d", r.Last())
	}
}

func TestReporterSuppressesNonIncreasing(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf)

	r.Report(30)
	r.Report(30)
	r.Report(10)
	r.Report(40)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 markers, got %d: %v", len(lines), lines)
	}
	if lines[0] != "PROGRESS:30" || lines[1] != "PROGRESS:40" {
		t.Fatalf("unexpected markers: %v", lines)
	}
}

func TestReporterClampsRange(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf)

	r.Report(-10)
	r.Report(250)

	want := "PROGRESS:0\nPROGRESS:100\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *progress.Reporter
	r.Report(50)
	if r.Last() != -1 {
		t.Fatalf("nil reporter should report -1, got %d", r.Last())
	}
}
