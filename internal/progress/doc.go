// Package progress emits the PROGRESS:<n> stderr markers the host process
// parses by line prefix.
//
// Markers are best-effort checkpoints, not a linear progression: each backend
// reports a fixed, increasing set of percentages at its own pipeline stages.
// The reporter deduplicates so a run never emits a marker at or below the
// previous one.
package progress
