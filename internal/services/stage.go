package services

import "strings"

// stagePrefix marks runner stderr lines that carry pipeline stage outcomes.
// Everything else on stderr is a free-text diagnostic.
const stagePrefix = "STAGE:"

// StageEvent is a parsed runner stage line: STAGE:<name>:<ok|failed>[:detail].
type StageEvent struct {
	Name   string
	OK     bool
	Detail string
}

// ParseStageEvent parses a stderr line into a stage event. The second return
// value is false for lines that are not stage events, including malformed
// ones; those remain plain diagnostics.
func ParseStageEvent(line string) (StageEvent, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), stagePrefix)
	if !ok {
		return StageEvent{}, false
	}
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) < 2 {
		return StageEvent{}, false
	}
	event := StageEvent{Name: strings.TrimSpace(parts[0])}
	if len(parts) == 3 {
		event.Detail = strings.TrimSpace(parts[2])
	}
	switch strings.TrimSpace(parts[1]) {
	case "ok":
		event.OK = true
	case "failed":
		event.OK = false
	default:
		return StageEvent{}, false
	}
	if event.Name == "" {
		return StageEvent{}, false
	}
	return event, true
}
