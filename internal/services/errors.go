package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
)

// Wrap builds an error message that includes backend context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, backend, operation, message string, err error) error {
	detail := buildDetail(backend, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(backend, operation, message string) string {
	parts := make([]string, 0, 3)
	if backend = strings.TrimSpace(backend); backend != "" {
		parts = append(parts, backend)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "backend failure"
	}
	return strings.Join(parts, ": ")
}

// DiarizationError carries the detail and traceback of a diarization failure
// so the hard policy can surface both in the error document.
type DiarizationError struct {
	Detail    string
	Traceback string
}

func (e *DiarizationError) Error() string {
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		return "diarization failed"
	}
	return "diarization failed: " + detail
}
