package result

import (
	"encoding/json"
	"io"
	"strings"
)

// Status values for Document.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	// DefaultSpeaker labels segments when the backend has no diarization.
	DefaultSpeaker = "SPEAKER_00"
	// DefaultWordScore is used when the backend exposes word timing without
	// a confidence value.
	DefaultWordScore = 0.9
	// UnknownLanguage is reported when the backend did not detect a language.
	UnknownLanguage = "unknown"
)

// Word carries word-level timing produced by backends that support it.
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Segment is a contiguous span of transcribed speech.
type Segment struct {
	ID      int     `json:"id"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
	Words   []Word  `json:"words"`
}

// Document is the sole externally observable artifact of a run.
type Document struct {
	Status    string    `json:"status"`
	Language  string    `json:"language,omitempty"`
	Message   string    `json:"message,omitempty"`
	Traceback string    `json:"traceback,omitempty"`
	Segments  []Segment `json:"segments"`
}

// Success builds a success document from backend segments. Segments are
// normalized; an empty language falls back to "unknown".
func Success(language string, segments []Segment) Document {
	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = UnknownLanguage
	}
	return Document{
		Status:   StatusSuccess,
		Language: lang,
		Segments: Normalize(segments),
	}
}

// ErrorDocument builds the uniform failure document. Segments are always
// present and empty.
func ErrorDocument(message, traceback string) Document {
	return Document{
		Status:    StatusError,
		Message:   strings.TrimSpace(message),
		Traceback: traceback,
		Segments:  []Segment{},
	}
}

// Normalize reshapes backend segments into the output schema: ids are
// reassigned densely from zero in input order, text is trimmed, the speaker
// label defaults to SPEAKER_00, and word scores default to DefaultWordScore.
// The returned slice and every Words slice are non-nil so the document always
// serializes arrays, never null.
func Normalize(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		seg.ID = len(out)
		seg.Text = strings.TrimSpace(seg.Text)
		if strings.TrimSpace(seg.Speaker) == "" {
			seg.Speaker = DefaultSpeaker
		}
		words := make([]Word, 0, len(seg.Words))
		for _, word := range seg.Words {
			word.Word = strings.TrimSpace(word.Word)
			if word.Score == 0 {
				word.Score = DefaultWordScore
			}
			words = append(words, word)
		}
		seg.Words = words
		out = append(out, seg)
	}
	return out
}

// Encode writes the document as indented JSON followed by a newline.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
