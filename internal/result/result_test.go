package result_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"scribe/internal/result"
)

func TestNormalizeAssignsDenseIDsAndDefaults(t *testing.T) {
	segments := []result.Segment{
		{ID: 7, Start: 0, End: 1.5, Text: "  hello there  "},
		{ID: 2, Start: 1.5, End: 3, Text: "general kenobi", Speaker: "SPEAKER_01", Words: []result.Word{
			{Start: 1.5, End: 2, Word: " general "},
			{Start: 2, End: 3, Word: "kenobi", Score: 0.42},
		}},
	}

	out := result.Normalize(segments)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	for i, seg := range out {
		if seg.ID != i {
			t.Fatalf("segment %d has id %d", i, seg.ID)
		}
		if seg.Words == nil {
			t.Fatalf("segment %d words should be non-nil", i)
		}
	}
	if out[0].Text != "hello there" {
		t.Fatalf("expected trimmed text, got %q", out[0].Text)
	}
	if out[0].Speaker != result.DefaultSpeaker {
		t.Fatalf("expected default speaker, got %q", out[0].Speaker)
	}
	if out[1].Speaker != "SPEAKER_01" {
		t.Fatalf("expected diarized speaker preserved, got %q", out[1].Speaker)
	}
	if out[1].Words[0].Score != result.DefaultWordScore {
		t.Fatalf("expected default word score, got %v", out[1].Words[0].Score)
	}
	if out[1].Words[0].Word != "general" {
		t.Fatalf("expected trimmed word, got %q", out[1].Words[0].Word)
	}
	if out[1].Words[1].Score != 0.42 {
		t.Fatalf("expected preserved score, got %v", out[1].Words[1].Score)
	}
}

func TestSuccessDefaultsLanguage(t *testing.T) {
	doc := result.Success("", nil)
	if doc.Status != result.StatusSuccess {
		t.Fatalf("unexpected status %q", doc.Status)
	}
	if doc.Language != result.UnknownLanguage {
		t.Fatalf("expected unknown language, got %q", doc.Language)
	}
	if doc.Segments == nil {
		t.Fatal("segments should be non-nil")
	}
}

func TestErrorDocumentHasEmptySegments(t *testing.T) {
	doc := result.ErrorDocument(" model load failed ", "trace")
	if doc.Status != result.StatusError {
		t.Fatalf("unexpected status %q", doc.Status)
	}
	if doc.Message != "model load failed" {
		t.Fatalf("unexpected message %q", doc.Message)
	}
	if doc.Segments == nil || len(doc.Segments) != 0 {
		t.Fatalf("expected empty non-nil segments, got %#v", doc.Segments)
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"segments": []`) {
		t.Fatalf("segments should serialize as an empty array:\n%s", buf.String())
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	doc := result.Success("en", []result.Segment{{Start: 0, End: 1, Text: "hi"}})
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded result.Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Status != result.StatusSuccess || decoded.Language != "en" {
		t.Fatalf("unexpected round trip: %#v", decoded)
	}
	if len(decoded.Segments) != 1 || decoded.Segments[0].Speaker != result.DefaultSpeaker {
		t.Fatalf("unexpected segments: %#v", decoded.Segments)
	}
	if !strings.Contains(buf.String(), `"words": []`) {
		t.Fatalf("words should serialize as an empty array:\n%s", buf.String())
	}
}
