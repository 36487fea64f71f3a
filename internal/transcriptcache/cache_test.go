package transcriptcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/result"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLookupMissReturnsFalse(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Lookup(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestStoreAndLookupRoundTrip(t *testing.T) {
	store := openTestStore(t)
	doc := result.Success("en", []result.Segment{
		{Start: 0, End: 1.5, Text: "hello"},
	})

	if err := store.Store(context.Background(), "key-1", "whisperx", "base", "en", doc); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok, err := store.Lookup(context.Background(), "key-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Language != "en" || len(got.Segments) != 1 || got.Segments[0].Text != "hello" {
		t.Fatalf("unexpected document: %#v", got)
	}
	if got.Segments[0].Speaker != result.DefaultSpeaker {
		t.Fatalf("normalized fields lost: %#v", got.Segments[0])
	}
}

func TestStoreReplacesExistingEntry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := result.Success("en", []result.Segment{{Text: "draft"}})
	second := result.Success("en", []result.Segment{{Text: "final"}})
	if err := store.Store(ctx, "key-1", "whisper", "base", "en", first); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Store(ctx, "key-1", "whisper", "base", "en", second); err != nil {
		t.Fatalf("Store replace: %v", err)
	}

	got, ok, err := store.Lookup(ctx, "key-1")
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.Segments[0].Text != "final" {
		t.Fatalf("entry not replaced: %#v", got.Segments)
	}
}

func TestStoreRejectsErrorDocuments(t *testing.T) {
	store := openTestStore(t)
	doc := result.ErrorDocument("backend exploded", "")
	if err := store.Store(context.Background(), "key-err", "whisper", "base", "", doc); err == nil {
		t.Fatal("expected refusal to cache error document")
	}
}

func TestKeyChangesWithContentAndParameters(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.wav")
	if err := os.WriteFile(audio, []byte("fake audio bytes"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	base, err := Key(audio, "whisperx", "base", "en", "soft")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	sameAgain, err := Key(audio, "whisperx", "base", "en", "soft")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if base != sameAgain {
		t.Fatal("key not deterministic")
	}

	otherModel, err := Key(audio, "whisperx", "large", "en", "soft")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if otherModel == base {
		t.Fatal("model change should change key")
	}

	if err := os.WriteFile(audio, []byte("different audio bytes"), 0o644); err != nil {
		t.Fatalf("rewrite audio: %v", err)
	}
	changed, err := Key(audio, "whisperx", "base", "en", "soft")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if changed == base {
		t.Fatal("content change should change key")
	}
}

func TestKeyMissingFile(t *testing.T) {
	if _, err := Key(filepath.Join(t.TempDir(), "absent.wav"), "whisper", "base", "", "soft"); err == nil {
		t.Fatal("expected error for missing audio")
	}
}
