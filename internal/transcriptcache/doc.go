// Package transcriptcache persists finished transcription documents in a
// SQLite database so repeated runs over the same audio skip the backend
// entirely. Entries are keyed by a digest of the audio content together with
// the backend, model, language, and diarization policy that produced them.
package transcriptcache
