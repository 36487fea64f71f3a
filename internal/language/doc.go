// Package language normalizes user-supplied language codes before they are
// handed to a transcription backend.
//
// Whisper and WhisperX expect ISO 639-1 codes ("en", "de"); users pass
// anything from "EN" to "english" to "pt-BR". Canonical reduces all of these
// to the two-letter base code and rejects input no backend could honor.
package language
