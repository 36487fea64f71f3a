// Package whisperx adapts the WhisperX Python library as a transcription
// backend with forced alignment and speaker diarization.
//
// The pipeline runs inside an embedded Python runner: load model, load audio,
// batched transcription, then two optional stages. Alignment failure always
// degrades to unaligned segments. Diarization failure is policy-driven: the
// soft policy keeps the transcript with the default speaker label, the hard
// policy aborts the run and surfaces the runner's traceback. The policy
// decision is made here, never in the runner.
package whisperx
