// Package whispercli drives the standalone whisper command-line tool. It is
// the fallback backend when neither Python library is importable: the binary
// writes a JSON transcript into a scratch directory which is then reshaped
// into the common document form. The CLI produces no word timestamps or
// speaker labels.
package whispercli
