package services

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// CommandRunner executes a backend process, forwarding each stderr line to
// stderrLine as it arrives and returning the captured stdout. Adapters expose
// injection points so tests can substitute canned processes.
type CommandRunner func(ctx context.Context, stderrLine func(string), name string, args ...string) ([]byte, error)

// Run is the production CommandRunner. Stderr is streamed line by line so
// stage events drive progress while the process is still running; stdout is
// buffered whole because the payload arrives only at the end.
func Run(ctx context.Context, stderrLine func(string), name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stderr pipe: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if stderrLine != nil {
			stderrLine(scanner.Text())
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.Bytes(), ctxErr
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
