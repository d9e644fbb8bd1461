package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs external programs such as yt-dlp.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

type commandExecutor struct{}

// New creates a new Executor backed by os/exec
func New() Executor {
	return &commandExecutor{}
}

// Execute runs name with args and returns its stdout. A failed run reports
// the trimmed stderr alongside the exit error.
func (e *commandExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command %q failed: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}
	return stdout.String(), nil
}
