package installer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// execRunner runs commands with os/exec, extending the process environment
// with the provided entries.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, env []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
