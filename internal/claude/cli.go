// Package claude adapts the claude CLI as a text backend.
package claude

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
	"github.com/nguyentantai21042004/memo-flow/pkg/executor"
)

const callTimeout = 300 * time.Second

// CLI shells out to `claude -p <prompt>`. A timeout yields empty output
// rather than an error, and a non-zero exit still returns whatever stdout
// was produced, matching how a flaky CLI backend is treated: degraded, not
// fatal.
type CLI struct {
	executor executor.Executor
	environ  []string
	timeout  time.Duration
	logger   logger.Logger
}

// New creates a CLI adapter. environ is the process environment to run the
// CLI with; the CLAUDECODE marker is stripped so a nested invocation
// behaves like a standalone one.
func New(exec executor.Executor, environ []string, log logger.Logger) *CLI {
	filtered := make([]string, 0, len(environ))
	for _, kv := range environ {
		if strings.HasPrefix(kv, "CLAUDECODE=") {
			continue
		}
		filtered = append(filtered, kv)
	}
	return &CLI{
		executor: exec,
		environ:  filtered,
		timeout:  callTimeout,
		logger:   log,
	}
}

// Generate sends prompt to the CLI and returns trimmed stdout.
func (c *CLI) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.executor.ExecuteEnv(callCtx, c.environ, "claude", "-p", prompt)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			c.logger.Warn(ctx, "claude CLI timed out after %s, treating output as empty", c.timeout)
			return "", nil
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The CLI sometimes exits non-zero after printing a usable
			// answer; keep the stdout and let the caller judge it.
			c.logger.Warn(ctx, "claude CLI exited non-zero: %v", err)
			return strings.TrimSpace(out), nil
		}
		return "", err
	}

	return strings.TrimSpace(out), nil
}
