package executor

import "context"

// Executor defines the interface for executing external commands.
type Executor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteEnv is Execute with a replacement environment.
	ExecuteEnv(ctx context.Context, env []string, name string, args ...string) (string, error)
	// Available reports whether the named binary can be found on PATH.
	Available(name string) bool
}
