package claude

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

type fakeExecutor struct {
	out     string
	err     error
	hangs   bool
	lastEnv []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteEnv(ctx, nil, name, args...)
}

func (f *fakeExecutor) ExecuteEnv(ctx context.Context, env []string, name string, args ...string) (string, error) {
	f.lastEnv = env
	if f.hangs {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func (f *fakeExecutor) Available(name string) bool { return true }

func testLogger() logger.Logger { return logger.NewWithWriter(io.Discard, "error") }

func TestGenerate(t *testing.T) {
	exec := &fakeExecutor{out: "  summary text \n"}
	cli := New(exec, []string{"PATH=/usr/bin"}, testLogger())

	out, err := cli.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "summary text" {
		t.Errorf("Generate() = %q, want trimmed stdout", out)
	}
}

func TestGenerateNonZeroExitKeepsStdout(t *testing.T) {
	runErr := exec.Command("false").Run()
	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		t.Skip("cannot produce an exit error on this platform")
	}

	fake := &fakeExecutor{out: "partial answer", err: fmt.Errorf("command 'claude' failed: %w", exitErr)}
	cli := New(fake, nil, testLogger())

	out, err := cli.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v, non-zero exit should not be fatal", err)
	}
	if out != "partial answer" {
		t.Errorf("Generate() = %q, want stdout despite exit error", out)
	}
}

func TestGenerateTimeoutYieldsEmptyOutput(t *testing.T) {
	fake := &fakeExecutor{hangs: true}
	cli := New(fake, nil, testLogger())
	cli.timeout = 10 * time.Millisecond

	out, err := cli.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v, timeout must not be fatal", err)
	}
	if out != "" {
		t.Errorf("Generate() = %q, want empty output on timeout", out)
	}
}

func TestGenerateOtherErrorPropagates(t *testing.T) {
	fake := &fakeExecutor{err: fmt.Errorf("executable file not found")}
	cli := New(fake, nil, testLogger())

	if _, err := cli.Generate(context.Background(), "prompt"); err == nil {
		t.Error("Generate() should propagate non-exit errors")
	}
}

func TestNewStripsClaudeCodeMarker(t *testing.T) {
	cli := New(&fakeExecutor{}, []string{"CLAUDECODE=1", "HOME=/home/u"}, testLogger())

	if _, err := cli.Generate(context.Background(), "p"); err != nil {
		t.Fatal(err)
	}
	for _, kv := range cli.environ {
		if kv == "CLAUDECODE=1" {
			t.Error("CLAUDECODE should be stripped from the CLI environment")
		}
	}
	if len(cli.environ) != 1 || cli.environ[0] != "HOME=/home/u" {
		t.Errorf("environ = %v", cli.environ)
	}
}
