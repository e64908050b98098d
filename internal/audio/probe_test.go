package audio

import (
	"context"
	"fmt"
	"testing"
)

type fakeExecutor struct {
	out   string
	err   error
	calls [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

func (f *fakeExecutor) ExecuteEnv(ctx context.Context, env []string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) Available(name string) bool { return true }

func TestDurationMS(t *testing.T) {
	exec := &fakeExecutor{out: "123.456\n"}
	prober := NewProber(exec)

	ms, err := prober.DurationMS(context.Background(), "rec.m4a")
	if err != nil {
		t.Fatalf("DurationMS() error = %v", err)
	}
	if ms != 123456 {
		t.Errorf("DurationMS() = %d, want 123456", ms)
	}
	if len(exec.calls) != 1 || exec.calls[0][0] != "ffprobe" {
		t.Errorf("expected one ffprobe call, got %v", exec.calls)
	}
}

func TestDurationMSZero(t *testing.T) {
	exec := &fakeExecutor{out: "0.000"}
	prober := NewProber(exec)

	if _, err := prober.DurationMS(context.Background(), "empty.wav"); err == nil {
		t.Error("DurationMS() should fail for zero-length audio")
	}
}

func TestDurationMSUnparseable(t *testing.T) {
	exec := &fakeExecutor{out: "N/A"}
	prober := NewProber(exec)

	if _, err := prober.DurationMS(context.Background(), "bad.wav"); err == nil {
		t.Error("DurationMS() should fail for unparseable ffprobe output")
	}
}

func TestDurationMSProbeFailure(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("no such file")}
	prober := NewProber(exec)

	if _, err := prober.DurationMS(context.Background(), "missing.wav"); err == nil {
		t.Error("DurationMS() should propagate probe failures")
	}
}

func TestExportSegmentArgs(t *testing.T) {
	exec := &fakeExecutor{}
	exporter := NewExporter(exec)

	err := exporter.ExportSegment(context.Background(), "rec.m4a", "chunk_0.wav", 1140000, 2340000)
	if err != nil {
		t.Fatalf("ExportSegment() error = %v", err)
	}

	args := exec.calls[0]
	if args[0] != "ffmpeg" {
		t.Fatalf("command = %q, want ffmpeg", args[0])
	}
	var haveStart, haveEnd bool
	for i, a := range args {
		if a == "-ss" && args[i+1] == "1140.000" {
			haveStart = true
		}
		if a == "-to" && args[i+1] == "2340.000" {
			haveEnd = true
		}
	}
	if !haveStart || !haveEnd {
		t.Errorf("segment window flags missing in %v", args)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0.000"},
		{500, "0.500"},
		{1000, "1.000"},
		{1234567, "1234.567"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.ms); got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
