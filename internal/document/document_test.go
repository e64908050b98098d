package document

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

func testLogger() logger.Logger { return logger.NewWithWriter(io.Discard, "error") }

func TestRenderAllSections(t *testing.T) {
	doc := Document{
		Summary:    "summary body",
		Proofread:  "proofread body",
		Transcript: "transcript body",
	}

	got := doc.Render()
	wantOrder := []string{"## 要約", "summary body", "## 校正済みテキスト", "proofread body", "## 文字起こし", "transcript body"}
	last := -1
	for _, s := range wantOrder {
		idx := strings.Index(got, s)
		if idx < 0 {
			t.Fatalf("section %q missing:\n%s", s, got)
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}
	if strings.Count(got, "\n\n---\n\n") != 2 {
		t.Errorf("separator count = %d, want 2", strings.Count(got, "\n\n---\n\n"))
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("rendered document should end with a newline")
	}
}

func TestRenderOmitsIdenticalProofread(t *testing.T) {
	doc := Document{
		Summary:    "s",
		Proofread:  "same text",
		Transcript: "same text",
	}

	got := doc.Render()
	if strings.Contains(got, "## 校正済みテキスト") {
		t.Errorf("proofread section must be omitted when identical to the transcript:\n%s", got)
	}
	if strings.Count(got, "\n\n---\n\n") != 1 {
		t.Errorf("separator count = %d, want 1", strings.Count(got, "\n\n---\n\n"))
	}
}

func TestWriteNamesByDateAndTitle(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false, testLogger())
	date := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	name, err := w.Write(context.Background(), Document{Summary: "s", Transcript: "t"}, date, "会議メモ")
	if err != nil {
		t.Fatal(err)
	}
	if name != "20260824_会議メモ.md" {
		t.Errorf("name = %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("document file missing: %v", err)
	}
}

func TestWriteNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false, testLogger())
	date := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	first, err := w.Write(context.Background(), Document{Summary: "one", Transcript: "t"}, date, "メモ")
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Write(context.Background(), Document{Summary: "two", Transcript: "t"}, date, "メモ")
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("second write reused name %q", first)
	}
	if second != "20260824_メモ_1.md" {
		t.Errorf("second name = %q, want _1 suffix", second)
	}

	data, err := os.ReadFile(filepath.Join(dir, first))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "one") {
		t.Error("first document was overwritten")
	}
}

func TestWriteFallbackTitle(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, false, testLogger())
	date := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	name, err := w.Write(context.Background(), Document{Summary: "s", Transcript: "t"}, date, "")
	if err != nil {
		t.Fatal(err)
	}
	if name != "20260824_untitled_summary.md" {
		t.Errorf("name = %q, want fallback title", name)
	}
}

func TestWriteDocxTwin(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, true, testLogger())
	date := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	name, err := w.Write(context.Background(), Document{Summary: "**bold** point", Transcript: "t"}, date, "docxtest")
	if err != nil {
		t.Fatal(err)
	}

	docxPath := filepath.Join(dir, strings.TrimSuffix(name, ".md")+".docx")
	if _, err := os.Stat(docxPath); err != nil {
		t.Errorf("docx twin missing: %v", err)
	}
}
