// Package document assembles and persists the final summary document.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
	"github.com/nguyentantai21042004/memo-flow/internal/naming"
)

// sectionSeparator is the visible rule between document sections.
const sectionSeparator = "\n\n---\n\n"

// Document holds the three text artifacts of one processed recording.
type Document struct {
	Summary    string
	Proofread  string
	Transcript string
}

// Render produces the markdown body: summary, proofread text (only when it
// actually differs from the raw transcript), transcript.
func (d Document) Render() string {
	parts := []string{"## 要約\n\n" + d.Summary}
	if d.Proofread != "" && d.Proofread != d.Transcript {
		parts = append(parts, "## 校正済みテキスト\n\n"+d.Proofread)
	}
	parts = append(parts, "## 文字起こし\n\n"+d.Transcript)
	return strings.Join(parts, sectionSeparator) + "\n"
}

// Writer persists documents under collision-free names.
type Writer interface {
	// Write saves doc as "<YYYYMMDD>_<sanitizedTitle>.md" under the
	// output directory, probing _1, _2, ... suffixes past existing
	// files, and returns the final filename.
	Write(ctx context.Context, doc Document, date time.Time, titleCandidate string) (string, error)
}

type implWriter struct {
	outputDir  string
	exportDocx bool
	logger     logger.Logger
}

// NewWriter creates a Writer for outputDir. With exportDocx set, every
// markdown document gets a .docx twin for readers outside the terminal.
func NewWriter(outputDir string, exportDocx bool, log logger.Logger) Writer {
	return &implWriter{
		outputDir:  outputDir,
		exportDocx: exportDocx,
		logger:     log,
	}
}

func (w *implWriter) Write(ctx context.Context, doc Document, date time.Time, titleCandidate string) (string, error) {
	title := naming.SanitizeTitle(titleCandidate)
	base := date.Format("20060102") + "_" + title

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := naming.NextAvailable(w.outputDir, base, ".md")
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, []byte(doc.Render()), 0644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	w.logger.Info(ctx, "Markdown saved to: %s", path)

	if w.exportDocx {
		docxPath := strings.TrimSuffix(path, ".md") + ".docx"
		if err := markdownToDocx(title, doc.Render(), docxPath); err != nil {
			w.logger.Warn(ctx, "Failed to export docx %s: %v", docxPath, err)
		} else {
			w.logger.Info(ctx, "Docx saved to: %s", docxPath)
		}
	}

	return name, nil
}
