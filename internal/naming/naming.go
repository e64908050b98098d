// Package naming turns LLM-suggested titles into safe, collision-free
// output filenames.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxTitleLength caps the sanitized title portion of an output filename,
// in runes so Japanese titles are not cut mid-character unfairly.
const MaxTitleLength = 50

// FallbackTitle replaces titles that sanitize down to nothing.
const FallbackTitle = "untitled_summary"

var (
	reIllegal    = regexp.MustCompile(`[\\/:*?"<>|]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reSeparators = regexp.MustCompile(`[_\-]{2,}`)
)

// SanitizeTitle makes a filename-safe title out of a suggestion: illegal
// characters stripped, whitespace runs collapsed to a single underscore,
// repeated separators collapsed, edges trimmed, rune-truncated to
// MaxTitleLength. Empty or all-illegal input yields FallbackTitle.
func SanitizeTitle(suggestion string) string {
	text := strings.TrimSpace(suggestion)
	text = reIllegal.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, "_")
	text = reSeparators.ReplaceAllString(text, "_")
	text = strings.Trim(text, "_- ")

	if runes := []rune(text); len(runes) > MaxTitleLength {
		text = string(runes[:MaxTitleLength])
		// Truncation can expose a separator at the new edge.
		text = strings.Trim(text, "_- ")
	}

	if text == "" {
		return FallbackTitle
	}
	return text
}

// NextAvailable probes dir for "<base><ext>", then "<base>_1<ext>",
// "<base>_2<ext>", ... and returns the first unused filename. Monotonic
// probing with no race protection: the pipeline is single-threaded.
func NextAvailable(dir, base, ext string) string {
	name := base + ext
	for count := 1; ; count++ {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, count, ext)
	}
}
