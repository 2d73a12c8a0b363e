// Package summarize produces one-line article summaries for report rows.
package summarize

import (
	"context"
	"unicode/utf8"
)

// MaxArticleChars is the largest article slice sent to the model. Longer
// articles are cut to protect the model's context window.
const MaxArticleChars = 8193

// Summarizer generates a single-line summary of an article body.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Truncate caps article text at MaxArticleChars, backing off to the nearest
// rune boundary so the cut never splits a multi-byte character. Callers must
// truncate before invoking a Summarizer.
func Truncate(text string) string {
	if len(text) <= MaxArticleChars {
		return text
	}
	cut := MaxArticleChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// NoopSummarizer skips the model entirely and returns a fixed placeholder.
// Used by --skip-summaries and in tests.
type NoopSummarizer struct{}

func (NoopSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return "Summary skipped", nil
}
