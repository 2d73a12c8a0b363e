package summarize

import (
	"context"

	"github.com/NeverTheSame/wiki-pulse/pkg/caching"
)

// CachedSummarizer memoizes summaries on disk keyed by article content, so
// unchanged articles are not re-billed across runs.
type CachedSummarizer struct {
	Inner Summarizer
	Cache *caching.Cache
}

func (c *CachedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if summary, ok := c.Cache.Get(text); ok {
		return summary, nil
	}

	out, err := c.Inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	// A failed cache write only costs a future model call.
	_ = c.Cache.Set(text, out)
	return out, nil
}
