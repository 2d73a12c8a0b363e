// Package report renders the most-visited-pages Markdown report.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/NeverTheSame/wiki-pulse/models"
	"github.com/NeverTheSame/wiki-pulse/pkg/summarize"
)

// SummaryPlaceholder fills the summary column when the summarizer is
// unavailable or has exhausted its failure budget.
const SummaryPlaceholder = "Summary unavailable"

// timestampLayout matches the strftime %c format the published reports use.
const timestampLayout = "Mon Jan _2 15:04:05 2006"

// Renderer turns aggregated view counts into the ranked Markdown table.
type Renderer struct {
	Summarizer summarize.Summarizer

	// ReadArticle resolves a row's escaped link path to the article body the
	// summarizer should read. A nil func disables summaries.
	ReadArticle func(linkPath string) (string, error)

	Logger *slog.Logger

	// MaxSummaryFailures is the failure budget: once this many summarizer
	// calls have failed, the remaining rows get the placeholder without
	// calling out again. Zero means unlimited attempts.
	MaxSummaryFailures int

	// Now overrides the report timestamp; nil uses time.Now.
	Now func() time.Time
}

// Render sorts pages by total views (stable, descending), keeps the top n
// and emits the Markdown report. Output is deterministic for a deterministic
// summarizer, modulo the timestamp line.
func (r *Renderer) Render(ctx context.Context, pages []models.AggregatedPage, topN, daysWindow int) string {
	ranked := make([]models.AggregatedPage, len(pages))
	copy(ranked, pages)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewCountTotal > ranked[j].ViewCountTotal
	})
	if topN < 0 {
		topN = 0
	}
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}

	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Most visited %d pages in last %d days as of <b>%s UTC </b> \n\n",
		topN, daysWindow, now.UTC().Format(timestampLayout))
	sb.WriteString(" | <b>Path</b> | <b>Page Visits</b> | <b>Article Summary</b> |\n")
	sb.WriteString(" | ---- | ------ | ------ |\n")

	failures := 0
	for _, page := range ranked {
		link := LinkPath(page.Path) + ".md"
		fmt.Fprintf(&sb, " | [%s](%s) | %d | %s |\n",
			DisplayText(page.Path), link, page.ViewCountTotal, r.summaryFor(ctx, link, &failures))
	}
	return sb.String()
}

func (r *Renderer) summaryFor(ctx context.Context, link string, failures *int) string {
	if r.Summarizer == nil || r.ReadArticle == nil {
		return SummaryPlaceholder
	}
	if r.MaxSummaryFailures > 0 && *failures >= r.MaxSummaryFailures {
		return SummaryPlaceholder
	}

	text, err := r.ReadArticle(link)
	if err != nil {
		*failures++
		r.logWarn("could not read article for summary", "link", link, "error", err)
		return SummaryPlaceholder
	}

	summary, err := r.Summarizer.Summarize(ctx, summarize.Truncate(text))
	if err != nil {
		*failures++
		r.logWarn("summarizer failed", "link", link, "error", err)
		return SummaryPlaceholder
	}
	return singleLine(summary)
}

func (r *Renderer) logWarn(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Warn(msg, args...)
	}
}

// singleLine flattens any line breaks the model slipped in despite the
// single-line instruction.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
