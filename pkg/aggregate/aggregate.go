// Package aggregate reduces raw page view statistics to per-page totals.
package aggregate

import "github.com/NeverTheSame/wiki-pulse/models"

// Aggregate sums each page's per-day view counts into a total. Pages with a
// missing or empty viewStats sequence carry no traffic data and are dropped.
// Output order follows input order; the renderer re-sorts.
func Aggregate(records []models.PageRecord) []models.AggregatedPage {
	pages := make([]models.AggregatedPage, 0, len(records))
	for _, rec := range records {
		if len(rec.ViewStats) == 0 {
			continue
		}

		total := 0
		for _, stat := range rec.ViewStats {
			total += stat.Count
		}

		pages = append(pages, models.AggregatedPage{
			ID:             rec.ID,
			Path:           rec.Path,
			ViewCountTotal: total,
		})
	}
	return pages
}
