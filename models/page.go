// Package models defines data structures shared across the report pipelines.
package models

// ViewStat is one day's recorded visit count for a wiki page.
type ViewStat struct {
	Count int    `json:"count"`
	Day   string `json:"day,omitempty"`
}

// PageRecord is a single wiki page as returned by the pagesbatch API.
// ViewStats may be absent or empty, meaning the page has no traffic data
// and is excluded from ranking.
type PageRecord struct {
	ID        int        `json:"id"`
	Path      string     `json:"path"`
	ViewStats []ViewStat `json:"viewStats,omitempty"`
}

// AggregatedPage is a PageRecord reduced to its total view count across the
// report's time window.
type AggregatedPage struct {
	ID             int    `json:"id"`
	Path           string `json:"path"`
	ViewCountTotal int    `json:"viewCountTotal"`
}
