package db

import (
	"fmt"

	"github.com/NeverTheSame/wiki-pulse/models"
)

// Run is one recorded report generation.
type Run struct {
	ID          int64
	StartedAt   string
	DaysWindow  int
	TopN        int
	PagesTotal  int
	PagesRanked int
	ReportPath  string
}

// PageViewSample is one page's total at one run.
type PageViewSample struct {
	RunID     int64
	StartedAt string
	Path      string
	ViewTotal int
}

// RecordRun inserts a run row and returns its ID.
func (db *DB) RecordRun(daysWindow, topN, pagesTotal, pagesRanked int, reportPath string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (days_window, top_n, pages_total, pages_ranked, report_path)
		VALUES (?, ?, ?, ?, ?)`,
		daysWindow, topN, pagesTotal, pagesRanked, reportPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordPageViews stores every aggregated page total for a run in one
// transaction.
func (db *DB) RecordPageViews(runID int64, pages []models.AggregatedPage) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO page_views (run_id, path, view_total)
		VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, page := range pages {
		if _, err := stmt.Exec(runID, page.Path, page.ViewCountTotal); err != nil {
			return fmt.Errorf("failed to insert page view for %q: %w", page.Path, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the newest runs, most recent first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, started_at, days_window, top_n, pages_total, pages_ranked, report_path
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.DaysWindow, &r.TopN, &r.PagesTotal, &r.PagesRanked, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PageTrend returns a page's view totals across the newest runs, most recent
// first.
func (db *DB) PageTrend(path string, limit int) ([]PageViewSample, error) {
	rows, err := db.Query(`
		SELECT pv.run_id, r.started_at, pv.path, pv.view_total
		FROM page_views pv
		JOIN runs r ON r.run_id = pv.run_id
		WHERE pv.path = ?
		ORDER BY pv.run_id DESC
		LIMIT ?`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query page trend: %w", err)
	}
	defer rows.Close()

	var samples []PageViewSample
	for rows.Next() {
		var s PageViewSample
		if err := rows.Scan(&s.RunID, &s.StartedAt, &s.Path, &s.ViewTotal); err != nil {
			return nil, fmt.Errorf("failed to scan page view: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
