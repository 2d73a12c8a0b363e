package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per report generation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    days_window INTEGER NOT NULL,
    top_n INTEGER NOT NULL,
    pages_total INTEGER NOT NULL,
    pages_ranked INTEGER NOT NULL,
    report_path TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Page views: per-run per-path view totals for trend queries
CREATE TABLE IF NOT EXISTS page_views (
    view_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    view_total INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, path)
);

CREATE INDEX IF NOT EXISTS idx_page_views_run ON page_views(run_id);
CREATE INDEX IF NOT EXISTS idx_page_views_path ON page_views(path);
`
