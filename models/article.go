package models

// ArticleCommitEntry is one file reported by one commit in the git log
// export. The same file path can appear across multiple commits when a page
// is renamed or re-added.
type ArticleCommitEntry struct {
	FilePath   string
	Author     string
	CommitDate string // mm/dd/yy HH:MM:SS, zero-padded so string comparison orders it
}

// RenderedArticleRow is one emitted row of the new-articles table.
// Rows are deduplicated by LinkPath before emission.
type RenderedArticleRow struct {
	DisplayPath string
	LinkPath    string
	Author      string
	Date        string
}
