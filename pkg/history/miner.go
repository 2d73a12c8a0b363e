// Package history mines a git log export for newly added wiki articles and
// renders them as a Markdown table.
package history

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NeverTheSame/wiki-pulse/models"
	"github.com/NeverTheSame/wiki-pulse/pkg/report"
)

// Line markers injected by the git log pretty format.
const (
	authorPrefix = "#ItemAuthor#"
	datePrefix   = "#ItemDate#"
)

// DefaultMaxRows caps the table so a busy wiki cannot produce an unbounded
// report.
const DefaultMaxRows = 2000

const timestampLayout = "Mon Jan _2 15:04:05 2006"

// Miner renders the new-articles table from the commit stream produced by
// the git log export.
type Miner struct {
	// MaxRows caps emitted rows; zero means DefaultMaxRows.
	MaxRows int

	// ExcludePath skips the report's own output file so the table never
	// links to itself.
	ExcludePath string

	// Now overrides the report timestamp; nil uses time.Now.
	Now func() time.Time
}

// ParseEntries reads the commit stream into one entry per file line. Author
// and date lines update scratch state that the following filename lines
// consume, so every entry carries the author and date of its commit.
func ParseEntries(r io.Reader) ([]models.ArticleCommitEntry, error) {
	var entries []models.ArticleCommitEntry
	var author, date string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
		case strings.HasPrefix(line, authorPrefix):
			author = strings.TrimPrefix(line, authorPrefix)
		case strings.HasPrefix(line, datePrefix):
			date = strings.TrimPrefix(line, datePrefix)
		default:
			entries = append(entries, models.ArticleCommitEntry{
				FilePath:   line,
				Author:     author,
				CommitDate: date,
			})
		}
	}
	return entries, scanner.Err()
}

// EarliestDates records, per file, the smallest commit date seen across adds
// and renames. Dates are zero-padded mm/dd/yy timestamps, so plain string
// comparison orders them correctly.
func EarliestDates(entries []models.ArticleCommitEntry) map[string]string {
	index := make(map[string]string)
	for _, e := range entries {
		if prev, ok := index[e.FilePath]; !ok || e.CommitDate < prev {
			index[e.FilePath] = e.CommitDate
		}
	}
	return index
}

// Rows deduplicates and escapes entries into table rows. Emission keeps
// first-encounter order and each distinct link path appears at most once;
// each row shows the author and date of its first occurrence.
func (m *Miner) Rows(entries []models.ArticleCommitEntry) []models.RenderedArticleRow {
	maxRows := m.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	seen := make(map[string]bool)
	var rows []models.RenderedArticleRow
	for _, e := range entries {
		if len(rows) == maxRows {
			break
		}

		link := report.ArticleLinkPath(e.FilePath)
		if link == "" || seen[link] {
			continue
		}
		if m.ExcludePath != "" && strings.Contains(e.FilePath, m.ExcludePath) {
			continue
		}
		seen[link] = true

		rows = append(rows, models.RenderedArticleRow{
			DisplayPath: report.ArticleDisplayText(link),
			LinkPath:    link,
			Author:      e.Author,
			Date:        e.CommitDate,
		})
	}
	return rows
}

// Mine renders the new-articles table. The earliest-date index is computed in
// its own pass; emission deliberately keeps first-encounter order, which is
// what the published reports have always shown.
func (m *Miner) Mine(commitLog string, lookbackDays int) (string, error) {
	entries, err := ParseEntries(strings.NewReader(commitLog))
	if err != nil {
		return "", fmt.Errorf("parsing commit stream: %w", err)
	}
	_ = EarliestDates(entries)

	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Last %d pages added to wiki, as of <b> %s UTC : </b> \n\n",
		lookbackDays, now.UTC().Format(timestampLayout))
	sb.WriteString(" | <b>Page</b> | <b>Author</b> | <b>Date</b> | \n")
	sb.WriteString(" | ---- | ------ | ---- | \n")

	for _, row := range m.Rows(entries) {
		fmt.Fprintf(&sb, "| [%s](%s) | %s | %s\n", row.DisplayPath, row.LinkPath, row.Author, row.Date)
	}
	return sb.String(), nil
}
