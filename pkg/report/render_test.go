package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/NeverTheSame/wiki-pulse/models"
)

type fakeSummarizer struct {
	calls     int
	failAfter int // fail every call once calls > failAfter; 0 means never fail
	output    string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.calls++
	if f.failAfter > 0 && f.calls > f.failAfter {
		return "", errors.New("model overloaded")
	}
	if f.output != "" {
		return f.output, nil
	}
	return fmt.Sprintf("summary %d", f.calls), nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func readArticleStub(link string) (string, error) {
	return "body of " + link, nil
}

func dataRows(md string) []string {
	var rows []string
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, " | [") {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestRender_TopNTruncation(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{
		{ID: 1, Path: "/Low", ViewCountTotal: 10},
		{ID: 2, Path: "/High", ViewCountTotal: 20},
	}

	md := r.Render(context.Background(), pages, 1, 30)
	rows := dataRows(md)
	if len(rows) != 1 {
		t.Fatalf("data row count = %d, want 1", len(rows))
	}
	if !strings.Contains(rows[0], "[High]") || !strings.Contains(rows[0], "| 20 |") {
		t.Errorf("first row = %q, want the 20-count page", rows[0])
	}
}

func TestRender_NegativeTopNEmitsNoRows(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{
		{ID: 1, Path: "/A", ViewCountTotal: 10},
		{ID: 2, Path: "/B", ViewCountTotal: 20},
	}

	md := r.Render(context.Background(), pages, -1, 30)
	if rows := dataRows(md); len(rows) != 0 {
		t.Errorf("data row count = %d, want 0 for negative limit", len(rows))
	}
	if !strings.Contains(md, "<b>Path</b>") {
		t.Errorf("header row missing, got:\n%s", md)
	}
}

func TestRender_ZeroTopNEmitsNoRows(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{{ID: 1, Path: "/A", ViewCountTotal: 10}}

	md := r.Render(context.Background(), pages, 0, 30)
	if rows := dataRows(md); len(rows) != 0 {
		t.Errorf("data row count = %d, want 0", len(rows))
	}
}

func TestRender_StableSortOnTies(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{
		{ID: 1, Path: "/First", ViewCountTotal: 5},
		{ID: 2, Path: "/Second", ViewCountTotal: 5},
		{ID: 3, Path: "/Third", ViewCountTotal: 5},
	}

	md := r.Render(context.Background(), pages, 10, 30)
	rows := dataRows(md)
	if len(rows) != 3 {
		t.Fatalf("data row count = %d, want 3", len(rows))
	}
	for i, want := range []string{"[First]", "[Second]", "[Third]"} {
		if !strings.Contains(rows[i], want) {
			t.Errorf("row %d = %q, want it to contain %s (tied counts keep input order)", i, rows[i], want)
		}
	}
}

func TestRender_EscapedLinkAndDisplay(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{
		{ID: 1, Path: "/Setup Guide", ViewCountTotal: 8},
	}

	md := r.Render(context.Background(), pages, 10, 30)
	if !strings.Contains(md, "[Setup Guide](Setup-Guide.md)") {
		t.Errorf("report missing escaped link, got:\n%s", md)
	}
}

func TestRender_TitleLine(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	md := r.Render(context.Background(), nil, 10, 30)

	want := "Most visited 10 pages in last 30 days as of <b>Fri Mar 15 10:30:00 2024 UTC </b>"
	if !strings.Contains(md, want) {
		t.Errorf("title line missing, got:\n%s", md)
	}
	if !strings.Contains(md, "<b>Path</b> | <b>Page Visits</b> | <b>Article Summary</b>") {
		t.Errorf("header row missing, got:\n%s", md)
	}
}

func TestRender_Deterministic(t *testing.T) {
	pages := []models.AggregatedPage{
		{ID: 1, Path: "/A", ViewCountTotal: 3},
		{ID: 2, Path: "/B", ViewCountTotal: 7},
	}

	build := func() string {
		r := &Renderer{
			Summarizer:  &fakeSummarizer{output: "always the same"},
			ReadArticle: readArticleStub,
			Now:         fixedNow,
		}
		return r.Render(context.Background(), pages, 10, 30)
	}

	if build() != build() {
		t.Error("Render() is not deterministic for a deterministic summarizer")
	}
}

func TestRender_SummaryFailureBudget(t *testing.T) {
	summ := &fakeSummarizer{failAfter: 1} // first call succeeds, rest fail
	r := &Renderer{
		Summarizer:         summ,
		ReadArticle:        readArticleStub,
		MaxSummaryFailures: 2,
		Now:                fixedNow,
	}

	pages := make([]models.AggregatedPage, 6)
	for i := range pages {
		pages[i] = models.AggregatedPage{ID: i, Path: fmt.Sprintf("/Page%d", i), ViewCountTotal: 100 - i}
	}

	md := r.Render(context.Background(), pages, 10, 30)

	// One success, two failures, then the budget is spent: no further calls.
	if summ.calls != 3 {
		t.Errorf("summarizer calls = %d, want 3 (budget stops further calls)", summ.calls)
	}
	if got := strings.Count(md, SummaryPlaceholder); got != 5 {
		t.Errorf("placeholder count = %d, want 5", got)
	}
}

func TestRender_MultiLineSummaryFlattened(t *testing.T) {
	r := &Renderer{
		Summarizer:  &fakeSummarizer{output: "line one\nline two"},
		ReadArticle: readArticleStub,
		Now:         fixedNow,
	}
	pages := []models.AggregatedPage{{ID: 1, Path: "/A", ViewCountTotal: 1}}

	md := r.Render(context.Background(), pages, 10, 30)
	if !strings.Contains(md, "line one line two") {
		t.Errorf("summary not flattened to one line, got:\n%s", md)
	}
}

func TestRender_NoSummarizerUsesPlaceholder(t *testing.T) {
	r := &Renderer{Now: fixedNow}
	pages := []models.AggregatedPage{{ID: 1, Path: "/A", ViewCountTotal: 1}}

	md := r.Render(context.Background(), pages, 10, 30)
	if !strings.Contains(md, SummaryPlaceholder) {
		t.Errorf("expected placeholder summary, got:\n%s", md)
	}
}
