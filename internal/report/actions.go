// Package report implements the report command: fetch and stitch the
// pagesbatch data, aggregate view counts, render the ranked Markdown table
// and record the run.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/NeverTheSame/wiki-pulse/models"
	"github.com/NeverTheSame/wiki-pulse/pkg/aggregate"
	"github.com/NeverTheSame/wiki-pulse/pkg/caching"
	"github.com/NeverTheSame/wiki-pulse/pkg/db"
	render "github.com/NeverTheSame/wiki-pulse/pkg/report"
	"github.com/NeverTheSame/wiki-pulse/pkg/storage"
	"github.com/NeverTheSame/wiki-pulse/pkg/summarize"
	"github.com/NeverTheSame/wiki-pulse/pkg/wikiapi"
)

const (
	// PATEnvVar holds the Azure DevOps personal access token.
	PATEnvVar = "WIKI_PULSE_PAT"
	// OpenAIKeyEnvVar holds the Azure OpenAI API key.
	OpenAIKeyEnvVar = "WIKI_PULSE_OPENAI_KEY"

	summaryCacheTTL = 7 * 24 * time.Hour
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.IsSet("top") {
		if c.Int("top") < 1 {
			return cli.Exit("--top must be a positive number", 2)
		}
		cfg.TopN = c.Int("top")
	}
	if c.IsSet("days") {
		if c.Int("days") < 1 {
			return cli.Exit("--days must be a positive number", 2)
		}
		cfg.DaysWindow = c.Int("days")
	}

	pat := os.Getenv(PATEnvVar)
	if pat == "" {
		return cli.Exit(fmt.Sprintf("%s must be set", PATEnvVar), 2)
	}

	outputDir := c.String("output-dir")
	wikiDir := filepath.Join(outputDir, cfg.Wiki)
	store := &storage.Storage{}

	client := wikiapi.NewClient(cfg.Endpoint(), wikiapi.Credentials{
		Username: cfg.Username,
		PAT:      pat,
	}, logger)

	color.Magenta("Creating most visited json file")
	ctx := context.Background()
	stitched, err := client.FetchAllPages(ctx, cfg.DaysWindow)
	if err != nil {
		color.Red("API call failed: %v", err)
		return cli.Exit(err.Error(), 1)
	}

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("%s-most-visited.json", cfg.Wiki))
	if err := store.SaveFile(jsonPath, stitched); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Info("stitched page data persisted", "path", jsonPath)

	var records []models.PageRecord
	if err := json.Unmarshal(stitched, &records); err != nil {
		return cli.Exit(fmt.Sprintf("parsing stitched pages: %v", err), 1)
	}

	pages := aggregate.Aggregate(records)
	logger.Info("aggregated view counts", "pages_total", len(records), "pages_ranked", len(pages))

	summarizer, err := buildSummarizer(c, cfg, outputDir)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	renderer := &render.Renderer{
		Summarizer: summarizer,
		ReadArticle: func(linkPath string) (string, error) {
			data, err := store.ReadFile(filepath.Join(wikiDir, linkPath))
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		Logger:             logger,
		MaxSummaryFailures: c.Int("max-summary-failures"),
	}

	md := renderer.Render(ctx, pages, cfg.TopN, cfg.DaysWindow)
	mdPath := filepath.Join(wikiDir, fmt.Sprintf("Most-visited-%d-pages-in-last-%d-days.md", cfg.TopN, cfg.DaysWindow))
	if err := store.SaveFile(mdPath, []byte(md)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	recordRun(logger, outputDir, cfg, len(records), pages, mdPath)

	color.Green("Report written to %s", mdPath)
	return nil
}

// buildSummarizer picks the Azure OpenAI summarizer wrapped in a disk cache,
// or the noop one when summaries are skipped.
func buildSummarizer(c *cli.Context, cfg *models.Config, outputDir string) (summarize.Summarizer, error) {
	if c.Bool("skip-summaries") {
		return summarize.NoopSummarizer{}, nil
	}

	apiKey := os.Getenv(OpenAIKeyEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s must be set (or pass --skip-summaries)", OpenAIKeyEnvVar)
	}

	cache, err := caching.NewCache(filepath.Join(outputDir, ".summary-cache"), summaryCacheTTL)
	if err != nil {
		return nil, err
	}
	return &summarize.CachedSummarizer{
		Inner: summarize.NewOpenAISummarizer(apiKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Deployment, cfg.OpenAI.APIVersion),
		Cache: cache,
	}, nil
}

// recordRun stores the run and its page totals for trend queries. History is
// best effort; a database problem never fails a generated report.
func recordRun(logger *slog.Logger, outputDir string, cfg *models.Config, pagesTotal int, pages []models.AggregatedPage, mdPath string) {
	database, err := db.Open(filepath.Join(outputDir, db.DefaultDBName))
	if err != nil {
		logger.Warn("failed to open run history database", "error", err)
		return
	}
	defer database.Close()

	ranked := cfg.TopN
	if len(pages) < ranked {
		ranked = len(pages)
	}

	runID, err := database.RecordRun(cfg.DaysWindow, cfg.TopN, pagesTotal, ranked, mdPath)
	if err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}
	if err := database.RecordPageViews(runID, pages); err != nil {
		logger.Warn("failed to record page views", "run_id", runID, "error", err)
	}
}
