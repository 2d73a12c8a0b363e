// Package articles implements the articles command: export the wiki repo's
// commit stream and render the new-articles Markdown table.
package articles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/NeverTheSame/wiki-pulse/models"
	"github.com/NeverTheSame/wiki-pulse/pkg/gitlog"
	"github.com/NeverTheSame/wiki-pulse/pkg/history"
	"github.com/NeverTheSame/wiki-pulse/pkg/storage"
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
	if c.IsSet("days") {
		cfg.ArticleDays = c.Int("days")
	}

	outputDir := c.String("output-dir")
	wikiDir := filepath.Join(outputDir, cfg.Wiki)
	mdName := fmt.Sprintf("Articles-created-in-the-past-%d-days.md", cfg.ArticleDays)

	var commitLog string
	if input := c.String("input"); input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return cli.Exit(fmt.Sprintf("reading commit stream: %v", err), 1)
		}
		commitLog = string(data)
	} else {
		repoDir := c.String("repo-dir")
		if repoDir == "" {
			repoDir = wikiDir
		}
		commitLog, err = gitlog.Export(context.Background(), repoDir, cfg.ArticleDays)
		if err != nil {
			color.Red("git log export failed: %v", err)
			return cli.Exit(err.Error(), 1)
		}
		logger.Info("exported commit stream", "repo_dir", repoDir, "days", cfg.ArticleDays)
	}

	store := &storage.Storage{}
	txtPath := filepath.Join(outputDir, fmt.Sprintf("%s-new-articles.txt", cfg.Wiki))
	if err := store.SaveFile(txtPath, []byte(commitLog)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	miner := &history.Miner{ExcludePath: mdName}
	md, err := miner.Mine(commitLog, cfg.ArticleDays)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mdPath := filepath.Join(wikiDir, mdName)
	if err := store.SaveFile(mdPath, []byte(md)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	color.Green("New articles report written to %s", mdPath)
	return nil
}
