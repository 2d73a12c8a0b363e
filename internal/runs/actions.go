// Package runs implements the history command: list past report runs and
// per-page view trends from the run database.
package runs

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/NeverTheSame/wiki-pulse/pkg/db"
)

func Action(c *cli.Context) error {
	database, err := db.Open(filepath.Join(c.String("output-dir"), db.DefaultDBName))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer database.Close()

	limit := c.Int("limit")

	if page := c.String("page"); page != "" {
		samples, err := database.PageTrend(page, limit)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if len(samples) == 0 {
			fmt.Printf("No recorded views for %s\n", page)
			return nil
		}

		color.Cyan("Views for %s:", page)
		for _, s := range samples {
			fmt.Printf("  run %d (%s): %d\n", s.RunID, s.StartedAt, s.ViewTotal)
		}
		return nil
	}

	recent, err := database.RecentRuns(limit)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(recent) == 0 {
		fmt.Println("No recorded runs yet")
		return nil
	}

	color.Cyan("%-5s %-20s %-6s %-6s %-7s %-7s %s", "RUN", "STARTED", "DAYS", "TOP", "PAGES", "RANKED", "REPORT")
	for _, r := range recent {
		fmt.Printf("%-5d %-20s %-6d %-6d %-7d %-7d %s\n",
			r.ID, r.StartedAt, r.DaysWindow, r.TopN, r.PagesTotal, r.PagesRanked, r.ReportPath)
	}
	return nil
}
