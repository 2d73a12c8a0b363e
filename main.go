package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/NeverTheSame/wiki-pulse/internal/articles"
	"github.com/NeverTheSame/wiki-pulse/internal/report"
	"github.com/NeverTheSame/wiki-pulse/internal/runs"
)

func main() {
	app := &cli.App{
		Name:  "wiki-pulse",
		Usage: "publish view analytics and activity reports for an Azure DevOps wiki",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: ".",
				Usage: "directory holding the wiki checkout and generated artifacts",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "generate the most-visited pages report",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "number of pages to rank (overrides config)",
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "view statistics lookback window in days (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "skip-summaries",
						Usage: "fill the summary column with a placeholder instead of calling the model",
					},
					&cli.IntFlag{
						Name:  "max-summary-failures",
						Value: 3,
						Usage: "stop calling the summarizer after this many failures",
					},
				},
				Action: report.Action,
			},
			{
				Name:  "articles",
				Usage: "generate the recently added articles report",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "commit history lookback window in days (overrides config)",
					},
					&cli.StringFlag{
						Name:  "repo-dir",
						Usage: "wiki git checkout to export history from (defaults to <output-dir>/<wiki>)",
					},
					&cli.StringFlag{
						Name:  "input",
						Usage: "pre-exported commit stream file to mine instead of running git log",
					},
				},
				Action: articles.Action,
			},
			{
				Name:  "history",
				Usage: "list recorded report runs and page view trends",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum rows to show",
					},
					&cli.StringFlag{
						Name:  "page",
						Usage: "show the view trend for one page path",
					},
				},
				Action: runs.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
