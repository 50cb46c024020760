// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func pagesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "pages",
		Aliases: []string{"p"},
		Usage:   "Directory of saved chart pages (overrides config)",
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles Spotify OAuth2 authentication.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SpotifyAuth,
	}
}

// pagesCommand inspects saved chart pages without touching the catalog.
func pagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pages",
		Usage: "Inspect saved chart pages",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the page files that would be parsed, in order",
				Flags:  []cli.Flag{pagesFlag()},
				Action: r.PagesList,
			},
			{
				Name:  "parse",
				Usage: "Parse pages and preview the extracted entries",
				Flags: []cli.Flag{
					pagesFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to print (0 for all)",
					},
				},
				Action: r.PagesParse,
			},
		},
	}
}

// buildCommand resolves parsed entries and publishes the playlist.
func buildCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Resolve chart entries against Spotify and build a playlist",
		Flags: []cli.Flag{
			pagesFlag(),
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "Name for a new playlist",
			},
			&cli.StringFlag{
				Name:  "into",
				Usage: "ID of an existing playlist to append to",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description for a new playlist",
			},
			&cli.FloatFlag{
				Name:  "threshold",
				Usage: "Similarity threshold override (0 accepts every first hit)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve entries without publishing",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a CSV/JSON run report with this base filename",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run summary as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.BuildRun,
		Commands: []*cli.Command{
			{
				Name:   "ui",
				Usage:  "Interactive build with entry review",
				Flags:  []cli.Flag{pagesFlag()},
				Action: r.BuildUI,
			},
		},
	}
}

// cacheCommand manages the local resolution cache.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local resolution cache",
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "Show cached resolution counts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached resolutions",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheClear,
			},
		},
	}
}
