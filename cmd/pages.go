package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/pages"
	"github.com/sablewood/rymx/internal/shared"
)

// pagesDir resolves the chart page directory from the flag or config.
func (r *Runner) pagesDir(cmd *cli.Command) (string, error) {
	dir := cmd.String("pages")
	if dir == "" {
		dir = r.config.Pages.Path
	}
	if dir == "" {
		return "", fmt.Errorf("%w: set pages.path in config.toml or pass --pages", shared.ErrMissingArgument)
	}
	return dir, nil
}

// PagesList prints the page files that would be parsed, in lexical order.
func (r *Runner) PagesList(ctx context.Context, cmd *cli.Command) error {
	dir, err := r.pagesDir(cmd)
	if err != nil {
		return err
	}

	parser := pages.NewParser(dir)
	files, err := parser.ListPages()
	if err != nil {
		return err
	}

	r.writePlain("Found %d pages in %s:\n\n", len(files), dir)
	for i, file := range files {
		r.writePlain("%d. %s\n", i+1, filepath.Base(file))
	}

	return nil
}

// PagesParse parses the saved pages and previews the extracted entries.
func (r *Runner) PagesParse(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	limit := cmd.Int("limit")

	dir, err := r.pagesDir(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("parsing chart pages in %v", dir)

	parser := pages.NewParser(dir)
	entries, err := parser.ParseDir()
	if err != nil {
		return err
	}

	shown := entries
	if limit > 0 && int(limit) < len(entries) {
		shown = entries[:limit]
	}

	if useJSON {
		return r.writeJSON(shown, pretty)
	}

	albums, tracks := countKinds(entries)
	r.writePlain("Parsed %d entries (%d albums, %d singles):\n\n", len(entries), albums, tracks)
	for i, entry := range shown {
		kind := "album"
		if entry.Kind == models.KindTrack {
			kind = "single"
		}
		r.writePlain("%d. %s - %s (%s)\n", i+1, entry.Artist, entry.Title, kind)
	}
	if len(shown) < len(entries) {
		r.writePlain("\n... and %d more\n", len(entries)-len(shown))
	}

	return nil
}

func countKinds(entries []models.Entry) (albums, tracks int) {
	for _, entry := range entries {
		if entry.Kind == models.KindTrack {
			tracks++
		} else {
			albums++
		}
	}
	return albums, tracks
}
