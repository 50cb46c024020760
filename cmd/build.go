package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sablewood/rymx/internal/formatter"
	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/pages"
	"github.com/sablewood/rymx/internal/shared"
	"github.com/sablewood/rymx/internal/tasks"
)

// BuildRun parses saved chart pages, resolves every entry against the
// catalog, and publishes the collected URIs to the target playlist.
func (r *Runner) BuildRun(ctx context.Context, cmd *cli.Command) error {
	playlistName := cmd.String("playlist")
	playlistID := cmd.String("into")
	description := cmd.String("description")
	threshold := cmd.Float("threshold")
	dryRun := cmd.Bool("dry-run")
	reportBase := cmd.String("report")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if playlistName != "" && playlistID != "" {
		return fmt.Errorf("%w: --playlist and --into are mutually exclusive", shared.ErrInvalidArgument)
	}
	if playlistName == "" && playlistID == "" && !dryRun {
		return fmt.Errorf("%w: pass --playlist NAME, --into ID, or --dry-run", shared.ErrMissingArgument)
	}

	dir, err := r.pagesDir(cmd)
	if err != nil {
		return err
	}

	if threshold >= 0 {
		r.config.Matcher.Threshold = threshold
	}

	r.logger.Info("build requested", "pages", dir, "threshold", r.config.Matcher.Threshold, "dry_run", dryRun)

	entries, err := pages.NewParser(dir).ParseDir()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no chart entries found in %s", shared.ErrInvalidInput, dir)
	}

	engine, cleanup, err := r.newEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if !useJSON {
		r.writePlain("Resolving %d entries against %s...\n\n", len(entries), r.catalog.Name())
	}

	// Progress channel and goroutine to stream updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			if useJSON {
				continue
			}
			switch update.Phase {
			case tasks.SearchCatalog:
				r.writePlain("%s\n", update.Message)
			case tasks.ExpandAlbum, tasks.CacheLookup:
				r.writePlain("   %s\n", update.Message)
			case tasks.CreateList:
				r.writePlain("\n📝 %s\n", update.Message)
			case tasks.AppendTracks:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, runErr := engine.Run(ctx, entries, progressCh)

	var playlist *playlistSummary
	var publishErr error
	if runErr == nil && !dryRun && len(result.URIs) > 0 {
		target := tasks.PublishTarget{
			NameOrID:    playlistName,
			Description: description,
			PreExisting: false,
		}
		if playlistID != "" {
			target.NameOrID = playlistID
			target.PreExisting = true
		}

		created, err := engine.Publish(ctx, target, result.URIs, progressCh)
		if err != nil {
			publishErr = err
		} else {
			playlist = &playlistSummary{ID: created.ID, Name: created.Name, TrackCount: created.TrackCount}
		}
	}
	close(progressCh)

	if runErr != nil {
		return runErr
	}

	if reportBase != "" {
		report, err := formatter.WriteReport(result, reportBase)
		if err != nil {
			r.logger.Warn("failed to write report", "error", err)
		} else {
			r.logger.Info("report written", "entries", report.EntriesFile, "summary", report.SummaryFile)
		}
	}

	if useJSON {
		return r.writeJSON(buildOutput{Run: result, Playlist: playlist}, pretty)
	}

	r.writePlainln("")
	r.writePlainHeader("Build Complete!")
	r.writePlain("Entries: %d (%d albums expanded to tracks)\n", result.TotalEntries, countAlbums(result))
	r.writePlain("Matched: %d/%d (%.1f%%)\n", result.MatchedCount, result.TotalEntries, result.MatchPercentage)
	r.writePlain("Collected URIs: %d\n", len(result.URIs))

	if result.NoMatchCount > 0 || result.FailedCount > 0 {
		r.writePlain("\nSkipped %d entries:\n", result.NoMatchCount+result.FailedCount)
		for _, entry := range result.Results {
			if entry.Status != tasks.StatusMatched {
				r.writePlain("  - %s - %s (%s)\n", entry.Entry.Artist, entry.Entry.Title, entry.Status)
			}
		}
	}

	switch {
	case dryRun:
		r.writePlain("\nDry run, nothing published.\n")
	case publishErr != nil:
		return publishErr
	case playlist != nil:
		r.writePlain("\nPlaylist: %s (%d tracks)\n", playlist.Name, playlist.TrackCount)
		r.writePlain("ID: %s\n", playlist.ID)
	default:
		r.writePlain("\nNo matched tracks, nothing published.\n")
	}

	return nil
}

// playlistSummary is the publish outcome included in JSON output.
type playlistSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	TrackCount int    `json:"track_count"`
}

type buildOutput struct {
	Run      *tasks.BuildRunResult `json:"run"`
	Playlist *playlistSummary      `json:"playlist,omitempty"`
}

func countAlbums(result *tasks.BuildRunResult) int {
	count := 0
	for _, entry := range result.Results {
		if entry.Status == tasks.StatusMatched && entry.Entry.Kind == models.KindAlbum {
			count++
		}
	}
	return count
}
