// package tasks implements playlist assembly from chart entries.
//
// The core abstraction is BuildEngine, which resolves parsed entries against a
// catalog service and publishes the collected track URIs to a playlist.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sablewood/rymx/internal/match"
	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/services"
	"github.com/sablewood/rymx/internal/shared"
)

// EntryStatus classifies the outcome of resolving a single entry.
type EntryStatus string

const (
	StatusMatched EntryStatus = "matched"
	StatusNoMatch EntryStatus = "no_match"
	StatusFailed  EntryStatus = "failed"
)

// EntryResult represents the outcome of resolving a single chart entry.
type EntryResult struct {
	Entry    models.Entry   `json:"entry"`
	Status   EntryStatus    `json:"status"`
	URIs     []string       `json:"uris,omitempty"`   // Track URIs contributed by this entry
	Decision match.Decision `json:"decision"`         // Similarity gate outcome
	Err      string         `json:"error,omitempty"`  // Failure detail when Status is "failed"
	Cached   bool           `json:"cached,omitempty"` // True when served from the resolution cache
}

// BuildRunResult contains all data from a full resolution run.
type BuildRunResult struct {
	Results         []EntryResult `json:"results"`
	URIs            []string      `json:"uris"` // All collected URIs in entry order
	TotalEntries    int           `json:"total_entries"`
	MatchedCount    int           `json:"matched_count"`
	NoMatchCount    int           `json:"no_match_count"`
	FailedCount     int           `json:"failed_count"`
	MatchPercentage float64       `json:"match_percentage"`
}

// PublishTarget identifies where collected URIs should land.
//
// When PreExisting is false a new playlist named NameOrID is created;
// otherwise NameOrID is treated as the ID of an existing playlist.
type PublishTarget struct {
	NameOrID    string
	Description string
	PreExisting bool
}

// ResolutionCache stores resolved entries keyed by catalog service and the
// entry's normalized query. Implementations must treat misses as (nil, false, nil).
type ResolutionCache interface {
	Lookup(ctx context.Context, service string, entry models.Entry) ([]string, bool, error)
	Store(ctx context.Context, service string, entry models.Entry, uris []string, decision match.Decision) error
}

// Engine defines the playlist assembly operations.
type Engine interface {
	// Run resolves every entry against the catalog, skipping entries that fail
	// and continuing with the rest.
	Run(ctx context.Context, entries []models.Entry, progress chan<- ProgressUpdate) (*BuildRunResult, error)

	// Publish sends collected URIs to a new or pre-existing playlist in
	// chunked append calls.
	Publish(ctx context.Context, target PublishTarget, uris []string, progress chan<- ProgressUpdate) (*models.Playlist, error)
}

// BuildEngine implements [Engine] against a [services.Catalog].
type BuildEngine struct {
	catalog     services.Catalog
	cache       ResolutionCache
	pacer       Pacer
	threshold   float64
	searchLimit int
}

// BuildOpts configures a [BuildEngine].
type BuildOpts struct {
	Threshold   float64         // Similarity gate threshold; 0.0 accepts the first hit unconditionally
	SearchLimit int             // Results requested per search (only the first is validated)
	Pacer       Pacer           // Defaults to a 250ms fixed pacer when nil
	Cache       ResolutionCache // Optional; nil disables caching
}

// NewBuildEngine creates a BuildEngine with the provided catalog and options.
func NewBuildEngine(catalog services.Catalog, opts BuildOpts) *BuildEngine {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 2
	}
	if opts.Pacer == nil {
		opts.Pacer = NewPacer(shared.PacingConfig{})
	}

	return &BuildEngine{
		catalog:     catalog,
		cache:       opts.Cache,
		pacer:       opts.Pacer,
		threshold:   opts.Threshold,
		searchLimit: opts.SearchLimit,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BuildEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ResolveTrack searches the catalog for a single track entry.
//
// Only the top-ranked candidate is scored against the entry. A rejected or
// empty result returns no URIs and no error.
func (e *BuildEngine) ResolveTrack(ctx context.Context, entry models.Entry) ([]string, match.Decision, error) {
	if err := e.pacer.Wait(ctx); err != nil {
		return nil, match.Decision{}, err
	}

	candidates, err := e.catalog.SearchTracks(ctx, searchQuery(entry), e.searchLimit)
	if err != nil {
		return nil, match.Decision{}, err
	}
	if len(candidates) == 0 {
		return nil, match.Decision{}, nil
	}

	first := candidates[0]
	decision := match.Evaluate(first.Artist, first.Name, entry.Artist, entry.Title, e.threshold)
	if !decision.Accepted {
		return nil, decision, nil
	}

	return []string{first.URI}, decision, nil
}

// ResolveAlbumTracks searches the catalog for an album entry and expands the
// accepted album into its track URIs in catalog order. An ExpandAlbum
// progress update is emitted before the track fetch; progress may be nil.
func (e *BuildEngine) ResolveAlbumTracks(ctx context.Context, entry models.Entry, progress chan<- ProgressUpdate) ([]string, match.Decision, error) {
	if err := e.pacer.Wait(ctx); err != nil {
		return nil, match.Decision{}, err
	}

	candidates, err := e.catalog.SearchAlbums(ctx, searchQuery(entry), e.searchLimit)
	if err != nil {
		return nil, match.Decision{}, err
	}
	if len(candidates) == 0 {
		return nil, match.Decision{}, nil
	}

	first := candidates[0]
	decision := match.Evaluate(first.Artist, first.Name, entry.Artist, entry.Title, e.threshold)
	if !decision.Accepted {
		return nil, decision, nil
	}

	e.sendProgress(progress, expandAlbumUpdate(first.Name))
	if err := e.pacer.Wait(ctx); err != nil {
		return nil, decision, err
	}

	uris, err := e.catalog.AlbumTracks(ctx, first.URI)
	if err != nil {
		return nil, decision, err
	}

	return uris, decision, nil
}

func (e *BuildEngine) resolve(ctx context.Context, entry models.Entry, progress chan<- ProgressUpdate) ([]string, match.Decision, error) {
	if entry.Kind == models.KindTrack {
		return e.ResolveTrack(ctx, entry)
	}
	return e.ResolveAlbumTracks(ctx, entry, progress)
}

// resolveWithRetry retries once on rate limiting; the pacer runs again before
// the second attempt.
func (e *BuildEngine) resolveWithRetry(ctx context.Context, entry models.Entry, progress chan<- ProgressUpdate) ([]string, match.Decision, error) {
	uris, decision, err := e.resolve(ctx, entry, progress)
	if err != nil && errors.Is(err, shared.ErrRateLimited) {
		uris, decision, err = e.resolve(ctx, entry, progress)
	}
	return uris, decision, err
}

// Run resolves every entry in order, collecting URIs and per-entry outcomes.
//
// Failures on individual entries are recorded and skipped. Authentication
// failures abort the run, returning the partial result alongside the error.
func (e *BuildEngine) Run(ctx context.Context, entries []models.Entry, progress chan<- ProgressUpdate) (*BuildRunResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	total := len(entries)
	result := &BuildRunResult{
		Results:      make([]EntryResult, 0, total),
		TotalEntries: total,
	}

	for i, entry := range entries {
		step := i + 1
		e.sendProgress(progress, searchEntryUpdate(step, total, entry))

		if uris, ok := e.lookupCached(ctx, entry); ok {
			e.sendProgress(progress, cacheHitUpdate(step, total, entry, len(uris)))
			result.Results = append(result.Results, EntryResult{
				Entry:  entry,
				Status: StatusMatched,
				URIs:   uris,
				Cached: true,
			})
			result.URIs = append(result.URIs, uris...)
			result.MatchedCount++
			continue
		}

		uris, decision, err := e.resolveWithRetry(ctx, entry, progress)

		switch {
		case err != nil && errors.Is(err, shared.ErrAuthFailed):
			result.Results = append(result.Results, EntryResult{Entry: entry, Status: StatusFailed, Err: err.Error()})
			result.FailedCount++
			e.finalize(result)
			return result, fmt.Errorf("aborting run: %w", err)

		case err != nil && ctx.Err() != nil:
			e.finalize(result)
			return result, ctx.Err()

		case err != nil:
			e.sendProgress(progress, entryFailedUpdate(step, total, entry, err))
			result.Results = append(result.Results, EntryResult{Entry: entry, Status: StatusFailed, Decision: decision, Err: err.Error()})
			result.FailedCount++

		case len(uris) == 0:
			e.sendProgress(progress, noMatchUpdate(step, total, entry))
			result.Results = append(result.Results, EntryResult{Entry: entry, Status: StatusNoMatch, Decision: decision})
			result.NoMatchCount++

		default:
			e.sendProgress(progress, matchedUpdate(step, total, entry, len(uris), decision.ArtistScore, decision.TitleScore))
			result.Results = append(result.Results, EntryResult{Entry: entry, Status: StatusMatched, URIs: uris, Decision: decision})
			result.URIs = append(result.URIs, uris...)
			result.MatchedCount++
			e.storeCached(ctx, entry, uris, decision)
		}
	}

	e.finalize(result)
	return result, nil
}

func (e *BuildEngine) finalize(result *BuildRunResult) {
	if result.TotalEntries > 0 {
		result.MatchPercentage = float64(result.MatchedCount) / float64(result.TotalEntries) * 100
	}
}

func (e *BuildEngine) lookupCached(ctx context.Context, entry models.Entry) ([]string, bool) {
	if e.cache == nil {
		return nil, false
	}

	uris, ok, err := e.cache.Lookup(ctx, e.catalog.Name(), entry)
	if err != nil || !ok {
		// Lookup errors are non-fatal; fall through to the live search.
		return nil, false
	}
	return uris, true
}

func (e *BuildEngine) storeCached(ctx context.Context, entry models.Entry, uris []string, decision match.Decision) {
	if e.cache == nil {
		return
	}
	// Store errors do not affect the run.
	_ = e.cache.Store(ctx, e.catalog.Name(), entry, uris, decision)
}

// Publish sends the collected URIs to the target playlist.
//
// A new playlist is created unless the target marks a pre-existing one.
// URIs are appended in order, chunked to the catalog's per-call limit.
func (e *BuildEngine) Publish(ctx context.Context, target PublishTarget, uris []string, progress chan<- ProgressUpdate) (*models.Playlist, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: no track URIs to publish", shared.ErrInvalidInput)
	}
	if target.NameOrID == "" {
		return nil, fmt.Errorf("%w: missing playlist name or ID", shared.ErrMissingArgument)
	}

	var playlist *models.Playlist
	if target.PreExisting {
		playlist = &models.Playlist{ID: target.NameOrID}
	} else {
		e.sendProgress(progress, creatingListUpdate(target.NameOrID))
		if err := e.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		created, err := e.catalog.CreatePlaylist(ctx, target.NameOrID, target.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to create playlist: %w", err)
		}
		playlist = created
		e.sendProgress(progress, createListUpdate(playlist))
	}

	chunks, err := shared.Chunk(uris, shared.DefaultChunkSize)
	if err != nil {
		return nil, err
	}

	for i, chunk := range chunks {
		e.sendProgress(progress, appendUpdate(i+1, len(chunks), len(chunk)))
		if err := e.pacer.Wait(ctx); err != nil {
			return playlist, err
		}

		if err := e.catalog.AddToPlaylist(ctx, playlist.ID, chunk); err != nil {
			return playlist, fmt.Errorf("failed to append tracks (batch %d of %d): %w", i+1, len(chunks), err)
		}
	}

	playlist.TrackCount = len(uris)
	return playlist, nil
}

// searchQuery builds the free-text query the catalog is searched with.
func searchQuery(entry models.Entry) string {
	return entry.Artist + " " + entry.Title
}
