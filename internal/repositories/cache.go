package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/sablewood/rymx/internal/match"
	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/shared"
)

// ResolutionCacheAdapter implements tasks.ResolutionCache using ResolutionRepository.
//
// Duplicate stores are silently ignored (UNIQUE constraint violations), so
// concurrent or repeated runs never fail on a cache write.
type ResolutionCacheAdapter struct {
	repo *ResolutionRepository
}

// NewResolutionCacheAdapter creates a new ResolutionCacheAdapter with the given repository
func NewResolutionCacheAdapter(repo *ResolutionRepository) *ResolutionCacheAdapter {
	return &ResolutionCacheAdapter{repo: repo}
}

// Lookup returns the URIs cached for the entry's normalized query, if any.
// A miss is (nil, false, nil).
func (a *ResolutionCacheAdapter) Lookup(ctx context.Context, service string, entry models.Entry) ([]string, bool, error) {
	queryKey := shared.NormalizeQueryKey(entry.Artist, entry.Title)

	resolution, err := a.repo.GetByQuery(service, entry.Kind, queryKey)
	if err != nil {
		return nil, false, nil
	}

	return resolution.URIs(), true, nil
}

// Store caches a resolved entry. Returns nil if the entry is already cached.
func (a *ResolutionCacheAdapter) Store(ctx context.Context, service string, entry models.Entry, uris []string, decision match.Decision) error {
	resolution := models.NewResolution(0, service, entry.Kind, entry.Artist, entry.Title, uris, decision.ArtistScore, decision.TitleScore)

	if err := a.repo.Create(resolution); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache resolution: %w", err)
	}

	return nil
}
