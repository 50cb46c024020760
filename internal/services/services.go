// package services defines interface Catalog for the external music catalog (Spotify)
package services

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/sablewood/rymx/internal/models"
)

// Catalog defines the catalog service operations the pipeline depends on:
// ranked free-text search, album track listing, and playlist writes.
type Catalog interface {
	// Authenticate performs OAuth or token authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SearchTracks issues a free-text track search and returns ranked candidates.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Candidate, error)

	// SearchAlbums issues a free-text album search and returns ranked candidates.
	SearchAlbums(ctx context.Context, query string, limit int) ([]models.Candidate, error)

	// AlbumTracks lists the track URIs of an album in the catalog's native order.
	AlbumTracks(ctx context.Context, albumID string) ([]string, error)

	// CreatePlaylist creates a playlist owned by the configured user account.
	CreatePlaylist(ctx context.Context, name, description string) (*models.Playlist, error)

	// AddToPlaylist appends up to 99 track URIs to an existing playlist.
	AddToPlaylist(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g. "Spotify")
	Name() string
}

// OAuthService extends Catalog for providers using the OAuth2 authorization code flow.
type OAuthService interface {
	Catalog

	// GetAuthURL returns the provider's authorization URL for the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for the callback handler.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates with a previously obtained token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}
