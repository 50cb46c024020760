package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/sablewood/rymx/internal/shared"
)

// recordingTransport serves canned responses and records request URLs and bodies.
type recordingTransport struct {
	status  int
	body    string
	urls    []string
	bodies  []string
	methods []string
	err     error
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.urls = append(rt.urls, req.URL.String())
	rt.methods = append(rt.methods, req.Method)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		rt.bodies = append(rt.bodies, string(data))
	} else {
		rt.bodies = append(rt.bodies, "")
	}

	if rt.err != nil {
		return nil, rt.err
	}

	return &http.Response{
		StatusCode: rt.status,
		Body:       io.NopCloser(strings.NewReader(rt.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestService(t *testing.T, rt http.RoundTripper) *SpotifyService {
	t.Helper()
	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
		"user_id":       "test_user",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	srv.httpClient = &http.Client{Transport: rt}
	return srv
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("With Valid Credentials", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "id",
			"client_secret": "secret",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.Name() != "Spotify" {
			t.Errorf("expected service name 'Spotify', got %s", srv.Name())
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "secret"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "id"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Custom Scopes", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "id",
			"client_secret": "secret",
			"scopes":        "playlist-modify-private user-read-private",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(srv.config.Scopes) != 2 {
			t.Errorf("expected 2 scopes, got %v", srv.config.Scopes)
		}
	})
}

func TestGetAuthURL(t *testing.T) {
	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	authURL := srv.GetAuthURL("test_state")
	for _, want := range []string{"accounts.spotify.com", "test_client_id", "test_state"} {
		if !strings.Contains(authURL, want) {
			t.Errorf("auth URL should contain %q: %s", want, authURL)
		}
	}
}

func TestSearchTracks(t *testing.T) {
	t.Run("Parses Candidates", func(t *testing.T) {
		rt := &recordingTransport{status: 200, body: `{
			"tracks": {"items": [
				{"uri": "spotify:track:1", "name": "Teardrop", "artists": [{"name": "Massive Attack"}]},
				{"uri": "spotify:track:2", "name": "Teardrop (Cover)", "artists": [{"name": "Somebody Else"}]}
			], "total": 2}
		}`}
		srv := newTestService(t, rt)

		candidates, err := srv.SearchTracks(context.Background(), "Massive Attack Teardrop", 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(candidates))
		}
		if candidates[0].URI != "spotify:track:1" || candidates[0].Artist != "Massive Attack" {
			t.Errorf("unexpected first candidate: %+v", candidates[0])
		}

		if !strings.Contains(rt.urls[0], "type=track") || !strings.Contains(rt.urls[0], "limit=2") {
			t.Errorf("unexpected search URL: %s", rt.urls[0])
		}
	})

	t.Run("Empty Result Set", func(t *testing.T) {
		rt := &recordingTransport{status: 200, body: `{"tracks": {"items": [], "total": 0}}`}
		srv := newTestService(t, rt)

		candidates, err := srv.SearchTracks(context.Background(), "nothing", 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(candidates))
		}
	})

	t.Run("Not Authenticated", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "id",
			"client_secret": "secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = srv.SearchTracks(context.Background(), "query", 2)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestErrorClassification(t *testing.T) {
	tc := []struct {
		name   string
		status int
		want   error
	}{
		{name: "Unauthorized", status: 401, want: shared.ErrAuthFailed},
		{name: "Forbidden", status: 403, want: shared.ErrAuthFailed},
		{name: "Rate Limited", status: 429, want: shared.ErrRateLimited},
		{name: "Server Error", status: 500, want: shared.ErrAPIRequest},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			rt := &recordingTransport{status: tt.status, body: `{}`}
			srv := newTestService(t, rt)

			_, err := srv.SearchTracks(context.Background(), "query", 2)
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestAlbumTracks(t *testing.T) {
	rt := &recordingTransport{status: 200, body: `{
		"items": [
			{"uri": "spotify:track:a1", "name": "Track One"},
			{"uri": "spotify:track:a2", "name": "Track Two"},
			{"uri": "spotify:track:a3", "name": "Track Three"}
		], "total": 3
	}`}
	srv := newTestService(t, rt)

	uris, err := srv.AlbumTracks(context.Background(), "album123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"spotify:track:a1", "spotify:track:a2", "spotify:track:a3"}
	if len(uris) != len(want) {
		t.Fatalf("expected %d URIs, got %d", len(want), len(uris))
	}
	for i, uri := range want {
		if uris[i] != uri {
			t.Errorf("URI %d: expected %s, got %s (order must be preserved)", i, uri, uris[i])
		}
	}
}

func TestCreatePlaylist(t *testing.T) {
	t.Run("Creates Under Configured User", func(t *testing.T) {
		rt := &recordingTransport{status: 201, body: `{"id": "pl123", "name": "My List", "public": false}`}
		srv := newTestService(t, rt)

		playlist, err := srv.CreatePlaylist(context.Background(), "My List", "Curated by yours truly.")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlist.ID != "pl123" {
			t.Errorf("expected playlist ID pl123, got %s", playlist.ID)
		}
		if !strings.Contains(rt.urls[0], "/users/test_user/playlists") {
			t.Errorf("unexpected create URL: %s", rt.urls[0])
		}
		if !strings.Contains(rt.bodies[0], "My List") {
			t.Errorf("request body missing playlist name: %s", rt.bodies[0])
		}
	})

	t.Run("Missing User ID", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "id",
			"client_secret": "secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
			t.Fatalf("failed to authenticate: %v", err)
		}

		_, err = srv.CreatePlaylist(context.Background(), "name", "desc")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestAddToPlaylist(t *testing.T) {
	t.Run("Submits URIs", func(t *testing.T) {
		rt := &recordingTransport{status: 201, body: `{"snapshot_id": "snap"}`}
		srv := newTestService(t, rt)

		err := srv.AddToPlaylist(context.Background(), "pl123", []string{"spotify:track:1", "spotify:track:2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(rt.urls[0], "/playlists/pl123/tracks") {
			t.Errorf("unexpected append URL: %s", rt.urls[0])
		}
		if !strings.Contains(rt.bodies[0], "spotify:track:1") {
			t.Errorf("request body missing URIs: %s", rt.bodies[0])
		}
	})

	t.Run("Rejects Oversized Batch", func(t *testing.T) {
		srv := newTestService(t, &recordingTransport{status: 201, body: `{}`})

		uris := make([]string, 100)
		for i := range uris {
			uris[i] = "spotify:track:x"
		}

		err := srv.AddToPlaylist(context.Background(), "pl123", uris)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for 100 URIs, got %v", err)
		}
	})

	t.Run("Empty Batch Is A No-Op", func(t *testing.T) {
		rt := &recordingTransport{status: 201, body: `{}`}
		srv := newTestService(t, rt)

		if err := srv.AddToPlaylist(context.Background(), "pl123", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(rt.urls) != 0 {
			t.Errorf("expected no HTTP calls for empty batch, got %d", len(rt.urls))
		}
	})
}
