package models

import (
	"fmt"
	"strings"
	"time"
)

// uriSeparator joins cached track URIs into a single column value.
// URIs are opaque identifiers that never contain whitespace.
const uriSeparator = "\n"

// Resolution is a cached mapping from a (service, kind, artist, title)
// query to the track URIs it resolved to on a previous run.
type Resolution struct {
	id          string
	sequence    int
	service     string
	kind        ReleaseKind
	artist      string
	title       string
	uris        []string
	artistScore float64
	titleScore  float64
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewResolution creates a Resolution for the given query and resolved URIs.
func NewResolution(sequence int, service string, kind ReleaseKind, artist, title string, uris []string, artistScore, titleScore float64) *Resolution {
	now := time.Now()
	return &Resolution{
		sequence:    sequence,
		service:     service,
		kind:        kind,
		artist:      artist,
		title:       title,
		uris:        uris,
		artistScore: artistScore,
		titleScore:  titleScore,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (r *Resolution) ID() string { return r.id }
func (r *Resolution) Sequence() int { return r.sequence }
func (r *Resolution) Service() string { return r.service }
func (r *Resolution) Kind() ReleaseKind { return r.kind }
func (r *Resolution) Artist() string { return r.artist }
func (r *Resolution) Title() string { return r.title }
func (r *Resolution) URIs() []string { return r.uris }
func (r *Resolution) ArtistScore() float64 { return r.artistScore }
func (r *Resolution) TitleScore() float64 { return r.titleScore }
func (r *Resolution) CreatedAt() time.Time { return r.createdAt }
func (r *Resolution) UpdatedAt() time.Time { return r.updatedAt }
func (r *Resolution) DeletedAt() *time.Time { return r.deletedAt }

func (r *Resolution) SetID(id string) { r.id = id }
func (r *Resolution) SetUpdatedAt(t time.Time) { r.updatedAt = t }
func (r *Resolution) SetDeletedAt(t *time.Time) { r.deletedAt = t }
func (r *Resolution) SetCreatedAt(t time.Time) { r.createdAt = t }
func (r *Resolution) SetSequence(sequence int) { r.sequence = sequence }
func (r *Resolution) SetURIs(uris []string) { r.uris = uris }

// JoinedURIs returns the URI list in its single-column storage form.
func (r *Resolution) JoinedURIs() string {
	return strings.Join(r.uris, uriSeparator)
}

// SplitURIs parses the single-column storage form back into a URI list.
func SplitURIs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, uriSeparator)
}

// Validate checks that the resolution identifies a query and at least one URI.
func (r *Resolution) Validate() error {
	if r.service == "" {
		return fmt.Errorf("resolution service is required")
	}
	if r.kind != KindAlbum && r.kind != KindTrack {
		return fmt.Errorf("invalid resolution kind: %q", r.kind)
	}
	if r.artist == "" || r.title == "" {
		return fmt.Errorf("resolution artist and title are required")
	}
	if len(r.uris) == 0 {
		return fmt.Errorf("resolution has no URIs")
	}
	return nil
}
