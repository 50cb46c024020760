package models

import (
	"time"
)

// ReleaseKind classifies a parsed release as an album or a single track.
type ReleaseKind string

const (
	KindAlbum ReleaseKind = "album"
	KindTrack ReleaseKind = "track"
)

// Entry is one parsed (artist, title, kind) record from a saved list page.
// Immutable once produced by the page parser.
type Entry struct {
	Artist string      `json:"artist"`
	Title  string      `json:"title"`
	Kind   ReleaseKind `json:"kind"`
}

// Candidate is a single catalog search result: an opaque URI plus the
// display metadata the similarity gate scores against.
type Candidate struct {
	URI    string `json:"uri"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
}

// Playlist represents a playlist on the catalog service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}
