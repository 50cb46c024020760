package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/shared"
)

// ResolutionRepository implements models.Repository[*models.Resolution].
//
// Resolutions are keyed by (service, kind, query_key); the query key is the
// normalized artist/title pair the catalog was searched with.
type ResolutionRepository struct {
	db *sql.DB
}

// NewResolutionRepository creates a new ResolutionRepository with the given database connection
func NewResolutionRepository(db *sql.DB) *ResolutionRepository {
	return &ResolutionRepository{db: db}
}

// Create inserts a new [models.Resolution] into the database with generated ID and sequence
func (r *ResolutionRepository) Create(resolution *models.Resolution) error {
	sequence, err := NextSequence(r.db, "resolutions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	resolution.SetID(id)
	resolution.SetSequence(sequence)

	if err := resolution.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO resolutions (id, sequence, service, kind, artist, title, query_key, uris, artist_score, title_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		resolution.Service(),
		string(resolution.Kind()),
		resolution.Artist(),
		resolution.Title(),
		shared.NormalizeQueryKey(resolution.Artist(), resolution.Title()),
		resolution.JoinedURIs(),
		resolution.ArtistScore(),
		resolution.TitleScore(),
		resolution.CreatedAt(),
		resolution.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert resolution: %w", err)
	}

	return nil
}

// Get retrieves a resolution by ID, excluding soft-deleted rows
func (r *ResolutionRepository) Get(id string) (*models.Resolution, error) {
	query := `
		SELECT id, sequence, service, kind, artist, title, uris, artist_score, title_score, created_at, updated_at, deleted_at
		FROM resolutions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByQuery retrieves a resolution by its (service, kind, query_key) identity
func (r *ResolutionRepository) GetByQuery(service string, kind models.ReleaseKind, queryKey string) (*models.Resolution, error) {
	query := `
		SELECT id, sequence, service, kind, artist, title, uris, artist_score, title_score, created_at, updated_at, deleted_at
		FROM resolutions
		WHERE service = ? AND kind = ? AND query_key = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, service, string(kind), queryKey))
}

// Update modifies an existing resolution in the database
func (r *ResolutionRepository) Update(resolution *models.Resolution) error {
	if err := resolution.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	resolution.SetUpdatedAt(now)

	query := `
		UPDATE resolutions
		SET uris = ?, artist_score = ?, title_score = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		resolution.JoinedURIs(),
		resolution.ArtistScore(),
		resolution.TitleScore(),
		now,
		resolution.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update resolution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("resolution not found or already deleted: %s", resolution.ID())
	}

	return nil
}

// Delete soft-deletes a resolution by ID
func (r *ResolutionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE resolutions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete resolution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("resolution not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves resolutions matching the given criteria, excluding soft-deleted rows
func (r *ResolutionRepository) List(criteria map[string]any) ([]*models.Resolution, error) {
	query := `
		SELECT id, sequence, service, kind, artist, title, uris, artist_score, title_score, created_at, updated_at, deleted_at
		FROM resolutions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer rows.Close()

	var resolutions []*models.Resolution
	for rows.Next() {
		resolution, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, resolution)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return resolutions, nil
}

// Stats reports how many live resolutions exist per kind.
func (r *ResolutionRepository) Stats() (map[models.ReleaseKind]int, error) {
	query := `
		SELECT kind, COUNT(*)
		FROM resolutions
		WHERE deleted_at IS NULL
		GROUP BY kind
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolution stats: %w", err)
	}
	defer rows.Close()

	stats := map[models.ReleaseKind]int{}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[models.ReleaseKind(kind)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stats, nil
}

// Clear removes every cached resolution. Rows are hard-deleted so the cache
// file does not grow without bound.
func (r *ResolutionRepository) Clear() (int, error) {
	result, err := r.db.Exec("DELETE FROM resolutions")
	if err != nil {
		return 0, fmt.Errorf("failed to clear resolutions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// scanOne scans a single [sql.Row] into a [models.Resolution]
func (r *ResolutionRepository) scanOne(row *sql.Row) (*models.Resolution, error) {
	var (
		id          string
		sequence    int
		service     string
		kind        string
		artist      string
		title       string
		uris        string
		artistScore float64
		titleScore  float64
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &service, &kind, &artist, &title, &uris, &artistScore, &titleScore, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resolution not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan resolution: %w", err)
	}

	return buildResolution(id, sequence, service, kind, artist, title, uris, artistScore, titleScore, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Resolution]
func (r *ResolutionRepository) scanRow(rows *sql.Rows) (*models.Resolution, error) {
	var (
		id          string
		sequence    int
		service     string
		kind        string
		artist      string
		title       string
		uris        string
		artistScore float64
		titleScore  float64
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &service, &kind, &artist, &title, &uris, &artistScore, &titleScore, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan resolution: %w", err)
	}

	return buildResolution(id, sequence, service, kind, artist, title, uris, artistScore, titleScore, createdAt, updatedAt, deletedAt), nil
}

func buildResolution(id string, sequence int, service, kind, artist, title, uris string, artistScore, titleScore float64, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.Resolution {
	resolution := models.NewResolution(sequence, service, models.ReleaseKind(kind), artist, title, models.SplitURIs(uris), artistScore, titleScore)
	resolution.SetID(id)
	resolution.SetCreatedAt(createdAt)
	resolution.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		resolution.SetDeletedAt(&deletedAt.Time)
	}

	return resolution
}
