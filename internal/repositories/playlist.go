package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// PlaylistRepository persists [models.Playlist] rows in the playlists table.
type PlaylistRepository struct {
	db Querier
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db Querier) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// WithTx returns a copy of the repository that runs its queries in tx.
func (r *PlaylistRepository) WithTx(tx *sql.Tx) *PlaylistRepository {
	return &PlaylistRepository{db: tx}
}

// Create validates and inserts a playlist, setting its generated ID.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO playlists (name) VALUES (?)", playlist.Name)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", constraintError(err, "name "+playlist.Name))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get playlist id: %w", err)
	}
	playlist.ID = id

	return nil
}

// CreateMany inserts playlists in order, stopping at the first failure.
// Callers wanting all-or-nothing should use a repository bound to a transaction.
func (r *PlaylistRepository) CreateMany(ctx context.Context, playlists []*models.Playlist) error {
	for _, playlist := range playlists {
		if err := r.Create(ctx, playlist); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a playlist by primary key.
func (r *PlaylistRepository) Get(ctx context.Context, id int64) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM playlists WHERE id = ?", id).Scan(&playlist.ID, &playlist.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}
	return &playlist, nil
}

// GetMany retrieves the playlists whose primary key is in ids, ordered by id.
// Unknown ids are skipped.
func (r *PlaylistRepository) GetMany(ctx context.Context, ids []int64) ([]*models.Playlist, error) {
	if len(ids) == 0 {
		return []*models.Playlist{}, nil
	}

	playlists := []*models.Playlist{}
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		found, err := r.list(ctx, "SELECT id, name FROM playlists WHERE id IN "+in+" ORDER BY id ASC", args...)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, found...)
	}

	sort.Slice(playlists, func(i, j int) bool { return playlists[i].ID < playlists[j].ID })
	return playlists, nil
}

// List retrieves every playlist ordered by id.
func (r *PlaylistRepository) List(ctx context.Context) ([]*models.Playlist, error) {
	return r.list(ctx, "SELECT id, name FROM playlists ORDER BY id ASC")
}

// Rename sets name on every playlist whose primary key is in ids and returns the affected row count.
func (r *PlaylistRepository) Rename(ctx context.Context, ids []int64, name string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	probe := models.Playlist{Name: name}
	if err := probe.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	var total int64
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		result, err := r.db.ExecContext(ctx, "UPDATE playlists SET name = ? WHERE id IN "+in, append([]any{name}, args...)...)
		if err != nil {
			return total, fmt.Errorf("failed to update playlists: %w", constraintError(err, "name "+name))
		}

		n, err := rowsAffected(result)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Delete removes the playlists whose primary key is in ids and returns how many were removed.
func (r *PlaylistRepository) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var total int64
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		result, err := r.db.ExecContext(ctx, "DELETE FROM playlists WHERE id IN "+in, args...)
		if err != nil {
			return total, fmt.Errorf("failed to delete playlists: %w", err)
		}

		n, err := rowsAffected(result)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *PlaylistRepository) list(ctx context.Context, query string, args ...any) ([]*models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []*models.Playlist{}
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}
