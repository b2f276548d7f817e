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

const videoColumns = "id, video_id, url, title, author, thumbnail, duration, length"

// VideoRepository persists [models.Video] rows in the videos table.
type VideoRepository struct {
	db Querier
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db Querier) *VideoRepository {
	return &VideoRepository{db: db}
}

// WithTx returns a copy of the repository that runs its queries in tx.
func (r *VideoRepository) WithTx(tx *sql.Tx) *VideoRepository {
	return &VideoRepository{db: tx}
}

// CountByVideoID counts the rows carrying the external video_id.
func (r *VideoRepository) CountByVideoID(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos WHERE video_id = ?", videoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// Create validates and inserts a video, setting its generated ID.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (video_id, url, title, author, thumbnail, duration, length)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		video.VideoID,
		video.URL,
		video.Title,
		video.Author,
		video.Thumbnail,
		video.Duration,
		video.Length,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", constraintError(err, "video_id "+video.VideoID))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get video id: %w", err)
	}
	video.ID = id

	return nil
}

// Get retrieves a video by primary key.
func (r *VideoRepository) Get(ctx context.Context, id int64) (*models.Video, error) {
	query := "SELECT " + videoColumns + " FROM videos WHERE id = ?"

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrVideoNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}
	return video, nil
}

// GetMany retrieves the videos whose primary key is in ids, ordered by id.
// Unknown ids are skipped.
func (r *VideoRepository) GetMany(ctx context.Context, ids []int64) ([]*models.Video, error) {
	if len(ids) == 0 {
		return []*models.Video{}, nil
	}

	videos := []*models.Video{}
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		found, err := r.list(ctx, "SELECT "+videoColumns+" FROM videos WHERE id IN "+in+" ORDER BY id ASC", args...)
		if err != nil {
			return nil, err
		}
		videos = append(videos, found...)
	}

	sort.Slice(videos, func(i, j int) bool { return videos[i].ID < videos[j].ID })
	return videos, nil
}

// List retrieves every video ordered by id.
func (r *VideoRepository) List(ctx context.Context) ([]*models.Video, error) {
	return r.list(ctx, "SELECT "+videoColumns+" FROM videos ORDER BY id ASC")
}

// Update writes every column of an existing video.
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE videos
		SET video_id = ?, url = ?, title = ?, author = ?, thumbnail = ?, duration = ?, length = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		video.VideoID,
		video.URL,
		video.Title,
		video.Author,
		video.Thumbnail,
		video.Duration,
		video.Length,
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", constraintError(err, "video_id "+video.VideoID))
	}

	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrVideoNotFound, video.ID)
	}

	return nil
}

// Delete removes the videos whose primary key is in ids and returns how many were removed.
// Their playlist links go with them.
func (r *VideoRepository) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var total int64
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		result, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id IN "+in, args...)
		if err != nil {
			return total, fmt.Errorf("failed to delete videos: %w", err)
		}

		n, err := rowsAffected(result)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *VideoRepository) list(ctx context.Context, query string, args ...any) ([]*models.Video, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanVideo scans one row selected with videoColumns into a [models.Video]
func scanVideo(row scanner) (*models.Video, error) {
	var v models.Video
	if err := row.Scan(&v.ID, &v.VideoID, &v.URL, &v.Title, &v.Author, &v.Thumbnail, &v.Duration, &v.Length); err != nil {
		return nil, err
	}
	return &v, nil
}
