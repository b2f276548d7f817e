package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/vidshelf/internal/models"
)

// PlaylistVideoRepository manages the PlaylistVideos junction table.
//
// A link is keyed by the (VideoId, PlaylistId) pair; linking an existing pair again is a no-op.
type PlaylistVideoRepository struct {
	db Querier
}

// NewPlaylistVideoRepository creates a new PlaylistVideoRepository with the given database connection
func NewPlaylistVideoRepository(db Querier) *PlaylistVideoRepository {
	return &PlaylistVideoRepository{db: db}
}

// WithTx returns a copy of the repository that runs its queries in tx.
func (r *PlaylistVideoRepository) WithTx(tx *sql.Tx) *PlaylistVideoRepository {
	return &PlaylistVideoRepository{db: tx}
}

// Link inserts one pair if the playlist exists.
// Returns false when the playlist is unknown or the pair was already linked.
func (r *PlaylistVideoRepository) Link(ctx context.Context, videoID, playlistID int64) (bool, error) {
	query := `
		INSERT OR IGNORE INTO PlaylistVideos (VideoId, PlaylistId)
		SELECT ?, id FROM playlists WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, videoID, playlistID)
	if err != nil {
		return false, fmt.Errorf("failed to link video %d to playlist %d: %w", videoID, playlistID, err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Attach links the video to every existing playlist in playlistIDs and returns how many new links were made.
// Unknown playlist ids are ignored.
func (r *PlaylistVideoRepository) Attach(ctx context.Context, videoID int64, playlistIDs []int64) (int64, error) {
	var linked int64
	for _, playlistID := range uniqueIDs(playlistIDs) {
		ok, err := r.Link(ctx, videoID, playlistID)
		if err != nil {
			return linked, err
		}
		if ok {
			linked++
		}
	}
	return linked, nil
}

// ReplaceForVideo makes the resolved playlistIDs the video's complete playlist set.
// An empty playlistIDs clears every link of the video.
func (r *PlaylistVideoRepository) ReplaceForVideo(ctx context.Context, videoID int64, playlistIDs []int64) (int64, error) {
	if _, err := r.DeleteByVideo(ctx, videoID); err != nil {
		return 0, err
	}
	return r.Attach(ctx, videoID, playlistIDs)
}

// DeleteByVideo removes every link of the given videos.
func (r *PlaylistVideoRepository) DeleteByVideo(ctx context.Context, videoIDs ...int64) (int64, error) {
	return r.deleteBy(ctx, "VideoId", videoIDs)
}

// DeleteByPlaylist removes every link of the given playlists.
func (r *PlaylistVideoRepository) DeleteByPlaylist(ctx context.Context, playlistIDs ...int64) (int64, error) {
	return r.deleteBy(ctx, "PlaylistId", playlistIDs)
}

// PlaylistsByVideo loads the playlists linked to each of videoIDs, keyed by video id and ordered by playlist id.
func (r *PlaylistVideoRepository) PlaylistsByVideo(ctx context.Context, videoIDs []int64) (map[int64][]models.Playlist, error) {
	out := make(map[int64][]models.Playlist, len(videoIDs))

	for _, chunk := range chunkIDs(uniqueIDs(videoIDs)) {
		in, args := inClause(chunk)
		query := `
			SELECT pv.VideoId, p.id, p.name
			FROM PlaylistVideos pv
			JOIN playlists p ON p.id = pv.PlaylistId
			WHERE pv.VideoId IN ` + in + `
			ORDER BY pv.VideoId ASC, p.id ASC
		`

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query video playlists: %w", err)
		}

		for rows.Next() {
			var videoID int64
			var p models.Playlist
			if err := rows.Scan(&videoID, &p.ID, &p.Name); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan video playlist: %w", err)
			}
			out[videoID] = append(out[videoID], p)
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("row iteration error: %w", err)
		}
	}

	return out, nil
}

// VideosByPlaylist loads the videos linked to each of playlistIDs, keyed by playlist id and ordered by video id.
func (r *PlaylistVideoRepository) VideosByPlaylist(ctx context.Context, playlistIDs []int64) (map[int64][]models.Video, error) {
	out := make(map[int64][]models.Video, len(playlistIDs))

	for _, chunk := range chunkIDs(uniqueIDs(playlistIDs)) {
		in, args := inClause(chunk)
		query := `
			SELECT pv.PlaylistId, v.id, v.video_id, v.url, v.title, v.author, v.thumbnail, v.duration, v.length
			FROM PlaylistVideos pv
			JOIN videos v ON v.id = pv.VideoId
			WHERE pv.PlaylistId IN ` + in + `
			ORDER BY pv.PlaylistId ASC, v.id ASC
		`

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query playlist videos: %w", err)
		}

		for rows.Next() {
			var playlistID int64
			var v models.Video
			if err := rows.Scan(&playlistID, &v.ID, &v.VideoID, &v.URL, &v.Title, &v.Author, &v.Thumbnail, &v.Duration, &v.Length); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan playlist video: %w", err)
			}
			out[playlistID] = append(out[playlistID], v)
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("row iteration error: %w", err)
		}
	}

	return out, nil
}

// List retrieves every link ordered by video then playlist.
func (r *PlaylistVideoRepository) List(ctx context.Context) ([]models.PlaylistVideo, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT VideoId, PlaylistId FROM PlaylistVideos ORDER BY VideoId ASC, PlaylistId ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := []models.PlaylistVideo{}
	for rows.Next() {
		var link models.PlaylistVideo
		if err := rows.Scan(&link.VideoID, &link.PlaylistID); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return links, nil
}

func (r *PlaylistVideoRepository) deleteBy(ctx context.Context, column string, ids []int64) (int64, error) {
	var total int64
	for _, chunk := range chunkIDs(uniqueIDs(ids)) {
		in, args := inClause(chunk)
		result, err := r.db.ExecContext(ctx, "DELETE FROM PlaylistVideos WHERE "+column+" IN "+in, args...)
		if err != nil {
			return total, fmt.Errorf("failed to delete links: %w", err)
		}

		n, err := rowsAffected(result)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
