package catalog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/repositories"
	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/desertthunder/vidshelf/internal/store"
)

// VideoService implements the video operations.
type VideoService struct {
	store  *store.Store
	logger *log.Logger
}

// Exists reports whether a video with the external videoID is cataloged.
func (s *VideoService) Exists(ctx context.Context, videoID string) (bool, error) {
	count, err := s.store.Videos.CountByVideoID(ctx, videoID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts video and links it to every existing playlist in playlistIDs.
//
// Unknown playlist ids are ignored. Nothing is written when any step fails.
// The returned copy carries the generated id; video itself is not modified.
func (s *VideoService) Create(ctx context.Context, video *models.Video, playlistIDs ...int64) (*models.Video, error) {
	if video == nil {
		return nil, fmt.Errorf("%w: videoData must be a valid object", shared.ErrInvalidArgument)
	}

	created := *video
	created.ID = 0
	created.Playlists = nil

	var linked int64
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if err := tx.Videos.Create(ctx, &created); err != nil {
			return err
		}

		n, err := tx.Links.Attach(ctx, created.ID, playlistIDs)
		linked = n
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("video created", "id", created.ID, "video_id", created.VideoID, "playlists", linked)
	return &created, nil
}

// GetOne returns the video with the given id, or [shared.ErrVideoNotFound].
func (s *VideoService) GetOne(ctx context.Context, id int64, withPlaylists bool) (*models.Video, error) {
	video, err := s.store.Videos.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if withPlaylists {
		if err := loadPlaylists(ctx, s.store.Links, video); err != nil {
			return nil, err
		}
	}
	return video, nil
}

// GetMany returns the videos whose id is in ids. Unknown ids are skipped.
func (s *VideoService) GetMany(ctx context.Context, ids []int64, withPlaylists bool) ([]*models.Video, error) {
	videos, err := s.store.Videos.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	if withPlaylists {
		if err := loadPlaylists(ctx, s.store.Links, videos...); err != nil {
			return nil, err
		}
	}
	return videos, nil
}

// GetAll returns every video ordered by id.
func (s *VideoService) GetAll(ctx context.Context, withPlaylists bool) ([]*models.Video, error) {
	videos, err := s.store.Videos.List(ctx)
	if err != nil {
		return nil, err
	}

	if withPlaylists {
		if err := loadPlaylists(ctx, s.store.Links, videos...); err != nil {
			return nil, err
		}
	}
	return videos, nil
}

// Update applies patch to the video with the given id and makes playlistIDs its complete playlist set.
//
// A nil or empty playlistIDs clears every link of the video. Unknown playlist ids are ignored.
// The updated video is returned with its playlists loaded.
func (s *VideoService) Update(ctx context.Context, id int64, patch *models.VideoPatch, playlistIDs []int64) (*models.Video, error) {
	var video *models.Video
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		current, err := tx.Videos.Get(ctx, id)
		if err != nil {
			return err
		}

		if !patch.Empty() {
			patch.Apply(current)
			if err := tx.Videos.Update(ctx, current); err != nil {
				return err
			}
		}

		if _, err := tx.Links.ReplaceForVideo(ctx, id, playlistIDs); err != nil {
			return err
		}

		video = current
		return loadPlaylists(ctx, tx.Links, video)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("video updated", "id", id, "playlists", len(video.Playlists))
	return video, nil
}

// Delete removes the videos whose id is in ids and returns how many were removed.
//
// Ids with no row are not an error; deleting nothing returns 0.
func (s *VideoService) Delete(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.Links.DeleteByVideo(ctx, ids...); err != nil {
			return err
		}

		n, err := tx.Videos.Delete(ctx, ids)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("videos deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// loadPlaylists fills the Playlists field of each video.
func loadPlaylists(ctx context.Context, links *repositories.PlaylistVideoRepository, videos ...*models.Video) error {
	if len(videos) == 0 {
		return nil
	}

	ids := make([]int64, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}

	byVideo, err := links.PlaylistsByVideo(ctx, ids)
	if err != nil {
		return err
	}

	for _, v := range videos {
		v.Playlists = byVideo[v.ID]
		if v.Playlists == nil {
			v.Playlists = []models.Playlist{}
		}
	}
	return nil
}
