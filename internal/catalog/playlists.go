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

// PlaylistService implements the playlist operations.
type PlaylistService struct {
	store  *store.Store
	logger *log.Logger
}

// Create inserts one playlist.
func (s *PlaylistService) Create(ctx context.Context, name string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidArgument)
	}

	playlist := &models.Playlist{Name: name}
	if err := s.store.Playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}

	s.logger.Info("playlist created", "id", playlist.ID, "name", name)
	return playlist, nil
}

// CreateMany inserts one playlist per name in a single transaction and returns them in input order.
//
// Either every playlist is created or none is.
func (s *PlaylistService) CreateMany(ctx context.Context, names []string) ([]*models.Playlist, error) {
	playlists := make([]*models.Playlist, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: name at index %d is empty", shared.ErrInvalidArgument, i)
		}
		playlists[i] = &models.Playlist{Name: name}
	}

	if len(playlists) == 0 {
		return playlists, nil
	}

	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		return tx.Playlists.CreateMany(ctx, playlists)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("playlists created", "count", len(playlists))
	return playlists, nil
}

// GetOne returns the playlist with the given id, or [shared.ErrPlaylistNotFound].
func (s *PlaylistService) GetOne(ctx context.Context, id int64, withVideos bool) (*models.Playlist, error) {
	playlist, err := s.store.Playlists.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if withVideos {
		if err := loadVideos(ctx, s.store.Links, playlist); err != nil {
			return nil, err
		}
	}
	return playlist, nil
}

// GetMany returns the playlists whose id is in ids. Unknown ids are skipped.
func (s *PlaylistService) GetMany(ctx context.Context, ids []int64, withVideos bool) ([]*models.Playlist, error) {
	playlists, err := s.store.Playlists.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	if withVideos {
		if err := loadVideos(ctx, s.store.Links, playlists...); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

// GetAll returns every playlist ordered by id.
func (s *PlaylistService) GetAll(ctx context.Context, withVideos bool) ([]*models.Playlist, error) {
	playlists, err := s.store.Playlists.List(ctx)
	if err != nil {
		return nil, err
	}

	if withVideos {
		if err := loadVideos(ctx, s.store.Links, playlists...); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

// Rename sets name on every playlist whose id is in ids and returns how many rows changed.
// Large id lists are written in several statements inside one transaction.
func (s *PlaylistService) Rename(ctx context.Context, name string, ids ...int64) (int64, error) {
	var n int64
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		var err error
		n, err = tx.Playlists.Rename(ctx, ids, name)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("playlists renamed", "name", name, "updated", n)
	return n, nil
}

// Delete removes the playlists whose id is in ids and returns how many were removed.
// Their links to videos are removed with them; the videos stay.
func (s *PlaylistService) Delete(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.Links.DeleteByPlaylist(ctx, ids...); err != nil {
			return err
		}

		n, err := tx.Playlists.Delete(ctx, ids)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("playlists deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// loadVideos fills the Videos field of each playlist.
func loadVideos(ctx context.Context, links *repositories.PlaylistVideoRepository, playlists ...*models.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	ids := make([]int64, len(playlists))
	for i, p := range playlists {
		ids[i] = p.ID
	}

	byPlaylist, err := links.VideosByPlaylist(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range playlists {
		p.Videos = byPlaylist[p.ID]
		if p.Videos == nil {
			p.Videos = []models.Video{}
		}
	}
	return nil
}
