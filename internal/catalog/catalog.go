package catalog

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/desertthunder/vidshelf/internal/store"
)

var (
	_ models.Reader[*models.Video]    = (*VideoService)(nil)
	_ models.Reader[*models.Playlist] = (*PlaylistService)(nil)
)

// Catalog is the entry point for callers of the access layer.
type Catalog struct {
	Videos    *VideoService
	Playlists *PlaylistService
}

// New builds the services over st.
func New(st *store.Store, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = st.Logger()
	}
	return &Catalog{
		Videos:    &VideoService{store: st, logger: shared.WithLogger(logger, "service", "videos")},
		Playlists: &PlaylistService{store: st, logger: shared.WithLogger(logger, "service", "playlists")},
	}
}
