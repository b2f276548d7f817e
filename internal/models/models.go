// package models defines the data model for the video catalog
package models

import (
	"context"
	"fmt"

	"github.com/desertthunder/vidshelf/internal/shared"
)

// Model defines the base interface for all persistent models in the catalog.
type Model interface {
	Key() int64      // Key returns the generated primary key, zero before the row is inserted
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Reader defines the read operations shared by the video and playlist services.
//
// The with flag asks for the associated rows (playlists of a video, videos of a playlist) to be loaded.
type Reader[T Model] interface {
	GetOne(ctx context.Context, id int64, with bool) (T, error)       // GetOne returns the row with the given id or a not found error
	GetMany(ctx context.Context, ids []int64, with bool) ([]T, error) // GetMany returns the rows matching ids, possibly none
	GetAll(ctx context.Context, with bool) ([]T, error)               // GetAll returns every row
}

// PlaylistVideo is one link between a video and a playlist.
//
// The pair is the whole key; linking the same pair twice is a no-op.
type PlaylistVideo struct {
	VideoID    int64 `json:"VideoId"`
	PlaylistID int64 `json:"PlaylistId"`
}

func requireText(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", shared.ErrInvalidArgument, field)
	}
	return nil
}
