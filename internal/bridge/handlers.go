package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidshelf/internal/catalog"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
)

// Method names served by [Register].
const (
	MethodVideoExists    = "VideoExists"
	MethodCreateVideo    = "CreateVideo"
	MethodReadVideo      = "ReadVideo"
	MethodUpdateVideo    = "UpdateVideo"
	MethodDeleteVideo    = "DeleteVideo"
	MethodCreatePlaylist = "CreatePlaylist"
	MethodReadPlaylist   = "ReadPlaylist"
	MethodUpdatePlaylist = "UpdatePlaylist"
	MethodDeletePlaylist = "DeletePlaylist"
)

// Methods lists every method in registration order.
var Methods = []string{
	MethodVideoExists, MethodCreateVideo, MethodReadVideo, MethodUpdateVideo, MethodDeleteVideo,
	MethodCreatePlaylist, MethodReadPlaylist, MethodUpdatePlaylist, MethodDeletePlaylist,
}

// NewCatalogBridge returns a Bridge with the default middleware and every catalog method registered.
func NewCatalogBridge(c *catalog.Catalog, channels []string, logger *log.Logger) *Bridge {
	b := New(channels, logger)
	b.Use(Logging(b.logger), Recover(b.logger))
	Register(b, c)
	return b
}

// Register adds the catalog methods to b.
func Register(b *Bridge, c *catalog.Catalog) {
	h := &handlers{catalog: c}

	b.Handle(MethodVideoExists, h.videoExists)
	b.Handle(MethodCreateVideo, h.createVideo)
	b.Handle(MethodReadVideo, h.readVideo)
	b.Handle(MethodUpdateVideo, h.updateVideo)
	b.Handle(MethodDeleteVideo, h.deleteVideo)
	b.Handle(MethodCreatePlaylist, h.createPlaylist)
	b.Handle(MethodReadPlaylist, h.readPlaylist)
	b.Handle(MethodUpdatePlaylist, h.updatePlaylist)
	b.Handle(MethodDeletePlaylist, h.deletePlaylist)
}

type handlers struct {
	catalog *catalog.Catalog
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", shared.ErrInvalidArgument, msg)
}

// videoExists(video_id)
func (h *handlers) videoExists(ctx context.Context, req *Request) (any, error) {
	videoID, ok := parseString(arg(req, 0))
	if !ok {
		return nil, invalid("VideoID must be a string")
	}
	return h.catalog.Videos.Exists(ctx, videoID)
}

// createVideo(videoData, playlistId?)
func (h *handlers) createVideo(ctx context.Context, req *Request) (any, error) {
	data := arg(req, 0)
	if !truthy(data) {
		return nil, invalid("videoData must be a valid object")
	}
	if !isObject(data) {
		return nil, invalid("videoData must be a object")
	}

	var video models.Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, invalid(fmt.Sprintf("videoData: %v", err))
	}

	return h.catalog.Videos.Create(ctx, &video, parseIDs(arg(req, 1)).IDs()...)
}

// readVideo(id?, withPlaylist=false)
func (h *handlers) readVideo(ctx context.Context, req *Request) (any, error) {
	return read[*models.Video](ctx, h.catalog.Videos, parseIDs(arg(req, 0)), truthy(arg(req, 1)))
}

// updateVideo(id, videoData?, playlistId?)
func (h *handlers) updateVideo(ctx context.Context, req *Request) (any, error) {
	id := parseIDs(arg(req, 0))
	if id.Shape != ShapeOne {
		return nil, invalid("Id must be a Number, and videoData must be Object or Playlist ID must be a number")
	}

	var patch *models.VideoPatch
	if data := arg(req, 1); isObject(data) {
		patch = &models.VideoPatch{}
		if err := json.Unmarshal(data, patch); err != nil {
			return nil, invalid(fmt.Sprintf("videoData: %v", err))
		}
	}

	return h.catalog.Videos.Update(ctx, id.One, patch, parseIDs(arg(req, 2)).IDs())
}

// deleteVideo(id)
func (h *handlers) deleteVideo(ctx context.Context, req *Request) (any, error) {
	id := parseIDs(arg(req, 0))
	if id.Shape == ShapeOther {
		return nil, invalid("id must be Number or Array of numbers")
	}
	return h.catalog.Videos.Delete(ctx, id.IDs()...)
}

// createPlaylist(name)
func (h *handlers) createPlaylist(ctx context.Context, req *Request) (any, error) {
	raw := arg(req, 0)
	if !truthy(raw) {
		return nil, invalid("name must be a valid text")
	}

	if names, ok := parseStrings(raw); ok {
		return h.catalog.Playlists.CreateMany(ctx, names)
	}

	name, ok := parseString(raw)
	if !ok {
		return nil, invalid("name must be a valid text")
	}
	return h.catalog.Playlists.Create(ctx, name)
}

// readPlaylist(id?, withVideos=false)
func (h *handlers) readPlaylist(ctx context.Context, req *Request) (any, error) {
	return read[*models.Playlist](ctx, h.catalog.Playlists, parseIDs(arg(req, 0)), truthy(arg(req, 1)))
}

// updatePlaylist(id, name)
func (h *handlers) updatePlaylist(ctx context.Context, req *Request) (any, error) {
	id := parseIDs(arg(req, 0))
	name, isString := parseString(arg(req, 1))

	switch {
	case id.Shape == ShapeOne && isString:
		return h.catalog.Playlists.Rename(ctx, name, id.One)
	case id.Shape == ShapeMany && isString:
		return h.catalog.Playlists.Rename(ctx, name, id.Many...)
	case id.Shape == ShapeMany:
		return int64(0), nil
	default:
		return nil, invalid("Id must be a Number and Name must be String")
	}
}

// deletePlaylist(id)
func (h *handlers) deletePlaylist(ctx context.Context, req *Request) (any, error) {
	id := parseIDs(arg(req, 0))
	if id.Shape == ShapeOther {
		return nil, invalid("id must be Number or Array of numbers")
	}
	return h.catalog.Playlists.Delete(ctx, id.IDs()...)
}

// read picks the [models.Reader] call matching the shape of the id argument.
func read[T models.Model](ctx context.Context, r models.Reader[T], id IDSelector, with bool) (any, error) {
	switch id.Shape {
	case ShapeMany:
		return r.GetMany(ctx, id.Many, with)
	case ShapeOne:
		return r.GetOne(ctx, id.One, with)
	default:
		return r.GetAll(ctx, with)
	}
}
