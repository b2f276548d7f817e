package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// argIDs parses every positional argument as a row id.
func argIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one id is required", shared.ErrMissingArgument)
	}

	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q is not an integer", shared.ErrInvalidArgument, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// videoPatch builds a patch from the field flags the user actually set.
func videoPatch(cmd *cli.Command) *models.VideoPatch {
	patch := &models.VideoPatch{}
	text := map[string]**string{
		"video-id":  &patch.VideoID,
		"url":       &patch.URL,
		"title":     &patch.Title,
		"author":    &patch.Author,
		"thumbnail": &patch.Thumbnail,
		"duration":  &patch.Duration,
	}
	for name, field := range text {
		if cmd.IsSet(name) {
			v := cmd.String(name)
			*field = &v
		}
	}
	if cmd.IsSet("length") {
		n := cmd.Int("length")
		patch.Length = &n
		if patch.Duration == nil {
			d := shared.FormatDuration(n)
			patch.Duration = &d
		}
	}
	return patch
}

// VideoExists reports whether a video id is already cataloged.
func (r *Runner) VideoExists(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.Args().First()
	if videoID == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	exists, err := c.Videos.Exists(ctx, videoID)
	if err != nil {
		return err
	}

	return r.write(cmd, exists, func() error {
		return r.writePlain("%t\n", exists)
	})
}

// VideoAdd creates a video from flags and links it to every --playlist id.
func (r *Runner) VideoAdd(ctx context.Context, cmd *cli.Command) error {
	video := &models.Video{}
	videoPatch(cmd).Apply(video)

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	created, err := c.Videos.Create(ctx, video, cmd.Int64Slice("playlist")...)
	if err != nil {
		return err
	}

	created, err = c.Videos.GetOne(ctx, created.ID, true)
	if err != nil {
		return err
	}

	return r.write(cmd, created, func() error {
		r.writePlain("✓ Added video %d\n", created.ID)
		return r.printVideo(created)
	})
}

// VideoShow prints the videos with the given ids.
func (r *Runner) VideoShow(ctx context.Context, cmd *cli.Command) error {
	ids, err := argIDs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	with := cmd.Bool("playlists")
	if len(ids) == 1 {
		video, err := c.Videos.GetOne(ctx, ids[0], with)
		if err != nil {
			return err
		}
		return r.write(cmd, video, func() error { return r.printVideo(video) })
	}

	videos, err := c.Videos.GetMany(ctx, ids, with)
	if err != nil {
		return err
	}
	return r.write(cmd, videos, func() error { return r.printVideos(videos) })
}

// VideoList prints every cataloged video.
func (r *Runner) VideoList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	videos, err := c.Videos.GetAll(ctx, cmd.Bool("playlists"))
	if err != nil {
		return err
	}

	return r.write(cmd, videos, func() error {
		r.writePlainHeader(fmt.Sprintf("Videos (%d)", len(videos)))
		return r.printVideos(videos)
	})
}

// VideoUpdate patches a video in place.
//
// Playlist links are left alone unless --playlist or --clear-playlists is given.
func (r *Runner) VideoUpdate(ctx context.Context, cmd *cli.Command) error {
	ids, err := argIDs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return fmt.Errorf("%w: update takes exactly one id", shared.ErrInvalidArgument)
	}
	if cmd.IsSet("playlist") && cmd.Bool("clear-playlists") {
		return fmt.Errorf("%w: cannot combine --playlist and --clear-playlists", shared.ErrInvalidFlag)
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	var playlistIDs []int64
	switch {
	case cmd.IsSet("playlist"):
		playlistIDs = cmd.Int64Slice("playlist")
	case !cmd.Bool("clear-playlists"):
		current, err := c.Videos.GetOne(ctx, ids[0], true)
		if err != nil {
			return err
		}
		playlistIDs = current.PlaylistIDs()
	}

	video, err := c.Videos.Update(ctx, ids[0], videoPatch(cmd), playlistIDs)
	if err != nil {
		return err
	}

	return r.write(cmd, video, func() error {
		r.writePlain("✓ Updated video %d\n", video.ID)
		return r.printVideo(video)
	})
}

// VideoDelete removes videos and reports how many were deleted.
func (r *Runner) VideoDelete(ctx context.Context, cmd *cli.Command) error {
	ids, err := argIDs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	n, err := c.Videos.Delete(ctx, ids...)
	if err != nil {
		return err
	}

	return r.write(cmd, n, func() error {
		return r.writePlain("✓ Deleted %d video(s)\n", n)
	})
}

func (r *Runner) printVideos(videos []*models.Video) error {
	if len(videos) == 0 {
		return r.writePlain("No videos found\n")
	}
	for _, v := range videos {
		if err := r.writePlain("%4d  %-12s  %-8s  %s - %s\n", v.ID, v.VideoID, v.Duration, v.Title, v.Author); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printVideo(v *models.Video) error {
	r.writePlain("ID:         %d\n", v.ID)
	r.writePlain("Video ID:   %s\n", v.VideoID)
	r.writePlain("Title:      %s\n", v.Title)
	r.writePlain("Author:     %s\n", v.Author)
	r.writePlain("URL:        %s\n", v.URL)
	r.writePlain("Thumbnail:  %s\n", v.Thumbnail)
	r.writePlain("Duration:   %s (%ds)\n", v.Duration, v.Length)

	if v.Playlists == nil {
		return nil
	}
	names := make([]string, 0, len(v.Playlists))
	for _, p := range v.Playlists {
		names = append(names, fmt.Sprintf("%s (%d)", p.Name, p.ID))
	}
	return r.writePlain("Playlists:  %s\n", strings.Join(names, ", "))
}
