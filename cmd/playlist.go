package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vidshelf/internal/formatter"
	"github.com/desertthunder/vidshelf/internal/models"
	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates one playlist per positional name, all or none.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("%w: at least one playlist name is required", shared.ErrMissingArgument)
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	if len(names) == 1 {
		playlist, err := c.Playlists.Create(ctx, names[0])
		if err != nil {
			return err
		}
		return r.write(cmd, playlist, func() error {
			return r.writePlain("✓ Created playlist %d: %s\n", playlist.ID, playlist.Name)
		})
	}

	playlists, err := c.Playlists.CreateMany(ctx, names)
	if err != nil {
		return err
	}
	return r.write(cmd, playlists, func() error {
		r.writePlain("✓ Created %d playlists\n", len(playlists))
		return r.printPlaylists(playlists)
	})
}

// PlaylistShow prints the playlists with the given ids.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	ids, err := argIDs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	with := cmd.Bool("videos")
	if len(ids) == 1 {
		playlist, err := c.Playlists.GetOne(ctx, ids[0], with)
		if err != nil {
			return err
		}
		return r.write(cmd, playlist, func() error { return r.printPlaylist(playlist) })
	}

	playlists, err := c.Playlists.GetMany(ctx, ids, with)
	if err != nil {
		return err
	}
	return r.write(cmd, playlists, func() error {
		for _, p := range playlists {
			if err := r.printPlaylist(p); err != nil {
				return err
			}
		}
		return nil
	})
}

// PlaylistList prints every playlist.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	playlists, err := c.Playlists.GetAll(ctx, cmd.Bool("videos"))
	if err != nil {
		return err
	}

	return r.write(cmd, playlists, func() error {
		r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(playlists)))
		return r.printPlaylists(playlists)
	})
}

// PlaylistRename sets the name of every listed playlist.
func (r *Runner) PlaylistRename(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: rename takes a name and at least one id", shared.ErrMissingArgument)
	}

	ids, err := argIDs(args[1:])
	if err != nil {
		return err
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	n, err := c.Playlists.Rename(ctx, args[0], ids...)
	if err != nil {
		return err
	}

	return r.write(cmd, n, func() error {
		return r.writePlain("✓ Renamed %d playlist(s) to %q\n", n, args[0])
	})
}

// PlaylistDelete removes playlists and reports how many were deleted.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	ids, err := argIDs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	n, err := c.Playlists.Delete(ctx, ids...)
	if err != nil {
		return err
	}

	return r.write(cmd, n, func() error {
		return r.writePlain("✓ Deleted %d playlist(s)\n", n)
	})
}

// PlaylistExport writes the selected playlists, with their videos, to files in the chosen format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	all := cmd.Bool("all")
	args := cmd.Args().Slice()
	if all && len(args) > 0 {
		return fmt.Errorf("%w: cannot combine --all with playlist ids", shared.ErrInvalidFlag)
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	var playlists []*models.Playlist
	if all {
		playlists, err = c.Playlists.GetAll(ctx, true)
	} else {
		var ids []int64
		if ids, err = argIDs(args); err != nil {
			return err
		}
		playlists, err = c.Playlists.GetMany(ctx, ids, true)
	}
	if err != nil {
		return err
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists to export\n")
	}

	r.logger.Info("exporting playlists", "count", len(playlists), "format", format)

	result, err := formatter.BulkExport(ctx, playlists, formatter.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		OnResult: func(res formatter.PlaylistExportResult) {
			if res.Success {
				r.logger.Debug("playlist exported", "id", res.PlaylistID, "files", len(res.Files))
			} else {
				r.logger.Warn("playlist export failed", "id", res.PlaylistID, "error", res.Error)
			}
		},
	})
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Summary")
	r.writePlain("Format:     %s\n", format)
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	r.writePlain("Exported:   %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)
	if result.FailedExports > 0 {
		r.writePlain("Failed:     %d\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  ✗ %s (%d): %v\n", res.PlaylistName, res.PlaylistID, res.Error)
			}
		}
	}
	return r.writePlain("Manifest:   %s\n", result.ManifestPath)
}

func (r *Runner) printPlaylists(playlists []*models.Playlist) error {
	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}
	for _, p := range playlists {
		line := fmt.Sprintf("%4d  %s", p.ID, p.Name)
		if p.Videos != nil {
			line += fmt.Sprintf(" (%d videos)", len(p.Videos))
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printPlaylist(p *models.Playlist) error {
	r.writePlainHeader(fmt.Sprintf("%s (%d)", p.Name, p.ID))
	if p.Videos == nil {
		return nil
	}

	videos := make([]*models.Video, len(p.Videos))
	for i := range p.Videos {
		videos[i] = &p.Videos[i]
	}
	return r.printVideos(videos)
}
