// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func withFlag(name string) cli.Flag {
	return &cli.BoolFlag{
		Name:    name,
		Aliases: []string{"w"},
		Usage:   "Include associated " + name,
	}
}

// videoFields are the flags shared by video add and video update.
func videoFields() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "video-id", Usage: "Platform video identifier"},
		&cli.StringFlag{Name: "url", Usage: "Video URL"},
		&cli.StringFlag{Name: "title", Usage: "Video title"},
		&cli.StringFlag{Name: "author", Usage: "Channel or author name"},
		&cli.StringFlag{Name: "thumbnail", Usage: "Thumbnail URL"},
		&cli.StringFlag{Name: "duration", Usage: "Display duration, derived from --length when empty"},
		&cli.IntFlag{Name: "length", Usage: "Length in seconds"},
		&cli.Int64SliceFlag{
			Name:    "playlist",
			Aliases: []string{"p"},
			Usage:   "Playlist id to link, repeatable",
		},
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file from the built-in template",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the database and synchronize its schema",
				Action: r.SetupDatabase,
			},
		},
	}
}

// videoCommand handles catalog video operations
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"v"},
		Usage:   "Video catalog operations",
		Commands: []*cli.Command{
			{
				Name:      "exists",
				Usage:     "Report whether a video with the given video id is cataloged",
				ArgsUsage: "<video-id>",
				Flags:     outputFlags(),
				Action:    r.VideoExists,
			},
			{
				Name:   "add",
				Usage:  "Add a video, optionally linking it to playlists",
				Flags:  append(videoFields(), outputFlags()...),
				Action: r.VideoAdd,
			},
			{
				Name:      "show",
				Usage:     "Show one or more videos by id",
				ArgsUsage: "<id>...",
				Flags:     append(outputFlags(), withFlag("playlists")),
				Action:    r.VideoShow,
			},
			{
				Name:   "list",
				Usage:  "List every video",
				Flags:  append(outputFlags(), withFlag("playlists")),
				Action: r.VideoList,
			},
			{
				Name:      "update",
				Usage:     "Update a video's fields and playlist links",
				ArgsUsage: "<id>",
				Flags: append(append(videoFields(), &cli.BoolFlag{
					Name:  "clear-playlists",
					Usage: "Remove every playlist link",
				}), outputFlags()...),
				Action: r.VideoUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete videos by id",
				ArgsUsage: "<id>...",
				Flags:     outputFlags(),
				Action:    r.VideoDelete,
			},
		},
	}
}

// playlistCommand handles catalog playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist catalog operations",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create one playlist per name",
				ArgsUsage: "<name>...",
				Flags:     outputFlags(),
				Action:    r.PlaylistCreate,
			},
			{
				Name:      "show",
				Usage:     "Show one or more playlists by id",
				ArgsUsage: "<id>...",
				Flags:     append(outputFlags(), withFlag("videos")),
				Action:    r.PlaylistShow,
			},
			{
				Name:   "list",
				Usage:  "List every playlist",
				Flags:  append(outputFlags(), withFlag("videos")),
				Action: r.PlaylistList,
			},
			{
				Name:      "rename",
				Usage:     "Rename playlists by id",
				ArgsUsage: "<name> <id>...",
				Flags:     outputFlags(),
				Action:    r.PlaylistRename,
			},
			{
				Name:      "delete",
				Usage:     "Delete playlists by id",
				ArgsUsage: "<id>...",
				Flags:     outputFlags(),
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "export",
				Usage:     "Export playlists with their videos to files",
				ArgsUsage: "<id>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Export every playlist",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// bridgeCommand serves the catalog over stdio
func bridgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bridge",
		Usage: "Serve catalog requests as JSON lines on stdin/stdout",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "channel",
				Usage: "Allowed channel, repeatable; defaults to [bridge] channels",
			},
		},
		Action: r.Bridge,
	}
}

// tuiCommand launches the playlist browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse playlists and videos interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File receiving logs while the UI runs",
				Value: "./tmp/vidshelf-tui.log",
			},
		},
		Action: r.TUI,
	}
}
