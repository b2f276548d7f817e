package main

import (
	"context"

	"github.com/desertthunder/vidshelf/internal/bridge"
	"github.com/urfave/cli/v3"
)

// Bridge answers JSON-line requests from stdin on stdout until stdin closes.
//
// Logs go to the runner's logger (stderr by default) so stdout carries responses only.
func (r *Runner) Bridge(ctx context.Context, cmd *cli.Command) error {
	channels := r.config.Bridge.Channels
	if cmd.IsSet("channel") {
		channels = cmd.StringSlice("channel")
	}

	c, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	b := bridge.NewCatalogBridge(c, channels, r.logger)
	return b.Serve(ctx, r.input, r.output)
}
