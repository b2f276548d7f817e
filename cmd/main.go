package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/vidshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := newApp(runner).Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close store", "error", cerr)
	}

	if err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "vidshelf",
		Usage:    "Manage a local catalog of videos and playlists",
		Version:  "0.1.0",
		Flags:    []cli.Flag{configFlag()},
		Before:   r.Before,
		Commands: r.register(),
		Writer:   r.output,
	}
}
