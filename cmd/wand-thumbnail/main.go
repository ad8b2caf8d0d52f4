package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ironsheep/wand-thumbnail/internal/config"
	"github.com/ironsheep/wand-thumbnail/internal/logging"
	"github.com/ironsheep/wand-thumbnail/internal/thumbnail"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Load()
	logging.Init(os.Stderr, cfg.LogLevel)

	if err := newCommand(cfg).Run(context.Background(), os.Args); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func newCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:            "wand-thumbnail",
		Usage:           "Resize every frame of an image to a 106x80 thumbnail",
		ArgsUsage:       "<input> <output>",
		Version:         fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		HideHelpCommand: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected 2 arguments <input> <output>, got %d", cmd.Args().Len())
			}
			return run(cfg, cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

// run returns rather than exiting so that library teardown completes before
// the process ends.
func run(cfg *config.Config, input, output string) error {
	api, err := openBackend(cfg)
	if err != nil {
		return err
	}
	logging.Get("main").Debugf("backend %s: %s -> %s", cfg.Backend, input, output)
	return thumbnail.Run(api, input, output)
}
