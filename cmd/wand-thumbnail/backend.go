package main

import (
	"fmt"

	"github.com/ironsheep/wand-thumbnail/internal/config"
	"github.com/ironsheep/wand-thumbnail/internal/gowand"
	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// openBackend returns the image library selected by THUMBNAIL_BACKEND.
func openBackend(cfg *config.Config) (magick.API, error) {
	switch cfg.Backend {
	case config.BackendGo, "":
		return gowand.New(
			gowand.WithBackground(cfg.Background),
			gowand.WithJPEGQuality(cfg.JPEGQuality),
		), nil
	case config.BackendMagickWand:
		api, err := magick.Native()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
		}
		return api, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %q or %q)", cfg.Backend, config.BackendGo, config.BackendMagickWand)
	}
}
