// Package config reads runtime settings from environment variables.
//
//	THUMBNAIL_LOG_LEVEL     "debug" enables debug logging (default "info")
//	THUMBNAIL_BACKEND       "go" (default) or "magickwand"
//	THUMBNAIL_BACKGROUND    hex colour alpha is flattened onto for JPEG output (default "#ffffff")
//	THUMBNAIL_JPEG_QUALITY  JPEG encoder quality for the go backend (default 92)
package config
