// Package config provides configuration management for lastfm-graph.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Environment overrides (LASTFM_API_KEY, LASTFM_LOG_LEVEL, ...)
//   - Default configuration values
//   - Conversion to the HTTP session configuration
//   - Log level setup
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// 7 attempts per request, backoff 0.2s * 4^n
//	// 4 parallel fetches, similar tags walked one level deep
//	// extended M3U playlists
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	// Uses defaults plus environment if the file doesn't exist
//
// # Saving Settings
//
//	settings.APIKey = "..."
//	err := settings.Save(config.DefaultPath())
//
// # Logging
//
// InitLogging sets the level of the default slog logger:
//
//	config.InitLogging(settings.LogLevel) // DEBUG, INFO, WARN (default) or ERROR
package config
