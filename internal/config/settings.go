package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/lastfm-graph/internal/audio"
	lfmhttp "github.com/handiism/lastfm-graph/internal/http"
	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds all configuration options.
//
// Every field can be overridden by the environment variable named in its
// env tag.
type Settings struct {
	// Web service settings
	APIKey         string  `json:"api_key" env:"LASTFM_API_KEY" env-description:"Last.fm API key"`
	BaseURL        string  `json:"base_url" env:"LASTFM_BASE_URL" env-description:"Last.fm web service root"`
	UserAgent      string  `json:"user_agent" env:"LASTFM_USER_AGENT" env-description:"User-Agent sent with every request"`
	RequestTimeout int     `json:"request_timeout" env:"LASTFM_REQUEST_TIMEOUT" env-description:"request timeout in seconds"`
	MaxRetries     int     `json:"max_retries" env:"LASTFM_MAX_RETRIES" env-description:"attempts per request"`
	RetryCooldown  float64 `json:"retry_cooldown" env:"LASTFM_RETRY_COOLDOWN" env-description:"first retry wait in seconds"`
	RetryExponent  float64 `json:"retry_exponent" env:"LASTFM_RETRY_EXPONENT" env-description:"retry wait multiplier"`

	// Exploration settings
	MaxConcurrentFetches int `json:"max_concurrent_fetches" env:"LASTFM_MAX_CONCURRENT_FETCHES" env-description:"parallel relationship fetches"`
	ExploreDepth         int `json:"explore_depth" env:"LASTFM_EXPLORE_DEPTH" env-description:"similar-tag levels to walk"`
	MaxSimilarPerTag     int `json:"max_similar_per_tag" env:"LASTFM_MAX_SIMILAR_PER_TAG" env-description:"similar tags followed from each tag, 0 for all"`

	// Logging
	LogLevel string `json:"log_level" env:"LASTFM_LOG_LEVEL" env-description:"DEBUG, INFO, WARN or ERROR"`

	// Cover art settings. Resizing always produces JPEG, so
	// ConvertCoverArtToJPG only matters when CoverArtMaxSize is 0.
	CoverArtSize         string `json:"cover_art_size" env:"LASTFM_COVER_ART_SIZE" env-description:"preferred image size label"`
	CoverArtMaxSize      int    `json:"cover_art_max_size" env:"LASTFM_COVER_ART_MAX_SIZE" env-description:"cover art bounding box in pixels, 0 keeps the original"`
	ConvertCoverArtToJPG bool   `json:"convert_cover_art_to_jpg" env:"LASTFM_CONVERT_COVER_ART_TO_JPG" env-description:"re-encode cover art as JPEG when not resizing"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format" env:"LASTFM_PLAYLIST_FORMAT" env-description:"m3u or pls"`
	M3UExtended    bool   `json:"m3u_extended" env:"LASTFM_M3U_EXTENDED" env-description:"write #EXTINF lines"`

	// Tag settings
	MaxGenres int `json:"max_genres" env:"LASTFM_MAX_GENRES" env-description:"genres written when retagging, 0 for all"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:        lfmhttp.DefaultBaseURL,
		UserAgent:      "lastfm-graph",
		RequestTimeout: 30,
		MaxRetries:     7,
		RetryCooldown:  0.2,
		RetryExponent:  4.0,

		MaxConcurrentFetches: 4,
		ExploreDepth:         1,
		MaxSimilarPerTag:     5,

		LogLevel: "WARN",

		CoverArtSize:         "extralarge",
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		MaxGenres: 3,
	}
}

// Load reads settings from a JSON file and applies environment overrides.
//
// A missing file is not an error: defaults plus environment are returned.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := cleanenv.ReadEnv(settings); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
		return settings, nil
	}

	if err := cleanenv.ReadConfig(path, settings); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lastfm-graph.json"
	}
	return filepath.Join(dir, "lastfm-graph", "settings.json")
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ToSessionConfig converts settings to the HTTP session configuration.
func (s *Settings) ToSessionConfig() lfmhttp.SessionConfig {
	return lfmhttp.SessionConfig{
		APIKey:        s.APIKey,
		BaseURL:       s.BaseURL,
		MaxRetries:    s.MaxRetries,
		RetryCooldown: s.RetryCooldown,
		RetryExponent: s.RetryExponent,
	}
}

// ToPlaylistFormat converts the playlist format name.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	return audio.ParsePlaylistFormat(s.PlaylistFormat)
}

// FUsage returns a flag.Usage replacement that runs usage, if any, and then
// lists the environment variables under header.
func FUsage(w io.Writer, header string, usage func()) func() {
	if usage == nil {
		return cleanenv.FUsage(w, &Settings{}, &header)
	}
	return cleanenv.FUsage(w, &Settings{}, &header, usage)
}

// InitLogging sets the default slog level from a name.
func InitLogging(level string) {
	slog.SetLogLoggerLevel(ParseLogLevel(level))
}

// ParseLogLevel maps DEBUG, INFO, WARN and ERROR to slog levels. Unknown
// names mean WARN.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
