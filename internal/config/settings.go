package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/storesearch/internal/download"
	"github.com/handiism/storesearch/internal/grid"
	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/itunes"
	"github.com/handiism/storesearch/internal/thumbnail"
)

// Settings holds all configuration options.
type Settings struct {
	// Search settings
	Endpoint    string `json:"endpoint" toml:"endpoint"`
	ResultLimit int    `json:"result_limit" toml:"result_limit"`
	Country     string `json:"country" toml:"country"`

	// HTTP settings
	RequestTimeout float64 `json:"request_timeout" toml:"request_timeout"` // seconds
	UserAgent      string  `json:"user_agent" toml:"user_agent"`

	// Thumbnail settings
	MaxConcurrentThumbnails int `json:"max_concurrent_thumbnails" toml:"max_concurrent_thumbnails"`
	ThumbnailWidth          int `json:"thumbnail_width" toml:"thumbnail_width"`
	ThumbnailHeight         int `json:"thumbnail_height" toml:"thumbnail_height"`

	// Artwork export settings
	ExportFileNameFormat string  `json:"export_file_name_format" toml:"export_file_name_format"`
	MaxConcurrentExports int     `json:"max_concurrent_exports" toml:"max_concurrent_exports"`
	ExportMaxRetries     int     `json:"export_max_retries" toml:"export_max_retries"`
	ExportRetryCooldown  float64 `json:"export_retry_cooldown" toml:"export_retry_cooldown"`
	ExportRetryExponent  float64 `json:"export_retry_exponent" toml:"export_retry_exponent"`
	ExportResize         bool    `json:"export_resize" toml:"export_resize"`

	// Layout settings
	PointsPerCell float64 `json:"points_per_cell" toml:"points_per_cell"`
	ProfileMatch  string  `json:"profile_match" toml:"profile_match"` // range, exact
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:    itunes.DefaultEndpoint,
		ResultLimit: itunes.DefaultLimit,
		Country:     "",

		RequestTimeout: 60,
		UserAgent:      http.DefaultUserAgent,

		MaxConcurrentThumbnails: thumbnail.DefaultMaxConcurrent,
		ThumbnailWidth:          grid.ButtonWidth,
		ThumbnailHeight:         grid.ButtonHeight,

		ExportFileNameFormat: "{artist} - {name}",
		MaxConcurrentExports: 4,
		ExportMaxRetries:     3,
		ExportRetryCooldown:  0.2,
		ExportRetryExponent:  4.0,
		ExportResize:         false,

		PointsPerCell: 8,
		ProfileMatch:  "range",
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "storesearch", "settings.json")
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads settings from a JSON file, or TOML when the path ends in .toml.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isTOML(path) {
		err = toml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path in the format implied by its extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot be used.
func (s *Settings) Validate() error {
	switch {
	case s.Endpoint == "":
		return fmt.Errorf("endpoint must not be empty")
	case s.ResultLimit <= 0:
		return fmt.Errorf("result_limit must be positive, got %d", s.ResultLimit)
	case s.RequestTimeout <= 0:
		return fmt.Errorf("request_timeout must be positive, got %g", s.RequestTimeout)
	case s.MaxConcurrentThumbnails <= 0:
		return fmt.Errorf("max_concurrent_thumbnails must be positive, got %d", s.MaxConcurrentThumbnails)
	case s.ThumbnailWidth <= 0 || s.ThumbnailHeight <= 0:
		return fmt.Errorf("thumbnail size must be positive, got %dx%d", s.ThumbnailWidth, s.ThumbnailHeight)
	case s.MaxConcurrentExports <= 0:
		return fmt.Errorf("max_concurrent_exports must be positive, got %d", s.MaxConcurrentExports)
	case s.PointsPerCell <= 0:
		return fmt.Errorf("points_per_cell must be positive, got %g", s.PointsPerCell)
	}
	if _, ok := grid.ParseMatchMode(s.ProfileMatch); !ok {
		return fmt.Errorf("profile_match must be range or exact, got %q", s.ProfileMatch)
	}
	return nil
}

// Timeout returns RequestTimeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// MatchMode returns the configured profile matching mode.
func (s *Settings) MatchMode() grid.MatchMode {
	m, _ := grid.ParseMatchMode(s.ProfileMatch)
	return m
}

// ToClientOptions converts settings to http client options.
func (s *Settings) ToClientOptions() []http.Option {
	return []http.Option{
		http.WithTimeout(s.Timeout()),
		http.WithUserAgent(s.UserAgent),
	}
}

// ToFetcherOptions converts settings to iTunes fetcher options.
func (s *Settings) ToFetcherOptions() []itunes.Option {
	opts := []itunes.Option{
		itunes.WithEndpoint(s.Endpoint),
		itunes.WithLimit(s.ResultLimit),
	}
	if s.Country != "" {
		opts = append(opts, itunes.WithCountry(s.Country))
	}
	return opts
}

// ToLoaderOptions converts settings to thumbnail loader options.
func (s *Settings) ToLoaderOptions() []thumbnail.Option {
	return []thumbnail.Option{
		thumbnail.WithMaxConcurrent(s.MaxConcurrentThumbnails),
		thumbnail.WithSize(s.ThumbnailWidth, s.ThumbnailHeight),
	}
}

// ToExportConfig converts settings to an artwork export config for dir.
// Resized exports use the large artwork size.
func (s *Settings) ToExportConfig(dir string) download.Config {
	cfg := download.DefaultConfig(dir)
	cfg.FileNameFormat = s.ExportFileNameFormat
	cfg.MaxConcurrent = s.MaxConcurrentExports
	cfg.MaxRetries = s.ExportMaxRetries
	cfg.RetryCooldown = s.ExportRetryCooldown
	cfg.RetryExponent = s.ExportRetryExponent
	cfg.Resize = s.ExportResize
	return cfg
}
