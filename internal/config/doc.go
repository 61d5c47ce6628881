// Package config provides configuration management for storesearch.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - Default configuration values
//   - Conversion to client, fetcher, loader and export options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Searches https://itunes.apple.com/search, up to 200 results
//	// Six concurrent thumbnail downloads, 82x82 thumbnails
//	// Range-based grid profiles
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/settings.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Files ending in .toml are read with go-toml; anything else is JSON.
//
// # Saving Settings
//
//	settings.Country = "GB"
//	err := settings.Save("/path/to/settings.json")
//
// # Wiring
//
//	client := http.NewClient(settings.ToClientOptions()...)
//	fetcher := itunes.NewFetcher(client, settings.ToFetcherOptions()...)
//	loader := thumbnail.NewLoader(client, d, settings.ToLoaderOptions()...)
package config
