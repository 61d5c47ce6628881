package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/storesearch/internal/grid"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"country":"GB","result_limit":50}`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GB", s.Country)
	assert.Equal(t, 50, s.ResultLimit)
	assert.Equal(t, DefaultSettings().Endpoint, s.Endpoint)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := `
country = "JP"
request_timeout = 2.5
profile_match = "exact"
max_concurrent_thumbnails = 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "JP", s.Country)
	assert.Equal(t, 2500*time.Millisecond, s.Timeout())
	assert.Equal(t, grid.MatchExact, s.MatchMode())
	assert.Equal(t, 3, s.MaxConcurrentThumbnails)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"bad json", "s.json", `{"country":`},
		{"bad toml", "s.toml", `country = `},
		{"bad match mode", "s.json", `{"profile_match":"fuzzy"}`},
		{"zero limit", "s.json", `{"result_limit":0}`},
		{"negative timeout", "s.toml", `request_timeout = -1.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/settings.json", "nested/settings.toml"} {
		t.Run(filepath.Ext(name), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultSettings()
			want.Country = "DE"
			want.PointsPerCell = 6.5

			require.NoError(t, want.Save(path))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestOptionConversions(t *testing.T) {
	s := DefaultSettings()
	assert.Len(t, s.ToClientOptions(), 2)
	assert.Len(t, s.ToFetcherOptions(), 2)
	assert.Len(t, s.ToLoaderOptions(), 2)

	cfg := s.ToExportConfig("/tmp/art")
	assert.Equal(t, "/tmp/art", cfg.Dir)
	assert.Equal(t, s.MaxConcurrentExports, cfg.MaxConcurrent)
	assert.Equal(t, "{artist} - {name}", cfg.FileNameFormat)

	s.Country = "US"
	assert.Len(t, s.ToFetcherOptions(), 3)
	assert.Equal(t, grid.MatchRange, s.MatchMode())
}
