package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_Files(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "app.yaml", `
app:
  port: 9090
logging:
  level: debug
  format: text
data:
  path: /srv/sales.db
`)
	writeConfig(t, dir, "scraping.yaml", `
boliga:
  base_url: http://localhost:8000
  rate_limit:
    parallelism: 2
    delay: 250ms
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "boliga-prices", cfg.App.Name, "unset fields keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/srv/sales.db", cfg.Data.Path)
	assert.Equal(t, "http://localhost:8000", cfg.Scraping.Boliga.BaseURL)
	assert.Equal(t, 2, cfg.Scraping.Boliga.RateLimit.Parallelism)
	assert.Equal(t, 250*time.Millisecond, cfg.Scraping.Boliga.RateLimit.Delay)
	assert.Equal(t, 2*time.Second, cfg.Scraping.Boliga.RateLimit.RandomDelay)
}

func TestLoadConfig_EnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "app.yaml", "app:\n  port: 9090\n")

	t.Setenv("BOLIGA_APP_PORT", "7070")
	t.Setenv("BOLIGA_DATA_PATH", "override.csv")
	t.Setenv("BOLIGA_SCRAPING_BOLIGA_TIMEOUT", "5s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "override.csv", cfg.Data.Path)
	assert.Equal(t, 5*time.Second, cfg.Scraping.Boliga.Timeout)
}

func TestLoadConfig_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/local/bin:/usr/bin:/bin")
	t.Setenv("PORT", "1234")
	t.Setenv("NAME", "other")
	t.Setenv("LEVEL", "error")
	t.Setenv("TIMEOUT", "1s")
	t.Setenv("BASE_URL", "http://example.com")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Data.Path, cfg.Data.Path)
	assert.Equal(t, def.App.Port, cfg.App.Port)
	assert.Equal(t, def.App.Name, cfg.App.Name)
	assert.Equal(t, def.Logging.Level, cfg.Logging.Level)
	assert.Equal(t, def.Scraping.Boliga.Timeout, cfg.Scraping.Boliga.Timeout)
	assert.Equal(t, def.Scraping.Boliga.BaseURL, cfg.Scraping.Boliga.BaseURL)
}

func TestLoadConfig_MultiWordEnvKeys(t *testing.T) {
	t.Setenv("BOLIGA_SCRAPING_BOLIGA_BASE_URL", "http://localhost:9000")
	t.Setenv("BOLIGA_SCRAPING_BOLIGA_RATE_LIMIT_RANDOM_DELAY", "0s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.Scraping.Boliga.BaseURL)
	assert.Zero(t, cfg.Scraping.Boliga.RateLimit.RandomDelay)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		app    string
		scrape string
	}{
		{name: "bad yaml", app: "app: [port"},
		{name: "bad port", app: "app:\n  port: 70000\n"},
		{name: "bad log format", app: "logging:\n  format: xml\n"},
		{name: "bad base url", scrape: "boliga:\n  base_url: not a url\n"},
		{name: "zero parallelism", scrape: "boliga:\n  rate_limit:\n    parallelism: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.app != "" {
				writeConfig(t, dir, "app.yaml", tt.app)
			}
			if tt.scrape != "" {
				writeConfig(t, dir, "scraping.yaml", tt.scrape)
			}
			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}
