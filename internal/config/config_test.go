package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	cfg.Crawl.SeedURL = "https://example.test/start"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Crawl.Workers)
	assert.Equal(t, "visible", cfg.Crawl.ContentMode)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.Equal(t, "pagesift/1.0", cfg.Fetch.UserAgent)
	assert.Equal(t, "dictionary", cfg.Analyzer.Lemmatizer)
	assert.Equal(t, "report.txt", cfg.Report.OutputPath)
	assert.False(t, cfg.Report.Frequencies)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagesift.yaml")
	yaml := `
crawl:
  seed_url: https://example.test/
  workers: 4
  content_mode: article
fetch:
  retries: 5
report:
  frequencies: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/", cfg.Crawl.SeedURL)
	assert.Equal(t, 4, cfg.Crawl.Workers)
	assert.Equal(t, "article", cfg.Crawl.ContentMode)
	assert.Equal(t, 5, cfg.Fetch.Retries)
	assert.True(t, cfg.Report.Frequencies)
	// untouched keys keep their defaults
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "report.txt", cfg.Report.OutputPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFinalizeDerivesBaseURLAndDomain(t *testing.T) {
	cfg := validConfig()
	cfg.Crawl.SeedURL = "https://blog.example.co.uk/posts/1"

	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "https://blog.example.co.uk/", cfg.BaseURL)
	assert.Equal(t, "example.co.uk", cfg.Crawl.Domain)
}

func TestFinalizeKeepsExplicitDomain(t *testing.T) {
	cfg := validConfig()
	cfg.Crawl.Domain = "example.test"

	require.NoError(t, cfg.Finalize())
	assert.Equal(t, "example.test", cfg.Crawl.Domain)
}

func TestFinalizeIPHostFallback(t *testing.T) {
	cfg := validConfig()
	cfg.Crawl.SeedURL = "http://127.0.0.1:8080/index.html"

	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "http://127.0.0.1:8080/", cfg.BaseURL)
	assert.Equal(t, "127.0.0.1", cfg.Crawl.Domain)
}

func TestFinalizeSingleLabelHostFallback(t *testing.T) {
	cfg := validConfig()
	cfg.Crawl.SeedURL = "http://localhost:3000/"

	require.NoError(t, cfg.Finalize())
	assert.Equal(t, "localhost", cfg.Crawl.Domain)
}

func TestFinalizeRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing seed", func(c *Config) { c.Crawl.SeedURL = "" }},
		{"seed without scheme", func(c *Config) { c.Crawl.SeedURL = "example.test/page" }},
		{"zero workers", func(c *Config) { c.Crawl.Workers = 0 }},
		{"unknown content mode", func(c *Config) { c.Crawl.ContentMode = "readability" }},
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Fetch.Retries = -1 }},
		{"unknown lemmatizer", func(c *Config) { c.Analyzer.Lemmatizer = "wordnet" }},
		{"empty output path", func(c *Config) { c.Report.OutputPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Finalize())
		})
	}
}
