package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Source.Kind)
	assert.Equal(t, "content/blog/posts.json", cfg.Source.Path)
	assert.Equal(t, time.Duration(0), cfg.Source.Timeout)
	assert.Equal(t, "data/badger", cfg.Store.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/blog.html", cfg.Site.BlogPath)
	assert.Equal(t, "← Back to Resource Center", cfg.Site.BackLabel)
	assert.Equal(t, "en", cfg.Site.Locale)
	assert.False(t, cfg.Render.Markdown)
	assert.Equal(t, "last", cfg.Sort.MissingDates)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  kind: http
  url: https://example.com/posts.json
  timeout: 5s
site:
  locale: ja
render:
  markdown: true
sort:
  missing_dates: now
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Source.Kind)
	assert.Equal(t, "https://example.com/posts.json", cfg.Source.URL)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "ja", cfg.Site.Locale)
	assert.True(t, cfg.Render.Markdown)
	assert.Equal(t, "now", cfg.Sort.MissingDates)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("BLOGVIEW_SERVER_ADDR", ":7000")
	t.Setenv("BLOGVIEW_SOURCE_KIND", "badger")

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "badger", cfg.Source.Kind)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(viper.New())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Source.Kind = "ftp" }, errMsg: "Kind"},
		{name: "bad url", mutate: func(c *Config) { c.Source.URL = "not a url" }, errMsg: "URL"},
		{name: "http without url", mutate: func(c *Config) { c.Source.Kind = "http"; c.Source.URL = "" }, errMsg: "source.url is required"},
		{name: "file without path", mutate: func(c *Config) { c.Source.Path = "" }, errMsg: "source.path is required"},
		{name: "badger without dir", mutate: func(c *Config) { c.Source.Kind = "badger"; c.Store.Dir = "" }, errMsg: "store.dir is required"},
		{name: "negative timeout", mutate: func(c *Config) { c.Source.Timeout = -time.Second }, errMsg: "Timeout"},
		{name: "relative blog path", mutate: func(c *Config) { c.Site.BlogPath = "blog.html" }, errMsg: "BlogPath"},
		{name: "root blog path", mutate: func(c *Config) { c.Site.BlogPath = "/" }, errMsg: "BlogPath"},
		{name: "bad sort policy", mutate: func(c *Config) { c.Sort.MissingDates = "first" }, errMsg: "MissingDates"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, errMsg: "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
