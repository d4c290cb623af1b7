// Package config resolves blogview settings from defaults, a config file and
// BLOGVIEW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config is the resolved configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Site   SiteConfig   `mapstructure:"site"`
	Render RenderConfig `mapstructure:"render"`
	Sort   SortConfig   `mapstructure:"sort"`
	Log    LogConfig    `mapstructure:"log"`
}

type SourceConfig struct {
	Kind    string        `mapstructure:"kind" validate:"oneof=http file badger"`
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr" validate:"required"`
	StaticDir string `mapstructure:"static_dir"`
}

type SiteConfig struct {
	BlogPath  string `mapstructure:"blog_path" validate:"required,startswith=/,ne=/"`
	BackLabel string `mapstructure:"back_label" validate:"required"`
	Locale    string `mapstructure:"locale" validate:"required"`
}

type RenderConfig struct {
	Markdown bool `mapstructure:"markdown"`
}

type SortConfig struct {
	MissingDates string `mapstructure:"missing_dates" validate:"oneof=last now"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Option is a configuration key with its default and meaning.
type Option struct {
	Key     string
	Default any
	Comment string
}

// Options returns every configuration key with its default.
func Options() []Option {
	return []Option{
		{Key: "source.kind", Default: "file", Comment: "Where posts are loaded from: http, file or badger"},
		{Key: "source.url", Default: "http://localhost:8080/content/blog/posts.json", Comment: "Document URL for the http source"},
		{Key: "source.path", Default: "content/blog/posts.json", Comment: "Document path for the file source"},
		{Key: "source.timeout", Default: "0s", Comment: "Fetch timeout; 0 waits indefinitely"},
		{Key: "store.dir", Default: "data/badger", Comment: "Badger content store directory"},
		{Key: "server.addr", Default: ":8080", Comment: "HTTP listen address"},
		{Key: "server.static_dir", Default: "", Comment: "Directory served under /static/; empty disables it"},
		{Key: "site.blog_path", Default: "/blog.html", Comment: "Page that post links point at"},
		{Key: "site.back_label", Default: "← Back to Resource Center", Comment: "Label of the back link on a post"},
		{Key: "site.locale", Default: "en", Comment: "Date locale, e.g. en or ja"},
		{Key: "render.markdown", Default: false, Comment: "Render post bodies as Markdown"},
		{Key: "sort.missing_dates", Default: "last", Comment: "Where undated posts sort: last or now"},
		{Key: "log.level", Default: "info", Comment: "debug, info, warn or error"},
		{Key: "log.format", Default: "json", Comment: "json or console"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence defaults < file < env and
// returns the validated result. A config file set with SetConfigFile must
// exist; otherwise ./blogview.{yaml,json,toml} is read when present.
func Load(v *viper.Viper) (*Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("blogview")
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("blogview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Site.Locale = strings.TrimSpace(cfg.Site.Locale)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the settings each source kind needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Source.Kind {
	case "http":
		if c.Source.URL == "" {
			return errors.New("invalid config: source.url is required for the http source")
		}
	case "file":
		if c.Source.Path == "" {
			return errors.New("invalid config: source.path is required for the file source")
		}
	case "badger":
		if c.Store.Dir == "" {
			return errors.New("invalid config: store.dir is required for the badger source")
		}
	}
	return nil
}
