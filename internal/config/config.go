// Package config loads service configuration from file, environment
// and defaults via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/crimewatch/internal/logger"
)

// Default configuration values.
const (
	defaultStorePath   = "data/crime_articles.db"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultTimeout     = 30 * time.Second
	defaultDelay       = 1 * time.Second
	defaultRandomDelay = 500 * time.Millisecond
	defaultParallelism = 2
	defaultFetchRPS    = 2
	defaultMaxArticles = 50
	defaultServerPort  = 8080
	defaultCronSpec    = "0 9 * * *"
	defaultLogLevel    = "info"
)

// Site describes one news site to harvest: where to find article
// links and, on each article page, the headline and body.
type Site struct {
	Name             string   `mapstructure:"name"`
	URL              string   `mapstructure:"url"`
	AllowedDomains   []string `mapstructure:"allowed_domains"`
	ArticleSelector  string   `mapstructure:"article_selector"`
	HeadlineSelector string   `mapstructure:"headline_selector"`
	ContentSelector  string   `mapstructure:"content_selector"`
}

// Fetch holds fetcher politeness and volume settings.
type Fetch struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	Delay             time.Duration `mapstructure:"delay"`
	RandomDelay       time.Duration `mapstructure:"random_delay"`
	Parallelism       int           `mapstructure:"parallelism"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	// MaxArticles caps article pages fetched per site per run.
	MaxArticles int `mapstructure:"max_articles"`
}

// Store holds record store settings.
type Store struct {
	Path string `mapstructure:"path"`
}

// Server holds HTTP API settings.
type Server struct {
	Port int `mapstructure:"port"`
}

// Schedule holds in-process scheduler settings.
type Schedule struct {
	// Cron is a standard 5-field cron spec.
	Cron string `mapstructure:"cron"`
}

// Logging mirrors logger.Config for viper unmarshalling.
type Logging struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Config is the full service configuration.
type Config struct {
	Fetch    Fetch    `mapstructure:"fetch"`
	Store    Store    `mapstructure:"store"`
	Server   Server   `mapstructure:"server"`
	Schedule Schedule `mapstructure:"schedule"`
	Logging  Logging  `mapstructure:"logging"`
	Sites    []Site   `mapstructure:"sites"`
}

// LoggerConfig converts the logging section for the logger package.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Logging.Level,
		Development: c.Logging.Development,
	}
}

// SiteByName returns the named site config, case-sensitively.
func (c *Config) SiteByName(name string) (Site, error) {
	for _, s := range c.Sites {
		if s.Name == name {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("site %q not found in configuration", name)
}

// SetDefaults registers every default with viper. Call once before
// viper.ReadInConfig.
func SetDefaults() {
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.delay", defaultDelay)
	viper.SetDefault("fetch.random_delay", defaultRandomDelay)
	viper.SetDefault("fetch.parallelism", defaultParallelism)
	viper.SetDefault("fetch.requests_per_second", defaultFetchRPS)
	viper.SetDefault("fetch.max_articles", defaultMaxArticles)
	viper.SetDefault("store.path", defaultStorePath)
	viper.SetDefault("server.port", defaultServerPort)
	viper.SetDefault("schedule.cron", defaultCronSpec)
	viper.SetDefault("logging.level", defaultLogLevel)
}

// Load unmarshals the current viper state into a Config and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("store.path must not be empty")
	}
	for i, s := range c.Sites {
		if s.Name == "" {
			return fmt.Errorf("sites[%d]: name must not be empty", i)
		}
		if s.URL == "" {
			return fmt.Errorf("sites[%d] (%s): url must not be empty", i, s.Name)
		}
	}
	return nil
}
