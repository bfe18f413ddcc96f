// Package config loads and validates application configuration from a
// YAML file, PAGESIFT_* environment variables, and built-in defaults.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/net/publicsuffix"
)

// Config holds all application configuration.
type Config struct {
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// BaseURL is the site root with a trailing slash, derived from the
	// seed URL by Finalize. Root-relative image paths resolve against it.
	BaseURL string `mapstructure:"-"`
}

// CrawlConfig holds traversal configuration.
type CrawlConfig struct {
	SeedURL     string `mapstructure:"seed_url"`
	Domain      string `mapstructure:"domain"`
	Workers     int    `mapstructure:"workers"`
	ContentMode string `mapstructure:"content_mode"`
}

// FetchConfig holds HTTP fetcher configuration.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	UserAgent string        `mapstructure:"user_agent"`
}

// AnalyzerConfig holds lexical analyzer configuration.
type AnalyzerConfig struct {
	Lemmatizer string `mapstructure:"lemmatizer"`
}

// ReportConfig holds report writer configuration.
type ReportConfig struct {
	OutputPath  string `mapstructure:"output_path"`
	Frequencies bool   `mapstructure:"frequencies"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configPath (or the default search paths
// when empty), layered over defaults and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("pagesift")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pagesift")
	}

	setDefaults(v)

	v.SetEnvPrefix("PAGESIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// no config file on the search path is fine, defaults and env apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawl.workers", 1)
	v.SetDefault("crawl.content_mode", "visible")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.retries", 2)
	v.SetDefault("fetch.user_agent", "pagesift/1.0")
	v.SetDefault("analyzer.lemmatizer", "dictionary")
	v.SetDefault("report.output_path", "report.txt")
	v.SetDefault("report.frequencies", false)
	v.SetDefault("logging.level", "info")
}

// Finalize validates the configuration and derives dependent fields. It
// must run after CLI flags have been applied.
func (c *Config) Finalize() error {
	if c.Crawl.SeedURL == "" {
		return fmt.Errorf("crawl.seed_url is required")
	}
	u, err := url.Parse(c.Crawl.SeedURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid seed URL %q", c.Crawl.SeedURL)
	}
	c.BaseURL = u.Scheme + "://" + u.Host + "/"

	if c.Crawl.Domain == "" {
		host := u.Hostname()
		// the wildcard suffix rule mangles IP hosts, so check for them first
		if net.ParseIP(host) != nil {
			c.Crawl.Domain = host
		} else if domain, psErr := publicsuffix.EffectiveTLDPlusOne(host); psErr == nil {
			c.Crawl.Domain = domain
		} else {
			// single-label hosts such as localhost have no eTLD+1
			c.Crawl.Domain = host
		}
	}

	return c.validate()
}

func (c *Config) validate() error {
	if c.Crawl.Workers < 1 {
		return fmt.Errorf("crawl.workers must be at least 1")
	}
	if c.Crawl.ContentMode != "visible" && c.Crawl.ContentMode != "article" {
		return fmt.Errorf("crawl.content_mode must be %q or %q", "visible", "article")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must not be negative")
	}
	if c.Analyzer.Lemmatizer != "dictionary" && c.Analyzer.Lemmatizer != "stemmer" {
		return fmt.Errorf("analyzer.lemmatizer must be %q or %q", "dictionary", "stemmer")
	}
	if c.Report.OutputPath == "" {
		return fmt.Errorf("report.output_path is required")
	}
	return nil
}
