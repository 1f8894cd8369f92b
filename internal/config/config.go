// Package config loads the spacesync configuration from viper, which the
// command layer wires to config files, environment variables, and flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/spacesync/internal/domain"
)

// Defaults applied when the config file and environment provide no value.
const (
	DefaultHost                = "cdn.contentful.com"
	DefaultEnvironment         = "master"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultContentTypePageSize = 100
	DefaultStorePath           = "spacesync.db"
)

// Config is the full configuration of one sync run.
type Config struct {
	Debug bool
	Space SpaceConfig
	Store StoreConfig
}

// SpaceConfig identifies the remote space and how to reach it.
type SpaceConfig struct {
	ID          string
	AccessToken string
	Host        string
	Environment string
	// LocaleFilter limits the locales returned by the bootstrap. Empty keeps
	// all locales. The default locale is unaffected by filtering.
	LocaleFilter        []string
	RequestTimeout      time.Duration
	ContentTypePageSize int
}

// StoreConfig configures the local snapshot store.
type StoreConfig struct {
	// Path of the sqlite database file. Empty disables persistence.
	Path string
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Debug: viper.GetBool("app.debug"),
		Space: SpaceConfig{
			ID:                  viper.GetString("space.id"),
			AccessToken:         viper.GetString("space.access_token"),
			Host:                viper.GetString("space.host"),
			Environment:         viper.GetString("space.environment"),
			LocaleFilter:        viper.GetStringSlice("space.locale_filter"),
			RequestTimeout:      viper.GetDuration("space.request_timeout"),
			ContentTypePageSize: viper.GetInt("space.content_type_page_size"),
		},
		Store: StoreConfig{
			Path: viper.GetString("store.path"),
		},
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Space.Host == "" {
		cfg.Space.Host = DefaultHost
	}
	if cfg.Space.Environment == "" {
		cfg.Space.Environment = DefaultEnvironment
	}
	if cfg.Space.RequestTimeout <= 0 {
		cfg.Space.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Space.ContentTypePageSize <= 0 {
		cfg.Space.ContentTypePageSize = DefaultContentTypePageSize
	}
}

// Validate checks that the required settings are present.
func (c *Config) Validate() error {
	if c.Space.ID == "" {
		return errors.New("space.id is required")
	}
	if c.Space.AccessToken == "" {
		return errors.New("space.access_token is required")
	}
	return nil
}

// LocaleFilterFunc builds the locale predicate from the configured filter,
// or nil when no filter is configured.
func (c *SpaceConfig) LocaleFilterFunc() func(domain.Locale) bool {
	if len(c.LocaleFilter) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(c.LocaleFilter))
	for _, code := range c.LocaleFilter {
		allowed[code] = true
	}
	return func(l domain.Locale) bool {
		return allowed[l.Code]
	}
}

// Raw returns the effective option set as printable key/value pairs, used
// only for diagnostics. The access token is masked.
func (c *Config) Raw() map[string]string {
	return map[string]string{
		"space_id":               c.Space.ID,
		"access_token":           maskToken(c.Space.AccessToken),
		"host":                   c.Space.Host,
		"environment":            c.Space.Environment,
		"locale_filter":          strings.Join(c.Space.LocaleFilter, ","),
		"request_timeout":        c.Space.RequestTimeout.String(),
		"content_type_page_size": strconv.Itoa(c.Space.ContentTypePageSize),
		"store_path":             c.Store.Path,
	}
}

// maskToken hides all but the last four characters of a secret.
func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", visible) + token[len(token)-visible:]
}
