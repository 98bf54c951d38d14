// Package runtimeconfig aggregates the runtime settings for the places
// service. Fields intentionally use simple types so host applications can
// extend them later.
package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrListenAddrRequired       = errors.New("places config: listen address is required")
	ErrStorageDriverUnknown     = errors.New("places config: storage driver must be sqlite or postgres")
	ErrStorageDSNRequired       = errors.New("places config: storage dsn is required")
	ErrAdminSecretRequired      = errors.New("places config: admin secret is required")
	ErrCacheTTLInvalid          = errors.New("places config: cache ttl must be positive")
	ErrTranslationTokenDangling = errors.New("places config: translation token set without an endpoint")
	ErrNotifyEntryTopicRequired = errors.New("places config: notify entry topic is required when notifications are enabled")
	ErrLoggingLevelInvalid      = errors.New("places config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("places config: logging format is invalid")
)

// Config aggregates every adapter binding for the service.
type Config struct {
	ListenAddr  string
	AdminSecret string
	Storage     StorageConfig
	Cache       CacheConfig
	Translation TranslationConfig
	Notify      NotifyConfig
	Logging     LoggingConfig
}

// StorageConfig selects the bun dialect and connection string.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig bounds the public read cache.
type CacheConfig struct {
	TTL time.Duration
}

// TranslationConfig points at the external translation endpoint. An empty
// endpoint disables translation; approval then proceeds untranslated.
type TranslationConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// NotifyConfig points at the push endpoint and its topics. Disabled when no
// entry topic is configured.
type NotifyConfig struct {
	Enabled      bool
	BaseURL      string
	EntryTopic   string
	ContactTopic string
	QueueSize    int
}

// LoggingConfig selects the go-logger adapter options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the settings used when nothing is overridden:
// sqlite storage, five-minute cache, notifications disabled.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:places.db?cache=shared&_pragma=foreign_keys(1)",
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Translation: TranslationConfig{
			Timeout: 30 * time.Second,
		},
		Notify: NotifyConfig{
			BaseURL:   "https://ntfy.sh",
			QueueSize: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks cross-field consistency and returns the first violation.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return ErrListenAddrRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "sqlite", "postgres":
	default:
		return ErrStorageDriverUnknown
	}
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if strings.TrimSpace(c.AdminSecret) == "" {
		return ErrAdminSecretRequired
	}
	if c.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(c.Translation.Endpoint) == "" && strings.TrimSpace(c.Translation.Token) != "" {
		return ErrTranslationTokenDangling
	}
	if c.Notify.Enabled && strings.TrimSpace(c.Notify.EntryTopic) == "" {
		return ErrNotifyEntryTopicRequired
	}
	if err := validateLoggingLevel(c.Logging.Level); err != nil {
		return err
	}
	return validateLoggingFormat(c.Logging.Format)
}

func validateLoggingLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return ErrLoggingLevelInvalid
	}
}

func validateLoggingFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return nil
	default:
		return ErrLoggingFormatInvalid
	}
}
