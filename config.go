package places

import "github.com/goliatone/go-places/internal/runtimeconfig"

// Config exports the runtime configuration aggregate.
type Config = runtimeconfig.Config

// StorageConfig exports the storage settings.
type StorageConfig = runtimeconfig.StorageConfig

// CacheConfig exports the read cache settings.
type CacheConfig = runtimeconfig.CacheConfig

// TranslationConfig exports the translation endpoint settings.
type TranslationConfig = runtimeconfig.TranslationConfig

// NotifyConfig exports the push notification settings.
type NotifyConfig = runtimeconfig.NotifyConfig

// LoggingConfig exports the logging settings.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
