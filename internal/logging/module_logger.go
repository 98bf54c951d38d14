package logging

import (
	"context"

	"github.com/goliatone/go-places/pkg/interfaces"
)

const (
	rootModule       = "places"
	submissionModule = "places.submissions"
	moderationModule = "places.moderation"
	cacheModule      = "places.cache"
	notifyModule     = "places.notify"
	httpModule       = "places.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SubmissionLogger returns the logger namespace reserved for the submission lifecycle.
func SubmissionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, submissionModule)
}

// ModerationLogger returns the logger namespace reserved for the moderation workflow.
func ModerationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, moderationModule)
}

// CacheLogger returns the logger namespace reserved for the read cache.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cacheModule)
}

// NotifyLogger returns the logger namespace reserved for notification dispatch.
func NotifyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notifyModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
