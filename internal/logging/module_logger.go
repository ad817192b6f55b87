package logging

import (
	"context"
	"strings"

	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const (
	rootModule         = "catalog"
	versionsModule     = "catalog.versions"
	connectionsModule  = "catalog.connections"
	translationsModule = "catalog.translations"
	commandsModule     = "catalog.commands"
)

const (
	fieldEntityID     = "entity_id"
	fieldLanguageCode = "language_code"
	fieldOrderID      = "order_id"
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

// VersionsLogger returns the logger namespace reserved for the version store.
func VersionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, versionsModule)
}

// ConnectionsLogger returns the logger namespace reserved for the connection engine.
func ConnectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, connectionsModule)
}

// TranslationsLogger returns the logger namespace reserved for the translation coordinator.
func TranslationsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationsModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithVersionContext enriches the provided logger with entity and language
// identifiers. Empty values are ignored.
func WithVersionContext(logger interfaces.Logger, entityID, languageCode string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entityID); trimmed != "" {
		fields[fieldEntityID] = trimmed
	}
	if trimmed := strings.TrimSpace(languageCode); trimmed != "" {
		fields[fieldLanguageCode] = trimmed
	}
	return WithFields(logger, fields)
}

// WithOrderContext enriches the provided logger with a translation order identifier.
func WithOrderContext(logger interfaces.Logger, orderID string) interfaces.Logger {
	if trimmed := strings.TrimSpace(orderID); trimmed != "" {
		return WithFields(logger, map[string]any{fieldOrderID: trimmed})
	}
	return logger
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
