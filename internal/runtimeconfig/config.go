package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDefaultLanguageRequired indicates the catalog has no default language.
	ErrDefaultLanguageRequired = errors.New("catalog config: default language is required")

	// ErrStorageProviderUnknown indicates an unsupported storage provider.
	ErrStorageProviderUnknown = errors.New("catalog config: storage provider is invalid")

	// ErrAdvancedCacheRequiresEnabledCache ensures the repository cache builds only when cache is enabled.
	ErrAdvancedCacheRequiresEnabledCache = errors.New("catalog config: advanced cache feature requires cache to be enabled")

	// ErrDispatchTimeoutInvalid indicates a negative vendor dispatch timeout.
	ErrDispatchTimeoutInvalid = errors.New("catalog config: translation dispatch timeout must be zero or positive")

	// ErrTranslationsRequireVendor ensures translation orders only run with a vendor binding.
	ErrTranslationsRequireVendor = errors.New("catalog config: translations feature requires a vendor binding")

	ErrLoggingProviderRequired = errors.New("catalog config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("catalog config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("catalog config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("catalog config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the catalog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled         bool
	DefaultLanguage string
	Storage         StorageConfig
	Cache           CacheConfig
	Features        Features
	Translation     TranslationConfig
	Capabilities    CapabilitiesConfig
	Logging         LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Translations  bool
	Connections   bool
	AdvancedCache bool
	Logger        bool
}

// TranslationConfig captures vendor dispatch behaviour.
type TranslationConfig struct {
	Vendor          string
	DispatchTimeout time.Duration
}

// CapabilitiesConfig carries the optional entity-type language capability
// document. An empty document falls back to the default capability table.
type CapabilitiesConfig struct {
	Document string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a memory-backed catalog.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLanguage: "fi",
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Connections: true,
		},
		Translation: TranslationConfig{
			DispatchTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		return ErrDefaultLanguageRequired
	}
	if provider := normalizeProvider(cfg.Storage.Provider); !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Translation.DispatchTimeout < 0 {
		return ErrDispatchTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "bun":
		return true
	default:
		return false
	}
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
