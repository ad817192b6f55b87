package catalog

import "github.com/govkit/servicecatalog/internal/runtimeconfig"

var (
	ErrDefaultLanguageRequired           = runtimeconfig.ErrDefaultLanguageRequired
	ErrStorageProviderUnknown            = runtimeconfig.ErrStorageProviderUnknown
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrDispatchTimeoutInvalid            = runtimeconfig.ErrDispatchTimeoutInvalid
	ErrTranslationsRequireVendor         = runtimeconfig.ErrTranslationsRequireVendor
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config             = runtimeconfig.Config
	StorageConfig      = runtimeconfig.StorageConfig
	CacheConfig        = runtimeconfig.CacheConfig
	Features           = runtimeconfig.Features
	TranslationConfig  = runtimeconfig.TranslationConfig
	CapabilitiesConfig = runtimeconfig.CapabilitiesConfig
	LoggingConfig      = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
