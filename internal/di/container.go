package di

import (
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/govkit/servicecatalog/internal/capabilities"
	connectionscmd "github.com/govkit/servicecatalog/internal/commands/connections"
	lifecyclecmd "github.com/govkit/servicecatalog/internal/commands/lifecycle"
	translationscmd "github.com/govkit/servicecatalog/internal/commands/translations"
	"github.com/govkit/servicecatalog/internal/connections"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/internal/logging/console"
	"github.com/govkit/servicecatalog/internal/logging/gologger"
	"github.com/govkit/servicecatalog/internal/runtimeconfig"
	"github.com/govkit/servicecatalog/internal/translations"
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// Container wires module dependencies: repositories, services, loggers and
// command handlers. The version store and the connection engine reference each
// other through late-bound adapters so either can be replaced independently.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	entityRepo     versions.EntityRepository
	connectionRepo connections.ConnectionRepository
	orderRepo      translations.OrderRepository

	capabilityTable *capabilities.Table
	vendor          interfaces.TranslationVendor

	versionSvc     versions.Service
	connectionSvc  connections.Service
	translationSvc translations.Service

	commandSet *CommandSet
}

// CommandSet bundles the command handlers wired against the container's services.
type CommandSet struct {
	PublishVersion     *lifecyclecmd.PublishVersionHandler
	ArchiveVersion     *lifecyclecmd.ArchiveVersionHandler
	RestoreVersion     *lifecyclecmd.RestoreVersionHandler
	RemoveEntity       *lifecyclecmd.RemoveEntityHandler
	CreateConnection   *connectionscmd.CreateConnectionHandler
	DissolveConnection *connectionscmd.DissolveConnectionHandler
	SubmitOrder        *translationscmd.SubmitOrderHandler
	VendorCallback     *translationscmd.VendorCallbackHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the relational database used when the storage provider is "bun".
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTranslationVendor binds the external translation vendor client.
func WithTranslationVendor(vendor interfaces.TranslationVendor) Option {
	return func(c *Container) {
		c.vendor = vendor
	}
}

// WithCapabilityTable overrides the entity-type language capability table.
func WithCapabilityTable(table *capabilities.Table) Option {
	return func(c *Container) {
		c.capabilityTable = table
	}
}

// WithVersionService overrides the default version store binding.
func WithVersionService(svc versions.Service) Option {
	return func(c *Container) {
		c.versionSvc = svc
	}
}

// WithConnectionService overrides the default connection engine binding.
func WithConnectionService(svc connections.Service) Option {
	return func(c *Container) {
		c.connectionSvc = svc
	}
}

// WithTranslationService overrides the default translation coordinator binding.
func WithTranslationService(svc translations.Service) Option {
	return func(c *Container) {
		c.translationSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:         cfg,
		cacheTTL:       cacheTTL,
		entityRepo:     versions.NewMemoryEntityRepository(),
		connectionRepo: connections.NewMemoryConnectionRepository(),
		orderRepo:      translations.NewMemoryOrderRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	if err := c.configureCapabilities(); err != nil {
		return nil, err
	}
	if err := c.configureVendor(); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", "console":
		options := console.Options{}
		if level, ok := consoleLevel(c.Config.Logging.Level); ok {
			options.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(options)
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		if c.bunDB == nil {
			return fmt.Errorf("catalog di: storage provider %q requires a bun database binding", c.Config.Storage.Provider)
		}
		c.entityRepo = versions.NewBunEntityRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.connectionRepo = connections.NewBunConnectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.orderRepo = translations.NewBunOrderRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	}
	return nil
}

func (c *Container) configureCapabilities() error {
	if c.capabilityTable != nil {
		return nil
	}
	if document := strings.TrimSpace(c.Config.Capabilities.Document); document != "" {
		table, err := capabilities.Parse([]byte(document))
		if err != nil {
			return err
		}
		c.capabilityTable = table
		return nil
	}
	c.capabilityTable = capabilities.Default()
	return nil
}

func (c *Container) configureVendor() error {
	if c.vendor != nil || !c.Config.Features.Translations {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Translation.Vendor)) {
	case "loopback":
		c.vendor = newLoopbackVendor()
		return nil
	case "":
		return runtimeconfig.ErrTranslationsRequireVendor
	default:
		return fmt.Errorf("%w: unknown vendor %q", runtimeconfig.ErrTranslationsRequireVendor, c.Config.Translation.Vendor)
	}
}

func (c *Container) configureServices() {
	if c.versionSvc == nil {
		versionOpts := []versions.ServiceOption{
			versions.WithCapabilities(c.capabilityTable),
			versions.WithLogger(logging.VersionsLogger(c.loggerProvider)),
		}
		if c.Config.Features.Connections {
			versionOpts = append(versionOpts, versions.WithConsistencyNotifier(&consistencyNotifierAdapter{container: c}))
		}
		c.versionSvc = versions.NewService(c.entityRepo, versionOpts...)
	}

	if c.connectionSvc == nil && c.Config.Features.Connections {
		c.connectionSvc = connections.NewService(
			c.connectionRepo,
			&endpointResolverAdapter{container: c},
			connections.WithLogger(logging.ConnectionsLogger(c.loggerProvider)),
		)
	}

	if c.translationSvc == nil && c.Config.Features.Translations {
		translationOpts := []translations.ServiceOption{
			translations.WithCapabilities(c.capabilityTable),
			translations.WithLogger(logging.TranslationsLogger(c.loggerProvider)),
		}
		if c.Config.Translation.DispatchTimeout > 0 {
			translationOpts = append(translationOpts, translations.WithDispatchTimeout(c.Config.Translation.DispatchTimeout))
		}
		c.translationSvc = translations.NewService(c.orderRepo, c.versionSvc, c.vendor, translationOpts...)
	}
}

// VersionService returns the configured version store.
func (c *Container) VersionService() versions.Service {
	return c.versionSvc
}

// ConnectionService returns the configured connection engine. It is nil when
// the connections feature is disabled and no override was supplied.
func (c *Container) ConnectionService() connections.Service {
	return c.connectionSvc
}

// TranslationService returns the configured translation coordinator. It is nil
// when the translations feature is disabled and no override was supplied.
func (c *Container) TranslationService() translations.Service {
	return c.translationSvc
}

// Capabilities returns the entity-type language capability table.
func (c *Container) Capabilities() *capabilities.Table {
	return c.capabilityTable
}

// LoggerProvider exposes the configured logger provider, which is nil when the
// logger feature is disabled and no provider was injected.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Commands returns handlers for every catalog command, built lazily against
// the configured services.
func (c *Container) Commands() *CommandSet {
	if c.commandSet != nil {
		return c.commandSet
	}

	logger := logging.CommandsLogger(c.loggerProvider)
	set := &CommandSet{
		PublishVersion: lifecyclecmd.NewPublishVersionHandler(c.versionSvc, logger),
		ArchiveVersion: lifecyclecmd.NewArchiveVersionHandler(c.versionSvc, logger),
		RestoreVersion: lifecyclecmd.NewRestoreVersionHandler(c.versionSvc, logger),
		RemoveEntity:   lifecyclecmd.NewRemoveEntityHandler(c.versionSvc, logger),
	}
	if c.connectionSvc != nil {
		set.CreateConnection = connectionscmd.NewCreateConnectionHandler(c.connectionSvc, logger)
		set.DissolveConnection = connectionscmd.NewDissolveConnectionHandler(c.connectionSvc, logger)
	}
	if c.translationSvc != nil {
		set.SubmitOrder = translationscmd.NewSubmitOrderHandler(c.translationSvc, logger)
		set.VendorCallback = translationscmd.NewVendorCallbackHandler(c.translationSvc, logger)
	}

	c.commandSet = set
	return set
}

func consoleLevel(level string) (console.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace, true
	case "debug":
		return console.LevelDebug, true
	case "info":
		return console.LevelInfo, true
	case "warn", "warning":
		return console.LevelWarn, true
	case "error":
		return console.LevelError, true
	case "fatal":
		return console.LevelFatal, true
	default:
		return console.LevelInfo, false
	}
}
