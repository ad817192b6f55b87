package catalog

import (
	"github.com/govkit/servicecatalog/internal/capabilities"
	"github.com/govkit/servicecatalog/internal/connections"
	"github.com/govkit/servicecatalog/internal/di"
	"github.com/govkit/servicecatalog/internal/translations"
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// VersionService exports the language version lifecycle contract for consumers of the catalog package.
type VersionService = versions.Service

// ConnectionService exports the service channel connection contract.
type ConnectionService = connections.Service

// TranslationService exports the translation order contract.
type TranslationService = translations.Service

// CapabilityTable exports the per entity type language capability lookup.
type CapabilityTable = capabilities.Table

// CommandSet exports the CQRS command handlers wired by the container.
type CommandSet = di.CommandSet

// TranslationVendor exports the vendor dispatch contract so hosts can bind real integrations.
type TranslationVendor = interfaces.TranslationVendor

// Module represents the top level service catalog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a catalog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Versions returns the configured language version service.
func (m *Module) Versions() VersionService {
	return m.container.VersionService()
}

// Connections returns the configured connection service, nil when the feature is disabled.
func (m *Module) Connections() ConnectionService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ConnectionService()
}

// Translations returns the configured translation order service, nil when the feature is disabled.
func (m *Module) Translations() TranslationService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.TranslationService()
}

// Capabilities returns the active language capability table.
func (m *Module) Capabilities() *CapabilityTable {
	return m.container.Capabilities()
}

// Commands returns the command handler set for hosts that dispatch through a bus.
func (m *Module) Commands() *CommandSet {
	return m.container.Commands()
}

// ConnectionsEnabled reports whether connection consistency tracking is active.
func (m *Module) ConnectionsEnabled() bool {
	return m != nil && m.container != nil && m.container.ConnectionService() != nil
}

// TranslationsEnabled reports whether translation ordering is active.
func (m *Module) TranslationsEnabled() bool {
	return m != nil && m.container != nil && m.container.TranslationService() != nil
}
