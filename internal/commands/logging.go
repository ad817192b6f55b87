package commands

import (
	"strings"

	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const commandModuleRoot = "catalog.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching it with
// consistent structured fields so command executions stay correlated in logs.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
