package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/discovery"
	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/filesystem"
	"github.com/temirov/trackertools/internal/project"
	"github.com/temirov/trackertools/internal/shared"
	"github.com/temirov/trackertools/internal/ui"
)

// ResolveFileDiscoverer returns the provided discoverer or a filesystem walker.
func ResolveFileDiscoverer(existing shared.FileDiscoverer, logger *zap.Logger) shared.FileDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFileDiscoverer(logger)
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveProjectResolver returns the provided resolver or one backed by the process environment.
func ResolveProjectResolver(existing shared.ProjectResolver) shared.ProjectResolver {
	if existing != nil {
		return existing
	}
	return project.NewResolver(nil, nil, nil)
}

// ResolveToolExecutor returns the provided executor or constructs a shell-backed default.
// A non-nil console logger receives human-readable command lifecycle messages.
func ResolveToolExecutor(existing shared.ToolExecutor, logger *zap.Logger, consoleLogger *zap.Logger) (shared.ToolExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	var eventObserver execshell.CommandEventObserver
	if consoleLogger != nil {
		eventObserver = ui.NewConsoleCommandEventLogger(consoleLogger)
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), eventObserver)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
