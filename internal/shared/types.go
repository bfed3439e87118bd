package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/trackertools/internal/discovery"
	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/project"
)

// FileSystem exposes filesystem operations required by the formatting and build services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	MkdirAll(path string, permissions fs.FileMode) error
}

// ToolExecutor runs external developer tools through the shell executor.
type ToolExecutor interface {
	ExecuteTool(executionContext context.Context, name execshell.CommandName, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileDiscoverer locates files beneath a project root.
type FileDiscoverer interface {
	Discover(options discovery.Options) ([]string, error)
}

// ProjectResolver determines the project root from the flag override and the configured value.
type ProjectResolver interface {
	Resolve(override string, configured string) (project.Configuration, error)
}
