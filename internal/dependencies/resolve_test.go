package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/dependencies"
	"github.com/temirov/trackertools/internal/discovery"
	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/filesystem"
	"github.com/temirov/trackertools/internal/project"
)

type stubToolExecutor struct{}

func (stubToolExecutor) ExecuteTool(context.Context, execshell.CommandName, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type stubFileDiscoverer struct{}

func (stubFileDiscoverer) Discover(discovery.Options) ([]string, error) {
	return nil, nil
}

func TestResolveToolExecutor(testInstance *testing.T) {
	existing := stubToolExecutor{}
	resolved, resolveError := dependencies.ResolveToolExecutor(existing, nil, nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)

	constructed, constructError := dependencies.ResolveToolExecutor(nil, zap.NewNop(), zap.NewNop())
	require.NoError(testInstance, constructError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, constructed)

	_, missingLoggerError := dependencies.ResolveToolExecutor(nil, nil, nil)
	require.ErrorIs(testInstance, missingLoggerError, execshell.ErrLoggerNotConfigured)
}

func TestResolveFileDiscovererAndFileSystem(testInstance *testing.T) {
	existingDiscoverer := stubFileDiscoverer{}
	require.Equal(testInstance, existingDiscoverer, dependencies.ResolveFileDiscoverer(existingDiscoverer, nil))
	require.IsType(testInstance, &discovery.FileDiscoverer{}, dependencies.ResolveFileDiscoverer(nil, nil))
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
	require.IsType(testInstance, &project.Resolver{}, dependencies.ResolveProjectResolver(nil))
}
