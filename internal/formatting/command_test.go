package formatting_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/filesystem"
	"github.com/temirov/trackertools/internal/formatting"
	"github.com/temirov/trackertools/internal/project"
	"github.com/temirov/trackertools/internal/utils"
)

func newProjectResolver(environment map[string]string) *project.Resolver {
	return project.NewResolver(func(key string) (string, bool) {
		value, present := environment[key]
		return value, present
	}, nil, nil)
}

func runCobraCommand(testInstance *testing.T, command *cobra.Command, executionContext context.Context, arguments []string) (string, error) {
	testInstance.Helper()
	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true
	executionError := command.ExecuteContext(executionContext)
	return output.String(), executionError
}

func TestFormatCommandWithoutSelectionPrintsHelp(testInstance *testing.T) {
	discoverer := &stubDiscoverer{}
	executor := &recordingToolExecutor{}
	builder := formatting.CommandBuilder{
		ProjectResolver: newProjectResolver(map[string]string{project.EnvironmentVariableName: testInstance.TempDir()}),
		Discoverer:      discoverer,
		Executor:        executor,
		FileSystem:      filesystem.OSFileSystem{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output, executionError := runCobraCommand(testInstance, command, context.Background(), nil)
	require.ErrorIs(testInstance, executionError, formatting.ErrNoToolSelected)
	require.Contains(testInstance, output, "--clang-tidy")
	require.Empty(testInstance, discoverer.requests)
	require.Empty(testInstance, executor.invocations)
}

func TestFormatCommandMissingProjectFailsBeforeWalk(testInstance *testing.T) {
	discoverer := &stubDiscoverer{}
	executor := &recordingToolExecutor{}
	builder := formatting.CommandBuilder{
		ProjectResolver: newProjectResolver(nil),
		Discoverer:      discoverer,
		Executor:        executor,
		FileSystem:      filesystem.OSFileSystem{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := runCobraCommand(testInstance, command, context.Background(), []string{"--all"})
	require.ErrorIs(testInstance, executionError, project.ErrProjectRootMissing)
	require.Contains(testInstance, executionError.Error(), "set_env.bash")
	require.Empty(testInstance, discoverer.requests)
	require.Empty(testInstance, executor.invocations)
}

func TestFormatCommandSelection(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedTools []execshell.CommandName
	}{
		{
			name:          "all_runs_every_tool_in_order",
			arguments:     []string{"--all"},
			expectedTools: []execshell.CommandName{"cmake-format", "clang-format", "clang-tidy"},
		},
		{
			name:          "individual_flags_keep_fixed_order",
			arguments:     []string{"--clang-tidy", "--cmake-format"},
			expectedTools: []execshell.CommandName{"cmake-format", "clang-tidy"},
		},
		{
			name:          "single_tool",
			arguments:     []string{"--clang-format"},
			expectedTools: []execshell.CommandName{"clang-format"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			projectRoot := testInstance.TempDir()
			discoverer := &stubDiscoverer{filesByPredicateSample: map[string][]string{
				"CMakeLists.txt": {filepath.Join(projectRoot, "CMakeLists.txt")},
				"tracker.cpp":    {filepath.Join(projectRoot, "src", "tracker.cpp")},
			}}
			executor := &recordingToolExecutor{}
			builder := formatting.CommandBuilder{
				ConfigurationProvider: formatting.DefaultConfiguration,
				ProjectResolver:       newProjectResolver(map[string]string{project.EnvironmentVariableName: projectRoot}),
				Discoverer:            discoverer,
				Executor:              executor,
				FileSystem:            filesystem.OSFileSystem{},
			}

			command, buildError := builder.Build()
			require.NoError(testInstance, buildError)

			output, executionError := runCobraCommand(testInstance, command, context.Background(), testCase.arguments)
			require.NoError(testInstance, executionError)
			require.Contains(testInstance, output, "Done!")

			var invokedTools []execshell.CommandName
			for _, invocation := range executor.invocations {
				invokedTools = append(invokedTools, invocation.name)
			}
			require.Equal(testInstance, testCase.expectedTools, invokedTools)
		})
	}
}

func TestFormatCommandProjectFlagOverridesEnvironment(testInstance *testing.T) {
	environmentRoot := testInstance.TempDir()
	flagRoot := testInstance.TempDir()
	discoverer := &stubDiscoverer{}
	builder := formatting.CommandBuilder{
		ProjectResolver:     newProjectResolver(map[string]string{project.EnvironmentVariableName: environmentRoot}),
		ProjectRootProvider: func() string { return "/configured/ignored" },
		Discoverer:          discoverer,
		Executor:            &recordingToolExecutor{},
		FileSystem:          filesystem.OSFileSystem{},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	executionContext := utils.NewCommandContextAccessor().WithProjectRootOverride(context.Background(), flagRoot)
	_, executionError := runCobraCommand(testInstance, command, executionContext, []string{"--cmake-format", "--dry-run"})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, discoverer.requests, 1)
	require.Equal(testInstance, flagRoot, discoverer.requests[0].Root)
}

func TestCMakeFormatCommandRewritesFiles(testInstance *testing.T) {
	projectRoot := testInstance.TempDir()
	cmakeListsPath := filepath.Join(projectRoot, "CMakeLists.txt")
	buildListsPath := filepath.Join(projectRoot, "build", "CMakeLists.txt")
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(buildListsPath), 0o755))
	require.NoError(testInstance, os.WriteFile(cmakeListsPath, []byte("project( tracker )\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(buildListsPath, []byte("generated( )\n"), 0o644))

	executor := &recordingToolExecutor{standardOutput: map[string]string{cmakeListsPath: "project(tracker)\n"}}
	builder := formatting.CMakeCommandBuilder{CommandBuilder: formatting.CommandBuilder{
		ConfigurationProvider: formatting.DefaultConfiguration,
		ProjectResolver:       newProjectResolver(map[string]string{project.EnvironmentVariableName: projectRoot}),
		Executor:              executor,
	}}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	output, executionError := runCobraCommand(testInstance, command, context.Background(), nil)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "Finding your cmake files to format....")
	require.Contains(testInstance, output, cmakeListsPath)
	require.NotContains(testInstance, output, buildListsPath)

	rewrittenContents, readError := os.ReadFile(cmakeListsPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "project(tracker)\n", string(rewrittenContents))

	untouchedContents, untouchedError := os.ReadFile(buildListsPath)
	require.NoError(testInstance, untouchedError)
	require.Equal(testInstance, "generated( )\n", string(untouchedContents))
}

func TestFormatCommandRejectsPositionalArguments(testInstance *testing.T) {
	builder := formatting.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	_, executionError := runCobraCommand(testInstance, command, context.Background(), []string{"src"})
	require.ErrorIs(testInstance, executionError, formatting.ErrUnexpectedArguments)
}
