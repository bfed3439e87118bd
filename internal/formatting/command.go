package formatting

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/dependencies"
	"github.com/temirov/trackertools/internal/shared"
	"github.com/temirov/trackertools/internal/utils"
	"github.com/temirov/trackertools/internal/utils/flags"
)

const (
	formatCommandUseConstant                = "format"
	formatCommandShortDescriptionConstant   = "Run cmake-format, clang-format, and clang-tidy over the project"
	formatCommandLongDescriptionConstant    = "format walks the project tree, skipping hidden and excluded directories, and runs the selected formatters in place on every matching file."
	cmakeCommandUseConstant                 = "cmake-format"
	cmakeCommandShortDescriptionConstant    = "Rewrite CMake files with cmake-format output"
	cmakeCommandLongDescriptionConstant     = "cmake-format runs cmake-format on every CMakeLists.txt and *.cmake file in the project and replaces each file with the formatted output."
	allFlagNameConstant                     = "all"
	allFlagDescriptionConstant              = "Format CMake files and run both clang-format and clang-tidy on C++ files"
	cmakeFormatFlagNameConstant             = "cmake-format"
	cmakeFormatFlagDescriptionConstant      = "Run cmake-format on CMake files"
	clangFormatFlagNameConstant             = "clang-format"
	clangFormatFlagDescriptionConstant      = "Run clang-format on C++ files"
	clangTidyFlagNameConstant               = "clang-tidy"
	clangTidyFlagDescriptionConstant        = "Run clang-tidy on C++ files"
	unexpectedArgumentsErrorMessageConstant = "formatting commands do not accept positional arguments"
	projectResolutionErrorTemplateConstant  = "unable to determine project root: %w"
)

// ErrUnexpectedArguments is returned when positional arguments are supplied.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsErrorMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current formatting configuration.
type ConfigurationProvider func() Configuration

// ProjectRootProvider returns the configured project root, which may be empty.
type ProjectRootProvider func() string

// CommandBuilder assembles the multi-tool format command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ProjectRootProvider   ProjectRootProvider
	ProjectResolver       shared.ProjectResolver
	Discoverer            shared.FileDiscoverer
	Executor              shared.ToolExecutor
	FileSystem            shared.FileSystem
}

// CMakeCommandBuilder assembles the single-tool cmake-format command.
type CMakeCommandBuilder struct {
	CommandBuilder
}

// Build constructs the format command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   formatCommandUseConstant,
		Short: formatCommandShortDescriptionConstant,
		Long:  formatCommandLongDescriptionConstant,
		RunE:  builder.runFormat,
	}

	command.Flags().Bool(allFlagNameConstant, false, allFlagDescriptionConstant)
	command.Flags().Bool(cmakeFormatFlagNameConstant, false, cmakeFormatFlagDescriptionConstant)
	command.Flags().Bool(clangFormatFlagNameConstant, false, clangFormatFlagDescriptionConstant)
	command.Flags().Bool(clangTidyFlagNameConstant, false, clangTidyFlagDescriptionConstant)
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.DefaultExecutionFlagDefinitions())

	return command, nil
}

// Build constructs the cmake-format command.
func (builder *CMakeCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cmakeCommandUseConstant,
		Short: cmakeCommandShortDescriptionConstant,
		Long:  cmakeCommandLongDescriptionConstant,
		RunE:  builder.runCMakeFormat,
	}

	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.DefaultExecutionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) runFormat(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	selectedTools, selectionError := selectTools(command, configuration.Tools)
	if selectionError != nil {
		return selectionError
	}
	if len(selectedTools) == 0 {
		if helpError := builder.displayCommandHelp(command); helpError != nil {
			return helpError
		}
		return ErrNoToolSelected
	}

	return builder.execute(command, configuration, selectedTools)
}

func (builder *CMakeCommandBuilder) runCMakeFormat(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()
	return builder.execute(command, configuration, []ToolDefinition{configuration.CMake})
}

func (builder *CommandBuilder) execute(command *cobra.Command, configuration Configuration, tools []ToolDefinition) error {
	dryRun, dryRunError := flags.DryRunRequested(command, configuration.DryRun)
	if dryRunError != nil {
		return dryRunError
	}

	projectOverride, _ := utils.NewCommandContextAccessor().ProjectRootOverride(command.Context())
	projectResolver := dependencies.ResolveProjectResolver(builder.ProjectResolver)
	projectConfiguration, projectError := projectResolver.Resolve(projectOverride, builder.resolveConfiguredProjectRoot())
	if projectError != nil {
		return fmt.Errorf(projectResolutionErrorTemplateConstant, projectError)
	}

	logger := builder.resolveLogger()
	executor, executorError := dependencies.ResolveToolExecutor(builder.Executor, logger, builder.resolveConsoleLogger())
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(Dependencies{
		Discoverer: dependencies.ResolveFileDiscoverer(builder.Discoverer, logger),
		Executor:   executor,
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		Reporter:   shared.NewWriterReporter(command.OutOrStdout()),
		Logger:     logger,
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), Options{
		Project:             projectConfiguration,
		ExcludedDirectories: configuration.ExcludedDirectories,
		Tools:               tools,
		DryRun:              dryRun,
	})
	return runError
}

// selectTools returns the chosen tools in the fixed order cmake-format, clang-format, clang-tidy.
func selectTools(command *cobra.Command, tools ToolsConfiguration) ([]ToolDefinition, error) {
	allSelected, allError := command.Flags().GetBool(allFlagNameConstant)
	if allError != nil {
		return nil, allError
	}

	candidates := []struct {
		flagName   string
		definition ToolDefinition
	}{
		{flagName: cmakeFormatFlagNameConstant, definition: tools.CMakeFormat},
		{flagName: clangFormatFlagNameConstant, definition: tools.ClangFormat},
		{flagName: clangTidyFlagNameConstant, definition: tools.ClangTidy},
	}

	var selected []ToolDefinition
	for _, candidate := range candidates {
		flagSelected, flagError := command.Flags().GetBool(candidate.flagName)
		if flagError != nil {
			return nil, flagError
		}
		if allSelected || flagSelected {
			selected = append(selected, candidate.definition)
		}
	}
	return selected, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConsoleLogger() *zap.Logger {
	if builder.ConsoleLoggerProvider == nil {
		return nil
	}
	return builder.ConsoleLoggerProvider()
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveConfiguredProjectRoot() string {
	if builder.ProjectRootProvider == nil {
		return ""
	}
	return builder.ProjectRootProvider()
}

func (builder *CommandBuilder) displayCommandHelp(command *cobra.Command) error {
	if command == nil {
		return nil
	}
	return command.Help()
}
