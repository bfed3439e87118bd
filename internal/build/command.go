package build

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/dependencies"
	"github.com/temirov/trackertools/internal/shared"
	"github.com/temirov/trackertools/internal/utils"
	"github.com/temirov/trackertools/internal/utils/flags"
	pathutils "github.com/temirov/trackertools/internal/utils/path"
)

const (
	buildCommandUseConstant                 = "build"
	buildCommandShortDescriptionConstant    = "Install conan dependencies when needed and build the project"
	buildCommandLongDescriptionConstant     = "build runs conan install when the build folder is missing or was configured with a different profile, then always runs conan build."
	profileFlagNameConstant                 = "profile"
	profileFlagShorthandConstant            = "p"
	profileFlagDescriptionConstant          = "Conan profile used to configure the build folder"
	buildFolderFlagNameConstant             = "build-folder"
	buildFolderFlagShorthandConstant        = "b"
	buildFolderFlagDescriptionConstant      = "Build folder, relative to the project root, where conan install and build run"
	configureFlagNameConstant               = "configure"
	configureFlagShorthandConstant          = "c"
	configureFlagDescriptionConstant        = "Configure the build folder even when it matches the profile"
	unexpectedArgumentsErrorMessageConstant = "build does not accept positional arguments"
	projectResolutionErrorTemplateConstant  = "unable to determine project root: %w"
)

// ErrUnexpectedArguments is returned when positional arguments are supplied.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsErrorMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current build configuration.
type ConfigurationProvider func() Configuration

// ProjectRootProvider returns the configured project root, which may be empty.
type ProjectRootProvider func() string

// CommandBuilder assembles the build command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ProjectRootProvider   ProjectRootProvider
	ProjectResolver       shared.ProjectResolver
	Executor              shared.ToolExecutor
	FileSystem            shared.FileSystem
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the build command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   buildCommandUseConstant,
		Short: buildCommandShortDescriptionConstant,
		Long:  buildCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().StringP(profileFlagNameConstant, profileFlagShorthandConstant, "", profileFlagDescriptionConstant)
	command.Flags().StringP(buildFolderFlagNameConstant, buildFolderFlagShorthandConstant, "", buildFolderFlagDescriptionConstant)
	command.Flags().BoolP(configureFlagNameConstant, configureFlagShorthandConstant, false, configureFlagDescriptionConstant)
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.DefaultExecutionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	configuration := builder.resolveConfiguration()

	projectOverride, _ := utils.NewCommandContextAccessor().ProjectRootOverride(command.Context())
	projectResolver := dependencies.ResolveProjectResolver(builder.ProjectResolver)
	projectConfiguration, projectError := projectResolver.Resolve(projectOverride, builder.resolveConfiguredProjectRoot())
	if projectError != nil {
		return fmt.Errorf(projectResolutionErrorTemplateConstant, projectError)
	}

	options, optionsError := builder.parseOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}
	options.Project = projectConfiguration

	logger := builder.resolveLogger()
	executor, executorError := dependencies.ResolveToolExecutor(builder.Executor, logger, builder.resolveConsoleLogger())
	if executorError != nil {
		return executorError
	}

	streamWriters := utils.NewStreamWriters(command.OutOrStdout(), command.ErrOrStderr())
	service, serviceError := NewService(Dependencies{
		Executor:     executor,
		FileSystem:   dependencies.ResolveFileSystem(builder.FileSystem),
		Reporter:     shared.NewWriterReporter(command.OutOrStdout()),
		Logger:       logger,
		HomeExpander: builder.HomeExpander,
		OutputWriter: streamWriters.Output,
		ErrorWriter:  streamWriters.Error,
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration Configuration) (Options, error) {
	profileFlagValue, profileFlagError := command.Flags().GetString(profileFlagNameConstant)
	if profileFlagError != nil {
		return Options{}, profileFlagError
	}

	buildFolderFlagValue, buildFolderFlagError := command.Flags().GetString(buildFolderFlagNameConstant)
	if buildFolderFlagError != nil {
		return Options{}, buildFolderFlagError
	}

	forceConfigure, configureFlagError := command.Flags().GetBool(configureFlagNameConstant)
	if configureFlagError != nil {
		return Options{}, configureFlagError
	}

	dryRun, dryRunError := flags.DryRunRequested(command, configuration.DryRun)
	if dryRunError != nil {
		return Options{}, dryRunError
	}

	return Options{
		Executable:        configuration.Executable,
		Profile:           valueOrDefault(profileFlagValue, configuration.Profile),
		BuildFolder:       valueOrDefault(buildFolderFlagValue, configuration.BuildFolder),
		ProfilesDirectory: configuration.ProfilesDirectory,
		BuildInfoFile:     configuration.BuildInfoFile,
		BuildPolicies:     configuration.BuildPolicies,
		InstallHint:       configuration.InstallHint,
		ForceConfigure:    forceConfigure,
		DryRun:            dryRun,
	}, nil
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
