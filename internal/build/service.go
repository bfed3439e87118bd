package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/project"
	"github.com/temirov/trackertools/internal/shared"
	pathutils "github.com/temirov/trackertools/internal/utils/path"
)

const (
	conanInstallSubcommandConstant     = "install"
	conanBuildSubcommandConstant       = "build"
	conanInstallFolderFlagConstant     = "--install-folder"
	conanBuildFolderFlagConstant       = "--build-folder"
	conanProfileFlagConstant           = "--profile"
	conanBuildPolicyTemplateConstant   = "--build=%s"
	configureDecisionTemplateConstant  = "Configuring %s with profile %s\n"
	upToDateDecisionTemplateConstant   = "Build folder %s already matches profile %s\n"
	dryRunCommandTemplateConstant      = "Would run: %s\n"
	executorMissingMessageConstant     = "build service requires a tool executor"
	fileSystemMissingMessageConstant   = "build service requires a filesystem"
	configurationErrorTemplateConstant = "unable to decide whether to configure %s: %w"
	installErrorTemplateConstant       = "conan install failed: %w"
	buildErrorTemplateConstant         = "conan build failed: %w"
	toolMissingTemplateConstant        = "%w\n%s"
	logMessageDecisionConstant         = "build configuration decision"
	logMessageBuildCompletedConstant   = "build completed"
	logFieldProjectRootConstant        = "project_root"
	logFieldBuildPathConstant          = "build_path"
	logFieldProfilePathConstant        = "profile_path"
	logFieldBuildInfoPathConstant      = "build_info_path"
	logFieldConfigureConstant          = "configure"
	logFieldForcedConstant             = "forced"
	logFieldDryRunConstant             = "dry_run"
)

// ErrExecutorNotConfigured indicates the service was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the service was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// Options configures one build invocation.
type Options struct {
	Project           project.Configuration
	Executable        string
	Profile           string
	BuildFolder       string
	ProfilesDirectory string
	BuildInfoFile     string
	BuildPolicies     []string
	InstallHint       string
	ForceConfigure    bool
	DryRun            bool
}

// Paths holds the filesystem locations derived from Options.
// ProfileArgument is what conan receives: the expanded path for path-like profiles, the bare name otherwise.
type Paths struct {
	BuildPath       string
	ProfilePath     string
	ProfileArgument string
	BuildInfoPath   string
}

// Result reports what the build did.
type Result struct {
	Paths      Paths
	Configured bool
	Commands   []execshell.ShellCommand
}

// Dependencies enumerates collaborators required by the build service.
type Dependencies struct {
	Executor     shared.ToolExecutor
	FileSystem   shared.FileSystem
	Reporter     shared.Reporter
	Logger       *zap.Logger
	HomeExpander *pathutils.HomeExpander
	OutputWriter io.Writer
	ErrorWriter  io.Writer
}

// Service installs dependencies when the build folder is stale and then builds the project.
type Service struct {
	executor     shared.ToolExecutor
	fileSystem   shared.FileSystem
	reporter     shared.Reporter
	logger       *zap.Logger
	homeExpander *pathutils.HomeExpander
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		executor:     dependencies.Executor,
		fileSystem:   dependencies.FileSystem,
		reporter:     reporter,
		logger:       logger,
		homeExpander: homeExpander,
		outputWriter: dependencies.OutputWriter,
		errorWriter:  dependencies.ErrorWriter,
	}, nil
}

// ResolvePaths derives the build folder, profile file, and build-info file locations.
func (service *Service) ResolvePaths(options Options) Paths {
	buildPath := options.BuildFolder
	if !filepath.IsAbs(buildPath) {
		buildPath = filepath.Join(options.Project.Root, buildPath)
	}

	profilePath := service.homeExpander.Expand(options.Profile)
	profileArgument := profilePath
	if !filepath.IsAbs(profilePath) {
		profilePath = filepath.Join(service.homeExpander.Expand(options.ProfilesDirectory), options.Profile)
		profileArgument = options.Profile
	}

	return Paths{
		BuildPath:       buildPath,
		ProfilePath:     profilePath,
		ProfileArgument: profileArgument,
		BuildInfoPath:   filepath.Join(buildPath, options.BuildInfoFile),
	}
}

// Run configures the build folder when needed and always builds.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	paths := service.ResolvePaths(options)
	result := Result{Paths: paths}

	configure, decisionError := ShouldConfigure(service.fileSystem, options.ForceConfigure, paths.ProfilePath, paths.BuildInfoPath)
	if decisionError != nil {
		return result, fmt.Errorf(configurationErrorTemplateConstant, paths.BuildPath, decisionError)
	}
	result.Configured = configure

	service.logger.Info(
		logMessageDecisionConstant,
		zap.String(logFieldProjectRootConstant, options.Project.Root),
		zap.String(logFieldBuildPathConstant, paths.BuildPath),
		zap.String(logFieldProfilePathConstant, paths.ProfilePath),
		zap.String(logFieldBuildInfoPathConstant, paths.BuildInfoPath),
		zap.Bool(logFieldConfigureConstant, configure),
		zap.Bool(logFieldForcedConstant, options.ForceConfigure),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	if configure {
		service.reporter.Printf(configureDecisionTemplateConstant, paths.BuildPath, options.Profile)
		installCommand := service.installCommand(options, paths)
		result.Commands = append(result.Commands, installCommand)
		if runError := service.runCommand(executionContext, installCommand, options); runError != nil {
			return result, fmt.Errorf(installErrorTemplateConstant, runError)
		}
	} else {
		service.reporter.Printf(upToDateDecisionTemplateConstant, paths.BuildPath, options.Profile)
	}

	buildCommand := service.buildCommand(options, paths)
	result.Commands = append(result.Commands, buildCommand)
	if runError := service.runCommand(executionContext, buildCommand, options); runError != nil {
		return result, fmt.Errorf(buildErrorTemplateConstant, runError)
	}

	service.logger.Info(logMessageBuildCompletedConstant, zap.String(logFieldBuildPathConstant, paths.BuildPath), zap.Bool(logFieldDryRunConstant, options.DryRun))
	return result, nil
}

func (service *Service) installCommand(options Options, paths Paths) execshell.ShellCommand {
	arguments := []string{
		conanInstallSubcommandConstant,
		options.Project.Root,
		conanInstallFolderFlagConstant,
		paths.BuildPath,
		conanProfileFlagConstant,
		paths.ProfileArgument,
	}
	for _, policy := range options.BuildPolicies {
		arguments = append(arguments, fmt.Sprintf(conanBuildPolicyTemplateConstant, policy))
	}
	return service.conanCommand(options, arguments)
}

func (service *Service) buildCommand(options Options, paths Paths) execshell.ShellCommand {
	return service.conanCommand(options, []string{
		conanBuildSubcommandConstant,
		options.Project.Root,
		conanBuildFolderFlagConstant,
		paths.BuildPath,
	})
}

func (service *Service) conanCommand(options Options, arguments []string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandName(options.Executable),
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: options.Project.Root,
			OutputWriter:     service.outputWriter,
			ErrorWriter:      service.errorWriter,
		},
	}
}

func (service *Service) runCommand(executionContext context.Context, command execshell.ShellCommand, options Options) error {
	if options.DryRun {
		service.reporter.Printf(dryRunCommandTemplateConstant, command.CommandLine())
		return nil
	}

	_, executionError := service.executor.ExecuteTool(executionContext, command.Name, command.Details)
	if executionError == nil {
		return nil
	}
	if errors.Is(executionError, execshell.ErrToolNotFound) && len(options.InstallHint) > 0 {
		return fmt.Errorf(toolMissingTemplateConstant, executionError, options.InstallHint)
	}
	return executionError
}
