package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/trackertools/internal/dependencies"
	"github.com/temirov/trackertools/internal/shared"
	"github.com/temirov/trackertools/internal/utils"
	"github.com/temirov/trackertools/internal/utils/flags"
)

const (
	configCommandUseConstant                 = "config"
	configCommandShortDescriptionConstant    = "Manage tracker-tools configuration"
	initCommandUseConstant                   = "init"
	initCommandShortDescriptionConstant      = "Write the default configuration file"
	initCommandLongDescriptionConstant       = "init writes the built-in configuration to ./config.yaml (local scope) or to the user configuration directory (user scope)."
	showCommandUseConstant                   = "show"
	showCommandShortDescriptionConstant      = "Print the effective configuration as YAML"
	scopeFlagNameConstant                    = "scope"
	scopeFlagDescriptionConstant             = "Where to write the configuration file."
	scopeSubjectConstant                     = "scope"
	forceFlagNameConstant                    = "force"
	forceFlagDescriptionConstant             = "Overwrite an existing configuration file"
	scopeLocalConstant                       = "local"
	scopeUserConstant                        = "user"
	configurationFileNameConstant            = "config.yaml"
	configurationFilePermissionsConstant     = 0o644
	configurationDirectoryPermissions        = 0o755
	initializedMessageTemplateConstant       = "Configuration written to %s\n"
	sourceCommentTemplateConstant            = "# source: %s\n"
	embeddedSourceLabelConstant              = "built-in defaults"
	unexpectedArgumentsErrorMessageConstant  = "config commands do not accept positional arguments"
	emptyTemplateErrorMessageConstant        = "default configuration content is empty"
	configurationExistsTemplateConstant      = "configuration file %s already exists (use --force to overwrite)"
	invalidTemplateErrorTemplateConstant     = "default configuration is not valid YAML: %w"
	directoryResolutionErrorTemplateConstant = "unable to resolve %s configuration directory: %w"
	writeErrorTemplateConstant               = "unable to write configuration file %s: %w"
	marshalErrorTemplateConstant             = "unable to render configuration: %w"
	logMessageConfigurationWrittenConstant   = "configuration file written"
	logFieldPathConstant                     = "path"
	logFieldScopeConstant                    = "scope"
)

// ErrUnexpectedArguments is returned when positional arguments are supplied.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsErrorMessageConstant)

// ErrEmptyTemplate indicates no default configuration content was provided to config init.
var ErrEmptyTemplate = errors.New(emptyTemplateErrorMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the effective configuration to render.
type ConfigurationProvider func() any

// DirectoryProvider resolves a directory path.
type DirectoryProvider func() (string, error)

// CommandBuilder assembles the config command hierarchy.
type CommandBuilder struct {
	LoggerProvider              LoggerProvider
	ConfigurationProvider       ConfigurationProvider
	DefaultConfigurationContent []byte
	ApplicationDirectoryName    string
	WorkingDirectoryProvider    DirectoryProvider
	UserConfigurationDirectory  DirectoryProvider
	FileSystem                  shared.FileSystem
}

// Build constructs the config command with init and show subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	configCommand := &cobra.Command{
		Use:   configCommandUseConstant,
		Short: configCommandShortDescriptionConstant,
	}

	initCommand := &cobra.Command{
		Use:   initCommandUseConstant,
		Short: initCommandShortDescriptionConstant,
		Long:  initCommandLongDescriptionConstant,
		RunE:  builder.runInit,
	}
	initCommand.Flags().String(
		scopeFlagNameConstant,
		scopeLocalConstant,
		flags.FormatChoiceUsage(scopeLocalConstant, []string{scopeLocalConstant, scopeUserConstant}, scopeFlagDescriptionConstant),
	)
	initCommand.Flags().Bool(forceFlagNameConstant, false, forceFlagDescriptionConstant)

	showCommand := &cobra.Command{
		Use:   showCommandUseConstant,
		Short: showCommandShortDescriptionConstant,
		RunE:  builder.runShow,
	}

	configCommand.AddCommand(initCommand, showCommand)
	return configCommand, nil
}

func (builder *CommandBuilder) runInit(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}
	if len(builder.DefaultConfigurationContent) == 0 {
		return ErrEmptyTemplate
	}

	var parsedTemplate map[string]any
	if parseError := yaml.Unmarshal(builder.DefaultConfigurationContent, &parsedTemplate); parseError != nil {
		return fmt.Errorf(invalidTemplateErrorTemplateConstant, parseError)
	}

	scopeFlagValue, scopeFlagError := command.Flags().GetString(scopeFlagNameConstant)
	if scopeFlagError != nil {
		return scopeFlagError
	}
	scope, scopeError := flags.NormalizeChoice(scopeSubjectConstant, scopeFlagValue, scopeLocalConstant, []string{scopeLocalConstant, scopeUserConstant})
	if scopeError != nil {
		return scopeError
	}

	force, forceFlagError := command.Flags().GetBool(forceFlagNameConstant)
	if forceFlagError != nil {
		return forceFlagError
	}

	targetDirectory, directoryError := builder.resolveTargetDirectory(scope)
	if directoryError != nil {
		return fmt.Errorf(directoryResolutionErrorTemplateConstant, scope, directoryError)
	}
	targetPath := filepath.Join(targetDirectory, configurationFileNameConstant)

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	if _, statError := fileSystem.Stat(targetPath); statError == nil && !force {
		return fmt.Errorf(configurationExistsTemplateConstant, targetPath)
	}

	if mkdirError := fileSystem.MkdirAll(targetDirectory, configurationDirectoryPermissions); mkdirError != nil {
		return fmt.Errorf(writeErrorTemplateConstant, targetPath, mkdirError)
	}
	if writeError := fileSystem.WriteFile(targetPath, builder.DefaultConfigurationContent, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeErrorTemplateConstant, targetPath, writeError)
	}

	builder.resolveLogger().Info(logMessageConfigurationWrittenConstant, zap.String(logFieldPathConstant, targetPath), zap.String(logFieldScopeConstant, scope))
	fmt.Fprintf(command.OutOrStdout(), initializedMessageTemplateConstant, targetPath)
	return nil
}

func (builder *CommandBuilder) runShow(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	var configuration any = map[string]any{}
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	renderedConfiguration, marshalError := yaml.Marshal(configuration)
	if marshalError != nil {
		return fmt.Errorf(marshalErrorTemplateConstant, marshalError)
	}

	source := embeddedSourceLabelConstant
	if configurationFilePath, present := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); present && len(configurationFilePath) > 0 {
		source = configurationFilePath
	}

	fmt.Fprintf(command.OutOrStdout(), sourceCommentTemplateConstant, source)
	_, writeError := command.OutOrStdout().Write(renderedConfiguration)
	return writeError
}

func (builder *CommandBuilder) resolveTargetDirectory(scope string) (string, error) {
	if scope == scopeUserConstant {
		userDirectoryProvider := builder.UserConfigurationDirectory
		if userDirectoryProvider == nil {
			userDirectoryProvider = os.UserConfigDir
		}
		userDirectory, userDirectoryError := userDirectoryProvider()
		if userDirectoryError != nil {
			return "", userDirectoryError
		}
		return filepath.Join(userDirectory, builder.ApplicationDirectoryName), nil
	}

	workingDirectoryProvider := builder.WorkingDirectoryProvider
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	return workingDirectoryProvider()
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
