package formatting

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/trackertools/internal/discovery"
	"github.com/temirov/trackertools/internal/execshell"
	"github.com/temirov/trackertools/internal/project"
	"github.com/temirov/trackertools/internal/shared"
)

const (
	findingFilesTemplateConstant    = "Finding your %s files to format....\n"
	formattingHeaderConstant        = "\nFormatting the following files:"
	dryRunNoticeConstant            = "\nDry run: no files were modified."
	completionMessageConstant       = "Done!\nPlease do a 'git diff' to make sure the files were formatted to your liking.\nUse 'git checkout -- /path/to/file' to undo any changes or 'git add -p' to\ninteractively add the changes you do want to keep."
	unchangedNoticeConstant         = "\nIf 'git diff' shows no changes then the files were already formatted correctly."
	discoveryErrorTemplateConstant  = "unable to find %s files: %w"
	formatErrorTemplateConstant     = "unable to format %s with %s: %w"
	writeErrorTemplateConstant      = "unable to write formatted output to %s: %w"
	statErrorTemplateConstant       = "unable to inspect %s: %w"
	predicateErrorTemplateConstant  = "tool %s: %w"
	logMessageToolStartedConstant   = "running formatter"
	logMessageToolCompletedConstant = "formatter completed"
	logMessageFileRewrittenConstant = "file rewritten from formatter output"
	logFieldToolConstant            = "tool"
	logFieldRootConstant            = "project_root"
	logFieldFileCountConstant       = "file_count"
	logFieldFileConstant            = "file"
	logFieldDryRunConstant          = "dry_run"
)

// Options configures a formatting run.
type Options struct {
	Project             project.Configuration
	ExcludedDirectories []string
	Tools               []ToolDefinition
	DryRun              bool
}

// ToolReport records the files one tool processed.
type ToolReport struct {
	Tool  string
	Files []string
}

// Result summarizes a formatting run.
type Result struct {
	Reports []ToolReport
}

// Dependencies enumerates collaborators required by the formatting service.
type Dependencies struct {
	Discoverer shared.FileDiscoverer
	Executor   shared.ToolExecutor
	FileSystem shared.FileSystem
	Reporter   shared.Reporter
	Logger     *zap.Logger
}

// Service discovers project files and runs configured formatters over them.
type Service struct {
	discoverer shared.FileDiscoverer
	executor   shared.ToolExecutor
	fileSystem shared.FileSystem
	reporter   shared.Reporter
	logger     *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
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

	return &Service{
		discoverer: dependencies.Discoverer,
		executor:   dependencies.Executor,
		fileSystem: dependencies.FileSystem,
		reporter:   reporter,
		logger:     logger,
	}, nil
}

// Run formats the project with each tool in order. The first failing tool stops the run.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	result := Result{}

	for _, tool := range options.Tools {
		report, toolError := service.runTool(executionContext, options, tool)
		if toolError != nil {
			return result, toolError
		}
		result.Reports = append(result.Reports, report)
	}

	if options.DryRun {
		service.reporter.Println(dryRunNoticeConstant)
		return result, nil
	}

	service.reporter.Println(completionMessageConstant)
	service.reporter.Println(unchangedNoticeConstant)
	return result, nil
}

func (service *Service) runTool(executionContext context.Context, options Options, tool ToolDefinition) (ToolReport, error) {
	if validationError := validateTool(tool); validationError != nil {
		return ToolReport{}, validationError
	}

	predicate, predicateError := discovery.PredicateForCategory(tool.Files)
	if predicateError != nil {
		return ToolReport{}, fmt.Errorf(predicateErrorTemplateConstant, tool.Name, predicateError)
	}

	service.reporter.Printf(findingFilesTemplateConstant, tool.Name)

	files, discoveryError := service.discoverer.Discover(discovery.Options{
		Root:                options.Project.Root,
		ExcludedDirectories: options.ExcludedDirectories,
		Predicate:           predicate,
	})
	if discoveryError != nil {
		return ToolReport{}, fmt.Errorf(discoveryErrorTemplateConstant, tool.Name, discoveryError)
	}

	service.logger.Info(
		logMessageToolStartedConstant,
		zap.String(logFieldToolConstant, tool.Name),
		zap.String(logFieldRootConstant, options.Project.Root),
		zap.Int(logFieldFileCountConstant, len(files)),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	service.reporter.Println(formattingHeaderConstant)
	for _, filePath := range files {
		service.reporter.Println(filePath)
		if options.DryRun {
			continue
		}
		if formatError := service.formatFile(executionContext, options.Project.Root, tool, filePath); formatError != nil {
			return ToolReport{}, formatError
		}
	}

	service.logger.Info(logMessageToolCompletedConstant, zap.String(logFieldToolConstant, tool.Name), zap.Int(logFieldFileCountConstant, len(files)))
	return ToolReport{Tool: tool.Name, Files: files}, nil
}

func (service *Service) formatFile(executionContext context.Context, projectRoot string, tool ToolDefinition, filePath string) error {
	arguments := make([]string, 0, len(tool.Arguments)+1)
	arguments = append(arguments, tool.Arguments...)
	arguments = append(arguments, filePath)

	executionResult, executionError := service.executor.ExecuteTool(
		executionContext,
		execshell.CommandName(tool.Executable),
		execshell.CommandDetails{Arguments: arguments, WorkingDirectory: projectRoot},
	)
	if executionError != nil {
		if errors.Is(executionError, execshell.ErrToolNotFound) {
			return ToolNotInstalledError{Executable: tool.Executable, InstallHint: tool.InstallHint, Cause: executionError}
		}
		return fmt.Errorf(formatErrorTemplateConstant, filePath, tool.Name, executionError)
	}

	if tool.Mode != ToolModeCaptureStandardOutput {
		return nil
	}

	fileInfo, statError := service.fileSystem.Stat(filePath)
	if statError != nil {
		return fmt.Errorf(statErrorTemplateConstant, filePath, statError)
	}
	if writeError := service.fileSystem.WriteFile(filePath, []byte(executionResult.StandardOutput), fileInfo.Mode().Perm()); writeError != nil {
		return fmt.Errorf(writeErrorTemplateConstant, filePath, writeError)
	}
	service.logger.Debug(logMessageFileRewrittenConstant, zap.String(logFieldToolConstant, tool.Name), zap.String(logFieldFileConstant, filePath))
	return nil
}

func validateTool(tool ToolDefinition) error {
	if len(tool.Executable) == 0 {
		return fmt.Errorf(toolExecutableMissingTemplateConstant, tool.Name)
	}
	switch tool.Mode {
	case ToolModeInPlace, ToolModeCaptureStandardOutput:
		return nil
	default:
		return fmt.Errorf(invalidToolModeTemplateConstant, tool.Name, tool.Mode, ToolModeInPlace, ToolModeCaptureStandardOutput)
	}
}
