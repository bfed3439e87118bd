package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	commandCMakeFormatStringConstant      = "cmake-format"
	commandClangFormatStringConstant      = "clang-format"
	commandClangTidyStringConstant        = "clang-tidy"
	commandConanStringConstant            = "conan"
	loggerNotConfiguredMessageConstant    = "shell executor logger not configured"
	runnerNotConfiguredMessageConstant    = "shell executor command runner not configured"
	toolNotFoundMessageConstant           = "external tool not found"
	toolNotFoundErrorTemplateConstant     = "%s is not installed or not on PATH: %v"
	commandFailedErrorTemplateConstant    = "%s exited with code %d"
	commandFailedStderrTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant = "%s could not be executed: %v"
	logMessageCommandStartedConstant      = "executing external command"
	logMessageCommandCompletedConstant    = "external command completed"
	logMessageCommandFailedConstant       = "external command failed"
	logMessageCommandNotFoundConstant     = "external command not found"
	logFieldCommandNameConstant           = "command"
	logFieldCommandArgumentsConstant      = "arguments"
	logFieldWorkingDirectoryConstant      = "working_directory"
	logFieldExitCodeConstant              = "exit_code"
	logFieldStandardErrorConstant         = "stderr"
	commandLabelArgumentSeparatorConstant = " "
)

// CommandName identifies an executable invoked by the shell executor.
type CommandName string

// Known external tools.
const (
	CommandCMakeFormat CommandName = CommandName(commandCMakeFormatStringConstant)
	CommandClangFormat CommandName = CommandName(commandClangFormatStringConstant)
	CommandClangTidy   CommandName = CommandName(commandClangTidyStringConstant)
	CommandConan       CommandName = CommandName(commandConanStringConstant)
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)

// ErrToolNotFound is matched by ToolNotFoundError through errors.Is.
var ErrToolNotFound = errors.New(toolNotFoundMessageConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// OutputWriter and ErrorWriter receive the live process streams in addition to the captured buffers.
	OutputWriter io.Writer
	ErrorWriter  io.Writer
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ToolNotFoundError reports that the executable could not be located.
type ToolNotFoundError struct {
	Command ShellCommand
	Cause   error
}

func (toolError ToolNotFoundError) Error() string {
	return fmt.Sprintf(toolNotFoundErrorTemplateConstant, toolError.Command.Name, toolError.Cause)
}

// Is reports ErrToolNotFound equivalence.
func (toolError ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// Unwrap exposes the underlying lookup failure.
func (toolError ToolNotFoundError) Unwrap() error {
	return toolError.Cause
}

// CommandFailedError reports a command that ran and returned a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

func (failedError CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.Name, failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedStderrTemplateConstant, failedError.Command.Name, failedError.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a failure to start or supervise the command.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.Name, executionError.Cause)
}

// Unwrap exposes the underlying execution failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs external tools with structured logging and outcome classification.
type ShellExecutor struct {
	logger        *zap.Logger
	runner        CommandRunner
	eventObserver CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor. A nil observer discards lifecycle events.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, eventObserver: eventObserver}, nil
}

// Execute runs the command and converts unsuccessful outcomes into typed errors.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(logMessageCommandStartedConstant, commandFields...)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.eventObserver.CommandExecutionFailed(command, runError)
		if toolLookupFailed(runError) {
			executor.logger.Error(logMessageCommandNotFoundConstant, append(commandFields, zap.Error(runError))...)
			return ExecutionResult{}, ToolNotFoundError{Command: command, Cause: runError}
		}
		executor.logger.Error(logMessageCommandFailedConstant, append(commandFields, zap.Error(runError))...)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			logMessageCommandFailedConstant,
			append(commandFields,
				zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
				zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
			)...,
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(logMessageCommandCompletedConstant, append(commandFields, zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
	return executionResult, nil
}

// ExecuteTool runs an arbitrary, typically configured, executable.
func (executor *ShellExecutor) ExecuteTool(executionContext context.Context, name CommandName, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: name, Details: details})
}

// CommandLine renders the command as a single space-separated string.
func (command ShellCommand) CommandLine() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandLabelArgumentSeparatorConstant)
}

// toolLookupFailed reports whether the executable could not be resolved, either as a bare name on PATH
// or as a configured path that does not exist or is not executable.
func toolLookupFailed(runError error) bool {
	if errors.Is(runError, exec.ErrNotFound) {
		return true
	}
	var lookupError *exec.Error
	return errors.As(runError, &lookupError)
}
