package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	formatStartTemplateConstant            = "Formatting %s with %s"
	formatSuccessTemplateConstant          = "Formatted %s with %s"
	formatFailureTemplateConstant          = "Failed to format %s with %s (exit code %d%s)"
	formatExecutionFailureTemplateConstant = "Unable to format %s with %s: %s"
	tidyStartTemplateConstant              = "Applying clang-tidy fixes to %s"
	tidySuccessTemplateConstant            = "Applied clang-tidy fixes to %s"
	tidyFailureTemplateConstant            = "clang-tidy reported problems in %s (exit code %d%s)"
	tidyExecutionFailureTemplateConstant   = "Unable to run clang-tidy on %s: %s"
)

const (
	conanInstallSubcommandConstant               = "install"
	conanBuildSubcommandConstant                 = "build"
	conanInstallFolderFlagConstant               = "--install-folder"
	conanBuildFolderFlagConstant                 = "--build-folder"
	conanProfileFlagConstant                     = "--profile"
	conanInstallStartTemplateConstant            = "Installing dependencies for %s into %s with profile %s"
	conanInstallSuccessTemplateConstant          = "Installed dependencies for %s into %s with profile %s"
	conanInstallFailureTemplateConstant          = "Failed to install dependencies for %s into %s with profile %s (exit code %d%s)"
	conanInstallExecutionFailureTemplateConstant = "Unable to install dependencies for %s into %s with profile %s: %s"
	conanBuildStartTemplateConstant              = "Building %s in %s"
	conanBuildSuccessTemplateConstant            = "Built %s in %s"
	conanBuildFailureTemplateConstant            = "Failed to build %s in %s (exit code %d%s)"
	conanBuildExecutionFailureTemplateConstant   = "Unable to build %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandCMakeFormat, CommandClangFormat:
		return formatter.describeFormatMessage(command, result, failure, stage)
	case CommandClangTidy:
		return formatter.describeTidyMessage(command, result, failure, stage)
	case CommandConan:
		return formatter.describeConanMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeFormatMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	targetFile := formatter.lastArgument(command.Details.Arguments)
	if len(targetFile) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	toolName := string(command.Name)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(formatStartTemplateConstant, targetFile, toolName)
	case messageStageSuccess:
		return fmt.Sprintf(formatSuccessTemplateConstant, targetFile, toolName)
	case messageStageFailure:
		return fmt.Sprintf(formatFailureTemplateConstant, targetFile, toolName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(formatExecutionFailureTemplateConstant, targetFile, toolName, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeTidyMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	targetFile := formatter.lastArgument(command.Details.Arguments)
	if len(targetFile) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(tidyStartTemplateConstant, targetFile)
	case messageStageSuccess:
		return fmt.Sprintf(tidySuccessTemplateConstant, targetFile)
	case messageStageFailure:
		return fmt.Sprintf(tidyFailureTemplateConstant, targetFile, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(tidyExecutionFailureTemplateConstant, targetFile, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeConanMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	projectPath := formatter.ensureValue(arguments[1])
	switch strings.TrimSpace(arguments[0]) {
	case conanInstallSubcommandConstant:
		installFolder := formatter.ensureValue(findFlagValue(arguments, conanInstallFolderFlagConstant))
		profileName := formatter.ensureValue(findFlagValue(arguments, conanProfileFlagConstant))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(conanInstallStartTemplateConstant, projectPath, installFolder, profileName)
		case messageStageSuccess:
			return fmt.Sprintf(conanInstallSuccessTemplateConstant, projectPath, installFolder, profileName)
		case messageStageFailure:
			return fmt.Sprintf(conanInstallFailureTemplateConstant, projectPath, installFolder, profileName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(conanInstallExecutionFailureTemplateConstant, projectPath, installFolder, profileName, formatter.describeFailure(failure))
		}
	case conanBuildSubcommandConstant:
		buildFolder := formatter.ensureValue(findFlagValue(arguments, conanBuildFolderFlagConstant))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(conanBuildStartTemplateConstant, projectPath, buildFolder)
		case messageStageSuccess:
			return fmt.Sprintf(conanBuildSuccessTemplateConstant, projectPath, buildFolder)
		case messageStageFailure:
			return fmt.Sprintf(conanBuildFailureTemplateConstant, projectPath, buildFolder, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(conanBuildExecutionFailureTemplateConstant, projectPath, buildFolder, formatter.describeFailure(failure))
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// lastArgument returns the trailing positional argument, which is the target file for formatter tools.
func (formatter CommandMessageFormatter) lastArgument(arguments []string) string {
	if len(arguments) == 0 {
		return emptyStringConstant
	}
	candidate := strings.TrimSpace(arguments[len(arguments)-1])
	if strings.HasPrefix(candidate, flagPrefixConstant) {
		return emptyStringConstant
	}
	return candidate
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments)-1; index++ {
		if arguments[index] == flag {
			return arguments[index+1]
		}
	}
	return emptyStringConstant
}
