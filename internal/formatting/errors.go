package formatting

import (
	"errors"
	"fmt"
	"strings"
)

const (
	toolNotInstalledTemplateConstant         = "Attempted to use %s, but it looks like it's not installed!"
	toolNotInstalledWithHintTemplateConstant = "Attempted to use %s, but it looks like it's not installed!\n%s"
	noToolSelectedMessageConstant            = "select at least one formatter: --all, --cmake-format, --clang-format, or --clang-tidy"
	executorMissingMessageConstant           = "formatting service requires a tool executor"
	discovererMissingMessageConstant         = "formatting service requires a file discoverer"
	fileSystemMissingMessageConstant         = "formatting service requires a filesystem"
	invalidToolModeTemplateConstant          = "tool %s has unsupported mode %q (expected %s or %s)"
	toolExecutableMissingTemplateConstant    = "tool %s has no executable configured"
)

// ErrNoToolSelected is returned when the format command is invoked without a tool selection.
var ErrNoToolSelected = errors.New(noToolSelectedMessageConstant)

// ErrExecutorNotConfigured indicates the service was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrDiscovererNotConfigured indicates the service was constructed without a file discoverer.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the service was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ToolNotInstalledError reports a formatter whose executable could not be found.
type ToolNotInstalledError struct {
	Executable  string
	InstallHint string
	Cause       error
}

func (installError ToolNotInstalledError) Error() string {
	trimmedHint := strings.TrimSpace(installError.InstallHint)
	if len(trimmedHint) == 0 {
		return fmt.Sprintf(toolNotInstalledTemplateConstant, installError.Executable)
	}
	return fmt.Sprintf(toolNotInstalledWithHintTemplateConstant, installError.Executable, trimmedHint)
}

// Unwrap exposes the underlying lookup failure.
func (installError ToolNotInstalledError) Unwrap() error {
	return installError.Cause
}
