package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentTemplateConstant = "%s=%s"
	defaultStreamedCaptureLimitConstant   = 64 * 1024
)

// OSCommandRunner executes commands using the operating system facilities.
// Output of streamed commands is forwarded live and only its tail is retained in the result.
type OSCommandRunner struct {
	streamedCaptureLimit int
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{streamedCaptureLimit: defaultStreamedCaptureLimitConstant}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executablePath, lookupError := exec.LookPath(string(command.Name))
	if lookupError != nil {
		return ExecutionResult{}, lookupError
	}

	executable := exec.CommandContext(executionContext, executablePath, command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = mergeEnvironment(command.Details.EnvironmentVariables)

	standardOutputCapture := runner.newCapture(command.Details.OutputWriter)
	standardErrorCapture := runner.newCapture(command.Details.ErrorWriter)
	executable.Stdout = standardOutputCapture.writer(command.Details.OutputWriter)
	executable.Stderr = standardErrorCapture.writer(command.Details.ErrorWriter)

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	result := ExecutionResult{}
	runError := executable.Run()
	result.StandardOutput = standardOutputCapture.String()
	result.StandardError = standardErrorCapture.String()
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) && exitError.ExitCode() >= 0 {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}
	return ExecutionResult{}, runError
}

func (runner *OSCommandRunner) newCapture(liveWriter io.Writer) *outputCapture {
	if liveWriter == nil {
		return &outputCapture{}
	}
	return &outputCapture{limit: runner.streamedCaptureLimit}
}

// mergeEnvironment returns nil when there is nothing to add so the child inherits the parent environment.
func mergeEnvironment(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}

	overrideKeys := make([]string, 0, len(overrides))
	for overrideKey := range overrides {
		overrideKeys = append(overrideKeys, overrideKey)
	}
	sort.Strings(overrideKeys)

	mergedEnvironment := append([]string{}, os.Environ()...)
	for _, overrideKey := range overrideKeys {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, overrideKey, overrides[overrideKey]))
	}
	return mergedEnvironment
}

// outputCapture buffers a stream; a positive limit keeps only the trailing limit bytes.
type outputCapture struct {
	buffer bytes.Buffer
	limit  int
}

func (capture *outputCapture) writer(liveWriter io.Writer) io.Writer {
	if liveWriter == nil {
		return capture
	}
	return io.MultiWriter(capture, liveWriter)
}

func (capture *outputCapture) Write(chunk []byte) (int, error) {
	chunkLength := len(chunk)
	if capture.limit <= 0 {
		return capture.buffer.Write(chunk)
	}

	if chunkLength >= capture.limit {
		capture.buffer.Reset()
		capture.buffer.Write(chunk[chunkLength-capture.limit:])
		return chunkLength, nil
	}

	if overflow := capture.buffer.Len() + chunkLength - capture.limit; overflow > 0 {
		capture.buffer.Next(overflow)
	}
	capture.buffer.Write(chunk)
	return chunkLength, nil
}

func (capture *outputCapture) String() string {
	return capture.buffer.String()
}
