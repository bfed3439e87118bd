package execshell

// CommandEventObserver receives lifecycle notifications for external tool invocations.
type CommandEventObserver interface {
	// CommandStarted is called before the tool process is launched.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the tool exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the tool could not be run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
