// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and classifies outcomes into typed errors so the
// formatting and build commands can report missing tools and failed runs
// consistently.
package execshell
