// Package cli constructs the tracker-tools command-line interface. It wires
// the Cobra command hierarchy to the layered configuration loader and the
// zap loggers, and registers the format, cmake-format, build, and config
// commands.
package cli
