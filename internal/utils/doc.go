// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory, the
// command context accessor that carries root-level flag values into
// subcommands, and the StreamWriters used to stream external tool output.
package utils
