// Package settings provides the config command for writing and inspecting configuration files.
package settings
