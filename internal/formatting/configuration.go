package formatting

import (
	"strings"

	"github.com/temirov/trackertools/internal/discovery"
)

const (
	cmakeFormatToolNameConstant           = "cmake-format"
	clangFormatToolNameConstant           = "clang-format"
	clangTidyToolNameConstant             = "clang-tidy"
	standaloneCMakeToolNameConstant       = "cmake"
	cmakeFormatInstallHintConstant        = "Please install with pip by entering the following command:\n\n    pip install cmake_format"
	clangFormatInstallHintConstant        = "Please install clang-format from your LLVM distribution or system package manager."
	clangTidyInstallHintConstant          = "Please install clang-tidy from your LLVM distribution or system package manager."
	inPlaceArgumentConstant               = "-i"
	clangFormatStyleArgumentConstant      = "-style=file"
	clangTidyFixArgumentConstant          = "--fix"
	clangTidyQuietArgumentConstant        = "--quiet"
	toolModeInPlaceValueConstant          = "in_place"
	toolModeCaptureStandardOutputConstant = "capture_stdout"
)

// ToolMode describes how a formatter delivers its result.
type ToolMode string

// Supported tool modes.
const (
	// ToolModeInPlace lets the tool rewrite the file itself.
	ToolModeInPlace ToolMode = ToolMode(toolModeInPlaceValueConstant)
	// ToolModeCaptureStandardOutput replaces the file with the tool's standard output.
	ToolModeCaptureStandardOutput ToolMode = ToolMode(toolModeCaptureStandardOutputConstant)
)

// ToolDefinition describes one external formatter.
type ToolDefinition struct {
	Name        string                 `mapstructure:"name" yaml:"name"`
	Executable  string                 `mapstructure:"executable" yaml:"executable"`
	Arguments   []string               `mapstructure:"arguments" yaml:"arguments"`
	Mode        ToolMode               `mapstructure:"mode" yaml:"mode"`
	Files       discovery.FileCategory `mapstructure:"files" yaml:"files"`
	InstallHint string                 `mapstructure:"install_hint" yaml:"install_hint"`
}

// ToolsConfiguration lists the formatters available to the format command.
type ToolsConfiguration struct {
	CMakeFormat ToolDefinition `mapstructure:"cmake_format" yaml:"cmake_format"`
	ClangFormat ToolDefinition `mapstructure:"clang_format" yaml:"clang_format"`
	ClangTidy   ToolDefinition `mapstructure:"clang_tidy" yaml:"clang_tidy"`
}

// Configuration aggregates settings for the formatting commands.
type Configuration struct {
	DryRun              bool               `mapstructure:"dry_run" yaml:"dry_run"`
	ExcludedDirectories []string           `mapstructure:"excluded_directories" yaml:"excluded_directories"`
	Tools               ToolsConfiguration `mapstructure:"tools" yaml:"tools"`
	CMake               ToolDefinition     `mapstructure:"cmake" yaml:"cmake"`
}

// DefaultConfiguration supplies the formatter set used by the tracker project.
func DefaultConfiguration() Configuration {
	return Configuration{
		ExcludedDirectories: []string{"extern", "include", "scripts", "build"},
		Tools: ToolsConfiguration{
			CMakeFormat: ToolDefinition{
				Name:        cmakeFormatToolNameConstant,
				Executable:  cmakeFormatToolNameConstant,
				Arguments:   []string{inPlaceArgumentConstant},
				Mode:        ToolModeInPlace,
				Files:       discovery.FileCategoryCMake,
				InstallHint: cmakeFormatInstallHintConstant,
			},
			ClangFormat: ToolDefinition{
				Name:        clangFormatToolNameConstant,
				Executable:  clangFormatToolNameConstant,
				Arguments:   []string{inPlaceArgumentConstant, clangFormatStyleArgumentConstant},
				Mode:        ToolModeInPlace,
				Files:       discovery.FileCategoryCpp,
				InstallHint: clangFormatInstallHintConstant,
			},
			ClangTidy: ToolDefinition{
				Name:        clangTidyToolNameConstant,
				Executable:  clangTidyToolNameConstant,
				Arguments:   []string{clangTidyFixArgumentConstant, clangTidyQuietArgumentConstant},
				Mode:        ToolModeInPlace,
				Files:       discovery.FileCategoryCpp,
				InstallHint: clangTidyInstallHintConstant,
			},
		},
		CMake: ToolDefinition{
			Name:        standaloneCMakeToolNameConstant,
			Executable:  cmakeFormatToolNameConstant,
			Mode:        ToolModeCaptureStandardOutput,
			Files:       discovery.FileCategoryCMake,
			InstallHint: cmakeFormatInstallHintConstant,
		},
	}
}

// Sanitize trims configured values and fills blanks from the defaults.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration
	sanitized.ExcludedDirectories = sanitizeNames(configuration.ExcludedDirectories)
	sanitized.Tools.CMakeFormat = configuration.Tools.CMakeFormat.sanitize(defaults.Tools.CMakeFormat)
	sanitized.Tools.ClangFormat = configuration.Tools.ClangFormat.sanitize(defaults.Tools.ClangFormat)
	sanitized.Tools.ClangTidy = configuration.Tools.ClangTidy.sanitize(defaults.Tools.ClangTidy)
	sanitized.CMake = configuration.CMake.sanitize(defaults.CMake)
	return sanitized
}

func (definition ToolDefinition) sanitize(fallback ToolDefinition) ToolDefinition {
	sanitized := ToolDefinition{
		Name:        strings.TrimSpace(definition.Name),
		Executable:  strings.TrimSpace(definition.Executable),
		Arguments:   sanitizeNames(definition.Arguments),
		Mode:        ToolMode(strings.ToLower(strings.TrimSpace(string(definition.Mode)))),
		Files:       discovery.FileCategory(strings.ToLower(strings.TrimSpace(string(definition.Files)))),
		InstallHint: strings.TrimSpace(definition.InstallHint),
	}

	if len(sanitized.Executable) == 0 {
		return fallback
	}
	if len(sanitized.Name) == 0 {
		sanitized.Name = sanitized.Executable
	}
	if len(sanitized.Mode) == 0 {
		sanitized.Mode = fallback.Mode
	}
	if len(sanitized.Files) == 0 {
		sanitized.Files = fallback.Files
	}
	if len(sanitized.InstallHint) == 0 {
		sanitized.InstallHint = fallback.InstallHint
	}
	return sanitized
}

func sanitizeNames(candidates []string) []string {
	sanitized := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedCandidate)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
