package build

import (
	"strings"
)

const (
	defaultExecutableConstant        = "conan"
	defaultProfileConstant           = "clang60-debug"
	defaultBuildFolderConstant       = "build"
	defaultProfilesDirectoryConstant = "~/.conan/profiles"
	defaultBuildInfoFileConstant     = "conaninfo.txt"
	defaultInstallHintConstant       = "Please install conan with pip by entering the following command:\n\n    pip install conan"
	buildPolicyMissingConstant       = "missing"
	buildPolicyOutdatedConstant      = "outdated"
)

// Configuration aggregates settings for the build command.
type Configuration struct {
	Executable        string   `mapstructure:"executable" yaml:"executable"`
	Profile           string   `mapstructure:"profile" yaml:"profile"`
	BuildFolder       string   `mapstructure:"build_folder" yaml:"build_folder"`
	ProfilesDirectory string   `mapstructure:"profiles_directory" yaml:"profiles_directory"`
	BuildInfoFile     string   `mapstructure:"build_info_file" yaml:"build_info_file"`
	BuildPolicies     []string `mapstructure:"build_policies" yaml:"build_policies"`
	InstallHint       string   `mapstructure:"install_hint" yaml:"install_hint"`
	DryRun            bool     `mapstructure:"dry_run" yaml:"dry_run"`
}

// DefaultConfiguration supplies the conan settings used by the tracker project.
func DefaultConfiguration() Configuration {
	return Configuration{
		Executable:        defaultExecutableConstant,
		Profile:           defaultProfileConstant,
		BuildFolder:       defaultBuildFolderConstant,
		ProfilesDirectory: defaultProfilesDirectoryConstant,
		BuildInfoFile:     defaultBuildInfoFileConstant,
		BuildPolicies:     []string{buildPolicyMissingConstant, buildPolicyOutdatedConstant},
		InstallHint:       defaultInstallHintConstant,
	}
}

// Sanitize trims configured values and fills blanks from the defaults.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := Configuration{
		Executable:        valueOrDefault(configuration.Executable, defaults.Executable),
		Profile:           valueOrDefault(configuration.Profile, defaults.Profile),
		BuildFolder:       valueOrDefault(configuration.BuildFolder, defaults.BuildFolder),
		ProfilesDirectory: valueOrDefault(configuration.ProfilesDirectory, defaults.ProfilesDirectory),
		BuildInfoFile:     valueOrDefault(configuration.BuildInfoFile, defaults.BuildInfoFile),
		InstallHint:       valueOrDefault(configuration.InstallHint, defaults.InstallHint),
		DryRun:            configuration.DryRun,
	}

	for _, policy := range configuration.BuildPolicies {
		if trimmedPolicy := strings.TrimSpace(policy); len(trimmedPolicy) > 0 {
			sanitized.BuildPolicies = append(sanitized.BuildPolicies, trimmedPolicy)
		}
	}
	if configuration.BuildPolicies == nil {
		sanitized.BuildPolicies = defaults.BuildPolicies
	}

	return sanitized
}

func valueOrDefault(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}
