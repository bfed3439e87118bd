package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	pathutils "github.com/temirov/trackertools/internal/utils/path"
)

const (
	// EnvironmentVariableName names the environment variable that carries the project root.
	EnvironmentVariableName = "TRACKER_PROJECT"

	projectRootMissingMessageConstant      = "Please source the set_env.bash script in the scripts/ directory to set the $TRACKER_PROJECT environment variable, which keeps track of the project directory."
	projectRootInvalidTemplateConstant     = "project root %s (from %s) is not usable: %v"
	projectRootNotDirectoryMessageConstant = "not a directory"
	projectRootSourceFlagConstant          = "--project flag"
	projectRootSourceEnvironmentConstant   = EnvironmentVariableName
	projectRootSourceConfigurationConstant = "configuration common.project_root"
)

// ErrProjectRootMissing is returned when no source provides a project root.
var ErrProjectRootMissing = errors.New(projectRootMissingMessageConstant)

// Source identifies where a project root value came from.
type Source string

// Project root sources in precedence order.
const (
	SourceFlag          Source = Source(projectRootSourceFlagConstant)
	SourceEnvironment   Source = Source(projectRootSourceEnvironmentConstant)
	SourceConfiguration Source = Source(projectRootSourceConfigurationConstant)
)

// Configuration carries the resolved project root into the services that need it.
type Configuration struct {
	Root   string
	Source Source
}

// ProjectRootInvalidError reports a project root that does not name an existing directory.
type ProjectRootInvalidError struct {
	Path   string
	Source Source
	Cause  error
}

func (invalidError ProjectRootInvalidError) Error() string {
	return fmt.Sprintf(projectRootInvalidTemplateConstant, invalidError.Path, invalidError.Source, invalidError.Cause)
}

// Unwrap exposes the underlying stat failure.
func (invalidError ProjectRootInvalidError) Unwrap() error {
	return invalidError.Cause
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// PathStat reports file information for a path.
type PathStat func(path string) (fs.FileInfo, error)

// Resolver determines the project root from the flag, the environment, and configuration.
type Resolver struct {
	environmentLookup EnvironmentLookup
	pathStat          PathStat
	homeExpander      *pathutils.HomeExpander
}

// NewResolver constructs a Resolver; nil collaborators fall back to the operating system.
func NewResolver(environmentLookup EnvironmentLookup, pathStat PathStat, homeExpander *pathutils.HomeExpander) *Resolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if pathStat == nil {
		pathStat = os.Stat
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &Resolver{environmentLookup: environmentLookup, pathStat: pathStat, homeExpander: homeExpander}
}

// Resolve returns the first non-blank project root among override, TRACKER_PROJECT, and configured.
func (resolver *Resolver) Resolve(override string, configured string) (Configuration, error) {
	candidateValue, candidateSource, found := resolver.selectCandidate(override, configured)
	if !found {
		return Configuration{}, ErrProjectRootMissing
	}

	absoluteRoot, absoluteError := resolver.homeExpander.ExpandAbsolute(candidateValue)
	if absoluteError != nil {
		return Configuration{}, ProjectRootInvalidError{Path: candidateValue, Source: candidateSource, Cause: absoluteError}
	}

	rootInfo, statError := resolver.pathStat(absoluteRoot)
	if statError != nil {
		return Configuration{}, ProjectRootInvalidError{Path: absoluteRoot, Source: candidateSource, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return Configuration{}, ProjectRootInvalidError{Path: absoluteRoot, Source: candidateSource, Cause: errors.New(projectRootNotDirectoryMessageConstant)}
	}

	return Configuration{Root: absoluteRoot, Source: candidateSource}, nil
}

func (resolver *Resolver) selectCandidate(override string, configured string) (string, Source, bool) {
	if trimmedOverride := strings.TrimSpace(override); len(trimmedOverride) > 0 {
		return trimmedOverride, SourceFlag, true
	}

	if environmentValue, present := resolver.environmentLookup(EnvironmentVariableName); present {
		if trimmedEnvironmentValue := strings.TrimSpace(environmentValue); len(trimmedEnvironmentValue) > 0 {
			return trimmedEnvironmentValue, SourceEnvironment, true
		}
	}

	if trimmedConfigured := strings.TrimSpace(configured); len(trimmedConfigured) > 0 {
		return trimmedConfigured, SourceConfiguration, true
	}

	return "", "", false
}
