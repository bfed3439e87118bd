package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const (
	rootMissingMessageConstant           = "discovery root must be provided"
	predicateMissingMessageConstant      = "discovery predicate must be provided"
	rootUnreadableTemplateConstant       = "unable to read discovery root %s: %w"
	rootNotDirectoryTemplateConstant     = "discovery root %s is not a directory"
	rootAbsoluteTemplateConstant         = "unable to resolve discovery root %s: %w"
	logMessageEntrySkippedConstant       = "skipping unreadable entry"
	logMessageDirectoryExcludedConstant  = "skipping excluded directory"
	logMessageDiscoveryCompletedConstant = "file discovery completed"
	logFieldPathConstant                 = "path"
	logFieldRootConstant                 = "root"
	logFieldFileCountConstant            = "file_count"
)

// ErrRootNotProvided indicates an empty discovery root.
var ErrRootNotProvided = errors.New(rootMissingMessageConstant)

// ErrPredicateNotProvided indicates a missing file predicate.
var ErrPredicateNotProvided = errors.New(predicateMissingMessageConstant)

// Options describes a single discovery request.
type Options struct {
	Root                string
	ExcludedDirectories []string
	Predicate           FilePredicate
}

// FileDiscoverer walks a directory tree and collects files accepted by a predicate.
type FileDiscoverer struct {
	logger *zap.Logger
}

// NewFileDiscoverer constructs a discoverer. A nil logger disables diagnostics.
func NewFileDiscoverer(logger *zap.Logger) *FileDiscoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileDiscoverer{logger: logger}
}

// Discover returns the sorted absolute paths of matching files outside hidden and excluded directories.
func (discoverer *FileDiscoverer) Discover(options Options) ([]string, error) {
	if len(options.Root) == 0 {
		return nil, ErrRootNotProvided
	}
	if options.Predicate == nil {
		return nil, ErrPredicateNotProvided
	}

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return nil, fmt.Errorf(rootAbsoluteTemplateConstant, options.Root, absoluteError)
	}

	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return nil, fmt.Errorf(rootUnreadableTemplateConstant, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(rootNotDirectoryTemplateConstant, absoluteRoot)
	}

	seen := make(map[string]struct{})
	var discoveredFiles []string

	walkError := filepath.WalkDir(absoluteRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == absoluteRoot {
				return fmt.Errorf(rootUnreadableTemplateConstant, absoluteRoot, walkError)
			}
			discoverer.logger.Debug(logMessageEntrySkippedConstant, zap.String(logFieldPathConstant, path), zap.Error(walkError))
			return nil
		}

		if directoryEntry.IsDir() {
			if path == absoluteRoot {
				return nil
			}
			relativeDirectory, relativeError := filepath.Rel(absoluteRoot, path)
			if relativeError != nil {
				return nil
			}
			if DirectoryExcluded(relativeDirectory, options.ExcludedDirectories) {
				discoverer.logger.Debug(logMessageDirectoryExcludedConstant, zap.String(logFieldPathConstant, path))
				return fs.SkipDir
			}
			return nil
		}

		if !options.Predicate(directoryEntry.Name()) {
			return nil
		}

		if _, alreadySeen := seen[path]; alreadySeen {
			return nil
		}
		seen[path] = struct{}{}
		discoveredFiles = append(discoveredFiles, path)
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(discoveredFiles)
	discoverer.logger.Debug(
		logMessageDiscoveryCompletedConstant,
		zap.String(logFieldRootConstant, absoluteRoot),
		zap.Int(logFieldFileCountConstant, len(discoveredFiles)),
	)
	return discoveredFiles, nil
}
