package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	cmakeListsFileNameConstant          = "CMakeLists.txt"
	cmakeModuleExtensionConstant        = ".cmake"
	hiddenEntryPrefixConstant           = "."
	unknownFileCategoryTemplateConstant = "unknown file category %q (expected %s or %s)"
)

// FilePredicate decides whether a file name belongs to the files being collected.
type FilePredicate func(fileName string) bool

// FileCategory names a group of files recognized by a predicate.
type FileCategory string

// Supported file categories.
const (
	FileCategoryCMake FileCategory = "cmake"
	FileCategoryCpp   FileCategory = "cpp"
)

var cppSourceExtensions = map[string]struct{}{
	".h":   {},
	".hpp": {},
	".hh":  {},
	".hxx": {},
	".cc":  {},
	".cpp": {},
	".tpp": {},
}

// CMakeFilePredicate accepts CMakeLists.txt files (including variants such as CMakeLists.txt.in) and *.cmake modules.
func CMakeFilePredicate(fileName string) bool {
	return strings.Contains(fileName, cmakeListsFileNameConstant) || strings.HasSuffix(fileName, cmakeModuleExtensionConstant)
}

// CppFilePredicate accepts C++ headers and sources.
func CppFilePredicate(fileName string) bool {
	_, recognized := cppSourceExtensions[filepath.Ext(fileName)]
	return recognized
}

// PredicateForCategory returns the predicate registered for category.
func PredicateForCategory(category FileCategory) (FilePredicate, error) {
	switch FileCategory(strings.ToLower(strings.TrimSpace(string(category)))) {
	case FileCategoryCMake:
		return CMakeFilePredicate, nil
	case FileCategoryCpp:
		return CppFilePredicate, nil
	default:
		return nil, fmt.Errorf(unknownFileCategoryTemplateConstant, category, FileCategoryCMake, FileCategoryCpp)
	}
}

// DirectoryExcluded reports whether a directory, given relative to the walk root, must be skipped.
// A directory is skipped when any of its path components is hidden or appears in excluded.
func DirectoryExcluded(relativeDirectory string, excluded []string) bool {
	cleanedDirectory := filepath.Clean(relativeDirectory)
	if cleanedDirectory == "." {
		return false
	}

	for _, component := range strings.Split(filepath.ToSlash(cleanedDirectory), "/") {
		if strings.HasPrefix(component, hiddenEntryPrefixConstant) && component != "." && component != ".." {
			return true
		}
		for _, excludedName := range excluded {
			if component == strings.TrimSpace(excludedName) {
				return true
			}
		}
	}

	return false
}
