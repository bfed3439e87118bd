package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/trackertools/internal/discovery"
)

func TestCMakeFilePredicate(testInstance *testing.T) {
	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "CMakeLists.txt", expected: true},
		{fileName: "CMakeLists.txt.in", expected: true},
		{fileName: "FindEigen.cmake", expected: true},
		{fileName: "toolchain.cmake.bak", expected: false},
		{fileName: "main.cpp", expected: false},
		{fileName: "cmakelists.txt", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.fileName, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, discovery.CMakeFilePredicate(testCase.fileName))
		})
	}
}

func TestCppFilePredicate(testInstance *testing.T) {
	testCases := []struct {
		fileName string
		expected bool
	}{
		{fileName: "tracker.h", expected: true},
		{fileName: "tracker.hpp", expected: true},
		{fileName: "tracker.hh", expected: true},
		{fileName: "tracker.hxx", expected: true},
		{fileName: "tracker.cc", expected: true},
		{fileName: "tracker.cpp", expected: true},
		{fileName: "tracker.tpp", expected: true},
		{fileName: "tracker.c", expected: false},
		{fileName: "tracker.cpp.orig", expected: false},
		{fileName: "notes.txt", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.fileName, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, discovery.CppFilePredicate(testCase.fileName))
		})
	}
}

func TestPredicateForCategory(testInstance *testing.T) {
	cmakePredicate, cmakeError := discovery.PredicateForCategory(discovery.FileCategoryCMake)
	require.NoError(testInstance, cmakeError)
	require.True(testInstance, cmakePredicate("CMakeLists.txt"))

	cppPredicate, cppError := discovery.PredicateForCategory(" CPP ")
	require.NoError(testInstance, cppError)
	require.True(testInstance, cppPredicate("tracker.cpp"))

	_, unknownError := discovery.PredicateForCategory("python")
	require.Error(testInstance, unknownError)
}

func TestDirectoryExcluded(testInstance *testing.T) {
	excluded := []string{"extern", "include", "scripts", "build"}

	testCases := []struct {
		name              string
		relativeDirectory string
		expected          bool
	}{
		{name: "root", relativeDirectory: ".", expected: false},
		{name: "plain", relativeDirectory: "src/tracker", expected: false},
		{name: "excluded_top_level", relativeDirectory: "build", expected: true},
		{name: "excluded_nested", relativeDirectory: "src/extern/eigen", expected: true},
		{name: "hidden", relativeDirectory: ".git", expected: true},
		{name: "hidden_nested", relativeDirectory: "src/.cache", expected: true},
		{name: "substring_is_not_component", relativeDirectory: "rebuild/tools", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, discovery.DirectoryExcluded(testCase.relativeDirectory, excluded))
		})
	}
}
