package pathutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/trackertools/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/tracker"

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare_tilde", input: "~", expected: testHomeDirectoryConstant},
		{name: "tilde_prefix", input: "~/.conan/profiles", expected: filepath.Join(testHomeDirectoryConstant, ".conan/profiles")},
		{name: "absolute_path_untouched", input: "/opt/tracker", expected: "/opt/tracker"},
		{name: "other_user_untouched", input: "~builder/tracker", expected: "~builder/tracker"},
		{name: "empty_untouched", input: "", expected: ""},
	}

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderProviderFailureLeavesPath(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/tracker", expander.Expand("~/tracker"))
}

func TestHomeExpanderExpandAbsolute(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	absolutePath, expandError := expander.ExpandAbsolute(" ~/tracker/../tracker ")
	require.NoError(testInstance, expandError)
	require.Equal(testInstance, filepath.Join(testHomeDirectoryConstant, "tracker"), absolutePath)

	workingDirectoryPath := testInstance.TempDir()
	previousWorkingDirectoryPath, getwdError := os.Getwd()
	require.NoError(testInstance, getwdError)
	require.NoError(testInstance, os.Chdir(workingDirectoryPath))
	testInstance.Cleanup(func() {
		_ = os.Chdir(previousWorkingDirectoryPath)
	})
	relativeResolved, relativeError := expander.ExpandAbsolute("src")
	require.NoError(testInstance, relativeError)
	require.Equal(testInstance, filepath.Join(workingDirectoryPath, "src"), relativeResolved)
}
