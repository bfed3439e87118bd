package build_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/trackertools/internal/build"
	"github.com/temirov/trackertools/internal/filesystem"
)

const (
	testProfileContentsConstant           = "[settings]\ncompiler=clang\nbuild_type=Debug\n"
	testMatchingBuildInfoContentsConstant = "[settings]\n    arch=x86_64\n    build_type=Debug\n    compiler=clang\n    compiler.version=6.0\n"
	testOtherBuildInfoContentsConstant    = "[settings]\n    build_type=Release\n    compiler=clang\n"
)

func TestTokenSetIsSubsetOf(testInstance *testing.T) {
	profileTokens := build.ParseTokenSet("compiler=clang build_type=Debug")
	require.True(testInstance, profileTokens.IsSubsetOf(build.ParseTokenSet("arch=x86_64\ncompiler=clang\n  build_type=Debug")))
	require.False(testInstance, profileTokens.IsSubsetOf(build.ParseTokenSet("compiler=clang build_type=Release")))
	require.True(testInstance, build.ParseTokenSet("").IsSubsetOf(build.ParseTokenSet("compiler=clang")))
}

func TestShouldConfigure(testInstance *testing.T) {
	testCases := []struct {
		name              string
		force             bool
		profileContents   *string
		buildInfoContents *string
		expectedConfigure bool
		expectError       bool
	}{
		{
			name:              "forced",
			force:             true,
			expectedConfigure: true,
		},
		{
			name:              "no_build_info",
			profileContents:   stringPointer(testProfileContentsConstant),
			expectedConfigure: true,
		},
		{
			name:              "profile_contained_in_build_info",
			profileContents:   stringPointer(testProfileContentsConstant),
			buildInfoContents: stringPointer(testMatchingBuildInfoContentsConstant),
			expectedConfigure: false,
		},
		{
			name:              "profile_differs_from_build_info",
			profileContents:   stringPointer(testProfileContentsConstant),
			buildInfoContents: stringPointer(testOtherBuildInfoContentsConstant),
			expectedConfigure: true,
		},
		{
			name:              "missing_profile_with_build_info",
			buildInfoContents: stringPointer(testMatchingBuildInfoContentsConstant),
			expectError:       true,
		},
		{
			name:              "missing_profile_without_build_info",
			expectedConfigure: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			workspace := testInstance.TempDir()
			profilePath := filepath.Join(workspace, "profiles", "clang60-debug")
			buildInfoPath := filepath.Join(workspace, "build", "conaninfo.txt")
			writeOptionalFile(testInstance, profilePath, testCase.profileContents)
			writeOptionalFile(testInstance, buildInfoPath, testCase.buildInfoContents)

			configure, decisionError := build.ShouldConfigure(filesystem.OSFileSystem{}, testCase.force, profilePath, buildInfoPath)
			if testCase.expectError {
				require.Error(testInstance, decisionError)
				require.ErrorIs(testInstance, decisionError, os.ErrNotExist)
				return
			}
			require.NoError(testInstance, decisionError)
			require.Equal(testInstance, testCase.expectedConfigure, configure)
		})
	}
}

func stringPointer(value string) *string {
	return &value
}

func writeOptionalFile(testInstance *testing.T, path string, contents *string) {
	testInstance.Helper()
	if contents == nil {
		return
	}
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(testInstance, os.WriteFile(path, []byte(*contents), 0o644))
}
