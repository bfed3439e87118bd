package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/trackertools/internal/utils"
)

func TestCommandContextAccessorRoundTrip(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, configurationPresent := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationPresent)

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/etc/tracker/config.yaml")
	executionContext = accessor.WithProjectRootOverride(executionContext, "/work/tracker")

	configurationFilePath, configurationPresent := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, configurationPresent)
	require.Equal(testInstance, "/etc/tracker/config.yaml", configurationFilePath)

	projectRoot, projectRootPresent := accessor.ProjectRootOverride(executionContext)
	require.True(testInstance, projectRootPresent)
	require.Equal(testInstance, "/work/tracker", projectRoot)
}
