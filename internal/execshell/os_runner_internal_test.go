package execshell

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputCaptureRetainsTail(testInstance *testing.T) {
	testCases := []struct {
		name     string
		limit    int
		chunks   []string
		expected string
	}{
		{name: "unbounded", limit: 0, chunks: []string{"0123", "456789"}, expected: "0123456789"},
		{name: "within_limit", limit: 8, chunks: []string{"0123", "45"}, expected: "012345"},
		{name: "overflow_drops_head", limit: 4, chunks: []string{"012", "345"}, expected: "2345"},
		{name: "chunk_larger_than_limit", limit: 4, chunks: []string{"01", "23456789"}, expected: "6789"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			capture := &outputCapture{limit: testCase.limit}
			for _, chunk := range testCase.chunks {
				bytesWritten, writeError := capture.Write([]byte(chunk))
				require.NoError(testInstance, writeError)
				require.Equal(testInstance, len(chunk), bytesWritten)
			}
			require.Equal(testInstance, testCase.expected, capture.String())
		})
	}
}

func TestOSCommandRunnerBoundsOnlyStreamedOutput(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("sh"); lookupError != nil {
		testInstance.Skip("sh is not available")
	}
	runner := &OSCommandRunner{streamedCaptureLimit: 4}

	liveOutput := &bytes.Buffer{}
	streamedResult, streamedError := runner.Run(context.Background(), ShellCommand{
		Name:    CommandName("sh"),
		Details: CommandDetails{Arguments: []string{"-c", "printf 0123; printf 456789"}, OutputWriter: liveOutput},
	})
	require.NoError(testInstance, streamedError)
	require.Equal(testInstance, "0123456789", liveOutput.String())
	require.Equal(testInstance, "6789", streamedResult.StandardOutput)

	capturedResult, capturedError := runner.Run(context.Background(), ShellCommand{
		Name:    CommandName("sh"),
		Details: CommandDetails{Arguments: []string{"-c", "printf 'cmake_minimum_required(VERSION 3.10)'"}},
	})
	require.NoError(testInstance, capturedError)
	require.Equal(testInstance, "cmake_minimum_required(VERSION 3.10)", capturedResult.StandardOutput)
}
