package utils_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/trackertools/internal/utils"
)

type recordingFlusher struct {
	bytes.Buffer
	flushCount int
}

func (flusher *recordingFlusher) Flush() error {
	flusher.flushCount++
	return nil
}

func TestStreamWritersFlushAfterEachChunk(testInstance *testing.T) {
	destination := &recordingFlusher{}
	writers := utils.NewStreamWriters(destination, destination)

	_, outputError := writers.Output.Write([]byte("[ 50%] Building CXX object src/tracker.cpp.o\n"))
	require.NoError(testInstance, outputError)
	_, errorOutputError := writers.Error.Write([]byte("warning: unused variable\n"))
	require.NoError(testInstance, errorOutputError)

	require.Equal(testInstance, "[ 50%] Building CXX object src/tracker.cpp.o\nwarning: unused variable\n", destination.String())
	require.Equal(testInstance, 2, destination.flushCount)
}

func TestStreamWritersKeepNilDestinations(testInstance *testing.T) {
	writers := utils.NewStreamWriters(nil, &bytes.Buffer{})
	require.Nil(testInstance, writers.Output)
	require.NotNil(testInstance, writers.Error)
}

func TestStreamWritersSerializeConcurrentChunks(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	writers := utils.NewStreamWriters(destination, destination)

	const chunkCount = 50
	waitGroup := sync.WaitGroup{}
	for _, target := range []struct {
		label  string
		writer func([]byte) (int, error)
	}{
		{label: "out", writer: writers.Output.Write},
		{label: "err", writer: writers.Error.Write},
	} {
		waitGroup.Add(1)
		go func(label string, write func([]byte) (int, error)) {
			defer waitGroup.Done()
			for chunkIndex := 0; chunkIndex < chunkCount; chunkIndex++ {
				_, _ = write([]byte(fmt.Sprintf("%s-%02d\n", label, chunkIndex)))
			}
		}(target.label, target.writer)
	}
	waitGroup.Wait()

	lines := strings.Split(strings.TrimSpace(destination.String()), "\n")
	require.Len(testInstance, lines, 2*chunkCount)
	for _, line := range lines {
		require.Regexp(testInstance, `^(out|err)-\d{2}$`, line)
	}
}
