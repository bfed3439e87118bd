//go:build unix

package cli

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInterruptibleContextCancelsOnInterrupt(testInstance *testing.T) {
	executionContext, stopSignals := newInterruptibleContext(context.Background())
	defer stopSignals()

	require.NoError(testInstance, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-executionContext.Done():
		require.ErrorIs(testInstance, executionContext.Err(), context.Canceled)
	case <-time.After(5 * time.Second):
		testInstance.Fatal("context was not cancelled by the interrupt")
	}
}
