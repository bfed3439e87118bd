package utils

import (
	"io"
	"sync"
)

// StreamWriters carries the live destinations for an external tool's standard output and standard error.
type StreamWriters struct {
	Output io.Writer
	Error  io.Writer
}

type flusher interface {
	Flush() error
}

// NewStreamWriters wraps both destinations behind one lock so concurrent stdout and stderr chunks
// land whole, and flushes buffered destinations after every chunk. A nil destination stays nil.
func NewStreamWriters(output io.Writer, errorOutput io.Writer) StreamWriters {
	sharedLock := &sync.Mutex{}
	return StreamWriters{
		Output: newLockedFlushingWriter(output, sharedLock),
		Error:  newLockedFlushingWriter(errorOutput, sharedLock),
	}
}

type lockedFlushingWriter struct {
	destination io.Writer
	lock        *sync.Mutex
}

func newLockedFlushingWriter(destination io.Writer, lock *sync.Mutex) io.Writer {
	if destination == nil {
		return nil
	}
	return &lockedFlushingWriter{destination: destination, lock: lock}
}

func (writer *lockedFlushingWriter) Write(chunk []byte) (int, error) {
	writer.lock.Lock()
	defer writer.lock.Unlock()

	bytesWritten, writeError := writer.destination.Write(chunk)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if bufferedDestination, buffered := writer.destination.(flusher); buffered {
		return bytesWritten, bufferedDestination.Flush()
	}
	return bytesWritten, nil
}
