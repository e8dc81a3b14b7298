package utils

import (
	"io"
	"sync"
)

const lineTerminatorConstant = '\n'

type flusher interface {
	Flush() error
}

// ConsoleWriter forwards output to a terminal-facing writer, flushing buffered destinations after every write
// so prompts appear before input is read. It remembers whether the last write left a partial line.
type ConsoleWriter struct {
	destination io.Writer
	mutex       sync.Mutex
	partialLine bool
}

// NewConsoleWriter wraps destination. A destination that is already a ConsoleWriter is returned as is.
func NewConsoleWriter(destination io.Writer) *ConsoleWriter {
	if existing, isConsoleWriter := destination.(*ConsoleWriter); isConsoleWriter {
		return existing
	}
	return &ConsoleWriter{destination: destination}
}

func (consoleWriter *ConsoleWriter) Write(data []byte) (int, error) {
	consoleWriter.mutex.Lock()
	defer consoleWriter.mutex.Unlock()
	return consoleWriter.writeLocked(data)
}

// TerminateLine ends a pending partial line, such as an unanswered prompt, so following output starts on its own line.
func (consoleWriter *ConsoleWriter) TerminateLine() error {
	consoleWriter.mutex.Lock()
	defer consoleWriter.mutex.Unlock()
	if !consoleWriter.partialLine {
		return nil
	}
	_, writeError := consoleWriter.writeLocked([]byte{lineTerminatorConstant})
	return writeError
}

func (consoleWriter *ConsoleWriter) writeLocked(data []byte) (int, error) {
	if consoleWriter.destination == nil {
		return len(data), nil
	}

	bytesWritten, writeError := consoleWriter.destination.Write(data)
	if bytesWritten > 0 {
		consoleWriter.partialLine = data[bytesWritten-1] != lineTerminatorConstant
	}
	if writeError != nil {
		return bytesWritten, writeError
	}

	if bufferedDestination, isBuffered := consoleWriter.destination.(flusher); isBuffered {
		return bytesWritten, bufferedDestination.Flush()
	}
	return bytesWritten, nil
}

