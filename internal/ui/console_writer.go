package ui

import (
	"io"
	"sync"
)

const lineTerminatorConstant = "\n"

// ConsoleWriter serializes notifications and progress lines that share one terminal stream. It flushes
// buffered destinations after every write so a progress title is visible before a mirror lookup blocks.
type ConsoleWriter struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewConsoleWriter wraps destination. Wrapping a ConsoleWriter returns it unchanged and a nil destination yields nil.
func NewConsoleWriter(destination io.Writer) *ConsoleWriter {
	if destination == nil {
		return nil
	}
	if consoleWriter, alreadyWrapped := destination.(*ConsoleWriter); alreadyWrapped {
		return consoleWriter
	}
	return &ConsoleWriter{destination: destination}
}

// Write delegates to the destination and flushes it when it buffers output.
func (consoleWriter *ConsoleWriter) Write(data []byte) (int, error) {
	if consoleWriter == nil || consoleWriter.destination == nil {
		return 0, nil
	}

	consoleWriter.mutex.Lock()
	defer consoleWriter.mutex.Unlock()

	bytesWritten, writeError := consoleWriter.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	return bytesWritten, consoleWriter.flush()
}

// WriteLine writes text and a line terminator as a single write.
func (consoleWriter *ConsoleWriter) WriteLine(text string) error {
	_, writeError := consoleWriter.Write([]byte(text + lineTerminatorConstant))
	return writeError
}

// Sync lets zap loggers writing through the ConsoleWriter honour Logger.Sync.
func (consoleWriter *ConsoleWriter) Sync() error {
	if consoleWriter == nil || consoleWriter.destination == nil {
		return nil
	}

	consoleWriter.mutex.Lock()
	defer consoleWriter.mutex.Unlock()

	if flushError := consoleWriter.flush(); flushError != nil {
		return flushError
	}
	if syncer, implementsSync := consoleWriter.destination.(interface{ Sync() error }); implementsSync {
		return syncer.Sync()
	}
	return nil
}

func (consoleWriter *ConsoleWriter) flush() error {
	if flusher, implementsFlush := consoleWriter.destination.(interface{ Flush() error }); implementsFlush {
		return flusher.Flush()
	}
	return nil
}
