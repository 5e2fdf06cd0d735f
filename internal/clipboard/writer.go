package clipboard

import (
	"fmt"

	systemclipboard "github.com/atotto/clipboard"
)

const (
	clipboardUnavailableTemplateConstant = "system clipboard unavailable: %w"
)

// Writer accepts text destined for the clipboard.
type Writer interface {
	Write(text string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(text string) error

// Write calls writerFunc(text).
func (writerFunc WriterFunc) Write(text string) error {
	return writerFunc(text)
}

// SystemWriter writes to the operating system clipboard.
type SystemWriter struct{}

// Write replaces the clipboard contents with text.
func (SystemWriter) Write(text string) error {
	if systemclipboard.Unsupported {
		return fmt.Errorf(clipboardUnavailableTemplateConstant, ErrUnsupported)
	}
	if writeError := systemclipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf(clipboardUnavailableTemplateConstant, writeError)
	}
	return nil
}
