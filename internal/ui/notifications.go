package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LinkCopiedMessage confirms a permalink reached the clipboard.
	LinkCopiedMessage = "GitHub URL copied to the clipboard!"
	// SnippetCopiedMessage confirms a Markdown snippet reached the clipboard.
	SnippetCopiedMessage = "GitHub URL and code copied to the clipboard!"

	progressFinishedTemplateConstant = "%s done in %s"
	unknownFailureMessageConstant    = "unknown error"
)

// NotificationFormatter builds human-readable messages for permalink outcomes.
type NotificationFormatter struct{}

// BuildFailureMessage extracts the user-facing text of failure.
func (formatter NotificationFormatter) BuildFailureMessage(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	failureMessage := strings.TrimSpace(failure.Error())
	if len(failureMessage) == 0 {
		return unknownFailureMessageConstant
	}
	return failureMessage
}

// BuildProgressTitle trims title for display.
func (formatter NotificationFormatter) BuildProgressTitle(title string) string {
	return strings.TrimSpace(title)
}

// reportedError marks a failure a ConsoleNotifier has already shown to the user.
type reportedError struct {
	cause error
}

func (failure reportedError) Error() string {
	return failure.cause.Error()
}

func (failure reportedError) Unwrap() error {
	return failure.cause
}

// WasReported reports whether failure was already rendered by a ConsoleNotifier, so callers
// at the process boundary can avoid printing it a second time.
func WasReported(failure error) bool {
	var reported reportedError
	return errors.As(failure, &reported)
}

// ConsoleNotifier renders notifications using a zap logger configured for human-readable output
// and draws progress indicators through a ConsoleWriter.
type ConsoleNotifier struct {
	logger         *zap.Logger
	progressWriter *ConsoleWriter
	formatter      NotificationFormatter
	clock          func() time.Time
}

// NewConsoleNotifier constructs a notifier backed by logger. A nil progressOutput disables progress output.
// Passing the ConsoleWriter the console logger writes to keeps progress and notifications from interleaving.
func NewConsoleNotifier(logger *zap.Logger, progressOutput io.Writer) *ConsoleNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleNotifier{logger: logger, progressWriter: NewConsoleWriter(progressOutput), formatter: NotificationFormatter{}, clock: time.Now}
}

// Info reports a successful outcome.
func (notifier *ConsoleNotifier) Info(message string) {
	if notifier == nil {
		return
	}
	notifier.logger.Info(message)
}

// Notice reports a non-fatal condition the user should know about.
func (notifier *ConsoleNotifier) Notice(message string) {
	if notifier == nil {
		return
	}
	notifier.logger.Warn(message)
}

// Error reports failure and returns it for propagation. The returned error still matches failure with
// errors.Is and errors.As, and WasReported recognizes it when the message reached an enabled logger.
func (notifier *ConsoleNotifier) Error(failure error) error {
	if notifier == nil || failure == nil {
		return failure
	}
	notifier.logger.Error(notifier.formatter.BuildFailureMessage(failure))
	if !notifier.logger.Core().Enabled(zapcore.ErrorLevel) {
		return failure
	}
	return reportedError{cause: failure}
}

// Begin prints title and returns a function that marks the operation finished.
func (notifier *ConsoleNotifier) Begin(title string) func() {
	if notifier == nil || notifier.progressWriter == nil {
		return func() {}
	}
	progressTitle := notifier.formatter.BuildProgressTitle(title)
	startedAt := notifier.clock()
	notifier.writeProgress(progressTitle)

	var finishOnce sync.Once
	return func() {
		finishOnce.Do(func() {
			elapsed := notifier.clock().Sub(startedAt).Round(time.Millisecond)
			notifier.writeProgress(fmt.Sprintf(progressFinishedTemplateConstant, progressTitle, elapsed))
		})
	}
}

func (notifier *ConsoleNotifier) writeProgress(text string) {
	_ = notifier.progressWriter.WriteLine(text)
}
