package link

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/temirov/ghlink/internal/clipboard"
	"github.com/temirov/ghlink/internal/githubremote"
	"github.com/temirov/ghlink/internal/mirror"
	"github.com/temirov/ghlink/internal/permalink"
	"github.com/temirov/ghlink/internal/ui"
	pathutils "github.com/temirov/ghlink/internal/utils/path"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandDependencies enumerates collaborators shared by the link commands. Nil fields fall back to
// production implementations.
type CommandDependencies struct {
	// LoggerProvider supplies the diagnostic logger.
	LoggerProvider LoggerProvider
	// ConsoleLoggerProvider supplies the logger that renders user notifications.
	ConsoleLoggerProvider LoggerProvider
	// ProgressWriterProvider supplies the stream mirror lookup progress is written to. It should be the
	// stream the console logger writes to so notifications and progress lines interleave in order.
	ProgressWriterProvider func() io.Writer
	ConfigurationProvider  func() CommandConfiguration
	ClipboardWriter        clipboard.Writer
	HTTPClient             *http.Client
	// MirrorCache is shared across invocations so each mirror path is looked up once per process.
	MirrorCache  *mirror.Cache
	PathResolver *pathutils.TargetPathResolver
}

func (dependencies CommandDependencies) resolveConfiguration() CommandConfiguration {
	if dependencies.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return dependencies.ConfigurationProvider().sanitize()
}

func (dependencies CommandDependencies) resolveLogger() *zap.Logger {
	return resolveProvidedLogger(dependencies.LoggerProvider)
}

func (dependencies CommandDependencies) resolveConsoleLogger() *zap.Logger {
	return resolveProvidedLogger(dependencies.ConsoleLoggerProvider)
}

func resolveProvidedLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (dependencies CommandDependencies) resolveProgressWriter(fallback io.Writer) io.Writer {
	if dependencies.ProgressWriterProvider == nil {
		return fallback
	}
	if progressWriter := dependencies.ProgressWriterProvider(); progressWriter != nil {
		return progressWriter
	}
	return fallback
}

func (dependencies CommandDependencies) resolveClipboardWriter() clipboard.Writer {
	if dependencies.ClipboardWriter != nil {
		return dependencies.ClipboardWriter
	}
	return clipboard.SystemWriter{}
}

func (dependencies CommandDependencies) resolvePathResolver() *pathutils.TargetPathResolver {
	if dependencies.PathResolver != nil {
		return dependencies.PathResolver
	}
	return pathutils.NewTargetPathResolver(nil, nil)
}

func (dependencies CommandDependencies) buildService(configuration CommandConfiguration, logger *zap.Logger, notifier *ui.ConsoleNotifier) (*permalink.Service, error) {
	lookupClient, clientError := mirror.NewClient(mirror.ClientConfiguration{
		BaseURL:    configuration.Mirror.LookupBaseURL,
		Timeout:    configuration.Mirror.Timeout,
		HTTPClient: dependencies.HTTPClient,
	})
	if clientError != nil {
		return nil, clientError
	}

	normalizer := githubremote.NewNormalizer(githubremote.NormalizerDependencies{
		MirrorOrganization: configuration.Mirror.Organization,
		Lookup:             lookupClient,
		Cache:              dependencies.MirrorCache,
		Progress:           notifier,
		Logger:             logger,
	})

	return permalink.NewService(permalink.ServiceDependencies{
		Normalizer: normalizer,
		Logger:     logger,
	})
}
