package permalink

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ghlink/internal/gitrepo"
)

const (
	noActiveSelectionMessageConstant  = "no selected file"
	normalizerMissingMessageConstant  = "remote normalizer not configured"
	relativePathErrorTemplateConstant = "unable to compute path of %s relative to %s: %w"
	absolutePathErrorTemplateConstant = "unable to resolve absolute path for %s: %w"
	repositoryLocatedMessageConstant  = "repository located"
	referenceResolvedMessageConstant  = "reference resolved"
	remoteSelectedMessageConstant     = "remote selected"
	permalinkComposedMessageConstant  = "permalink composed"
	logFieldFilePathConstant          = "file_path"
	logFieldWorkingRootConstant       = "working_root"
	logFieldMetadataPathConstant      = "metadata_path"
	logFieldWorktreeConstant          = "worktree"
	logFieldReferenceConstant         = "reference"
	logFieldCommitConstant            = "commit"
	logFieldDetachedConstant          = "detached"
	logFieldRemoteNameConstant        = "remote_name"
	logFieldRemoteURLConstant         = "remote_url"
	logFieldRemoteStrategyConstant    = "remote_strategy"
	logFieldPermalinkConstant         = "permalink"
)

// ErrNoActiveSelection indicates no file was provided to link to.
var ErrNoActiveSelection = errors.New(noActiveSelectionMessageConstant)

// ErrNormalizerNotConfigured indicates the remote normalizer dependency was missing.
var ErrNormalizerNotConfigured = errors.New(normalizerMissingMessageConstant)

// RepositoryLocator finds repository metadata for a file.
type RepositoryLocator interface {
	Locate(filePath string) (gitrepo.RepositoryLocation, error)
}

// ReferenceResolver resolves the checked-out commit.
type ReferenceResolver interface {
	Resolve(location gitrepo.RepositoryLocation) (gitrepo.ResolvedRef, error)
}

// RemoteSelector selects the upstream remote of the checkout.
type RemoteSelector interface {
	Resolve(location gitrepo.RepositoryLocation, reference gitrepo.ResolvedRef) (gitrepo.RemoteSelection, error)
}

// RemoteNormalizer converts remote URLs into public GitHub repository URLs.
type RemoteNormalizer interface {
	Normalize(executionContext context.Context, remoteURL string) (string, error)
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	Locator           RepositoryLocator
	ReferenceResolver ReferenceResolver
	RemoteSelector    RemoteSelector
	Normalizer        RemoteNormalizer
	Logger            *zap.Logger
}

// Request identifies the selection to link to.
type Request struct {
	FilePath  string
	Selection SelectionRange
}

// Result captures a resolved permalink and the facts it was built from.
type Result struct {
	URL           string
	RepositoryURL string
	CommitSHA     string
	RelativePath  string
	RemoteName    string
	// Notices carries non-fatal messages worth surfacing to the user.
	Notices []string
}

// Service resolves permalinks for file selections.
type Service struct {
	locator           RepositoryLocator
	referenceResolver ReferenceResolver
	remoteSelector    RemoteSelector
	normalizer        RemoteNormalizer
	logger            *zap.Logger
}

// NewService constructs a Service, defaulting repository readers to the operating system filesystem.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Normalizer == nil {
		return nil, ErrNormalizerNotConfigured
	}

	service := &Service{
		locator:           dependencies.Locator,
		referenceResolver: dependencies.ReferenceResolver,
		remoteSelector:    dependencies.RemoteSelector,
		normalizer:        dependencies.Normalizer,
		logger:            dependencies.Logger,
	}
	if service.locator == nil {
		service.locator = gitrepo.NewLocator(nil)
	}
	if service.referenceResolver == nil {
		service.referenceResolver = gitrepo.NewRefResolver(nil)
	}
	if service.remoteSelector == nil {
		service.remoteSelector = gitrepo.NewRemoteResolver(nil)
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service, nil
}

// Resolve runs the resolution pipeline for request and composes the permalink.
func (service *Service) Resolve(executionContext context.Context, request Request) (Result, error) {
	trimmedFilePath := strings.TrimSpace(request.FilePath)
	if len(trimmedFilePath) == 0 {
		return Result{}, ErrNoActiveSelection
	}

	absoluteFilePath, absoluteError := filepath.Abs(trimmedFilePath)
	if absoluteError != nil {
		return Result{}, fmt.Errorf(absolutePathErrorTemplateConstant, trimmedFilePath, absoluteError)
	}

	location, locateError := service.locator.Locate(absoluteFilePath)
	if locateError != nil {
		return Result{}, locateError
	}
	service.logger.Debug(
		repositoryLocatedMessageConstant,
		zap.String(logFieldFilePathConstant, absoluteFilePath),
		zap.String(logFieldWorkingRootConstant, location.WorkingRoot),
		zap.String(logFieldMetadataPathConstant, location.CommonMetadataPath),
		zap.Bool(logFieldWorktreeConstant, location.IsWorktree),
	)

	relativePath, relativeError := filepath.Rel(location.WorkingRoot, absoluteFilePath)
	if relativeError != nil {
		return Result{}, fmt.Errorf(relativePathErrorTemplateConstant, absoluteFilePath, location.WorkingRoot, relativeError)
	}

	reference, referenceError := service.referenceResolver.Resolve(location)
	if referenceError != nil {
		return Result{}, referenceError
	}
	service.logger.Debug(
		referenceResolvedMessageConstant,
		zap.String(logFieldReferenceConstant, reference.SymbolicName.String()),
		zap.String(logFieldCommitConstant, reference.CommitSHA),
		zap.Bool(logFieldDetachedConstant, reference.Detached),
	)

	remote, remoteError := service.remoteSelector.Resolve(location, reference)
	if remoteError != nil {
		return Result{}, remoteError
	}
	service.logger.Debug(
		remoteSelectedMessageConstant,
		zap.String(logFieldRemoteNameConstant, remote.Name),
		zap.String(logFieldRemoteURLConstant, remote.URL),
		zap.String(logFieldRemoteStrategyConstant, remote.Strategy),
	)

	repositoryURL, normalizeError := service.normalizer.Normalize(executionContext, remote.URL)
	if normalizeError != nil {
		return Result{}, normalizeError
	}

	result := Result{
		URL:           ComposeLink(repositoryURL, reference.CommitSHA, relativePath, request.Selection),
		RepositoryURL: repositoryURL,
		CommitSHA:     reference.CommitSHA,
		RelativePath:  filepath.ToSlash(relativePath),
		RemoteName:    remote.Name,
	}
	if len(remote.Notice) > 0 {
		result.Notices = append(result.Notices, remote.Notice)
	}

	service.logger.Debug(permalinkComposedMessageConstant, zap.String(logFieldPermalinkConstant, result.URL))
	return result, nil
}
