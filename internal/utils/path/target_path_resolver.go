package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	homeShortcutConstant                     = "~"
	targetPathRequiredMessageConstant        = "file path required"
	homeDirectoryUnavailableTemplateConstant = "unable to expand %s: home directory unavailable: %v"
	workingDirectoryErrorTemplateConstant    = "unable to resolve %s against the working directory: %w"
)

// ErrTargetPathRequired indicates an empty file path argument.
var ErrTargetPathRequired = errors.New(targetPathRequiredMessageConstant)

// DirectoryProvider reports a directory such as the user's home or the process working directory.
type DirectoryProvider func() (string, error)

// HomeDirectoryUnavailableError reports a tilde path that could not be expanded.
type HomeDirectoryUnavailableError struct {
	Path  string
	Cause error
}

func (failure HomeDirectoryUnavailableError) Error() string {
	return fmt.Sprintf(homeDirectoryUnavailableTemplateConstant, failure.Path, failure.Cause)
}

func (failure HomeDirectoryUnavailableError) Unwrap() error {
	return failure.Cause
}

// TargetPathResolver converts user-supplied paths into clean absolute paths.
type TargetPathResolver struct {
	homeDirectoryProvider    DirectoryProvider
	workingDirectoryProvider DirectoryProvider
}

// NewTargetPathResolver constructs a TargetPathResolver. Nil providers fall back to os.UserHomeDir and os.Getwd.
func NewTargetPathResolver(homeDirectoryProvider DirectoryProvider, workingDirectoryProvider DirectoryProvider) *TargetPathResolver {
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	return &TargetPathResolver{
		homeDirectoryProvider:    homeDirectoryProvider,
		workingDirectoryProvider: workingDirectoryProvider,
	}
}

// Resolve trims candidatePath, expands a leading "~" or "~/" and anchors relative paths at the working directory.
// "~user" forms are treated as ordinary relative names.
func (resolver *TargetPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", ErrTargetPathRequired
	}
	if resolver == nil {
		resolver = NewTargetPathResolver(nil, nil)
	}

	if remainder, isHomeRelative := homeRelativeRemainder(trimmedPath); isHomeRelative {
		homeDirectory, homeError := resolver.homeDirectoryProvider()
		if homeError == nil && len(homeDirectory) == 0 {
			homeError = os.ErrNotExist
		}
		if homeError != nil {
			return "", HomeDirectoryUnavailableError{Path: trimmedPath, Cause: homeError}
		}
		trimmedPath = filepath.Join(homeDirectory, remainder)
	}

	if filepath.IsAbs(trimmedPath) {
		return filepath.Clean(trimmedPath), nil
	}

	workingDirectory, workingDirectoryError := resolver.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, trimmedPath, workingDirectoryError)
	}
	return filepath.Join(workingDirectory, trimmedPath), nil
}

// ResolveSearchDirectories resolves configuration search directories in order, dropping entries that cannot be
// resolved, such as a home-relative directory when no home directory is known.
func (resolver *TargetPathResolver) ResolveSearchDirectories(candidates []string) []string {
	resolvedDirectories := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		resolvedDirectory, resolveError := resolver.Resolve(candidate)
		if resolveError != nil {
			continue
		}
		resolvedDirectories = append(resolvedDirectories, resolvedDirectory)
	}
	return resolvedDirectories
}

func homeRelativeRemainder(candidatePath string) (string, bool) {
	if candidatePath == homeShortcutConstant {
		return "", true
	}
	if !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return "", false
	}
	remainder := candidatePath[len(homeShortcutConstant):]
	if strings.HasPrefix(remainder, "/") || strings.HasPrefix(remainder, string(filepath.Separator)) {
		return remainder[1:], true
	}
	return "", false
}
