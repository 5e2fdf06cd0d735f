package gitrepo

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	dotGitEntryNameConstant                  = ".git"
	worktreeRedirectPrefixConstant           = "gitdir: "
	metadataStatErrorTemplateConstant        = "unable to inspect %s: %w"
	worktreeReadErrorTemplateConstant        = "unable to read worktree redirect %s: %w"
	filePathRequiredMessageConstant          = "file path must be provided"
	filePathAbsoluteErrorTemplateConstant    = "unable to resolve absolute path for %s: %w"
	commonDirectoryFileNameConstant          = "commondir"
	worktreesDirectoryNameConstant           = "worktrees"
	commonDirectoryReadErrorTemplateConstant = "unable to read %s: %w"
)

// ErrFilePathRequired indicates Locate was called without a file path.
var ErrFilePathRequired = errors.New(filePathRequiredMessageConstant)

// RepositoryLocation describes where the metadata of the repository owning a file lives.
type RepositoryLocation struct {
	// MetadataPath is the .git entry that was found; it is a directory for
	// ordinary checkouts and a redirect file for linked worktrees.
	MetadataPath string
	// WorkingRoot is the directory holding MetadataPath. Repository-relative
	// file paths are computed against it.
	WorkingRoot string
	// CommonMetadataPath holds refs and config. For linked worktrees it is named by
	// the worktree's commondir file.
	CommonMetadataPath   string
	IsWorktree           bool
	WorktreeMetadataPath string
}

// HeadDirectory returns the metadata directory whose HEAD describes the checkout.
func (location RepositoryLocation) HeadDirectory() string {
	if location.IsWorktree && len(location.WorktreeMetadataPath) > 0 {
		return location.WorktreeMetadataPath
	}
	return location.CommonMetadataPath
}

// Locator walks file paths upward until it finds repository metadata.
type Locator struct {
	fileSystem FileSystem
}

// NewLocator constructs a Locator reading through the provided filesystem.
func NewLocator(fileSystem FileSystem) *Locator {
	return &Locator{fileSystem: resolveFileSystem(fileSystem)}
}

// Locate finds the repository that owns filePath, starting at its containing directory.
func (locator *Locator) Locate(filePath string) (RepositoryLocation, error) {
	trimmedFilePath := strings.TrimSpace(filePath)
	if len(trimmedFilePath) == 0 {
		return RepositoryLocation{}, ErrFilePathRequired
	}

	absoluteFilePath, absoluteError := filepath.Abs(trimmedFilePath)
	if absoluteError != nil {
		return RepositoryLocation{}, fmt.Errorf(filePathAbsoluteErrorTemplateConstant, trimmedFilePath, absoluteError)
	}

	currentDirectory := filepath.Dir(absoluteFilePath)
	for {
		candidatePath := filepath.Join(currentDirectory, dotGitEntryNameConstant)
		candidateInfo, statError := locator.fileSystem.Stat(candidatePath)
		switch {
		case statError == nil:
			return locator.describeLocation(candidatePath, candidateInfo)
		case !errors.Is(statError, fs.ErrNotExist):
			return RepositoryLocation{}, fmt.Errorf(metadataStatErrorTemplateConstant, candidatePath, statError)
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return RepositoryLocation{}, ErrNotAGitRepository
		}
		currentDirectory = parentDirectory
	}
}

func (locator *Locator) describeLocation(metadataPath string, metadataInfo fs.FileInfo) (RepositoryLocation, error) {
	location := RepositoryLocation{
		MetadataPath:       metadataPath,
		WorkingRoot:        filepath.Dir(metadataPath),
		CommonMetadataPath: metadataPath,
	}

	if metadataInfo.IsDir() {
		return location, nil
	}

	worktreeMetadataPath, isRedirect, redirectError := locator.readWorktreeRedirect(metadataPath)
	if redirectError != nil {
		return RepositoryLocation{}, redirectError
	}
	if !isRedirect {
		return location, nil
	}

	commonMetadataPath, commonError := locator.resolveCommonMetadataPath(worktreeMetadataPath)
	if commonError != nil {
		return RepositoryLocation{}, commonError
	}

	location.IsWorktree = true
	location.WorktreeMetadataPath = worktreeMetadataPath
	location.CommonMetadataPath = commonMetadataPath
	return location, nil
}

// resolveCommonMetadataPath honours the commondir file git writes for linked worktrees. Without it,
// directories under "worktrees" share the metadata two levels up, and any other redirect target
// (submodules, --separate-git-dir) is a complete metadata directory of its own.
func (locator *Locator) resolveCommonMetadataPath(redirectedMetadataPath string) (string, error) {
	commonDirectoryPath := filepath.Join(redirectedMetadataPath, commonDirectoryFileNameConstant)
	content, readError := locator.fileSystem.ReadFile(commonDirectoryPath)
	switch {
	case readError == nil:
		commonMetadataPath := strings.TrimSpace(string(content))
		if len(commonMetadataPath) > 0 {
			if !filepath.IsAbs(commonMetadataPath) {
				commonMetadataPath = filepath.Join(redirectedMetadataPath, commonMetadataPath)
			}
			return filepath.Clean(commonMetadataPath), nil
		}
	case !errors.Is(readError, fs.ErrNotExist):
		return "", fmt.Errorf(commonDirectoryReadErrorTemplateConstant, commonDirectoryPath, readError)
	}

	if filepath.Base(filepath.Dir(redirectedMetadataPath)) == worktreesDirectoryNameConstant {
		return filepath.Dir(filepath.Dir(redirectedMetadataPath)), nil
	}
	return redirectedMetadataPath, nil
}

func (locator *Locator) readWorktreeRedirect(metadataPath string) (string, bool, error) {
	content, readError := locator.fileSystem.ReadFile(metadataPath)
	if readError != nil {
		return "", false, fmt.Errorf(worktreeReadErrorTemplateConstant, metadataPath, readError)
	}

	text := string(content)
	if !strings.HasPrefix(text, worktreeRedirectPrefixConstant) {
		return "", false, nil
	}

	target := strings.TrimSpace(strings.TrimPrefix(text, worktreeRedirectPrefixConstant))
	if len(target) == 0 {
		return "", false, nil
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(metadataPath), target)
	}
	return filepath.Clean(target), true, nil
}
