package gitrepo

import (
	"errors"
	"fmt"
)

const (
	notAGitRepositoryMessageConstant      = "no .git dir found, is this a git repo?"
	detachedOrMissingRefMessageConstant   = "no ref found, cannot calculate current commit"
	malformedCommitMessageConstant        = "reference does not point to a valid commit hash"
	remoteNotFoundTemplateConstant        = "no remote found called %q"
	noRemotesConfiguredMessageConstant    = "no remote configured for repository"
	noURLConfiguredTemplateConstant       = "remote %q has no url configured"
	malformedCommitDetailTemplateConstant = "%w: %s (%q)"
	branchRemoteMissingTemplateConstant   = "branch %q tracks %s but names no remote"
)

// ErrNotAGitRepository indicates no .git entry exists between a file and the filesystem root.
var ErrNotAGitRepository = errors.New(notAGitRepositoryMessageConstant)

// ErrDetachedOrMissingRef indicates HEAD carries neither a symbolic ref nor a usable hash.
var ErrDetachedOrMissingRef = errors.New(detachedOrMissingRefMessageConstant)

// ErrMalformedCommit indicates a ref file exists but does not contain a commit hash.
var ErrMalformedCommit = errors.New(malformedCommitMessageConstant)

// RemoteNotFoundError indicates the selected remote has no configuration section.
type RemoteNotFoundError struct {
	Name string
}

// Error describes the missing remote.
func (remoteError RemoteNotFoundError) Error() string {
	if len(remoteError.Name) == 0 {
		return noRemotesConfiguredMessageConstant
	}
	return fmt.Sprintf(remoteNotFoundTemplateConstant, remoteError.Name)
}

// NoURLConfiguredError indicates the selected remote section lacks a url key.
type NoURLConfiguredError struct {
	Name string
}

// Error describes the remote without a url.
func (urlError NoURLConfiguredError) Error() string {
	return fmt.Sprintf(noURLConfiguredTemplateConstant, urlError.Name)
}

// BranchRemoteMissingError indicates the branch section tracking the checked-out ref has no remote key.
type BranchRemoteMissingError struct {
	Branch string
	Merge  string
}

// Error describes the incomplete branch section.
func (branchError BranchRemoteMissingError) Error() string {
	return fmt.Sprintf(branchRemoteMissingTemplateConstant, branchError.Branch, branchError.Merge)
}

func newMalformedCommitError(referenceName string, value string) error {
	return fmt.Errorf(malformedCommitDetailTemplateConstant, ErrMalformedCommit, referenceName, value)
}
