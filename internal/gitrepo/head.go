package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	headFileNameConstant          = "HEAD"
	symbolicRefPrefixConstant     = "ref: "
	lineSeparatorConstant         = "\n"
	headReadErrorTemplateConstant = "unable to read HEAD in %s: %w"
	refReadErrorTemplateConstant  = "unable to read ref %s: %w"
	refNotFoundTemplateConstant   = "%w: %s is neither a loose nor a packed ref"
)

// ResolvedRef describes the commit currently checked out.
type ResolvedRef struct {
	SymbolicName plumbing.ReferenceName
	CommitSHA    string
	Detached     bool
}

// RefResolver resolves the symbolic HEAD of a repository to a commit hash.
type RefResolver struct {
	fileSystem FileSystem
}

// NewRefResolver constructs a RefResolver reading through the provided filesystem.
func NewRefResolver(fileSystem FileSystem) *RefResolver {
	return &RefResolver{fileSystem: resolveFileSystem(fileSystem)}
}

// Resolve reads HEAD from the checkout's metadata directory and follows its ref
// through the common metadata directory.
func (resolver *RefResolver) Resolve(location RepositoryLocation) (ResolvedRef, error) {
	headDirectory := location.HeadDirectory()
	headContent, headReadError := resolver.fileSystem.ReadFile(filepath.Join(headDirectory, headFileNameConstant))
	if headReadError != nil {
		return ResolvedRef{}, fmt.Errorf(headReadErrorTemplateConstant, headDirectory, headReadError)
	}

	referenceName, hasSymbolicRef := findSymbolicRef(string(headContent))
	if !hasSymbolicRef {
		return resolveDetachedHead(string(headContent))
	}

	commitSHA, commitError := resolver.readReference(location.CommonMetadataPath, referenceName)
	if commitError != nil {
		return ResolvedRef{}, commitError
	}

	return ResolvedRef{SymbolicName: referenceName, CommitSHA: commitSHA}, nil
}

func findSymbolicRef(headContent string) (plumbing.ReferenceName, bool) {
	for _, line := range strings.Split(headContent, lineSeparatorConstant) {
		if !strings.HasPrefix(line, symbolicRefPrefixConstant) {
			continue
		}
		referenceName := strings.TrimSpace(strings.TrimPrefix(line, symbolicRefPrefixConstant))
		if len(referenceName) == 0 {
			continue
		}
		return plumbing.ReferenceName(referenceName), true
	}
	return "", false
}

// resolveDetachedHead is a best-effort fallback for HEAD files holding a raw hash.
func resolveDetachedHead(headContent string) (ResolvedRef, error) {
	firstLine := strings.TrimSpace(strings.SplitN(headContent, lineSeparatorConstant, 2)[0])
	if !plumbing.IsHash(firstLine) {
		return ResolvedRef{}, ErrDetachedOrMissingRef
	}
	return ResolvedRef{CommitSHA: strings.ToLower(firstLine), Detached: true}, nil
}

// readReference resolves referenceName through go-git's filesystem storage, which reads loose refs
// before falling back to packed-refs.
func (resolver *RefResolver) readReference(commonMetadataPath string, referenceName plumbing.ReferenceName) (string, error) {
	referenceStorage := filesystem.NewStorage(osfs.New(commonMetadataPath), cache.NewObjectLRUDefault())
	reference, resolveError := storer.ResolveReference(referenceStorage, referenceName)
	switch {
	case errors.Is(resolveError, plumbing.ErrReferenceNotFound):
		return "", fmt.Errorf(refNotFoundTemplateConstant, ErrDetachedOrMissingRef, referenceName)
	case resolveError != nil:
		return "", fmt.Errorf(refReadErrorTemplateConstant, referenceName, resolveError)
	}

	if reference.Type() != plumbing.HashReference || reference.Hash().IsZero() {
		return "", newMalformedCommitError(referenceName.String(), reference.Strings()[1])
	}
	return reference.Hash().String(), nil
}
