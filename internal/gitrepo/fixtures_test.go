package gitrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghlink/internal/gitrepo"
)

const (
	testCommitHashConstant      = "0123456789abcdef0123456789abcdef01234567"
	testOtherCommitHashConstant = "89abcdef0123456789abcdef0123456789abcdef"
	testMainRefConstant         = "refs/heads/main"
)

// writeMetadataFile writes content to a path relative to metadataPath, creating parent directories.
func writeMetadataFile(testInstance *testing.T, metadataPath string, relativePath string, content string) {
	testInstance.Helper()
	targetPath := filepath.Join(metadataPath, filepath.FromSlash(relativePath))
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(targetPath), 0o755))
	require.NoError(testInstance, os.WriteFile(targetPath, []byte(content), 0o644))
}

// newMetadataLocation creates an empty .git directory and returns its ordinary location.
func newMetadataLocation(testInstance *testing.T) gitrepo.RepositoryLocation {
	testInstance.Helper()
	repositoryRoot := testInstance.TempDir()
	metadataPath := filepath.Join(repositoryRoot, ".git")
	require.NoError(testInstance, os.MkdirAll(metadataPath, 0o755))
	return gitrepo.RepositoryLocation{
		MetadataPath:       metadataPath,
		WorkingRoot:        repositoryRoot,
		CommonMetadataPath: metadataPath,
	}
}
