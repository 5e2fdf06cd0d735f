package permalink_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/ghlink/internal/githubremote"
	"github.com/temirov/ghlink/internal/gitrepo"
	"github.com/temirov/ghlink/internal/permalink"
)

const (
	testMainReferenceConstant = "refs/heads/main"
	testOriginRemoteConstant  = "git@github.com:acme/widgets.git"
	testSourceFileConstant    = "src/a.ts"
	testSourceContentConstant = "one\ntwo\nthree\nfour\n"
)

type repositoryFixture struct {
	workingRoot string
	filePath    string
}

func newRepositoryFixture(testInstance *testing.T, configContent string) repositoryFixture {
	testInstance.Helper()
	workingRoot := testInstance.TempDir()
	metadataPath := filepath.Join(workingRoot, ".git")

	writeFixtureFile(testInstance, filepath.Join(metadataPath, "HEAD"), "ref: "+testMainReferenceConstant+"\n")
	writeFixtureFile(testInstance, filepath.Join(metadataPath, "refs", "heads", "main"), testCommitConstant+"\n")
	writeFixtureFile(testInstance, filepath.Join(metadataPath, "config"), configContent)

	filePath := filepath.Join(workingRoot, filepath.FromSlash(testSourceFileConstant))
	writeFixtureFile(testInstance, filePath, testSourceContentConstant)
	return repositoryFixture{workingRoot: workingRoot, filePath: filePath}
}

func writeFixtureFile(testInstance *testing.T, path string, content string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(testInstance, os.WriteFile(path, []byte(content), 0o644))
}

func newTestService(testInstance *testing.T, logger *zap.Logger) *permalink.Service {
	testInstance.Helper()
	service, serviceError := permalink.NewService(permalink.ServiceDependencies{
		Normalizer: githubremote.NewNormalizer(githubremote.NormalizerDependencies{Logger: logger}),
		Logger:     logger,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func TestServiceResolvesSingleLinePermalink(testInstance *testing.T) {
	fixture := newRepositoryFixture(
		testInstance,
		"[remote \"origin\"]\n\turl = "+testOriginRemoteConstant+"\n[branch \"main\"]\n\tremote = origin\n\tmerge = "+testMainReferenceConstant+"\n",
	)
	core, recorded := observer.New(zapcore.DebugLevel)
	service := newTestService(testInstance, zap.New(core))

	selection, selectionError := permalink.NewSelectionRange(3, 3, permalink.CountLines(testSourceContentConstant))
	require.NoError(testInstance, selectionError)

	result, resolveError := service.Resolve(context.Background(), permalink.Request{FilePath: fixture.filePath, Selection: selection})
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, testBlobURLConstant+"#L3", result.URL)
	require.Equal(testInstance, testRepositoryURLConstant, result.RepositoryURL)
	require.Equal(testInstance, testCommitConstant, result.CommitSHA)
	require.Equal(testInstance, testSourceFileConstant, result.RelativePath)
	require.Equal(testInstance, "origin", result.RemoteName)
	require.Empty(testInstance, result.Notices)

	require.Equal(testInstance, 1, recorded.FilterMessage("permalink composed").Len())
}

func TestServiceReportsFirstRemoteNotice(testInstance *testing.T) {
	fixture := newRepositoryFixture(testInstance, "[remote \"origin\"]\n\turl = "+testOriginRemoteConstant+"\n")
	service := newTestService(testInstance, nil)

	result, resolveError := service.Resolve(context.Background(), permalink.Request{
		FilePath:  fixture.filePath,
		Selection: permalink.WholeFile(permalink.CountLines(testSourceContentConstant)),
	})
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, testBlobURLConstant, result.URL)
	require.Len(testInstance, result.Notices, 1)
	require.Contains(testInstance, result.Notices[0], "origin")
}

func TestServicePropagatesPipelineErrors(testInstance *testing.T) {
	testInstance.Run("unrecognized_remote", func(testInstance *testing.T) {
		fixture := newRepositoryFixture(testInstance, "[remote \"origin\"]\n\turl = /srv/git/widgets\n")
		service := newTestService(testInstance, nil)

		_, resolveError := service.Resolve(context.Background(), permalink.Request{FilePath: fixture.filePath, Selection: permalink.WholeFile(5)})
		var formatError githubremote.UnrecognizedRemoteFormatError
		require.True(testInstance, errors.As(resolveError, &formatError))
	})

	testInstance.Run("missing_branch_ref", func(testInstance *testing.T) {
		fixture := newRepositoryFixture(testInstance, "[remote \"origin\"]\n\turl = "+testOriginRemoteConstant+"\n")
		require.NoError(testInstance, os.Remove(filepath.Join(fixture.workingRoot, ".git", "refs", "heads", "main")))
		service := newTestService(testInstance, nil)

		_, resolveError := service.Resolve(context.Background(), permalink.Request{FilePath: fixture.filePath, Selection: permalink.WholeFile(5)})
		require.ErrorIs(testInstance, resolveError, gitrepo.ErrDetachedOrMissingRef)
	})

	testInstance.Run("empty_file_path", func(testInstance *testing.T) {
		service := newTestService(testInstance, nil)
		_, resolveError := service.Resolve(context.Background(), permalink.Request{FilePath: "  "})
		require.ErrorIs(testInstance, resolveError, permalink.ErrNoActiveSelection)
	})
}

func TestNewServiceRequiresNormalizer(testInstance *testing.T) {
	_, serviceError := permalink.NewService(permalink.ServiceDependencies{})
	require.ErrorIs(testInstance, serviceError, permalink.ErrNormalizerNotConfigured)
}
