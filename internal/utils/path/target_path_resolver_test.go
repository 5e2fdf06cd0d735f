package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/ghlink/internal/utils/path"
)

const (
	testHomeDirectoryConstant         = "/home/linker"
	testWorkingDirectoryConstant      = "/work"
	targetPathSubtestTemplateConstant = "%d_%s"
)

var errTestHomeUnset = errors.New("HOME is not defined")

func fixedDirectory(directory string) pathutils.DirectoryProvider {
	return func() (string, error) {
		return directory, nil
	}
}

func missingDirectory() (string, error) {
	return "", errTestHomeUnset
}

func TestTargetPathResolverResolve(testInstance *testing.T) {
	resolver := pathutils.NewTargetPathResolver(fixedDirectory(testHomeDirectoryConstant), fixedDirectory(testWorkingDirectoryConstant))

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "absolute", input: "/srv/app/src/a.ts", expected: "/srv/app/src/a.ts"},
		{name: "absolute_uncleaned", input: "/srv/app/src/../lib/b.go", expected: "/srv/app/lib/b.go"},
		{name: "home_shortcut", input: " ~/src/a.ts ", expected: filepath.Join(testHomeDirectoryConstant, "src", "a.ts")},
		{name: "home_alone", input: "~", expected: testHomeDirectoryConstant},
		{name: "relative", input: "src/../src/a.ts", expected: filepath.Join(testWorkingDirectoryConstant, "src", "a.ts")},
		{name: "other_user_is_relative", input: "~other/x", expected: filepath.Join(testWorkingDirectoryConstant, "~other", "x")},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(targetPathSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.input)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expected, resolvedPath)
		})
	}

	_, emptyError := resolver.Resolve("   ")
	require.ErrorIs(testInstance, emptyError, pathutils.ErrTargetPathRequired)
}

func TestTargetPathResolverReportsUnavailableHome(testInstance *testing.T) {
	resolver := pathutils.NewTargetPathResolver(missingDirectory, fixedDirectory(testWorkingDirectoryConstant))

	_, resolveError := resolver.Resolve("~/src/a.ts")
	var unavailableError pathutils.HomeDirectoryUnavailableError
	require.ErrorAs(testInstance, resolveError, &unavailableError)
	require.Equal(testInstance, "~/src/a.ts", unavailableError.Path)
	require.ErrorIs(testInstance, resolveError, errTestHomeUnset)

	resolvedPath, relativeError := resolver.Resolve("src/a.ts")
	require.NoError(testInstance, relativeError)
	require.Equal(testInstance, filepath.Join(testWorkingDirectoryConstant, "src", "a.ts"), resolvedPath)
}

func TestTargetPathResolverResolveSearchDirectories(testInstance *testing.T) {
	searchDirectories := []string{".", "~/.ghlink"}

	withHome := pathutils.NewTargetPathResolver(fixedDirectory(testHomeDirectoryConstant), fixedDirectory(testWorkingDirectoryConstant))
	require.Equal(testInstance,
		[]string{testWorkingDirectoryConstant, filepath.Join(testHomeDirectoryConstant, ".ghlink")},
		withHome.ResolveSearchDirectories(searchDirectories),
	)

	withoutHome := pathutils.NewTargetPathResolver(missingDirectory, fixedDirectory(testWorkingDirectoryConstant))
	require.Equal(testInstance, []string{testWorkingDirectoryConstant}, withoutHome.ResolveSearchDirectories(searchDirectories))
}
