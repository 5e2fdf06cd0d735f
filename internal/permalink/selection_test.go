package permalink_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghlink/internal/permalink"
)

func TestNewSelectionRangeValidation(testInstance *testing.T) {
	testCases := []struct {
		name       string
		startLine  int
		endLine    int
		totalLines int
		valid      bool
	}{
		{name: "valid_range", startLine: 3, endLine: 7, totalLines: 10, valid: true},
		{name: "valid_single", startLine: 10, endLine: 10, totalLines: 10, valid: true},
		{name: "zero_start", startLine: 0, endLine: 3, totalLines: 10},
		{name: "reversed", startLine: 5, endLine: 4, totalLines: 10},
		{name: "past_end", startLine: 5, endLine: 11, totalLines: 10},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(permalinkSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			selection, selectionError := permalink.NewSelectionRange(testCase.startLine, testCase.endLine, testCase.totalLines)
			if !testCase.valid {
				var typedError permalink.InvalidSelectionError
				require.True(testInstance, errors.As(selectionError, &typedError))
				return
			}
			require.NoError(testInstance, selectionError)
			require.Equal(testInstance, testCase.startLine, selection.StartLine)
			require.Equal(testInstance, testCase.endLine, selection.EndLine)
		})
	}
}

func TestFromZeroBased(testInstance *testing.T) {
	selection, selectionError := permalink.FromZeroBased(2, 2, 50)
	require.NoError(testInstance, selectionError)
	require.Equal(testInstance, permalink.SelectionRange{StartLine: 3, EndLine: 3, TotalLines: 50}, selection)

	wholeFile, wholeFileError := permalink.FromZeroBased(0, 49, 50)
	require.NoError(testInstance, wholeFileError)
	require.True(testInstance, wholeFile.CoversWholeFile())
}

func TestParseTarget(testInstance *testing.T) {
	testCases := []struct {
		name     string
		argument string
		expected permalink.Target
	}{
		{name: "path_only", argument: "src/a.ts", expected: permalink.Target{Path: "src/a.ts"}},
		{name: "single_line", argument: "src/a.ts:3", expected: permalink.Target{Path: "src/a.ts", StartLine: 3, EndLine: 3}},
		{name: "line_range", argument: "src/a.ts:3-9", expected: permalink.Target{Path: "src/a.ts", StartLine: 3, EndLine: 9}},
		{name: "colon_in_path", argument: "C:/work/a.ts:12", expected: permalink.Target{Path: "C:/work/a.ts", StartLine: 12, EndLine: 12}},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(permalinkSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			target, parseError := permalink.ParseTarget(testCase.argument)
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, target)
			require.Equal(testInstance, testCase.expected.StartLine > 0, target.HasLines())
		})
	}

	_, emptyError := permalink.ParseTarget("  ")
	require.ErrorIs(testInstance, emptyError, permalink.ErrNoActiveSelection)
}

func TestCountLines(testInstance *testing.T) {
	require.Equal(testInstance, 1, permalink.CountLines(""))
	require.Equal(testInstance, 2, permalink.CountLines("a\nb"))
	require.Equal(testInstance, 3, permalink.CountLines("a\nb\n"))
}
