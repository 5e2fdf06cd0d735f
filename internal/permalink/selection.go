package permalink

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	invalidSelectionTemplateConstant = "invalid selection %d-%d for a file with %d lines"
	invalidLineTemplateConstant      = "invalid line number %q: %w"
	emptyTargetMessageConstant       = "empty target"
	wrappedDetailTemplateConstant    = "%w: %s"
)

var lineSpanPattern = regexp.MustCompile(`:(\d+)(?:-(\d+))?$`)

// SelectionRange is a 1-based inclusive line selection within a file of TotalLines lines.
type SelectionRange struct {
	StartLine  int
	EndLine    int
	TotalLines int
}

// InvalidSelectionError indicates line numbers outside the document.
type InvalidSelectionError struct {
	StartLine  int
	EndLine    int
	TotalLines int
}

// Error describes the invalid selection.
func (selectionError InvalidSelectionError) Error() string {
	return fmt.Sprintf(invalidSelectionTemplateConstant, selectionError.StartLine, selectionError.EndLine, selectionError.TotalLines)
}

// NewSelectionRange validates a 1-based inclusive selection.
func NewSelectionRange(startLine int, endLine int, totalLines int) (SelectionRange, error) {
	if startLine < 1 || endLine < startLine || totalLines < 1 || endLine > totalLines {
		return SelectionRange{}, InvalidSelectionError{StartLine: startLine, EndLine: endLine, TotalLines: totalLines}
	}
	return SelectionRange{StartLine: startLine, EndLine: endLine, TotalLines: totalLines}, nil
}

// FromZeroBased converts editor 0-based line positions into a SelectionRange.
func FromZeroBased(startLine int, endLine int, totalLines int) (SelectionRange, error) {
	return NewSelectionRange(startLine+1, endLine+1, totalLines)
}

// WholeFile selects every line of a file.
func WholeFile(totalLines int) SelectionRange {
	if totalLines < 1 {
		totalLines = 1
	}
	return SelectionRange{StartLine: 1, EndLine: totalLines, TotalLines: totalLines}
}

// CoversWholeFile reports whether the selection spans the entire document.
func (selection SelectionRange) CoversWholeFile() bool {
	return selection.StartLine == 1 && selection.EndLine == selection.TotalLines
}

// Target is a parsed `<path>[:LINE[-LINE]]` argument. Line numbers are zero when absent.
type Target struct {
	Path      string
	StartLine int
	EndLine   int
}

// HasLines reports whether the target names a line span.
func (target Target) HasLines() bool {
	return target.StartLine > 0 || target.EndLine > 0
}

// ParseTarget splits an optional `:LINE` or `:LO-HI` suffix from a file path.
func ParseTarget(argument string) (Target, error) {
	trimmedArgument := strings.TrimSpace(argument)
	if len(trimmedArgument) == 0 {
		return Target{}, fmt.Errorf(wrappedDetailTemplateConstant, ErrNoActiveSelection, emptyTargetMessageConstant)
	}

	matchIndexes := lineSpanPattern.FindStringSubmatchIndex(trimmedArgument)
	if matchIndexes == nil {
		return Target{Path: trimmedArgument}, nil
	}

	target := Target{Path: trimmedArgument[:matchIndexes[0]]}
	startValue := trimmedArgument[matchIndexes[2]:matchIndexes[3]]
	startLine, startError := strconv.Atoi(startValue)
	if startError != nil {
		return Target{}, fmt.Errorf(invalidLineTemplateConstant, startValue, startError)
	}
	target.StartLine = startLine
	target.EndLine = startLine

	if matchIndexes[4] >= 0 {
		endValue := trimmedArgument[matchIndexes[4]:matchIndexes[5]]
		endLine, endError := strconv.Atoi(endValue)
		if endError != nil {
			return Target{}, fmt.Errorf(invalidLineTemplateConstant, endValue, endError)
		}
		target.EndLine = endLine
	}

	return target, nil
}

// CountLines returns the line count an editor reports for content.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}
