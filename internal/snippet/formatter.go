package snippet

import (
	"errors"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	codeFenceConstant                  = "```"
	lineSeparatorConstant              = "\n"
	languageLineSeparatorConstant      = "="
	fallbackLanguageConstant           = "plaintext"
	permalinkRequiredMessageConstant   = "permalink required to render a snippet"
	startLineRequiredMessageConstant   = "snippet start line must be positive"
	hacknoteLinkTemplateOpenConstant   = " ["
	hacknoteLinkTemplateMiddleConstant = "]("
	hacknoteLinkTemplateCloseConstant  = ")"
)

var (
	// ErrPermalinkRequired indicates the snippet has no link to reference.
	ErrPermalinkRequired = errors.New(permalinkRequiredMessageConstant)
	// ErrStartLineRequired indicates the snippet has no 1-based start line.
	ErrStartLineRequired = errors.New(startLineRequiredMessageConstant)
)

// Snippet holds everything rendered into a Markdown snippet.
type Snippet struct {
	Permalink string
	FilePath  string
	Language  string
	StartLine int
	Text      string
}

// Format renders snippet in dialect.
func Format(dialect Dialect, snippet Snippet) (string, error) {
	if len(strings.TrimSpace(snippet.Permalink)) == 0 {
		return "", ErrPermalinkRequired
	}
	if snippet.StartLine < 1 {
		return "", ErrStartLineRequired
	}

	language := strings.TrimSpace(snippet.Language)
	if len(language) == 0 {
		language = LanguageForPath(snippet.FilePath)
	}
	openingFence := codeFenceConstant + language + languageLineSeparatorConstant + strconv.Itoa(snippet.StartLine)
	body := snippet.Text + lineSeparatorConstant + codeFenceConstant

	var builder strings.Builder
	switch dialect {
	case DialectHacknote:
		builder.WriteString(openingFence)
		builder.WriteString(hacknoteLinkTemplateOpenConstant)
		builder.WriteString(baseName(snippet.FilePath))
		builder.WriteString(hacknoteLinkTemplateMiddleConstant)
		builder.WriteString(snippet.Permalink)
		builder.WriteString(hacknoteLinkTemplateCloseConstant)
	case DialectStandard, "":
		builder.WriteString(snippet.Permalink)
		builder.WriteString(lineSeparatorConstant + lineSeparatorConstant)
		builder.WriteString(openingFence)
	default:
		return "", UnsupportedDialectError{Value: string(dialect)}
	}
	builder.WriteString(lineSeparatorConstant)
	builder.WriteString(body)
	return builder.String(), nil
}

func baseName(filePath string) string {
	return path.Base(filepath.ToSlash(strings.ReplaceAll(filePath, `\`, "/")))
}

// ExtractLines returns lines startLine through endLine (1-based, inclusive) of content.
// Bounds are clamped to the available lines.
func ExtractLines(content string, startLine int, endLine int) string {
	lines := strings.Split(content, lineSeparatorConstant)
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine-1:endLine], lineSeparatorConstant)
}
