package permalink

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	blobPathTemplateConstant         = "%s/blob/%s/%s"
	singleLineAnchorTemplateConstant = "%s#L%d"
	lineRangeAnchorTemplateConstant  = "%s#L%d-L%d"
	urlPathSeparatorConstant         = "/"
)

// ComposeLink renders the blob URL for relativePath at commitSHA with a line anchor.
func ComposeLink(repositoryURL string, commitSHA string, relativePath string, selection SelectionRange) string {
	absolutePathURL := fmt.Sprintf(blobPathTemplateConstant, strings.TrimSuffix(repositoryURL, urlPathSeparatorConstant), commitSHA, toURLPath(relativePath))

	switch {
	case selection.CoversWholeFile():
		return absolutePathURL
	case selection.StartLine == selection.EndLine:
		return fmt.Sprintf(singleLineAnchorTemplateConstant, absolutePathURL, selection.StartLine)
	default:
		return fmt.Sprintf(lineRangeAnchorTemplateConstant, absolutePathURL, selection.StartLine, selection.EndLine)
	}
}

func toURLPath(relativePath string) string {
	slashPath := strings.ReplaceAll(filepath.ToSlash(relativePath), `\`, urlPathSeparatorConstant)
	segments := strings.Split(strings.TrimPrefix(slashPath, urlPathSeparatorConstant), urlPathSeparatorConstant)
	for segmentIndex, segment := range segments {
		segments[segmentIndex] = url.PathEscape(segment)
	}
	return strings.Join(segments, urlPathSeparatorConstant)
}
