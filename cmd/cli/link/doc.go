// Package link provides the Cobra commands that resolve GitHub permalinks for
// local files and copy them, optionally wrapped in Markdown, to the clipboard.
package link
