// Package snippet renders permalinks and selected source text as Markdown
// snippets in the standard and hacknote dialects.
package snippet
