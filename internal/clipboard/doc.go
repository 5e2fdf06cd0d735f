// Package clipboard places rendered links and snippets on the system clipboard.
package clipboard
