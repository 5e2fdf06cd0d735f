// Package gitrepo reads repository metadata directly from disk.
//
// It exposes Locator for finding the .git entry that owns a file, including
// linked worktree redirection, RefResolver for turning the symbolic HEAD into
// a commit hash, and RemoteResolver for selecting the upstream remote URL
// from the repository configuration file.
package gitrepo
