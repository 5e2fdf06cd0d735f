// Package pathutils resolves the file paths and configuration directories users
// pass on the command line, expanding a leading home directory shortcut.
package pathutils
