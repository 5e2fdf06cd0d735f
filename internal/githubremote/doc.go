// Package githubremote turns git remote URLs into public GitHub repository URLs.
//
// Normalizer tries an ordered list of named strategies (already-canonical
// HTTPS, mirror lookup, scheme URLs on github.com, scp-like prefix stripping)
// and returns the first match.
package githubremote
