// Package permalink composes GitHub blob permalinks for file selections.
//
// Service runs the resolution pipeline (repository discovery, ref and remote
// resolution, remote normalization) and ComposeLink renders the final URL with
// the line anchor matching the selection shape.
package permalink
