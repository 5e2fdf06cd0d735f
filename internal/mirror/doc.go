// Package mirror recovers the original upstream URL of repositories served
// from an internally proxied mirror namespace.
//
// Client queries the lookup service over HTTP and Cache memoizes the answers
// for the lifetime of the process.
package mirror
