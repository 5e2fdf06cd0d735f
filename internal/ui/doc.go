// Package ui provides helpers for formatting human-readable console output.
//
// The helpers translate permalink outcomes into concise notifications so that
// CLI users get actionable feedback while detailed telemetry continues to flow
// through structured loggers. ConsoleWriter keeps notification and progress
// lines from interleaving on the shared terminal stream.
package ui
