// Package cli constructs the ghlink command-line interface, wiring the Cobra
// command hierarchy, the Viper configuration loader with its embedded
// defaults, and the zap loggers used for diagnostics and user notifications.
package cli
