// Package utils exposes reusable helpers consumed by the CLI commands.
//
// It houses the ConfigurationLoader, which layers embedded defaults, a
// config.yaml file and GHLINK_ environment variables through Viper, and the
// LoggerFactory, which builds the diagnostic zap logger alongside the
// message-only console logger used for user notifications.
package utils
