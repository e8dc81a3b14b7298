// Package utils exposes reusable helpers consumed by the git-epoch CLI.
//
// It houses ConfigurationLoader, which layers embedded defaults, configuration
// files and environment variables through Viper, LoggerFactory, which builds
// zap loggers in structured or console encodings, and ConsoleWriter for
// console output that must appear before an interactive prompt blocks.
package utils
