// Package cli constructs the git-epoch command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging
// primitives.
package cli
