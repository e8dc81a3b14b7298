// Package execshell provides structured helpers for invoking the git executable.
//
// ShellExecutor wraps a CommandRunner with zap logging and typed failures, and
// OSCommandRunner supplies the default os/exec based runner. The git CLI
// repository backend uses these types so it can be tested without spawning
// processes.
package execshell
