// Package runner executes external commands to completion with output
// capture, per-command timeouts, and optional log files in the environment
// directory.
package runner
