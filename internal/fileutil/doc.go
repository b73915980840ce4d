// Package fileutil provides file operation utilities for directory and file management.
//
// EnsureDir creates directories recursively, and WriteFileAtomic writes files
// via temp-file-then-rename so concurrent readers never observe partial content.
// These are used throughout nbenv for preparing the environment directory,
// command log files, and editor settings.
package fileutil
