// Package editor locates the VS Code command-line interface, installs
// extensions through it, and updates workspace settings.
//
// The settings file is read as JSONC (VS Code allows comments and trailing
// commas in settings.json) and written back as plain JSON, preserving all
// keys the merge does not touch.
package editor
