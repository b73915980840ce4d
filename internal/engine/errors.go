package engine

import "github.com/dstudies/nbenv/internal/sentinel"

// Sentinel errors for the fatal failure classes. Per-item failures (a
// single package, extension, or resource) are never represented by these;
// they live in the report's item results.
const (
	// ErrPythonTooOld is returned when the located interpreter is older
	// than the minimum supported version.
	ErrPythonTooOld = sentinel.Error("python version too old")

	// ErrEnvCreate is returned when virtual environment creation fails.
	// The documented recovery path is deleting the environment directory
	// and rerunning setup.
	ErrEnvCreate = sentinel.Error("virtual environment creation failed")

	// ErrKernelRegister is returned when Jupyter kernel registration fails.
	ErrKernelRegister = sentinel.Error("jupyter kernel registration failed")

	// ErrLockHeld is returned when the environment lock cannot be acquired,
	// typically because another bootstrap run is in progress.
	ErrLockHeld = sentinel.Error("environment lock held by another process")

	// ErrAlreadyRan is returned by Run when called a second time on the
	// same engine. Engines are single-use; construct a new one to rerun.
	ErrAlreadyRan = sentinel.Error("engine already ran")
)
