package nbenv

import (
	"github.com/dstudies/nbenv/internal/editor"
	"github.com/dstudies/nbenv/internal/engine"
	"github.com/dstudies/nbenv/internal/pytool"
)

// Sentinel errors returned by Run. Match with errors.Is; the returned
// errors wrap these with run-specific detail.
const (
	// ErrPythonNotFound indicates no configured interpreter candidate
	// could be located on the system.
	ErrPythonNotFound = pytool.ErrNotFound

	// ErrPythonTooOld indicates the located interpreter is older than the
	// minimum supported version.
	ErrPythonTooOld = engine.ErrPythonTooOld

	// ErrEnvCreate indicates virtual environment creation failed. The
	// recovery path is removing the environment directory and rerunning
	// the bootstrap.
	ErrEnvCreate = engine.ErrEnvCreate

	// ErrKernelRegister indicates Jupyter kernel registration failed.
	ErrKernelRegister = engine.ErrKernelRegister

	// ErrLockHeld indicates another bootstrap is operating on the same
	// environment directory.
	ErrLockHeld = engine.ErrLockHeld

	// ErrAlreadyRan indicates Run was called a second time on the same
	// instance. Bootstrappers and extension installers are single use.
	ErrAlreadyRan = engine.ErrAlreadyRan

	// ErrEditorNotFound indicates the editor CLI could not be located, so
	// no extensions were installed.
	ErrEditorNotFound = editor.ErrNotFound
)
