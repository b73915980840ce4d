package nbenv

import "context"

// Bootstrapper prepares the course notebook environment: virtual
// environment, packages, Jupyter kernel, editor settings, and language
// resources. Implementations are single use; a second Run returns
// ErrAlreadyRan.
type Bootstrapper interface {
	// Run executes the bootstrap sequence. A non-nil error means a fatal
	// step failed and wraps one of the exported sentinels; per-package and
	// per-resource failures are reported in the Report only. The Report is
	// non-nil whenever the run started, even on fatal failure.
	Run(ctx context.Context) (*Report, error)
}

// ExtensionInstaller installs the course's editor extensions through the
// editor CLI. Implementations are single use; a second Run returns
// ErrAlreadyRan.
type ExtensionInstaller interface {
	// Run installs each configured extension in order, continuing through
	// individual failures. A non-nil error means the editor CLI could not
	// be located (wrapping ErrEditorNotFound) and nothing was installed.
	Run(ctx context.Context) (*ExtensionReport, error)
}
