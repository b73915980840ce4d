// Package nbenv bootstraps an isolated Python notebook environment for a
// course workspace: it creates a virtual environment, installs the course
// package list, registers a Jupyter kernel, and points the editor's
// workspace settings at the new interpreter. A second procedure installs
// the course's editor extensions.
//
// # Basic Usage
//
//	import "github.com/dstudies/nbenv"
//
//	ctx := context.Background()
//
//	boot := nbenv.NewBootstrapper()
//	report, err := boot.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // fatal step failed: interpreter, venv, or kernel
//	}
//	for _, name := range report.FailedPackages() {
//	    fmt.Println("failed:", name)
//	}
//
//	ext := nbenv.NewExtensionInstaller()
//	extReport, err := ext.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // editor CLI not found
//	}
//
// # Failure model
//
// Failures come in two tiers. Fatal steps (locating a suitable Python,
// creating the virtual environment, registering the kernel) halt the run
// and surface as a non-nil error from Run, wrapping one of the exported
// sentinel errors. Per-item failures (a single package, extension, or
// resource) are recorded in the report and never halt the run; the
// remaining entries are still processed.
//
// There are no retries. The documented recovery path for a broken
// environment is deleting the environment directory and running the
// bootstrap again; the procedure is idempotent with respect to an intact
// existing environment and will reuse it rather than recreate it.
//
// # Sequential execution
//
// Both procedures are strictly sequential: each external command (venv
// creation, pip, kernel registration, the editor CLI) runs to completion
// before the next begins. Cancellation is supported through the context
// passed to Run; there is no other suspension point.
package nbenv
