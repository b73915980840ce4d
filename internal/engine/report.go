package engine

import (
	"time"

	"github.com/dstudies/nbenv/internal/pytool"
)

// Step identifies one stage of the bootstrap procedure.
type Step string

// Bootstrap steps in execution order.
const (
	StepLock            Step = "lock"
	StepPython          Step = "python"
	StepCreateEnv       Step = "create-env"
	StepUpgradePip      Step = "upgrade-pip"
	StepInstallPackages Step = "install-packages"
	StepRegisterKernel  Step = "register-kernel"
	StepEditorSettings  Step = "editor-settings"
	StepResources       Step = "resources"
)

// StepResult is the outcome of one bootstrap stage. Err is non-nil for
// both fatal and non-fatal step failures; whether a failure halted the
// run is a property of the step, recorded in the engine, not the result.
type StepResult struct {
	Step     Step
	Err      error
	Duration time.Duration
}

// ItemResult is the outcome of one list entry: a package install, an
// extension install, or a resource download.
type ItemResult struct {
	Name     string
	Err      error
	Output   string
	Duration time.Duration
}

// Failed reports whether the item failed.
func (i ItemResult) Failed() bool {
	return i.Err != nil
}

// Report is the full outcome of a bootstrap run. A fatal failure leaves
// the report partially filled: steps up to and including the failing one
// are present.
type Report struct {
	EnvDir        string         // absolute environment directory
	EnvReused     bool           // true when an existing environment was kept
	PythonPath    string         // interpreter inside the environment
	PythonVersion pytool.Version // version of the system interpreter used
	SettingsPath  string         // editor settings file written, if any
	Steps         []StepResult
	Packages      []ItemResult
	Resources     []ItemResult
	Started       time.Time
	Finished      time.Time
}

// FailedPackages returns the names of packages that failed to install, in
// list order.
func (r *Report) FailedPackages() []string {
	return failedNames(r.Packages)
}

// FailedResources returns the names of resources that failed to set up.
func (r *Report) FailedResources() []string {
	return failedNames(r.Resources)
}

// OK reports whether every step and every item succeeded.
func (r *Report) OK() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return false
		}
	}
	return len(r.FailedPackages()) == 0 && len(r.FailedResources()) == 0
}

// ExtensionReport is the full outcome of an extension-install run.
type ExtensionReport struct {
	EditorPath string // editor CLI used
	Extensions []ItemResult
	Started    time.Time
	Finished   time.Time
}

// FailedExtensions returns the identifiers that failed to install, in
// list order.
func (r *ExtensionReport) FailedExtensions() []string {
	return failedNames(r.Extensions)
}

// OK reports whether every extension installed successfully.
func (r *ExtensionReport) OK() bool {
	return len(r.FailedExtensions()) == 0
}

func failedNames(items []ItemResult) []string {
	var failed []string
	for _, item := range items {
		if item.Failed() {
			failed = append(failed, item.Name)
		}
	}
	return failed
}
