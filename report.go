package nbenv

import (
	"github.com/dstudies/nbenv/internal/engine"
	"github.com/dstudies/nbenv/internal/manifest"
)

// Package identifies a single pip-installable package, optionally pinned
// with a version constraint such as ">=1.26".
type Package = manifest.Package

// Step names a phase of the bootstrap procedure.
type Step = engine.Step

// Bootstrap step names, in execution order.
const (
	StepLock            = engine.StepLock
	StepPython          = engine.StepPython
	StepCreateEnv       = engine.StepCreateEnv
	StepUpgradePip      = engine.StepUpgradePip
	StepInstallPackages = engine.StepInstallPackages
	StepRegisterKernel  = engine.StepRegisterKernel
	StepEditorSettings  = engine.StepEditorSettings
	StepResources       = engine.StepResources
)

// StepResult records the outcome of one bootstrap step.
type StepResult = engine.StepResult

// ItemResult records the outcome of one per-item operation: a package
// install, a resource download, or an extension install.
type ItemResult = engine.ItemResult

// Report describes a completed (or aborted) bootstrap run.
type Report = engine.Report

// ExtensionReport describes a completed extension installation run.
type ExtensionReport = engine.ExtensionReport
