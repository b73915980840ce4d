package nbenv

import (
	"fmt"
	"time"

	"github.com/dstudies/nbenv/internal/engine"
)

// Option configures a Bootstrapper. Options validate their arguments and
// panic on programmer error, in the manner of regexp.MustCompile: an
// invalid option value is a bug at the call site, not a runtime
// condition.
type Option func(*engine.Config)

// ExtensionOption configures an ExtensionInstaller.
type ExtensionOption func(*engine.ExtensionConfig)

// WithEnvDir sets the virtual environment directory. Panics if dir is
// empty.
func WithEnvDir(dir string) Option {
	requireNonEmpty("WithEnvDir", "dir", dir)
	return func(c *engine.Config) {
		c.EnvDir = dir
	}
}

// WithWorkspaceDir sets the workspace directory whose editor settings are
// updated to point at the new interpreter. Panics if dir is empty; use
// WithoutEditorSettings to skip the settings update entirely.
func WithWorkspaceDir(dir string) Option {
	requireNonEmpty("WithWorkspaceDir", "dir", dir)
	return func(c *engine.Config) {
		c.WorkspaceDir = dir
	}
}

// WithoutEditorSettings disables the workspace settings update step.
func WithoutEditorSettings() Option {
	return func(c *engine.Config) {
		c.WorkspaceDir = ""
	}
}

// WithPython sets the interpreter candidates probed, in order, when
// creating the environment. Each candidate may be a bare name resolved
// through PATH or an absolute path. Panics if no candidate is given or any
// candidate is empty.
func WithPython(candidates ...string) Option {
	if len(candidates) == 0 {
		panic("nbenv: WithPython requires at least one candidate")
	}
	for _, c := range candidates {
		requireNonEmpty("WithPython", "candidate", c)
	}
	cp := append([]string(nil), candidates...)
	return func(c *engine.Config) {
		c.PythonCandidates = cp
	}
}

// WithPackages replaces the course package list. Order is preserved at
// install time. Panics if any package name is empty.
func WithPackages(pkgs ...Package) Option {
	for _, p := range pkgs {
		requireNonEmpty("WithPackages", "package name", p.Name)
	}
	cp := append([]Package(nil), pkgs...)
	return func(c *engine.Config) {
		c.Packages = cp
	}
}

// WithKernel sets the Jupyter kernelspec name and display name. Panics if
// either is empty.
func WithKernel(name, displayName string) Option {
	requireNonEmpty("WithKernel", "name", name)
	requireNonEmpty("WithKernel", "displayName", displayName)
	return func(c *engine.Config) {
		c.KernelName = name
		c.KernelDisplayName = displayName
	}
}

// WithCommandTimeout bounds each individual external command. Panics if d
// is not positive.
func WithCommandTimeout(d time.Duration) Option {
	requirePositive("WithCommandTimeout", d)
	return func(c *engine.Config) {
		c.CommandTimeout = d
	}
}

// WithoutResources skips the post-install language resource downloads
// (NLTK corpora, spaCy models, gazetteer data).
func WithoutResources() Option {
	return func(c *engine.Config) {
		c.SkipResources = true
	}
}

// WithoutLedger disables recording the run in the on-disk run ledger.
func WithoutLedger() Option {
	return func(c *engine.Config) {
		c.DisableLedger = true
	}
}

// WithExtensions replaces the extension identifier list. An empty list is
// allowed and makes Run complete without invoking the editor. Panics if
// any identifier is empty.
func WithExtensions(ids ...string) ExtensionOption {
	for _, id := range ids {
		requireNonEmpty("WithExtensions", "identifier", id)
	}
	cp := make([]string, len(ids))
	copy(cp, ids)
	return func(c *engine.ExtensionConfig) {
		c.Extensions = cp
	}
}

// WithEditorCLI sets an explicit editor CLI path, bypassing discovery.
// Panics if path is empty.
func WithEditorCLI(path string) ExtensionOption {
	requireNonEmpty("WithEditorCLI", "path", path)
	return func(c *engine.ExtensionConfig) {
		c.EditorCLI = path
	}
}

// WithInstallTimeout bounds each individual extension install. Panics if d
// is not positive.
func WithInstallTimeout(d time.Duration) ExtensionOption {
	requirePositive("WithInstallTimeout", d)
	return func(c *engine.ExtensionConfig) {
		c.CommandTimeout = d
	}
}

// WithLedgerDir sets the directory holding the run ledger for extension
// installs. Panics if dir is empty.
func WithLedgerDir(dir string) ExtensionOption {
	requireNonEmpty("WithLedgerDir", "dir", dir)
	return func(c *engine.ExtensionConfig) {
		c.LedgerDir = dir
	}
}

// WithoutInstallLedger disables recording the extension run in the
// on-disk run ledger.
func WithoutInstallLedger() ExtensionOption {
	return func(c *engine.ExtensionConfig) {
		c.DisableLedger = true
	}
}

func requireNonEmpty(option, what, value string) {
	if value == "" {
		panic(fmt.Sprintf("nbenv: %s requires a non-empty %s", option, what))
	}
}

func requirePositive(option string, d time.Duration) {
	if d <= 0 {
		panic(fmt.Sprintf("nbenv: %s requires a positive duration, got %s", option, d))
	}
}
