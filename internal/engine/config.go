package engine

import (
	"fmt"
	"time"

	"github.com/dstudies/nbenv/internal/manifest"
	"github.com/dstudies/nbenv/internal/runner"
)

// Config holds the bootstrap engine configuration. The public nbenv
// package populates it through functional options; zero values are
// normalized by the engine constructor, not here.
type Config struct {
	// EnvDir is the virtual environment directory, absolute or relative
	// to the working directory.
	EnvDir string

	// WorkspaceDir is the directory whose .vscode/settings.json is
	// updated. Empty disables the editor settings step.
	WorkspaceDir string

	// PythonCandidates are interpreter binary names tried in order.
	PythonCandidates []string

	// Packages is the ordered install list.
	Packages []manifest.Package

	// KernelName and KernelDisplayName identify the Jupyter kernel
	// registration.
	KernelName        string
	KernelDisplayName string

	// CommandTimeout bounds each pip / kernel / resource command.
	CommandTimeout time.Duration

	// SkipResources disables the NLP resource setup steps.
	SkipResources bool

	// DisableLedger disables run recording.
	DisableLedger bool

	// Runner executes external commands. Nil means the real os/exec
	// runner; tests inject fakes.
	Runner runner.Runner
}

// Validate checks the fields the engine cannot normalize away.
func (c *Config) Validate() error {
	if c.EnvDir == "" {
		return fmt.Errorf("config: environment directory must not be empty")
	}
	if len(c.PythonCandidates) == 0 {
		return fmt.Errorf("config: python candidates must not be empty")
	}
	if c.KernelName == "" {
		return fmt.Errorf("config: kernel name must not be empty")
	}
	if c.KernelDisplayName == "" {
		return fmt.Errorf("config: kernel display name must not be empty")
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("config: command timeout must be positive, got %v", c.CommandTimeout)
	}
	return nil
}

// ExtensionConfig holds the extension-install engine configuration.
type ExtensionConfig struct {
	// Extensions is the ordered identifier list. An empty list is valid:
	// the run completes with zero invocations.
	Extensions []string

	// EditorCLI, when set, bypasses discovery and uses this path.
	EditorCLI string

	// LedgerDir is the directory holding the run ledger database. Empty
	// with DisableLedger false means the working directory.
	LedgerDir string

	// CommandTimeout bounds each install invocation.
	CommandTimeout time.Duration

	// DisableLedger disables run recording.
	DisableLedger bool

	// Runner executes external commands. Nil means the real os/exec runner.
	Runner runner.Runner
}

// Validate checks the fields the engine cannot normalize away.
func (c *ExtensionConfig) Validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("config: command timeout must be positive, got %v", c.CommandTimeout)
	}
	for i, id := range c.Extensions {
		if id == "" {
			return fmt.Errorf("config: extensions[%d] must not be empty", i)
		}
	}
	return nil
}
