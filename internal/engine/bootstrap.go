package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dstudies/nbenv/internal/editor"
	"github.com/dstudies/nbenv/internal/pytool"
	"github.com/dstudies/nbenv/internal/runner"
)

// Minimum supported Python version. Older interpreters lack the venv and
// wheel support the course packages assume.
const (
	minPythonMajor = 3
	minPythonMinor = 8
)

// logDirName is the directory inside the environment where per-command
// output logs are written.
const logDirName = "log"

// Bootstrap runs the environment bootstrap procedure. Engines are
// single-use: construct with NewBootstrap, call Run once.
type Bootstrap struct {
	cfg Config
	run runner.Runner
	ran atomic.Bool
}

// NewBootstrap validates the configuration and returns a ready engine.
func NewBootstrap(cfg Config) (*Bootstrap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := cfg.Runner
	if r == nil {
		r = runner.New()
	}
	return &Bootstrap{cfg: cfg, run: r}, nil
}

// Run executes the bootstrap steps in order. The returned error is non-nil
// only for fatal failures (lock, interpreter, environment creation, kernel
// registration, context cancellation); per-item failures are recorded in
// the report and never halt the run. The report is valid even on error,
// holding every step executed up to the failure.
func (b *Bootstrap) Run(ctx context.Context) (*Report, error) {
	if !b.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}
	log := Logger()
	report := &Report{Started: time.Now()}
	defer func() {
		if report.Finished.IsZero() {
			report.Finished = time.Now()
		}
	}()

	envDir, err := filepath.Abs(b.cfg.EnvDir)
	if err != nil {
		return report, fmt.Errorf("resolve environment directory: %w", err)
	}
	report.EnvDir = envDir
	logDir := filepath.Join(envDir, logDirName)

	// step runs fn and appends its outcome to the report. Whether a
	// returned error halts the run is decided at each call site: the
	// fatal/non-fatal split is a property of the step, not the mechanism.
	step := func(s Step, fn func() error) error {
		start := time.Now()
		err := fn()
		report.Steps = append(report.Steps, StepResult{Step: s, Err: err, Duration: time.Since(start)})
		return err
	}

	var lock lockHandle
	if err := step(StepLock, func() error {
		fl, lerr := acquireFileLock(ctx, envDir)
		if lerr != nil {
			return lerr
		}
		lock = fl
		return nil
	}); err != nil {
		return report, err
	}
	defer releaseFileLock(log, lock)

	var systemPython string
	if err := step(StepPython, func() error {
		path, ferr := pytool.Find(b.cfg.PythonCandidates...)
		if ferr != nil {
			return ferr
		}
		version, perr := pytool.Probe(ctx, b.run, path)
		if perr != nil {
			return perr
		}
		if !version.AtLeast(minPythonMajor, minPythonMinor) {
			return fmt.Errorf("%w: %s is %s, need %d.%d or newer",
				ErrPythonTooOld, path, version, minPythonMajor, minPythonMinor)
		}
		systemPython = path
		report.PythonVersion = version
		return nil
	}); err != nil {
		return report, err
	}
	log.Info("using python interpreter", "path", systemPython, "version", report.PythonVersion.String())

	venvPython := pytool.VenvPython(envDir)
	if err := step(StepCreateEnv, func() error {
		return b.createEnv(ctx, report, systemPython, envDir, venvPython)
	}); err != nil {
		return report, err
	}
	report.PythonPath = venvPython

	// Pip upgrade failures are reported but never halt the run: package
	// installation may still succeed with the bundled pip.
	_ = step(StepUpgradePip, func() error {
		_, uerr := b.run.Run(ctx, runner.Spec{
			Name:    "pip-upgrade",
			Path:    venvPython,
			Args:    []string{"-m", "pip", "install", "--upgrade", "pip"},
			Timeout: b.cfg.CommandTimeout,
			LogDir:  logDir,
		})
		if uerr != nil {
			log.Warn("pip upgrade failed; continuing with bundled pip", "error", uerr)
			return fmt.Errorf("upgrade pip: %w", uerr)
		}
		return nil
	})

	if err := step(StepInstallPackages, func() error {
		return b.installPackages(ctx, report, venvPython, logDir)
	}); err != nil {
		// Only context cancellation reaches here; individual package
		// failures are item results.
		return report, err
	}

	if err := step(StepRegisterKernel, func() error {
		return b.registerKernel(ctx, venvPython, logDir)
	}); err != nil {
		return report, err
	}
	log.Info("jupyter kernel registered",
		"name", b.cfg.KernelName, "display_name", b.cfg.KernelDisplayName)

	if b.cfg.WorkspaceDir != "" {
		_ = step(StepEditorSettings, func() error {
			path, serr := editor.UpdateSettings(b.cfg.WorkspaceDir, venvPython)
			if serr != nil {
				log.Warn("editor settings update failed; configure the interpreter manually",
					"error", serr)
				return serr
			}
			report.SettingsPath = path
			log.Info("editor settings updated", "path", path, "interpreter", venvPython)
			return nil
		})
	}

	if !b.cfg.SkipResources {
		if err := step(StepResources, func() error {
			return b.setupResources(ctx, report, venvPython, logDir)
		}); err != nil {
			return report, err
		}
	}

	report.Finished = time.Now()
	b.recordRun(ctx, report)

	if failed := report.FailedPackages(); len(failed) > 0 {
		log.Warn("bootstrap finished with package failures",
			"failed", strings.Join(failed, ", "))
	} else {
		log.Info("bootstrap finished", "env_dir", envDir, "reused", report.EnvReused)
	}
	return report, nil
}

// createEnv creates the virtual environment, or reuses an existing one.
// An environment is considered present when its interpreter exists; a
// directory without an interpreter is treated as absent and venv creation
// is attempted into it (python -m venv handles a pre-existing directory).
func (b *Bootstrap) createEnv(ctx context.Context, report *Report, systemPython, envDir, venvPython string) error {
	if _, err := os.Stat(venvPython); err == nil {
		report.EnvReused = true
		Logger().Info("reusing existing virtual environment", "dir", envDir)
		return nil
	}

	res, err := b.run.Run(ctx, runner.Spec{
		Name:    "venv-create",
		Path:    systemPython,
		Args:    []string{"-m", "venv", envDir},
		Timeout: b.cfg.CommandTimeout,
	})
	if err != nil {
		return fmt.Errorf("%w: %v%s; remove %s and rerun setup",
			ErrEnvCreate, err, outputTail(res.Output), envDir)
	}
	if _, err := os.Stat(venvPython); err != nil {
		return fmt.Errorf("%w: venv completed but %s is missing; remove %s and rerun setup",
			ErrEnvCreate, venvPython, envDir)
	}
	Logger().Info("virtual environment created", "dir", envDir)
	return nil
}

// installPackages installs each package in list order, one pip invocation
// per package so every entry gets an individual success or failure.
// Failures are recorded and skipped past; only context cancellation stops
// the loop.
func (b *Bootstrap) installPackages(ctx context.Context, report *Report, venvPython, logDir string) error {
	log := Logger()
	for _, pkg := range b.cfg.Packages {
		if ctx.Err() != nil {
			return fmt.Errorf("install packages: %w", ctx.Err())
		}

		res, err := b.run.Run(ctx, runner.Spec{
			Name:    "pip-install-" + pkg.Name,
			Path:    venvPython,
			Args:    []string{"-m", "pip", "install", "--upgrade", pkg.Spec()},
			Timeout: b.cfg.CommandTimeout,
			LogDir:  logDir,
		})
		report.Packages = append(report.Packages, ItemResult{
			Name:     pkg.Name,
			Err:      err,
			Output:   res.Output,
			Duration: res.Duration,
		})
		if err != nil {
			log.Warn("package install failed; continuing",
				"package", pkg.Name, "error", err)
			continue
		}
		log.Info("package installed", "package", pkg.Name, "duration", res.Duration)
	}
	return nil
}

// registerKernel registers the environment's interpreter as a Jupyter
// kernel under the configured name and display name.
func (b *Bootstrap) registerKernel(ctx context.Context, venvPython, logDir string) error {
	res, err := b.run.Run(ctx, runner.Spec{
		Name: "kernel-install",
		Path: venvPython,
		Args: []string{
			"-m", "ipykernel", "install",
			"--user",
			"--name", b.cfg.KernelName,
			"--display-name", b.cfg.KernelDisplayName,
		},
		Timeout: b.cfg.CommandTimeout,
		LogDir:  logDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrKernelRegister, err, outputTail(res.Output))
	}
	return nil
}

// outputTail returns the last portion of command output formatted for
// inclusion in an error message, or "" when there is no output.
func outputTail(output string) string {
	const tailLen = 400
	output = strings.TrimSpace(output)
	if output == "" {
		return ""
	}
	if len(output) > tailLen {
		output = "..." + output[len(output)-tailLen:]
	}
	return ": " + output
}

// lockHandle is the subset of *flock.Flock the engine holds between
// acquire and release. Declared as an interface so the defer in Run is
// nil-safe before acquisition succeeds.
type lockHandle interface {
	Close() error
	Path() string
}
