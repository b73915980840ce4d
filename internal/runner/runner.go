package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/dstudies/nbenv/internal/sentinel"
)

// ErrEmptyPath is returned when a Spec has no binary path.
const ErrEmptyPath = sentinel.Error("command path must not be empty")

// ErrEmptyName is returned when a Spec has no name. The name is used for
// log file naming and error messages, so an empty name would produce
// confusing output throughout the run.
const ErrEmptyName = sentinel.Error("command name must not be empty")

// waitDelay bounds how long Run waits for a command's I/O pipes to close
// after the context deadline kills the process. Without it a child that
// inherited the pipes could block Wait indefinitely.
const waitDelay = 10 * time.Second

// Spec describes a single external command invocation.
type Spec struct {
	Name    string        // short name for log files and error messages, e.g. "pip-install-pandas"
	Path    string        // binary path; resolved by the caller (exec.LookPath or absolute)
	Args    []string      // arguments, not including the binary itself
	Dir     string        // working directory; empty means the current directory
	Env     []string      // extra environment entries appended to os.Environ()
	Timeout time.Duration // per-command deadline; zero means the caller's context governs
	LogDir  string        // if non-empty, combined output is also written to <LogDir>/<Name>.log
}

// Result holds the outcome of a completed command.
type Result struct {
	Output   string        // combined stdout and stderr
	Duration time.Duration // wall-clock execution time
}

// Runner executes commands. The interface exists so the engine can be
// tested against a fake without spawning real processes.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// Compile-time interface satisfaction check.
var _ Runner = (*execRunner)(nil)

// New returns a Runner backed by os/exec.
//
//nolint:ireturn // Returns Runner interface by design for testability (mockable).
func New() Runner {
	return &execRunner{}
}

type execRunner struct{}

// Run executes the command described by spec and waits for it to complete.
// Stdout and stderr are captured into Result.Output; when spec.LogDir is
// set they are additionally written to a log file named after the command.
// The returned error wraps the exec failure and names the command; the
// Result is valid (with whatever output was produced) even on error.
func (r *execRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	if spec.Name == "" {
		return Result{}, ErrEmptyName
	}
	if spec.Path == "" {
		return Result{}, fmt.Errorf("%s: %w", spec.Name, ErrEmptyPath)
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.WaitDelay = waitDelay

	var buf bytes.Buffer
	logFile, err := openLogFile(spec)
	if err != nil {
		return Result{}, err
	}
	attachOutput(cmd, &buf, logFile)

	start := time.Now()
	runErr := cmd.Run()
	res := Result{
		Output:   buf.String(),
		Duration: time.Since(start),
	}

	if logFile != nil {
		if closeErr := logFile.Close(); closeErr != nil && runErr == nil {
			runErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}

	if runErr != nil {
		// Prefer the context error when the deadline killed the process:
		// "signal: killed" alone does not tell the user the command timed out.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s: %w", spec.Name, ctxErr)
		}
		return res, fmt.Errorf("%s: %w", spec.Name, runErr)
	}
	return res, nil
}
