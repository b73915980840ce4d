package pytool

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dstudies/nbenv/internal/runner"
	"github.com/dstudies/nbenv/internal/sentinel"
)

// ErrNotFound is returned by Find when none of the candidate binaries are
// present in PATH.
const ErrNotFound = sentinel.Error("python interpreter not found in PATH")

// probeTimeout bounds the version probe. A healthy interpreter answers in
// well under a second; anything longer indicates a broken installation.
const probeTimeout = 10 * time.Second

// versionProgram prints the interpreter version as "major.minor.patch" on
// a single line. Run with `python -c`.
const versionProgram = `import sys; print("%d.%d.%d" % sys.version_info[:3])`

// Version is a Python interpreter version.
type Version struct {
	Major, Minor, Patch int
}

// String returns the version in "major.minor.patch" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether the version is >= major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// ParseVersion parses "major.minor" or "major.minor.patch" (surrounding
// whitespace tolerated, as the probe output ends with a newline).
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("malformed python version %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("malformed python version %q", s)
		}
		nums[i] = n
	}
	v := Version{Major: nums[0], Minor: nums[1]}
	if len(nums) == 3 {
		v.Patch = nums[2]
	}
	return v, nil
}

// Find returns the absolute path of the first candidate binary found in
// PATH, in the order given. Returns ErrNotFound when none resolve.
func Find(candidates ...string) (string, error) {
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(candidates, ", "))
}

// Probe runs the interpreter at path and returns its version.
func Probe(ctx context.Context, r runner.Runner, path string) (Version, error) {
	res, err := r.Run(ctx, runner.Spec{
		Name:    "python-version",
		Path:    path,
		Args:    []string{"-c", versionProgram},
		Timeout: probeTimeout,
	})
	if err != nil {
		return Version{}, fmt.Errorf("probe %s: %w", path, err)
	}
	v, err := ParseVersion(res.Output)
	if err != nil {
		return Version{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return v, nil
}

// VenvPython returns the path of the interpreter inside the virtual
// environment at envDir, following the platform's venv layout.
func VenvPython(envDir string) string {
	return venvPythonFor(runtime.GOOS, envDir)
}

// venvPythonFor is the GOOS-parameterized core of VenvPython, split out so
// both layouts are testable on any platform.
func venvPythonFor(goos, envDir string) string {
	if goos == "windows" {
		return filepath.Join(envDir, "Scripts", "python.exe")
	}
	return filepath.Join(envDir, "bin", "python")
}
