package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dstudies/nbenv/internal/runner"
	"github.com/dstudies/nbenv/internal/sentinel"
)

// ErrNotFound is returned by Discover when no working editor CLI is found.
const ErrNotFound = sentinel.Error("VS Code CLI not found; install it from https://code.visualstudio.com/ and ensure 'code' is in PATH")

// probeTimeout bounds the `--version` probe per candidate. The CLI answers
// quickly when functional; a hang means a broken shim.
const probeTimeout = 10 * time.Second

// pathCandidates are binary names resolved through PATH, in preference order.
var pathCandidates = []string{"code", "code-insiders"}

// platformCandidates returns absolute installation paths to try when PATH
// resolution fails, for the given GOOS. The list mirrors the default
// install locations of VS Code on each platform.
func platformCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code",
		}
	case "windows":
		home, err := os.UserHomeDir()
		paths := []string{
			`C:\Program Files\Microsoft VS Code\bin\code.cmd`,
			`C:\Program Files (x86)\Microsoft VS Code\bin\code.cmd`,
		}
		if err == nil {
			paths = append(paths, home+`\AppData\Local\Programs\Microsoft VS Code\bin\code.cmd`)
		}
		return paths
	default:
		return nil
	}
}

// Discover returns the path of a working VS Code CLI. When explicit is
// non-empty it is the only candidate considered. Otherwise PATH names and
// platform installation paths are collected and version-probed
// concurrently; the first working candidate in preference order wins.
func Discover(ctx context.Context, r runner.Runner, explicit string) (string, error) {
	candidates := collectCandidates(explicit)
	if len(candidates) == 0 {
		return "", ErrNotFound
	}

	// Probe all candidates in parallel. Results are positional so the
	// preference order survives the concurrency.
	working := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range candidates {
		i, path := i, path
		g.Go(func() error {
			_, err := r.Run(gctx, runner.Spec{
				Name:    fmt.Sprintf("code-version-%d", i),
				Path:    path,
				Args:    []string{"--version"},
				Timeout: probeTimeout,
			})
			working[i] = err == nil
			// Probe failures are expected for absent candidates; never
			// abort the group over one of them.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("probe editor candidates: %w", err)
	}

	for i, ok := range working {
		if ok {
			return candidates[i], nil
		}
	}
	return "", ErrNotFound
}

// collectCandidates builds the ordered candidate path list: the explicit
// override alone when given, otherwise PATH-resolved names followed by
// platform installation paths that exist on disk.
func collectCandidates(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	var candidates []string
	for _, name := range pathCandidates {
		if path, err := exec.LookPath(name); err == nil {
			candidates = append(candidates, path)
		}
	}
	for _, path := range platformCandidates(runtime.GOOS) {
		if _, err := os.Stat(path); err == nil {
			candidates = append(candidates, path)
		}
	}
	return candidates
}

// InstallSpec returns the runner spec for installing a single extension.
func InstallSpec(cliPath, extensionID string, timeout time.Duration) runner.Spec {
	return runner.Spec{
		Name:    "install-extension-" + extensionID,
		Path:    cliPath,
		Args:    []string{"--install-extension", extensionID},
		Timeout: timeout,
	}
}
