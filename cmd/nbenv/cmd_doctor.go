package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dstudies/nbenv"
	"github.com/dstudies/nbenv/internal/editor"
	"github.com/dstudies/nbenv/internal/pytool"
	"github.com/dstudies/nbenv/internal/runner"
)

// doctorProbeTimeout bounds each individual health check. These are all
// version probes or directory stats; anything slower is itself a finding.
const doctorProbeTimeout = 30 * time.Second

// doctorCmd checks the workstation without changing anything
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the workstation for a working course setup",
	Long: `Runs read-only health checks: a usable Python interpreter, the editor
CLI, the environment interpreter, and the registered Jupyter kernel.
Nothing is installed or modified. Exits non-zero if any check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

type doctorCheck struct {
	name   string
	detail string
	err    error
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), doctorProbeTimeout)
	defer cancel()

	r := runner.New()
	checks := make([]doctorCheck, 4)

	// The checks are independent; run them concurrently and always return
	// nil so one failure never cancels the others.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checks[0] = checkPython(ctx, r)
		return nil
	})
	g.Go(func() error {
		checks[1] = checkEditor(ctx, r)
		return nil
	})
	g.Go(func() error {
		checks[2] = checkEnv()
		return nil
	})
	g.Go(func() error {
		checks[3] = checkKernel(ctx, r)
		return nil
	})
	_ = g.Wait()

	failed := 0
	for _, c := range checks {
		if c.err != nil {
			failed++
			fmt.Fprintf(os.Stdout, "fail %-12s %v\n", c.name, c.err)
			continue
		}
		fmt.Fprintf(os.Stdout, "ok   %-12s %s\n", c.name, c.detail)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func checkPython(ctx context.Context, r runner.Runner) doctorCheck {
	c := doctorCheck{name: "python"}

	path, err := pytool.Find(nbenv.DefaultPythonCandidates()...)
	if err != nil {
		c.err = err
		return c
	}
	version, err := pytool.Probe(ctx, r, path)
	if err != nil {
		c.err = fmt.Errorf("probe %s: %w", path, err)
		return c
	}
	if !version.AtLeast(3, 8) {
		c.err = fmt.Errorf("%s is Python %s, need 3.8 or newer", path, version)
		return c
	}
	c.detail = fmt.Sprintf("%s (%s)", path, version)
	return c
}

func checkEditor(ctx context.Context, r runner.Runner) doctorCheck {
	c := doctorCheck{name: "editor"}

	path, err := editor.Discover(ctx, r, "")
	if err != nil {
		c.err = err
		return c
	}
	c.detail = path
	return c
}

func checkEnv() doctorCheck {
	c := doctorCheck{name: "environment"}

	python := pytool.VenvPython(envDir)
	if _, err := os.Stat(python); err != nil {
		c.err = fmt.Errorf("no interpreter at %s; run `nbenv setup`", python)
		return c
	}
	c.detail = python
	return c
}

func checkKernel(ctx context.Context, r runner.Runner) doctorCheck {
	c := doctorCheck{name: "kernel"}

	python := pytool.VenvPython(envDir)
	if _, err := os.Stat(python); err != nil {
		c.err = fmt.Errorf("environment missing, kernel not checked")
		return c
	}
	result, err := r.Run(ctx, runner.Spec{
		Name:    "kernelspec-list",
		Path:    python,
		Args:    []string{"-m", "jupyter", "kernelspec", "list"},
		Timeout: doctorProbeTimeout,
	})
	if err != nil {
		c.err = fmt.Errorf("list kernelspecs: %w", err)
		return c
	}
	if !strings.Contains(result.Output, nbenv.DefaultKernelName) {
		c.err = fmt.Errorf("kernel %q not registered; run `nbenv setup`", nbenv.DefaultKernelName)
		return c
	}
	c.detail = nbenv.DefaultKernelName
	return c
}
