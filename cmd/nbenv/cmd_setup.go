package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstudies/nbenv"
)

var (
	setupPython        []string
	setupKernelName    string
	setupDisplayName   string
	setupSkipResources bool
	setupSkipSettings  bool
	setupNoLedger      bool
)

// setupCmd runs the full environment bootstrap
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the environment, install packages, and register the kernel",
	Long: `Runs the full bootstrap sequence:

  1. Locate a Python interpreter (3.8 or newer)
  2. Create the virtual environment, or reuse an intact existing one
  3. Install the course packages, one at a time
  4. Register the Jupyter kernel
  5. Point the workspace's editor settings at the interpreter
  6. Download NLTK corpora, spaCy models, and gazetteer data

A failed package or resource download is reported and skipped; a failure
in steps 1, 2, or 4 aborts the run. To recover from a broken environment,
delete the environment directory and run setup again.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringSliceVar(&setupPython, "python", nil, "interpreter candidates to probe, in order")
	setupCmd.Flags().StringVar(&setupKernelName, "kernel-name", nbenv.DefaultKernelName, "Jupyter kernelspec name")
	setupCmd.Flags().StringVar(&setupDisplayName, "display-name", nbenv.DefaultKernelDisplayName, "Jupyter kernel display name")
	setupCmd.Flags().BoolVar(&setupSkipResources, "skip-resources", false, "skip NLTK/spaCy/gazetteer downloads")
	setupCmd.Flags().BoolVar(&setupSkipSettings, "skip-settings", false, "do not touch the workspace editor settings")
	setupCmd.Flags().BoolVar(&setupNoLedger, "no-ledger", false, "do not record the run in the ledger database")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	opts := []nbenv.Option{
		nbenv.WithEnvDir(envDir),
		nbenv.WithWorkspaceDir(workspaceDir),
		nbenv.WithCommandTimeout(cmdTimeout),
		nbenv.WithKernel(setupKernelName, setupDisplayName),
	}
	// Manifest values win over flag defaults.
	opts = append(opts, nbenv.ManifestOptions(m)...)
	if len(setupPython) > 0 {
		opts = append(opts, nbenv.WithPython(setupPython...))
	}
	if setupSkipResources {
		opts = append(opts, nbenv.WithoutResources())
	}
	if setupSkipSettings {
		opts = append(opts, nbenv.WithoutEditorSettings())
	}
	if setupNoLedger {
		opts = append(opts, nbenv.WithoutLedger())
	}

	report, err := nbenv.NewBootstrapper(opts...).Run(cmd.Context())
	if report != nil {
		printBootstrapSummary(report)
	}
	return err
}

func printBootstrapSummary(r *nbenv.Report) {
	out := os.Stdout

	fmt.Fprintf(out, "environment: %s", r.EnvDir)
	if r.EnvReused {
		fmt.Fprint(out, " (reused)")
	}
	fmt.Fprintln(out)
	if r.PythonPath != "" {
		fmt.Fprintf(out, "interpreter: %s (%s)\n", r.PythonPath, r.PythonVersion)
	}
	if r.SettingsPath != "" {
		fmt.Fprintf(out, "settings: %s\n", r.SettingsPath)
	}

	printItemSummary(out, "packages", r.Packages)
	printItemSummary(out, "resources", r.Resources)

	for _, step := range r.Steps {
		if step.Err != nil {
			fmt.Fprintf(out, "step %s failed: %v\n", step.Step, step.Err)
		}
	}
	if r.OK() {
		fmt.Fprintf(out, "done in %s\n", r.Finished.Sub(r.Started).Round(timeRound))
	} else {
		fmt.Fprintf(out, "finished with failures in %s\n", r.Finished.Sub(r.Started).Round(timeRound))
	}
}

func printItemSummary(out *os.File, what string, items []nbenv.ItemResult) {
	if len(items) == 0 {
		return
	}
	failed := 0
	for _, item := range items {
		if item.Failed() {
			failed++
		}
	}
	fmt.Fprintf(out, "%s: %d ok, %d failed\n", what, len(items)-failed, failed)
	for _, item := range items {
		if item.Failed() {
			fmt.Fprintf(out, "  failed %s: %v\n", item.Name, item.Err)
		}
	}
}
