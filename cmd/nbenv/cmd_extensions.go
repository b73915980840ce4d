package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstudies/nbenv"
)

var (
	extensionsEditor   string
	extensionsNoLedger bool
)

// extensionsCmd installs the course editor extensions
var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "Install the course editor extensions",
	Long: `Installs each course extension through the editor's command line
interface, one invocation per extension. Installation continues through
individual failures; the summary lists any extension that did not install.

The editor CLI is discovered on PATH (and in the usual application
locations on macOS and Windows) unless --editor names it explicitly.`,
	Args: cobra.NoArgs,
	RunE: runExtensions,
}

func init() {
	extensionsCmd.Flags().StringVar(&extensionsEditor, "editor", "", "explicit editor CLI path, bypassing discovery")
	extensionsCmd.Flags().BoolVar(&extensionsNoLedger, "no-ledger", false, "do not record the run in the ledger database")
}

func runExtensions(cmd *cobra.Command, _ []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	opts := []nbenv.ExtensionOption{
		nbenv.WithInstallTimeout(cmdTimeout),
		nbenv.WithLedgerDir(workspaceDir),
	}
	opts = append(opts, nbenv.ManifestExtensionOptions(m)...)
	if extensionsEditor != "" {
		opts = append(opts, nbenv.WithEditorCLI(extensionsEditor))
	}
	if extensionsNoLedger {
		opts = append(opts, nbenv.WithoutInstallLedger())
	}

	report, err := nbenv.NewExtensionInstaller(opts...).Run(cmd.Context())
	if report != nil {
		printExtensionSummary(report)
	}
	return err
}

func printExtensionSummary(r *nbenv.ExtensionReport) {
	out := os.Stdout

	if r.EditorPath != "" {
		fmt.Fprintf(out, "editor: %s\n", r.EditorPath)
	}
	printItemSummary(out, "extensions", r.Extensions)
	if r.OK() {
		fmt.Fprintf(out, "done in %s\n", r.Finished.Sub(r.Started).Round(timeRound))
	} else {
		fmt.Fprintf(out, "finished with failures in %s\n", r.Finished.Sub(r.Started).Round(timeRound))
	}
}
