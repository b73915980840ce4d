// Command nbenv sets up the course notebook environment: Python virtual
// environment, package list, Jupyter kernel, editor settings, and editor
// extensions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dstudies/nbenv"
)

// timeRound trims summary durations to a readable precision.
const timeRound = 100 * time.Millisecond

var (
	// Global flags
	verbose      bool
	manifestPath string
	envDir       string
	workspaceDir string
	cmdTimeout   time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nbenv",
	Short: "Bootstrap the course Python notebook environment",
	Long: `nbenv prepares a self-contained Python environment for course notebooks.

It creates a virtual environment, installs the course package list one
package at a time, registers a Jupyter kernel, and points the workspace's
editor settings at the new interpreter. A separate subcommand installs the
course's editor extensions.

Individual package or extension failures do not abort a run; they are
listed in the summary. If the environment itself is broken, delete the
environment directory and run setup again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		nbenv.SetLogger(nil)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "YAML manifest overriding the built-in package and extension lists")
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", nbenv.DefaultEnvDirName, "virtual environment directory")
	rootCmd.PersistentFlags().StringVar(&workspaceDir, "workspace", ".", "workspace directory whose editor settings are updated")
	rootCmd.PersistentFlags().DurationVar(&cmdTimeout, "timeout", nbenv.DefaultCommandTimeout, "timeout for each external command")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(extensionsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadManifest returns the manifest named by --manifest, or nil when the
// flag is unset.
func loadManifest() (*nbenv.Manifest, error) {
	if manifestPath == "" {
		return nil, nil
	}
	return nbenv.LoadManifest(manifestPath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "nbenv:", err)
		os.Exit(1)
	}
}
