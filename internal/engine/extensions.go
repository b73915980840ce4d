package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dstudies/nbenv/internal/editor"
	"github.com/dstudies/nbenv/internal/runner"
)

// ExtensionInstall runs the editor extension installation procedure.
// Engines are single-use: construct with NewExtensionInstall, call Run once.
type ExtensionInstall struct {
	cfg ExtensionConfig
	run runner.Runner
	ran atomic.Bool
}

// NewExtensionInstall validates the configuration and returns a ready engine.
func NewExtensionInstall(cfg ExtensionConfig) (*ExtensionInstall, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := cfg.Runner
	if r == nil {
		r = runner.New()
	}
	return &ExtensionInstall{cfg: cfg, run: r}, nil
}

// Run installs each extension in list order, one editor CLI invocation
// per identifier. Individual failures are recorded and skipped past; the
// returned error is non-nil only when the editor CLI cannot be found or
// the context is canceled. An empty list completes immediately with zero
// invocations - the editor CLI is not even looked up.
func (e *ExtensionInstall) Run(ctx context.Context) (*ExtensionReport, error) {
	if !e.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}
	log := Logger()
	report := &ExtensionReport{Started: time.Now()}
	defer func() {
		if report.Finished.IsZero() {
			report.Finished = time.Now()
		}
	}()

	if len(e.cfg.Extensions) == 0 {
		log.Info("no extensions configured; nothing to install")
		report.Finished = time.Now()
		e.recordRun(ctx, report)
		return report, nil
	}

	cli, err := editor.Discover(ctx, e.run, e.cfg.EditorCLI)
	if err != nil {
		return report, err
	}
	report.EditorPath = cli
	log.Info("using editor CLI", "path", cli)

	for _, id := range e.cfg.Extensions {
		if ctx.Err() != nil {
			return report, fmt.Errorf("install extensions: %w", ctx.Err())
		}

		res, ierr := e.run.Run(ctx, editor.InstallSpec(cli, id, e.cfg.CommandTimeout))
		report.Extensions = append(report.Extensions, ItemResult{
			Name:     id,
			Err:      ierr,
			Output:   res.Output,
			Duration: res.Duration,
		})
		if ierr != nil {
			log.Warn("extension install failed; continuing",
				"extension", id, "error", ierr)
			continue
		}
		log.Info("extension installed", "extension", id, "duration", res.Duration)
	}

	report.Finished = time.Now()
	e.recordRun(ctx, report)

	if failed := report.FailedExtensions(); len(failed) > 0 {
		log.Warn("extension install finished with failures", "failed_count", len(failed))
	} else {
		log.Info("all extensions installed", "count", len(report.Extensions))
	}
	return report, nil
}
