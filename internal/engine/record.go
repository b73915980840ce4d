package engine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dstudies/nbenv/internal/ledger"
)

// ledgerFileName is the run ledger database, stored next to the
// environment directory so it survives delete-and-rerun of the
// environment itself.
const ledgerFileName = ".nbenv-ledger.db"

// LedgerPath returns the run ledger database path for environments kept
// under dir.
func LedgerPath(dir string) string {
	return filepath.Join(dir, ledgerFileName)
}

// recordRun writes the bootstrap outcome to the run ledger. Best-effort:
// a ledger failure is logged and never affects the run result.
func (b *Bootstrap) recordRun(ctx context.Context, report *Report) {
	if b.cfg.DisableLedger {
		return
	}
	path := LedgerPath(filepath.Dir(report.EnvDir))

	items := make([]ledger.Item, 0, len(report.Packages)+len(report.Resources))
	for _, set := range [][]ItemResult{report.Packages, report.Resources} {
		for _, item := range set {
			items = append(items, ledgerItem(item))
		}
	}
	writeLedger(ctx, path, ledger.KindBootstrap, report.Started, report.Finished, report.OK(), items)
}

// recordRun writes the extension-install outcome to the run ledger.
func (e *ExtensionInstall) recordRun(ctx context.Context, report *ExtensionReport) {
	if e.cfg.DisableLedger {
		return
	}
	dir := e.cfg.LedgerDir
	if dir == "" {
		dir = "."
	}
	path := LedgerPath(dir)

	items := make([]ledger.Item, 0, len(report.Extensions))
	for _, item := range report.Extensions {
		items = append(items, ledgerItem(item))
	}
	writeLedger(ctx, path, ledger.KindExtensions, report.Started, report.Finished, report.OK(), items)
}

func ledgerItem(item ItemResult) ledger.Item {
	li := ledger.Item{Name: item.Name, OK: !item.Failed()}
	if item.Err != nil {
		li.Detail = item.Err.Error()
	}
	return li
}

// writeLedger opens the ledger, records one run, and closes it. All
// errors are logged at warn level; the ledger is informational.
func writeLedger(ctx context.Context, path, kind string, started, finished time.Time, ok bool, items []ledger.Item) {
	log := Logger()
	store, err := ledger.Open(ctx, path)
	if err != nil {
		log.Warn("run ledger unavailable", "path", path, "error", err)
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Warn("close run ledger", "path", path, "error", closeErr)
		}
	}()

	if _, err := store.RecordRun(ctx, kind, started, finished, ok, items); err != nil {
		log.Warn("record run in ledger", "path", path, "error", err)
	}
}
