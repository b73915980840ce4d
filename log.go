package nbenv

import (
	"log/slog"

	"github.com/dstudies/nbenv/internal/engine"
)

// SetLogger replaces the package-level logger used by nbenv. If l is nil,
// the logger resets to slog.Default() with a "component" attribute,
// re-derived on next use.
//
// SetLogger is safe to call concurrently with running bootstraps.
func SetLogger(l *slog.Logger) {
	engine.SetLogger(l)
}
