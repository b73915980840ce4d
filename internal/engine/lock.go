package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// fileLockRetryInterval is the interval between consecutive attempts to
// acquire the environment file lock. 50ms balances responsiveness (low
// wait after the holder releases) against CPU overhead from busy-polling.
const fileLockRetryInterval = 50 * time.Millisecond

// lockPath returns the lock file path for an environment directory: a
// dotfile next to the directory, so the lock survives delete-and-rerun of
// the environment itself.
func lockPath(envDir string) string {
	return filepath.Join(filepath.Dir(envDir), "."+filepath.Base(envDir)+".lock")
}

// acquireFileLock acquires an exclusive lock guarding the environment
// directory against concurrent bootstrap runs. It respects context
// cancellation; acquisition is retried at fileLockRetryInterval until
// successful or the context is done.
func acquireFileLock(ctx context.Context, envDir string) (*flock.Flock, error) {
	path := lockPath(envDir)
	fl := flock.New(path)

	locked, err := fl.TryLockContext(ctx, fileLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLockHeld, path, err)
	}
	if !locked {
		// TryLockContext can return (false, nil) in edge cases.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLockHeld, path, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s", ErrLockHeld, path)
	}
	return fl, nil
}

// releaseFileLock releases the file lock and closes its descriptor. The
// lock file is intentionally left on disk to avoid a race where removing
// it could invalidate a lock concurrently acquired by another process.
// Best-effort cleanup: errors are logged at debug level, not returned.
func releaseFileLock(logger *slog.Logger, fl lockHandle) {
	if fl != nil {
		if err := fl.Close(); err != nil {
			logger.Debug("failed to release environment lock", "path", fl.Path(), "err", err)
		}
	}
}
