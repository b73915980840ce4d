package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dstudies/nbenv/internal/sentinel"
)

// ErrEmptyPath is returned when a destination path is empty.
const ErrEmptyPath = sentinel.Error("destination path must not be empty")

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, creating parent directories as needed.
// On POSIX systems rename is atomic, so concurrent readers observe either
// the previous content or the full new content, never a partial write.
//
// The file is synced before the rename so a crash cannot leave the renamed
// file with incomplete contents. The final file has the given mode.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) (retErr error) {
	if path == "" {
		return ErrEmptyPath
	}

	if err := EnsureDirForFile(path); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-write-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(mode); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync: %w", err)
	}

	// Close explicitly before rename so the file content is flushed.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to destination: %w", err)
	}
	return nil
}
