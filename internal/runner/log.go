package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dstudies/nbenv/internal/fileutil"
)

// openLogFile creates the per-command log file when spec.LogDir is set.
// Returns nil when no log directory is configured. The file is truncated
// on each run: only the latest invocation's output is kept, matching the
// delete-and-rerun recovery model.
func openLogFile(spec Spec) (*os.File, error) {
	if spec.LogDir == "" {
		return nil, nil
	}
	if err := fileutil.EnsureDir(spec.LogDir); err != nil {
		return nil, fmt.Errorf("create log directory for %s: %w", spec.Name, err)
	}
	path := filepath.Join(spec.LogDir, spec.Name+".log")
	f, err := os.Create(path) //nolint:gosec // G304: path is built from controlled spec fields
	if err != nil {
		return nil, fmt.Errorf("create %s log: %w", spec.Name, err)
	}
	return f, nil
}

// attachOutput wires the command's stdout and stderr to the capture buffer
// and, when present, the log file. Both streams go to the same writers so
// the captured output interleaves the way a terminal would show it.
func attachOutput(cmd *exec.Cmd, buf *bytes.Buffer, logFile *os.File) {
	var w io.Writer = buf
	if logFile != nil {
		w = io.MultiWriter(buf, logFile)
	}
	cmd.Stdout = w
	cmd.Stderr = w
}
