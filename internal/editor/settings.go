package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/dstudies/nbenv/internal/fileutil"
)

// Settings keys written by UpdateSettings. Both interpreter keys are set:
// python.defaultInterpreterPath is the current key, python.pythonPath is
// still read by older extension versions.
const (
	keyDefaultInterpreter = "python.defaultInterpreterPath"
	keyLegacyInterpreter  = "python.pythonPath"
	keyKernelFilter       = "jupyter.kernels.filter"
)

// SettingsPath returns the workspace settings file path for the given
// workspace directory (.vscode/settings.json).
func SettingsPath(workspaceDir string) string {
	return filepath.Join(workspaceDir, ".vscode", "settings.json")
}

// UpdateSettings merges the interpreter configuration into the workspace
// settings file, creating it (and the .vscode directory) when absent.
// Existing keys other than the interpreter and kernel-filter keys are
// preserved. Comments in an existing file are tolerated on read but not
// preserved on write; the result is plain indented JSON.
func UpdateSettings(workspaceDir, pythonPath string) (string, error) {
	abs, err := filepath.Abs(pythonPath)
	if err != nil {
		return "", fmt.Errorf("resolve interpreter path: %w", err)
	}

	path := SettingsPath(workspaceDir)
	settings, err := readSettings(path)
	if err != nil {
		return "", err
	}

	settings[keyDefaultInterpreter] = abs
	settings[keyLegacyInterpreter] = abs
	settings[keyKernelFilter] = []map[string]string{
		{"path": abs, "type": "pythonEnvironment"},
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write settings %s: %w", path, err)
	}
	return path, nil
}

// readSettings loads the existing settings file as a generic map. A missing
// file yields an empty map; a present but unparsable file is an error so
// the caller does not silently destroy hand-edited settings.
func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is derived from the workspace dir
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	settings := map[string]any{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return settings, nil
}
