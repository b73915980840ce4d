package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return m
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("creates settings file and vscode dir", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()
		python := filepath.Join(workspace, "course_env", "bin", "python")

		path, err := UpdateSettings(workspace, python)
		if err != nil {
			t.Fatalf("UpdateSettings() error: %v", err)
		}
		if want := SettingsPath(workspace); path != want {
			t.Errorf("returned path = %q, want %q", path, want)
		}

		settings := readJSON(t, path)
		got, _ := settings["python.defaultInterpreterPath"].(string)
		if !strings.Contains(got, "course_env") {
			t.Errorf("interpreter path %q does not point inside the environment", got)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("interpreter path %q is not absolute", got)
		}
		if settings["python.pythonPath"] != got {
			t.Errorf("legacy key = %v, want %q", settings["python.pythonPath"], got)
		}
	})

	t.Run("preserves unrelated keys", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()
		path := SettingsPath(workspace)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		existing := `{"editor.fontSize": 14, "files.autoSave": "afterDelay"}`
		if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := UpdateSettings(workspace, filepath.Join(workspace, "env", "bin", "python")); err != nil {
			t.Fatalf("UpdateSettings() error: %v", err)
		}

		settings := readJSON(t, path)
		if settings["editor.fontSize"] != float64(14) {
			t.Errorf("editor.fontSize = %v, want 14", settings["editor.fontSize"])
		}
		if settings["files.autoSave"] != "afterDelay" {
			t.Errorf("files.autoSave = %v, want afterDelay", settings["files.autoSave"])
		}
	})

	t.Run("tolerates jsonc comments and trailing commas", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()
		path := SettingsPath(workspace)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		existing := `{
	// editor tweaks
	"editor.tabSize": 4, /* spaces, not tabs */
	"workbench.colorTheme": "Default Dark+",
}`
		if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := UpdateSettings(workspace, filepath.Join(workspace, "env", "bin", "python")); err != nil {
			t.Fatalf("UpdateSettings() error: %v", err)
		}

		settings := readJSON(t, path)
		if settings["editor.tabSize"] != float64(4) {
			t.Errorf("editor.tabSize = %v, want 4", settings["editor.tabSize"])
		}
	})

	t.Run("overwrites stale interpreter keys", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()
		path := SettingsPath(workspace)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		existing := `{"python.defaultInterpreterPath": "/old/python", "python.pythonPath": "/old/python"}`
		if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
			t.Fatal(err)
		}

		newPython := filepath.Join(workspace, "env", "bin", "python")
		if _, err := UpdateSettings(workspace, newPython); err != nil {
			t.Fatalf("UpdateSettings() error: %v", err)
		}

		settings := readJSON(t, path)
		got, _ := settings["python.defaultInterpreterPath"].(string)
		if got == "/old/python" {
			t.Error("stale interpreter path not overwritten")
		}
	})

	t.Run("rejects unparsable settings file", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()
		path := SettingsPath(workspace)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("not json at all {{{"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := UpdateSettings(workspace, "/usr/bin/python3"); err == nil {
			t.Error("UpdateSettings() error = nil, want parse error (must not destroy hand-edited settings)")
		}
	})

	t.Run("writes kernel filter entry", func(t *testing.T) {
		t.Parallel()
		workspace := t.TempDir()

		path, err := UpdateSettings(workspace, filepath.Join(workspace, "env", "bin", "python"))
		if err != nil {
			t.Fatalf("UpdateSettings() error: %v", err)
		}

		settings := readJSON(t, path)
		filter, ok := settings["jupyter.kernels.filter"].([]any)
		if !ok || len(filter) != 1 {
			t.Fatalf("jupyter.kernels.filter = %v, want one entry", settings["jupyter.kernels.filter"])
		}
		entry, _ := filter[0].(map[string]any)
		if entry["type"] != "pythonEnvironment" {
			t.Errorf("filter entry type = %v, want pythonEnvironment", entry["type"])
		}
	})
}
