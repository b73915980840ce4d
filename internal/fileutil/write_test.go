package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.json")

		if err := WriteFileAtomic(path, []byte(`{"a":1}`), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("content = %q, want %q", got, `{"a":1}`)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

		if err := WriteFileAtomic(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat after write: %v", err)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("applies mode", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not meaningful on windows")
		}
		path := filepath.Join(t.TempDir(), "out.txt")

		if err := WriteFileAtomic(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("mode = %o, want %o", perm, 0o600)
		}
	})

	t.Run("empty path rejected", func(t *testing.T) {
		t.Parallel()
		err := WriteFileAtomic("", []byte("x"), 0o644)
		if !errors.Is(err, ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := WriteFileAtomic(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1 (no temp file leak)", len(entries))
		}
	})
}
