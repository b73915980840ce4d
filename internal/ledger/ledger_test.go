package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return s
}

func TestRecordAndQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openStore(t)

	started := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	finished := started.Add(3 * time.Minute)

	runID, err := s.RecordRun(ctx, KindBootstrap, started, finished, false, []Item{
		{Name: "pandas", OK: true},
		{Name: "not-a-real-package", OK: false, Detail: "No matching distribution found"},
		{Name: "numpy", OK: true},
	})
	if err != nil {
		t.Fatalf("RecordRun() error: %v", err)
	}

	runs, err := s.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Runs() = %d rows, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != runID || r.Kind != KindBootstrap || r.OK {
		t.Errorf("run = %+v, want id=%d kind=bootstrap ok=false", r, runID)
	}
	if !r.StartedAt.Equal(started) || !r.FinishedAt.Equal(finished) {
		t.Errorf("timestamps = %v/%v, want %v/%v", r.StartedAt, r.FinishedAt, started, finished)
	}

	items, err := s.Items(ctx, runID)
	if err != nil {
		t.Fatalf("Items() error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Items() = %d rows, want 3", len(items))
	}
	// Insertion order is preserved: the install list order is meaningful.
	if items[0].Name != "pandas" || items[1].Name != "not-a-real-package" || items[2].Name != "numpy" {
		t.Errorf("item order = %v", items)
	}
	if items[1].OK || items[1].Detail == "" {
		t.Errorf("failed item = %+v, want ok=false with detail", items[1])
	}
}

func TestRunsOrderAndLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		if _, err := s.RecordRun(ctx, KindExtensions, now, now.Add(time.Minute), true, nil); err != nil {
			t.Fatalf("RecordRun() error: %v", err)
		}
	}

	runs, err := s.Runs(ctx, 3)
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Runs(limit=3) = %d rows, want 3", len(runs))
	}
	if runs[0].ID < runs[1].ID || runs[1].ID < runs[2].ID {
		t.Errorf("runs not newest-first: %v %v %v", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s1, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	if _, err := s1.RecordRun(ctx, KindBootstrap, time.Now(), time.Now(), true, nil); err != nil {
		t.Fatalf("RecordRun() error: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Re-opening runs the schema DDL again; IF NOT EXISTS keeps the data.
	s2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer s2.Close() //nolint:errcheck // test cleanup

	runs, err := s2.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Runs() after reopen = %d rows, want 1", len(runs))
	}
}

func TestItemsEmptyRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openStore(t)

	runID, err := s.RecordRun(ctx, KindExtensions, time.Now(), time.Now(), true, nil)
	if err != nil {
		t.Fatalf("RecordRun() error: %v", err)
	}

	items, err := s.Items(ctx, runID)
	if err != nil {
		t.Fatalf("Items() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Items() = %v, want empty", items)
	}
}
