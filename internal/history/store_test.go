package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"codehunter/internal/diagnosis"
	"codehunter/internal/findings"
	"codehunter/internal/health"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), ".codehunter", "history.db"), nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(score int) *diagnosis.Report {
	fs := []findings.Finding{
		{Level: findings.Critical, Message: "Circular dependency detected", File: "a.py → b.py", Line: findings.NoLine, Rule: findings.RuleCircularImport},
		{Level: findings.Info, Message: "Unused import: os", File: "a.py", Line: 1, Rule: findings.RuleUnusedImport},
	}
	h := health.Calculate(fs)
	h.Score = score
	return &diagnosis.Report{Root: "/project", Findings: fs, Report: h}
}

func TestStore_RecordAndGet(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Record(sampleReport(79))
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a run ID")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Root != "/project" || got.Score != 79 || len(got.Findings) != 2 {
		t.Errorf("unexpected report %+v", got)
	}
	if got.Findings[0].Line != findings.NoLine {
		t.Errorf("line = %v, want NoLine", got.Findings[0].Line)
	}
	if got.Findings[1].Rule != findings.RuleUnusedImport {
		t.Errorf("rule = %q", got.Findings[1].Rule)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListAndPrune(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []int{90, 70, 40} {
		at := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return at }
		if _, err := store.Record(sampleReport(score)); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].Score != 40 || runs[2].Score != 90 {
		t.Errorf("runs not newest first: %+v", runs)
	}
	if runs[0].Findings != 2 || runs[0].Critical != 1 || runs[0].Info != 1 {
		t.Errorf("unexpected counts %+v", runs[0])
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("created at = %v", runs[0].CreatedAt)
	}

	limited, err := store.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Score != 40 {
		t.Errorf("List(1) = %+v", limited)
	}

	removed, err := store.Prune(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("pruned %d, want 2", removed)
	}
	runs, _ = store.List(0)
	if len(runs) != 1 || runs[0].Score != 40 {
		t.Errorf("after prune: %+v", runs)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.Record(sampleReport(100))
	if err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	store, err = Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()
	if _, err := store.Get(id); err != nil {
		t.Errorf("run lost after reopen: %v", err)
	}
}
