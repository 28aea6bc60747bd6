package walker

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"codehunter/internal/testutil"
)

func TestWalk_Entries(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"main.py":                     "",
		"README.md":                   "",
		"app/__init__.py":             "",
		"app/z_last.py":               "",
		"app/models/user.py":          "",
		"empty/":                      "",
		".venv/lib/x.py":              "",
		".hidden/y.py":                "",
		"__pycache__/main.cpython.py": "",
		"src/cache/data.py":           "",
		"src/recall/r.py":             "",
	})

	w, err := New(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	entries, err := w.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []Entry{
		{Dir: ".", Files: []string{"README.md", "main.py"}},
		{Dir: "app", Files: []string{"__init__.py", "z_last.py"}},
		{Dir: "app/models", Files: []string{"user.py"}},
		{Dir: "empty", Files: []string{}},
		{Dir: "src", Files: []string{}},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Entries() =\n%v\nwant\n%v", entries, want)
	}

	files := SourceFiles(entries)
	wantFiles := []string{"main.py", "app/__init__.py", "app/z_last.py", "app/models/user.py"}
	if !reflect.DeepEqual(files, wantFiles) {
		t.Errorf("SourceFiles() = %v, want %v", files, wantFiles)
	}
}

func TestWalk_Exclude(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"main.py":             "",
		"main_test.py":        "",
		"migrations/0001.py":  "",
		"app/migrations/x.py": "",
		"app/views.py":        "",
	})

	w, err := New(root, Options{Exclude: []string{"*_test.py", "migrations", "app/migrations"}})
	if err != nil {
		t.Fatal(err)
	}
	entries, err := w.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := SourceFiles(entries)
	want := []string{"main.py", "app/views.py"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SourceFiles() = %v, want %v", got, want)
	}
}

func TestWalk_CustomIgnore(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"cache/c.py": "",
		"build/b.py": "",
	})
	w, err := New(root, Options{IgnoreDirs: []string{"build"}})
	if err != nil {
		t.Fatal(err)
	}
	entries, err := w.Entries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := SourceFiles(entries)
	if !reflect.DeepEqual(got, []string{"cache/c.py"}) {
		t.Errorf("SourceFiles() = %v", got)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New(t.TempDir(), Options{Exclude: []string{"[unclosed"}}); err == nil {
		t.Error("expected error for invalid pattern")
	}
	if err := ValidatePatterns([]string{"*.py", "[unclosed"}); err == nil {
		t.Error("expected ValidatePatterns error")
	}
	if err := ValidatePatterns([]string{"*.py", "tests/**"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Entries(context.Background()); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalk_StopsOnCallbackError(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"a/x.py": "", "b/y.py": ""})
	w, err := New(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	stop := errors.New("stop")
	calls := 0
	err = w.Walk(context.Background(), func(Entry) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err=%v calls=%d", err, calls)
	}
}

func TestWalk_Cancelled(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"a.py": ""})
	w, err := New(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.Entries(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
