//go:build !cgo

package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStub_Unavailable(t *testing.T) {
	if IsAvailable() {
		t.Fatal("IsAvailable() = true without cgo")
	}

	p := NewParser()
	_, err := p.ParseSource(context.Background(), "m.py", []byte("x = 1\n"))
	if CategoryOf(err) != Unavailable {
		t.Errorf("category = %s, want %s", CategoryOf(err), Unavailable)
	}
	if !errors.Is(err, ErrNoCGO) {
		t.Errorf("error %v should wrap ErrNoCGO", err)
	}

	_, err = p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
	if CategoryOf(err) != ReadError || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want %s", err, ReadError)
	}
}
