//go:build cgo

package graph

import (
	"context"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	root := t.TempDir()
	files := writeFiles(t, root, map[string]string{
		"a.py":            "import b\nimport os\n",
		"b.py":            "from a import thing\n",
		"broken.py":       "import a\ndef (:\n",
		"pkg/__init__.py": "",
		"pkg/models.py":   "from . import helpers\nfrom .helpers import x\n",
		"pkg/helpers.py":  "from .. import a\nimport requests\n",
		"pkg/sub/deep.py": "from ...b import y\nfrom pkg import models\n",
	})

	g := Build(context.Background(), root, files, nil)

	if g.NumNodes() != len(files) {
		t.Errorf("nodes = %d, want %d", g.NumNodes(), len(files))
	}
	wantEdges := [][2]string{
		{"a.py", "b.py"},
		{"b.py", "a.py"},
		{"pkg/models.py", "pkg/helpers.py"},
		{"pkg/helpers.py", "a.py"},
		{"pkg/sub/deep.py", "b.py"},
		{"pkg/sub/deep.py", "pkg/models.py"},
	}
	for _, e := range wantEdges {
		if !g.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %s -> %s", e[0], e[1])
		}
	}
	if g.NumEdges() != len(wantEdges) {
		t.Errorf("edges = %d, want %d: %v", g.NumEdges(), len(wantEdges), g.Map())
	}
	if len(g.Neighbors("broken.py")) != 0 {
		t.Error("unparseable module should have no edges")
	}

	cycles := g.FindCycles()
	if len(cycles) != 1 || strings.Join(cycles[0], ",") != "a.py,b.py" {
		t.Errorf("cycles = %v", cycles)
	}
}
