//go:build cgo

package imports

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codehunter/internal/findings"
	"codehunter/internal/parser"
)

func analyze(t *testing.T, src string) *Usage {
	t.Helper()
	unit, err := parser.NewParser().ParseSource(context.Background(), "m.py", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer unit.Close()
	return Analyze(unit)
}

func check(t *testing.T, root, src string) []findings.Finding {
	t.Helper()
	unit, err := parser.NewParser().ParseSource(context.Background(), filepath.Join(root, "m.py"), []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer unit.Close()
	c := findings.NewCollector(root)
	Check(c, unit, NewClassifier(root))
	return c.Findings()
}

func byRule(fs []findings.Finding, rule findings.Rule) []findings.Finding {
	var out []findings.Finding
	for _, f := range fs {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

func names(bs []Binding) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestUnusedImport(t *testing.T) {
	fs := check(t, t.TempDir(), "import os\n\nx = 1\n")
	if len(fs) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(fs), fs)
	}
	f := fs[0]
	if f.Rule != findings.RuleUnusedImport || f.Message != "Unused import: os" {
		t.Errorf("unexpected finding %v", f)
	}
	if f.Level != findings.Info {
		t.Errorf("stdlib unused import level = %s, want INFO", f.Level)
	}
	if f.File != "m.py" || f.Line != 1 {
		t.Errorf("location = %s:%s", f.File, f.Line)
	}
}

func TestAnnotationOnlyImport(t *testing.T) {
	fs := check(t, t.TempDir(), "import os\n\n\ndef f(x: os.PathLike):\n    return x\n")
	if got := byRule(fs, findings.RuleUnusedImport); len(got) != 0 {
		t.Errorf("os should not be unused: %v", got)
	}
	got := byRule(fs, findings.RuleAnnotationOnly)
	if len(got) != 1 {
		t.Fatalf("got %d annotation-only findings, want 1", len(got))
	}
	if got[0].Level != findings.Info {
		t.Errorf("level = %s, want INFO", got[0].Level)
	}
}

func TestDuplicateImport(t *testing.T) {
	fs := check(t, t.TempDir(), "import json\nimport json\n\nprint(json.dumps({}))\n")
	dups := byRule(fs, findings.RuleDuplicateImport)
	if len(dups) != 1 {
		t.Fatalf("got %d duplicate findings, want 1", len(dups))
	}
	if dups[0].Line != 2 || dups[0].Level != findings.Warning {
		t.Errorf("unexpected duplicate finding %v", dups[0])
	}
	if got := byRule(fs, findings.RuleUnusedImport); len(got) != 0 {
		t.Errorf("json is used: %v", got)
	}
}

func TestDuplicateImport_UnusedAsWell(t *testing.T) {
	fs := check(t, t.TempDir(), "import json\nimport json\n")
	if len(byRule(fs, findings.RuleDuplicateImport)) != 1 {
		t.Error("expected one duplicate finding")
	}
	unused := byRule(fs, findings.RuleUnusedImport)
	if len(unused) != 1 || unused[0].Line != 2 {
		t.Errorf("expected one unused finding at the latest binding, got %v", unused)
	}
}

func TestFunctionLocalImport(t *testing.T) {
	src := `def load():
    import json
    return json.loads("{}")


async def fetch():
    from urllib import request
    return request
`
	fs := check(t, t.TempDir(), src)
	local := byRule(fs, findings.RuleFunctionLocal)
	if len(local) != 2 {
		t.Fatalf("got %d function-local findings, want 2: %v", len(local), fs)
	}
	if local[0].Line != 2 || local[1].Line != 7 {
		t.Errorf("lines = %s, %s", local[0].Line, local[1].Line)
	}
	for _, f := range local {
		if f.Level != findings.Warning {
			t.Errorf("level = %s, want WARNING", f.Level)
		}
	}
	if got := byRule(fs, findings.RuleUnusedImport); len(got) != 0 {
		t.Errorf("unexpected unused findings %v", got)
	}
}

func TestWildcardImport(t *testing.T) {
	fs := check(t, t.TempDir(), "from helpers import *\n")
	if len(fs) != 1 {
		t.Fatalf("got %d findings, want 1", len(fs))
	}
	if fs[0].Message != "Wildcard import: from helpers import *" || fs[0].Level != findings.Warning {
		t.Errorf("unexpected finding %v", fs[0])
	}
}

func TestFutureImportsIgnored(t *testing.T) {
	fs := check(t, t.TempDir(), "from __future__ import annotations\n")
	if len(fs) != 0 {
		t.Errorf("expected no findings, got %v", fs)
	}
}

func TestUsage_References(t *testing.T) {
	src := `import os
import sys as system
from collections import OrderedDict, defaultdict
from typing import List
import logging.handlers
import shadow


class Thing(OrderedDict):
    def method(self, shadow=None, *args, **kwargs):
        return system.argv


def build(items: List[int]) -> None:
    handler = logging.handlers.RotatingFileHandler("x")
    counts = defaultdict(int, key=os)
    return handler, counts
`
	u := analyze(t, src)

	for _, name := range []string{"os", "system", "OrderedDict", "defaultdict", "logging"} {
		if !u.Used[name] {
			t.Errorf("%s should be used", name)
		}
	}
	if u.Used["List"] || !u.Annotated["List"] {
		t.Error("List should be annotation-only")
	}
	if u.Used["handlers"] {
		t.Error("attribute names are not references")
	}
	if u.Used["key"] {
		t.Error("keyword argument names are not references")
	}

	unused := names(u.Unused())
	if len(unused) != 1 || unused[0] != "shadow" {
		t.Errorf("unused = %v, want [shadow]", unused)
	}
	ann := names(u.AnnotationOnly())
	if len(ann) != 1 || ann[0] != "List" {
		t.Errorf("annotation-only = %v, want [List]", ann)
	}
}

func TestUsage_VariableAnnotation(t *testing.T) {
	u := analyze(t, "from decimal import Decimal\n\nprice: Decimal = 0\n")
	if got := names(u.AnnotationOnly()); len(got) != 1 || got[0] != "Decimal" {
		t.Errorf("annotation-only = %v", got)
	}
}

func TestUnusedSeverityByOrigin(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "helpers.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := check(t, root, "import sys\nimport helpers\nimport requests\n")
	want := map[string]findings.Severity{
		"Unused import: sys":      findings.Info,
		"Unused import: helpers":  findings.Warning,
		"Unused import: requests": findings.Warning,
	}
	if len(fs) != len(want) {
		t.Fatalf("got %d findings, want %d", len(fs), len(want))
	}
	for _, f := range fs {
		if want[f.Message] != f.Level {
			t.Errorf("%s: level = %s, want %s", f.Message, f.Level, want[f.Message])
		}
	}
}
