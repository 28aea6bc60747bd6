//go:build cgo

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codehunter/internal/testutil"
)

// cycleProject scores 60 (WARNING): one cycle, two internal unused imports
// and two import-only files.
func cycleProject(t *testing.T) string {
	t.Helper()
	return testutil.WriteProject(t, map[string]string{
		"a.py": "import b\n",
		"b.py": "import a\n",
	})
}

func TestDiagnose_JSON(t *testing.T) {
	root := cycleProject(t)

	code, out, stderr := execute(t, "diagnose", root, "--format", "json", "--quiet")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	var report struct {
		Findings []map[string]any `json:"findings"`
		Score    int              `json:"score"`
		Status   string           `json:"status"`
		Critical int              `json:"critical"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Score != 60 || report.Status != "WARNING" || report.Critical != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Findings) != 5 {
		t.Errorf("got %d findings", len(report.Findings))
	}
}

func TestDiagnose_Sort(t *testing.T) {
	root := cycleProject(t)

	code, out, _ := execute(t, "diagnose", root, "--format", "json", "--sort", "-q")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	var report struct {
		Findings []struct {
			Level string `json:"level"`
		} `json:"findings"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Findings) == 0 || report.Findings[0].Level != "CRITICAL" {
		t.Errorf("first finding should be CRITICAL: %+v", report.Findings)
	}
}

func TestDiagnose_FailOn(t *testing.T) {
	root := cycleProject(t)

	tests := []struct {
		failOn string
		want   int
	}{
		{"warning", exitThreshold},
		{"critical", exitOK},
		{"CRITICAL", exitOK},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			code, _, stderr := execute(t, "diagnose", root, "--fail-on", tt.failOn, "-q")
			if code != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
			if tt.want == exitThreshold && !strings.Contains(stderr, "reached the WARNING threshold") {
				t.Errorf("stderr = %q", stderr)
			}
		})
	}

	code, _, _ := execute(t, "diagnose", root, "--fail-on", "healthy", "-q")
	if code != exitUsage {
		t.Errorf("invalid --fail-on exit code = %d, want %d", code, exitUsage)
	}
}

func TestDiagnose_OutputFile(t *testing.T) {
	root := cycleProject(t)
	outPath := filepath.Join(t.TempDir(), "report.sarif")

	code, out, stderr := execute(t, "diagnose", root, "--format", "sarif", "--output", outPath, "-q")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if out != "" {
		t.Errorf("stdout should be empty when --output is set, got %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"version": "2.1.0"`) {
		t.Errorf("not a SARIF document:\n%s", data)
	}
}

func TestDiagnose_Errors(t *testing.T) {
	root := cycleProject(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing root", []string{"diagnose", filepath.Join(root, "missing")}, exitUsage, "INVALID_PROJECT_PATH"},
		{"bad format", []string{"diagnose", root, "--format", "pdf"}, exitError, "EXPORT_FAILED"},
		{"bad max lines", []string{"diagnose", root, "--max-lines", "0"}, exitUsage, "CONFIG_INVALID"},
		{"bad exclude", []string{"diagnose", root, "--exclude", "[x"}, exitUsage, "CONFIG_INVALID"},
		{"too many args", []string{"diagnose", root, root}, exitError, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, append(tt.args, "-q")...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestDiagnose_ConfigFile(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"main.py":                 "import os\nprint(os.sep)\n",
		"migrations/0001.py":      "",
		".codehunter/config.toml": "[walker]\nexclude = [\"migrations\"]\n\n[output]\nformat = \"json\"\n",
	})

	code, out, stderr := execute(t, "diagnose", root, "-q")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var report struct {
		Findings []any `json:"findings"`
		Score    int   `json:"score"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("config output.format should select JSON: %v\n%s", err, out)
	}
	if len(report.Findings) != 0 || report.Score != 100 {
		t.Errorf("report = %+v", report)
	}
}

func TestReport_Human(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"pyproject.toml": "[project]\nname = \"shop\"\nversion = \"2.0.0\"\n",
		"app.py":         "def main():\n    return 1\n",
	})

	code, out, stderr := execute(t, "report", root, "-q")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"Project: shop 2.0.0", "Health: 100/100 (HEALTHY)", "Recommendations:", "Import graph:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	root := cycleProject(t)

	code, out, _ := execute(t, "history", "--path", root)
	if code != exitOK || !strings.Contains(out, "No runs recorded.") {
		t.Fatalf("empty history: code=%d out=%q", code, out)
	}

	for i := 0; i < 2; i++ {
		if code, _, stderr := execute(t, "diagnose", root, "--record", "-q"); code != exitOK {
			t.Fatalf("diagnose --record exit code = %d, stderr: %s", code, stderr)
		}
	}

	code, out, stderr := execute(t, "history", "--path", root, "--format", "json", "-q")
	if code != exitOK {
		t.Fatalf("history exit code = %d, stderr: %s", code, stderr)
	}
	var runs []struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(runs) != 2 || runs[0].Score != 60 {
		t.Fatalf("runs = %+v", runs)
	}

	code, out, _ = execute(t, "history", "--path", root, "-q")
	if code != exitOK || !strings.Contains(out, "SCORE") || !strings.Contains(out, runs[0].ID) {
		t.Errorf("human history: code=%d\n%s", code, out)
	}

	code, out, _ = execute(t, "history", "show", runs[0].ID, "--path", root, "--format", "json", "-q")
	if code != exitOK || !strings.Contains(out, `"score": 60`) {
		t.Errorf("history show: code=%d\n%s", code, out)
	}

	code, _, stderr = execute(t, "history", "show", "nope", "--path", root, "-q")
	if code != exitError || !strings.Contains(stderr, "HISTORY_UNAVAILABLE") {
		t.Errorf("unknown run: code=%d stderr=%q", code, stderr)
	}

	code, out, _ = execute(t, "history", "--path", root, "--prune", "1", "-q")
	if code != exitOK || !strings.Contains(out, "Removed 1 runs.") {
		t.Errorf("prune: code=%d out=%q", code, out)
	}
}
