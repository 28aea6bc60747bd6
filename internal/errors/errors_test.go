package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := New(InvalidProjectPath, "project root not found", cause)

	if err.Code != InvalidProjectPath {
		t.Errorf("Code = %v, want %v", err.Code, InvalidProjectPath)
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestCodeHunterError_Error(t *testing.T) {
	tests := []struct {
		name      string
		err       *CodeHunterError
		wantParts []string
	}{
		{
			name:      "with cause",
			err:       New(WalkFailed, "cannot enumerate project", errors.New("permission denied")),
			wantParts: []string{"WALK_FAILED", "cannot enumerate project", "permission denied"},
		},
		{
			name:      "without cause",
			err:       Newf(ExportFailed, "unsupported format %q", "pdf"),
			wantParts: []string{"EXPORT_FAILED", `unsupported format "pdf"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, missing %q", got, part)
				}
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", New(ConfigInvalid, "bad config", nil))
	if got := CodeOf(wrapped); got != ConfigInvalid {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, ConfigInvalid)
	}
	if got := CodeOf(errors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %v, want %v", got, InternalError)
	}
	if !errors.Is(wrapped, &CodeHunterError{Code: ConfigInvalid}) {
		t.Error("errors.Is should match by code")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	if len(GetSuggestedFixes(ConfigInvalid)) == 0 {
		t.Error("expected fixes for CONFIG_INVALID")
	}
	if GetSuggestedFixes(InternalError) != nil {
		t.Error("expected no fixes for INTERNAL_ERROR")
	}
}
