package errors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestMessages(t *testing.T) {
	zipErr := errors.New("zip: not a valid zip file")

	tests := []struct {
		name     string
		err      error
		wantText string
		wantUser string
	}{
		{
			name:     "ratio out of range",
			err:      ValidateRatio("delete_ratio", 1.5),
			wantText: "INVALID_RATIO: delete_ratio must be in [0, 1], got 1.5",
			wantUser: "delete_ratio must be in [0, 1], got 1.5",
		},
		{
			name:     "unreadable deck",
			err:      Wrap(ErrCodeInvalidDocument, zipErr, "reading %s", "talk.pptx"),
			wantText: "INVALID_DOCUMENT: reading talk.pptx: zip: not a valid zip file",
			wantUser: "reading talk.pptx: zip: not a valid zip file",
		},
		{
			name:     "nested codes are stripped",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidRange, "scale_min > scale_max"), "profile heavy.toml"),
			wantText: "INVALID_CONFIG: profile heavy.toml: INVALID_RANGE: scale_min > scale_max",
			wantUser: "profile heavy.toml: scale_min > scale_max",
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("saving out.pptx: %w", os.ErrPermission),
			wantText: "saving out.pptx: permission denied",
			wantUser: "saving out.pptx: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantText {
				t.Errorf("Error() = %q, want %q", got, tt.wantText)
			}
			if got := UserMessage(tt.err); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing.pptx"))
	notFound := Wrap(ErrCodeFileNotFound, statErr, "presentation missing.pptx not found")

	// Callers outside this package add context with fmt.Errorf.
	err := fmt.Errorf("variant 3: %w", notFound)

	if got := GetCode(err); got != ErrCodeFileNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeFileNotFound)
	}
	if !Is(err, ErrCodeFileNotFound) {
		t.Error("Is(FILE_NOT_FOUND) = false through fmt.Errorf")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("the os error is no longer reachable")
	}

	// The outermost code wins.
	outer := Wrap(ErrCodeInternal, New(ErrCodeInvalidRatio, "font_ratio"), "apply")
	if Is(outer, ErrCodeInvalidRatio) {
		t.Error("Is matched an inner code")
	}
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode = %q, want %q", GetCode(outer), ErrCodeInternal)
	}

	if GetCode(os.ErrClosed) != "" || Is(nil, ErrCodeInternal) {
		t.Error("uncoded errors must report no code")
	}
}
