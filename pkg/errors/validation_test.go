package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "A", false},
		{"with spaces", "web server", false},
		{"unicode", "サーバ", false},
		{"multiline label", "first\nsecond", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1025), true},
		{"null byte", "a\x00b", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateIdentifier(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "images/bg.png", false},
		{"valid filename only", "bg.png", false},
		{"valid with dots", "v1.2.3/bg.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeUnknownAttribute,
		ErrCodeGroupConflict,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
