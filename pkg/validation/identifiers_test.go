package validation

import (
	"strings"
	"testing"
)

func TestIsValidIdentifierChar(t *testing.T) {
	valid := []rune{'a', 'z', 'A', 'Z', '0', '9', '-', '_'}
	for _, ch := range valid {
		if !IsValidIdentifierChar(ch) {
			t.Errorf("IsValidIdentifierChar(%q) = false, want true", ch)
		}
	}

	invalid := []rune{' ', '.', '/', '\\', ':', '*', '?', '"', '<', '>', '|', '\n', 'é', '日'}
	for _, ch := range invalid {
		if IsValidIdentifierChar(ch) {
			t.Errorf("IsValidIdentifierChar(%q) = true, want false", ch)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "pipeline", false},
		{"with separators", "my-data_pipeline2", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"space", "my pipeline", true},
		{"max length", strings.Repeat("a", MaxNameLength), false},
		{"over max length", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name("graph", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Name(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNameErrorNamesTheKind(t *testing.T) {
	err := Name("layout", "")
	if err == nil || !strings.Contains(err.Error(), "layout") {
		t.Errorf("error should identify the kind: %v", err)
	}
}
