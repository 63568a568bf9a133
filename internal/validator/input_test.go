package validator

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	v := NewInputValidator()

	tests := []struct {
		desc    string
		input   string
		wantErr bool
	}{
		{"valid", "Add retry logic to the payment client", false},
		{"too short", "hi", true},
		{"too long", strings.Repeat("a", 2001), true},
		{"whitespace only", "        ", true},
		{"invalid utf8", "valid prefix \xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := v.Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	v := NewInputValidator()

	if got := v.Sanitize("  add   retry\t\tlogic \n"); got != "add retry logic" {
		t.Fatalf("Sanitize = %q", got)
	}
}
