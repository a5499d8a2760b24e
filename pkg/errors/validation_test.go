package errors

import "testing"

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"json", "markdown", "dot", "svg"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	for _, f := range []string{"", "pdf", "JSON"} {
		if err := ValidateFormat(f); !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestValidateDamping(t *testing.T) {
	for _, d := range []float64{0, 0.5, 0.85, 0.999} {
		if err := ValidateDamping(d); err != nil {
			t.Errorf("ValidateDamping(%v) = %v, want nil", d, err)
		}
	}
	for _, d := range []float64{-0.1, 1, 1.5} {
		if err := ValidateDamping(d); !Is(err, ErrCodeInvalidDamping) {
			t.Errorf("ValidateDamping(%v) = %v, want INVALID_DAMPING", d, err)
		}
	}
}

func TestValidateDocumentKey(t *testing.T) {
	tests := []struct {
		key string
		ok  bool
	}{
		{"algebra", true},
		{"topics/linear-algebra", true},
		{"a.b_c-d", true},
		{"", false},
		{"../etc/passwd", false},
		{"/absolute", false},
		{"a//b", false},
		{"win\\path", false},
		{"nul\x00byte", false},
	}
	for _, tt := range tests {
		err := ValidateDocumentKey(tt.key)
		if tt.ok && err != nil {
			t.Errorf("ValidateDocumentKey(%q) = %v, want nil", tt.key, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ValidateDocumentKey(%q) = nil, want error", tt.key)
		}
	}
}
