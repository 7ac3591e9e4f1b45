package domain

import "testing"

func TestIDMatchKeyAgreesWithSame(t *testing.T) {
	tests := []struct {
		name  string
		match IDMatch
		a, b  string
		same  bool
	}{
		{"exact equal", IDMatchExact, "shell-1", "shell-1", true},
		{"exact case differs", IDMatchExact, "Shell-1", "shell-1", false},
		{"fold ascii", IDMatchFold, "Shell-1", "SHELL-1", true},
		{"fold long s", IDMatchFold, "s", "\u017f", true},
		{"fold kelvin sign", IDMatchFold, "k", "\u212a", true},
		{"fold sharp s", IDMatchFold, "straße", "STRASSE", true},
		{"fold different ids", IDMatchFold, "shell-1", "shell-2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.Same(tt.a, tt.b); got != tt.same {
				t.Errorf("Same(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
			keysEqual := tt.match.Key(tt.a) == tt.match.Key(tt.b)
			if keysEqual != tt.same {
				t.Errorf("Key(%q) = %q, Key(%q) = %q, equal = %v, want %v",
					tt.a, tt.match.Key(tt.a), tt.b, tt.match.Key(tt.b), keysEqual, tt.same)
			}
		})
	}
}
