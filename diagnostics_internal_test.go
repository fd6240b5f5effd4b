package vkboot

import (
	"strings"
	"testing"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"short", "abc", 8, "abc"},
		{"ascii", "abcdef", 3, "abc"},
		{"two-byte rune", "héllo", 2, "h"},
		{"four-byte rune", "a😀b", 4, "a"},
		{"rune ends at cut", "a😀b", 5, "a😀"},
		{"zero", "abc", 0, ""},
		// Continuation bytes only: cut where asked instead of scanning back to 0.
		{"invalid", strings.Repeat("\x80", 5000), 4096, strings.Repeat("\x80", 4096)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateUTF8(tt.s, tt.n); got != tt.want {
				t.Errorf("truncateUTF8(%q, %d) = %q, want %q", shorten(tt.s), tt.n, shorten(got), shorten(tt.want))
			}
		})
	}
}

func shorten(s string) string {
	if len(s) > 16 {
		return s[:16] + "..."
	}
	return s
}
