package www

import (
	"net/url"
	"testing"
)

func TestIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		key      string
		fallback int
		want     int
	}{
		{"present", "/electricity?hours=36", "hours", 12, 36},
		{"missing", "/electricity", "hours", 12, 12},
		{"not a number", "/electricity?hours=abc", "hours", 12, 12},
		{"empty value", "/electricity?hours=", "hours", 12, 12},
		{"other key", "/log?page=3", "pageSize", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.rawURL)
			if err != nil {
				t.Fatalf("parsing url: %v", err)
			}
			if got := intOrDefault(u, tt.key, tt.fallback); got != tt.want {
				t.Errorf("intOrDefault() = %d, want %d", got, tt.want)
			}
		})
	}
}
