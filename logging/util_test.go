package logging

import (
	"log/slog"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name string
		str  *string
		want slog.Level
	}{
		{"nil defaults to info", nil, slog.LevelInfo},
		{"debug", strPtr("DEBUG"), slog.LevelDebug},
		{"lowercase warn", strPtr("warn"), slog.LevelWarn},
		{"error", strPtr("ERROR"), slog.LevelError},
		{"unknown defaults to info", strPtr("TRACE"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromString(tt.str); got != tt.want {
				t.Errorf("LevelFromString(%v) = %v, want %v", tt.str, got, tt.want)
			}
		})
	}
}
