package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		name     string
		number   float64
		decimals int
		expected float64
	}{
		{name: "two decimals", number: 89.8464, decimals: 2, expected: 89.85},
		{name: "five decimals", number: 0.1234567, decimals: 5, expected: 0.12346},
		{name: "negative", number: -0.002771, decimals: 5, expected: -0.00277},
		{name: "already rounded", number: 1.47951, decimals: 5, expected: 1.47951},
		{name: "zero decimals", number: 12.6, decimals: 0, expected: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundFloat64(tt.number, tt.decimals); got != tt.expected {
				t.Errorf("RoundFloat64(%v, %d) expected %v, got %v", tt.number, tt.decimals, tt.expected, got)
			}
		})
	}
}

func TestTwoDecimals(t *testing.T) {
	if got := TwoDecimals(1.005001); got != 1.01 {
		t.Errorf("TwoDecimals() expected 1.01, got %v", got)
	}
}

func TestFiveDecimals(t *testing.T) {
	if got := FiveDecimals(0.069410004); got != 0.06941 {
		t.Errorf("FiveDecimals() expected 0.06941, got %v", got)
	}
}

func TestEurPerMWh(t *testing.T) {
	if got := EurPerMWh(0.125); got != 125 {
		t.Errorf("EurPerMWh() expected 125, got %v", got)
	}
}
