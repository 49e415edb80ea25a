package easyenergy

import (
	"testing"
	"time"
)

func TestElectricityWindow(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		end          time.Time
		loc          *time.Location
		expectedFrom time.Time
		expectedTill time.Time
	}{
		{
			name:         "single day in CET",
			start:        time.Date(2022, time.December, 29, 0, 0, 0, 0, cet),
			end:          time.Date(2022, time.December, 29, 0, 0, 0, 0, cet),
			loc:          cet,
			expectedFrom: time.Date(2022, time.December, 28, 22, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 29, 23, 0, 0, 0, time.UTC),
		},
		{
			name:         "multi day span",
			start:        time.Date(2022, time.December, 27, 0, 0, 0, 0, cet),
			end:          time.Date(2022, time.December, 29, 0, 0, 0, 0, cet),
			loc:          cet,
			expectedFrom: time.Date(2022, time.December, 26, 22, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 29, 23, 0, 0, 0, time.UTC),
		},
		{
			name:         "utc caller",
			start:        time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			end:          time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			loc:          time.UTC,
			expectedFrom: time.Date(2023, time.May, 31, 23, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, till := electricityWindow(tt.start, tt.end, tt.loc)
			if !from.Equal(tt.expectedFrom) {
				t.Errorf("electricityWindow() from expected %v, got %v", tt.expectedFrom, from)
			}
			if !till.Equal(tt.expectedTill) {
				t.Errorf("electricityWindow() till expected %v, got %v", tt.expectedTill, till)
			}
		})
	}
}

func TestGasWindow(t *testing.T) {
	day := time.Date(2022, time.December, 14, 0, 0, 0, 0, cet)

	tests := []struct {
		name         string
		localHour    int
		expectedFrom time.Time
		expectedTill time.Time
	}{
		{
			name:         "afternoon",
			localHour:    15,
			expectedFrom: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 15, 5, 0, 0, 0, time.UTC),
		},
		{
			name:         "start of trading day",
			localHour:    6,
			expectedFrom: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 15, 5, 0, 0, 0, time.UTC),
		},
		{
			name:         "late evening",
			localHour:    23,
			expectedFrom: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 15, 5, 0, 0, 0, time.UTC),
		},
		{
			name:         "early morning",
			localHour:    4,
			expectedFrom: time.Date(2022, time.December, 13, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
		},
		{
			name:         "just before trading day rolls over",
			localHour:    5,
			expectedFrom: time.Date(2022, time.December, 13, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
		},
		{
			name:         "midnight",
			localHour:    0,
			expectedFrom: time.Date(2022, time.December, 13, 5, 0, 0, 0, time.UTC),
			expectedTill: time.Date(2022, time.December, 14, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2022, time.December, 14, tt.localHour, 30, 0, 0, cet)
			from, till := gasWindow(day, day, now, cet)
			if !from.Equal(tt.expectedFrom) {
				t.Errorf("gasWindow() from expected %v, got %v", tt.expectedFrom, from)
			}
			if !till.Equal(tt.expectedTill) {
				t.Errorf("gasWindow() till expected %v, got %v", tt.expectedTill, till)
			}
		})
	}
}

func TestApiTimeLayout(t *testing.T) {
	ts := time.Date(2022, time.December, 28, 22, 0, 0, 0, time.UTC)
	expected := "2022-12-28T22:00:00.000Z"
	if s := ts.Format(apiTimeLayout); s != expected {
		t.Errorf("Format(apiTimeLayout) expected %q, got %q", expected, s)
	}
}
