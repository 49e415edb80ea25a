package hours

import (
	"testing"
	"time"
)

func TestDateHourFormatting(t *testing.T) {
	tests := []struct {
		dh  DateHour
		str string
		iso string
	}{
		{DateHour{Date: "2024-03-15", Hour: 7}, "2024-03-15 07", "2024-03-15T07:00:00Z"},
		{DateHour{Date: "2024-12-31", Hour: 23}, "2024-12-31 23", "2024-12-31T23:00:00Z"},
		{DateHour{Date: "2025-06-01", Hour: 0}, "2025-06-01 00", "2025-06-01T00:00:00Z"},
	}

	for _, tt := range tests {
		if got := tt.dh.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.dh.IsoString(); got != tt.iso {
			t.Errorf("IsoString() = %q, want %q", got, tt.iso)
		}
	}
}

func TestDateHourTime(t *testing.T) {
	dh := DateHour{Date: "2024-03-15", Hour: 7}
	want := time.Date(2024, time.March, 15, 7, 0, 0, 0, time.UTC)
	if got := dh.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}

	if got := (DateHour{Date: "not-a-date"}).Time(); !got.IsZero() {
		t.Errorf("Time() on a bad date = %v, want the zero time", got)
	}
}

func TestDateHourArithmetic(t *testing.T) {
	tests := []struct {
		name  string
		start DateHour
		hours int
		want  DateHour
	}{
		{"same day", DateHour{Date: "2024-03-15", Hour: 9}, 3, DateHour{Date: "2024-03-15", Hour: 12}},
		{"into next day", DateHour{Date: "2024-03-15", Hour: 22}, 5, DateHour{Date: "2024-03-16", Hour: 3}},
		{"into previous day", DateHour{Date: "2024-03-15", Hour: 2}, -4, DateHour{Date: "2024-03-14", Hour: 22}},
		{"across a month", DateHour{Date: "2024-02-29", Hour: 23}, 1, DateHour{Date: "2024-03-01", Hour: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Add(tt.hours); got != tt.want {
				t.Errorf("Add(%d) = %+v, want %+v", tt.hours, got, tt.want)
			}
			// Sub is the inverse of Add.
			if got := tt.want.Sub(tt.hours); got != tt.start {
				t.Errorf("Sub(%d) = %+v, want %+v", tt.hours, got, tt.start)
			}
		})
	}

	bad := DateHour{Date: "not-a-date", Hour: 4}
	if got := bad.Add(1); got != bad {
		t.Errorf("Add() on a bad date = %+v, want it unchanged", got)
	}
}

func TestDateHourCompare(t *testing.T) {
	a := DateHour{Date: "2024-03-15", Hour: 9}

	if got := a.Compare(a); got != 0 {
		t.Errorf("Compare() with itself = %d, want 0", got)
	}
	if got := a.Compare(a.Add(1)); got != -1 {
		t.Errorf("Compare() with the next hour = %d, want -1", got)
	}
	if got := a.Compare(a.Sub(30)); got != 1 {
		t.Errorf("Compare() with the previous day = %d, want 1", got)
	}
}

func TestDateHourIsZero(t *testing.T) {
	var zero DateHour
	if !zero.IsZero() {
		t.Error("the zero value should report IsZero")
	}
	if (DateHour{Date: "2024-03-15"}).IsZero() {
		t.Error("midnight of a real date is not zero")
	}
}

func TestFromTime(t *testing.T) {
	got := FromTime(time.Date(2024, time.March, 15, 7, 45, 10, 0, time.UTC))
	if want := (DateHour{Date: "2024-03-15", Hour: 7}); got != want {
		t.Errorf("FromTime() = %+v, want %+v", got, want)
	}

	// A non-UTC instant is keyed by its UTC hour.
	cet := time.FixedZone("CET", 60*60)
	got = FromTime(time.Date(2024, time.March, 15, 0, 30, 0, 0, cet))
	if want := (DateHour{Date: "2024-03-14", Hour: 23}); got != want {
		t.Errorf("FromTime() = %+v, want %+v", got, want)
	}

	if got := FromTime(time.Time{}); !got.IsZero() {
		t.Errorf("FromTime() of the zero time = %+v, want zero", got)
	}
}

func TestFromNow(t *testing.T) {
	now := time.Now().UTC()
	got := FromNow()
	if got.Date != now.Format("2006-01-02") || int(got.Hour) != now.Hour() {
		t.Errorf("FromNow() = %+v, now is %v", got, now)
	}
}

func TestFromMidnight(t *testing.T) {
	got := FromMidnight()
	if got.Hour != 0 {
		t.Errorf("FromMidnight() hour = %d, want 0", got.Hour)
	}
	if want := time.Now().UTC().Format("2006-01-02"); got.Date != want {
		t.Errorf("FromMidnight() date = %q, want %q", got.Date, want)
	}
}

func TestFromIso(t *testing.T) {
	got := FromIso("2024-03-15T07:00:00+01:00")
	want := time.Date(2024, time.March, 15, 6, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("FromIso() = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("FromIso() location = %v, want UTC", got.Location())
	}

	if got := FromIso("yesterday-ish"); !got.IsZero() {
		t.Errorf("FromIso() on garbage = %v, want the zero time", got)
	}
}

func TestLocalizedString(t *testing.T) {
	if err := SetDisplayTimezone("Europe/Amsterdam"); err != nil {
		t.Fatalf("SetDisplayTimezone() error: %v", err)
	}
	defer func() { displayLoc = time.UTC }()

	if got := DisplayLocation().String(); got != "Europe/Amsterdam" {
		t.Errorf("DisplayLocation() = %q, want Europe/Amsterdam", got)
	}

	// Winter, Amsterdam is at UTC+1.
	if got := (DateHour{Date: "2025-01-01", Hour: 23}).LocalizedString(); got != "2025-01-02 00" {
		t.Errorf("LocalizedString() = %q, want 2025-01-02 00", got)
	}
	// Summer, Amsterdam is at UTC+2.
	if got := (DateHour{Date: "2025-07-01", Hour: 12}).LocalizedString(); got != "2025-07-01 14" {
		t.Errorf("LocalizedString() = %q, want 2025-07-01 14", got)
	}
	// Unparsable dates fall back to the plain format.
	if got := (DateHour{Date: "then", Hour: 1}).LocalizedString(); got != "then 01" {
		t.Errorf("LocalizedString() fallback = %q, want \"then 01\"", got)
	}
}

func TestSetDisplayTimezoneInvalid(t *testing.T) {
	if err := SetDisplayTimezone("Not/AZone"); err == nil {
		t.Error("SetDisplayTimezone() accepted an unknown timezone")
	}
}

func TestFormatTimeInDisplayTimezone(t *testing.T) {
	if err := SetDisplayTimezone("Europe/Amsterdam"); err != nil {
		t.Fatalf("SetDisplayTimezone() error: %v", err)
	}
	defer func() { displayLoc = time.UTC }()

	in := time.Date(2025, time.January, 1, 23, 15, 30, 0, time.UTC)
	if got := FormatTimeInDisplayTimezone(in); got != "2025-01-02 00:15:30" {
		t.Errorf("FormatTimeInDisplayTimezone() = %q", got)
	}
}
