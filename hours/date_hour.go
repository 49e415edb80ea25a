// Package hours keys tariff data by calendar date and hour of day,
// always in UTC. Conversion to the timezone people look at happens
// only at the display edge.
package hours

import (
	"cmp"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// displayLoc is the timezone used when rendering hours for people,
// default UTC. Tariff hours themselves are always keyed in UTC.
var displayLoc *time.Location = time.UTC

func SetDisplayTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	displayLoc = loc
	return nil
}

func DisplayLocation() *time.Location {
	return displayLoc
}

// DateHour identifies one UTC hour, such as 2025-01-01 hour 15. The
// zero value means "no hour" and is comparable with ==.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

// Time returns the start of the hour as a UTC instant, or the zero
// time when the date does not parse.
func (dh DateHour) Time() time.Time {
	day, err := time.Parse(dateLayout, dh.Date)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(dh.Hour) * time.Hour)
}

// LocalizedString renders the hour in the display timezone.
func (dh DateHour) LocalizedString() string {
	t := dh.Time()
	if t.IsZero() {
		return dh.String()
	}
	local := t.In(displayLoc)
	return fmt.Sprintf("%s %02d", local.Format(dateLayout), local.Hour())
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00Z", dh.Date, dh.Hour)
}

// Add moves the hour forward, crossing day boundaries as needed. A
// negative count moves it back. An unparsable DateHour is returned
// unchanged.
func (dh DateHour) Add(hours int) DateHour {
	t := dh.Time()
	if t.IsZero() {
		return dh
	}
	return FromTime(t.Add(time.Duration(hours) * time.Hour))
}

func (dh DateHour) Sub(hours int) DateHour {
	return dh.Add(-hours)
}

// Compare orders two hours chronologically, returning -1, 0 or 1.
func (dh DateHour) Compare(other DateHour) int {
	if c := cmp.Compare(dh.Date, other.Date); c != 0 {
		return c
	}
	return cmp.Compare(dh.Hour, other.Hour)
}

func (dh DateHour) IsZero() bool {
	return dh == DateHour{}
}

// FromTime keys the instant by its UTC date and hour.
func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	t = t.UTC()
	return DateHour{Date: t.Format(dateLayout), Hour: uint8(t.Hour())}
}

func FromNow() DateHour {
	return FromTime(time.Now())
}

// FromMidnight returns hour zero of the current UTC day.
func FromMidnight() DateHour {
	dh := FromNow()
	dh.Hour = 0
	return dh
}

// FromIso parses an RFC3339 timestamp into a UTC instant, returning
// the zero time when the input does not parse.
func FromIso(str string) time.Time {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func FormatTimeInDisplayTimezone(t time.Time) string {
	return t.In(displayLoc).Format("2006-01-02 15:04:05")
}
