package easyenergy

import "time"

// apiTimeLayout is the timestamp format the tariff endpoints expect in
// their query parameters. Timestamps are always rendered in UTC.
const apiTimeLayout = "2006-01-02T15:04:05.000Z"

// electricityWindow maps the local calendar days start through end onto
// the UTC request window for electricity tariffs. The window opens one
// hour before local midnight of the start date and closes a full day
// after local midnight of the end date.
func electricityWindow(start, end time.Time, loc *time.Location) (from, till time.Time) {
	from = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc).UTC().Add(-time.Hour)
	till = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc).UTC().Add(24 * time.Hour)
	return from, till
}

// gasWindow maps the local calendar days start through end onto the UTC
// request window for gas tariffs. Gas is priced per trading day running
// from 06:00 to 06:00 local time, so the window covering "today" depends
// on which side of 06:00 the clock is on: during the day the window runs
// forward into tomorrow, at night it reaches back into yesterday.
func gasWindow(start, end, now time.Time, loc *time.Location) (from, till time.Time) {
	from = time.Date(start.Year(), start.Month(), start.Day(), 6, 0, 0, 0, loc).UTC()
	till = time.Date(end.Year(), end.Month(), end.Day(), 6, 0, 0, 0, loc).UTC()
	if now.In(loc).Hour() >= 6 {
		till = till.Add(24 * time.Hour)
	} else {
		from = from.Add(-24 * time.Hour)
	}
	return from, till
}
