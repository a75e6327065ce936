package book

import "time"

// NextWeekdayOnOrAfter returns the next date whose weekday equals target,
// counting from t inclusive. When t already falls on target, t is returned
// unchanged. Pure and total over all valid dates.
func NextWeekdayOnOrAfter(t time.Time, target time.Weekday) time.Time {
	delta := (int(target) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, delta)
}

// AdjustBirthday moves a birthday off the weekend onto the following Monday:
// Saturday shifts +2 days, Sunday shifts +1 day, weekdays are unchanged.
// The adjusted ("observed") date is what the record stores; the raw date is
// not retained.
func AdjustBirthday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return NextWeekdayOnOrAfter(t, time.Monday)
	default:
		return t
	}
}

// dateOnly truncates t to midnight in its own location. Birthday arithmetic
// works on calendar dates, never on clock times.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// reanchor places the month and day of birthday into the given year, in the
// given location. time.Date normalizes Feb 29 of a non-leap year to Mar 1,
// which is the leap-day policy used throughout.
func reanchor(birthday time.Time, year int, loc *time.Location) time.Time {
	return time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, loc)
}
