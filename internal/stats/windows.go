package stats

import "time"

// Calendar boundaries used by every aggregate: days start at midnight local
// time, weeks start on Sunday 00:00, months and years on the 1st.

func StartOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func StartOfWeek(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func StartOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
}
