package util

import "time"

// ISODate is the calendar-date layout the Oura API expects.
const ISODate = "2006-01-02"

// Timestamp is the layout used for the dashboard freshness marker.
const Timestamp = "2006-01-02 15:04:05"

// DateWindow returns the inclusive [start, end] calendar-date range ending
// today and looking back lookbackDays. Time-of-day is dropped.
func DateWindow(now time.Time, lookbackDays int) (time.Time, time.Time) {
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -lookbackDays)
	return start, end
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string { return t.Format(ISODate) }

// FormatTimestamp renders t as a human-readable wall-clock timestamp.
func FormatTimestamp(t time.Time) string { return t.Format(Timestamp) }
