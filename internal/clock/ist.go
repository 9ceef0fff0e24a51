// Package clock anchors the dashboard time windows to Indian Standard Time.
// Payment timestamps are stored as Unix milliseconds; the day/week/month
// buckets are computed against IST regardless of the server's timezone.
package clock

import (
	"fmt"
	"time"
)

var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST, a fixed offset is equivalent.
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// NowMillis returns the current time as Unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// StartOfDay returns midnight IST of the day containing t, in milliseconds.
func StartOfDay(t time.Time) int64 {
	t = t.In(ist)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ist).UnixMilli()
}

// StartOfWeek returns midnight IST of the Sunday starting the week that
// contains t, in milliseconds.
func StartOfWeek(t time.Time) int64 {
	t = t.In(ist)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ist)
	return day.AddDate(0, 0, -int(day.Weekday())).UnixMilli()
}

// StartOfMonth returns midnight IST of the first day of the month containing
// t, in milliseconds.
func StartOfMonth(t time.Time) int64 {
	t = t.In(ist)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, ist).UnixMilli()
}

// FormatMillis renders a millisecond timestamp as "dd/mm/yyyy hh:mm IST".
func FormatMillis(millis int64) string {
	t := time.UnixMilli(millis).In(ist)
	return fmt.Sprintf("%02d/%02d/%04d %02d:%02d IST", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}
