// Package format renders route values for people: distances, durations and clock times.
package format

import (
	"fmt"
	"math"
	"time"
)

const (
	clockLayout = "3:04 PM"
	invalidDate = "Invalid Date"
)

// Distance formats meters, switching to kilometers at 1000.
func Distance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int64(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// Duration formats minutes as "45 min" or "2 h 5 min".
func Duration(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", int64(math.Round(minutes)))
	}
	hours := math.Floor(minutes / 60)
	rest := math.Round(math.Mod(minutes, 60))
	return fmt.Sprintf("%d h %d min", int64(hours), int64(rest))
}

// Time parses an RFC 3339 timestamp and formats it on a 12-hour clock in the local zone.
func Time(ts string) string {
	return TimeIn(ts, time.Local)
}

// TimeIn is Time with an explicit zone. A nil zone keeps the timestamp's own offset.
func TimeIn(ts string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return invalidDate
	}
	return Clock(t, loc)
}

func Clock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return invalidDate
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(clockLayout)
}
