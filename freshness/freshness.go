// Package freshness turns an upstream data timestamp into an age and a staleness label.
package freshness

import (
	"fmt"
	"time"
)

// Unknown is the age returned when it cannot be determined.
const Unknown = -1

// DefaultThreshold is the age in minutes up to which data counts as fresh.
const DefaultThreshold = 30

// Parse reads a "YYYY-MM-DDTHH:MM:SS" timestamp in local civil time. All six fields must be
// present; out of range values are normalized.
func Parse(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	var year, month, day, hour, min, sec int
	n, err := fmt.Sscanf(ts, "%d-%d-%dT%d:%d:%d", &year, &month, &day, &hour, &min, &sec)
	if err != nil || n != 6 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local), true
}

// Age returns the minutes elapsed between ts and now, or Unknown if ts is empty or malformed,
// or either side is at the Unix epoch (clock never synchronized). Timestamps in the future
// yield 0.
func Age(ts string, now time.Time) int {
	t, ok := Parse(ts)
	if !ok || t.Unix() == 0 {
		return Unknown
	}
	if now.IsZero() || now.Unix() == 0 {
		return Unknown
	}
	elapsed := now.Unix() - t.Unix()
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed / 60)
}

// Label formats age for display using DefaultThreshold.
func Label(age int) string {
	return Calculator{Threshold: DefaultThreshold}.Label(age)
}

// Calculator applies a staleness threshold.
type Calculator struct {
	// Threshold in minutes. Ages at or below it produce no label.
	Threshold int
}

// Visible reports whether age is past the threshold and a label should be shown.
func (c Calculator) Visible(age int) bool {
	return age != Unknown && age > c.Threshold
}

// Label returns "" for fresh or unknown ages, "{m}m" under an hour, else "{h}h {m}m".
func (c Calculator) Label(age int) string {
	if !c.Visible(age) {
		return ""
	}
	if age < 60 {
		return fmt.Sprintf("%dm", age)
	}
	return fmt.Sprintf("%dh %dm", age/60, age%60)
}

// Age is a convenience wrapper around the package level Age.
func (c Calculator) Age(ts string, now time.Time) (int, string) {
	age := Age(ts, now)
	return age, c.Label(age)
}
