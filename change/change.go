// Package change decides whether a new weather snapshot differs enough from the one on the panel
// to justify a physical e-paper refresh.
package change

import "github.com/BeatGlow/weather-display/weather"

// DefaultBatteryTolerance is the battery percent change ignored between cycles.
const DefaultBatteryTolerance = 10

// Reason names the rule that decided a comparison.
type Reason uint8

// Reasons, in the order the rules are evaluated.
const (
	None Reason = iota
	Validity
	Timestamp
	Fields
	Battery
)

func (r Reason) String() string {
	switch r {
	case Validity:
		return "validity"
	case Timestamp:
		return "timestamp"
	case Fields:
		return "fields"
	case Battery:
		return "battery"
	default:
		return "none"
	}
}

// Refresh reports whether r asks for a refresh.
func (r Reason) Refresh() bool {
	return r != None
}

// Detector compares consecutive snapshots.
type Detector struct {
	// BatteryTolerance is the largest absolute battery change that does not trigger a refresh.
	BatteryTolerance int
}

// New returns a Detector with the given battery tolerance.
func New(tolerance int) Detector {
	if tolerance < 0 {
		tolerance = DefaultBatteryTolerance
	}
	return Detector{BatteryTolerance: tolerance}
}

// Detect returns the first rule that asks for a refresh, or None. The first matching rule wins:
// validity transition, both invalid (no refresh), timestamp, displayed fields, battery.
func (d Detector) Detect(prev, next weather.Snapshot, prevBattery, nextBattery int) Reason {
	if prev.Valid != next.Valid {
		return Validity
	}
	if !prev.Valid {
		return None
	}
	if prev.Updated != next.Updated {
		return Timestamp
	}
	if FieldsDiffer(prev, next) {
		return Fields
	}
	delta := nextBattery - prevBattery
	if delta < 0 {
		delta = -delta
	}
	if delta > d.BatteryTolerance {
		return Battery
	}
	return None
}

// Changed reports whether Detect asks for a refresh.
func (d Detector) Changed(prev, next weather.Snapshot, prevBattery, nextBattery int) bool {
	return d.Detect(prev, next, prevBattery, nextBattery).Refresh()
}

// FieldsDiffer reports whether any displayed field differs. Sun times compare as strings.
func FieldsDiffer(a, b weather.Snapshot) bool {
	switch {
	case a.Current != b.Current, a.High != b.High, a.Low != b.Low:
		return true
	case a.Condition != b.Condition:
		return true
	case a.UVCurrent != b.UVCurrent, a.UVHigh != b.UVHigh:
		return true
	case a.Moon != b.Moon, a.PrecipKind != b.PrecipKind:
		return true
	case a.Sunrise != b.Sunrise, a.Sunset != b.Sunset:
		return true
	}
	if len(a.Precipitation) != len(b.Precipitation) {
		return true
	}
	for i := range a.Precipitation {
		if a.Precipitation[i] != b.Precipitation[i] {
			return true
		}
	}
	return false
}

// AgeVisibilityChanged reports whether the staleness label appeared or disappeared between two
// cycles. Unknown ages (-1) count as hidden.
func AgeVisibilityChanged(prevAge, age, threshold int) bool {
	return (prevAge > threshold) != (age > threshold)
}
