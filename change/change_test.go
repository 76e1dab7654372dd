package change

import (
	"testing"

	"github.com/BeatGlow/weather-display/weather"
)

func testSnapshot() weather.Snapshot {
	s := weather.NewSnapshot(12)
	s.Current, s.High, s.Low = 72, 78, 65
	s.Condition = weather.Sunny
	s.SetPrecipitation([]int{0, 0, 10, 20, 45, 60, 40, 20, 10, 5, 0, 0})
	s.UVCurrent, s.UVHigh = 6, 9
	s.Moon = weather.WaxingGibbous
	s.Sunrise, s.Sunset = "06:45", "19:30"
	s.Updated = "2025-01-15T14:30:00"
	s.Valid = true
	return s
}

func TestDetect(t *testing.T) {
	d := New(DefaultBatteryTolerance)
	base := testSnapshot()
	invalid := weather.NewSnapshot(12)

	for _, test := range []struct {
		name        string
		prev, next  weather.Snapshot
		prevBattery int
		nextBattery int
		want        Reason
	}{
		{"identical", base, base.Clone(), 80, 80, None},
		{"invalid to valid", invalid, base, 80, 80, Validity},
		{"valid to invalid", base, invalid, 80, 80, Validity},
		{"both invalid", invalid, invalid, 80, 20, None},
		{"timestamp only", base, func() weather.Snapshot {
			s := base.Clone()
			s.Updated = "2025-01-15T14:45:00"
			return s
		}(), 80, 80, Timestamp},
		{"temperature", base, func() weather.Snapshot {
			s := base.Clone()
			s.Current = 70
			return s
		}(), 80, 80, Fields},
		{"condition", base, func() weather.Snapshot {
			s := base.Clone()
			s.Condition = weather.Rainy
			return s
		}(), 80, 80, Fields},
		{"one precipitation element", base, func() weather.Snapshot {
			s := base.Clone()
			s.Precipitation[11] = 5
			return s
		}(), 80, 80, Fields},
		{"uv high", base, func() weather.Snapshot {
			s := base.Clone()
			s.UVHigh = 10
			return s
		}(), 80, 80, Fields},
		{"moon", base, func() weather.Snapshot {
			s := base.Clone()
			s.Moon = weather.FullMoon
			return s
		}(), 80, 80, Fields},
		{"precipitation kind", base, func() weather.Snapshot {
			s := base.Clone()
			s.PrecipKind = weather.Snow
			return s
		}(), 80, 80, Fields},
		{"sunset", base, func() weather.Snapshot {
			s := base.Clone()
			s.Sunset = "19:31"
			return s
		}(), 80, 80, Fields},
		{"battery at tolerance", base, base, 80, 70, None},
		{"battery past tolerance", base, base, 80, 69, Battery},
		{"battery rising past tolerance", base, base, 50, 61, Battery},
		{"fields before battery", base, func() weather.Snapshot {
			s := base.Clone()
			s.Low = 60
			return s
		}(), 80, 10, Fields},
	} {
		t.Run(test.name, func(it *testing.T) {
			if v := d.Detect(test.prev, test.next, test.prevBattery, test.nextBattery); v != test.want {
				it.Errorf("expected %s, got %s", test.want, v)
			}
			if v := d.Changed(test.prev, test.next, test.prevBattery, test.nextBattery); v != test.want.Refresh() {
				it.Errorf("expected changed=%t, got %t", test.want.Refresh(), v)
			}
		})
	}
}

func TestDetectTolerance(t *testing.T) {
	s := testSnapshot()
	for _, tolerance := range []int{5, 10} {
		d := New(tolerance)
		if d.Changed(s, s, 50, 50+tolerance) {
			t.Errorf("tolerance %d: expected delta equal to tolerance to be ignored", tolerance)
		}
		if !d.Changed(s, s, 50, 50+tolerance+1) {
			t.Errorf("tolerance %d: expected delta past tolerance to refresh", tolerance)
		}
	}
	if d := New(-1); d.BatteryTolerance != DefaultBatteryTolerance {
		t.Errorf("expected negative tolerance to fall back to %d, got %d", DefaultBatteryTolerance, d.BatteryTolerance)
	}
}

func TestAgeVisibilityChanged(t *testing.T) {
	for _, test := range []struct {
		prev, now int
		want      bool
	}{
		{-1, -1, false},
		{10, 25, false},
		{25, 31, true},
		{31, 25, true},
		{45, 90, false},
		{-1, 31, true},
		{31, -1, true},
		{30, 30, false},
	} {
		if v := AgeVisibilityChanged(test.prev, test.now, 30); v != test.want {
			t.Errorf("%d -> %d: expected %t, got %t", test.prev, test.now, test.want, v)
		}
	}
}
