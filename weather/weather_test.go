package weather

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCondition(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Condition
	}{
		{"sunny", Sunny},
		{"cloudy", Cloudy},
		{"partly_cloudy", PartlyCloudy},
		{"Partly Cloudy", PartlyCloudy},
		{"rainy", Rainy},
		{"snowy", Snowy},
		{"thunderstorm", Thunderstorm},
		{"fog", Fog},
		{"clear_night", ClearNight},
		{"hail", PartlyCloudy},
		{"", PartlyCloudy},
	} {
		t.Run(test.in, func(it *testing.T) {
			if v := ParseCondition(test.in); v != test.want {
				it.Errorf("expected %s, got %s", test.want, v)
			}
		})
	}
}

func TestConditionNight(t *testing.T) {
	if v := Sunny.Night(); v != ClearNight {
		t.Errorf("expected %s, got %s", ClearNight, v)
	}
	if v := PartlyCloudy.Night(); v != PartlyCloudyNight {
		t.Errorf("expected %s, got %s", PartlyCloudyNight, v)
	}
	if v := Rainy.Night(); v != Rainy {
		t.Errorf("expected %s, got %s", Rainy, v)
	}
}

func TestParseMoonPhase(t *testing.T) {
	for _, test := range []struct {
		in   string
		want MoonPhase
	}{
		{"New Moon", NewMoon},
		{"Waxing Crescent", WaxingCrescent},
		{"First Quarter", FirstQuarter},
		{"waxing_gibbous", WaxingGibbous},
		{"Full Moon", FullMoon},
		{"Waning Gibbous", WaningGibbous},
		{"Last Quarter", LastQuarter},
		{"Third Quarter", LastQuarter},
		{"Waning Crescent", WaningCrescent},
		{"blue moon", NewMoon},
	} {
		if v := ParseMoonPhase(test.in); v != test.want {
			t.Errorf("%q: expected %s, got %s", test.in, test.want, v)
		}
	}
}

func TestParsePrecipKind(t *testing.T) {
	for in, want := range map[string]PrecipKind{
		"rain":  Rain,
		"Snow":  Snow,
		"mixed": Mixed,
		"sleet": Mixed,
		"":      Rain,
	} {
		if v := ParsePrecipKind(in); v != want {
			t.Errorf("%q: expected %s, got %s", in, want, v)
		}
	}
}

func TestSnapshotPrecipitation(t *testing.T) {
	s := NewSnapshot(4)
	if s.Valid {
		t.Fatal("expected new snapshot to be invalid")
	}

	s.SetPrecipitation([]int{10, 120, -5})
	if diff := cmp.Diff(s.Precipitation, []int{10, 100, 0, 0}); diff != "" {
		t.Errorf("padded series difference (-got +want):\n%s", diff)
	}

	s.SetPrecipitation([]int{1, 2, 3, 4, 5, 6})
	if diff := cmp.Diff(s.Precipitation, []int{1, 2, 3, 4}); diff != "" {
		t.Errorf("truncated series difference (-got +want):\n%s", diff)
	}
	if !s.HasPrecipitation() {
		t.Error("expected precipitation")
	}

	c := s.Clone()
	c.Precipitation[0] = 99
	if s.Precipitation[0] != 1 {
		t.Error("expected clone to be independent")
	}

	if v := NewSnapshot(0).Hours(); v != DefaultHours {
		t.Errorf("expected %d hours, got %d", DefaultHours, v)
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := NewSnapshot(2)
	s.Condition = Thunderstorm
	s.Moon = WaningGibbous
	s.PrecipKind = Snow
	s.Valid = true

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err = json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if v := raw["condition"]; v != "thunderstorm" {
		t.Errorf("expected condition name in JSON, got %v", v)
	}
	if v := raw["moon"]; v != "waning_gibbous" {
		t.Errorf("expected moon phase name in JSON, got %v", v)
	}

	var back Snapshot
	if err = json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(back, s); diff != "" {
		t.Errorf("decoded snapshot difference (-got +want):\n%s", diff)
	}
}
