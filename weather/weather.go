// Package weather holds the snapshot of conditions shown on the dashboard.
package weather

import (
	"fmt"
	"strings"
)

// Condition is the weather category used to pick the main icon.
type Condition uint8

// Supported conditions.
const (
	Sunny Condition = iota
	Cloudy
	PartlyCloudy
	Rainy
	Snowy
	Thunderstorm
	Fog
	ClearNight
	PartlyCloudyNight
)

var conditionNames = map[Condition]string{
	Sunny:             "sunny",
	Cloudy:            "cloudy",
	PartlyCloudy:      "partly_cloudy",
	Rainy:             "rainy",
	Snowy:             "snowy",
	Thunderstorm:      "thunderstorm",
	Fog:               "fog",
	ClearNight:        "clear_night",
	PartlyCloudyNight: "partly_cloudy_night",
}

func (c Condition) String() string {
	if s, ok := conditionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Condition(%d)", uint8(c))
}

// Set implements flag.Value.
func (c *Condition) Set(s string) error {
	key := normalize(s)
	for k, v := range conditionNames {
		if v == key {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("weather: unknown condition %q", s)
}

// Night returns the night-time variant of c, if it has one.
func (c Condition) Night() Condition {
	switch c {
	case Sunny:
		return ClearNight
	case PartlyCloudy:
		return PartlyCloudyNight
	default:
		return c
	}
}

// ParseCondition maps a condition name to a Condition. Unknown names map to PartlyCloudy.
func ParseCondition(s string) Condition {
	var c Condition
	if err := c.Set(s); err != nil {
		return PartlyCloudy
	}
	return c
}

// MoonPhase is one of the eight named lunar phases.
type MoonPhase uint8

// Lunar phases, in order.
const (
	NewMoon MoonPhase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var moonNames = map[MoonPhase]string{
	NewMoon:        "new_moon",
	WaxingCrescent: "waxing_crescent",
	FirstQuarter:   "first_quarter",
	WaxingGibbous:  "waxing_gibbous",
	FullMoon:       "full_moon",
	WaningGibbous:  "waning_gibbous",
	LastQuarter:    "last_quarter",
	WaningCrescent: "waning_crescent",
}

var moonAliases = map[string]MoonPhase{
	"new":           NewMoon,
	"full":          FullMoon,
	"third_quarter": LastQuarter,
}

func (m MoonPhase) String() string {
	if s, ok := moonNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MoonPhase(%d)", uint8(m))
}

// Set implements flag.Value. Both "waxing_gibbous" and "Waxing Gibbous" spellings are accepted.
func (m *MoonPhase) Set(s string) error {
	key := normalize(s)
	for k, v := range moonNames {
		if v == key {
			*m = k
			return nil
		}
	}
	if v, ok := moonAliases[key]; ok {
		*m = v
		return nil
	}
	return fmt.Errorf("weather: unknown moon phase %q", s)
}

// Illumination returns the lit fraction of the disc in eighths and whether the lit side is on the
// right (waxing).
func (m MoonPhase) Illumination() (eighths int, waxing bool) {
	switch m {
	case WaxingCrescent:
		return 2, true
	case FirstQuarter:
		return 4, true
	case WaxingGibbous:
		return 6, true
	case FullMoon:
		return 8, true
	case WaningGibbous:
		return 6, false
	case LastQuarter:
		return 4, false
	case WaningCrescent:
		return 2, false
	default:
		return 0, true
	}
}

// ParseMoonPhase maps a phase name to a MoonPhase. Unknown names map to NewMoon.
func ParseMoonPhase(s string) MoonPhase {
	var m MoonPhase
	if err := m.Set(s); err != nil {
		return NewMoon
	}
	return m
}

// PrecipKind is the dominant kind of precipitation in the forecast window.
type PrecipKind uint8

// Precipitation kinds.
const (
	Rain PrecipKind = iota
	Snow
	Mixed
)

func (k PrecipKind) String() string {
	switch k {
	case Rain:
		return "rain"
	case Snow:
		return "snow"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("PrecipKind(%d)", uint8(k))
	}
}

// Set implements flag.Value.
func (k *PrecipKind) Set(s string) error {
	switch normalize(s) {
	case "rain":
		*k = Rain
	case "snow":
		*k = Snow
	case "mixed", "sleet":
		*k = Mixed
	default:
		return fmt.Errorf("weather: unknown precipitation kind %q", s)
	}
	return nil
}

// ParsePrecipKind maps a kind name to a PrecipKind. Unknown names map to Rain.
func ParsePrecipKind(s string) PrecipKind {
	var k PrecipKind
	if err := k.Set(s); err != nil {
		return Rain
	}
	return k
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func (c Condition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Condition) UnmarshalText(b []byte) error { return c.Set(string(b)) }

func (m MoonPhase) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MoonPhase) UnmarshalText(b []byte) error { return m.Set(string(b)) }

func (k PrecipKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *PrecipKind) UnmarshalText(b []byte) error { return k.Set(string(b)) }
