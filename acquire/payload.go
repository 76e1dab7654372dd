package acquire

import (
	"encoding/json"
	"fmt"

	"github.com/BeatGlow/weather-display/weather"
)

// payload is the wire format. Every field is optional; numbers may be fractional and are
// truncated.
type payload struct {
	Temperature struct {
		Current float64 `json:"current"`
		High    float64 `json:"high"`
		Low     float64 `json:"low"`
	} `json:"temperature"`

	Weather       string    `json:"weather"`
	Precipitation []float64 `json:"precipitation"`
	PrecipType    string    `json:"precip_type"`

	UV struct {
		Current float64 `json:"current"`
		High    float64 `json:"high"`
	} `json:"uv"`

	MoonPhase string `json:"moon_phase"`
	Moon      struct {
		Phase string `json:"phase"`
	} `json:"moon"`

	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
	Updated string `json:"updated"`
	IsDay   *bool  `json:"is_day"`
}

// Decode parses a payload into a valid snapshot with a precipitation series of the given length.
// Missing fields take their defaults; a malformed document returns an error wrapping ErrDecode.
func Decode(b []byte, hours int) (weather.Snapshot, error) {
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	s := weather.NewSnapshot(hours)
	s.Current = int(p.Temperature.Current)
	s.High = int(p.Temperature.High)
	s.Low = int(p.Temperature.Low)

	s.Condition = weather.ParseCondition(p.Weather)
	if p.IsDay != nil && !*p.IsDay {
		s.Condition = s.Condition.Night()
	}

	precip := make([]int, len(p.Precipitation))
	for i, v := range p.Precipitation {
		precip[i] = int(v)
	}
	s.SetPrecipitation(precip)
	s.PrecipKind = weather.ParsePrecipKind(p.PrecipType)

	s.UVCurrent = int(p.UV.Current)
	s.UVHigh = int(p.UV.High)

	phase := p.MoonPhase
	if phase == "" {
		phase = p.Moon.Phase
	}
	s.Moon = weather.ParseMoonPhase(phase)

	s.Sunrise = p.Sunrise
	s.Sunset = p.Sunset
	s.Updated = p.Updated
	s.Valid = true
	return s, nil
}
