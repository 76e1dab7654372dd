package weather

// DefaultHours is the default length of the precipitation series.
const DefaultHours = 12

// Snapshot is one fetched set of conditions. An invalid snapshot carries only zero values and is
// never compared field by field.
type Snapshot struct {
	Current int `json:"current"`
	High    int `json:"high"`
	Low     int `json:"low"`

	Condition Condition `json:"condition"`

	// Precipitation holds hourly probabilities (0-100). Its length is fixed at construction.
	Precipitation []int      `json:"precipitation"`
	PrecipKind    PrecipKind `json:"precip_kind"`

	UVCurrent int `json:"uv_current"`
	UVHigh    int `json:"uv_high"`

	Moon    MoonPhase `json:"moon"`
	Sunrise string    `json:"sunrise"`
	Sunset  string    `json:"sunset"`

	// Updated is the upstream timestamp, "YYYY-MM-DDTHH:MM:SS" or empty.
	Updated string `json:"updated"`

	Valid bool `json:"valid"`
}

// NewSnapshot returns an invalid, zeroed snapshot with a precipitation series of the given length.
func NewSnapshot(hours int) Snapshot {
	if hours <= 0 {
		hours = DefaultHours
	}
	return Snapshot{
		Condition:     Cloudy,
		Precipitation: make([]int, hours),
	}
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Precipitation = append([]int(nil), s.Precipitation...)
	return c
}

// Hours returns the length of the precipitation series.
func (s Snapshot) Hours() int {
	return len(s.Precipitation)
}

// HasPrecipitation reports whether any hour has a nonzero probability.
func (s Snapshot) HasPrecipitation() bool {
	for _, v := range s.Precipitation {
		if v != 0 {
			return true
		}
	}
	return false
}

// SetPrecipitation copies values into the series, truncating or zero padding to its length and
// clamping each value to 0-100.
func (s *Snapshot) SetPrecipitation(values []int) {
	for i := range s.Precipitation {
		v := 0
		if i < len(values) {
			v = clamp(values[i], 0, 100)
		}
		s.Precipitation[i] = v
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
