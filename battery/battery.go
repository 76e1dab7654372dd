// Package battery reads the station's battery charge.
package battery

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Lithium cell voltage range mapped onto 0-100%.
const (
	EmptyVolts = 3.0
	FullVolts  = 4.2
)

// DefaultSysfsPath is the capacity attribute of the first power supply on most boards.
const DefaultSysfsPath = "/sys/class/power_supply/BAT0/capacity"

// ErrNoReading is returned when a source produced no usable value.
var ErrNoReading = errors.New("battery: no reading")

// Reader returns the battery charge in percent, 0-100.
type Reader interface {
	Percent() (int, error)
}

// VoltsToPercent maps a cell voltage linearly from 3.0 V (0%) to 4.2 V (100%), truncated and
// clamped.
func VoltsToPercent(v float64) int {
	if v > FullVolts {
		v = FullVolts
	}
	p := int((v - EmptyVolts) / (FullVolts - EmptyVolts) * 100)
	return clamp(p)
}

func clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Fixed always reports the same charge, for mains powered stations and previews.
type Fixed int

// Percent implements Reader.
func (f Fixed) Percent() (int, error) {
	return clamp(int(f)), nil
}

// Sysfs reads a power_supply capacity attribute.
type Sysfs struct {
	Path string
}

// Percent implements Reader.
func (s Sysfs) Percent() (int, error) {
	path := s.Path
	if path == "" {
		path = DefaultSysfsPath
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, ErrNoReading
	}
	return clamp(v), nil
}

var (
	_ Reader = Fixed(0)
	_ Reader = Sysfs{}
	_ Reader = (*ADC)(nil)
	_ Reader = (*INA260)(nil)
)
