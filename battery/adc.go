package battery

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin/pinreg"
)

// DefaultDivider is the ratio of the usual 100k/100k battery sense divider.
const DefaultDivider = 2.0

// Sampler is the part of analog.PinADC used here.
type Sampler interface {
	Read() (analog.Sample, error)
}

// ADC reads the cell voltage through a resistor divider on an analog pin.
type ADC struct {
	Pin Sampler

	// Divider is the ratio between the cell voltage and the pin voltage.
	Divider float64
}

// OpenADC finds the analog pin called name on the registered headers.
func OpenADC(name string, divider float64) (*ADC, error) {
	for _, header := range pinreg.All() {
		for _, row := range header {
			for _, p := range row {
				if p.Name() != name {
					continue
				}
				adc, ok := p.(analog.PinADC)
				if !ok {
					return nil, fmt.Errorf("battery: pin %s is not an analog input", name)
				}
				return &ADC{Pin: adc, Divider: divider}, nil
			}
		}
	}
	return nil, fmt.Errorf("battery: no such analog pin %q", name)
}

// Percent implements Reader.
func (a *ADC) Percent() (int, error) {
	s, err := a.Pin.Read()
	if err != nil {
		return 0, err
	}
	if s.V <= 0 {
		return 0, ErrNoReading
	}
	divider := a.Divider
	if divider <= 0 {
		divider = DefaultDivider
	}
	return VoltsToPercent(float64(s.V) / float64(physic.Volt) * divider), nil
}

// INA260 registers.
const (
	INA260Address          = 0x40
	ina260BusVoltage uint8 = 0x02
	ina260VoltLSB          = 0.00125
)

// INA260 reads the cell voltage from a TI INA260 power monitor on the bus voltage input.
type INA260 struct {
	dev *i2c.Dev
}

// NewINA260 returns a reader for the monitor at addr, or at the default address if addr is 0.
func NewINA260(bus i2c.Bus, addr uint16) *INA260 {
	if addr == 0 {
		addr = INA260Address
	}
	return &INA260{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

// Volts returns the bus voltage.
func (m *INA260) Volts() (float64, error) {
	b := make([]byte, 2)
	if err := m.dev.Tx([]byte{ina260BusVoltage}, b); err != nil {
		return 0, err
	}
	return ina260VoltLSB * float64(uint16(b[0])<<8|uint16(b[1])), nil
}

// Percent implements Reader.
func (m *INA260) Percent() (int, error) {
	v, err := m.Volts()
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrNoReading
	}
	return VoltsToPercent(v), nil
}
