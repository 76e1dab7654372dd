package main

import (
	"image"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/battery"
	"github.com/BeatGlow/weather-display/config"
	"github.com/BeatGlow/weather-display/preview"
)

type adcPin struct {
	pin.BasicPin
	v physic.ElectricPotential
}

func (p *adcPin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: 3300 * physic.MilliVolt}
}

func (p *adcPin) Read() (analog.Sample, error) {
	return analog.Sample{V: p.v}, nil
}

func TestNeedsHost(t *testing.T) {
	tests := []struct {
		name   string
		config config.Config
		want   bool
	}{
		{"previews", config.Config{Battery: config.BatteryConfig{Source: config.BatteryFixed}}, false},
		{"sysfs", config.Config{Battery: config.BatteryConfig{Source: config.BatterySysfs}}, false},
		{"power pin", config.Config{Panel: config.PanelConfig{PowerPin: "GPIO17"}}, true},
		{"adc", config.Config{Battery: config.BatteryConfig{Source: config.BatteryADC}}, true},
		{"ina260", config.Config{Battery: config.BatteryConfig{Source: config.BatteryINA260}}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, needsHost(&test.config))
		})
	}
}

func TestOpenBattery(t *testing.T) {
	r, err := openBattery(config.BatteryConfig{Source: config.BatteryFixed, Fixed: 64})
	require.NoError(t, err)
	v, err := r.Percent()
	require.NoError(t, err)
	assert.Equal(t, 64, v)

	r, err = openBattery(config.BatteryConfig{Source: config.BatterySysfs, SysfsPath: "/sys/class/power_supply/BAT1/capacity"})
	require.NoError(t, err)
	assert.Equal(t, battery.Sysfs{Path: "/sys/class/power_supply/BAT1/capacity"}, r)

	_, err = openBattery(config.BatteryConfig{Source: config.BatteryADC, Pin: "NO_SUCH_AIN"})
	assert.Error(t, err)
}

func TestOpenBatteryADC(t *testing.T) {
	ain := &adcPin{BasicPin: pin.BasicPin{N: "MAIN_TEST_AIN1"}, v: 2100 * physic.MilliVolt}
	require.NoError(t, pinreg.Register("MAIN_TEST_HEADER", [][]pin.Pin{{ain}}))
	t.Cleanup(func() { _ = pinreg.Unregister("MAIN_TEST_HEADER") })

	r, err := openBattery(config.BatteryConfig{Source: config.BatteryADC, Pin: "MAIN_TEST_AIN1", Divider: 2})
	require.NoError(t, err)
	v, err := r.Percent()
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestOpenPanel(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	size := image.Pt(960, 540)
	c := &config.Config{Panel: config.PanelConfig{
		Outputs:         []string{config.OutputPNG, config.OutputTerminal},
		PNGPath:         t.TempDir() + "/frame.png",
		TerminalColumns: 80,
	}}

	p, err := openPanel(c, size, nil, log)
	require.NoError(t, err)
	defer p.Close()
	assert.IsType(t, display.Multi{}, p)
	assert.Equal(t, image.Rectangle{Max: size}, p.Bounds())

	c.Panel.Outputs = []string{config.OutputPNG}
	p, err = openPanel(c, size, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &preview.PNG{}, p)
}
