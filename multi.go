package display

import (
	"errors"
	"image"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/weather-display/pixel"
)

// Multi fans every call out to several panels. Bounds are those of the first panel; all
// panels must share them.
type Multi []Panel

func (m Multi) String() string {
	names := make([]string, len(m))
	for i, p := range m {
		names[i] = p.String()
	}
	return "multi(" + strings.Join(names, ", ") + ")"
}

// Bounds of the first panel.
func (m Multi) Bounds() image.Rectangle {
	if len(m) == 0 {
		return image.Rectangle{}
	}
	return m[0].Bounds()
}

func (m Multi) each(f func(Panel) error) error {
	var errs []error
	for _, p := range m {
		if err := f(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PowerOn all panels.
func (m Multi) PowerOn() error { return m.each(Panel.PowerOn) }

// Clear all panels.
func (m Multi) Clear() error { return m.each(Panel.Clear) }

// PowerOff all panels.
func (m Multi) PowerOff() error { return m.each(Panel.PowerOff) }

// Close all panels.
func (m Multi) Close() error { return m.each(Panel.Close) }

// Transfer fb to all panels. A failing panel does not keep the others from updating.
func (m Multi) Transfer(fb *pixel.Gray4Image) error {
	return m.each(func(p Panel) error { return p.Transfer(fb) })
}

// Powered switches the panel supply through a GPIO around every refresh.
type Powered struct {
	Panel

	// Pin drives the supply: high is on.
	Pin gpio.PinOut

	// Settle is the delay between switching the supply on and talking to the panel.
	Settle time.Duration
}

// PowerOn raises the supply pin, waits for it to settle and wakes the panel.
func (p Powered) PowerOn() error {
	if err := p.Pin.Out(gpio.High); err != nil {
		return err
	}
	if p.Settle > 0 {
		time.Sleep(p.Settle)
	}
	return p.Panel.PowerOn()
}

// PowerOff puts the panel to sleep and drops the supply pin, even if the panel failed.
func (p Powered) PowerOff() error {
	err := p.Panel.PowerOff()
	if pinErr := p.Pin.Out(gpio.Low); err == nil {
		err = pinErr
	}
	return err
}

var (
	_ Panel = Multi(nil)
	_ Panel = Powered{}
	_ Panel = Rotated{}
)
