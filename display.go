// Package display contains the panels a rendered dashboard is pushed to.
//
// Every refresh is a full repaint: the caller powers the panel on, clears it, transfers one
// complete frame and powers it off again.
package display

import (
	"errors"
	"fmt"
	"image"

	"github.com/BeatGlow/weather-display/pixel"
)

// Errors
var (
	ErrAllocation = errors.New("display: can't allocate framebuffer")
	ErrBounds     = errors.New("display: frame does not match panel bounds")
)

// MaxSize is the largest framebuffer dimension that will be allocated.
const MaxSize = 4096

// Panel is a device (or sink) that shows frames.
type Panel interface {
	fmt.Stringer

	// Bounds is the panel bounding box (dimensions).
	Bounds() image.Rectangle

	// PowerOn wakes the panel before a refresh.
	PowerOn() error

	// Clear blanks the panel to white.
	Clear() error

	// Transfer shows a full frame.
	Transfer(*pixel.Gray4Image) error

	// PowerOff puts the panel to sleep after a refresh.
	PowerOff() error

	// Close the panel driver.
	Close() error
}

// NewFramebuffer allocates the shared framebuffer, cleared to white.
func NewFramebuffer(width, height int) (*pixel.Gray4Image, error) {
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, width, height)
	}
	fb := pixel.NewGray4Image(width, height)
	fb.Clear()
	return fb, nil
}

// Refresh runs the full refresh sequence on p. PowerOff is attempted even when an earlier step
// failed; the first error is returned.
func Refresh(p Panel, fb *pixel.Gray4Image) (err error) {
	if !fb.Bounds().Eq(p.Bounds()) {
		return fmt.Errorf("%w: %s frame on %s panel %s", ErrBounds, fb.Bounds(), p.Bounds(), p)
	}
	if err = p.PowerOn(); err != nil {
		return err
	}
	defer func() {
		if offErr := p.PowerOff(); err == nil {
			err = offErr
		}
	}()
	if err = p.Clear(); err != nil {
		return err
	}
	return p.Transfer(fb)
}
