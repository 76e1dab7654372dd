//go:build !linux

package framebuffer

import (
	"github.com/BeatGlow/weather-display"
)

// Open is only supported on Linux.
func Open(_ string) (display.Panel, error) {
	return nil, ErrNotSupported
}
