// Package pixel implements the packed 4-bit grayscale framebuffer used by the e-paper panel, plus
// the 16-bit RGB formats needed to mirror it onto a Linux framebuffer.
//
// This module provides additional color models, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
