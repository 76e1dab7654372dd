// Package framebuffer shows frames on the operating system's native framebuffer.
//
// This requires framebuffer device support in the operating system. The framebuffer can be
// opened with the [Open] call and then works like any other panel. Power management maps to
// screen blanking; devices that don't support blanking ignore it.
package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/pixel"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported color model")
)

// format is a framebuffer pixel layout.
type format uint8

const (
	formatUnknown format = iota
	formatGray8
	formatRGB565 // red in the high bits
	formatBGR565 // blue in the high bits
	formatRGBA32 // red in the lowest byte
	formatBGRA32 // blue in the lowest byte
)

func (f format) String() string {
	switch f {
	case formatGray8:
		return "gray8"
	case formatRGB565:
		return "rgb565"
	case formatBGR565:
		return "bgr565"
	case formatRGBA32:
		return "rgba32"
	case formatBGRA32:
		return "bgra32"
	default:
		return "unknown"
	}
}

// bitField mirrors struct fb_bitfield.
type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

func parseFormat(bitsPerPixel, grayscale uint32, red, green, blue bitField) (format, error) {
	switch bitsPerPixel {
	case 8:
		if grayscale != 0 {
			return formatGray8, nil
		}

	case 16:
		switch {
		case red.Offset == 11 && red.Length == 5 &&
			green.Offset == 5 && green.Length == 6 &&
			blue.Offset == 0 && blue.Length == 5:
			return formatRGB565, nil

		case blue.Offset == 11 && blue.Length == 5 &&
			green.Offset == 5 && green.Length == 6 &&
			red.Offset == 0 && red.Length == 5:
			return formatBGR565, nil
		}

	case 32:
		switch {
		case red.Offset == 0 && green.Offset == 8 && blue.Offset == 16:
			return formatRGBA32, nil

		case blue.Offset == 0 && green.Offset == 8 && red.Offset == 16:
			return formatBGRA32, nil
		}
	}
	return formatUnknown, fmt.Errorf("%w: %d bpp, red %d/%d, green %d/%d, blue %d/%d", ErrFormat,
		bitsPerPixel, red.Offset, red.Length, green.Offset, green.Length, blue.Offset, blue.Length)
}

// view wraps raw framebuffer memory in an image of the given format.
func view(f format, pix []byte, stride int, rect image.Rectangle) draw.Image {
	buf := pixel.Buffer{Rect: rect, Pix: pix, Stride: stride}
	switch f {
	case formatGray8:
		return &image.Gray{Pix: pix, Stride: stride, Rect: rect}
	case formatRGB565:
		return &pixel.CRGB16Image{Buffer: buf, Order: binary.LittleEndian}
	case formatBGR565:
		return &pixel.CBGR16Image{Buffer: buf, Order: binary.LittleEndian}
	case formatRGBA32:
		return &image.RGBA{Pix: pix, Stride: stride, Rect: rect}
	case formatBGRA32:
		return &bgraImage{Buffer: buf}
	default:
		return nil
	}
}

// convert copies src into dst pixel by pixel, clipped to both.
func convert(dst draw.Image, src *pixel.Gray4Image) {
	r := dst.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, src.Gray4At(x, y))
		}
	}
}

// bgraImage is 32-bit memory with blue in the lowest byte.
type bgraImage struct {
	pixel.Buffer
}

func (p *bgraImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *bgraImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	i := y*p.Stride + x*4
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i], A: p.Pix[i+3]}
}

func (p *bgraImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	v := color.RGBAModel.Convert(c).(color.RGBA)
	i := y*p.Stride + x*4
	p.Pix[i+0] = v.B
	p.Pix[i+1] = v.G
	p.Pix[i+2] = v.R
	p.Pix[i+3] = v.A
}
