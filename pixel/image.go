package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/weather-display/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// Gray4Image is a 4-bits per pixel gray scale image.
//
// Two horizontally adjacent pixels share a byte, the even (left) pixel lives in the high nibble.
// 0x0 is black, 0xF is white.
type Gray4Image struct {
	Buffer
}

func NewGray4Image(w, h int) *Gray4Image {
	return &Gray4Image{
		Buffer: makeBuffer(w, h, (w+1)/2, h*((w+1)/2)),
	}
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

func (p *Gray4Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Gray4At(x, y)
}

// Gray4At returns the gray level at (x, y). Out of bounds reads return white.
func (p *Gray4Image) Gray4At(x, y int) Gray4 {
	if !(image.Point{x, y}).In(p.Rect) {
		return White
	}

	index := y*p.Stride + x>>1
	if x%2 == 0 {
		return Gray4{Y: p.Pix[index] >> 4}
	}
	return Gray4{Y: p.Pix[index] & 0xf}
}

func (p *Gray4Image) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, gray4Model(c).(Gray4))
}

// SetGray4 writes one pixel. Writes outside the image are dropped.
func (p *Gray4Image) SetGray4(x, y int, c Gray4) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}

	index := y*p.Stride + x>>1
	value := c.Y & 0xf
	if x%2 == 0 {
		p.Pix[index] = (p.Pix[index] & 0x0f) | value<<4
	} else {
		p.Pix[index] = (p.Pix[index] & 0xf0) | value
	}
}

func (p *Gray4Image) Fill(c color.Color) {
	value := gray4Model(c).(Gray4).Byte()
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Clear resets the image to white, the blank paper color.
func (p *Gray4Image) Clear() {
	p.Fill(White)
}

// Clone returns an independent copy of the image.
func (p *Gray4Image) Clone() *Gray4Image {
	c := &Gray4Image{Buffer: makeBuffer(p.Rect.Dx(), p.Rect.Dy(), p.Stride, len(p.Pix))}
	c.Rect = p.Rect
	copy(c.Pix, p.Pix)
	return c
}

// CopyFrom replaces the pixels with those of src, which must have the same geometry.
func (p *Gray4Image) CopyFrom(src *Gray4Image) bool {
	if src.Rect != p.Rect || len(src.Pix) != len(p.Pix) {
		return false
	}
	copy(p.Pix, src.Pix)
	return true
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	value := crgb16Model(c).(CRGB16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// CBGR16Image is a 16-bits per pixel 5-6-5-bit BGR image.
type CBGR16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCBGR16Image(w, h int) *CBGR16Image {
	return &CBGR16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CBGR16Image) ColorModel() color.Model {
	return CBGR16Model
}

func (p *CBGR16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CBGR16{v}
}

func (p *CBGR16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := cbgr16Model(c).(CBGR16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CBGR16Image) Fill(c color.Color) {
	value := cbgr16Model(c).(CBGR16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// Interface checks.
var (
	_ Image = (*Gray4Image)(nil)
	_ Image = (*CBGR16Image)(nil)
	_ Image = (*CRGB16Image)(nil)
)
