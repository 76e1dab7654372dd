package pixel

import "image/color"

// Models for the standard color types.
var (
	Gray4Model  color.Model = color.ModelFunc(gray4Model)
	CRGB16Model color.Model = color.ModelFunc(crgb16Model)
	CBGR16Model color.Model = color.ModelFunc(cbgr16Model)
)

// Palette of the gray levels used on the e-paper panel.
var (
	Black    = Gray4{Y: 0x0}
	Dark     = Gray4{Y: 0x4} // day markers
	Icon     = Gray4{Y: 0x5} // soft gray for icons and battery fill
	Medium   = Gray4{Y: 0x6} // secondary day markers
	Divider  = Gray4{Y: 0x8}
	Outline  = Gray4{Y: 0xA} // gauge outlines, chart baseline
	Gridline = Gray4{Y: 0xC}
	Fill     = Gray4{Y: 0xD} // area under the chart line
	White    = Gray4{Y: 0xF}
)

// Gray4 represents a 4-bit grayscale color.
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 0xf)
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

// Byte returns the level replicated into both nibbles, the way the panel stores a pixel pair.
func (c Gray4) Byte() byte {
	return c.Y&0xf | c.Y<<4
}

func gray4Model(c color.Color) color.Color {
	if _, ok := c.(Gray4); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	y >>= 12
	return Gray4{Y: uint8(y & 0xf)}
}

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	if _, ok := c.(CRGB16); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	r = (r & 0xF800)
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return CRGB16{uint16(r | g | b)}
}

// CBGR16 represents a 16-bit 5-6-5 BGR color.
type CBGR16 struct {
	// CBlue, 5, CGreen, 6, CRed, 5
	V uint16
}

func (c CBGR16) RGBA() (r, g, b, a uint32) {
	blu := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	red := (c.V & 0x001F) << 3
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func cbgr16Model(c color.Color) color.Color {
	if _, ok := c.(CBGR16); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	b = (b & 0xF800)
	g = (g & 0xFC00) >> 5
	r = (r & 0xF800) >> 11
	return CBGR16{uint16(r | g | b)}
}
