package draw

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Text draws s with its baseline starting at (x, y) and returns the x position of the pen after
// the last glyph, so consecutive runs can be chained.
func Text(dst Image, face font.Face, x, y int, s string, c color.Color) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	return d.Dot.X.Round()
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}

// TextCentered draws s horizontally centered on cx, with its baseline at y.
func TextCentered(dst Image, face font.Face, cx, y int, s string, c color.Color) int {
	return Text(dst, face, cx-TextWidth(face, s)/2, y, s, c)
}
