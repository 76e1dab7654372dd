// Package draw has the raster primitives frames are composed from. Every primitive writes
// through [Image.Set] and silently drops pixels outside the destination.
package draw

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for [image/draw.Op].
type Op = draw.Op

// Porter-Duff operators.
const (
	Over = draw.Over
	Src  = draw.Src
)

// Draw composes src onto the rectangle r of dst, aligning r.Min with sp in src.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.Draw(dst, r, src, sp, op)
}

// Fill paints r, clipped to dst, in a single color.
func Fill(dst Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
