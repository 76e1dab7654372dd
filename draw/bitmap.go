package draw

import "image"

// Bitmap copies src opaquely onto dst with its top-left corner at pt. Pixels falling outside dst
// are dropped.
func Bitmap(dst Image, pt image.Point, src image.Image) {
	sb := src.Bounds()
	r := image.Rectangle{Min: pt, Max: pt.Add(sb.Size())}.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, src.At(sb.Min.X+x-pt.X, sb.Min.Y+y-pt.Y))
		}
	}
}

// BitmapCentered copies src so that its center lands on c.
func BitmapCentered(dst Image, c image.Point, src image.Image) {
	size := src.Bounds().Size()
	Bitmap(dst, image.Pt(c.X-size.X/2, c.Y-size.Y/2), src)
}
