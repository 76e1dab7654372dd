package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the one pixel outline of rect. Max is exclusive, as with [image.Rectangle].
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		dst.Set(x, rect.Min.Y, c)
		dst.Set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		dst.Set(rect.Min.X, y, c)
		dst.Set(rect.Max.X-1, y, c)
	}
}

// RoundedRectangle draws the one pixel outline of rect with corners rounded to radius pixels.
// The radius is limited so opposite corners never meet.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		r      = cornerRadius(rect, radius)
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X-1, rect.Max.Y-1
	)
	HorizontalLine(dst, x0+r, y0, rect.Dx()-2*r, c)
	HorizontalLine(dst, x0+r, y1, rect.Dx()-2*r, c)
	VerticalLine(dst, x0, y0+r, rect.Dy()-2*r, c)
	VerticalLine(dst, x1, y0+r, rect.Dy()-2*r, c)
	if r == 0 {
		return
	}
	roundedCorner(dst, x0+r, y0+r, r, cornerTopLeft, c)
	roundedCorner(dst, x1-r, y0+r, r, cornerTopRight, c)
	roundedCorner(dst, x1-r, y1-r, r, cornerBottomRight, c)
	roundedCorner(dst, x0+r, y1-r, r, cornerBottomLeft, c)
}

// Box draws a filled rectangle. Empty rectangles draw nothing.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon().Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// RoundedBox draws a filled rectangle with corners rounded to radius pixels. The radius is
// limited as for [RoundedRectangle].
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		r      = cornerRadius(rect, radius)
		top    = rect.Min.Y + r
		bottom = rect.Max.Y - 1 - r
	)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		var inset int
		switch {
		case y < top:
			inset = cornerInset(r, top-y)
		case y > bottom:
			inset = cornerInset(r, y-bottom)
		}
		HorizontalLine(dst, rect.Min.X+inset, y, rect.Dx()-2*inset, c)
	}
}

// Corner quadrants for roundedCorner.
const (
	cornerTopLeft = 1 << iota
	cornerTopRight
	cornerBottomRight
	cornerBottomLeft
)

func cornerRadius(rect image.Rectangle, radius int) int {
	if m := (min(rect.Dx(), rect.Dy()) - 1) / 2; radius > m {
		radius = m
	}
	return max(radius, 0)
}

// cornerInset is the distance from the bounding box to a circle of radius r, dy rows away from
// the circle center.
func cornerInset(r, dy int) int {
	dx := 0
	for (dx+1)*(dx+1)+dy*dy <= r*r {
		dx++
	}
	return r - dx
}

// roundedCorner draws one quadrant of a midpoint circle around (x0,y0).
func roundedCorner(dst Image, x0, y0, radius, quadrant int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		switch quadrant {
		case cornerTopLeft:
			dst.Set(x0-y, y0-x, c)
			dst.Set(x0-x, y0-y, c)
		case cornerTopRight:
			dst.Set(x0+x, y0-y, c)
			dst.Set(x0+y, y0-x, c)
		case cornerBottomRight:
			dst.Set(x0+x, y0+y, c)
			dst.Set(x0+y, y0+x, c)
		case cornerBottomLeft:
			dst.Set(x0-y, y0+x, c)
			dst.Set(x0-x, y0+y, c)
		}
	}
}

// Generalized with integer
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	var dx, dy, e, slope int

	// Because drawing p1 -> p2 is equivalent to draw p2 -> p1,
	// I sort points in x-axis order to handle only half of possible cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	// Because point is x-axis ordered, dx cannot be negative
	if dy < 0 {
		dy = -dy
	}

	switch {

	// Is line a point ?
	case x1 == x2 && y1 == y2:
		dst.Set(x1, y1, c)

	// Is line an horizontal ?
	case y1 == y2:
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
		}
		dst.Set(x1, y1, c)

	// Is line a vertical ?
	case x1 == x2:
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1++
		}
		dst.Set(x1, y1, c)

	// Is line a diagonal ?
	case dx == dy:
		if y1 < y2 {
			for ; dx != 0; dx-- {
				dst.Set(x1, y1, c)
				x1++
				y1++
			}
		} else {
			for ; dx != 0; dx-- {
				dst.Set(x1, y1, c)
				x1++
				y1--
			}
		}
		dst.Set(x1, y1, c)

	// wider than high ?
	case dx > dy:
		if y1 < y2 {
			// BresenhamDxXRYD(img, x1, y1, x2, y2, col)
			dy, e, slope = 2*dy, dx, 2*dx
			for ; dx != 0; dx-- {
				dst.Set(x1, y1, c)
				x1++
				e -= dy
				if e < 0 {
					y1++
					e += slope
				}
			}
		} else {
			// BresenhamDxXRYU(img, x1, y1, x2, y2, col)
			dy, e, slope = 2*dy, dx, 2*dx
			for ; dx != 0; dx-- {
				dst.Set(x1, y1, c)
				x1++
				e -= dy
				if e < 0 {
					y1--
					e += slope
				}
			}
		}
		dst.Set(x2, y2, c)

	// higher than wide.
	default:
		if y1 < y2 {
			// BresenhamDyXRYD(img, x1, y1, x2, y2, col)
			dx, e, slope = 2*dx, dy, 2*dy
			for ; dy != 0; dy-- {
				dst.Set(x1, y1, c)
				y1++
				e -= dx
				if e < 0 {
					x1++
					e += slope
				}
			}
		} else {
			// BresenhamDyXRYU(img, x1, y1, x2, y2, col)
			dx, e, slope = 2*dx, dy, 2*dy
			for ; dy != 0; dy-- {
				dst.Set(x1, y1, c)
				y1--
				e -= dx
				if e < 0 {
					x1++
					e += slope
				}
			}
		}
		dst.Set(x2, y2, c)
	}
}
