package draw

import (
	"image"
	"image/color"
	"sort"
)

// Circle draws the outline of a circle with radius r centered at (x0, y0).
func Circle(dst Image, x0, y0, r int, c color.Color) {
	if r < 0 {
		return
	}
	var (
		f    = 1 - r
		ddFx = 1
		ddFy = -2 * r
		x    = 0
		y    = r
	)
	dst.Set(x0, y0+r, c)
	dst.Set(x0, y0-r, c)
	dst.Set(x0+r, y0, c)
	dst.Set(x0-r, y0, c)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		dst.Set(x0+x, y0+y, c)
		dst.Set(x0-x, y0+y, c)
		dst.Set(x0+x, y0-y, c)
		dst.Set(x0-x, y0-y, c)
		dst.Set(x0+y, y0+x, c)
		dst.Set(x0-y, y0+x, c)
		dst.Set(x0+y, y0-x, c)
		dst.Set(x0-y, y0-x, c)
	}
}

// Disc draws a filled circle with radius r centered at (x0, y0).
func Disc(dst Image, x0, y0, r int, c color.Color) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r+r {
				dst.Set(x0+dx, y0+dy, c)
			}
		}
	}
}

// ThickLine draws a line of the given width by stacking parallel Bresenham lines.
func ThickLine(dst Image, a, b image.Point, width int, c color.Color) {
	if width <= 1 {
		Line(dst, a, b, c)
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	// Offset across the dominant direction.
	for i := 0; i < width; i++ {
		o := i - (width-1)/2
		if dx >= dy {
			Line(dst, image.Pt(a.X, a.Y+o), image.Pt(b.X, b.Y+o), c)
		} else {
			Line(dst, image.Pt(a.X+o, a.Y), image.Pt(b.X+o, b.Y), c)
		}
	}
}

// Polyline connects consecutive points with lines of the given width.
func Polyline(dst Image, points []image.Point, width int, c color.Color) {
	for i := 1; i < len(points); i++ {
		ThickLine(dst, points[i-1], points[i], width, c)
	}
}

// Polygon fills a closed polygon using the even-odd rule. Rows are sampled half-open,
// so the row of the lowest vertex is not painted.
func Polygon(dst Image, points []image.Point, c color.Color) {
	if len(points) < 3 {
		return
	}
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	b := dst.Bounds()
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxY > b.Max.Y {
		maxY = b.Max.Y
	}

	xs := make([]int, 0, len(points))
	for y := minY; y < maxY; y++ {
		xs = xs[:0]
		for i := range points {
			p, q := points[i], points[(i+1)%len(points)]
			if p.Y == q.Y {
				continue
			}
			if (p.Y <= y && y < q.Y) || (q.Y <= y && y < p.Y) {
				xs = append(xs, p.X+(y-p.Y)*(q.X-p.X)/(q.Y-p.Y))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				dst.Set(x, y, c)
			}
		}
	}
}
