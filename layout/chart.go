package layout

import (
	"fmt"
	"image"
	"strconv"

	"golang.org/x/image/font"

	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/weather"
)

// chartGeometry splits the chart rectangle into title band, plot area and label band.
type chartGeometry struct {
	x, w   int
	top    int // plot top
	height int // plot height
	bottom int // plot baseline
	title  int // title baseline
	label  int // hour label baseline
}

func (l Layout) chartGeometry() chartGeometry {
	r := l.Chart
	h := r.Dy() - l.ChartLabel - l.ChartTitle
	if h < 0 {
		h = 0
	}
	top := r.Min.Y + l.ChartTitle
	return chartGeometry{
		x:      r.Min.X,
		w:      r.Dx(),
		top:    top,
		height: h,
		bottom: top + h,
		title:  r.Min.Y + l.ChartTitle - 5,
		label:  top + h + l.ChartLabel - 8,
	}
}

func (g chartGeometry) y(pct int) int {
	return g.bottom - Scale(g.height, pct)
}

func chartTitle(s weather.Snapshot) string {
	var what string
	switch s.PrecipKind {
	case weather.Snow:
		what = "Snow"
	case weather.Mixed:
		what = "Rain & snow"
	default:
		what = "Precipitation"
	}
	return fmt.Sprintf("%s next %dh", what, s.Hours())
}

func hourLabel(startHour, i int) string {
	h := (startHour + i) % 24
	if h < 0 {
		h += 24
	}
	if h %= 12; h == 0 {
		h = 12
	}
	return strconv.Itoa(h)
}

// LinePoints returns the vertices of the precipitation line: x = left + i*(w-1)/(n-1), truncated,
// so the last vertex sits on the rightmost column of the chart.
func (l Layout) LinePoints(values []int) []image.Point {
	g := l.chartGeometry()
	span := max(g.w-1, 0)
	points := make([]image.Point, len(values))
	for i, v := range values {
		x := g.x
		if len(values) > 1 {
			x += i * span / (len(values) - 1)
		}
		points[i] = image.Pt(x, g.y(v))
	}
	return points
}

// BarRects returns one rectangle per value. Bars are inset from both chart edges by the gap.
func (l Layout) BarRects(values []int) []image.Rectangle {
	g := l.chartGeometry()
	n := len(values)
	if n == 0 {
		return nil
	}
	barW := (g.w - l.BarGap*(n+1)) / n
	if barW < 1 {
		barW = 1
	}
	rects := make([]image.Rectangle, n)
	for i, v := range values {
		bx := g.x + l.BarGap + i*(barW+l.BarGap)
		rects[i] = image.Rect(bx, g.bottom-Scale(g.height, v), bx+barW, g.bottom)
	}
	return rects
}

func (c *Compositor) drawLineChart(fb *pixel.Gray4Image, v View) {
	var (
		l      = c.Layout
		g      = l.chartGeometry()
		s      = v.Snapshot
		face   = c.Fonts.Small
		points = l.LinePoints(s.Precipitation)
	)

	for _, pct := range []int{0, 25, 50, 75, 100} {
		col := pixel.Gridline
		if pct == 0 || pct == 100 {
			col = pixel.Outline
		}
		draw.HorizontalLine(fb, g.x, g.y(pct), g.w, col)
	}
	if len(points) == 0 {
		return
	}

	if !s.HasPrecipitation() {
		// Flat baseline, no title and no labels.
		draw.ThickLine(fb, points[0], points[len(points)-1], 2, pixel.Black)
		return
	}

	draw.Text(fb, face, g.x, g.title, chartTitle(s), pixel.Black)

	area := append(append([]image.Point(nil), points...),
		image.Pt(points[len(points)-1].X, g.bottom),
		image.Pt(points[0].X, g.bottom))
	draw.Polygon(fb, area, pixel.Fill)

	for i, p := range points {
		switch (v.StartHour + i) % 24 {
		case 0, 12:
			draw.ThickLine(fb, image.Pt(p.X, g.top), image.Pt(p.X, g.bottom), 2, pixel.Dark)
		case 6, 18:
			draw.VerticalLine(fb, p.X, g.top, g.height, pixel.Medium)
		}
	}

	draw.Polyline(fb, points, 2, pixel.Black)

	last := -1
	for _, i := range []int{0, len(points) / 2, len(points) - 1} {
		if i == last {
			continue
		}
		last = i
		draw.TextCentered(fb, face, points[i].X, g.label, hourLabel(v.StartHour, i), pixel.Black)
	}
}

func (c *Compositor) drawBarChart(fb *pixel.Gray4Image, v View) {
	var (
		l     = c.Layout
		g     = l.chartGeometry()
		s     = v.Snapshot
		face  = c.Fonts.Small
		rects = l.BarRects(s.Precipitation)
	)

	for _, pct := range []int{25, 50, 75} {
		draw.HorizontalLine(fb, g.x, g.y(pct), g.w, pixel.Gridline)
	}
	if !s.HasPrecipitation() {
		return
	}

	draw.Text(fb, face, g.x, g.title, chartTitle(s), pixel.Black)

	step := labelStep(face, len(rects), rects)
	for i, r := range rects {
		draw.Box(fb, r, pixel.Black)
		if i%step == 0 {
			draw.TextCentered(fb, face, r.Min.X+r.Dx()/2, g.label, hourLabel(v.StartHour, i), pixel.Black)
		}
	}
}

// labelStep thins hour labels so neighbours never overlap.
func labelStep(face font.Face, n int, rects []image.Rectangle) int {
	if n < 2 {
		return 1
	}
	pitch := rects[1].Min.X - rects[0].Min.X
	if pitch <= 0 {
		return n
	}
	widest := draw.TextWidth(face, "12") + 4
	step := 1
	for step*pitch < widest {
		step++
	}
	return step
}
