package layout

import (
	"image"

	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/pixel"
)

// GaugeFill returns the filled width of a gauge: (width - border) * value / max, truncated.
// value is clamped to [0, max]; a non-positive max yields 0.
func GaugeFill(width, border, value, max int) int {
	if max <= 0 || width <= border {
		return 0
	}
	if value < 0 {
		value = 0
	} else if value > max {
		value = max
	}
	return (width - border) * value / max
}

// Scale maps a percentage onto a height, truncated.
func Scale(height, pct int) int {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return height * pct / 100
}

// drawBattery draws the battery body outline, its tip and the charge fill.
func drawBattery(fb *pixel.Gray4Image, body image.Rectangle, tip, nub, percent int) {
	w, h := body.Dx(), body.Dy()
	draw.Rectangle(fb, body, pixel.Outline)
	draw.Box(fb, image.Rect(body.Max.X, body.Min.Y+nub, body.Max.X+tip, body.Max.Y-nub), pixel.Outline)

	if fill := GaugeFill(w, 2, percent, 100); fill > 0 {
		draw.Box(fb, image.Rect(body.Min.X+1, body.Min.Y+1, body.Min.X+1+fill, body.Min.Y+h-1), pixel.Icon)
	}
}

// drawMeter draws a horizontal gauge with the current value filled black and the span from
// current to high filled gray.
func drawMeter(fb *pixel.Gray4Image, r image.Rectangle, current, high, max int) (now, hi int) {
	draw.Rectangle(fb, r, pixel.Outline)
	now = GaugeFill(r.Dx(), 2, current, max)
	hi = GaugeFill(r.Dx(), 2, high, max)
	if now > 0 {
		draw.Box(fb, image.Rect(r.Min.X+1, r.Min.Y+1, r.Min.X+1+now, r.Max.Y-1), pixel.Black)
	}
	if hi > now {
		draw.Box(fb, image.Rect(r.Min.X+1+now, r.Min.Y+1, r.Min.X+1+hi, r.Max.Y-1), pixel.Divider)
	}
	return now, hi
}
