package icons

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/BeatGlow/weather-display/pixel"
)

// Shapes are drawn in a 100 unit design space scaled to the icon size.

func drawSun(dc *gg.Context, cx, cy, r float64) {
	dc.SetColor(pixel.Icon)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	dc.SetLineWidth(3)
	dc.SetLineCap(gg.LineCapRound)
	inner, outer := r+6, r+22
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		dc.DrawLine(cx+inner*math.Cos(a), cy+inner*math.Sin(a), cx+outer*math.Cos(a), cy+outer*math.Sin(a))
	}
	dc.Stroke()
}

func cloudCircles(cx, cy, size float64) [][3]float64 {
	s := size / 100
	circles := make([][3]float64, 0, 8)
	for _, c := range [][2]float64{{-28, 18}, {-10, 20}, {10, 20}, {28, 18}} {
		circles = append(circles, [3]float64{cx + c[0]*s, cy + 8*s, c[1] * s})
	}
	for _, c := range [][3]float64{{-22, -8, 20}, {0, -12, 24}, {22, -6, 19}} {
		circles = append(circles, [3]float64{cx + c[0]*s, cy + c[1]*s, c[2] * s})
	}
	return append(circles, [3]float64{cx - 4*s, cy - 26*s, 20 * s})
}

func drawCloud(dc *gg.Context, cx, cy, size float64) {
	dc.SetColor(pixel.Icon)
	for _, c := range cloudCircles(cx, cy, size) {
		dc.DrawCircle(c[0], c[1], c[2])
		dc.Fill()
	}
}

// drawCloudHalo clears a white margin around the cloud so it stands out in front of a sun or moon.
func drawCloudHalo(dc *gg.Context, cx, cy, size, margin float64) {
	dc.SetColor(pixel.White)
	for _, c := range cloudCircles(cx, cy, size) {
		dc.DrawCircle(c[0], c[1], c[2]+margin)
		dc.Fill()
	}
}

func drawRain(dc *gg.Context, cx, cy, size float64) {
	drawCloud(dc, cx, cy-size*0.15, size)
	top, length := cy+size*0.15, size*0.18
	dc.SetColor(pixel.Icon)
	dc.SetLineWidth(3)
	dc.SetLineCap(gg.LineCapRound)
	for i := 0; i < 5; i++ {
		x := cx - size*0.25 + float64(i)*size*0.13
		y := top + float64(i%2)*8
		dc.DrawLine(x, y, x-4, y+length)
	}
	dc.Stroke()
}

func drawSnow(dc *gg.Context, cx, cy, size float64) {
	drawCloud(dc, cx, cy-size*0.15, size)
	dc.SetColor(pixel.Icon)
	y1, y2 := cy+size*0.18, cy+size*0.32
	for i := 0; i < 4; i++ {
		dc.DrawCircle(cx-size*0.22+float64(i)*size*0.15, y1, 4)
		dc.Fill()
	}
	for i := 0; i < 3; i++ {
		dc.DrawCircle(cx-size*0.15+float64(i)*size*0.15, y2, 4)
		dc.Fill()
	}
}

func drawThunderstorm(dc *gg.Context, cx, cy, size float64) {
	drawCloud(dc, cx, cy-size*0.15, size)
	s := size / 100
	dc.SetColor(pixel.Black)
	dc.MoveTo(cx+2*s, cy+2*s)
	dc.LineTo(cx-10*s, cy+24*s)
	dc.LineTo(cx-1*s, cy+24*s)
	dc.LineTo(cx-8*s, cy+44*s)
	dc.LineTo(cx+12*s, cy+16*s)
	dc.LineTo(cx+3*s, cy+16*s)
	dc.LineTo(cx+10*s, cy+2*s)
	dc.ClosePath()
	dc.Fill()
}

func drawFog(dc *gg.Context, cx, cy, size float64) {
	s := size / 100
	dc.SetColor(pixel.Icon)
	dc.SetLineWidth(6 * s)
	dc.SetLineCap(gg.LineCapRound)
	for i, w := range []float64{60, 70, 50, 64} {
		y := cy - 27*s + float64(i)*18*s
		offset := float64(i%2) * 6 * s
		dc.DrawLine(cx-w/2*s+offset, y, cx+w/2*s+offset, y)
	}
	dc.Stroke()
}

// drawCrescent draws a crescent by cutting a shifted white disc out of a filled one.
func drawCrescent(dc *gg.Context, cx, cy, r float64) {
	dc.SetColor(pixel.Icon)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
	dc.SetColor(pixel.White)
	dc.DrawCircle(cx+r*0.45, cy-r*0.3, r*0.85)
	dc.Fill()
}

func drawPartlyCloudy(dc *gg.Context, cx, cy, size float64, night bool) {
	if night {
		drawCrescent(dc, cx-size*0.12, cy-size*0.18, size*0.24)
	} else {
		drawSun(dc, cx-size*0.15, cy-size*0.18, size*0.18)
	}
	ccx, ccy, csize := cx+size*0.08, cy+size*0.08, size*0.85
	drawCloudHalo(dc, ccx, ccy, csize, 4)
	drawCloud(dc, ccx, ccy, csize)
}

// drawMoon draws a lunar phase as an outlined disc with the lit part filled in white and the
// dark part in the icon gray. eighths is the lit fraction.
func drawMoon(dc *gg.Context, cx, cy, r float64, eighths int, waxing bool) {
	dc.SetColor(pixel.Icon)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	if eighths > 0 {
		// The terminator is an ellipse with horizontal radius |cos| of the phase angle.
		k := math.Cos(math.Pi * float64(eighths) / 8)
		side := 1.0
		if !waxing {
			side = -1
		}
		dc.SetColor(pixel.White)
		const steps = 64
		for i := 0; i <= steps; i++ {
			a := -math.Pi/2 + math.Pi*float64(i)/steps
			dc.LineTo(cx+side*r*math.Cos(a), cy+r*math.Sin(a))
		}
		for i := steps; i >= 0; i-- {
			a := -math.Pi/2 + math.Pi*float64(i)/steps
			dc.LineTo(cx+side*k*r*math.Cos(a), cy+r*math.Sin(a))
		}
		dc.ClosePath()
		dc.Fill()
	}

	dc.SetColor(pixel.Icon)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()
}
