// Package icons rasterizes the weather and moon phase icons into 4-bit gray bitmaps once at
// start-up, and resolves them through lookup tables.
package icons

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/weather"
)

// Default icon sizes in pixels.
const (
	WeatherSize = 200
	MoonSize    = 64
)

// Set holds the prebuilt bitmaps.
type Set struct {
	weather map[weather.Condition]*pixel.Gray4Image
	moon    map[weather.MoonPhase]*pixel.Gray4Image
}

// New renders every icon at the given sizes.
func New(weatherSize, moonSize int) *Set {
	s := &Set{
		weather: make(map[weather.Condition]*pixel.Gray4Image),
		moon:    make(map[weather.MoonPhase]*pixel.Gray4Image),
	}

	size := float64(weatherSize)
	c := size / 2
	painters := map[weather.Condition]func(*gg.Context){
		weather.Sunny:             func(dc *gg.Context) { drawSun(dc, c, c, size*0.3) },
		weather.Cloudy:            func(dc *gg.Context) { drawCloud(dc, c, c, size) },
		weather.PartlyCloudy:      func(dc *gg.Context) { drawPartlyCloudy(dc, c, c, size, false) },
		weather.Rainy:             func(dc *gg.Context) { drawRain(dc, c, c, size) },
		weather.Snowy:             func(dc *gg.Context) { drawSnow(dc, c, c, size) },
		weather.Thunderstorm:      func(dc *gg.Context) { drawThunderstorm(dc, c, c, size) },
		weather.Fog:               func(dc *gg.Context) { drawFog(dc, c, c, size) },
		weather.ClearNight:        func(dc *gg.Context) { drawCrescent(dc, c, c, size*0.32) },
		weather.PartlyCloudyNight: func(dc *gg.Context) { drawPartlyCloudy(dc, c, c, size, true) },
	}
	for cond, paint := range painters {
		s.weather[cond] = rasterize(weatherSize, paint)
	}

	m := float64(moonSize)
	for phase := weather.NewMoon; phase <= weather.WaningCrescent; phase++ {
		eighths, waxing := phase.Illumination()
		s.moon[phase] = rasterize(moonSize, func(dc *gg.Context) {
			drawMoon(dc, m/2, m/2, m/2-2, eighths, waxing)
		})
	}
	return s
}

// Default renders the icons at their default sizes.
func Default() *Set {
	return New(WeatherSize, MoonSize)
}

// Weather returns the bitmap for c. Unknown conditions resolve to the cloudy icon.
func (s *Set) Weather(c weather.Condition) *pixel.Gray4Image {
	if i, ok := s.weather[c]; ok {
		return i
	}
	return s.weather[weather.Cloudy]
}

// Moon returns the bitmap for phase. Unknown phases resolve to the new moon.
func (s *Set) Moon(phase weather.MoonPhase) *pixel.Gray4Image {
	if i, ok := s.moon[phase]; ok {
		return i
	}
	return s.moon[weather.NewMoon]
}

func rasterize(size int, paint func(*gg.Context)) *pixel.Gray4Image {
	dc := gg.NewContext(size, size)
	dc.SetColor(pixel.White)
	dc.Clear()
	paint(dc)

	dst := pixel.NewGray4Image(size, size)
	draw.Draw(dst, dst.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return dst
}

// SmallSun draws the hollow sun used next to the UV reading, centered at (cx, cy) with radius r.
func SmallSun(dst draw.Image, cx, cy, r int) {
	c := pixel.Icon
	draw.Circle(dst, cx, cy, r, c)
	draw.Circle(dst, cx, cy, r-1, c)

	inner, outer := float64(r+4), float64(r+12)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		x0 := cx + int(inner*math.Cos(a))
		y0 := cy + int(inner*math.Sin(a))
		x1 := cx + int(outer*math.Cos(a))
		y1 := cy + int(outer*math.Sin(a))
		draw.Line(dst, image.Pt(x0, y0), image.Pt(x1, y1), c)
		draw.Line(dst, image.Pt(x0+1, y0), image.Pt(x1+1, y1), c)
		draw.Line(dst, image.Pt(x0, y0+1), image.Pt(x1, y1+1), c)
	}
}
