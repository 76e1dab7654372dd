package layout

import (
	"fmt"
	"image"

	"golang.org/x/image/font"

	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/fonts"
	"github.com/BeatGlow/weather-display/icons"
	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/weather"
)

// View is everything the compositor needs for one frame.
type View struct {
	Snapshot weather.Snapshot

	// AgeLabel is the staleness annotation; empty hides it.
	AgeLabel string

	// Battery is the charge in percent.
	Battery int

	// Failures is the number of consecutive failed fetches; zero hides the indicator.
	Failures int

	// StartHour is the local hour of the first precipitation value.
	StartHour int
}

// Region is one named step of the render pipeline.
type Region struct {
	Name string
	Draw func(fb *pixel.Gray4Image, v View)
}

// Compositor renders views into a framebuffer.
type Compositor struct {
	Layout Layout
	Chart  Chart
	Fonts  *fonts.Set
	Icons  *icons.Set

	regions []Region
}

// New builds a compositor. The pipeline order is fixed; later regions paint over earlier ones.
func New(l Layout, chart Chart, f *fonts.Set, i *icons.Set) *Compositor {
	c := &Compositor{
		Layout: l,
		Chart:  chart,
		Fonts:  f,
		Icons:  i,
	}
	c.regions = []Region{
		{"temperature", c.drawTemperature},
		{"icon", c.drawIcon},
		{"high-low", c.drawHighLow},
		{"divider", c.drawDivider},
		{"chart", c.drawChart},
		{"sun-times", c.drawSunTimes},
		{"moon", c.drawMoon},
		{"uv-meter", c.drawUVMeter},
		{"battery", c.drawBattery},
		{"failures", c.drawFailures},
		{"age", c.drawAge},
	}
	return c
}

// Regions returns the names of the pipeline steps in drawing order.
func (c *Compositor) Regions() []string {
	names := make([]string, len(c.regions))
	for i, r := range c.regions {
		names[i] = r.Name
	}
	return names
}

// Render clears fb to white and paints every region. Drawing outside fb is clipped.
func (c *Compositor) Render(fb *pixel.Gray4Image, v View) {
	fb.Clear()
	for _, r := range c.regions {
		r.Draw(fb, v)
	}
}

// TemperatureText formats a temperature with a degree sign.
func TemperatureText(t int) string {
	return fmt.Sprintf("%d°", t)
}

func (c *Compositor) drawTemperature(fb *pixel.Gray4Image, v View) {
	p := c.Layout.Temperature
	draw.Text(fb, c.Fonts.Large, p.X, p.Y, TemperatureText(v.Snapshot.Current), pixel.Black)
}

func (c *Compositor) drawIcon(fb *pixel.Gray4Image, v View) {
	draw.BitmapCentered(fb, c.Layout.Icon, c.Icons.Weather(v.Snapshot.Condition))
}

func (c *Compositor) drawHighLow(fb *pixel.Gray4Image, v View) {
	var (
		l = c.Layout
		s = v.Snapshot
		p = l.HighLow
	)
	x := draw.Text(fb, c.Fonts.Medium, p.X, p.Y, "H: "+TemperatureText(s.High), pixel.Black)
	x = draw.Text(fb, c.Fonts.Medium, x+l.HighLowGap, p.Y, "L: "+TemperatureText(s.Low), pixel.Black)

	uv := fmt.Sprintf(" %d / %d", s.UVCurrent, s.UVHigh)
	x = l.uvOrigin(x, draw.TextWidth(c.Fonts.Small, uv))
	icons.SmallSun(fb, x+l.UVSun.X, p.Y+l.UVSun.Y, l.UVSunRadius)
	draw.Text(fb, c.Fonts.Small, x+l.UVText.X, p.Y+l.UVText.Y, uv, pixel.Black)
}

// uvOrigin returns the point the UV sun and reading are placed from, given where the low
// temperature ends. A block running past UVMaxX is pulled left, at most until the sun is one
// radius away from the low temperature.
func (l Layout) uvOrigin(lowEnd, width int) int {
	if l.UVMaxX <= 0 {
		return lowEnd
	}
	over := lowEnd + l.UVText.X + width - l.UVMaxX
	if over <= 0 {
		return lowEnd
	}
	slack := max(l.UVSun.X-2*l.UVSunRadius, 0)
	return lowEnd - min(over, slack)
}

func (c *Compositor) drawDivider(fb *pixel.Gray4Image, _ View) {
	d := c.Layout.Divider
	draw.HorizontalLine(fb, d.Min.X, d.Min.Y, d.Dx(), pixel.Divider)
}

func (c *Compositor) drawChart(fb *pixel.Gray4Image, v View) {
	if c.Chart == ChartBar {
		c.drawBarChart(fb, v)
		return
	}
	c.drawLineChart(fb, v)
}

func (c *Compositor) drawSunTimes(fb *pixel.Gray4Image, v View) {
	var (
		s = v.Snapshot
		p = c.Layout.SunTimes
	)
	if s.Sunrise != "" {
		draw.Text(fb, c.Fonts.Small, p.X, p.Y, "Sunrise "+s.Sunrise, pixel.Black)
	}
	if s.Sunset != "" {
		draw.Text(fb, c.Fonts.Small, p.X, p.Y+c.Layout.LineHeight, "Sunset "+s.Sunset, pixel.Black)
	}
}

func (c *Compositor) drawMoon(fb *pixel.Gray4Image, v View) {
	draw.BitmapCentered(fb, c.Layout.Moon, c.Icons.Moon(v.Snapshot.Moon))
}

func (c *Compositor) drawUVMeter(fb *pixel.Gray4Image, v View) {
	var (
		l = c.Layout
		s = v.Snapshot
		r = l.UVMeter
	)
	if r.Empty() {
		return
	}
	now, hi := drawMeter(fb, r, s.UVCurrent, s.UVHigh, l.UVMeterMax)

	y := r.Max.Y + 30
	draw.TextCentered(fb, c.Fonts.Small, r.Min.X+1+now, y, fmt.Sprintf("%d", s.UVCurrent), pixel.Black)
	if s.UVHigh > 0 && s.UVHigh != s.UVCurrent {
		draw.TextCentered(fb, c.Fonts.Small, r.Min.X+1+hi, y, fmt.Sprintf("%d", s.UVHigh), pixel.Black)
	}
	draw.Text(fb, c.Fonts.Small, r.Min.X, r.Min.Y-8, "UV index", pixel.Black)
}

func (c *Compositor) drawBattery(fb *pixel.Gray4Image, v View) {
	l := c.Layout
	drawBattery(fb, l.Battery, l.BatteryTip, l.BatteryNub, v.Battery)
}

func (c *Compositor) drawFailures(fb *pixel.Gray4Image, v View) {
	if v.Failures <= 0 {
		return
	}
	var (
		l     = c.Layout
		p     = l.FailureText
		face  = c.Fonts.Small
		text  = fmt.Sprintf("!%d", v.Failures)
		badge = l.failureBadge(face.Metrics(), draw.TextWidth(face, text))
	)
	draw.RoundedBox(fb, badge, l.BadgeRadius, pixel.Dark)
	draw.RoundedRectangle(fb, badge, l.BadgeRadius, pixel.Black)
	draw.Text(fb, face, p.X, p.Y, text, pixel.White)
}

func (c *Compositor) drawAge(fb *pixel.Gray4Image, v View) {
	if v.AgeLabel == "" {
		return
	}
	p := c.Layout.AgeLabel
	draw.Text(fb, c.Fonts.Small, p.X, p.Y, v.AgeLabel, pixel.Black)
}

// Bounds returns the panel rectangle of the layout.
func (l Layout) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.Size}
}

// failureBadge is the rectangle behind a failure count of the given text width.
func (l Layout) failureBadge(m font.Metrics, width int) image.Rectangle {
	p := l.FailureText
	return image.Rect(p.X-l.BadgePad, p.Y-m.Ascent.Ceil(), p.X+width+l.BadgePad, p.Y+m.Descent.Ceil()+l.BadgePad/2)
}
