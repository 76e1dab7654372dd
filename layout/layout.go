// Package layout composes the dashboard into the panel framebuffer.
//
// The dashboard is a fixed sequence of named regions. Every anchor lives in a Layout value, so
// moving things around changes data rather than code.
package layout

import (
	"fmt"
	"image"
	"strings"
)

// Chart selects how the precipitation series is drawn.
type Chart uint8

// Charting styles.
const (
	// ChartLine draws a line with the area beneath it filled, gridlines at 0/25/50/75/100% and
	// day markers. An all-zero series draws only gridlines and the flat baseline.
	ChartLine Chart = iota

	// ChartBar draws one bar per hour, inset from both chart edges by the bar gap, with
	// gridlines at 25/50/75%.
	ChartBar
)

func (c Chart) String() string {
	switch c {
	case ChartBar:
		return "bar"
	default:
		return "line"
	}
}

// Set implements flag.Value.
func (c *Chart) Set(s string) error {
	switch strings.ToLower(s) {
	case "line", "area", "":
		*c = ChartLine
	case "bar", "bars":
		*c = ChartBar
	default:
		return fmt.Errorf("layout: unknown chart style %q", s)
	}
	return nil
}

// Layout holds the anchor coordinates of every region. Text anchors are baselines.
type Layout struct {
	Size image.Point

	// Temperature is the baseline start of the current temperature.
	Temperature image.Point

	// Icon is the center of the condition icon.
	Icon image.Point

	// HighLow is the baseline start of the high temperature; the low follows after HighLowGap.
	HighLow    image.Point
	HighLowGap int

	// UVSun is the small sun center relative to the end of the low temperature; UVText is the
	// UV reading baseline relative to the same point.
	UVSun       image.Point
	UVSunRadius int
	UVText      image.Point

	// UVMaxX is the right bound of the UV reading; wide temperatures pull the sun and reading
	// left to stay clear of the condition icon. Zero disables the bound.
	UVMaxX int

	// Divider is a horizontal rule: Min is the start, Dx the length.
	Divider image.Rectangle

	// Chart is the precipitation chart area, title and hour labels included.
	Chart      image.Rectangle
	ChartTitle int // title band height
	ChartLabel int // hour label band height
	BarGap     int

	// SunTimes is the baseline start of the sunrise line; the sunset line follows LineHeight
	// below.
	SunTimes   image.Point
	LineHeight int

	// Moon is the center of the moon phase icon.
	Moon image.Point

	// UVMeter is the outline of the UV gauge.
	UVMeter    image.Rectangle
	UVMeterMax int

	// Battery is the top-left corner of the battery body.
	Battery     image.Rectangle
	BatteryTip  int // tip width
	BatteryNub  int // vertical inset of the tip from the body edges
	AgeLabel    image.Point

	// FailureText is the baseline start of the failure count, drawn inside a rounded badge.
	FailureText image.Point
	BadgePad    int
	BadgeRadius int
}

// Default is the layout for a 960x540 panel.
var Default = Layout{
	Size: image.Pt(960, 540),

	Temperature: image.Pt(50, 130),
	Icon:        image.Pt(780, 122),

	HighLow:    image.Pt(50, 215),
	HighLowGap: 30,

	UVSun:       image.Pt(80, -18),
	UVSunRadius: 14,
	UVText:      image.Pt(107, -3),
	UVMaxX:      670,

	Divider: image.Rect(40, 265, 920, 266),

	Chart:      image.Rect(40, 280, 480, 480),
	ChartTitle: 25,
	ChartLabel: 30,
	BarGap:     8,

	SunTimes:   image.Pt(560, 320),
	LineHeight: 40,

	Moon: image.Pt(860, 330),

	UVMeter:    image.Rect(560, 400, 840, 430),
	UVMeterMax: 11,

	Battery:     image.Rect(905, 505, 945, 525),
	BatteryTip:  4,
	BatteryNub:  6,
	AgeLabel:    image.Pt(825, 525),
	FailureText: image.Pt(40, 525),
	BadgePad:    6,
	BadgeRadius: 6,
}

// Scaled returns l resized for a panel of the given size. Anchors scale proportionally with
// integer truncation; the battery keeps its pixel size and stays in the lower right corner.
func (l Layout) Scaled(size image.Point) Layout {
	if size == l.Size || l.Size.X == 0 || l.Size.Y == 0 {
		return l
	}
	sx := func(v int) int { return v * size.X / l.Size.X }
	sy := func(v int) int { return v * size.Y / l.Size.Y }
	pt := func(p image.Point) image.Point { return image.Pt(sx(p.X), sy(p.Y)) }
	rect := func(r image.Rectangle) image.Rectangle {
		return image.Rectangle{Min: pt(r.Min), Max: pt(r.Max)}
	}

	s := l
	s.Size = size
	s.Temperature = pt(l.Temperature)
	s.Icon = pt(l.Icon)
	s.HighLow = pt(l.HighLow)
	s.UVMaxX = sx(l.UVMaxX)
	s.Divider = rect(l.Divider)
	s.Divider.Max.Y = s.Divider.Min.Y + 1
	s.Chart = rect(l.Chart)
	s.SunTimes = pt(l.SunTimes)
	s.Moon = pt(l.Moon)
	s.UVMeter = rect(l.UVMeter)

	dx, dy := size.X-l.Size.X, size.Y-l.Size.Y
	s.Battery = l.Battery.Add(image.Pt(dx, dy))
	s.AgeLabel = l.AgeLabel.Add(image.Pt(dx, dy))
	s.FailureText = image.Pt(sx(l.FailureText.X), l.FailureText.Y+dy)
	return s
}
