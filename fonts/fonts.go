// Package fonts provides the TrueType faces used on the dashboard.
package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DPI of the e-paper panel, used to scale point sizes.
const DPI = 150

// Point sizes of the three text styles.
const (
	LargeSize  = 48
	MediumSize = 29
	SmallSize  = 13
)

// Set bundles the faces used by the compositor. Faces are not safe for concurrent use.
type Set struct {
	Large  font.Face // current temperature
	Medium font.Face // high / low
	Small  font.Face // labels, chart annotations, age
}

// Load parses the embedded Go fonts and builds a face set.
func Load() (*Set, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse bold: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse regular: %w", err)
	}
	return &Set{
		Large:  newFace(bold, LargeSize),
		Medium: newFace(bold, MediumSize),
		Small:  newFace(regular, SmallSize),
	}, nil
}

// MustLoad is like Load but panics on error; the fonts are compiled in so this only fails on a
// broken build.
func MustLoad() *Set {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
}
