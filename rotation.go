package display

import (
	"fmt"
	"image"

	"github.com/BeatGlow/weather-display/pixel"
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ParseRotation maps degrees (0, 90, 180, 270) to a Rotation.
func ParseRotation(degrees int) (Rotation, error) {
	switch degrees {
	case 0:
		return NoRotation, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return NoRotation, fmt.Errorf("display: unsupported rotation %d°", degrees)
	}
}

// Rotate returns src rotated clock wise by r. NoRotation returns src itself.
func Rotate(src *pixel.Gray4Image, r Rotation) *pixel.Gray4Image {
	var (
		b    = src.Bounds()
		w, h = b.Dx(), b.Dy()
		dst  *pixel.Gray4Image
	)
	switch r % 4 {
	case Rotate90, Rotate270:
		dst = pixel.NewGray4Image(h, w)
	case Rotate180:
		dst = pixel.NewGray4Image(w, h)
	default:
		return src
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.Gray4At(b.Min.X+x, b.Min.Y+y)
			switch r % 4 {
			case Rotate90:
				dst.SetGray4(h-1-y, x, c)
			case Rotate180:
				dst.SetGray4(w-1-x, h-1-y, c)
			case Rotate270:
				dst.SetGray4(y, w-1-x, c)
			}
		}
	}
	return dst
}

// Rotated rotates every frame clock wise before it reaches the panel, so callers render in the
// upright orientation of a panel mounted sideways or upside down.
type Rotated struct {
	Panel
	Rotation Rotation
}

func (p Rotated) String() string {
	return fmt.Sprintf("%s rotated %s", p.Panel, p.Rotation)
}

// Bounds is the upright bounding box.
func (p Rotated) Bounds() image.Rectangle {
	b := p.Panel.Bounds()
	switch p.Rotation % 4 {
	case Rotate90, Rotate270:
		return image.Rect(0, 0, b.Dy(), b.Dx())
	default:
		return b
	}
}

// Transfer rotates fb and shows it.
func (p Rotated) Transfer(fb *pixel.Gray4Image) error {
	return p.Panel.Transfer(Rotate(fb, p.Rotation))
}
